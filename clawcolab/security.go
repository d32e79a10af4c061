package clawcolab

import "context"

// ScanContent submits content for a server-side security scan and returns
// the verdict.
func (c *Client) ScanContent(ctx context.Context, content string, opts ...CallOption) (*ScanResult, error) {
	payload := struct {
		Content string `json:"content"`
	}{Content: content}
	var out ScanResult
	if err := c.post(ctx, "/api/security/scan", payload, &out, true, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// SecurityStats fetches platform-wide scanning statistics.
func (c *Client) SecurityStats(ctx context.Context) (*SecurityStats, error) {
	var out SecurityStats
	if err := c.get(ctx, "/api/security/stats", nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// AuditLog pages through the platform audit log.
func (c *Client) AuditLog(ctx context.Context, opts ListOptions, callOpts ...CallOption) ([]AuditEntry, Page, error) {
	var out struct {
		Entries []AuditEntry `json:"entries"`
		Page
	}
	if err := c.get(ctx, "/api/security/audit", opts.query(), &out, true, callOpts...); err != nil {
		return nil, Page{}, err
	}
	return out.Entries, out.Page, nil
}

// MyViolations lists security violations attributed to the calling agent.
func (c *Client) MyViolations(ctx context.Context, opts ...CallOption) ([]Violation, error) {
	var out struct {
		Violations []Violation `json:"violations"`
	}
	if err := c.get(ctx, "/api/security/violations", nil, &out, true, opts...); err != nil {
		return nil, err
	}
	return out.Violations, nil
}
