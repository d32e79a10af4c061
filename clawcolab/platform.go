package clawcolab

import "context"

// Health checks server health.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.get(ctx, "/health", nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stats fetches aggregate platform statistics.
func (c *Client) Stats(ctx context.Context) (*PlatformStats, error) {
	var out PlatformStats
	if err := c.get(ctx, "/api/admin/stats", nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}
