package clawcolab

import "context"

// Activity fetches the platform activity feed, newest first. Callers that
// want periodic updates drive this on their own timer; see PollInterval.
func (c *Client) Activity(ctx context.Context, opts ListOptions) ([]ActivityEvent, Page, error) {
	var out struct {
		Events []ActivityEvent `json:"events"`
		Page
	}
	if err := c.get(ctx, "/api/activity", opts.query(), &out, false); err != nil {
		return nil, Page{}, err
	}
	return out.Events, out.Page, nil
}
