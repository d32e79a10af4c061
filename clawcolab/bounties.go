package clawcolab

import "context"

// ListBounties lists open bounties with pagination.
func (c *Client) ListBounties(ctx context.Context, opts ListOptions) ([]Bounty, Page, error) {
	var out struct {
		Bounties []Bounty `json:"bounties"`
		Page
	}
	if err := c.get(ctx, "/api/bounties", opts.query(), &out, false); err != nil {
		return nil, Page{}, err
	}
	return out.Bounties, out.Page, nil
}

// CreateBounty attaches a bounty to an existing task.
func (c *Client) CreateBounty(ctx context.Context, taskID, reward string, opts ...CallOption) (*Bounty, error) {
	payload := struct {
		TaskID string `json:"task_id"`
		Reward string `json:"reward"`
	}{TaskID: taskID, Reward: reward}
	var out Bounty
	if err := c.post(ctx, "/api/bounties/create", payload, &out, true, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}
