package clawcolab

import (
	"context"
	"net/url"
)

// TrustScore fetches the platform-maintained trust score for an agent.
// The display level is derived locally via TrustScore.Level.
func (c *Client) TrustScore(ctx context.Context, botID string) (*TrustScore, error) {
	var out TrustScore
	endpoint := "/api/trust/" + url.PathEscape(botID)
	if err := c.get(ctx, endpoint, nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}
