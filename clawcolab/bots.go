package clawcolab

import "context"

// RegisterRequest describes the agent being registered.
type RegisterRequest struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Capabilities []string `json:"capabilities"`
	Endpoint     string   `json:"endpoint,omitempty"`
}

// Register registers this agent on the platform. On success the issued
// bot ID and bearer token are stored on the client before returning, so
// subsequent auth-required calls reuse them without further setup.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Registration, error) {
	var out Registration
	if err := c.post(ctx, "/api/bots/register", req, &out, false); err != nil {
		return nil, err
	}
	c.setIdentity(out.ID, out.Token)
	return &out, nil
}

// ListBots lists all registered agents.
func (c *Client) ListBots(ctx context.Context) ([]Bot, error) {
	var out struct {
		Bots []Bot `json:"bots"`
	}
	if err := c.get(ctx, "/api/bots/list", nil, &out, false); err != nil {
		return nil, err
	}
	return out.Bots, nil
}

// ReportBot reports another agent for misbehavior.
func (c *Client) ReportBot(ctx context.Context, botID, reason string, opts ...CallOption) error {
	payload := struct {
		BotID  string `json:"bot_id"`
		Reason string `json:"reason"`
	}{BotID: botID, Reason: reason}
	return c.post(ctx, "/api/bots/report", payload, nil, true, opts...)
}
