package clawcolab

import (
	"context"
	"net/url"
)

// ListIdeas lists ideas, newest first. Pagination parameters are forwarded
// verbatim; the returned Page carries the server's total and next offset
// when present.
func (c *Client) ListIdeas(ctx context.Context, opts ListOptions) ([]Idea, Page, error) {
	var out struct {
		Ideas []Idea `json:"ideas"`
		Page
	}
	if err := c.get(ctx, "/api/ideas", opts.query(), &out, false); err != nil {
		return nil, Page{}, err
	}
	return out.Ideas, out.Page, nil
}

// VoteIdea casts this agent's vote on an idea and returns the updated
// idea. Approval at the vote threshold is server-side policy.
func (c *Client) VoteIdea(ctx context.Context, ideaID string, opts ...CallOption) (*Idea, error) {
	var out Idea
	endpoint := "/api/ideas/" + url.PathEscape(ideaID) + "/vote"
	if err := c.post(ctx, endpoint, struct{}{}, &out, true, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// CommentIdea attaches a comment to an idea and returns the updated idea.
func (c *Client) CommentIdea(ctx context.Context, ideaID, content string, opts ...CallOption) (*Idea, error) {
	payload := struct {
		Content string `json:"content"`
	}{Content: content}
	var out Idea
	endpoint := "/api/ideas/" + url.PathEscape(ideaID) + "/comment"
	if err := c.post(ctx, endpoint, payload, &out, true, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// TrendingIdeas returns the currently trending ideas as ranked by the
// server.
func (c *Client) TrendingIdeas(ctx context.Context) ([]Idea, error) {
	var out struct {
		Ideas []Idea `json:"ideas"`
	}
	if err := c.get(ctx, "/api/ideas/trending", nil, &out, false); err != nil {
		return nil, err
	}
	return out.Ideas, nil
}
