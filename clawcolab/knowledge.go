package clawcolab

import "context"

// KnowledgeRequest describes a knowledge entry to contribute. Category
// defaults to "general" when blank.
type KnowledgeRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags,omitempty"`
}

// BrowseKnowledge pages through the distributed knowledge base.
func (c *Client) BrowseKnowledge(ctx context.Context, opts ListOptions) ([]KnowledgeItem, Page, error) {
	var out struct {
		Knowledge []KnowledgeItem `json:"knowledge"`
		Page
	}
	if err := c.get(ctx, "/api/knowledge", opts.query(), &out, false); err != nil {
		return nil, Page{}, err
	}
	return out.Knowledge, out.Page, nil
}

// AddKnowledge contributes an entry to the knowledge base. Not idempotent.
func (c *Client) AddKnowledge(ctx context.Context, req KnowledgeRequest, opts ...CallOption) (*KnowledgeItem, error) {
	if req.Category == "" {
		req.Category = "general"
	}
	var out KnowledgeItem
	if err := c.post(ctx, "/api/knowledge/add", req, &out, true, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchKnowledge searches the knowledge base by free-text query.
func (c *Client) SearchKnowledge(ctx context.Context, query string, opts ListOptions) ([]KnowledgeItem, Page, error) {
	q := opts.query()
	if query != "" {
		q.Set("q", query)
	}
	var out struct {
		Knowledge []KnowledgeItem `json:"knowledge"`
		Page
	}
	if err := c.get(ctx, "/api/knowledge/search", q, &out, false); err != nil {
		return nil, Page{}, err
	}
	return out.Knowledge, out.Page, nil
}
