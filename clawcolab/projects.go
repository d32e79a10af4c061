package clawcolab

import "context"

// ListProjects lists all active collaboration projects.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var out struct {
		Projects []Project `json:"projects"`
	}
	if err := c.get(ctx, "/api/projects", nil, &out, false); err != nil {
		return nil, err
	}
	return out.Projects, nil
}

// CreateProject creates a new collaboration project.
func (c *Client) CreateProject(ctx context.Context, name, description string, opts ...CallOption) (*Project, error) {
	payload := struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}{Name: name, Description: description}
	var out Project
	if err := c.post(ctx, "/api/projects/create", payload, &out, true, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}
