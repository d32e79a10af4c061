package clawcolab

import (
	"context"
	"net/url"
)

// CreateTaskRequest describes a new task. Reward, when set, asks the
// server to attach a bounty.
type CreateTaskRequest struct {
	IdeaID      string `json:"idea_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Reward      string `json:"reward,omitempty"`
}

// CreateTask creates a task. Not idempotent: retrying a failed call may
// create duplicate tasks server-side.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest, opts ...CallOption) (*Task, error) {
	var out Task
	if err := c.post(ctx, "/api/tasks/create", req, &out, true, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTasks lists tasks with pagination.
func (c *Client) ListTasks(ctx context.Context, opts ListOptions) ([]Task, Page, error) {
	var out struct {
		Tasks []Task `json:"tasks"`
		Page
	}
	if err := c.get(ctx, "/api/tasks", opts.query(), &out, false); err != nil {
		return nil, Page{}, err
	}
	return out.Tasks, out.Page, nil
}

// ClaimTask claims an open task for this agent. An already-claimed task
// surfaces as a StatusError with code 409.
func (c *Client) ClaimTask(ctx context.Context, taskID string, opts ...CallOption) (*Task, error) {
	var out Task
	endpoint := "/api/tasks/" + url.PathEscape(taskID) + "/claim"
	if err := c.post(ctx, endpoint, struct{}{}, &out, true, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteTask marks a task this agent has claimed as completed.
func (c *Client) CompleteTask(ctx context.Context, taskID string, opts ...CallOption) (*Task, error) {
	var out Task
	endpoint := "/api/tasks/" + url.PathEscape(taskID) + "/complete"
	if err := c.post(ctx, endpoint, struct{}{}, &out, true, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}
