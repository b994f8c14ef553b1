package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	domain "github.com/fajshah/faj-todo-phase2/domain/task"
)

// ListOptions narrows and pages a task listing. Zero values are omitted and
// the server applies its defaults.
type ListOptions struct {
	Status   domain.Status
	Priority domain.Priority
	Page     int
	Limit    int
}

// TaskPage is one page of tasks plus pagination metadata.
type TaskPage struct {
	Todos       []domain.Task `json:"todos"`
	Total       int64         `json:"total"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
}

// CreateTaskInput is the payload for creating a task.
type CreateTaskInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Priority    domain.Priority `json:"priority,omitempty"`
}

// UpdateTaskInput is the payload for a partial task update. Nil fields are
// left unchanged.
type UpdateTaskInput struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Status      *domain.Status   `json:"status,omitempty"`
	Priority    *domain.Priority `json:"priority,omitempty"`
}

// ListTasks returns a page of the authenticated user's tasks.
func (c *Client) ListTasks(ctx context.Context, opts ListOptions) (*TaskPage, error) {
	q := url.Values{}
	if opts.Status != "" {
		q.Set("status", string(opts.Status))
	}
	if opts.Priority != "" {
		q.Set("priority", string(opts.Priority))
	}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}

	path := "/todos"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var page TaskPage
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetTask returns a single task by ID.
func (c *Client) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	var t domain.Task
	if err := c.do(ctx, http.MethodGet, "/todos/"+url.PathEscape(id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTask creates a new task.
func (c *Client) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	var t domain.Task
	if err := c.do(ctx, http.MethodPost, "/todos", input, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTask applies a partial update to a task.
func (c *Client) UpdateTask(ctx context.Context, id string, input UpdateTaskInput) (*domain.Task, error) {
	var t domain.Task
	if err := c.do(ctx, http.MethodPut, "/todos/"+url.PathEscape(id), input, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+url.PathEscape(id), nil, nil)
}

// ToggleTask flips a task's completion state.
func (c *Client) ToggleTask(ctx context.Context, id string) (*domain.Task, error) {
	var t domain.Task
	path := fmt.Sprintf("/todos/%s/toggle", url.PathEscape(id))
	if err := c.do(ctx, http.MethodPatch, path, nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
