package todo

import (
	domain "github.com/fajshah/faj-todo-phase2/domain/task"
)

// ListTasksRequest is the request for listing a user's tasks.
type ListTasksRequest struct {
	UserID   string          `json:"user_id"`
	Status   domain.Status   `json:"status,omitempty"`
	Priority domain.Priority `json:"priority,omitempty"`
	Page     int             `json:"page"`
	Limit    int             `json:"limit"`
}

// ListTasksResponse is a page of tasks plus pagination metadata.
type ListTasksResponse struct {
	Todos       []domain.Task `json:"todos"`
	Total       int64         `json:"total"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
}

// GetTaskRequest is the request for fetching a single task.
type GetTaskRequest struct {
	UserID string `json:"user_id"`
	ID     string `json:"id"`
}

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	UserID      string          `json:"user_id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Status      domain.Status   `json:"status,omitempty"`
	Priority    domain.Priority `json:"priority,omitempty"`
}

// UpdateTaskRequest is the request for a partial task update.
// Nil fields are left unchanged.
type UpdateTaskRequest struct {
	UserID      string           `json:"user_id"`
	ID          string           `json:"id"`
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Status      *domain.Status   `json:"status,omitempty"`
	Priority    *domain.Priority `json:"priority,omitempty"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	UserID string `json:"user_id"`
	ID     string `json:"id"`
}

// DeleteTaskResponse is the response after deleting a task.
type DeleteTaskResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// ToggleTaskRequest is the request for toggling a task's completion.
type ToggleTaskRequest struct {
	UserID string `json:"user_id"`
	ID     string `json:"id"`
}

// TaskResponse wraps a single task in service responses.
type TaskResponse struct {
	Task domain.Task `json:"task"`
}
