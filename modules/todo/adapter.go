package todo

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/fajshah/faj-todo-phase2/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TodoPort defines the interface other modules use to access task operations.
// Every call is scoped to the owning user.
type TodoPort interface {
	List(ctx context.Context, req ListTasksRequest) (*ListTasksResponse, error)
	Get(ctx context.Context, userID, id string) (*domain.Task, error)
	Create(ctx context.Context, req CreateTaskRequest) (*domain.Task, error)
	Update(ctx context.Context, req UpdateTaskRequest) (*domain.Task, error)
	Delete(ctx context.Context, userID, id string) error
	Toggle(ctx context.Context, userID, id string) (*domain.Task, error)
}

// TodoAdapter implements TodoPort using the service container.
type TodoAdapter struct {
	container mono.ServiceContainer
}

// NewTodoAdapter creates a new TodoAdapter.
func NewTodoAdapter(container mono.ServiceContainer) *TodoAdapter {
	return &TodoAdapter{
		container: container,
	}
}

// List returns a page of the user's tasks.
func (a *TodoAdapter) List(ctx context.Context, req ListTasksRequest) (*ListTasksResponse, error) {
	var resp ListTasksResponse
	if err := a.call(ctx, "list", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get returns the user's task with the given ID.
func (a *TodoAdapter) Get(ctx context.Context, userID, id string) (*domain.Task, error) {
	req := GetTaskRequest{UserID: userID, ID: id}
	var resp TaskResponse
	if err := a.call(ctx, "get", &req, &resp); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

// Create stores a new task for the user.
func (a *TodoAdapter) Create(ctx context.Context, req CreateTaskRequest) (*domain.Task, error) {
	var resp TaskResponse
	if err := a.call(ctx, "create", &req, &resp); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

// Update applies a partial update to the user's task.
func (a *TodoAdapter) Update(ctx context.Context, req UpdateTaskRequest) (*domain.Task, error) {
	var resp TaskResponse
	if err := a.call(ctx, "update", &req, &resp); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

// Delete removes the user's task.
func (a *TodoAdapter) Delete(ctx context.Context, userID, id string) error {
	req := DeleteTaskRequest{UserID: userID, ID: id}
	var resp DeleteTaskResponse
	return a.call(ctx, "delete", &req, &resp)
}

// Toggle flips the completion state of the user's task.
func (a *TodoAdapter) Toggle(ctx context.Context, userID, id string) (*domain.Task, error) {
	req := ToggleTaskRequest{UserID: userID, ID: id}
	var resp TaskResponse
	if err := a.call(ctx, "toggle", &req, &resp); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

func (a *TodoAdapter) call(ctx context.Context, service string, req, resp any) error {
	if err := helper.CallRequestReplyService[any, any](
		ctx, a.container, service,
		json.Marshal, json.Unmarshal,
		req, &resp,
	); err != nil {
		return fmt.Errorf("%s request failed: %w", service, err)
	}
	return nil
}
