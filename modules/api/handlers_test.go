package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	domaintask "github.com/fajshah/faj-todo-phase2/domain/task"
	domainuser "github.com/fajshah/faj-todo-phase2/domain/user"
	"github.com/fajshah/faj-todo-phase2/modules/todo"
	"github.com/gofiber/fiber/v2"
)

// mockTodoPort implements todo.TodoPort for testing
type mockTodoPort struct {
	listFunc   func(ctx context.Context, req todo.ListTasksRequest) (*todo.ListTasksResponse, error)
	getFunc    func(ctx context.Context, userID, id string) (*domaintask.Task, error)
	createFunc func(ctx context.Context, req todo.CreateTaskRequest) (*domaintask.Task, error)
	updateFunc func(ctx context.Context, req todo.UpdateTaskRequest) (*domaintask.Task, error)
	deleteFunc func(ctx context.Context, userID, id string) error
	toggleFunc func(ctx context.Context, userID, id string) (*domaintask.Task, error)
}

func (m *mockTodoPort) List(ctx context.Context, req todo.ListTasksRequest) (*todo.ListTasksResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTodoPort) Get(ctx context.Context, userID, id string) (*domaintask.Task, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTodoPort) Create(ctx context.Context, req todo.CreateTaskRequest) (*domaintask.Task, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTodoPort) Update(ctx context.Context, req todo.UpdateTaskRequest) (*domaintask.Task, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTodoPort) Delete(ctx context.Context, userID, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userID, id)
	}
	return errors.New("not implemented")
}

func (m *mockTodoPort) Toggle(ctx context.Context, userID, id string) (*domaintask.Task, error) {
	if m.toggleFunc != nil {
		return m.toggleFunc(ctx, userID, id)
	}
	return nil, errors.New("not implemented")
}

// setupApp mounts the real route table over mock ports. The auth mock accepts
// "Bearer valid-token" as user-123; everything else fails validation.
func setupApp(t *testing.T, todoPort *mockTodoPort) *fiber.App {
	t.Helper()

	authPort := &mockAuthPort{
		validateTokenFunc: func(ctx context.Context, token string) (*domainuser.Claims, error) {
			if token == "valid-token" {
				return &domainuser.Claims{
					UserID:   "user-123",
					Username: "tester",
					Email:    "test@example.com",
				}, nil
			}
			return nil, errors.New("token validation failed")
		},
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})
	registerRoutes(app, NewHandlers(nil, authPort, todoPort), authPort)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer valid-token")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("io.ReadAll() error = %v", err)
	}
	return resp, string(raw)
}

func TestListTodos(t *testing.T) {
	var captured todo.ListTasksRequest
	mock := &mockTodoPort{
		listFunc: func(ctx context.Context, req todo.ListTasksRequest) (*todo.ListTasksResponse, error) {
			captured = req
			return &todo.ListTasksResponse{
				Todos: []domaintask.Task{
					{ID: "t1", UserID: req.UserID, Title: "Buy milk", Status: domaintask.StatusPending},
				},
				Total:       25,
				TotalPages:  3,
				CurrentPage: req.Page,
			}, nil
		},
	}
	app := setupApp(t, mock)

	resp, body := doRequest(t, app, "GET", "/api/todos/?page=2&limit=10&status=pending&priority=high", "")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %v, want %v (body %s)", resp.StatusCode, http.StatusOK, body)
	}
	if captured.UserID != "user-123" {
		t.Errorf("req.UserID = %v, want user-123", captured.UserID)
	}
	if captured.Page != 2 || captured.Limit != 10 {
		t.Errorf("req.Page/Limit = %v/%v, want 2/10", captured.Page, captured.Limit)
	}
	if captured.Status != domaintask.StatusPending || captured.Priority != domaintask.PriorityHigh {
		t.Errorf("req.Status/Priority = %v/%v, want pending/high", captured.Status, captured.Priority)
	}

	var page todo.ListTasksResponse
	if err := json.Unmarshal([]byte(body), &page); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if page.Total != 25 || page.TotalPages != 3 || page.CurrentPage != 2 {
		t.Errorf("pagination = %v/%v/%v, want 25/3/2", page.Total, page.TotalPages, page.CurrentPage)
	}
	if len(page.Todos) != 1 || page.Todos[0].Title != "Buy milk" {
		t.Errorf("unexpected todos payload: %s", body)
	}
}

func TestListTodos_DefaultPaging(t *testing.T) {
	var captured todo.ListTasksRequest
	mock := &mockTodoPort{
		listFunc: func(ctx context.Context, req todo.ListTasksRequest) (*todo.ListTasksResponse, error) {
			captured = req
			return &todo.ListTasksResponse{Todos: []domaintask.Task{}, CurrentPage: req.Page}, nil
		},
	}
	app := setupApp(t, mock)

	resp, body := doRequest(t, app, "GET", "/api/todos/", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %v, want %v (body %s)", resp.StatusCode, http.StatusOK, body)
	}
	if captured.Page != 1 || captured.Limit != 10 {
		t.Errorf("req.Page/Limit = %v/%v, want defaults 1/10", captured.Page, captured.Limit)
	}
}

func TestTodoRoutes_RequireAuth(t *testing.T) {
	app := setupApp(t, &mockTodoPort{})

	routes := []struct {
		method string
		path   string
	}{
		{"GET", "/api/todos/"},
		{"POST", "/api/todos/"},
		{"GET", "/api/todos/t1"},
		{"PUT", "/api/todos/t1"},
		{"DELETE", "/api/todos/t1"},
		{"PATCH", "/api/todos/t1/toggle"},
	}

	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			req := httptest.NewRequest(r.method, r.path, nil)
			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusUnauthorized)
			}
		})
	}
}

func TestGetTodo(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mock := &mockTodoPort{
			getFunc: func(ctx context.Context, userID, id string) (*domaintask.Task, error) {
				return &domaintask.Task{ID: id, UserID: userID, Title: "Buy milk"}, nil
			},
		}
		app := setupApp(t, mock)

		resp, body := doRequest(t, app, "GET", "/api/todos/t1", "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %v, want %v (body %s)", resp.StatusCode, http.StatusOK, body)
		}
		if !strings.Contains(body, `"Buy milk"`) {
			t.Errorf("body = %s, want task payload", body)
		}
	})

	t.Run("not found", func(t *testing.T) {
		mock := &mockTodoPort{
			getFunc: func(ctx context.Context, userID, id string) (*domaintask.Task, error) {
				return nil, errors.New("get request failed: task not found")
			},
		}
		app := setupApp(t, mock)

		resp, body := doRequest(t, app, "GET", "/api/todos/missing", "")
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusNotFound)
		}
		if !strings.Contains(body, "Todo not found") {
			t.Errorf("body = %s, want not-found message", body)
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		mock := &mockTodoPort{
			getFunc: func(ctx context.Context, userID, id string) (*domaintask.Task, error) {
				return nil, errors.New(`get request failed: invalid task id: "abc"`)
			},
		}
		app := setupApp(t, mock)

		resp, body := doRequest(t, app, "GET", "/api/todos/abc", "")
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusBadRequest)
		}
		if !strings.Contains(body, "Invalid todo id") {
			t.Errorf("body = %s, want invalid-id message", body)
		}
	})
}

func TestCreateTodo(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		var captured todo.CreateTaskRequest
		mock := &mockTodoPort{
			createFunc: func(ctx context.Context, req todo.CreateTaskRequest) (*domaintask.Task, error) {
				captured = req
				now := time.Now()
				return &domaintask.Task{
					ID:        "t1",
					UserID:    req.UserID,
					Title:     strings.TrimSpace(req.Title),
					Status:    domaintask.StatusPending,
					Priority:  domaintask.PriorityMedium,
					CreatedAt: now,
					UpdatedAt: now,
				}, nil
			},
		}
		app := setupApp(t, mock)

		resp, body := doRequest(t, app, "POST", "/api/todos/", `{"title":"Buy milk","description":"Two liters"}`)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %v, want %v (body %s)", resp.StatusCode, http.StatusCreated, body)
		}
		if captured.UserID != "user-123" {
			t.Errorf("req.UserID = %v, want user-123", captured.UserID)
		}
		if captured.Title != "Buy milk" || captured.Description != "Two liters" {
			t.Errorf("req = %+v, want title and description from body", captured)
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		mock := &mockTodoPort{
			createFunc: func(ctx context.Context, req todo.CreateTaskRequest) (*domaintask.Task, error) {
				return nil, errors.New("create request failed: title is required")
			},
		}
		app := setupApp(t, mock)

		resp, body := doRequest(t, app, "POST", "/api/todos/", `{"title":"   "}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusBadRequest)
		}
		// Transport wrapping is stripped; the client sees only the rule.
		if !strings.Contains(body, "title is required") || strings.Contains(body, "request failed") {
			t.Errorf("body = %s, want bare validation message", body)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		app := setupApp(t, &mockTodoPort{})

		resp, body := doRequest(t, app, "POST", "/api/todos/", `{not json`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusBadRequest)
		}
		if !strings.Contains(body, "Invalid request body") {
			t.Errorf("body = %s, want invalid-body message", body)
		}
	})
}

func TestUpdateTodo(t *testing.T) {
	var captured todo.UpdateTaskRequest
	mock := &mockTodoPort{
		updateFunc: func(ctx context.Context, req todo.UpdateTaskRequest) (*domaintask.Task, error) {
			captured = req
			return &domaintask.Task{ID: req.ID, UserID: req.UserID, Title: *req.Title}, nil
		},
	}
	app := setupApp(t, mock)

	resp, body := doRequest(t, app, "PUT", "/api/todos/t1", `{"title":"Buy oat milk"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %v, want %v (body %s)", resp.StatusCode, http.StatusOK, body)
	}
	if captured.ID != "t1" || captured.UserID != "user-123" {
		t.Errorf("req ID/UserID = %v/%v, want t1/user-123", captured.ID, captured.UserID)
	}
	if captured.Title == nil || *captured.Title != "Buy oat milk" {
		t.Errorf("req.Title = %v, want pointer to new title", captured.Title)
	}
	// Absent fields arrive as nil so the service leaves them unchanged.
	if captured.Description != nil || captured.Status != nil || captured.Priority != nil {
		t.Errorf("req = %+v, want nil for fields absent from the body", captured)
	}
}

func TestDeleteTodo(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		var gotID string
		mock := &mockTodoPort{
			deleteFunc: func(ctx context.Context, userID, id string) error {
				gotID = id
				return nil
			},
		}
		app := setupApp(t, mock)

		resp, body := doRequest(t, app, "DELETE", "/api/todos/t1", "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %v, want %v (body %s)", resp.StatusCode, http.StatusOK, body)
		}
		if gotID != "t1" {
			t.Errorf("deleted id = %v, want t1", gotID)
		}
		if !strings.Contains(body, "Todo deleted successfully") {
			t.Errorf("body = %s, want deletion message", body)
		}
	})

	t.Run("missing", func(t *testing.T) {
		mock := &mockTodoPort{
			deleteFunc: func(ctx context.Context, userID, id string) error {
				return errors.New("delete request failed: task not found")
			},
		}
		app := setupApp(t, mock)

		resp, _ := doRequest(t, app, "DELETE", "/api/todos/missing", "")
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusNotFound)
		}
	})
}

func TestToggleTodo(t *testing.T) {
	mock := &mockTodoPort{
		toggleFunc: func(ctx context.Context, userID, id string) (*domaintask.Task, error) {
			return &domaintask.Task{ID: id, UserID: userID, Status: domaintask.StatusCompleted}, nil
		},
	}
	app := setupApp(t, mock)

	resp, body := doRequest(t, app, "PATCH", "/api/todos/t1/toggle", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %v, want %v (body %s)", resp.StatusCode, http.StatusOK, body)
	}
	if !strings.Contains(body, `"completed"`) {
		t.Errorf("body = %s, want toggled task", body)
	}
}

func TestUnrecognizedErrorIsOpaque(t *testing.T) {
	mock := &mockTodoPort{
		getFunc: func(ctx context.Context, userID, id string) (*domaintask.Task, error) {
			return nil, errors.New("get request failed: disk on fire at /var/db")
		},
	}
	app := setupApp(t, mock)

	resp, body := doRequest(t, app, "GET", "/api/todos/t1", "")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusInternalServerError)
	}
	if strings.Contains(body, "disk on fire") {
		t.Errorf("body = %s, internal detail leaked to the client", body)
	}
	if !strings.Contains(body, "An internal error occurred") {
		t.Errorf("body = %s, want generic message", body)
	}
}

func TestHealthEndpoint(t *testing.T) {
	app := setupApp(t, &mockTodoPort{})

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusOK)
	}
}
