package api

import (
	domaintask "github.com/fajshah/faj-todo-phase2/domain/task"
	domainuser "github.com/fajshah/faj-todo-phase2/domain/user"
	"github.com/fajshah/faj-todo-phase2/modules/todo"
	"github.com/gofiber/fiber/v2"
)

// ListTodos handles GET /api/todos with optional status, priority, page and
// limit query parameters.
func (h *Handlers) ListTodos(c *fiber.Ctx) error {
	claims, ok := requestClaims(c)
	if !ok {
		return unauthenticated(c)
	}

	req := todo.ListTasksRequest{
		UserID:   claims.UserID,
		Status:   domaintask.Status(c.Query("status")),
		Priority: domaintask.Priority(c.Query("priority")),
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 10),
	}

	resp, err := h.todoAdapter.List(c.UserContext(), req)
	if err != nil {
		return h.mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetTodo handles GET /api/todos/:id.
func (h *Handlers) GetTodo(c *fiber.Ctx) error {
	claims, ok := requestClaims(c)
	if !ok {
		return unauthenticated(c)
	}

	t, err := h.todoAdapter.Get(c.UserContext(), claims.UserID, c.Params("id"))
	if err != nil {
		return h.mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(t)
}

// CreateTodo handles POST /api/todos.
func (h *Handlers) CreateTodo(c *fiber.Ctx) error {
	claims, ok := requestClaims(c)
	if !ok {
		return unauthenticated(c)
	}

	var req CreateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	t, err := h.todoAdapter.Create(c.UserContext(), todo.CreateTaskRequest{
		UserID:      claims.UserID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		return h.mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(t)
}

// UpdateTodo handles PUT /api/todos/:id with a partial body.
func (h *Handlers) UpdateTodo(c *fiber.Ctx) error {
	claims, ok := requestClaims(c)
	if !ok {
		return unauthenticated(c)
	}

	var req UpdateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	t, err := h.todoAdapter.Update(c.UserContext(), todo.UpdateTaskRequest{
		UserID:      claims.UserID,
		ID:          c.Params("id"),
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		return h.mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(t)
}

// DeleteTodo handles DELETE /api/todos/:id.
func (h *Handlers) DeleteTodo(c *fiber.Ctx) error {
	claims, ok := requestClaims(c)
	if !ok {
		return unauthenticated(c)
	}

	if err := h.todoAdapter.Delete(c.UserContext(), claims.UserID, c.Params("id")); err != nil {
		return h.mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Message: "Todo deleted successfully",
	})
}

// ToggleTodo handles PATCH /api/todos/:id/toggle.
func (h *Handlers) ToggleTodo(c *fiber.Ctx) error {
	claims, ok := requestClaims(c)
	if !ok {
		return unauthenticated(c)
	}

	t, err := h.todoAdapter.Toggle(c.UserContext(), claims.UserID, c.Params("id"))
	if err != nil {
		return h.mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(t)
}

// requestClaims returns the identity the auth middleware attached to the
// request. The second return is false when no identity is present, which
// only happens if a route was wired without the middleware.
func requestClaims(c *fiber.Ctx) (*domainuser.Claims, bool) {
	claims, ok := c.Locals(UserContextKey).(*domainuser.Claims)
	return claims, ok
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: "User not authenticated",
	})
}
