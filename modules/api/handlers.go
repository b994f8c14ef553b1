package api

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/fajshah/faj-todo-phase2/modules/auth"
	"github.com/fajshah/faj-todo-phase2/modules/todo"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	authContainer mono.ServiceContainer
	authAdapter   auth.AuthPort
	todoAdapter   todo.TodoPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authContainer mono.ServiceContainer, authAdapter auth.AuthPort, todoAdapter todo.TodoPort) *Handlers {
	return &Handlers{
		authContainer: authContainer,
		authAdapter:   authAdapter,
		todoAdapter:   todoAdapter,
	}
}

// Register handles user registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return badRequest(c, "Username, email and password are required")
	}

	authReq := auth.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
	var resp auth.RegisterResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(), h.authContainer, "register",
		json.Marshal, json.Unmarshal,
		&authReq, &resp,
	); err != nil {
		return h.mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(AuthResponse{
		User:      resp.User,
		Token:     resp.Token,
		ExpiresIn: resp.ExpiresIn,
	})
}

// Login handles user login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	authReq := auth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	}
	var resp auth.LoginResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(), h.authContainer, "login",
		json.Marshal, json.Unmarshal,
		&authReq, &resp,
	); err != nil {
		return h.mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(AuthResponse{
		User:      resp.User,
		Token:     resp.Token,
		ExpiresIn: resp.ExpiresIn,
	})
}

// mapServiceError translates errors coming back over the service container
// into HTTP responses. Errors lose their sentinel identity crossing the
// container boundary, so they are matched by message. Anything unrecognized
// is a 500 with no internal detail leaked to the client.
func (h *Handlers) mapServiceError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "task not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Todo not found",
		})
	case strings.Contains(errStr, "invalid task id"):
		return badRequest(c, "Invalid todo id")
	case strings.Contains(errStr, "already exists"):
		return badRequest(c, "User with this username or email already exists")
	case strings.Contains(errStr, "invalid email or password"):
		return badRequest(c, "Invalid email or password")
	case isValidationMessage(errStr):
		return badRequest(c, validationMessage(errStr))
	default:
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}

// validationMessages are the rule violations produced by pkg/validate.
// Their exact text is part of the API surface, so matching on it here is as
// stable as matching a sentinel.
var validationMessages = []string{
	"title is required",
	"title cannot exceed",
	"description cannot exceed",
	"status must be one of",
	"priority must be one of",
	"username must be alphanumeric",
	"valid email is required",
	"password must be at least",
	"password must be at most",
}

func isValidationMessage(errStr string) bool {
	for _, m := range validationMessages {
		if strings.Contains(errStr, m) {
			return true
		}
	}
	return false
}

// validationMessage strips transport wrapping so the client sees only the
// rule violation itself.
func validationMessage(errStr string) string {
	for _, m := range validationMessages {
		if idx := strings.Index(errStr, m); idx >= 0 {
			return errStr[idx:]
		}
	}
	return errStr
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}
