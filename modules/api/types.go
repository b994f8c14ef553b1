package api

import (
	domaintask "github.com/fajshah/faj-todo-phase2/domain/task"
	domainuser "github.com/fajshah/faj-todo-phase2/domain/user"
)

// RegisterRequest represents a user registration request body.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the public user, the issued bearer token and the
// token's lifetime in seconds.
type AuthResponse struct {
	User      domainuser.PublicUser `json:"user"`
	Token     string                `json:"token"`
	ExpiresIn int64                 `json:"expires_in"`
}

// CreateTodoRequest represents a todo creation request body.
type CreateTodoRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Status      domaintask.Status   `json:"status,omitempty"`
	Priority    domaintask.Priority `json:"priority,omitempty"`
}

// UpdateTodoRequest represents a partial todo update request body.
// Absent fields are left unchanged.
type UpdateTodoRequest struct {
	Title       *string              `json:"title,omitempty"`
	Description *string              `json:"description,omitempty"`
	Status      *domaintask.Status   `json:"status,omitempty"`
	Priority    *domaintask.Priority `json:"priority,omitempty"`
}

// MessageResponse carries a human-readable confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
