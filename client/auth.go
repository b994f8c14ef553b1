package client

import (
	"context"
	"net/http"

	domain "github.com/fajshah/faj-todo-phase2/domain/user"
)

// Credentials is a registration or login payload.
type Credentials struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse mirrors the server's auth response body.
type authResponse struct {
	User  domain.PublicUser `json:"user"`
	Token string            `json:"token"`
}

// Register creates a new account and stores the issued token for
// subsequent requests.
func (c *Client) Register(ctx context.Context, username, email, password string) (*domain.PublicUser, error) {
	body := Credentials{Username: username, Email: email, Password: password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &resp); err != nil {
		return nil, err
	}
	c.tokens.SetToken(resp.Token)
	return &resp.User, nil
}

// Login authenticates and stores the issued token for subsequent requests.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.PublicUser, error) {
	body := Credentials{Email: email, Password: password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	c.tokens.SetToken(resp.Token)
	return &resp.User, nil
}

// Logout clears the stored token.
func (c *Client) Logout() {
	c.tokens.Clear()
}

// Authenticated reports whether a token is currently stored.
func (c *Client) Authenticated() bool {
	return c.tokens.Token() != ""
}
