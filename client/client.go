// Package client is a Go client for the todo service HTTP API. It wraps a
// single request primitive that attaches the bearer token, normalizes error
// responses and distinguishes transport failures from server rejections.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrSessionExpired is returned when the server rejects the stored token.
// The token is cleared before this error is returned, so the next call
// proceeds unauthenticated.
var ErrSessionExpired = errors.New("session expired")

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

// Error returns the server-provided message, or a generic status message
// when the server sent none.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("http error: status %d", e.Status)
}

// NetworkError is a transport-level failure: the request never produced an
// HTTP response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// TokenStore holds the bearer token between requests.
type TokenStore interface {
	Token() string
	SetToken(token string)
	Clear()
}

// Client talks to the todo service API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTokenStore replaces the default in-memory token store.
func WithTokenStore(ts TokenStore) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// New creates a client for the API at baseURL (e.g. "http://localhost:3000/api").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		tokens:     NewMemoryTokenStore(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// errorBody is the error response shape the server uses.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do performs a request against path, encoding body as JSON when non-nil and
// decoding a 2xx response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.tokens.Clear()
		return ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return &APIError{Status: resp.StatusCode, Message: eb.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
