package backend

import (
	"context"
	"encoding/json"
	"net/http"
)

// RegisterRequest carries the credentials for account registration
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest carries the credentials for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register forwards a registration to the backend. The auth payload shape is
// owned by the backend, so the response is passed through untouched.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (json.RawMessage, error) {
	var result json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Login forwards a login to the backend and passes the response through
func (c *Client) Login(ctx context.Context, req LoginRequest) (json.RawMessage, error) {
	var result json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &result); err != nil {
		return nil, err
	}
	return result, nil
}
