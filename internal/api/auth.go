package api

import (
	"context"
	"net/http"

	"taskchat/internal/model"
)

// Session is the result of a successful login.
type Session struct {
	Token  string       `json:"token"`
	Viewer model.Viewer `json:"user"`
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token. The token is not installed
// on the client automatically; call SetToken (or persist it via config).
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var out Session
	if email == "" || password == "" {
		return out, errValidation("auth.login", "email and password are required")
	}
	err := c.do(ctx, "auth.login", http.MethodPost, "/api/auth/login", loginBody{Email: email, Password: password}, &out)
	return out, err
}

// Profile returns the viewer behind the current token.
func (c *Client) Profile(ctx context.Context) (model.Viewer, error) {
	var out model.Viewer
	err := c.do(ctx, "auth.profile", http.MethodGet, "/api/auth/profile", nil, &out)
	return out, err
}
