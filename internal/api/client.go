// Package api is the HTTP client for the task manager's REST API: auth,
// tasks, and the per-task comment threads. It owns no state beyond the
// connection settings; every call reports success or a classified *Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	logger  *slog.Logger
}

type Option func(*Client)

func WithToken(token string) Option {
	return func(c *Client) { c.token = strings.TrimSpace(token) }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHTTPClient replaces the underlying http.Client (tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpc = h
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// SetToken swaps the bearer token after a login.
func (c *Client) SetToken(token string) { c.token = strings.TrimSpace(token) }

// serverError is the error envelope the service returns on failure.
type serverError struct {
	Message string `json:"message"`
}

// do issues one request and decodes a JSON response into out (when non-nil).
// Every failure is classified into the Kind taxonomy; there are no retries.
func (c *Client) do(ctx context.Context, op, method, path string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindValidation, Op: op, Err: err}
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return &Error{Kind: KindValidation, Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "op", op, "method", method, "path", path, "err", err)
		if errors.Is(err, context.Canceled) {
			return &Error{Kind: KindNetwork, Op: op, Message: "request canceled", Err: err}
		}
		return &Error{Kind: KindNetwork, Op: op, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()
	c.logger.Debug("request", "op", op, "method", method, "path", path,
		"status", resp.StatusCode, "dur", time.Since(start))

	if resp.StatusCode >= 400 {
		return c.classify(op, resp)
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindServer, Op: op, Message: "malformed response", Err: err}
	}
	return nil
}

func (c *Client) classify(op string, resp *http.Response) error {
	msg := ""
	var se serverError
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&se); err == nil {
		msg = strings.TrimSpace(se.Message)
	}
	if msg == "" {
		msg = fmt.Sprintf("server returned %s", resp.Status)
	}

	kind := KindServer
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		kind = KindAuth
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		kind = KindValidation
	}
	return &Error{Kind: kind, Op: op, Message: msg, Status: resp.StatusCode}
}
