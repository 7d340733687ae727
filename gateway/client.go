// Package gateway holds the HTTP clients for the external laundry backend.
// Each area exposes an interface plus an HTTP implementation, mirroring a
// repository layer with the wire swapped for REST.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"laundrify/config"
)

type contextKey string

const tokenKey contextKey = "laundrify.authToken"

// WithToken returns a context carrying the caller's bearer token. Every
// gateway call forwards it to the backend as the Authorization header.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext extracts the bearer token, if any.
func TokenFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(tokenKey).(string); ok {
		return v
	}
	return ""
}

// APIError is a structured error reported by the backend. Its message is
// surfaced to the user verbatim.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

// IsAPIError reports whether err carries a structured backend message, as
// opposed to a transport failure.
func IsAPIError(err error) (*APIError, bool) {
	apiErr, ok := err.(*APIError)
	return apiErr, ok
}

// Client is the shared HTTP plumbing for all backend gateways.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient builds a gateway client against the configured backend URL.
func NewClient() *Client {
	return &Client{
		BaseURL:    config.AppConfig.BackendAPIURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// do performs a JSON request against the backend and decodes the response
// into out (which may be nil). Non-2xx responses are returned as *APIError
// when the body carries a message, matching how the old client surfaced
// server errors verbatim.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("gateway: failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("gateway: failed to decode response: %w", err)
		}
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		msg := payload.Message
		if msg == "" {
			msg = payload.Error
		}
		if msg != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: msg}
		}
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("backend returned status %d", resp.StatusCode),
	}
}
