// Package supabase implements identity.Provider against the Supabase
// GoTrue REST API.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vibetrip/vibetrip-api/identity"
)

// Client talks to the Supabase auth endpoints. Every call is a single
// round trip with no retries or caching. The underlying http.Client sets
// no timeout; cancellation comes from the caller's context only.
type Client struct {
	baseURL    string
	anonKey    string
	serviceKey string
	httpClient *http.Client
}

// compile-time interface check
var _ identity.Provider = (*Client)(nil)

// NewClient creates a Supabase auth client.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/") + "/auth/v1",
		anonKey:    cfg.AnonKey,
		serviceKey: cfg.ServiceKey,
		httpClient: &http.Client{},
	}, nil
}

// UserFromToken resolves an access token to the account it belongs to.
func (c *Client) UserFromToken(ctx context.Context, accessToken string) (*identity.User, error) {
	body, err := c.do(ctx, http.MethodGet, "/user", accessToken, nil)
	if err != nil {
		return nil, err
	}

	var user identity.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("supabase: decode user: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("supabase: provider returned no user")
	}
	return &user, nil
}

// SignUp creates a new account via POST /signup.
func (c *Client) SignUp(ctx context.Context, params identity.SignUpParams) (*identity.Session, error) {
	payload := map[string]any{
		"email":    params.Email,
		"password": params.Password,
	}
	if len(params.Data) > 0 {
		payload["data"] = params.Data
	}

	body, err := c.do(ctx, http.MethodPost, "/signup", "", payload)
	if err != nil {
		return nil, err
	}
	return decodeSession(body)
}

// SignInWithPassword authenticates via the password grant.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*identity.Session, error) {
	body, err := c.do(ctx, http.MethodPost, "/token?grant_type=password", "", map[string]any{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	return decodeSession(body)
}

// do executes one request against the auth API and returns the raw body.
func (c *Client) do(ctx context.Context, method, path, bearer string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("supabase: encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("supabase: create request: %w", err)
	}
	c.setHeaders(req, bearer)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("supabase: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("supabase: read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("supabase: %s %s failed (status %d): %s",
			method, path, resp.StatusCode, errorText(body))
	}
	return body, nil
}

// setHeaders applies the API key and, when present, the caller's token.
// Without a bearer the anon key doubles as the Authorization credential,
// which is what the provider expects for sign-up and sign-in.
func (c *Client) setHeaders(req *http.Request, bearer string) {
	req.Header.Set("apikey", c.anonKey)
	if bearer == "" {
		bearer = c.anonKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
}

// decodeSession parses a session response. Sign-up with email
// confirmation enabled returns the bare user object instead of a
// session; both shapes are accepted.
func decodeSession(body []byte) (*identity.Session, error) {
	var session identity.Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("supabase: decode session: %w", err)
	}
	if session.User == nil {
		var user identity.User
		if err := json.Unmarshal(body, &user); err == nil && user.ID != "" {
			session.User = &user
		}
	}
	if session.User == nil || session.User.ID == "" {
		return nil, fmt.Errorf("supabase: provider returned no user")
	}
	return &session, nil
}

// errorText extracts the provider's error message from a response body,
// falling back to the raw body.
func errorText(body []byte) string {
	var e struct {
		Msg         string `json:"msg"`
		Message     string `json:"message"`
		Description string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &e); err == nil {
		switch {
		case e.Msg != "":
			return e.Msg
		case e.Message != "":
			return e.Message
		case e.Description != "":
			return e.Description
		}
	}
	return string(body)
}
