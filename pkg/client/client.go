// Package client is a Go consumer of the devlink API. It mirrors the web
// client's centralized auth state: every call outcome reduces a single State
// value and notifies subscribers.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// FieldError is a single entry of a validation failure response.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// APIError is any non-2xx response decoded into the API's error shapes.
type APIError struct {
	Status int
	Msg    string
	Fields []FieldError
}

func (e *APIError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("api: %d %s", e.Status, e.Msg)
	}
	if len(e.Fields) > 0 {
		return fmt.Sprintf("api: %d %s", e.Status, e.Fields[0].Msg)
	}
	return fmt.Sprintf("api: %d", e.Status)
}

type Client struct {
	baseURL string
	http    *http.Client
	storage TokenStorage

	mu    sync.Mutex
	state State
	subs  []func(State)
}

// New builds a client whose initial state carries the stored token (if any)
// and Loading=true, matching the web client's boot sequence: the token is
// present but unverified until LoadUser runs.
func New(baseURL string, storage TokenStorage) *Client {
	token, _ := storage.Load()
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		storage: storage,
		state: State{
			Token:   token,
			Loading: true,
		},
	}
}

// Subscribe registers fn to run after every state transition.
func (c *Client) Subscribe(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// State returns a copy of the current state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Register creates an account. Success stores the token and marks the
// session authenticated; failure clears any stored token.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/users", body, false, &resp); err != nil {
		c.authFailed()
		return err
	}
	c.authSucceeded(resp.Token)
	return nil
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, false, &resp); err != nil {
		c.authFailed()
		return err
	}
	c.authSucceeded(resp.Token)
	return nil
}

// LoadUser resolves the stored token to its user record. An auth failure
// resets the session the way the web client does on AUTH_ERROR.
func (c *Client) LoadUser(ctx context.Context) error {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/auth", nil, true, &user); err != nil {
		c.authFailed()
		return err
	}

	c.transition(func(s *State) {
		s.Authenticated = true
		s.Loading = false
		s.User = &user
	})
	return nil
}

// Logout clears the token and resets the state.
func (c *Client) Logout() {
	c.authFailed()
}

func (c *Client) authSucceeded(token string) {
	_ = c.storage.Save(token)
	c.transition(func(s *State) {
		s.Token = token
		s.Authenticated = true
		s.Loading = false
	})
}

func (c *Client) authFailed() {
	_ = c.storage.Clear()
	c.transition(func(s *State) {
		s.Token = ""
		s.Authenticated = false
		s.Loading = false
		s.User = nil
	})
}

func (c *Client) transition(mutate func(*State)) {
	c.mu.Lock()
	mutate(&c.state)
	snapshot := c.state
	subs := c.subs
	c.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, withToken bool, out any) error {
	var buf *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewBuffer(data)
	} else {
		buf = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if withToken {
		req.Header.Set("x-auth-token", c.State().Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var payload struct {
		Msg    string       `json:"msg"`
		Errors []FieldError `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		apiErr.Msg = payload.Msg
		apiErr.Fields = payload.Errors
	}
	return apiErr
}
