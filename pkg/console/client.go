package console

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrSessionInvalidated is the typed signal the adapter returns when the
// server rejects the session credential. The session owner reacts to it;
// the adapter itself never mutates the store.
var ErrSessionInvalidated = errors.New("session invalidated by server")

// APIError carries a non-2xx response that is not a credential rejection.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// CredentialSource yields the bearer credential for a request. It is read at
// dispatch time, never captured at client construction, so a login that
// lands mid-flight is honored by the very next call.
type CredentialSource interface {
	Token() string
}

// Client is the HTTP adapter for the pileta API.
type Client struct {
	base    string
	http    *http.Client
	creds   CredentialSource
	onInval func()
}

// NewClient builds an adapter for the API at baseURL. onInvalidated, when
// non-nil, runs every time an authenticated request comes back 401; the
// session owner is expected to make its reaction idempotent.
func NewClient(baseURL string, creds CredentialSource, onInvalidated func()) *Client {
	return &Client{
		base:    strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		creds:   creds,
		onInval: onInvalidated,
	}
}

// Do issues a JSON request. body, when non-nil, is marshaled as the payload;
// out, when non-nil, receives the decoded 2xx response body.
//
// A 401 on a request that carried a credential returns ErrSessionInvalidated
// after notifying the invalidation hook. A 401 on an unauthenticated request
// (a failed login, say) is an ordinary *APIError: there is no session to
// tear down.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out, true)
}

// DoPublic issues a request without the bearer credential. Login and the
// recovery exchanges use it: a 401 there means the submitted input was
// wrong, never that the current session died, so prior state stays intact.
func (c *Client) DoPublic(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out, false)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, withAuth bool) error {
	var payload *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var token string
	if withAuth {
		token = c.creds.Token()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		if c.onInval != nil {
			c.onInval()
		}
		return ErrSessionInvalidated
	}

	if resp.StatusCode >= 400 {
		var envelope struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		return &APIError{Status: resp.StatusCode, Message: envelope.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
