// Package remote talks to the labour logger backend: health checks,
// sign-in, and bulk entry download/upload.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/markargand/labourlog/internal/entry"
)

// DefaultTimeout bounds every request made by a Client built with NewClient
const DefaultTimeout = 20 * time.Second

// ErrNoAPIBase is returned when the client has no base URL
var ErrNoAPIBase = errors.New("no API base URL configured")

// User is the signed-in account reported by the backend.
type User struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Auth is the result of a successful sign-in.
type Auth struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Client calls the backend at BaseURL.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient returns a Client for baseURL with trailing slashes removed.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: TrimBase(baseURL),
		HTTP: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

// TrimBase strips surrounding whitespace and trailing slashes from an API base URL.
func TrimBase(base string) string {
	return strings.TrimRight(strings.TrimSpace(base), "/")
}

// Health calls GET /health and returns the raw JSON body, compacted.
func (c *Client) Health(ctx context.Context) (string, error) {
	body, err := c.do(ctx, http.MethodGet, "/health", "", nil)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		return "", fmt.Errorf("health response is not JSON: %w", err)
	}
	return buf.String(), nil
}

// Login posts form-encoded credentials to /auth/login.
func (c *Client) Login(ctx context.Context, username, password string) (Auth, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	body, err := c.do(ctx, http.MethodPost, "/auth/login",
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return Auth{}, err
	}

	var auth Auth
	if err := json.Unmarshal(body, &auth); err != nil {
		return Auth{}, fmt.Errorf("failed to decode login response: %w", err)
	}
	return auth, nil
}

// FetchEntries downloads every entry from GET /entries/.
func (c *Client) FetchEntries(ctx context.Context) ([]entry.TimeEntry, error) {
	body, err := c.do(ctx, http.MethodGet, "/entries/", "", nil)
	if err != nil {
		return nil, err
	}

	var wire []WireEntry
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode entries: %w", err)
	}

	out := make([]entry.TimeEntry, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.TimeEntry())
	}
	return out, nil
}

// PushEntries uploads entries to POST /entries/. The response body is ignored.
func (c *Client) PushEntries(ctx context.Context, entries []entry.TimeEntry) error {
	wire := make([]WireEntry, 0, len(entries))
	for _, e := range entries {
		wire = append(wire, ToWire(e))
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return err
	}

	_, err = c.do(ctx, http.MethodPost, "/entries/", "application/json", bytes.NewReader(data))
	return err
}

// do sends a request and returns the body of a 2xx response. Other statuses
// become errors carrying the response text, or the status text when empty.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	if c.BaseURL == "" {
		return nil, ErrNoAPIBase
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(data))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &StatusError{Method: method, Path: path, Code: resp.StatusCode, Message: msg}
	}
	return data, nil
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method  string
	Path    string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Code, e.Message)
}
