// Package client is the HTTP client the board uses to talk to the
// activities API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Shivanand-hulikatti/activity-board/internal/model"
)

// TransportError reports a request that produced no usable response: it
// could not be sent, or its body could not be decoded.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError reports a non-2xx response. Detail is the server's "detail"
// field when the body carried one.
type APIError struct {
	Op         string
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
}

// Client calls the activities API rooted at a base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New constructs a Client. No request timeout is applied; callers bound
// requests through their context.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Activities fetches the full catalog from GET /activities.
func (c *Client) Activities(ctx context.Context) (*model.Catalog, error) {
	const op = "list activities"

	resp, err := c.do(ctx, http.MethodGet, c.baseURL+"/activities")
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if !ok(resp.StatusCode) {
		detail, _ := decodeDetail(resp.Body)
		return nil, &APIError{Op: op, StatusCode: resp.StatusCode, Detail: detail}
	}

	catalog := model.NewCatalog()
	if err := json.NewDecoder(resp.Body).Decode(catalog); err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	return catalog, nil
}

// Signup posts to /activities/{name}/signup and returns the success body.
// Every response body must be JSON: a non-2xx response with an undecodable
// body is a TransportError, and one whose JSON has no "detail" field is an
// APIError with an empty Detail.
func (c *Client) Signup(ctx context.Context, activity, email string) (model.MessageResponse, error) {
	const op = "signup"

	resp, err := c.do(ctx, http.MethodPost, c.mutationURL(activity, "signup", email))
	if err != nil {
		return model.MessageResponse{}, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if !ok(resp.StatusCode) {
		detail, err := decodeDetail(resp.Body)
		if err != nil {
			return model.MessageResponse{}, &TransportError{Op: op, Err: fmt.Errorf("status %d: %w", resp.StatusCode, err)}
		}
		return model.MessageResponse{}, &APIError{Op: op, StatusCode: resp.StatusCode, Detail: detail}
	}

	var body model.MessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return model.MessageResponse{}, &TransportError{Op: op, Err: err}
	}
	return body, nil
}

// Unregister posts to /activities/{name}/unregister. Only the status code
// matters; the body is discarded.
func (c *Client) Unregister(ctx context.Context, activity, email string) error {
	const op = "unregister"

	resp, err := c.do(ctx, http.MethodPost, c.mutationURL(activity, "unregister", email))
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if !ok(resp.StatusCode) {
		return &APIError{Op: op, StatusCode: resp.StatusCode}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return c.http.Do(req)
}

func (c *Client) mutationURL(activity, action, email string) string {
	return fmt.Sprintf("%s/activities/%s/%s?email=%s",
		c.baseURL, EncodeComponent(activity), action, EncodeComponent(email))
}

// componentUnescaper restores the characters encodeURIComponent leaves
// alone but url.QueryEscape escapes.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent percent-encodes s for use as a single path segment or
// query value, producing the same output as JavaScript's
// encodeURIComponent.
func EncodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

func ok(status int) bool {
	return status >= 200 && status < 300
}

// decodeDetail reads an error body. A JSON "detail" that is not a string
// (FastAPI-style validation lists) decodes to an empty Detail.
func decodeDetail(r io.Reader) (string, error) {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 1<<20)).Decode(&body); err != nil {
		return "", err
	}
	var detail string
	if err := json.Unmarshal(body.Detail, &detail); err != nil {
		return "", nil
	}
	return detail, nil
}
