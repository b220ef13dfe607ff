package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/dyluth/noticeboard/pkg/notice"
)

// HTTPDoer is the transport capability the client depends on.
// *http.Client satisfies it; tests substitute their own.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the /api/messages collection resource.
// It holds no state beyond its configuration and is safe for concurrent use.
type Client struct {
	baseURL *url.URL
	http    HTTPDoer
}

// NewClient creates a client for the server rooted at baseURL
// (e.g. "http://localhost:3003"). The /api prefix is added by the client.
//
// Returns an error if baseURL is not an absolute http(s) URL or doer is nil.
func NewClient(baseURL string, doer HTTPDoer) (*Client, error) {
	if doer == nil {
		return nil, fmt.Errorf("http client cannot be nil")
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL: %s (scheme must be http or https)", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid base URL: %s (missing host)", baseURL)
	}

	return &Client{baseURL: u, http: doer}, nil
}

// BaseURL returns the server root this client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListMessages fetches the full collection with GET /api/messages.
// The server decides the order; the client never re-sorts.
func (c *Client) ListMessages(ctx context.Context) ([]notice.Message, error) {
	return c.listFrom(ctx, OpList, "/api/messages")
}

// ListActiveMessages fetches GET /api/messages/active, the subset the server
// considers currently active.
func (c *Client) ListActiveMessages(ctx context.Context) ([]notice.Message, error) {
	return c.listFrom(ctx, OpListActive, "/api/messages/active")
}

// CreateMessage sends POST /api/messages. The response body is not relied upon.
func (c *Client) CreateMessage(ctx context.Context, req notice.CreateMessageRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return &TransportError{Op: OpCreate, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	resp, err := c.do(ctx, OpCreate, http.MethodPost, "/api/messages", body)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

// DeleteMessage sends DELETE /api/messages/{id}.
func (c *Client) DeleteMessage(ctx context.Context, id string) error {
	resp, err := c.do(ctx, OpDelete, http.MethodDelete, messagePath(id), nil)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

// ToggleMessage sends POST /api/messages/{id}/toggle, flipping the enabled flag.
func (c *Client) ToggleMessage(ctx context.Context, id string) error {
	resp, err := c.do(ctx, OpToggle, http.MethodPost, messagePath(id)+"/toggle", nil)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

// GetStats fetches GET /api/stats.
func (c *Client) GetStats(ctx context.Context) (*notice.Stats, error) {
	resp, err := c.do(ctx, OpStats, http.MethodGet, "/api/stats", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var stats notice.Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, &TransportError{Op: OpStats, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return &stats, nil
}

func (c *Client) listFrom(ctx context.Context, op Op, path string) ([]notice.Message, error) {
	resp, err := c.do(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var messages []notice.Message
	if err := json.NewDecoder(resp.Body).Decode(&messages); err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	// A JSON null is still a complete, empty snapshot
	if messages == nil {
		messages = []notice.Message{}
	}

	log.Printf("[API] %s: %d messages", op, len(messages))
	return messages, nil
}

// do performs one round trip and maps failures onto TransportError / StatusError.
// On success the caller owns resp.Body.
func (c *Client) do(ctx context.Context, op Op, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("[API] %s %s failed: %v", method, path, err)
		return nil, &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drain(resp)
		log.Printf("[API] %s %s returned %d", method, path, resp.StatusCode)
		return nil, &StatusError{Op: op, StatusCode: resp.StatusCode}
	}

	return resp, nil
}

func messagePath(id string) string {
	return "/api/messages/" + url.PathEscape(id)
}

// drain discards and closes a response body so the connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
