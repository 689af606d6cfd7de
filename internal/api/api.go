// Package api is the HTTP plumbing shared by the backend client: JSON
// bodies, status-to-error mapping, and bounded retry for idempotent calls.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ib-partner-service/internal/logger"
)

// Client is a configured HTTP client bound to one base URL.
type Client struct {
	httpClient *http.Client
	baseURL    string
	headers    map[string]string
	useLogging bool
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithBaseURL prefixes every request path with baseURL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHeader sets a default header sent on every request.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithLogging enables request/response debug logging.
func WithLogging(enabled bool) ClientOption {
	return func(c *Client) {
		c.useLogging = enabled
	}
}

// NewClient creates a client with the given options.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		headers:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Response is a fully read HTTP response with a 2xx/3xx status.
type Response struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// ParseJSON decodes the response body into v.
func (r *Response) ParseJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}
	return nil
}

// String returns the body as text.
func (r *Response) String() string {
	return string(r.Body)
}

// GET performs a GET request.
func (c *Client) GET(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// POST performs a POST with a JSON-encoded body.
func (c *Client) POST(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// PUT performs a PUT with a JSON-encoded body.
func (c *Client) PUT(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*Response, error) {
	url := c.baseURL + path

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.useLogging {
		logger.Debug(ctx, "HTTP request", "method", method, "url", url)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.useLogging {
			logger.ErrorWithErr(ctx, "HTTP request failed", err, "method", method, "url", url)
		}
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if c.useLogging {
		logger.Debug(ctx, "HTTP response",
			"method", method,
			"url", url,
			"status", resp.StatusCode,
			"duration", time.Since(start),
			"bodySize", len(payload),
		)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(payload))
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       payload,
		Header:     resp.Header,
	}, nil
}

// RetryConfig bounds the retry loop.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
}

// GETWithRetry performs a GET with exponential backoff. Only GETs retry;
// the callers' mutating endpoints are not idempotent.
func (c *Client) GETWithRetry(ctx context.Context, path string, cfg *RetryConfig) (*Response, error) {
	if cfg == nil || cfg.MaxAttempts < 1 {
		cfg = &RetryConfig{MaxAttempts: 2, InitialWait: 500 * time.Millisecond, MaxWait: 3 * time.Second}
	}

	wait := cfg.InitialWait
	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		resp, err := c.GET(ctx, path)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if attempt == cfg.MaxAttempts {
			break
		}
		if c.useLogging {
			logger.Warn(ctx, "Request failed, retrying", "attempt", attempt, "error", err, "wait", wait)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
		if wait > cfg.MaxWait {
			wait = cfg.MaxWait
		}
	}
	return nil, fmt.Errorf("all %d attempts failed: %w", cfg.MaxAttempts, lastErr)
}
