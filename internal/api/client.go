// ABOUTME: HTTP client performing authenticated calls against the backend
// ABOUTME: Attaches bearer credentials and normalizes responses and errors

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// TokenSource returns the current access token, or empty when no credential
// is available. It is read once per request so each in-flight call carries
// its own snapshot.
type TokenSource func() string

// Config holds client construction parameters.
type Config struct {
	// BaseURL is the resolved backend base URL (see ResolveBaseURL).
	BaseURL string

	// Tokens supplies the access token per request. Nil means all requests
	// go out unauthenticated.
	Tokens TokenSource

	// HTTPClient overrides the transport. Nil uses a default client with no
	// timeout; callers impose their own deadlines via context.
	HTTPClient *http.Client

	// Logger for request-level debug logging. Nil uses slog.Default.
	Logger *slog.Logger
}

// Client performs HTTP calls against the backend. It holds no mutable state
// beyond the transport and is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *slog.Logger
}

// New creates a client from cfg.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		tokens:  cfg.Tokens,
		logger:  logger.With("component", "api"),
	}
}

// BaseURL returns the client's resolved base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// requestOptions collects per-call overrides.
type requestOptions struct {
	headers http.Header
}

// RequestOption customizes a single request.
type RequestOption func(*requestOptions)

// WithHeader sets a header on the outgoing request. Caller-supplied headers
// are applied last, so they win over the pipeline's defaults.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if o.headers == nil {
			o.headers = http.Header{}
		}
		o.headers.Set(key, value)
	}
}

// Do performs one HTTP call. body is JSON-encoded when non-nil; out receives
// the decoded JSON response when non-nil. A 204 response leaves out
// untouched. All failures are returned as *RequestError.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	var options requestOptions
	for _, opt := range opts {
		opt(&options)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Detail: "encoding request body", Err: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &RequestError{Detail: "building request", Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokens != nil {
		if token := c.tokens(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	// Caller headers last: caller wins on conflict
	for key, values := range options.headers {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "error", err)
		return &RequestError{Detail: "could not reach server", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.decodeError(resp)
	}

	c.logger.Debug("request ok", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Detail: "decoding response body", Err: err}
	}
	return nil
}

// decodeError turns a non-2xx response into a *RequestError, preferring the
// backend's {"detail": ...} message over a synthesized one.
func (c *Client) decodeError(resp *http.Response) error {
	detail := fmt.Sprintf("HTTP %d", resp.StatusCode)

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil {
		var errBody struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(body, &errBody) == nil && errBody.Detail != "" {
			detail = errBody.Detail
		}
	}

	c.logger.Debug("request rejected", "status", resp.StatusCode, "detail", detail)
	return &RequestError{StatusCode: resp.StatusCode, Detail: detail}
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodGet, path, nil, out, opts...)
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPost, path, body, out, opts...)
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPatch, path, body, out, opts...)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, opts...)
}
