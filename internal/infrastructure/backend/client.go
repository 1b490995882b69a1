// Package backend is the HTTP client of the order-management REST backend.
// It returns decoded, checked collections or a typed error for every
// non-2xx answer. It never retries: the caller decides when to ask again.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// maxResponseBytes caps the size of a backend response body
const maxResponseBytes = 32 << 20

// Config configures the backend client
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// Tracing wraps the transport with otelhttp so backend calls join the
	// caller's trace.
	Tracing bool
}

// Client is the low-level HTTP client of the backend API
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	headers    map[string]string
	mu         sync.RWMutex
}

// NewClient creates a backend client
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL: %q must be absolute", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "ic-orders-bff/1.0"
	}

	var transport http.RoundTripper = &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}
	if cfg.Tracing {
		transport = otelhttp.NewTransport(transport)
	}

	return NewClientWithHTTPClient(base, &http.Client{Transport: transport, Timeout: cfg.Timeout}, cfg.UserAgent), nil
}

// NewClientWithHTTPClient creates a backend client around an existing
// http.Client. Useful for tests.
func NewClientWithHTTPClient(base *url.URL, httpClient *http.Client, userAgent string) *Client {
	c := &Client{
		httpClient: httpClient,
		baseURL:    base,
		headers:    make(map[string]string),
	}
	c.headers["Accept"] = "application/json"
	if userAgent != "" {
		c.headers["User-Agent"] = userAgent
	}
	return c
}

// Request represents a backend call
type Request struct {
	Method      string
	Path        string
	QueryParams map[string]string
	Headers     map[string]string
	Token       string
	Body        any
}

// Response represents a backend answer
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Duration   time.Duration
}

// Do executes the request once. Non-2xx answers are returned as *APIError,
// network failures as *TransportError.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	u, err := c.buildURL(req.Path, req.QueryParams)
	if err != nil {
		return nil, fmt.Errorf("building URL: %w", err)
	}

	var bodyReader io.Reader
	if req.Body != nil {
		bodyBytes, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	c.setHeaders(httpReq, req.Headers)
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Method: req.Method, Path: req.Path, Err: err}
	}
	defer httpResp.Body.Close()

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
	}
	resp.Body, err = io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	resp.Duration = time.Since(start)
	if err != nil {
		return nil, &TransportError{Method: req.Method, Path: req.Path, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return resp, newAPIError(req.Method, req.Path, httpResp.StatusCode, resp.Body)
	}
	return resp, nil
}

// SetHeader sets a default header for all requests
func (c *Client) SetHeader(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headers[key] = value
}

// BaseURL returns the client's base URL
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// buildURL resolves path against the base URL, keeping any base path prefix
func (c *Client) buildURL(path string, queryParams map[string]string) (*url.URL, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u, err := c.baseURL.Parse(strings.TrimSuffix(c.baseURL.Path, "/") + path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	if len(queryParams) > 0 {
		q := u.Query()
		for k, v := range queryParams {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}
	return u, nil
}

func (c *Client) setHeaders(req *http.Request, customHeaders map[string]string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range customHeaders {
		req.Header.Set(k, v)
	}
}

// decodeJSON decodes a response body, treating an empty body or JSON null as
// the zero value.
func decodeJSON(method, path string, body []byte, out any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return &DecodeError{Method: method, Path: path, Err: err}
	}
	return nil
}

// IsUnauthorized reports whether err is a 401 answer from the backend
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 answer from the backend
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
