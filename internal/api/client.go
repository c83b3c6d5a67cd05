// Package api is the REST client for the Job Detector backend. It owns
// request construction, bearer-token injection and error decoding; callers
// get typed records back and never see raw HTTP.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

// Client talks to one backend instance. Token is consulted per request so a
// login during the process lifetime takes effect immediately.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      func() string
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithToken supplies the bearer-token source, typically session.Token.
func WithToken(token func() string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithProxy routes requests through an HTTP proxy. An unparsable proxy URL
// is ignored and the client connects directly.
func WithProxy(proxyURL string) Option {
	return func(c *Client) {
		if proxyURL == "" {
			return
		}
		proxy, err := url.Parse(proxyURL)
		if err != nil {
			c.log.Warn().Str("proxy", proxyURL).Msg("ignoring unparsable proxy URL")
			return
		}
		c.httpClient.Transport = &http.Transport{
			Proxy:               http.ProxyURL(proxy),
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
			ForceAttemptHTTP2:   true,
		}
	}
}

// WithLogger attaches a structured logger for request tracing.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		token:      func() string { return "" },
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Error is a backend rejection: a non-2xx status plus the detail message the
// backend put in the response body, when there was one.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

// IsStatus reports whether err is a backend rejection with the given status.
func IsStatus(err error, status int) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Status == status
}

// get issues a GET and returns the raw body on 2xx.
func (c *Client) get(ctx context.Context, path string, query url.Values, authed bool) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, authed)
}

// send issues a request with a JSON body and returns the raw response body.
func (c *Client) send(ctx context.Context, method, path string, payload any, authed bool) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, nil, body, authed)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, authed bool) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Status: resp.StatusCode, Detail: extractDetail(data)}
	}
	return data, nil
}

// extractDetail pulls the backend's error message out of a failure body.
func extractDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Detail
}
