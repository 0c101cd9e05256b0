// Package namelab is the HTTP client for the remote Name Lab API. Every
// exported method performs exactly one request; there is no retry logic, and
// failures are terminal for that attempt.
package namelab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL points at the hosted API; override it in tests and
	// non-production deployments.
	DefaultBaseURL = "http://18.139.99.95/name-lab/api"

	// authHeader carries the opaque session token on every request.
	authHeader = "x-auth-token"

	defaultTimeout = 30 * time.Second
)

// TokenSource supplies the session token attached to outgoing requests.
// Centralizing it here keeps storage concerns out of the call sites.
type TokenSource interface {
	Token(ctx context.Context) string
}

// StaticToken is a fixed token, used by the CLI and in tests.
type StaticToken string

func (t StaticToken) Token(context.Context) string { return string(t) }

type tokenKey struct{}

// WithToken stashes a session token in the context. The web layer sets it
// once per request after reading the session cookie.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// ContextToken reads the token placed in the request context by WithToken.
type ContextToken struct{}

func (ContextToken) Token(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		tokens:  ContextToken{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.tokens.Token(ctx); token != "" {
		req.Header.Set(authHeader, token)
	}
	return req, nil
}

// doJSON performs one JSON round trip. in and out may be nil.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

// doMultipart performs one multipart/form-data round trip; build writes the
// form parts.
func (c *Client) doMultipart(ctx context.Context, method, path string, build func(*multipart.Writer) error, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := build(mw); err != nil {
		return fmt.Errorf("build form %s %s: %w", method, path, err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close form %s %s: %w", method, path, err)
	}

	req, err := c.newRequest(ctx, method, path, &buf, mw.FormDataContentType())
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

// download streams a binary response into dst.
func (c *Client) download(ctx context.Context, path string, dst io.Writer) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if _, err := io.Copy(dst, resp.Body); err != nil {
		return fmt.Errorf("download %s: %w", path, err)
	}
	return nil
}

// errorBodyLimit caps how much of an error response is read for its message.
const errorBodyLimit = 64 << 10

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	return newAPIError(resp.StatusCode, body)
}
