// Package apiclient is the HTTP gateway to the automation API.
//
// Client.Request is the single place that builds URLs, attaches the bearer
// token and turns non-2xx responses into *APIError. The typed services on top
// of it decode wire records and hand back presentation records. Nothing here
// retries; callers decide whether a failure is worth repeating.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/hochfrequenz/automation-portal/internal/logger"
)

// DefaultTimeout bounds a single request when no HTTP client is supplied
const DefaultTimeout = 30 * time.Second

// Params are query parameters. Nil values are omitted.
type Params map[string]any

// Options configure a Client
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Session    *Session
	Logger     logger.Logger
}

// Client performs requests against the automation API
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
	log     logger.Logger
}

// Response is a successful API response
type Response struct {
	Status int
	// Data is the decoded JSON body, the body text for non-JSON responses,
	// or nil when a JSON body could not be parsed.
	Data any
	Raw  []byte
}

// New creates a Client. Zero-valued options get working defaults.
func New(opts Options) *Client {
	c := &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    opts.HTTPClient,
		session: opts.Session,
		log:     opts.Logger,
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: DefaultTimeout}
	}
	if c.session == nil {
		c.session = NewSession(nil)
	}
	if c.log == nil {
		c.log = logger.NewNop()
	}
	return c
}

// Session returns the token owner used by this client
func (c *Client) Session() *Session {
	return c.session
}

// BaseURL returns the configured base URL without a trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// BuildURL joins the base URL and path and appends the non-nil query parameters
func (c *Client) BuildURL(path string, query Params) (string, error) {
	if c.baseURL == "" {
		return "", ErrNotConfigured
	}
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")

	values := url.Values{}
	for key, val := range query {
		if s, ok := paramString(val); ok {
			values.Set(key, s)
		}
	}
	if len(values) > 0 {
		target += "?" + values.Encode()
	}
	return target, nil
}

func paramString(val any) (string, bool) {
	if val == nil {
		return "", false
	}
	rv := reflect.ValueOf(val)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		val = rv.Elem().Interface()
	}
	switch v := val.(type) {
	case string:
		return v, true
	case time.Time:
		return v.Format(time.RFC3339), true
	default:
		return fmt.Sprint(v), true
	}
}

// Request sends one request and parses the response.
// body, when non-nil, is sent as JSON.
func (c *Client) Request(ctx context.Context, method, path string, body any, query Params) (*Response, error) {
	target, err := c.BuildURL(path, query)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			logger.String("method", method),
			logger.String("path", path),
			logger.Err(err),
		)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s %s: %w", ErrTransport, method, path, err)
	}

	c.log.Debug("request",
		logger.String("method", method),
		logger.String("path", path),
		logger.Int("status", resp.StatusCode),
		logger.Duration("elapsed", time.Since(start)),
	)

	data := parseBody(resp.Header.Get("Content-Type"), raw)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, data)
	}
	return &Response{Status: resp.StatusCode, Data: data, Raw: raw}, nil
}

func parseBody(contentType string, raw []byte) any {
	if !strings.Contains(contentType, "application/json") {
		return string(raw)
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil
	}
	return data
}

// Get is Request with GET
func (c *Client) Get(ctx context.Context, path string, query Params) (*Response, error) {
	return c.Request(ctx, http.MethodGet, path, nil, query)
}

// Post is Request with POST
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Request(ctx, http.MethodPost, path, body, nil)
}

// Put is Request with PUT
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Request(ctx, http.MethodPut, path, body, nil)
}

// Patch is Request with PATCH
func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.Request(ctx, http.MethodPatch, path, body, nil)
}

// Delete is Request with DELETE
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Request(ctx, http.MethodDelete, path, nil, nil)
}

// decode unmarshals the raw body of resp into T
func decode[T any](resp *Response, what string) (T, error) {
	var out T
	if err := json.Unmarshal(resp.Raw, &out); err != nil {
		return out, fmt.Errorf("decoding %s: %w", what, err)
	}
	return out, nil
}
