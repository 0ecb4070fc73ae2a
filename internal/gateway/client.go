// Package gateway is the single choke point for calls to the Unbound backend.
//
// A Client attaches the bearer token, bounds every call with its own timeout,
// normalizes whatever the backend answers into a Response and classifies
// failures into coded errors. It never retries.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"

	"github.com/ShubhamSPawade/unbound/internal/errors"
	"github.com/ShubhamSPawade/unbound/internal/log"
	"github.com/ShubhamSPawade/unbound/internal/storage"
	"github.com/ShubhamSPawade/unbound/internal/version"
)

const (
	// DefaultBaseURL is used when no API URL is configured.
	DefaultBaseURL = "http://localhost:8081/api"

	// DefaultTimeout bounds a single call, including reading the body.
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 10 << 20
)

// Config configures a Client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	// Store mirrors the token. Nil means an in-memory store.
	Store     storage.Store
	Logger    *log.Logger
	UserAgent string
	// Observer is told about every call that reached the transport. Optional.
	Observer Observer
}

// Observer receives the outcome of each backend call. status is 0 when no
// response arrived.
type Observer interface {
	ObserveRequest(method, endpoint string, status int, err error, d time.Duration)
}

// DefaultConfig returns a configuration pointing at a local backend.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// Client is the Unbound backend client.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	store      storage.Store
	logger     *log.Logger
	userAgent  string
	observer   Observer

	mu    sync.RWMutex
	token string
}

// NewClient creates a client and hydrates its token from the store.
// A store that cannot be read leaves the client without a token.
func NewClient(ctx context.Context, cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = cleanhttp.DefaultPooledClient()
	}
	if cfg.Store == nil {
		cfg.Store = storage.NewMemoryStore()
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = version.GetInfo().UserAgent()
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    cfg.Timeout,
		httpClient: cfg.HTTPClient,
		store:      cfg.Store,
		logger:     log.OrDefault(cfg.Logger).Component("gateway"),
		userAgent:  cfg.UserAgent,
		observer:   cfg.Observer,
	}

	token, ok, err := c.store.Get(ctx, storage.KeyToken)
	switch {
	case err != nil:
		c.logger.WithError(err).Warn("could not read stored token")
	case ok && token != "":
		c.token = token
		c.logger.Debug("token restored", "token_fp", Fingerprint(token))
	}

	c.logger.Debug("client initialized", "base_url", c.baseURL, "timeout", c.timeout)
	return c
}

// BaseURL returns the configured API base.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the per-call time bound.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// RequestOptions describes one call. The zero value is a GET.
type RequestOptions struct {
	Method  string
	Headers map[string]string
	Query   url.Values
	// Body is encoded as JSON.
	Body any
	// RawBody is sent as-is with ContentType, taking precedence over Body.
	RawBody     io.Reader
	ContentType string
}

// Request issues one call and returns the normalized response.
//
// A non-2xx status fails with an HTTP-001 error carrying the backend's
// message. Transport failures fail with NET-001, NET-002 or NET-003.
// Cancellation of ctx itself is returned as ctx.Err().
func (c *Client) Request(ctx context.Context, endpoint string, opts RequestOptions) (*Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	body, contentType, err := encodeBody(opts)
	if err != nil {
		return nil, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	requestID := uuid.NewString()
	reqCtx = log.ContextWithRequestID(reqCtx, requestID)
	logger := c.logger.WithContext(reqCtx).With("method", method, "endpoint", endpoint)

	req, err := http.NewRequestWithContext(reqCtx, method, c.buildURL(endpoint, opts.Query), body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRequestEncoding, "failed to create request", err)
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range opts.Headers {
		if v == "" {
			req.Header.Del(k)
			continue
		}
		req.Header.Set(k, v)
	}

	start := time.Now()
	logger.Debug("sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = classifyTransportError(ctx, reqCtx, endpoint, err)
		logger.WithError(err).Debug("request failed", "duration", time.Since(start))
		c.observe(method, endpoint, 0, err, start)
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		err = classifyTransportError(ctx, reqCtx, endpoint, err)
		logger.WithError(err).Debug("reading response failed", "duration", time.Since(start))
		c.observe(method, endpoint, resp.StatusCode, err, start)
		return nil, err
	}

	out := Normalize(resp.StatusCode, resp.Header.Get("Content-Type"), raw)
	if out.Shape == ShapeText {
		logger.Warn("non-JSON response", "status", resp.StatusCode, "content_type", resp.Header.Get("Content-Type"))
	}

	if !isSuccessStatus(resp.StatusCode) {
		err := errors.NewHTTPError(resp.StatusCode, out.FailureMessage())
		logger.WithError(err).Debug("backend returned failure status", "duration", time.Since(start))
		c.observe(method, endpoint, resp.StatusCode, err, start)
		return nil, err
	}

	logger.Debug("request completed", "status", resp.StatusCode, "shape", out.Shape.String(), "duration", time.Since(start))
	c.observe(method, endpoint, resp.StatusCode, nil, start)
	return out, nil
}

func (c *Client) observe(method, endpoint string, status int, err error, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveRequest(method, endpoint, status, err, time.Since(start))
	}
}

// get is shorthand for a GET without options.
func (c *Client) get(ctx context.Context, endpoint string) (*Response, error) {
	return c.Request(ctx, endpoint, RequestOptions{})
}

// send issues method with an optional JSON body.
func (c *Client) send(ctx context.Context, method, endpoint string, body any) (*Response, error) {
	return c.Request(ctx, endpoint, RequestOptions{Method: method, Body: body})
}

func (c *Client) buildURL(endpoint string, query url.Values) string {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	full := c.baseURL + endpoint
	if len(query) == 0 {
		return full
	}
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return full + sep + query.Encode()
}

func encodeBody(opts RequestOptions) (io.Reader, string, error) {
	if opts.RawBody != nil {
		ct := opts.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		return opts.RawBody, ct, nil
	}

	ct := opts.ContentType
	if ct == "" {
		ct = "application/json"
	}
	if opts.Body == nil {
		return nil, ct, nil
	}

	data, err := json.Marshal(opts.Body)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeRequestEncoding, "failed to encode request body", err)
	}
	return bytes.NewReader(data), ct, nil
}

func isSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}

func statusMessage(status int) string {
	return fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
}
