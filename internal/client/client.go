// ABOUTME: HTTP client for the Sagmcom EAM backend gateway
// ABOUTME: Wraps requests with auth headers, timeout, and typed failures

package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sagmcom/eamctl/internal/config"
	"github.com/sagmcom/eamctl/internal/session"
)

// Client is the API client for the EAM gateway. Resource facades hang off
// it; every request goes through do, which owns header merging, timeout,
// and error typing. Retries live one layer up in call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Provider
	timeout    time.Duration
	retries    int
	baseDelay  time.Duration

	Auth          *AuthService
	Assets        *AssetsService
	Users         *UsersService
	WorkOrders    *WorkOrdersService
	Interventions *InterventionsService
	Plannings     *PlanningsService
	Rapports      *RapportsService
	Archives      *ArchivesService
	Activity      *ActivityService
	Notifications *NotificationsService
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (tests, proxies).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRetryPolicy sets the retry budget and base backoff delay.
func WithRetryPolicy(retries int, baseDelay time.Duration) Option {
	return func(c *Client) {
		c.retries = retries
		c.baseDelay = baseDelay
	}
}

// WithSession replaces the session provider (tests use in-memory stores).
func WithSession(p *session.Provider) Option {
	return func(c *Client) { c.session = p }
}

// New creates a new API client with the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		session:   session.Default(),
		timeout:   config.DefaultTimeout,
		retries:   3,
		baseDelay: 400 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		// No Timeout on the http.Client itself: each request carries its
		// own context deadline, which do always cancels on exit.
		c.httpClient = &http.Client{}
	}

	c.Auth = &AuthService{c: c}
	c.Assets = &AssetsService{c: c}
	c.Users = &UsersService{c: c}
	c.WorkOrders = &WorkOrdersService{c: c}
	c.Interventions = &InterventionsService{c: c}
	c.Plannings = &PlanningsService{c: c}
	c.Rapports = &RapportsService{c: c}
	c.Archives = &ArchivesService{c: c}
	c.Activity = &ActivityService{c: c}
	c.Notifications = &NotificationsService{c: c}
	return c
}

// NewFromConfig builds a client from loaded configuration, wiring the
// jumpbox proxy dialer and TLS options when configured.
func NewFromConfig(cfg *config.Config, sess *session.Provider) (*Client, error) {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
	}
	if cfg.SkipSSLValidation {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	if cfg.AllProxy != "" {
		dial, err := socks5DialContextFunc(cfg.AllProxy)
		if err != nil {
			return nil, fmt.Errorf("invalid EAM_ALL_PROXY: %w", err)
		}
		transport.DialContext = dial
		transport.Proxy = nil
	}

	opts := []Option{
		WithHTTPClient(&http.Client{Transport: transport}),
		WithTimeout(cfg.Timeout),
		WithRetryPolicy(cfg.Retries, cfg.BaseDelay),
	}
	if sess != nil {
		opts = append(opts, WithSession(sess))
	}
	return New(cfg.BaseURL, opts...), nil
}

// BaseURL returns the configured gateway base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Session returns the session provider the client injects tokens from.
func (c *Client) Session() *session.Provider {
	return c.session
}

// Health probes the gateway's actuator health endpoint. The returned map is
// the raw health document; "status" holds UP or DOWN.
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.call(ctx, http.MethodGet, "/actuator/health", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// call issues a retry-wrapped request. All facade methods go through here.
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	return Retry(ctx, c.retries, c.baseDelay, func() error {
		return c.do(ctx, method, path, body, nil, out)
	})
}

// rawBody marks a pre-encoded request body that do sends as-is instead of
// JSON-marshaling it.
type rawBody []byte

// callRaw issues a retry-wrapped request with a pre-encoded body, such as a
// multipart form. The bytes are replayed on every attempt.
func (c *Client) callRaw(ctx context.Context, method, path string, body []byte, contentType string, out any) error {
	headers := map[string]string{"Content-Type": contentType}
	return Retry(ctx, c.retries, c.baseDelay, func() error {
		return c.do(ctx, method, path, rawBody(body), headers, out)
	})
}

// do issues a single request attempt.
//
// Headers are merged in order: defaults (Content-Type, X-Request-ID), then
// the session's Authorization header, then caller overrides, so callers win.
// The response body is decoded into out only when the gateway declares a
// JSON content type; a 204 or non-JSON success leaves out untouched. Every
// exit path releases the timeout via the deferred cancel.
func (c *Client) do(ctx context.Context, method, path string, body any, headers map[string]string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case rawBody:
		reader = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	for k, v := range c.session.AuthHeaders() {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.requestError(ctx, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.responseError(method, path, resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if !isJSON(resp.Header.Get("Content-Type")) || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Kind: KindNetwork, Method: method, Path: path, cause: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("invalid response from gateway: %w", err)
	}
	return nil
}

// requestError types a transport-level failure: timeout when the deadline or
// caller cancellation fired, network otherwise.
func (c *Client) requestError(ctx context.Context, method, path string, err error) error {
	if ctx.Err() != nil {
		return &APIError{Kind: KindTimeout, Method: method, Path: path, cause: ctx.Err()}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &APIError{Kind: KindTimeout, Method: method, Path: path, cause: err}
	}
	return &APIError{Kind: KindNetwork, Method: method, Path: path, cause: err}
}

// responseError types a non-2xx response, reading the body best effort.
// A 401 means the token is expired or revoked; the persisted credential is
// cleared so the next command starts from a signed-out state.
func (c *Client) responseError(method, path string, resp *http.Response) error {
	bodyText := ""
	if data, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024)); err == nil {
		bodyText = strings.TrimSpace(string(data))
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.session.Clear()
	}

	return &APIError{
		Kind:   KindHTTP,
		Method: method,
		Path:   path,
		Status: resp.StatusCode,
		Body:   bodyText,
	}
}

// isJSON reports whether a Content-Type header declares a JSON body.
func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(contentType, "json")
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
