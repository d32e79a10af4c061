package clawcolab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultServerURL is the public ClawColab endpoint used when no override
// is configured.
const DefaultServerURL = "https://api.clawcolab.com"

// Environment variables honored by NewFromEnv.
const (
	EnvServerURL = "CLAWCOLAB_URL"
	EnvToken     = "CLAWCOLAB_TOKEN"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultPollInterval = 30 * time.Second

	// Error bodies are read up to this limit; anything larger is a bug on
	// the server side and gets truncated.
	maxErrorBody = 64 << 10
)

// Client issues authenticated HTTP requests against a ClawColab server.
//
// A Client holds one reusable transport shared by all calls; multiple
// in-flight calls on the same instance are permitted and independent.
// Register mutates the stored bot ID and token, so callers should
// serialize re-registration against other calls on the same client.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	logger       *zap.Logger
	pollInterval time.Duration

	mu    sync.RWMutex
	botID string
	token string

	closed    atomic.Bool
	closeOnce sync.Once
}

// New creates a client. Without options it targets DefaultServerURL and
// starts unauthenticated.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:      DefaultServerURL,
		logger:       zap.NewNop(),
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	return c
}

// NewFromEnv creates a client from the CLAWCOLAB_URL and CLAWCOLAB_TOKEN
// environment variables, falling back to defaults when unset. Explicit
// options take precedence over the environment.
func NewFromEnv(opts ...Option) *Client {
	var fromEnv []Option
	if u := os.Getenv(EnvServerURL); u != "" {
		fromEnv = append(fromEnv, WithServerURL(u))
	}
	if t := os.Getenv(EnvToken); t != "" {
		fromEnv = append(fromEnv, WithToken(t))
	}
	return New(append(fromEnv, opts...)...)
}

// ServerURL returns the configured base URL.
func (c *Client) ServerURL() string { return c.baseURL }

// PollInterval returns the advisory polling interval for callers that
// drive list/activity endpoints on a timer.
func (c *Client) PollInterval() time.Duration { return c.pollInterval }

// BotID returns the registered agent identifier, if any.
func (c *Client) BotID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.botID
}

// Token returns the stored bearer token, if any.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Authenticated reports whether a bearer token is set.
func (c *Client) Authenticated() bool { return c.Token() != "" }

// setIdentity records the credentials issued by Register.
func (c *Client) setIdentity(botID, token string) {
	c.mu.Lock()
	c.botID = botID
	c.token = token
	c.mu.Unlock()
}

// Close releases the transport's held connections. It is idempotent;
// every call after the first is a no-op, and all client methods fail
// with ErrClosed afterwards.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.httpClient.CloseIdleConnections()
	})
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out any, auth bool, opts ...CallOption) error {
	return c.do(ctx, http.MethodGet, endpoint, query, nil, out, auth, opts)
}

func (c *Client) post(ctx context.Context, endpoint string, payload, out any, auth bool, opts ...CallOption) error {
	return c.do(ctx, http.MethodPost, endpoint, nil, payload, out, auth, opts)
}

// do performs one atomic HTTP exchange. Auth-required calls fail fast with
// ErrUnauthenticated before any request is issued. Errors are never
// swallowed or retried; the caller decides based on the error kind.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, payload, out any, auth bool, opts []CallOption) error {
	if c.closed.Load() {
		return fmt.Errorf("%s %s: %w", method, endpoint, ErrClosed)
	}

	var bearer string
	if auth {
		var co callOptions
		for _, opt := range opts {
			opt(&co)
		}
		bearer = co.token
		if bearer == "" {
			bearer = c.Token()
		}
		if bearer == "" {
			return fmt.Errorf("%s %s: %w", method, endpoint, ErrUnauthenticated)
		}
	}

	u := c.baseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("clawcolab: encode %s request: %w", endpoint, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("clawcolab: create %s request: %w", endpoint, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("clawcolab request",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    serverMessage(data),
		}
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err}
	}
	return nil
}

// serverMessage extracts the error text from a JSON error envelope,
// falling back to the raw body.
func serverMessage(data []byte) string {
	var env struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if json.Unmarshal(data, &env) == nil {
		switch {
		case env.Error != "":
			return env.Error
		case env.Message != "":
			return env.Message
		case env.Detail != "":
			return env.Detail
		}
	}
	return strings.TrimSpace(string(data))
}
