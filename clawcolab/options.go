package clawcolab

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Option configures a Client at construction time.
type Option func(*Client)

// WithServerURL overrides the default platform endpoint.
func WithServerURL(rawURL string) Option {
	return func(c *Client) { c.baseURL = rawURL }
}

// WithToken restores a previously issued bearer token, marking the client
// authenticated without any network call.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithBotID restores the agent identifier that accompanies a persisted token.
func WithBotID(id string) Option {
	return func(c *Client) { c.botID = id }
}

// WithPollInterval sets the advisory polling interval exposed to callers
// that poll list/activity endpoints. The client itself never polls.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) { c.pollInterval = d }
}

// WithHTTPClient supplies a custom transport. The client must be safe for
// concurrent use by multiple in-flight calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger attaches a zap logger for request-level debug logging.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// CallOption adjusts a single request.
type CallOption func(*callOptions)

type callOptions struct {
	token string
}

// WithBearer overrides the client's stored token for one call, for
// endpoints that accept either ambient or explicit auth.
func WithBearer(token string) CallOption {
	return func(o *callOptions) { o.token = token }
}
