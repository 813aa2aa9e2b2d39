package loops

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://app.loops.so/api/v1"

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     zerolog.Logger
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL sets a custom API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client. Connection pooling, TLS, and
// timeout policy all belong to this client; the SDK imposes no deadline
// of its own.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the timeout on the default HTTP client. Ignored when
// WithHTTPClient is also given.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithLogger sets the logger used for per-request diagnostics. The
// default is zerolog.Nop().
func WithLogger(logger zerolog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// requestConfig holds per-call configuration.
type requestConfig struct {
	header http.Header
}

// RequestOption customizes a single API call.
type RequestOption func(*requestConfig)

// WithHeader adds an HTTP header to the request. Authorization and
// Content-Type are always set by the SDK and cannot be overridden.
func WithHeader(key, value string) RequestOption {
	return func(c *requestConfig) {
		c.header.Add(key, value)
	}
}

// WithIdempotencyKey sets the Idempotency-Key header. Honored by the
// events and transactional send endpoints; at most 100 characters.
func WithIdempotencyKey(key string) RequestOption {
	return func(c *requestConfig) {
		c.header.Set("Idempotency-Key", key)
	}
}

func buildRequestConfig(opts []RequestOption) *requestConfig {
	cfg := &requestConfig{header: make(http.Header)}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
