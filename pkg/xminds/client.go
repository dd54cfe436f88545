package xminds

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/xminds/pkg/slogx"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	// DefaultHost is the hosted API used when Config.Host is empty.
	DefaultHost = "https://api.crossingminds.com"

	// DefaultUserAgent is sent when Config.UserAgent is empty.
	DefaultUserAgent = "xminds-go/0.1.0"

	// DefaultTimeout bounds a single request when Config.Timeout is zero.
	DefaultTimeout = 6 * time.Second

	// BulkTimeout bounds bulk uploads, which the API processes synchronously.
	BulkTimeout = 10 * time.Second
)

// RateLimit throttles outgoing requests on the client side.
type RateLimit struct {
	// RequestsPerSecond is the sustained request rate.
	RequestsPerSecond float64
	// Burst is the number of requests allowed at once.
	Burst int
}

// Config configures a Client. Every field is optional.
type Config struct {
	// Host is the API base URL (default: DefaultHost).
	Host string
	// UserAgent identifies the caller (default: DefaultUserAgent).
	UserAgent string
	// RefreshToken is the initial long-lived credential used to log in.
	RefreshToken string

	// HTTPClient overrides the underlying HTTP client.
	HTTPClient *http.Client
	// Timeout bounds each request that does not set its own (default: DefaultTimeout).
	Timeout time.Duration
	// Logger receives debug logs for requests and token refreshes. A logger
	// stored in the call context with slogx.WithContext takes precedence.
	Logger *slog.Logger
	// RateLimit, when set, makes every request wait for a token first.
	RateLimit *RateLimit
}

// Client is a client for the recommendation API. It holds one credential pair
// and renews its bearer token transparently: authenticated methods log in
// with the refresh token before the first call and refresh once when the
// server reports the bearer token as expired.
//
// A Client is safe for concurrent use.
type Client struct {
	host       string
	userAgent  string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
	limiter    *rate.Limiter

	creds        *credentials
	refreshGroup singleflight.Group
}

// NewClient creates a new API client.
func NewClient(cfg Config) *Client {
	c := &Client{
		host:      strings.TrimSuffix(cfg.Host, "/"),
		userAgent: cfg.UserAgent,
		timeout:   cfg.Timeout,
		logger:    cfg.Logger,
		creds:     newCredentials(cfg.RefreshToken),
	}

	if c.host == "" {
		c.host = DefaultHost
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}

	c.httpClient = cfg.HTTPClient
	if c.httpClient == nil {
		// Per-request deadlines come from the context, see send.
		c.httpClient = &http.Client{
			Transport: slogx.NewTransport(http.DefaultTransport, c.logger),
		}
	}

	if cfg.RateLimit != nil && cfg.RateLimit.RequestsPerSecond > 0 {
		burst := max(cfg.RateLimit.Burst, 1)
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), burst)
	}

	return c
}

// Host returns the API base URL the client talks to.
func (c *Client) Host() string { return c.host }

// BearerToken returns the current bearer token, or "" before the first login.
func (c *Client) BearerToken() string { return c.creds.bearer() }

// RefreshToken returns the current refresh token. It changes after every
// successful login because the API rotates refresh tokens.
func (c *Client) RefreshToken() string { return c.creds.refresh() }

// log returns the context logger when one was attached, else the client's.
func (c *Client) log(ctx context.Context) *slog.Logger {
	if l, ok := slogx.Lookup(ctx); ok {
		return l
	}
	return c.logger
}
