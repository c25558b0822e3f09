// Package httpclient provides the HTTP transport used by the prober: one GET
// per call, explicit TLS and proxy policy, and an optional global throttle.
//
// Retries are not performed here. The caller owns the retry policy and the
// per-attempt deadline (through the context passed to Get). The throttle is
// exposed as Wait so the caller can take a token before that deadline starts;
// Get itself never waits on it.
package httpclient

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"phoneprobe/internal/platform/errors"
	"phoneprobe/internal/platform/logx"
)

// maxDrain bounds how much of a body is read before closing so the
// connection can go back to the pool.
const maxDrain = 64 << 10

// Client is an HTTP transport with TLS policy, proxy support and rate limiting.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      logx.Logger
	config      Config
}

// Config holds the configuration for the HTTP client.
type Config struct {
	// InsecureSkipVerify disables TLS certificate verification.
	// Enabling it makes endpoints with broken certificates answer instead of
	// failing, which changes what counts as unreachable.
	// Default: false
	InsecureSkipVerify bool

	// ProxyURL routes every request through the given proxy.
	// Empty means use HTTP_PROXY / HTTPS_PROXY from the environment.
	ProxyURL string

	// Timeout is a hard cap per request on top of the caller's context.
	// 0 means rely on the context only.
	// Default: 0
	Timeout time.Duration

	// FollowRedirects makes 3xx responses be followed (final status reported).
	// Default: true
	FollowRedirects bool

	// MaxRedirects caps redirect chains when FollowRedirects is set.
	// Default: 10
	MaxRedirects int

	// MaxIdleConnsPerHost sizes the keep-alive pool per host.
	// Default: 4
	MaxIdleConnsPerHost int

	// RateLimit is the maximum requests per second across all workers.
	// 0 means no rate limiting.
	// Default: 0 (no limit)
	RateLimit float64

	// RateLimitBurst is the burst size for rate limiting.
	// Default: 1
	RateLimitBurst int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		InsecureSkipVerify:  false,
		FollowRedirects:     true,
		MaxRedirects:        10,
		MaxIdleConnsPerHost: 4,
		RateLimit:           0,
		RateLimitBurst:      1,
	}
}

// New creates a new HTTP client with the given configuration.
func New(config Config, logger logx.Logger) (*Client, error) {
	// Apply defaults for zero values
	if config.MaxRedirects == 0 {
		config.MaxRedirects = 10
	}
	if config.MaxIdleConnsPerHost == 0 {
		config.MaxIdleConnsPerHost = 4
	}
	if config.RateLimitBurst <= 0 {
		config.RateLimitBurst = 1
	}

	proxy := http.ProxyFromEnvironment
	if config.ProxyURL != "" {
		u, err := url.Parse(config.ProxyURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "proxy url %q", config.ProxyURL)
		}
		proxy = http.ProxyURL(u)
	}

	transport := &http.Transport{
		Proxy: proxy,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   config.MaxIdleConnsPerHost,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: config.InsecureSkipVerify, //nolint:gosec // opt-in via --insecure
		},
	}

	httpClient := &http.Client{
		Transport: transport,
		Timeout:   config.Timeout,
	}
	maxRedirects := config.MaxRedirects
	if config.FollowRedirects {
		httpClient.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		}
	} else {
		httpClient.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var rateLimiter *rate.Limiter
	if config.RateLimit > 0 {
		rateLimiter = rate.NewLimiter(rate.Limit(config.RateLimit), config.RateLimitBurst)
	}

	if config.InsecureSkipVerify {
		logger.Warn("TLS certificate verification disabled")
	}

	return &Client{
		httpClient:  httpClient,
		rateLimiter: rateLimiter,
		logger:      logger.With("component", "httpx"),
		config:      config,
	}, nil
}

// Get performs a single GET request and returns the final status code.
// Any error means no response was obtained.
func (c *Client) Get(ctx context.Context, rawURL string, headers map[string]string) (int, error) {
	if !isHTTP(rawURL) {
		return 0, errors.Wrapf(errors.ErrUnsupportedScheme, "%s", schemeOf(rawURL))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to create request for %s", rawURL)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Debug("HTTP request failed",
			"url", rawURL,
			"error", err.Error(),
			"duration_ms", duration.Milliseconds(),
		)
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.CopyN(io.Discard, resp.Body, maxDrain)

	c.logger.Debug("HTTP response received",
		"url", rawURL,
		"status", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
	)
	return resp.StatusCode, nil
}

// Wait blocks until the throttle allows one more request or ctx ends.
// Without a configured rate limit it returns immediately.
// A token that cannot arrive before the ctx deadline yields ErrRateLimit.
func (c *Client) Wait(ctx context.Context) error {
	if c.rateLimiter == nil {
		return ctx.Err()
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %w", errors.ErrRateLimit, err)
	}
	return nil
}

// Close releases idle keep-alive connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// String returns a human-readable representation of the client configuration.
func (c *Client) String() string {
	return fmt.Sprintf("HTTPClient{insecure=%t, proxy=%q, rate_limit=%.1f/s, follow_redirects=%t}",
		c.config.InsecureSkipVerify,
		c.config.ProxyURL,
		c.config.RateLimit,
		c.config.FollowRedirects,
	)
}

func isHTTP(rawURL string) bool {
	s := schemeOf(rawURL)
	return s == "http" || s == "https"
}

func schemeOf(rawURL string) string {
	i := strings.Index(rawURL, ":")
	if i <= 0 {
		return ""
	}
	return strings.ToLower(rawURL[:i])
}
