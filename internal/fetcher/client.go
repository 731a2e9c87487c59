package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"time"

	"github.com/jonesrussell/north-cloud/prospector/internal/logger"
	"github.com/jonesrussell/north-cloud/prospector/internal/metrics"
)

// Default configuration values.
const (
	defaultRequestTimeout = 30 * time.Second
	defaultMaxRetries     = 3
	defaultMaxRedirects   = 10
	maxBodyBytes          = 10 * 1024 * 1024 // 10 MB

	acceptHeader         = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptLanguageHeader = "en-US,en;q=0.9"
)

// ErrTooManyRedirects is returned when the redirect hop limit is exceeded.
var ErrTooManyRedirects = errors.New("too many redirects")

// Fetcher is the page-fetching capability used by sources and the engine.
type Fetcher interface {
	Get(ctx context.Context, rawURL string) (*Response, error)
}

// Config holds fetch client settings.
type Config struct {
	DelayMin         time.Duration
	DelayMax         time.Duration
	RequestTimeout   time.Duration
	MaxRetries       int
	RespectRobotsTxt bool
	RobotsCacheTTL   time.Duration
}

// WithDefaults returns a copy of the config with defaults for zero-value fields.
func (c Config) WithDefaults() Config {
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = defaultMaxRetries
	}
	return c
}

// Response is a successfully fetched page.
type Response struct {
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// Client fetches pages through the robots checker and the rate gate, retrying
// transient failures with exponential backoff.
type Client struct {
	cfg     Config
	http    *http.Client
	gate    *Gate
	robots  *RobotsChecker
	backoff func(attempt int) time.Duration
	log     logger.Logger
	metrics *metrics.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithGate replaces the rate gate.
func WithGate(g *Gate) Option {
	return func(c *Client) { c.gate = g }
}

// WithRobotsChecker replaces the robots checker.
func WithRobotsChecker(r *RobotsChecker) Option {
	return func(c *Client) { c.robots = r }
}

// WithBackoff replaces the retry backoff schedule.
func WithBackoff(fn func(attempt int) time.Duration) Option {
	return func(c *Client) { c.backoff = fn }
}

// WithMetrics records fetch outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a Client.
func NewClient(cfg Config, log logger.Logger, opts ...Option) *Client {
	cfg = cfg.WithDefaults()
	if log == nil {
		log = logger.NewNop()
	}

	c := &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout:       cfg.RequestTimeout,
			CheckRedirect: RedirectPolicy(defaultMaxRedirects),
		},
		backoff: ExponentialBackoff,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.gate == nil {
		c.gate = NewGate(cfg.DelayMin, cfg.DelayMax)
	}
	if c.robots == nil && cfg.RespectRobotsTxt {
		c.robots = NewRobotsChecker(nil, DefaultRobotsAgent, cfg.RobotsCacheTTL)
	}

	return c
}

// Get fetches rawURL. It returns nil, nil when robots.txt disallows the URL,
// on 403/404/410 and after retries are exhausted. The only error returned is
// the context's.
func (c *Client) Get(ctx context.Context, rawURL string) (*Response, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		c.log.Debug("Skipping unparsable URL", logger.String("url", rawURL))
		return nil, nil
	}

	if c.cfg.RespectRobotsTxt && c.robots != nil {
		allowed, robotsErr := c.robots.IsAllowed(ctx, rawURL)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if robotsErr == nil && !allowed {
			c.metrics.ObserveFetch(metrics.FetchDisallowed, 0)
			c.log.Debug("Disallowed by robots.txt", logger.String("url", rawURL))
			return nil, nil
		}
		c.gate.ApplyCrawlDelay(parsed.Host, c.robots.CrawlDelay(parsed.Host))
	}

	if acquireErr := c.gate.Acquire(ctx, parsed.Host); acquireErr != nil {
		return nil, ctx.Err()
	}

	for attempt := range c.cfg.MaxRetries {
		resp, retry := c.attempt(ctx, rawURL)
		if resp != nil {
			return resp, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if !retry {
			return nil, nil
		}
		if attempt < c.cfg.MaxRetries-1 {
			if sleepErr := sleepContext(ctx, c.backoff(attempt)); sleepErr != nil {
				return nil, sleepErr
			}
		}
	}

	c.metrics.ObserveFetch(metrics.FetchExhausted, 0)
	c.log.Debug("Fetch retries exhausted", logger.String("url", rawURL))
	return nil, nil
}

// attempt performs one GET. It returns the response on success, or whether
// the failure is worth retrying.
func (c *Client) attempt(ctx context.Context, rawURL string) (*Response, bool) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, false
	}
	req.Header.Set("User-Agent", RandomUserAgent())
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", acceptLanguageHeader)

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveFetch(metrics.FetchRetry, time.Since(start))
		c.log.Debug("Fetch attempt failed", logger.String("url", rawURL), logger.Error(err))
		return nil, true
	}
	defer resp.Body.Close()

	switch {
	case isPermanentStatus(resp.StatusCode):
		c.metrics.ObserveFetch(metrics.FetchPermanent, time.Since(start))
		return nil, false
	case !isSuccessStatus(resp.StatusCode):
		c.metrics.ObserveFetch(metrics.FetchRetry, time.Since(start))
		c.log.Debug("Fetch returned retryable status",
			logger.String("url", rawURL), logger.Int("status", resp.StatusCode))
		return nil, true
	}

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if readErr != nil {
		c.metrics.ObserveFetch(metrics.FetchRetry, time.Since(start))
		return nil, true
	}

	c.metrics.ObserveFetch(metrics.FetchOK, time.Since(start))
	return &Response{
		URL:        resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, false
}

func isPermanentStatus(code int) bool {
	return code == http.StatusForbidden || code == http.StatusNotFound || code == http.StatusGone
}

// ExponentialBackoff waits 2^attempt seconds plus up to one second of jitter.
func ExponentialBackoff(attempt int) time.Duration {
	base := time.Duration(1<<attempt) * time.Second
	return base + rand.N(time.Second)
}

// RedirectPolicy returns a CheckRedirect function that stops after maxHops.
func RedirectPolicy(maxHops int) func(*http.Request, []*http.Request) error {
	return func(_ *http.Request, via []*http.Request) error {
		if maxHops > 0 && len(via) >= maxHops {
			return fmt.Errorf("%w: %d", ErrTooManyRedirects, len(via))
		}
		return nil
	}
}
