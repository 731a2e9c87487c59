package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jonesrussell/north-cloud/prospector/internal/logger"
	"github.com/jonesrussell/north-cloud/prospector/internal/metrics"
)

// Defaults for the Serper-compatible API.
const (
	DefaultBaseURL = "https://google.serper.dev"
	DefaultTimeout = 15 * time.Second
	DefaultCountry = "us"

	searchPath   = "/search"
	accountPath  = "/account"
	apiKeyHeader = "X-API-KEY"

	maxResponseBytes  = 4 * 1024 * 1024
	maxErrorBodyBytes = 4 * 1024
)

// Config holds search client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client calls the search API, rotating keys on quota errors and consulting
// an optional cache.
type Client struct {
	baseURL string
	http    *http.Client
	keys    *KeyRotator
	cache   Cache
	log     logger.Logger
	metrics *metrics.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithCache enables response caching.
func WithCache(cache Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithMetrics records search outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a Client.
func NewClient(cfg Config, keys *KeyRotator, log logger.Logger, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.NewNop()
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		keys:    keys,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Keys returns the client's key rotator.
func (c *Client) Keys() *KeyRotator {
	return c.keys
}

// ResetKeys clears key exhaustion so every configured key is tried again.
func (c *Client) ResetKeys() {
	if c.keys != nil {
		c.keys.Reset()
	}
}

// Available reports whether any search key is still usable.
func (c *Client) Available() bool {
	return c.keys != nil && c.keys.Active() > 0
}

// Search runs one query. On quota errors the current key is marked exhausted
// and the query is retried with the next key while any remain. Every other
// failure yields nil, nil; the only error returned is the context's.
func (c *Client) Search(ctx context.Context, req Request) (*Response, error) {
	req = normalize(req)

	if c.cache != nil {
		if cached, ok := c.cache.Get(ctx, req); ok {
			c.metrics.ObserveSearch(metrics.SearchCached)
			return cached, nil
		}
	}

	for c.Available() {
		key := c.keys.Key()
		if key == "" {
			break
		}

		resp, quota, err := c.do(ctx, key, req)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if quota {
			c.metrics.ObserveSearch(metrics.SearchQuota)
			c.keys.MarkExhausted()
			continue
		}
		if err != nil {
			c.metrics.ObserveSearch(metrics.SearchError)
			c.log.Warn("Search request failed", logger.String("query", req.Query), logger.Error(err))
			return nil, nil
		}

		c.metrics.ObserveSearch(metrics.SearchOK)
		if c.cache != nil {
			if setErr := c.cache.Set(ctx, req, resp); setErr != nil {
				c.log.Debug("Search cache write failed", logger.Error(setErr))
			}
		}
		return resp, nil
	}

	c.metrics.ObserveSearch(metrics.SearchNoKey)
	return nil, nil
}

// do performs one POST. quota reports a credit/auth/rate-limit rejection.
func (c *Client) do(ctx context.Context, key string, req Request) (*Response, bool, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, false, fmt.Errorf("encode search request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchPath, bytes.NewReader(payload))
	if err != nil {
		return nil, false, fmt.Errorf("create search request: %w", err)
	}
	httpReq.Header.Set(apiKeyHeader, key)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, false, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		if isQuotaError(resp.StatusCode, body) {
			return nil, true, nil
		}
		return nil, false, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	var out Response
	if decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); decodeErr != nil {
		return nil, false, fmt.Errorf("decode search response: %w", decodeErr)
	}
	return &out, false, nil
}

// isQuotaError matches 400 responses mentioning credits, and 403/429.
func isQuotaError(status int, body []byte) bool {
	switch status {
	case http.StatusForbidden, http.StatusTooManyRequests:
		return true
	case http.StatusBadRequest:
		return bytes.Contains(bytes.ToLower(body), []byte("credit"))
	default:
		return false
	}
}

func normalize(req Request) Request {
	req.Query = strings.TrimSpace(req.Query)
	req.Location = strings.TrimSpace(req.Location)
	if req.Num <= 0 {
		req.Num = DefaultNum
	}
	if req.Country == "" {
		req.Country = DefaultCountry
	}
	return req
}
