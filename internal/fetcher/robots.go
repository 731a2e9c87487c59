// Package fetcher provides polite HTTP page fetching: robots.txt compliance,
// per-domain pacing and retrying GETs with randomized browser user agents.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// DefaultRobotsCacheTTL is how long parsed robots.txt rules stay cached.
const DefaultRobotsCacheTTL = 24 * time.Hour

// DefaultRobotsAgent is the agent token robots rules are evaluated for.
const DefaultRobotsAgent = "*"

const (
	robotsTxtPath      = "/robots.txt"
	maxRobotsBodyBytes = 512 * 1024 // 512 KB
	robotsFetchTimeout = 10 * time.Second
)

// RobotsChecker checks and caches robots.txt rules per host.
type RobotsChecker struct {
	httpClient *http.Client
	agent      string
	cache      map[string]*robotsCacheEntry // keyed by host
	mu         sync.RWMutex
	cacheTTL   time.Duration
}

type robotsCacheEntry struct {
	data      *robotstxt.RobotsData
	fetchedAt time.Time
	allowAll  bool // robots.txt missing, non-2xx, unparsable or unreachable
}

// NewRobotsChecker creates a RobotsChecker. A nil client gets a 10s timeout client.
func NewRobotsChecker(httpClient *http.Client, agent string, cacheTTL time.Duration) *RobotsChecker {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: robotsFetchTimeout}
	}
	if agent == "" {
		agent = DefaultRobotsAgent
	}
	if cacheTTL <= 0 {
		cacheTTL = DefaultRobotsCacheTTL
	}

	return &RobotsChecker{
		httpClient: httpClient,
		agent:      agent,
		cache:      make(map[string]*robotsCacheEntry),
		cacheTTL:   cacheTTL,
	}
}

// IsAllowed reports whether robots.txt permits fetching rawURL.
// Missing or unreachable robots.txt allows everything.
func (r *RobotsChecker) IsAllowed(ctx context.Context, rawURL string) (bool, error) {
	parsed, parseErr := url.Parse(rawURL)
	if parseErr != nil {
		return false, fmt.Errorf("robots: parse url: %w", parseErr)
	}

	host := strings.ToLower(parsed.Host)
	if host == "" {
		return false, fmt.Errorf("robots: empty host in url %q", rawURL)
	}

	entry := r.entryFor(ctx, host, parsed.Scheme)
	if entry.allowAll {
		return true, nil
	}

	path := parsed.EscapedPath()
	if parsed.RawQuery != "" {
		path += "?" + parsed.RawQuery
	}
	return entry.data.TestAgent(path, r.agent), nil
}

// CrawlDelay returns the Crawl-delay for host, or 0 when none is cached.
func (r *RobotsChecker) CrawlDelay(host string) time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.cache[strings.ToLower(host)]
	if !ok || entry.allowAll || entry.data == nil {
		return 0
	}

	group := entry.data.FindGroup(r.agent)
	if group == nil {
		return 0
	}

	return group.CrawlDelay
}

func (r *RobotsChecker) entryFor(ctx context.Context, host, scheme string) *robotsCacheEntry {
	r.mu.RLock()
	entry, ok := r.cache[host]
	r.mu.RUnlock()

	if ok && time.Since(entry.fetchedAt) <= r.cacheTTL {
		return entry
	}

	if scheme == "" {
		scheme = "https"
	}

	entry = r.fetch(ctx, scheme+"://"+host+robotsTxtPath)

	r.mu.Lock()
	r.cache[host] = entry
	r.mu.Unlock()

	return entry
}

// fetch downloads and parses robots.txt. Every failure degrades to allow-all.
func (r *RobotsChecker) fetch(ctx context.Context, robotsURL string) *robotsCacheEntry {
	allowAll := &robotsCacheEntry{fetchedAt: time.Now(), allowAll: true}

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, http.NoBody)
	if reqErr != nil {
		return allowAll
	}
	req.Header.Set("User-Agent", userAgents[0])

	resp, doErr := r.httpClient.Do(req)
	if doErr != nil {
		return allowAll
	}
	defer resp.Body.Close()

	if !isSuccessStatus(resp.StatusCode) {
		return allowAll
	}

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxRobotsBodyBytes))
	if readErr != nil {
		return allowAll
	}

	robots, parseErr := robotstxt.FromBytes(body)
	if parseErr != nil {
		return allowAll
	}

	return &robotsCacheEntry{data: robots, fetchedAt: time.Now()}
}

func isSuccessStatus(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}
