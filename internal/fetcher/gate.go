package fetcher

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Gate paces requests per domain. Callers for the same domain serialize; each
// waits for a token and then a random jitter between the configured delays.
type Gate struct {
	delayMin time.Duration
	delayMax time.Duration

	mu      sync.Mutex
	domains map[string]*domainGate
}

type domainGate struct {
	mu       sync.Mutex
	limiter  *rate.Limiter
	minDelay time.Duration
}

// NewGate creates a Gate. delayMax below delayMin is raised to delayMin.
func NewGate(delayMin, delayMax time.Duration) *Gate {
	if delayMax < delayMin {
		delayMax = delayMin
	}
	return &Gate{
		delayMin: delayMin,
		delayMax: delayMax,
		domains:  make(map[string]*domainGate),
	}
}

// Acquire blocks until a request to domain may be issued or ctx is done.
func (g *Gate) Acquire(ctx context.Context, domain string) error {
	dg := g.domainGate(NormalizeDomain(domain))

	dg.mu.Lock()
	defer dg.mu.Unlock()

	if err := dg.limiter.Wait(ctx); err != nil {
		return err
	}

	return sleepContext(ctx, g.jitter(dg.minDelay))
}

// ApplyCrawlDelay raises a domain's minimum spacing to a robots Crawl-delay
// when it exceeds the configured minimum.
func (g *Gate) ApplyCrawlDelay(domain string, delay time.Duration) {
	if delay <= g.delayMin {
		return
	}

	dg := g.domainGate(NormalizeDomain(domain))

	dg.mu.Lock()
	defer dg.mu.Unlock()

	if delay > dg.minDelay {
		dg.minDelay = delay
		dg.limiter.SetLimit(rate.Every(delay))
	}
}

func (g *Gate) domainGate(domain string) *domainGate {
	g.mu.Lock()
	defer g.mu.Unlock()

	dg, ok := g.domains[domain]
	if !ok {
		dg = &domainGate{
			limiter:  rate.NewLimiter(g.limit(), 1),
			minDelay: g.delayMin,
		}
		g.domains[domain] = dg
	}
	return dg
}

// limit is one request per average configured delay.
func (g *Gate) limit() rate.Limit {
	avg := (g.delayMin + g.delayMax) / 2
	if avg <= 0 {
		return rate.Inf
	}
	return rate.Every(avg)
}

// jitter returns a uniform duration in [min, max] where min is the domain floor.
func (g *Gate) jitter(floor time.Duration) time.Duration {
	lo, hi := floor, g.delayMax
	if hi < lo {
		hi = lo
	}
	if hi == lo {
		return lo
	}
	return lo + rand.N(hi-lo+1)
}

// NormalizeDomain lowercases a host and strips a leading "www.".
func NormalizeDomain(host string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(host)), "www.")
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
