package fetcher_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/prospector/internal/fetcher"
)

func TestGate_SerializesSameDomain(t *testing.T) {
	t.Parallel()

	const delay = 20 * time.Millisecond
	gate := fetcher.NewGate(delay, delay)

	start := time.Now()
	var wg sync.WaitGroup
	for range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, gate.Acquire(context.Background(), "www.Example.com"))
		}()
	}
	wg.Wait()

	// Three serialized acquisitions each sleep at least the jitter floor.
	assert.GreaterOrEqual(t, time.Since(start), 3*delay)
}

func TestGate_IndependentDomains(t *testing.T) {
	t.Parallel()

	const delay = 30 * time.Millisecond
	gate := fetcher.NewGate(delay, delay)

	start := time.Now()
	var wg sync.WaitGroup
	for _, d := range []string{"a.com", "b.com", "c.com"} {
		wg.Add(1)
		go func(domain string) {
			defer wg.Done()
			assert.NoError(t, gate.Acquire(context.Background(), domain))
		}(d)
	}
	wg.Wait()

	assert.Less(t, time.Since(start), 3*delay)
}

func TestGate_HonoursCancellation(t *testing.T) {
	t.Parallel()

	gate := fetcher.NewGate(time.Hour, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := gate.Acquire(ctx, "slow.com")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNormalizeDomain(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "acme.com", fetcher.NormalizeDomain(" WWW.Acme.com "))
	assert.Equal(t, "shop.acme.com", fetcher.NormalizeDomain("shop.acme.com"))
}
