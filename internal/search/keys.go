// Package search talks to the Serper-compatible search API: key rotation,
// organic/knowledge-graph search, account balances and response caching.
package search

import (
	"strings"
	"sync"

	"github.com/jonesrussell/north-cloud/prospector/internal/logger"
	"github.com/jonesrussell/north-cloud/prospector/internal/metrics"
)

// ParseKeys splits a comma-separated key list, dropping blank entries.
func ParseKeys(raw string) []string {
	var keys []string
	for _, part := range strings.Split(raw, ",") {
		if k := strings.TrimSpace(part); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// KeyRotator hands out search API keys and skips keys marked exhausted.
type KeyRotator struct {
	mu        sync.Mutex
	keys      []string
	exhausted map[int]bool
	index     int
	log       logger.Logger
	metrics   *metrics.Metrics
}

// NewKeyRotator creates a rotator over keys.
func NewKeyRotator(keys []string, log logger.Logger, m *metrics.Metrics) *KeyRotator {
	if log == nil {
		log = logger.NewNop()
	}
	if len(keys) > 0 {
		log.Info("Search key rotator initialized", logger.Int("keys", len(keys)))
	}
	return &KeyRotator{
		keys:      keys,
		exhausted: make(map[int]bool),
		log:       log,
		metrics:   m,
	}
}

// Key returns the current usable key, or "" when none remain.
func (r *KeyRotator) Key() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.keys) == 0 {
		return ""
	}
	if r.exhausted[r.index] {
		r.rotate()
	}
	if r.exhausted[r.index] {
		return ""
	}
	return r.keys[r.index]
}

// MarkExhausted flags the current key and advances to the next usable one.
func (r *KeyRotator) MarkExhausted() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.keys) == 0 {
		return
	}

	r.exhausted[r.index] = true
	r.metrics.KeyExhausted()
	r.log.Warn("Search key exhausted",
		logger.Int("key_index", r.index+1),
		logger.Int("active", len(r.keys)-len(r.exhausted)),
		logger.Int("total", len(r.keys)),
	)
	r.rotate()
}

// rotate moves forward to the next non-exhausted index. Callers hold mu.
func (r *KeyRotator) rotate() {
	if len(r.exhausted) >= len(r.keys) {
		r.log.Error("All search keys exhausted")
		return
	}
	for range len(r.keys) {
		r.index = (r.index + 1) % len(r.keys)
		if !r.exhausted[r.index] {
			r.log.Info("Rotated search key", logger.Int("key_index", r.index+1))
			return
		}
	}
}

// Reset marks every key usable again and starts from the first.
func (r *KeyRotator) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.exhausted = make(map[int]bool)
	r.index = 0
	r.log.Info("Search keys reset", logger.Int("keys", len(r.keys)))
}

// HasKeys reports whether any key is configured.
func (r *KeyRotator) HasKeys() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.keys) > 0
}

// Total returns the number of configured keys.
func (r *KeyRotator) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.keys)
}

// Active returns the number of keys not marked exhausted.
func (r *KeyRotator) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.keys) - len(r.exhausted)
}

// snapshot returns the keys and their exhaustion flags.
func (r *KeyRotator) snapshot() ([]string, []bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	flags := make([]bool, len(r.keys))
	for i := range r.keys {
		flags[i] = r.exhausted[i]
	}
	return keys, flags
}
