package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL is how long cached search responses are kept.
const DefaultCacheTTL = 24 * time.Hour

const cacheKeyPrefix = "prospector:search:"

// Cache stores search responses keyed by request.
type Cache interface {
	Get(ctx context.Context, req Request) (*Response, bool)
	Set(ctx context.Context, req Request, resp *Response) error
}

// RedisCache is a Cache backed by Redis string keys with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a RedisCache.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Get returns a cached response. Misses and decode failures report false.
func (c *RedisCache) Get(ctx context.Context, req Request) (*Response, bool) {
	data, err := c.client.Get(ctx, CacheKey(req)).Bytes()
	if err != nil {
		return nil, false
	}

	var resp Response
	if unmarshalErr := json.Unmarshal(data, &resp); unmarshalErr != nil {
		return nil, false
	}
	return &resp, true
}

// Set stores a response.
func (c *RedisCache) Set(ctx context.Context, req Request, resp *Response) error {
	if resp == nil {
		return errors.New("nil search response")
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode search response: %w", err)
	}

	if setErr := c.client.Set(ctx, CacheKey(req), data, c.ttl).Err(); setErr != nil {
		return fmt.Errorf("cache search response: %w", setErr)
	}
	return nil
}

// CacheKey derives a stable key from the normalized request.
func CacheKey(req Request) string {
	req = normalize(req)
	raw := fmt.Sprintf("%s|%d|%s|%s", req.Query, req.Num, req.Country, req.Location)
	sum := sha256.Sum256([]byte(raw))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
