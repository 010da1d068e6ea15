package marketplace

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a TTL-bound Redis cache for marketplace responses, keyed by
// request URL. Discogs rate-limits aggressively and release data moves
// slowly, so short-lived caching saves most of the quota. A nil *Cache is
// valid and disables caching.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCache parses redisURL and verifies connectivity.
func NewCache(ctx context.Context, redisURL string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Cache{rdb: client, ttl: ttl}, nil
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	b, err := c.rdb.Get(ctx, "mkt:"+key).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

// Set stores a response body. Failures are ignored: the cache is an
// optimization, never a source of truth.
func (c *Cache) Set(ctx context.Context, key string, body []byte) {
	if c == nil {
		return
	}
	_ = c.rdb.Set(ctx, "mkt:"+key, body, c.ttl).Err()
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
