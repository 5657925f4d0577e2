package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs. Trending and stats are best-effort snapshots, so short TTLs
// bound their staleness; correctness never depends on the cache.
const (
	PromptCacheTTL   = 5 * time.Minute
	TrendingCacheTTL = time.Minute
	StatsCacheTTL    = time.Minute
)

// CacheService provides a Redis cache-aside layer for prompt, trending and
// stats reads.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client and all cache
// operations become no-ops.
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// Get retrieves a cached value. Returns nil if not cached or cache is disabled.
func (c *CacheService) Get(ctx context.Context, key string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// Set stores a JSON-encoded value with the given TTL.
func (c *CacheService) Set(ctx context.Context, key string, data interface{}, ttl time.Duration) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, ttl).Err()
}

// InvalidatePrompt removes a prompt from cache (called after vote changes and
// counter repairs).
func (c *CacheService) InvalidatePrompt(ctx context.Context, slug string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, PromptKey(slug)).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func PromptKey(slug string) string {
	return fmt.Sprintf("prompt:%s", slug)
}

func TrendingKey(timeframe string, ptype string, categoryID string, limit int) string {
	return fmt.Sprintf("trending:%s:%s:%s:%d", timeframe, ptype, categoryID, limit)
}

func StatsKey(detailed bool) string {
	return fmt.Sprintf("stats:community:%t", detailed)
}
