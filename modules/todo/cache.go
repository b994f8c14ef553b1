package todo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultCacheTTL    = 5 * time.Minute
	defaultCachePrefix = "todo:"
)

// Cache is a Redis-backed read-through cache for task lookups and listings.
// It is entirely optional: a nil *Cache disables caching and every method
// degrades to a no-op, so callers never branch on whether Redis is present.
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewCache creates a cache around an existing Redis client.
func NewCache(client *redis.Client) *Cache {
	return &Cache{
		client: client,
		prefix: defaultCachePrefix,
		ttl:    defaultCacheTTL,
	}
}

// Get retrieves a cached value into dest.
// Returns false on a miss; cache errors are reported but treated as misses
// by callers so Redis outages never fail a request.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil {
		return false, nil
	}

	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal error: %w", err)
	}

	return true, nil
}

// Set stores a value with the default TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}

	return nil
}

// InvalidateUser removes every cached entry belonging to a user. Called on
// every mutation so reads never serve a stale page after a write.
func (c *Cache) InvalidateUser(ctx context.Context, userID string) error {
	if c == nil {
		return nil
	}

	pattern := c.prefix + userKeyPrefix(userID) + "*"
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete error: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan error: %w", err)
	}

	return nil
}

// Ping verifies the Redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

func userKeyPrefix(userID string) string {
	return "user:" + userID + ":"
}

func taskKey(userID, id string) string {
	return userKeyPrefix(userID) + "task:" + id
}

func listKey(userID string, filter ListFilter, page, limit int) string {
	return fmt.Sprintf("%slist:%s:%s:%d:%d", userKeyPrefix(userID), filter.Status, filter.Priority, page, limit)
}
