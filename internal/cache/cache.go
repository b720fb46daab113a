/**
 * @description
 * TTL cache abstraction.
 * Owned by the service layer and injected into services so the core logic
 * stays pure and testable; there is no process-wide static cache state.
 *
 * @dependencies
 * - github.com/redis/go-redis/v9
 * - encoding/json
 */

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores JSON-serializable values under string keys with a TTL
type Cache interface {
	// Get unmarshals the cached value into out and reports whether it was found
	Get(ctx context.Context, key string, out interface{}) (bool, error)
	// Set stores the value under key for ttl
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// Clear removes the given keys
	Clear(ctx context.Context, keys ...string) error
}

// RedisCache implements Cache on a Redis client with a key prefix
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache creates a RedisCache. All keys are namespaced under prefix.
func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return c.prefix + ":" + k
}

func (c *RedisCache) Get(ctx context.Context, key string, out interface{}) (bool, error) {
	val, err := c.client.Get(ctx, c.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		// Stale or corrupt entry; treat as a miss
		return false, nil
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(key), data, ttl).Err()
}

func (c *RedisCache) Clear(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	namespaced := make([]string, len(keys))
	for i, k := range keys {
		namespaced[i] = c.key(k)
	}
	return c.client.Del(ctx, namespaced...).Err()
}
