package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alessandrv/FEC-mrp/internal/domain/shared"
	"github.com/alessandrv/FEC-mrp/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces every key this service writes to Redis
const DefaultKeyPrefix = "mrp:"

// RedisResultCache implements shared.ResultCache on Redis, so several
// instances share cached answers. Redis enforces the TTL.
type RedisResultCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisResultCache connects to Redis and verifies the connection
func NewRedisResultCache(cfg config.RedisConfig) (*RedisResultCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisResultCacheWithClient(client, DefaultKeyPrefix), nil
}

// NewRedisResultCacheWithClient creates a cache over an existing client
func NewRedisResultCacheWithClient(client *redis.Client, keyPrefix string) *RedisResultCache {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &RedisResultCache{client: client, keyPrefix: keyPrefix}
}

// Get returns the value stored under key
func (c *RedisResultCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cache key: %w", err)
	}
	return value, true, nil
}

// Set stores value for ttl. A non-positive ttl stores nothing.
func (c *RedisResultCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key: %w", err)
	}
	return nil
}

// Delete removes key
func (c *RedisResultCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete cache key: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisResultCache) Close() error {
	return c.client.Close()
}

var _ shared.ResultCache = (*RedisResultCache)(nil)
