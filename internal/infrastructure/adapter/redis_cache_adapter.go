package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultCachePrefix = "hotel:"

var ErrCacheMiss = errors.New("cache miss")

type RedisCacheAdapter struct {
	client *redis.Client
	logger *slog.Logger
	prefix string
}

func NewRedisCacheAdapterWithClient(client *redis.Client, logger *slog.Logger) *RedisCacheAdapter {
	return &RedisCacheAdapter{
		client: client,
		logger: logger,
		prefix: defaultCachePrefix,
	}
}

func (r *RedisCacheAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	fullKey := r.prefix + key

	result, err := r.client.Get(ctx, fullKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Cache miss", "key", key)
			return nil, fmt.Errorf("%w for key %s", ErrCacheMiss, key)
		}
		r.logger.Error("Redis GET failed", "key", key, "error", err)
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	r.logger.Debug("Cache hit", "key", key, "bytes", len(result))
	return result, nil
}

func (r *RedisCacheAdapter) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	fullKey := r.prefix + key

	if err := r.client.Set(ctx, fullKey, value, ttl).Err(); err != nil {
		r.logger.Error("Redis SET failed", "key", key, "ttl", ttl, "error", err)
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	r.logger.Debug("Cached listing", "key", key, "ttl", ttl, "bytes", len(value))
	return nil
}

func (r *RedisCacheAdapter) Delete(ctx context.Context, key string) error {
	fullKey := r.prefix + key

	if err := r.client.Unlink(ctx, fullKey).Err(); err != nil {
		r.logger.Error("Redis UNLINK failed", "key", key, "error", err)
		return fmt.Errorf("redis unlink %s: %w", key, err)
	}
	return nil
}

// DeletePattern walks matching keys with SCAN so large keyspaces do not block the server.
func (r *RedisCacheAdapter) DeletePattern(ctx context.Context, pattern string) error {
	fullPattern := r.prefix + pattern

	var keys []string
	iter := r.client.Scan(ctx, 0, fullPattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		r.logger.Error("Redis SCAN failed", "pattern", pattern, "error", err)
		return fmt.Errorf("redis scan %s: %w", pattern, err)
	}
	if len(keys) == 0 {
		return nil
	}

	removed, err := r.client.Unlink(ctx, keys...).Result()
	if err != nil {
		r.logger.Error("Redis UNLINK failed", "pattern", pattern, "keys", len(keys), "error", err)
		return fmt.Errorf("redis unlink %s: %w", pattern, err)
	}

	r.logger.Info("Invalidated cached listings", "pattern", pattern, "removed", removed)
	return nil
}

func (r *RedisCacheAdapter) Ping(ctx context.Context) error {
	if _, err := r.client.Ping(ctx).Result(); err != nil {
		r.logger.Error("Redis ping failed", "error", err)
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisCacheAdapter) Close() error {
	return r.client.Close()
}
