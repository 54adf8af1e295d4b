package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock re-acquired by someone else is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLockAdapter struct {
	client *redis.Client
	logger *slog.Logger
	prefix string
}

func NewRedisLockAdapterWithClient(client *redis.Client, logger *slog.Logger) *RedisLockAdapter {
	return &RedisLockAdapter{
		client: client,
		logger: logger,
		prefix: defaultCachePrefix + "lock:",
	}
}

func (r *RedisLockAdapter) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.New().String()

	ok, err := r.client.SetNX(ctx, r.prefix+key, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("lock acquire error for key %s: %w", key, err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (r *RedisLockAdapter) Release(ctx context.Context, key, token string) error {
	if token == "" {
		return nil
	}

	deleted, err := releaseScript.Run(ctx, r.client, []string{r.prefix + key}, token).Int64()
	if err != nil {
		return fmt.Errorf("lock release error for key %s: %w", key, err)
	}
	if deleted == 0 {
		r.logger.Warn("Lock expired before release", "key", key)
	}
	return nil
}

func (r *RedisLockAdapter) Close() error {
	return r.client.Close()
}
