package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// MemcachedCacheAdapter cannot enumerate keys, so every key embeds a
// namespace generation. DeletePattern bumps the generation, which orphans
// all previously written keys until memcached evicts them.
type MemcachedCacheAdapter struct {
	client       *memcache.Client
	logger       *slog.Logger
	prefix       string
	namespaceKey string
}

func NewMemcachedCacheAdapter(servers []string, logger *slog.Logger) *MemcachedCacheAdapter {
	return &MemcachedCacheAdapter{
		client:       memcache.New(servers...),
		logger:       logger,
		prefix:       defaultCachePrefix,
		namespaceKey: defaultCachePrefix + "generation",
	}
}

func (m *MemcachedCacheAdapter) generation() (uint64, error) {
	item, err := m.client.Get(m.namespaceKey)
	if err == nil {
		return strconv.ParseUint(strings.TrimSpace(string(item.Value)), 10, 64)
	}
	if !errors.Is(err, memcache.ErrCacheMiss) {
		return 0, err
	}

	if err := m.client.Add(&memcache.Item{Key: m.namespaceKey, Value: []byte("1")}); err != nil && !errors.Is(err, memcache.ErrNotStored) {
		return 0, err
	}
	return 1, nil
}

func (m *MemcachedCacheAdapter) fullKey(key string) (string, error) {
	gen, err := m.generation()
	if err != nil {
		return "", fmt.Errorf("memcached namespace lookup failed: %w", err)
	}
	return fmt.Sprintf("%s%d:%s", m.prefix, gen, key), nil
}

func (m *MemcachedCacheAdapter) Get(_ context.Context, key string) ([]byte, error) {
	fullKey, err := m.fullKey(key)
	if err != nil {
		return nil, err
	}

	item, err := m.client.Get(fullKey)
	if err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) {
			m.logger.Debug("Cache miss", "key", key)
			return nil, fmt.Errorf("%w for key %s", ErrCacheMiss, key)
		}
		m.logger.Error("Failed to get from cache", "key", key, "error", err)
		return nil, fmt.Errorf("cache get error for key %s: %w", key, err)
	}

	m.logger.Debug("Cache hit", "key", key, "size", len(item.Value))
	return item.Value, nil
}

func (m *MemcachedCacheAdapter) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	fullKey, err := m.fullKey(key)
	if err != nil {
		return err
	}

	item := &memcache.Item{
		Key:        fullKey,
		Value:      value,
		Expiration: int32(ttl / time.Second),
	}
	if err := m.client.Set(item); err != nil {
		m.logger.Error("Failed to set cache", "key", key, "ttl", ttl, "error", err)
		return fmt.Errorf("cache set error for key %s: %w", key, err)
	}

	m.logger.Debug("Cache set", "key", key, "ttl", ttl, "size", len(value))
	return nil
}

func (m *MemcachedCacheAdapter) Delete(_ context.Context, key string) error {
	fullKey, err := m.fullKey(key)
	if err != nil {
		return err
	}

	if err := m.client.Delete(fullKey); err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		m.logger.Error("Failed to delete from cache", "key", key, "error", err)
		return fmt.Errorf("cache delete error for key %s: %w", key, err)
	}
	return nil
}

func (m *MemcachedCacheAdapter) DeletePattern(_ context.Context, pattern string) error {
	gen, err := m.client.Increment(m.namespaceKey, 1)
	if err != nil {
		if !errors.Is(err, memcache.ErrCacheMiss) {
			m.logger.Error("Failed to bump cache generation", "pattern", pattern, "error", err)
			return fmt.Errorf("cache delete pattern error for %s: %w", pattern, err)
		}
		// no generation yet means nothing was cached under the current namespace
		gen = 1
	}

	m.logger.Info("Cache namespace invalidated", "pattern", pattern, "generation", gen)
	return nil
}

func (m *MemcachedCacheAdapter) Ping(_ context.Context) error {
	if err := m.client.Ping(); err != nil {
		return fmt.Errorf("memcached ping failed: %w", err)
	}
	return nil
}

// Close is a no-op; the client only holds idle pooled connections.
func (m *MemcachedCacheAdapter) Close() error {
	return nil
}
