package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/karlseguin/ccache/v3"
)

// LocalCacheAdapter keeps listings in process memory. Entries are copied on
// the way in and out so callers cannot mutate cached bytes.
type LocalCacheAdapter struct {
	cache  *ccache.Cache[[]byte]
	logger *slog.Logger
}

func NewLocalCacheAdapter(maxSize int64, logger *slog.Logger) *LocalCacheAdapter {
	if maxSize <= 0 {
		maxSize = 1000
	}
	return &LocalCacheAdapter{
		cache:  ccache.New(ccache.Configure[[]byte]().MaxSize(maxSize)),
		logger: logger,
	}
}

func (l *LocalCacheAdapter) Get(_ context.Context, key string) ([]byte, error) {
	item := l.cache.Get(key)
	if item == nil || item.Expired() {
		l.logger.Debug("Cache miss", "key", key)
		return nil, fmt.Errorf("%w for key %s", ErrCacheMiss, key)
	}

	value := item.Value()
	l.logger.Debug("Cache hit", "key", key, "size", len(value))
	return append([]byte(nil), value...), nil
}

func (l *LocalCacheAdapter) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	l.cache.Set(key, append([]byte(nil), value...), ttl)
	l.logger.Debug("Cache set", "key", key, "ttl", ttl, "size", len(value))
	return nil
}

func (l *LocalCacheAdapter) Delete(_ context.Context, key string) error {
	deleted := l.cache.Delete(key)
	l.logger.Debug("Cache delete", "key", key, "deleted", deleted)
	return nil
}

// DeletePattern accepts glob patterns. A trailing "*" with no other
// metacharacters is served by a prefix delete.
func (l *LocalCacheAdapter) DeletePattern(_ context.Context, pattern string) error {
	var deleted int
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok && !strings.ContainsAny(prefix, "*?[") {
		deleted = l.cache.DeletePrefix(prefix)
	} else {
		deleted = l.cache.DeleteFunc(func(key string, _ *ccache.Item[[]byte]) bool {
			matched, err := path.Match(pattern, key)
			return err == nil && matched
		})
	}

	l.logger.Info("Cache pattern delete", "pattern", pattern, "deleted_count", deleted)
	return nil
}

func (l *LocalCacheAdapter) Ping(_ context.Context) error {
	return nil
}

func (l *LocalCacheAdapter) Close() error {
	l.cache.Stop()
	return nil
}
