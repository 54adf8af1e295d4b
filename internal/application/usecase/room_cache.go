package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/victoragudo/hotel-management-system/internal/domain/room"
	"github.com/victoragudo/hotel-management-system/pkg/constants"
)

const (
	DefaultRoomsCacheTTL          = 20 * time.Minute
	DefaultAvailableRoomsCacheTTL = 15 * time.Minute
)

type CacheTTL struct {
	Rooms          time.Duration
	AvailableRooms time.Duration
}

func (t CacheTTL) withDefaults() CacheTTL {
	if t.Rooms <= 0 {
		t.Rooms = DefaultRoomsCacheTTL
	}
	if t.AvailableRooms <= 0 {
		t.AvailableRooms = DefaultAvailableRoomsCacheTTL
	}
	return t
}

// roomListingCache reads and writes serialized room listings. Cache faults
// are logged and otherwise ignored so the database stays the fallback.
type roomListingCache struct {
	cache  room.CacheRepository
	logger *slog.Logger
}

func (c roomListingCache) get(ctx context.Context, key string) ([]*room.Room, bool) {
	data, err := c.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}

	var rooms []*room.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		c.logger.Warn("Failed to unmarshal cached rooms", "cache_key", key, "error", err)
		return nil, false
	}
	return rooms, true
}

func (c roomListingCache) set(ctx context.Context, key string, rooms []*room.Room, ttl time.Duration) {
	data, err := json.Marshal(rooms)
	if err != nil {
		c.logger.Warn("Failed to marshal rooms for cache", "cache_key", key, "error", err)
		return
	}
	if err := c.cache.Set(ctx, key, data, ttl); err != nil {
		c.logger.Warn("Failed to cache rooms", "cache_key", key, "error", err)
	}
}

// invalidate drops every room listing, paged or filtered.
func (c roomListingCache) invalidate(ctx context.Context) {
	for _, pattern := range []string{constants.RoomsCacheKeyPrefix + "*", constants.AvailableRoomsCacheKeyPrefix + "_*"} {
		if err := c.cache.DeletePattern(ctx, pattern); err != nil {
			c.logger.Warn("Failed to invalidate room cache", "pattern", pattern, "error", err)
		}
	}
}
