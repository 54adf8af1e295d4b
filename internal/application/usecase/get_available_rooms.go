package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/victoragudo/hotel-management-system/internal/domain/room"
)

// AvailableRoomsQuery holds the raw preferences. A blank Type means any
// type and a nil OnlyAvailable means true.
type AvailableRoomsQuery struct {
	Capacity      *int
	Type          string
	MinPrice      *float64
	MaxPrice      *float64
	FacilityIDs   []int64
	OnlyAvailable *bool
}

func (q AvailableRoomsQuery) ToFilter() (room.Filter, error) {
	filter := room.Filter{
		Capacity:      q.Capacity,
		MinPrice:      q.MinPrice,
		MaxPrice:      q.MaxPrice,
		FacilityIDs:   q.FacilityIDs,
		OnlyAvailable: true,
	}
	if q.OnlyAvailable != nil {
		filter.OnlyAvailable = *q.OnlyAvailable
	}
	if strings.TrimSpace(q.Type) != "" {
		roomType, ok := room.ParseType(q.Type)
		if !ok {
			return filter, room.ErrInvalidTypeFilter
		}
		filter.Type = &roomType
	}
	return filter, filter.Validate()
}

type GetAvailableRoomsUseCase struct {
	roomRepo room.Repository
	cache    roomListingCache
	ttl      time.Duration
	logger   *slog.Logger
}

func NewGetAvailableRoomsUseCase(roomRepo room.Repository, cache room.CacheRepository, ttl CacheTTL, logger *slog.Logger) *GetAvailableRoomsUseCase {
	return &GetAvailableRoomsUseCase{
		roomRepo: roomRepo,
		cache:    roomListingCache{cache: cache, logger: logger},
		ttl:      ttl.withDefaults().AvailableRooms,
		logger:   logger,
	}
}

func (uc *GetAvailableRoomsUseCase) Execute(ctx context.Context, query AvailableRoomsQuery) ([]*room.Room, error) {
	filter, err := query.ToFilter()
	if err != nil {
		return nil, err
	}

	cacheKey := filter.CacheKey()
	if rooms, ok := uc.cache.get(ctx, cacheKey); ok {
		uc.logger.Debug("Cache hit for available rooms", "cache_key", cacheKey)
		return rooms, nil
	}

	rooms, err := uc.roomRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search rooms: %w", err)
	}
	if len(rooms) == 0 {
		return nil, room.ErrNoRoomsMatch
	}

	uc.cache.set(ctx, cacheKey, rooms, uc.ttl)
	return rooms, nil
}
