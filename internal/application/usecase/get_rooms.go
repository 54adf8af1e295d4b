package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/victoragudo/hotel-management-system/internal/domain/room"
	"github.com/victoragudo/hotel-management-system/pkg/apperror"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var (
	errInvalidPage     = apperror.BadRequest("Page must be at least 1")
	errInvalidPageSize = apperror.BadRequest("Page size must be between 1 and 100")
)

type GetRoomsUseCase struct {
	roomRepo room.Repository
	cache    roomListingCache
	ttl      time.Duration
	logger   *slog.Logger
}

func NewGetRoomsUseCase(roomRepo room.Repository, cache room.CacheRepository, ttl CacheTTL, logger *slog.Logger) *GetRoomsUseCase {
	return &GetRoomsUseCase{
		roomRepo: roomRepo,
		cache:    roomListingCache{cache: cache, logger: logger},
		ttl:      ttl.withDefaults().Rooms,
		logger:   logger,
	}
}

// Execute returns one page of live rooms ordered by number. Zero values select the defaults.
func (uc *GetRoomsUseCase) Execute(ctx context.Context, page, pageSize int) ([]*room.Room, error) {
	if page == 0 {
		page = DefaultPage
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		return nil, errInvalidPage
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return nil, errInvalidPageSize
	}

	cacheKey := room.ListCacheKey(page, pageSize)
	if rooms, ok := uc.cache.get(ctx, cacheKey); ok {
		uc.logger.Debug("Cache hit for rooms", "cache_key", cacheKey)
		return rooms, nil
	}

	rooms, err := uc.roomRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	if len(rooms) == 0 {
		return nil, room.ErrNoRoomsFound
	}

	uc.cache.set(ctx, cacheKey, rooms, uc.ttl)
	return rooms, nil
}
