package usecase

import (
	"context"
	"log/slog"

	"github.com/victoragudo/hotel-management-system/internal/domain/room"
	"github.com/victoragudo/hotel-management-system/pkg/constants"
)

type DeleteRoomUseCase struct {
	roomRepo room.Repository
	cache    roomListingCache
	logger   *slog.Logger
}

func NewDeleteRoomUseCase(roomRepo room.Repository, cache room.CacheRepository, logger *slog.Logger) *DeleteRoomUseCase {
	return &DeleteRoomUseCase{
		roomRepo: roomRepo,
		cache:    roomListingCache{cache: cache, logger: logger},
		logger:   logger,
	}
}

func (uc *DeleteRoomUseCase) Execute(ctx context.Context, roomID int64) error {
	if roomID <= 0 {
		return errInvalidRoomID
	}

	if err := uc.roomRepo.SoftDelete(ctx, roomID); err != nil {
		return err
	}

	uc.cache.invalidate(ctx)
	uc.logger.Info("Room deleted", constants.RoomId, roomID)
	return nil
}
