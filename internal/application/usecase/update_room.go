package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/victoragudo/hotel-management-system/internal/domain/room"
	"github.com/victoragudo/hotel-management-system/pkg/constants"
)

type UpdateRoomCommand struct {
	RoomID        int64    `json:"-"`
	Number        *int     `json:"room_number"`
	Name          *string  `json:"name"`
	Capacity      *int     `json:"capacity"`
	ImageURL      *string  `json:"image_url"`
	Type          *string  `json:"type"`
	PricePerNight *float64 `json:"price_per_night"`
}

// ToUpdate validates the supplied fields and converts them to a room.Update.
func (c UpdateRoomCommand) ToUpdate() (room.Update, error) {
	var update room.Update

	if c.RoomID <= 0 {
		return update, errInvalidRoomID
	}
	if c.Number != nil {
		if *c.Number <= 0 {
			return update, room.ErrInvalidRoomNumber
		}
		update.Number = c.Number
	}
	if c.Name != nil {
		name := strings.TrimSpace(*c.Name)
		update.Name = &name
	}
	if c.Capacity != nil {
		if *c.Capacity < 0 {
			return update, room.ErrInvalidCapacity
		}
		update.Capacity = c.Capacity
	}
	if c.ImageURL != nil {
		url := strings.TrimSpace(*c.ImageURL)
		if utf8.RuneCountInString(url) > room.MaxImageURLLength {
			return update, room.ErrImageURLTooLong
		}
		update.ImageURL = &url
	}
	if c.Type != nil {
		roomType, ok := room.ParseType(*c.Type)
		if !ok {
			return update, room.ErrInvalidType
		}
		update.Type = &roomType
	}
	if c.PricePerNight != nil {
		if *c.PricePerNight <= 0 {
			return update, room.ErrInvalidPricePerNight
		}
		update.PricePerNight = c.PricePerNight
	}
	return update, nil
}

type UpdateRoomUseCase struct {
	roomRepo room.Repository
	cache    roomListingCache
	logger   *slog.Logger
}

func NewUpdateRoomUseCase(roomRepo room.Repository, cache room.CacheRepository, logger *slog.Logger) *UpdateRoomUseCase {
	return &UpdateRoomUseCase{
		roomRepo: roomRepo,
		cache:    roomListingCache{cache: cache, logger: logger},
		logger:   logger,
	}
}

func (uc *UpdateRoomUseCase) Execute(ctx context.Context, cmd UpdateRoomCommand) (*room.Room, error) {
	update, err := cmd.ToUpdate()
	if err != nil {
		return nil, err
	}

	existing, err := uc.roomRepo.FindByID(ctx, cmd.RoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to load room %d: %w", cmd.RoomID, err)
	}
	if existing == nil {
		return nil, room.ErrNotFound
	}
	if update.IsEmpty() {
		return existing, nil
	}

	if update.Number != nil && *update.Number != existing.Number {
		taken, err := uc.roomRepo.ExistsByNumber(ctx, *update.Number, cmd.RoomID)
		if err != nil {
			return nil, fmt.Errorf("failed to check room number: %w", err)
		}
		if taken {
			return nil, room.ErrNumberTaken
		}
	}

	if err := uc.roomRepo.ApplyUpdate(ctx, cmd.RoomID, update); err != nil {
		return nil, err
	}
	uc.cache.invalidate(ctx)

	updated, err := uc.roomRepo.FindByID(ctx, cmd.RoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload room %d: %w", cmd.RoomID, err)
	}
	if updated == nil {
		return nil, room.ErrNotFound
	}

	uc.logger.Info("Room updated", constants.RoomId, cmd.RoomID)
	return updated, nil
}
