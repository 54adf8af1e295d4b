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

type AddRoomCommand struct {
	Number        int     `json:"room_number"`
	Name          string  `json:"name"`
	Capacity      int     `json:"capacity"`
	ImageURL      string  `json:"image_url"`
	Type          string  `json:"type"`
	PricePerNight float64 `json:"price_per_night"`
}

// Validate checks the command and returns the parsed room type.
func (c AddRoomCommand) Validate() (room.Type, error) {
	if c.Number <= 0 {
		return "", room.ErrInvalidRoomNumber
	}
	roomType, ok := room.ParseType(c.Type)
	if !ok {
		return "", room.ErrInvalidType
	}
	if c.PricePerNight <= 0 {
		return "", room.ErrInvalidPricePerNight
	}
	if c.Capacity < 0 {
		return "", room.ErrInvalidCapacity
	}
	if utf8.RuneCountInString(c.ImageURL) > room.MaxImageURLLength {
		return "", room.ErrImageURLTooLong
	}
	return roomType, nil
}

type AddRoomUseCase struct {
	roomRepo room.Repository
	cache    roomListingCache
	logger   *slog.Logger
}

func NewAddRoomUseCase(roomRepo room.Repository, cache room.CacheRepository, logger *slog.Logger) *AddRoomUseCase {
	return &AddRoomUseCase{
		roomRepo: roomRepo,
		cache:    roomListingCache{cache: cache, logger: logger},
		logger:   logger,
	}
}

func (uc *AddRoomUseCase) Execute(ctx context.Context, cmd AddRoomCommand) (*room.Room, error) {
	roomType, err := cmd.Validate()
	if err != nil {
		return nil, err
	}

	taken, err := uc.roomRepo.ExistsByNumber(ctx, cmd.Number, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check room number: %w", err)
	}
	if taken {
		return nil, room.ErrNumberTaken
	}

	rm := &room.Room{
		Number:        cmd.Number,
		Name:          strings.TrimSpace(cmd.Name),
		Capacity:      cmd.Capacity,
		ImageURL:      strings.TrimSpace(cmd.ImageURL),
		Type:          roomType,
		PricePerNight: cmd.PricePerNight,
		Facilities:    []string{},
	}
	if err := uc.roomRepo.Create(ctx, rm); err != nil {
		return nil, err
	}

	uc.cache.invalidate(ctx)
	uc.logger.Info("Room added", constants.RoomId, rm.ID, "number", rm.Number, "type", rm.Type)
	return rm, nil
}
