package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/victoragudo/hotel-management-system/internal/domain/event"
	"github.com/victoragudo/hotel-management-system/internal/domain/reservation"
	"github.com/victoragudo/hotel-management-system/internal/domain/room"
	"github.com/victoragudo/hotel-management-system/pkg/constants"
)

// MarkRoomBookedUseCase flags a room unavailable after it has been booked.
// The flag is a derived signal; availability checks never read it.
type MarkRoomBookedUseCase struct {
	roomRepo room.Repository
	logger   *slog.Logger
}

func NewMarkRoomBookedUseCase(roomRepo room.Repository, logger *slog.Logger) *MarkRoomBookedUseCase {
	return &MarkRoomBookedUseCase{
		roomRepo: roomRepo,
		logger:   logger,
	}
}

func (uc *MarkRoomBookedUseCase) Execute(ctx context.Context, roomID int64) error {
	if err := uc.roomRepo.SetAvailability(ctx, roomID, false); err != nil {
		return fmt.Errorf("failed to mark room %d as booked: %w", roomID, err)
	}
	uc.logger.Info("Room marked as booked", constants.RoomId, roomID)
	return nil
}

// Handle subscribes the use case to RoomBooked events.
func (uc *MarkRoomBookedUseCase) Handle(ctx context.Context, e event.Event) error {
	switch booked := e.(type) {
	case reservation.RoomBooked:
		return uc.Execute(ctx, booked.RoomID)
	case *reservation.RoomBooked:
		return uc.Execute(ctx, booked.RoomID)
	default:
		return fmt.Errorf("unexpected event %s", e.EventName())
	}
}
