package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/victoragudo/hotel-management-system/internal/domain/reservation"
	"github.com/victoragudo/hotel-management-system/pkg/constants"
)

type CheckRoomAvailabilityUseCase struct {
	reservationRepo reservation.Repository
	logger          *slog.Logger
}

func NewCheckRoomAvailabilityUseCase(
	reservationRepo reservation.Repository,
	logger *slog.Logger,
) *CheckRoomAvailabilityUseCase {
	return &CheckRoomAvailabilityUseCase{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// Execute reports whether no live reservation of the room overlaps [start, end).
// Callers validate that start precedes end.
func (uc *CheckRoomAvailabilityUseCase) Execute(ctx context.Context, roomID int64, start, end time.Time) (bool, error) {
	overlapping, err := uc.reservationRepo.FindOverlapping(ctx, roomID, reservation.NewPeriod(start, end))
	if err != nil {
		return false, fmt.Errorf("failed to check availability of room %d: %w", roomID, err)
	}

	available := len(overlapping) == 0
	uc.logger.Debug("Room availability checked",
		constants.RoomId, roomID,
		"from", start,
		"to", end,
		"available", available,
		"overlapping", len(overlapping),
	)
	return available, nil
}
