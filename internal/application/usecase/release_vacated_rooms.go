package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/victoragudo/hotel-management-system/internal/domain/room"
	"github.com/victoragudo/hotel-management-system/pkg/clock"
)

// ReleaseVacatedRoomsUseCase resets the availability flag of rooms whose
// bookings have all checked out or been cancelled.
type ReleaseVacatedRoomsUseCase struct {
	roomRepo room.Repository
	clock    clock.Clock
	logger   *slog.Logger
}

func NewReleaseVacatedRoomsUseCase(roomRepo room.Repository, clk clock.Clock, logger *slog.Logger) *ReleaseVacatedRoomsUseCase {
	return &ReleaseVacatedRoomsUseCase{
		roomRepo: roomRepo,
		clock:    clk,
		logger:   logger,
	}
}

func (uc *ReleaseVacatedRoomsUseCase) Execute(ctx context.Context) (int64, error) {
	startTime := time.Now()

	released, err := uc.roomRepo.ReleaseVacated(ctx, uc.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to release vacated rooms: %w", err)
	}

	uc.logger.Info("Vacated rooms released", "released", released, "duration", time.Since(startTime))
	return released, nil
}
