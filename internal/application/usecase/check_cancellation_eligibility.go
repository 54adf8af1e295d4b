package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/victoragudo/hotel-management-system/internal/domain/reservation"
	"github.com/victoragudo/hotel-management-system/pkg/clock"
	"github.com/victoragudo/hotel-management-system/pkg/constants"
)

type CheckCancellationEligibilityUseCase struct {
	reservationRepo reservation.Repository
	policy          reservation.CancellationPolicy
	clock           clock.Clock
	logger          *slog.Logger
}

func NewCheckCancellationEligibilityUseCase(
	reservationRepo reservation.Repository,
	policy reservation.CancellationPolicy,
	clk clock.Clock,
	logger *slog.Logger,
) *CheckCancellationEligibilityUseCase {
	return &CheckCancellationEligibilityUseCase{
		reservationRepo: reservationRepo,
		policy:          policy,
		clock:           clk,
		logger:          logger,
	}
}

func (uc *CheckCancellationEligibilityUseCase) Execute(ctx context.Context, reservationID int64) (bool, error) {
	res, err := uc.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		return false, fmt.Errorf("failed to load reservation %d: %w", reservationID, err)
	}
	if res == nil {
		return false, reservation.ErrNotFound
	}

	if err := uc.policy.Check(res.CheckIn, uc.clock.Now()); err != nil {
		uc.logger.Info("Reservation not eligible for cancellation",
			constants.ReservationId, reservationID,
			"check_in", res.CheckIn,
			"mode", uc.policy.Mode,
		)
		return false, err
	}
	return true, nil
}
