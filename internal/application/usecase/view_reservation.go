package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/victoragudo/hotel-management-system/internal/domain/reservation"
)

type ViewReservationUseCase struct {
	reservationRepo reservation.Repository
	logger          *slog.Logger
}

func NewViewReservationUseCase(
	reservationRepo reservation.Repository,
	logger *slog.Logger,
) *ViewReservationUseCase {
	return &ViewReservationUseCase{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

func (uc *ViewReservationUseCase) Execute(ctx context.Context, reservationID int64) (*reservation.Details, error) {
	if reservationID <= 0 {
		return nil, errInvalidReservationID
	}

	details, err := uc.reservationRepo.FindDetails(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservation %d: %w", reservationID, err)
	}
	if details == nil {
		return nil, reservation.ErrNotFound
	}
	return details, nil
}
