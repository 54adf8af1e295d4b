package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/victoragudo/hotel-management-system/internal/domain/reservation"
	"github.com/victoragudo/hotel-management-system/pkg/apperror"
	"github.com/victoragudo/hotel-management-system/pkg/constants"
)

const (
	MaxCancellationNotesLength = 500

	ReservationCancelledMessage = "Reservation cancelled successfully"
)

var (
	errInvalidReservationID = apperror.BadRequest("Reservation id must be greater than 0")
	errNotesTooLong         = apperror.BadRequest("Notes must not exceed 500 characters")
)

type CancelReservationCommand struct {
	ReservationID int64  `json:"-"`
	Notes         string `json:"notes"`
}

func (c CancelReservationCommand) Validate() error {
	if c.ReservationID <= 0 {
		return errInvalidReservationID
	}
	if utf8.RuneCountInString(c.Notes) > MaxCancellationNotesLength {
		return errNotesTooLong
	}
	return nil
}

type CancelReservationUseCase struct {
	reservationRepo reservation.Repository
	eligibility     *CheckCancellationEligibilityUseCase
	logger          *slog.Logger
}

func NewCancelReservationUseCase(
	reservationRepo reservation.Repository,
	eligibility *CheckCancellationEligibilityUseCase,
	logger *slog.Logger,
) *CancelReservationUseCase {
	return &CancelReservationUseCase{
		reservationRepo: reservationRepo,
		eligibility:     eligibility,
		logger:          logger,
	}
}

func (uc *CancelReservationUseCase) Execute(ctx context.Context, cmd CancelReservationCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	if _, err := uc.eligibility.Execute(ctx, cmd.ReservationID); err != nil {
		return "", err
	}

	if err := uc.reservationRepo.SoftDelete(ctx, cmd.ReservationID); err != nil {
		return "", fmt.Errorf("failed to cancel reservation %d: %w", cmd.ReservationID, err)
	}

	uc.logger.Info("Reservation cancelled", constants.ReservationId, cmd.ReservationID, "notes", cmd.Notes)
	return ReservationCancelledMessage, nil
}
