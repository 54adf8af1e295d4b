package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/victoragudo/hotel-management-system/internal/domain/reservation"
	"github.com/victoragudo/hotel-management-system/pkg/constants"
)

type EditReservationCommand struct {
	ReservationID int64
	Update        reservation.Update
}

func (c EditReservationCommand) Validate() error {
	if c.ReservationID <= 0 {
		return errInvalidReservationID
	}
	if c.Update.NumberOfGuests != nil && *c.Update.NumberOfGuests <= 0 {
		return errInvalidGuestCount
	}
	if c.Update.RoomID != nil && *c.Update.RoomID <= 0 {
		return errInvalidRoomID
	}
	return nil
}

// EditReservationUseCase rewrites dates, room and guest count. The total
// price keeps the value computed at booking time.
type EditReservationUseCase struct {
	reservationRepo reservation.Repository
	logger          *slog.Logger
}

func NewEditReservationUseCase(
	reservationRepo reservation.Repository,
	logger *slog.Logger,
) *EditReservationUseCase {
	return &EditReservationUseCase{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

func (uc *EditReservationUseCase) Execute(ctx context.Context, cmd EditReservationCommand) (*reservation.Reservation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	res, err := uc.reservationRepo.FindByID(ctx, cmd.ReservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservation %d: %w", cmd.ReservationID, err)
	}
	if res == nil {
		return nil, reservation.ErrNotFound
	}

	if cmd.Update.IsEmpty() {
		return res, nil
	}

	cmd.Update.Apply(res)
	if !res.Period().Valid() {
		return nil, reservation.ErrInvalidPeriod
	}

	if err := uc.reservationRepo.ApplyUpdate(ctx, cmd.ReservationID, cmd.Update); err != nil {
		return nil, fmt.Errorf("failed to edit reservation %d: %w", cmd.ReservationID, err)
	}

	uc.logger.Info("Reservation edited", constants.ReservationId, cmd.ReservationID)
	return res, nil
}
