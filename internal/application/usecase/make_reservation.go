package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/victoragudo/hotel-management-system/internal/domain/event"
	"github.com/victoragudo/hotel-management-system/internal/domain/reservation"
	"github.com/victoragudo/hotel-management-system/internal/domain/room"
	"github.com/victoragudo/hotel-management-system/pkg/apperror"
	"github.com/victoragudo/hotel-management-system/pkg/clock"
	"github.com/victoragudo/hotel-management-system/pkg/constants"
)

var (
	errInvalidGuestCount = apperror.BadRequest("Number of guests must be greater than 0")
	errInvalidRoomID     = apperror.BadRequest("Room id must be greater than 0")
	errInvalidGuestID    = apperror.BadRequest("Guest id must be greater than 0")
)

type MakeReservationCommand struct {
	RoomID         int64     `json:"room_id"`
	GuestID        int64     `json:"guest_id"`
	CheckIn        time.Time `json:"check_in"`
	CheckOut       time.Time `json:"check_out"`
	NumberOfGuests int       `json:"number_of_guests"`
	CreatedBy      int64     `json:"-"`
}

func (c MakeReservationCommand) Validate(now time.Time) error {
	if !c.CheckIn.Before(c.CheckOut) {
		return reservation.ErrInvalidPeriod
	}
	if c.CheckIn.Before(now) {
		return reservation.ErrCheckInPassed
	}
	if !c.CheckOut.After(now) {
		return reservation.ErrCheckOutPassed
	}
	if c.NumberOfGuests <= 0 {
		return errInvalidGuestCount
	}
	if c.RoomID <= 0 {
		return errInvalidRoomID
	}
	if c.GuestID <= 0 {
		return errInvalidGuestID
	}
	return nil
}

type LockOptions struct {
	TTL           time.Duration
	Wait          time.Duration
	RetryInterval time.Duration
}

func (o LockOptions) withDefaults() LockOptions {
	if o.TTL <= 0 {
		o.TTL = 10 * time.Second
	}
	if o.Wait < 0 {
		o.Wait = 0
	}
	if o.RetryInterval <= 0 {
		o.RetryInterval = 50 * time.Millisecond
	}
	return o
}

func roomLockKey(roomID int64) string {
	return fmt.Sprintf("reservation:room:%d", roomID)
}

type MakeReservationUseCase struct {
	reservationRepo reservation.Repository
	roomRepo        room.Repository
	availability    *CheckRoomAvailabilityUseCase
	locker          reservation.Locker
	publisher       event.Publisher
	clock           clock.Clock
	lockOptions     LockOptions
	logger          *slog.Logger
}

func NewMakeReservationUseCase(
	reservationRepo reservation.Repository,
	roomRepo room.Repository,
	availability *CheckRoomAvailabilityUseCase,
	locker reservation.Locker,
	publisher event.Publisher,
	clk clock.Clock,
	lockOptions LockOptions,
	logger *slog.Logger,
) *MakeReservationUseCase {
	return &MakeReservationUseCase{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		availability:    availability,
		locker:          locker,
		publisher:       publisher,
		clock:           clk,
		lockOptions:     lockOptions.withDefaults(),
		logger:          logger,
	}
}

func (uc *MakeReservationUseCase) Execute(ctx context.Context, cmd MakeReservationCommand) (*reservation.Reservation, error) {
	startTime := time.Now()

	if err := cmd.Validate(uc.clock.Now()); err != nil {
		return nil, err
	}

	rm, err := uc.roomRepo.FindByID(ctx, cmd.RoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to load room %d: %w", cmd.RoomID, err)
	}
	if rm == nil {
		return nil, room.ErrNotFound
	}
	if rm.PricePerNight <= 0 {
		return nil, room.ErrInvalidPricePerNight
	}

	lockKey := roomLockKey(cmd.RoomID)
	lockToken, err := uc.acquire(ctx, lockKey)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := uc.locker.Release(context.WithoutCancel(ctx), lockKey, lockToken); err != nil {
			uc.logger.Warn("Failed to release room lock", "key", lockKey, "error", err)
		}
	}()

	available, err := uc.availability.Execute(ctx, cmd.RoomID, cmd.CheckIn, cmd.CheckOut)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, reservation.ErrRoomUnavailable
	}

	period := reservation.NewPeriod(cmd.CheckIn, cmd.CheckOut)
	res := &reservation.Reservation{
		RoomID:         cmd.RoomID,
		GuestID:        cmd.GuestID,
		CheckIn:        cmd.CheckIn,
		CheckOut:       cmd.CheckOut,
		NumberOfGuests: cmd.NumberOfGuests,
		TotalPrice:     float64(period.Nights()) * rm.PricePerNight,
		CreatedBy:      cmd.CreatedBy,
	}

	if err := uc.reservationRepo.Create(ctx, res); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	uc.publisher.Publish(ctx, reservation.RoomBooked{
		ReservationID: res.ID,
		RoomID:        res.RoomID,
		CheckIn:       res.CheckIn,
		CheckOut:      res.CheckOut,
		OccurredAt:    uc.clock.Now(),
	})

	uc.logger.Info("Reservation created",
		constants.ReservationId, res.ID,
		constants.RoomId, res.RoomID,
		"nights", period.Nights(),
		"total_price", res.TotalPrice,
		"duration", time.Since(startTime),
	)
	return res, nil
}

// acquire retries until the lock is taken or the wait budget runs out.
func (uc *MakeReservationUseCase) acquire(ctx context.Context, key string) (string, error) {
	deadline := time.Now().Add(uc.lockOptions.Wait)

	for {
		token, ok, err := uc.locker.Acquire(ctx, key, uc.lockOptions.TTL)
		if err != nil {
			return "", fmt.Errorf("failed to acquire room lock: %w", err)
		}
		if ok {
			return token, nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			uc.logger.Warn("Room lock is held by another booking", "key", key, "waited", uc.lockOptions.Wait)
			return "", reservation.ErrRoomBusy
		}

		timer := time.NewTimer(min(uc.lockOptions.RetryInterval, remaining))
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}
}
