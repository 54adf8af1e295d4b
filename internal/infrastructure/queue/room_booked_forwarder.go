package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"github.com/victoragudo/hotel-management-system/internal/domain/event"
	"github.com/victoragudo/hotel-management-system/internal/domain/reservation"
	"github.com/victoragudo/hotel-management-system/pkg/constants"
)

type MessagePublisher interface {
	Publish(ctx context.Context, message Message) error
}

// RoomBookedForwarder copies RoomBooked events to the outbound integration
// feed. Room state is never updated from the feed.
type RoomBookedForwarder struct {
	publisher MessagePublisher
	timeout   time.Duration
	logger    *slog.Logger
}

func NewRoomBookedForwarder(publisher MessagePublisher, timeout time.Duration, logger *slog.Logger) *RoomBookedForwarder {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RoomBookedForwarder{
		publisher: publisher,
		timeout:   timeout,
		logger:    logger,
	}
}

func (f *RoomBookedForwarder) Handle(ctx context.Context, e event.Event) error {
	var booked reservation.RoomBooked
	switch ev := e.(type) {
	case reservation.RoomBooked:
		booked = ev
	case *reservation.RoomBooked:
		booked = *ev
	default:
		return fmt.Errorf("unexpected event %s", e.EventName())
	}

	message := Message{
		ID:   uuid.New().String(),
		Type: constants.EventRoomBooked,
		Data: map[string]any{
			"reservation_id": booked.ReservationID,
			"room_id":        booked.RoomID,
			"check_in":       booked.CheckIn.Format(time.RFC3339),
			"check_out":      booked.CheckOut.Format(time.RFC3339),
		},
	}

	publishCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	if err := f.publisher.Publish(publishCtx, message); err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			f.logger.Warn("Feed circuit open, message dropped", "message_id", message.ID, constants.ReservationId, booked.ReservationID)
			return nil
		}
		return fmt.Errorf("failed to forward reservation %d: %w", booked.ReservationID, err)
	}

	f.logger.Debug("Reservation forwarded to feed", "message_id", message.ID, constants.ReservationId, booked.ReservationID)
	return nil
}
