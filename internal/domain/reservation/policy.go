package reservation

import (
	"fmt"
	"time"

	"github.com/victoragudo/hotel-management-system/pkg/apperror"
)

const DefaultCancellationWindow = 48 * time.Hour

type CancellationMode string

const (
	// CancellationModeIntended allows cancelling only while check-in is more
	// than the window away.
	CancellationModeIntended CancellationMode = "intended"
	// CancellationModeLiteral rejects when check-in is still in the future or
	// lies more than the window after the start of today. In practice only
	// past check-ins pass. Kept until product confirms which rule is meant.
	CancellationModeLiteral CancellationMode = "literal"
)

var (
	ErrCancellationWindowClosed = apperror.BadRequest("Reservation can only be cancelled more than 2 days before check-in")
	ErrCancellationRejected     = apperror.BadRequest("Reservation cannot be cancelled more than 2 days before check-in")
)

type CancellationPolicy struct {
	Window time.Duration
	Mode   CancellationMode
}

func NewCancellationPolicy(window time.Duration, mode string) (CancellationPolicy, error) {
	if window <= 0 {
		window = DefaultCancellationWindow
	}

	switch CancellationMode(mode) {
	case "", CancellationModeIntended:
		return CancellationPolicy{Window: window, Mode: CancellationModeIntended}, nil
	case CancellationModeLiteral:
		return CancellationPolicy{Window: window, Mode: CancellationModeLiteral}, nil
	default:
		return CancellationPolicy{}, fmt.Errorf("unknown cancellation mode %q", mode)
	}
}

// Check returns nil when a reservation checking in at checkIn may be cancelled at now.
func (p CancellationPolicy) Check(checkIn, now time.Time) error {
	window := p.Window
	if window <= 0 {
		window = DefaultCancellationWindow
	}

	if p.Mode == CancellationModeLiteral {
		if checkIn.After(now) || checkIn.Sub(startOfDay(now)) > window {
			return ErrCancellationRejected
		}
		return nil
	}

	if checkIn.Sub(now) > window {
		return nil
	}
	return ErrCancellationWindowClosed
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
