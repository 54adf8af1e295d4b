package reservation

import (
	"time"

	"github.com/victoragudo/hotel-management-system/pkg/apperror"
	"github.com/victoragudo/hotel-management-system/pkg/constants"
)

var (
	ErrNotFound        = apperror.NotFound("Reservation not found")
	ErrRoomUnavailable = apperror.BadRequest("Room is not available for the selected dates")
	ErrRoomBusy        = apperror.BadRequest("Room is being booked by another request, please retry")
	ErrInvalidPeriod   = apperror.BadRequest("Check-in date must be before check-out date")
	ErrCheckInPassed   = apperror.BadRequest("Check-in date is passed")
	ErrCheckOutPassed  = apperror.BadRequest("Check-out date is passed")
)

type Reservation struct {
	ID             int64     `json:"id"`
	RoomID         int64     `json:"room_id"`
	GuestID        int64     `json:"guest_id"`
	CheckIn        time.Time `json:"check_in"`
	CheckOut       time.Time `json:"check_out"`
	NumberOfGuests int       `json:"number_of_guests"`
	TotalPrice     float64   `json:"total_price"`
	CreatedBy      int64     `json:"created_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (r *Reservation) Period() Period {
	return Period{Start: r.CheckIn, End: r.CheckOut}
}

// Period is the half-open interval [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

func NewPeriod(start, end time.Time) Period {
	return Period{Start: start, End: end}
}

func (p Period) Valid() bool {
	return p.Start.Before(p.End)
}

// Overlaps reports whether the two periods share any instant. Touching
// boundaries (one ends exactly when the other starts) do not overlap.
func (p Period) Overlaps(other Period) bool {
	return p.Start.Before(other.End) && p.End.After(other.Start)
}

// Nights counts whole days between check-in and check-out.
func (p Period) Nights() int {
	if !p.Valid() {
		return 0
	}
	return int(p.End.Sub(p.Start) / (24 * time.Hour))
}

// Update carries the editable columns. Nil fields are left untouched.
type Update struct {
	CheckIn        *time.Time `json:"check_in,omitempty"`
	CheckOut       *time.Time `json:"check_out,omitempty"`
	RoomID         *int64     `json:"room_id,omitempty"`
	NumberOfGuests *int       `json:"number_of_guests,omitempty"`
}

func (u Update) IsEmpty() bool {
	return u.CheckIn == nil && u.CheckOut == nil && u.RoomID == nil && u.NumberOfGuests == nil
}

func (u Update) Apply(r *Reservation) {
	if u.CheckIn != nil {
		r.CheckIn = *u.CheckIn
	}
	if u.CheckOut != nil {
		r.CheckOut = *u.CheckOut
	}
	if u.RoomID != nil {
		r.RoomID = *u.RoomID
	}
	if u.NumberOfGuests != nil {
		r.NumberOfGuests = *u.NumberOfGuests
	}
}

// Details is the read model returned when a reservation is viewed.
type Details struct {
	ID         int64  `json:"id"`
	Guest      string `json:"guest"`
	RoomNumber int    `json:"room_number"`
	CheckIn    string `json:"check_in_date"`
	CheckOut   string `json:"check_out_date"`
	TotalPrice string `json:"total_price"`
}

func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

type RoomBooked struct {
	ReservationID int64     `json:"reservation_id"`
	RoomID        int64     `json:"room_id"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func (RoomBooked) EventName() string {
	return constants.EventRoomBooked
}
