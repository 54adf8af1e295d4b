package entities

import (
	"time"

	"gorm.io/gorm"
)

type ReservationData struct {
	ID int64 `gorm:"primaryKey;autoIncrement"`

	RoomID         int64     `gorm:"not null;index:idx_reservations_room_period,priority:1"`
	GuestID        int64     `gorm:"not null;index:idx_reservations_guest_id"`
	CheckInDate    time.Time `gorm:"not null;index:idx_reservations_room_period,priority:2"`
	CheckOutDate   time.Time `gorm:"not null;index:idx_reservations_room_period,priority:3"`
	NumberOfGuests int       `gorm:"type:integer;not null"`
	TotalPrice     float64   `gorm:"type:decimal(18,2);not null"`
	CreatedBy      int64     `gorm:"type:bigint;default:0"`

	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Room  *RoomData  `gorm:"foreignKey:RoomID"`
	Guest *GuestData `gorm:"foreignKey:GuestID"`
}

// Stored instants are always UTC so range predicates compare consistently across drivers.
func (r *ReservationData) BeforeCreate(_ *gorm.DB) (err error) {
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	r.CheckInDate = r.CheckInDate.UTC()
	r.CheckOutDate = r.CheckOutDate.UTC()
	return
}

func (r *ReservationData) TableName() string {
	return "reservations"
}
