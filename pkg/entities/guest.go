package entities

import (
	"time"

	"gorm.io/gorm"
)

// GuestData is owned by the identity side of the system. Reservations only reference it.
type GuestData struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	FullName    string `gorm:"type:varchar(255)"`
	Username    string `gorm:"type:varchar(100);index:idx_guests_username"`
	Email       string `gorm:"type:varchar(255)"`
	PhoneNumber string `gorm:"type:varchar(50)"`

	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (g *GuestData) BeforeCreate(_ *gorm.DB) (err error) {
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now
	return
}

func (g *GuestData) TableName() string {
	return "guests"
}

// All returns every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&GuestData{},
		&FacilityData{},
		&RoomData{},
		&RoomFacilityData{},
		&ReservationData{},
	}
}
