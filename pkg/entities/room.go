package entities

import (
	"time"

	"gorm.io/gorm"
)

type RoomData struct {
	ID int64 `gorm:"primaryKey;autoIncrement"`

	Number        int     `gorm:"not null"`
	Name          string  `gorm:"type:varchar(100)"`
	Capacity      int     `gorm:"type:integer;default:0"`
	ImageURL      string  `gorm:"type:varchar(500)"`
	Type          string  `gorm:"type:varchar(20);not null;index:idx_rooms_type"`
	PricePerNight float64 `gorm:"type:decimal(18,2);not null"`
	IsAvailable   bool    `gorm:"not null;default:true;index:idx_rooms_is_available"`
	CreatedBy     int64   `gorm:"type:bigint;default:0"`

	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Facilities []RoomFacilityData `gorm:"foreignKey:RoomID"`
}

func (r *RoomData) BeforeCreate(_ *gorm.DB) (err error) {
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	return
}

func (r *RoomData) TableName() string {
	return "rooms"
}

// LiveUniqueIndexes lets a deleted room's number be reused.
func (r *RoomData) LiveUniqueIndexes() map[string][]string {
	return map[string][]string{"idx_rooms_number_live": {"number"}}
}

type RoomFacilityData struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	RoomID     int64 `gorm:"not null"`
	FacilityID int64 `gorm:"not null;index:idx_room_facilities_facility_id"`
	CreatedBy  int64 `gorm:"type:bigint;default:0"`

	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Facility *FacilityData `gorm:"foreignKey:FacilityID"`
}

func (rf *RoomFacilityData) BeforeCreate(_ *gorm.DB) (err error) {
	now := time.Now().UTC()
	rf.CreatedAt = now
	rf.UpdatedAt = now
	return
}

func (rf *RoomFacilityData) TableName() string {
	return "room_facilities"
}

func (rf *RoomFacilityData) LiveUniqueIndexes() map[string][]string {
	return map[string][]string{"idx_room_facilities_pair_live": {"room_id", "facility_id"}}
}
