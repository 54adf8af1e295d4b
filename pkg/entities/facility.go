package entities

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type FacilityData struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"type:varchar(100);not null"`
	CreatedBy int64  `gorm:"type:bigint;default:0"`

	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (f *FacilityData) BeforeCreate(_ *gorm.DB) (err error) {
	now := time.Now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now
	f.Name = strings.TrimSpace(f.Name)
	return
}

func (f *FacilityData) TableName() string {
	return "facilities"
}

func (f *FacilityData) LiveUniqueIndexes() map[string][]string {
	return map[string][]string{"idx_facilities_name_live": {"name"}}
}
