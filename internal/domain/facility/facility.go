package facility

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/victoragudo/hotel-management-system/pkg/apperror"
)

const MaxNameLength = 100

var (
	ErrNotFound         = apperror.NotFound("Facility not found")
	ErrNoFacilities     = apperror.NotFound("No facilities found")
	ErrNameRequired     = apperror.BadRequest("Facility name is required")
	ErrNameTooLong      = apperror.BadRequest("Facility name must not exceed 100 characters")
	ErrNameAlreadyTaken = apperror.BadRequest("Facility Name already Used")
)

type Facility struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeName trims the name and checks its shape.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}

type Repository interface {
	FindByID(ctx context.Context, id int64) (*Facility, error)
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	Create(ctx context.Context, f *Facility) error
	Rename(ctx context.Context, id int64, name string) error
	SoftDelete(ctx context.Context, id int64) error
	FindAll(ctx context.Context) ([]*Facility, error)
}
