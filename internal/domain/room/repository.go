package room

import (
	"context"
	"time"
)

type Repository interface {
	FindByID(ctx context.Context, id int64) (*Room, error)
	ExistsByNumber(ctx context.Context, number int, excludeID int64) (bool, error)
	Create(ctx context.Context, r *Room) error
	ApplyUpdate(ctx context.Context, id int64, update Update) error
	SoftDelete(ctx context.Context, id int64) error
	List(ctx context.Context, page, pageSize int) ([]*Room, error)
	Search(ctx context.Context, filter Filter) ([]*Room, error)
	SetAvailability(ctx context.Context, id int64, available bool) error
	ReleaseVacated(ctx context.Context, now time.Time) (int64, error)
}

type AssignmentRepository interface {
	Exists(ctx context.Context, roomID, facilityID int64) (bool, error)
	Create(ctx context.Context, a *Assignment) error
}

// CacheRepository stores serialized room listings. A miss is reported as an error.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeletePattern(ctx context.Context, pattern string) error
}
