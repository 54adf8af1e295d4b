package reservation

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"
)

// Repository never returns soft-deleted reservations. Lookups by id return
// nil, nil when nothing live matches.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*Reservation, error)
	FindOverlapping(ctx context.Context, roomID int64, period Period) ([]*Reservation, error)
	FindDetails(ctx context.Context, id int64) (*Details, error)
	Create(ctx context.Context, r *Reservation) error
	SoftDelete(ctx context.Context, id int64) error
	ApplyUpdate(ctx context.Context, id int64, update Update) error
}

// Locker hands out expiring leases on a key. Acquire returns a token that
// identifies the lease; Release is a no-op unless that lease still holds.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, acquired bool, err error)
	Release(ctx context.Context, key, token string) error
}
