package adapter

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type localLease struct {
	token     string
	expiresAt time.Time
}

// LocalLockAdapter serializes lock holders inside a single process. It is
// the lock used when no Redis is configured.
type LocalLockAdapter struct {
	mu     sync.Mutex
	leases map[string]localLease
	now    func() time.Time
}

func NewLocalLockAdapter() *LocalLockAdapter {
	return &LocalLockAdapter{
		leases: make(map[string]localLease),
		now:    time.Now,
	}
}

func (l *LocalLockAdapter) Acquire(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if lease, held := l.leases[key]; held && now.Before(lease.expiresAt) {
		return "", false, nil
	}

	token := uuid.New().String()
	l.leases[key] = localLease{token: token, expiresAt: now.Add(ttl)}
	return token, true, nil
}

// Release drops the lease only while token still owns it.
func (l *LocalLockAdapter) Release(_ context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lease, held := l.leases[key]; held && lease.token == token {
		delete(l.leases, key)
	}
	return nil
}

func (l *LocalLockAdapter) Close() error {
	return nil
}
