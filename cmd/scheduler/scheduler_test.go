package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/victoragudo/hotel-management-system/internal/application/usecase"
	"github.com/victoragudo/hotel-management-system/internal/domain/room"
	"github.com/victoragudo/hotel-management-system/internal/infrastructure/adapter"
	"github.com/victoragudo/hotel-management-system/pkg/clock"
	"github.com/victoragudo/hotel-management-system/pkg/database"
	"github.com/victoragudo/hotel-management-system/pkg/entities"
)

func TestScheduler_RunOnce(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := database.GormOpen(database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, database.ConfigurePool(db, database.PoolOptions{MaxOpenConnections: 1}))
	require.NoError(t, database.RunMigrations(db, entities.All()...))
	t.Cleanup(func() { _ = database.Close(db) })

	rooms := adapter.NewGormRoomRepository(db, logger)
	occupied := &room.Room{Number: 7, Type: room.TypeSingle, PricePerNight: 90, IsAvailable: true}
	require.NoError(t, rooms.Create(ctx, occupied))
	require.NoError(t, rooms.SetAvailability(ctx, occupied.ID, false))

	locker := adapter.NewLocalLockAdapter()
	s, err := NewScheduler(10, time.Minute,
		usecase.NewReleaseVacatedRoomsUseCase(rooms, clock.Fixed{At: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}, logger),
		locker, logger)
	require.NoError(t, err)

	ran, released, err := s.RunOnce(ctx)
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, int64(1), released)

	got, err := rooms.FindByID(ctx, occupied.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAvailable)

	_, acquired, err := locker.Acquire(ctx, releaseLockKey, time.Minute)
	require.NoError(t, err)
	require.True(t, acquired, "a finished pass releases its lock")

	ran, _, err = s.RunOnce(ctx)
	require.NoError(t, err)
	assert.False(t, ran, "a pass held by another replica is skipped")
}
