package main

import (
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/victoragudo/hotel-management-system/internal/application/usecase"
	"github.com/victoragudo/hotel-management-system/internal/domain/reservation"
	"github.com/victoragudo/hotel-management-system/internal/infrastructure/adapter"
	"github.com/victoragudo/hotel-management-system/internal/infrastructure/config"
	"github.com/victoragudo/hotel-management-system/pkg/clock"
	"github.com/victoragudo/hotel-management-system/pkg/database"
	"github.com/victoragudo/hotel-management-system/pkg/logger"
)

func main() {
	bootLogger := logger.SetupLogger("info")

	cfg, err := config.LoadConfig()
	if err != nil {
		bootLogger.Error(fmt.Sprintf("Failed to load configuration: %s", err.Error()))
		os.Exit(1)
	}

	applicationLogger := logger.SetupLoggerWithFormat(cfg.Logging.Level, cfg.Logging.Format)

	db, err := database.GormOpen(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		applicationLogger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = database.Close(db) }()

	var locker reservation.Locker = adapter.NewLocalLockAdapter()
	if cfg.Reservation.LockDriver == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})
		defer func() { _ = client.Close() }()
		locker = adapter.NewRedisLockAdapterWithClient(client, applicationLogger)
	}

	releaseUseCase := usecase.NewReleaseVacatedRoomsUseCase(
		adapter.NewGormRoomRepository(db, applicationLogger),
		clock.System{},
		applicationLogger,
	)

	jobScheduler, err := NewScheduler(cfg.Scheduler.IntervalInMinutes, cfg.Scheduler.LockTTL, releaseUseCase, locker, applicationLogger)
	if err != nil {
		applicationLogger.Error("Failed to create scheduler", "error", err)
		os.Exit(1)
	}

	jobScheduler.Start()
}
