package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/google/uuid"
	"github.com/jasonlvhit/gocron"
	"github.com/victoragudo/hotel-management-system/internal/application/usecase"
	"github.com/victoragudo/hotel-management-system/internal/domain/reservation"
)

const releaseLockKey = "scheduler:release_vacated_rooms"

// Scheduler periodically flags rooms whose last stay has ended as available
// again. Several replicas may run; the lock keeps one pass at a time.
type Scheduler struct {
	intervalInMinutes uint64
	lockTTL           time.Duration
	releaseUseCase    *usecase.ReleaseVacatedRoomsUseCase
	locker            reservation.Locker
	scheduler         *gocron.Scheduler
	logger            *slog.Logger
}

func NewScheduler(
	intervalInMinutes uint64,
	lockTTL time.Duration,
	releaseUseCase *usecase.ReleaseVacatedRoomsUseCase,
	locker reservation.Locker,
	logger *slog.Logger,
) (*Scheduler, error) {
	s := &Scheduler{
		intervalInMinutes: intervalInMinutes,
		lockTTL:           lockTTL,
		releaseUseCase:    releaseUseCase,
		locker:            locker,
		scheduler:         gocron.NewScheduler(),
		logger:            logger,
	}

	if err := s.setupSchedules(); err != nil {
		return nil, fmt.Errorf("failed to setup schedules: %w", err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.scheduler.Start()
	figure.NewFigure("SCHEDULER", "", true).Print()
	s.logger.Info("Scheduler started", "interval_in_minutes", s.intervalInMinutes)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	s.logger.Info("Shutting down scheduler")
	s.scheduler.Clear()
}

// RunOnce performs a single guarded pass. It returns false when another
// replica holds the lock.
func (s *Scheduler) RunOnce(ctx context.Context) (bool, int64, error) {
	runID := uuid.New().String()

	token, acquired, err := s.locker.Acquire(ctx, releaseLockKey, s.lockTTL)
	if err != nil {
		return false, 0, fmt.Errorf("failed to acquire scheduler lock: %w", err)
	}
	if !acquired {
		s.logger.Debug("Release pass skipped, lock held elsewhere", "run_id", runID)
		return false, 0, nil
	}
	defer func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), releaseLockKey, token); err != nil {
			s.logger.Warn("Failed to release scheduler lock", "run_id", runID, "error", err)
		}
	}()

	released, err := s.releaseUseCase.Execute(ctx)
	if err != nil {
		return true, 0, err
	}

	s.logger.Info("Release pass finished", "run_id", runID, "released_rooms", released)
	return true, released, nil
}

func (s *Scheduler) trigger() {
	ctx, cancel := context.WithTimeout(context.Background(), s.lockTTL)
	defer cancel()

	if _, _, err := s.RunOnce(ctx); err != nil {
		s.logger.Error("Scheduled release failed", "error", err)
	}
}

func (s *Scheduler) setupSchedules() error {
	err := s.scheduler.Every(s.intervalInMinutes).Minutes().Do(s.trigger)
	if err != nil {
		s.logger.Error("Failed to setup release schedule", "error", err)
		return err
	}

	s.logger.Info("Schedules configured", "release_vacated_rooms_interval", s.intervalInMinutes)
	return nil
}
