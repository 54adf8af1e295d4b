package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/victoragudo/hotel-management-system/internal/domain/facility"
	"github.com/victoragudo/hotel-management-system/internal/domain/room"
	"github.com/victoragudo/hotel-management-system/pkg/constants"
)

type AssignRoomFacilityUseCase struct {
	roomRepo       room.Repository
	facilityRepo   facility.Repository
	assignmentRepo room.AssignmentRepository
	cache          roomListingCache
	logger         *slog.Logger
}

func NewAssignRoomFacilityUseCase(
	roomRepo room.Repository,
	facilityRepo facility.Repository,
	assignmentRepo room.AssignmentRepository,
	cache room.CacheRepository,
	logger *slog.Logger,
) *AssignRoomFacilityUseCase {
	return &AssignRoomFacilityUseCase{
		roomRepo:       roomRepo,
		facilityRepo:   facilityRepo,
		assignmentRepo: assignmentRepo,
		cache:          roomListingCache{cache: cache, logger: logger},
		logger:         logger,
	}
}

func (uc *AssignRoomFacilityUseCase) Execute(ctx context.Context, roomID, facilityID int64) (*room.Assignment, error) {
	if roomID <= 0 || facilityID <= 0 {
		return nil, room.ErrInvalidRoomOrFacilityIDs
	}

	rm, err := uc.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to load room %d: %w", roomID, err)
	}
	if rm == nil {
		return nil, room.ErrNotFound
	}

	f, err := uc.facilityRepo.FindByID(ctx, facilityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load facility %d: %w", facilityID, err)
	}
	if f == nil {
		return nil, facility.ErrNotFound
	}

	exists, err := uc.assignmentRepo.Exists(ctx, roomID, facilityID)
	if err != nil {
		return nil, fmt.Errorf("failed to check assignment: %w", err)
	}
	if exists {
		return nil, room.ErrFacilityAlreadyAssigned
	}

	assignment := &room.Assignment{RoomID: roomID, FacilityID: facilityID}
	if err := uc.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}

	uc.cache.invalidate(ctx)
	uc.logger.Info("Facility assigned to room", constants.RoomId, roomID, constants.FacilityId, facilityID)
	return assignment, nil
}
