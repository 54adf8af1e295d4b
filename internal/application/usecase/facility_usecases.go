package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/victoragudo/hotel-management-system/internal/domain/facility"
	"github.com/victoragudo/hotel-management-system/internal/domain/room"
	"github.com/victoragudo/hotel-management-system/pkg/apperror"
	"github.com/victoragudo/hotel-management-system/pkg/constants"
)

var errInvalidFacilityID = apperror.BadRequest("Facility id must be greater than 0")

type AddFacilityUseCase struct {
	facilityRepo facility.Repository
	cache        roomListingCache
	logger       *slog.Logger
}

func NewAddFacilityUseCase(facilityRepo facility.Repository, cache room.CacheRepository, logger *slog.Logger) *AddFacilityUseCase {
	return &AddFacilityUseCase{
		facilityRepo: facilityRepo,
		cache:        roomListingCache{cache: cache, logger: logger},
		logger:       logger,
	}
}

// Execute rejects a name already used by a live facility before writing, so
// the unique index only catches concurrent inserts.
func (uc *AddFacilityUseCase) Execute(ctx context.Context, name string) (*facility.Facility, error) {
	name, err := facility.NormalizeName(name)
	if err != nil {
		return nil, err
	}

	taken, err := uc.facilityRepo.ExistsByName(ctx, name, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check facility name: %w", err)
	}
	if taken {
		return nil, facility.ErrNameAlreadyTaken
	}

	f := &facility.Facility{Name: name}
	if err := uc.facilityRepo.Create(ctx, f); err != nil {
		return nil, err
	}

	uc.cache.invalidate(ctx)
	uc.logger.Info("Facility added", constants.FacilityId, f.ID, "name", f.Name)
	return f, nil
}

type UpdateFacilityUseCase struct {
	facilityRepo facility.Repository
	cache        roomListingCache
	logger       *slog.Logger
}

func NewUpdateFacilityUseCase(facilityRepo facility.Repository, cache room.CacheRepository, logger *slog.Logger) *UpdateFacilityUseCase {
	return &UpdateFacilityUseCase{
		facilityRepo: facilityRepo,
		cache:        roomListingCache{cache: cache, logger: logger},
		logger:       logger,
	}
}

func (uc *UpdateFacilityUseCase) Execute(ctx context.Context, facilityID int64, name string) (*facility.Facility, error) {
	if facilityID <= 0 {
		return nil, errInvalidFacilityID
	}
	name, err := facility.NormalizeName(name)
	if err != nil {
		return nil, err
	}

	existing, err := uc.facilityRepo.FindByID(ctx, facilityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load facility %d: %w", facilityID, err)
	}
	if existing == nil {
		return nil, facility.ErrNotFound
	}

	taken, err := uc.facilityRepo.ExistsByName(ctx, name, facilityID)
	if err != nil {
		return nil, fmt.Errorf("failed to check facility name: %w", err)
	}
	if taken {
		return nil, facility.ErrNameAlreadyTaken
	}

	if err := uc.facilityRepo.Rename(ctx, facilityID, name); err != nil {
		return nil, err
	}

	uc.cache.invalidate(ctx)
	uc.logger.Info("Facility renamed", constants.FacilityId, facilityID, "from", existing.Name, "to", name)
	existing.Name = name
	return existing, nil
}

type DeleteFacilityUseCase struct {
	facilityRepo facility.Repository
	cache        roomListingCache
	logger       *slog.Logger
}

func NewDeleteFacilityUseCase(facilityRepo facility.Repository, cache room.CacheRepository, logger *slog.Logger) *DeleteFacilityUseCase {
	return &DeleteFacilityUseCase{
		facilityRepo: facilityRepo,
		cache:        roomListingCache{cache: cache, logger: logger},
		logger:       logger,
	}
}

func (uc *DeleteFacilityUseCase) Execute(ctx context.Context, facilityID int64) error {
	if facilityID <= 0 {
		return errInvalidFacilityID
	}
	if err := uc.facilityRepo.SoftDelete(ctx, facilityID); err != nil {
		return err
	}

	uc.cache.invalidate(ctx)
	uc.logger.Info("Facility deleted", constants.FacilityId, facilityID)
	return nil
}

type GetFacilitiesUseCase struct {
	facilityRepo facility.Repository
	logger       *slog.Logger
}

func NewGetFacilitiesUseCase(facilityRepo facility.Repository, logger *slog.Logger) *GetFacilitiesUseCase {
	return &GetFacilitiesUseCase{
		facilityRepo: facilityRepo,
		logger:       logger,
	}
}

func (uc *GetFacilitiesUseCase) Execute(ctx context.Context) ([]*facility.Facility, error) {
	facilities, err := uc.facilityRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list facilities: %w", err)
	}
	if len(facilities) == 0 {
		return nil, facility.ErrNoFacilities
	}
	return facilities, nil
}
