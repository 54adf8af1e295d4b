package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/victoragudo/hotel-management-system/internal/domain/facility"
	"github.com/victoragudo/hotel-management-system/pkg/constants"
	"github.com/victoragudo/hotel-management-system/pkg/entities"
	"gorm.io/gorm"
)

type GormFacilityRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewGormFacilityRepository(db *gorm.DB, logger *slog.Logger) *GormFacilityRepository {
	return &GormFacilityRepository{
		db:     db,
		logger: logger,
	}
}

func (r *GormFacilityRepository) FindByID(ctx context.Context, id int64) (*facility.Facility, error) {
	var model entities.FacilityData

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to find facility", constants.FacilityId, id, "error", err)
		return nil, fmt.Errorf("failed to find facility %d: %w", id, err)
	}

	return convertFacilityModelToDomain(&model), nil
}

// ExistsByName compares case-insensitively among live facilities.
func (r *GormFacilityRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var count int64

	query := r.db.WithContext(ctx).Model(&entities.FacilityData{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check facility name %q: %w", name, err)
	}
	return count > 0, nil
}

func (r *GormFacilityRepository) Create(ctx context.Context, f *facility.Facility) error {
	model := &entities.FacilityData{Name: f.Name}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return facility.ErrNameAlreadyTaken
		}
		r.logger.Error("Failed to save facility", "name", f.Name, "error", err)
		return fmt.Errorf("failed to save facility %q: %w", f.Name, err)
	}

	f.ID = model.ID
	f.Name = model.Name
	f.CreatedAt = model.CreatedAt
	return nil
}

func (r *GormFacilityRepository) Rename(ctx context.Context, id int64, name string) error {
	result := r.db.WithContext(ctx).Model(&entities.FacilityData{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return facility.ErrNameAlreadyTaken
		}
		r.logger.Error("Failed to rename facility", constants.FacilityId, id, "error", result.Error)
		return fmt.Errorf("failed to rename facility %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return facility.ErrNotFound
	}
	return nil
}

func (r *GormFacilityRepository) SoftDelete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&entities.FacilityData{}, id)
	if result.Error != nil {
		r.logger.Error("Failed to delete facility", constants.FacilityId, id, "error", result.Error)
		return fmt.Errorf("failed to delete facility %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return facility.ErrNotFound
	}
	return nil
}

func (r *GormFacilityRepository) FindAll(ctx context.Context) ([]*facility.Facility, error) {
	var models []entities.FacilityData

	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		r.logger.Error("Failed to list facilities", "error", err)
		return nil, fmt.Errorf("failed to list facilities: %w", err)
	}

	facilities := make([]*facility.Facility, len(models))
	for i := range models {
		facilities[i] = convertFacilityModelToDomain(&models[i])
	}
	return facilities, nil
}

func convertFacilityModelToDomain(model *entities.FacilityData) *facility.Facility {
	return &facility.Facility{
		ID:        model.ID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
	}
}
