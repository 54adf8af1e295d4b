package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/victoragudo/hotel-management-system/internal/domain/room"
	"github.com/victoragudo/hotel-management-system/pkg/constants"
	"github.com/victoragudo/hotel-management-system/pkg/entities"
	"gorm.io/gorm"
)

const preloadRoomFacilities = "Facilities.Facility"

type GormRoomRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewGormRoomRepository(db *gorm.DB, logger *slog.Logger) *GormRoomRepository {
	return &GormRoomRepository{
		db:     db,
		logger: logger,
	}
}

func (r *GormRoomRepository) FindByID(ctx context.Context, id int64) (*room.Room, error) {
	var model entities.RoomData

	err := r.db.WithContext(ctx).
		Preload(preloadRoomFacilities).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to find room", constants.RoomId, id, "error", err)
		return nil, fmt.Errorf("failed to find room %d: %w", id, err)
	}

	return convertRoomModelToDomain(&model), nil
}

func (r *GormRoomRepository) ExistsByNumber(ctx context.Context, number int, excludeID int64) (bool, error) {
	var count int64

	query := r.db.WithContext(ctx).Model(&entities.RoomData{}).Where("number = ?", number)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check room number %d: %w", number, err)
	}
	return count > 0, nil
}

func (r *GormRoomRepository) Create(ctx context.Context, rm *room.Room) error {
	model := convertRoomDomainToModel(rm)

	if err := r.db.WithContext(ctx).Omit("Facilities").Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return room.ErrNumberTaken
		}
		r.logger.Error("Failed to save room", "number", rm.Number, "error", err)
		return fmt.Errorf("failed to save room %d: %w", rm.Number, err)
	}

	rm.ID = model.ID
	rm.IsAvailable = model.IsAvailable
	rm.CreatedAt = model.CreatedAt
	r.logger.Debug("Room saved successfully", constants.RoomId, rm.ID, "number", rm.Number)
	return nil
}

func (r *GormRoomRepository) ApplyUpdate(ctx context.Context, id int64, update room.Update) error {
	columns := make(map[string]any, 6)
	if update.Number != nil {
		columns["number"] = *update.Number
	}
	if update.Name != nil {
		columns["name"] = *update.Name
	}
	if update.Capacity != nil {
		columns["capacity"] = *update.Capacity
	}
	if update.ImageURL != nil {
		columns["image_url"] = *update.ImageURL
	}
	if update.Type != nil {
		columns["type"] = string(*update.Type)
	}
	if update.PricePerNight != nil {
		columns["price_per_night"] = *update.PricePerNight
	}
	if len(columns) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&entities.RoomData{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return room.ErrNumberTaken
		}
		r.logger.Error("Failed to update room", constants.RoomId, id, "error", result.Error)
		return fmt.Errorf("failed to update room %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return room.ErrNotFound
	}
	return nil
}

func (r *GormRoomRepository) SoftDelete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&entities.RoomData{}, id)
	if result.Error != nil {
		r.logger.Error("Failed to delete room", constants.RoomId, id, "error", result.Error)
		return fmt.Errorf("failed to delete room %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return room.ErrNotFound
	}
	return nil
}

func (r *GormRoomRepository) List(ctx context.Context, page, pageSize int) ([]*room.Room, error) {
	var models []entities.RoomData

	query := r.db.WithContext(ctx).Preload(preloadRoomFacilities)
	if pageSize > 0 {
		query = query.Limit(pageSize)
		if page > 1 {
			query = query.Offset((page - 1) * pageSize)
		}
	}

	if err := query.Order("number ASC").Find(&models).Error; err != nil {
		r.logger.Error("Failed to list rooms", "page", page, "page_size", pageSize, "error", err)
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	return convertRoomModelsToDomain(models), nil
}

func (r *GormRoomRepository) Search(ctx context.Context, filter room.Filter) ([]*room.Room, error) {
	var models []entities.RoomData

	query := r.db.WithContext(ctx).Preload(preloadRoomFacilities)

	if filter.OnlyAvailable {
		query = query.Where("is_available = ?", true)
	}
	if filter.Capacity != nil {
		query = query.Where("capacity = ?", *filter.Capacity)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.MinPrice != nil {
		query = query.Where("price_per_night >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price_per_night <= ?", *filter.MaxPrice)
	}
	if len(filter.FacilityIDs) > 0 {
		query = query.Where(`EXISTS (SELECT 1 FROM room_facilities rf
			WHERE rf.room_id = rooms.id AND rf.facility_id IN ? AND rf.deleted_at IS NULL)`, filter.FacilityIDs)
	}

	if err := query.Order("number ASC").Find(&models).Error; err != nil {
		r.logger.Error("Failed to search rooms", "filter", filter.CacheKey(), "error", err)
		return nil, fmt.Errorf("failed to search rooms: %w", err)
	}

	return convertRoomModelsToDomain(models), nil
}

func (r *GormRoomRepository) SetAvailability(ctx context.Context, id int64, available bool) error {
	result := r.db.WithContext(ctx).
		Model(&entities.RoomData{}).
		Where("id = ?", id).
		Update("is_available", available)
	if result.Error != nil {
		r.logger.Error("Failed to set room availability", constants.RoomId, id, "available", available, "error", result.Error)
		return fmt.Errorf("failed to set availability for room %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return room.ErrNotFound
	}
	return nil
}

// ReleaseVacated flags rooms available again once none of their live
// reservations ends after now.
func (r *GormRoomRepository) ReleaseVacated(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.RoomData{}).
		Where("is_available = ?", false).
		Where(`NOT EXISTS (SELECT 1 FROM reservations res
			WHERE res.room_id = rooms.id AND res.deleted_at IS NULL AND res.check_out_date > ?)`, now.UTC()).
		Update("is_available", true)
	if result.Error != nil {
		r.logger.Error("Failed to release vacated rooms", "error", result.Error)
		return 0, fmt.Errorf("failed to release vacated rooms: %w", result.Error)
	}
	return result.RowsAffected, nil
}

type GormRoomFacilityRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewGormRoomFacilityRepository(db *gorm.DB, logger *slog.Logger) *GormRoomFacilityRepository {
	return &GormRoomFacilityRepository{
		db:     db,
		logger: logger,
	}
}

func (r *GormRoomFacilityRepository) Exists(ctx context.Context, roomID, facilityID int64) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&entities.RoomFacilityData{}).
		Where("room_id = ? AND facility_id = ?", roomID, facilityID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check facility %d on room %d: %w", facilityID, roomID, err)
	}
	return count > 0, nil
}

func (r *GormRoomFacilityRepository) Create(ctx context.Context, a *room.Assignment) error {
	model := &entities.RoomFacilityData{
		RoomID:     a.RoomID,
		FacilityID: a.FacilityID,
	}

	if err := r.db.WithContext(ctx).Omit("Facility").Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return room.ErrFacilityAlreadyAssigned
		}
		r.logger.Error("Failed to assign facility", constants.RoomId, a.RoomID, constants.FacilityId, a.FacilityID, "error", err)
		return fmt.Errorf("failed to assign facility %d to room %d: %w", a.FacilityID, a.RoomID, err)
	}

	a.ID = model.ID
	return nil
}

func convertRoomModelsToDomain(models []entities.RoomData) []*room.Room {
	rooms := make([]*room.Room, len(models))
	for i := range models {
		rooms[i] = convertRoomModelToDomain(&models[i])
	}
	return rooms
}

func convertRoomModelToDomain(model *entities.RoomData) *room.Room {
	facilities := make([]string, 0, len(model.Facilities))
	for _, rf := range model.Facilities {
		// soft-deleted facilities are not preloaded
		if rf.Facility != nil {
			facilities = append(facilities, rf.Facility.Name)
		}
	}

	return &room.Room{
		ID:            model.ID,
		Number:        model.Number,
		Name:          model.Name,
		Capacity:      model.Capacity,
		ImageURL:      model.ImageURL,
		Type:          room.Type(model.Type),
		PricePerNight: model.PricePerNight,
		IsAvailable:   model.IsAvailable,
		Facilities:    facilities,
		CreatedAt:     model.CreatedAt,
	}
}

func convertRoomDomainToModel(rm *room.Room) *entities.RoomData {
	return &entities.RoomData{
		ID:            rm.ID,
		Number:        rm.Number,
		Name:          rm.Name,
		Capacity:      rm.Capacity,
		ImageURL:      rm.ImageURL,
		Type:          string(rm.Type),
		PricePerNight: rm.PricePerNight,
		IsAvailable:   true,
	}
}
