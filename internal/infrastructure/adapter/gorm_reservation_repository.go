package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/victoragudo/hotel-management-system/internal/domain/reservation"
	"github.com/victoragudo/hotel-management-system/pkg/constants"
	"github.com/victoragudo/hotel-management-system/pkg/entities"
	"gorm.io/gorm"
)

type GormReservationRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewGormReservationRepository(db *gorm.DB, logger *slog.Logger) *GormReservationRepository {
	return &GormReservationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *GormReservationRepository) FindByID(ctx context.Context, id int64) (*reservation.Reservation, error) {
	var model entities.ReservationData

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to find reservation", constants.ReservationId, id, "error", err)
		return nil, fmt.Errorf("failed to find reservation %d: %w", id, err)
	}

	return convertReservationModelToDomain(&model), nil
}

// FindOverlapping applies the half-open test check_in < end AND check_out > start.
func (r *GormReservationRepository) FindOverlapping(ctx context.Context, roomID int64, period reservation.Period) ([]*reservation.Reservation, error) {
	var models []entities.ReservationData

	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Where("check_in_date < ? AND check_out_date > ?", period.End.UTC(), period.Start.UTC()).
		Order("check_in_date ASC").
		Find(&models).Error
	if err != nil {
		r.logger.Error("Failed to query overlapping reservations", constants.RoomId, roomID, "error", err)
		return nil, fmt.Errorf("failed to query overlapping reservations for room %d: %w", roomID, err)
	}

	reservations := make([]*reservation.Reservation, len(models))
	for i := range models {
		reservations[i] = convertReservationModelToDomain(&models[i])
	}
	return reservations, nil
}

type reservationDetailsRow struct {
	ID           int64
	Guest        string
	RoomNumber   int
	CheckInDate  time.Time
	CheckOutDate time.Time
	TotalPrice   float64
}

func (r *GormReservationRepository) FindDetails(ctx context.Context, id int64) (*reservation.Details, error) {
	var row reservationDetailsRow

	err := r.db.WithContext(ctx).
		Table("reservations").
		Select(`reservations.id AS id,
			COALESCE(guests.username, '') AS guest,
			COALESCE(rooms.number, 0) AS room_number,
			reservations.check_in_date AS check_in_date,
			reservations.check_out_date AS check_out_date,
			reservations.total_price AS total_price`).
		Joins("LEFT JOIN guests ON guests.id = reservations.guest_id").
		Joins("LEFT JOIN rooms ON rooms.id = reservations.room_id").
		Where("reservations.id = ? AND reservations.deleted_at IS NULL", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to load reservation details", constants.ReservationId, id, "error", err)
		return nil, fmt.Errorf("failed to load reservation details %d: %w", id, err)
	}

	return &reservation.Details{
		ID:         row.ID,
		Guest:      row.Guest,
		RoomNumber: row.RoomNumber,
		CheckIn:    reservation.FormatDate(row.CheckInDate),
		CheckOut:   reservation.FormatDate(row.CheckOutDate),
		TotalPrice: fmt.Sprintf("%.2f", row.TotalPrice),
	}, nil
}

func (r *GormReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	model := convertReservationDomainToModel(res)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Error("Failed to save reservation", constants.RoomId, res.RoomID, "error", err)
		return fmt.Errorf("failed to save reservation for room %d: %w", res.RoomID, err)
	}

	res.ID = model.ID
	res.CreatedAt = model.CreatedAt
	res.UpdatedAt = model.UpdatedAt
	r.logger.Debug("Reservation saved successfully", constants.ReservationId, res.ID, constants.RoomId, res.RoomID)
	return nil
}

func (r *GormReservationRepository) SoftDelete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&entities.ReservationData{}, id)
	if result.Error != nil {
		r.logger.Error("Failed to delete reservation", constants.ReservationId, id, "error", result.Error)
		return fmt.Errorf("failed to delete reservation %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return reservation.ErrNotFound
	}
	return nil
}

// ApplyUpdate writes only the columns present in update.
func (r *GormReservationRepository) ApplyUpdate(ctx context.Context, id int64, update reservation.Update) error {
	columns := make(map[string]any, 4)
	if update.CheckIn != nil {
		columns["check_in_date"] = update.CheckIn.UTC()
	}
	if update.CheckOut != nil {
		columns["check_out_date"] = update.CheckOut.UTC()
	}
	if update.RoomID != nil {
		columns["room_id"] = *update.RoomID
	}
	if update.NumberOfGuests != nil {
		columns["number_of_guests"] = *update.NumberOfGuests
	}
	if len(columns) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).
		Model(&entities.ReservationData{}).
		Where("id = ?", id).
		Updates(columns)
	if result.Error != nil {
		r.logger.Error("Failed to update reservation", constants.ReservationId, id, "error", result.Error)
		return fmt.Errorf("failed to update reservation %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return reservation.ErrNotFound
	}
	return nil
}

func convertReservationModelToDomain(model *entities.ReservationData) *reservation.Reservation {
	return &reservation.Reservation{
		ID:             model.ID,
		RoomID:         model.RoomID,
		GuestID:        model.GuestID,
		CheckIn:        model.CheckInDate.UTC(),
		CheckOut:       model.CheckOutDate.UTC(),
		NumberOfGuests: model.NumberOfGuests,
		TotalPrice:     model.TotalPrice,
		CreatedBy:      model.CreatedBy,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

func convertReservationDomainToModel(res *reservation.Reservation) *entities.ReservationData {
	return &entities.ReservationData{
		ID:             res.ID,
		RoomID:         res.RoomID,
		GuestID:        res.GuestID,
		CheckInDate:    res.CheckIn,
		CheckOutDate:   res.CheckOut,
		NumberOfGuests: res.NumberOfGuests,
		TotalPrice:     res.TotalPrice,
		CreatedBy:      res.CreatedBy,
	}
}
