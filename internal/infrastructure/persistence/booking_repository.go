package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenclub/backend/internal/domain/club"
	"github.com/greenclub/backend/internal/domain/shared"
	"github.com/greenclub/backend/internal/infrastructure/persistence/models"
)

// GormBookingRepository implements BookingRepository using GORM
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Create creates a new booking record
func (r *GormBookingRepository) Create(ctx context.Context, booking *club.Booking) error {
	model := models.BookingModelFromDomain(booking)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing booking record
func (r *GormBookingRepository) Update(ctx context.Context, booking *club.Booking) error {
	model := models.BookingModelFromDomain(booking)
	result := r.db.WithContext(ctx).Model(&models.BookingModel{}).
		Where("id = ?", model.ID).
		Select("*").Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a booking record by ID
func (r *GormBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BookingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a booking by ID
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*club.Booking, error) {
	var model models.BookingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns bookings matching the filter with a total count
func (r *GormBookingRepository) FindAll(ctx context.Context, filter club.BookingFilter) ([]*club.Booking, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.BookingModel{})

	if filter.MemberID != nil {
		query = query.Where("member_id = ?", *filter.MemberID)
	}
	if filter.EventID != nil {
		query = query.Where("event_id = ?", *filter.EventID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", club.NormalizeDate(*filter.From))
	}
	if filter.To != nil {
		query = query.Where("date <= ?", club.NormalizeDate(*filter.To))
	}
	if filter.Rink != nil {
		query = query.Where("rink = ?", *filter.Rink)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookingModels []models.BookingModel
	if err := query.Order("date ASC, rink ASC, start_minute ASC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&bookingModels).Error; err != nil {
		return nil, 0, err
	}

	bookings := make([]*club.Booking, len(bookingModels))
	for i := range bookingModels {
		bookings[i] = bookingModels[i].ToDomain()
	}
	return bookings, total, nil
}

// FindForDate returns confirmed bookings for a calendar day
func (r *GormBookingRepository) FindForDate(ctx context.Context, date time.Time) ([]*club.Booking, error) {
	var bookingModels []models.BookingModel
	if err := r.db.WithContext(ctx).
		Where("date = ? AND status = ?", club.NormalizeDate(date), club.BookingStatusConfirmed).
		Order("rink ASC, start_minute ASC").
		Find(&bookingModels).Error; err != nil {
		return nil, err
	}

	bookings := make([]*club.Booking, len(bookingModels))
	for i := range bookingModels {
		bookings[i] = bookingModels[i].ToDomain()
	}
	return bookings, nil
}

// FindOverlapping returns confirmed bookings contending for the same
// rink time, excluding the booking with excludeID when it is not nil
func (r *GormBookingRepository) FindOverlapping(ctx context.Context, date time.Time, rink, startMinute, endMinute int, excludeID *uuid.UUID) ([]*club.Booking, error) {
	query := r.db.WithContext(ctx).
		Where("date = ? AND rink = ? AND status = ?", club.NormalizeDate(date), rink, club.BookingStatusConfirmed).
		Where("start_minute < ? AND end_minute > ?", endMinute, startMinute)

	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var bookingModels []models.BookingModel
	if err := query.Find(&bookingModels).Error; err != nil {
		return nil, err
	}

	bookings := make([]*club.Booking, len(bookingModels))
	for i := range bookingModels {
		bookings[i] = bookingModels[i].ToDomain()
	}
	return bookings, nil
}

var _ club.BookingRepository = (*GormBookingRepository)(nil)
