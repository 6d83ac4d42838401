package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenclub/backend/internal/domain/club"
	"github.com/greenclub/backend/internal/domain/shared"
	"github.com/greenclub/backend/internal/infrastructure/persistence/models"
)

// GormEventRepository implements EventRepository using GORM
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GormEventRepository
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// Create creates a new event record
func (r *GormEventRepository) Create(ctx context.Context, event *club.Event) error {
	model := models.EventModelFromDomain(event)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing event record
func (r *GormEventRepository) Update(ctx context.Context, event *club.Event) error {
	model := models.EventModelFromDomain(event)
	result := r.db.WithContext(ctx).Model(&models.EventModel{}).
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

// Delete deletes an event record by ID
func (r *GormEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.EventModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an event by ID
func (r *GormEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*club.Event, error) {
	var model models.EventModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns events matching the filter with a total count
func (r *GormEventRepository) FindAll(ctx context.Context, filter club.EventFilter) ([]*club.Event, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.EventModel{})

	if filter.Keyword != "" {
		keyword := "%" + strings.ToLower(filter.Keyword) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(venue) LIKE ?", keyword, keyword)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.OrganizerID != nil {
		query = query.Where("organizer_id = ?", *filter.OrganizerID)
	}
	if filter.From != nil {
		query = query.Where("ends_at > ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("starts_at < ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "starts_at ASC"
	if filter.SortBy != "" {
		dir := "ASC"
		if strings.EqualFold(filter.SortOrder, "desc") {
			dir = "DESC"
		}
		order = filter.SortBy + " " + dir
	}

	var eventModels []models.EventModel
	if err := query.Order(order).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&eventModels).Error; err != nil {
		return nil, 0, err
	}

	events := make([]*club.Event, len(eventModels))
	for i := range eventModels {
		events[i] = eventModels[i].ToDomain()
	}
	return events, total, nil
}

// FindUpcoming returns scheduled events starting after the given time
func (r *GormEventRepository) FindUpcoming(ctx context.Context, after time.Time, limit int) ([]*club.Event, error) {
	if limit <= 0 {
		limit = 10
	}

	var eventModels []models.EventModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND starts_at > ?", club.EventStatusScheduled, after).
		Order("starts_at ASC").
		Limit(limit).
		Find(&eventModels).Error; err != nil {
		return nil, err
	}

	events := make([]*club.Event, len(eventModels))
	for i := range eventModels {
		events[i] = eventModels[i].ToDomain()
	}
	return events, nil
}

var _ club.EventRepository = (*GormEventRepository)(nil)
