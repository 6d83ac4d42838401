package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenclub/backend/internal/domain/content"
	"github.com/greenclub/backend/internal/domain/shared"
	"github.com/greenclub/backend/internal/infrastructure/persistence/models"
)

// GormPolicyPageRepository implements PolicyPageRepository using GORM
type GormPolicyPageRepository struct {
	db *gorm.DB
}

// NewGormPolicyPageRepository creates a new GormPolicyPageRepository
func NewGormPolicyPageRepository(db *gorm.DB) *GormPolicyPageRepository {
	return &GormPolicyPageRepository{db: db}
}

// Create creates a new page record
func (r *GormPolicyPageRepository) Create(ctx context.Context, page *content.PolicyPage) error {
	model := models.PolicyPageModelFromDomain(page)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing page record
func (r *GormPolicyPageRepository) Update(ctx context.Context, page *content.PolicyPage) error {
	model := models.PolicyPageModelFromDomain(page)
	result := r.db.WithContext(ctx).Model(&models.PolicyPageModel{}).
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

// Delete deletes a page record by ID
func (r *GormPolicyPageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PolicyPageModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a page by ID
func (r *GormPolicyPageRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.PolicyPage, error) {
	var model models.PolicyPageModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySlug finds a page by its slug
func (r *GormPolicyPageRepository) FindBySlug(ctx context.Context, slug string) (*content.PolicyPage, error) {
	var model models.PolicyPageModel
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all pages ordered by sort order
func (r *GormPolicyPageRepository) FindAll(ctx context.Context) ([]*content.PolicyPage, error) {
	return r.findPages(ctx, r.db.WithContext(ctx))
}

// FindPublished returns published pages ordered by sort order
func (r *GormPolicyPageRepository) FindPublished(ctx context.Context) ([]*content.PolicyPage, error) {
	return r.findPages(ctx, r.db.WithContext(ctx).Where("status = ?", content.PageStatusPublished))
}

func (r *GormPolicyPageRepository) findPages(ctx context.Context, query *gorm.DB) ([]*content.PolicyPage, error) {
	var pageModels []models.PolicyPageModel
	if err := query.Order("sort_order ASC, slug ASC").Find(&pageModels).Error; err != nil {
		return nil, err
	}

	pages := make([]*content.PolicyPage, len(pageModels))
	for i := range pageModels {
		pages[i] = pageModels[i].ToDomain()
	}
	return pages, nil
}

// ExistsBySlug checks whether a slug is taken
func (r *GormPolicyPageRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PolicyPageModel{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AllDirKeys returns the directory keys of every page record
func (r *GormPolicyPageRepository) AllDirKeys(ctx context.Context) ([]uuid.UUID, error) {
	var keys []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.PolicyPageModel{}).
		Pluck("dir_key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

var _ content.PolicyPageRepository = (*GormPolicyPageRepository)(nil)
