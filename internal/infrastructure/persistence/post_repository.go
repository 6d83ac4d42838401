package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenclub/backend/internal/domain/content"
	"github.com/greenclub/backend/internal/domain/shared"
	"github.com/greenclub/backend/internal/infrastructure/persistence/models"
)

// GormPostRepository implements PostRepository using GORM
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// Create creates a new post record
func (r *GormPostRepository) Create(ctx context.Context, post *content.Post) error {
	model := models.PostModelFromDomain(post)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing post record
func (r *GormPostRepository) Update(ctx context.Context, post *content.Post) error {
	model := models.PostModelFromDomain(post)
	result := r.db.WithContext(ctx).Model(&models.PostModel{}).
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

// Delete deletes a post record by ID
func (r *GormPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PostModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a post by ID
func (r *GormPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.Post, error) {
	var model models.PostModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySlug finds a post by its slug
func (r *GormPostRepository) FindBySlug(ctx context.Context, slug string) (*content.Post, error) {
	var model models.PostModel
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

// FindByDirKey finds a post by its content directory key
func (r *GormPostRepository) FindByDirKey(ctx context.Context, dirKey uuid.UUID) (*content.Post, error) {
	var model models.PostModel
	if err := r.db.WithContext(ctx).
		Where("dir_key = ?", dirKey).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns posts matching the filter with a total count
func (r *GormPostRepository) FindAll(ctx context.Context, filter content.PostFilter) ([]*content.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PostModel{})

	if filter.Keyword != "" {
		keyword := "%" + strings.ToLower(filter.Keyword) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(summary) LIKE ?", keyword, keyword)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.PinnedOnly {
		query = query.Where("pinned = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if filter.SortBy != "" {
		dir := "ASC"
		if strings.EqualFold(filter.SortOrder, "desc") {
			dir = "DESC"
		}
		order = filter.SortBy + " " + dir
	}

	var postModels []models.PostModel
	if err := query.Order("pinned DESC").Order(order).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&postModels).Error; err != nil {
		return nil, 0, err
	}

	posts := make([]*content.Post, len(postModels))
	for i := range postModels {
		posts[i] = postModels[i].ToDomain()
	}
	return posts, total, nil
}

// ExistsBySlug checks whether a slug is taken
func (r *GormPostRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PostModel{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AllDirKeys returns the directory keys of every post record
func (r *GormPostRepository) AllDirKeys(ctx context.Context) ([]uuid.UUID, error) {
	var keys []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.PostModel{}).
		Pluck("dir_key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

var _ content.PostRepository = (*GormPostRepository)(nil)
