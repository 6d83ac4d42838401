package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenclub/backend/internal/domain/membership"
	"github.com/greenclub/backend/internal/domain/shared"
	"github.com/greenclub/backend/internal/infrastructure/persistence/models"
)

// GormMemberRepository implements MemberRepository using GORM
type GormMemberRepository struct {
	db *gorm.DB
}

// NewGormMemberRepository creates a new GormMemberRepository
func NewGormMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{db: db}
}

// Create creates a new member
func (r *GormMemberRepository) Create(ctx context.Context, member *membership.Member) error {
	model := models.MemberModelFromDomain(member)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing member
func (r *GormMemberRepository) Update(ctx context.Context, member *membership.Member) error {
	model := models.MemberModelFromDomain(member)
	result := r.db.WithContext(ctx).Model(&models.MemberModel{}).
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

// Delete deletes a member and their role assignments
func (r *GormMemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member_id = ?", id).
			Delete(&models.MemberRoleModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.MemberModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a member by ID
func (r *GormMemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*membership.Member, error) {
	var model models.MemberModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a member by email
func (r *GormMemberRepository) FindByEmail(ctx context.Context, email string) (*membership.Member, error) {
	if email == "" {
		return nil, shared.ErrNotFound
	}
	var model models.MemberModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns members matching the filter with a total count
func (r *GormMemberRepository) FindAll(ctx context.Context, filter membership.MemberFilter) ([]*membership.Member, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.MemberModel{})

	if filter.Keyword != "" {
		keyword := "%" + strings.ToLower(filter.Keyword) + "%"
		query = query.Where("email LIKE ? OR LOWER(display_name) LIKE ?", keyword, keyword)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.RoleID != nil {
		query = query.Joins("JOIN member_roles ON members.id = member_roles.member_id").
			Where("member_roles.role_id = ?", *filter.RoleID)
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

	var memberModels []models.MemberModel
	if err := query.Order(order).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&memberModels).Error; err != nil {
		return nil, 0, err
	}

	members := make([]*membership.Member, len(memberModels))
	for i := range memberModels {
		members[i] = memberModels[i].ToDomain()
	}
	return members, total, nil
}

// ExistsByEmail checks if an email is already registered
func (r *GormMemberRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.MemberModel{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveMemberRoles replaces the member's role assignments
func (r *GormMemberRepository) SaveMemberRoles(ctx context.Context, member *membership.Member) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member_id = ?", member.ID).
			Delete(&models.MemberRoleModel{}).Error; err != nil {
			return err
		}

		if len(member.RoleIDs) == 0 {
			return nil
		}

		assignments := make([]models.MemberRoleModel, len(member.RoleIDs))
		for i, roleID := range member.RoleIDs {
			assignments[i] = models.MemberRoleModel{
				MemberID: member.ID,
				RoleID:   roleID,
			}
		}
		return tx.Create(&assignments).Error
	})
}

// LoadMemberRoles loads the member's role assignments
func (r *GormMemberRepository) LoadMemberRoles(ctx context.Context, member *membership.Member) error {
	var assignments []models.MemberRoleModel
	if err := r.db.WithContext(ctx).
		Where("member_id = ?", member.ID).
		Find(&assignments).Error; err != nil {
		return err
	}

	member.RoleIDs = make([]uuid.UUID, len(assignments))
	for i, a := range assignments {
		member.RoleIDs[i] = a.RoleID
	}
	return nil
}

// Count returns the total number of members
func (r *GormMemberRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MemberModel{}).Count(&count).Error
	return count, err
}

var _ membership.MemberRepository = (*GormMemberRepository)(nil)
