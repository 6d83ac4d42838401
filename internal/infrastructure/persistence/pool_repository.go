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

// GormPoolRepository implements PoolRepository using GORM
type GormPoolRepository struct {
	db *gorm.DB
}

// NewGormPoolRepository creates a new GormPoolRepository
func NewGormPoolRepository(db *gorm.DB) *GormPoolRepository {
	return &GormPoolRepository{db: db}
}

// Create creates a new pool record
func (r *GormPoolRepository) Create(ctx context.Context, pool *club.Pool) error {
	model := models.PoolModelFromDomain(pool)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing pool record
func (r *GormPoolRepository) Update(ctx context.Context, pool *club.Pool) error {
	model := models.PoolModelFromDomain(pool)
	result := r.db.WithContext(ctx).Model(&models.PoolModel{}).
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

// Delete deletes a pool and its registrations
func (r *GormPoolRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pool_id = ?", id).
			Delete(&models.PoolRegistrationModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.PoolModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a pool by ID
func (r *GormPoolRepository) FindByID(ctx context.Context, id uuid.UUID) (*club.Pool, error) {
	var model models.PoolModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTarget finds the pool attached to an event or booking
func (r *GormPoolRepository) FindByTarget(ctx context.Context, targetType club.PoolTargetType, targetID uuid.UUID) (*club.Pool, error) {
	var model models.PoolModel
	if err := r.db.WithContext(ctx).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOpen returns pools accepting registrations at the given time
func (r *GormPoolRepository) FindOpen(ctx context.Context, at time.Time) ([]*club.Pool, error) {
	var poolModels []models.PoolModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND opens_at <= ? AND closes_at > ?", club.PoolStatusOpen, at, at).
		Order("closes_at ASC").
		Find(&poolModels).Error; err != nil {
		return nil, err
	}

	pools := make([]*club.Pool, len(poolModels))
	for i := range poolModels {
		pools[i] = poolModels[i].ToDomain()
	}
	return pools, nil
}

// CreateRegistration creates a new registration record
func (r *GormPoolRepository) CreateRegistration(ctx context.Context, reg *club.PoolRegistration) error {
	model := models.PoolRegistrationModelFromDomain(reg)
	return r.db.WithContext(ctx).Create(model).Error
}

// UpdateRegistration updates an existing registration record
func (r *GormPoolRepository) UpdateRegistration(ctx context.Context, reg *club.PoolRegistration) error {
	model := models.PoolRegistrationModelFromDomain(reg)
	result := r.db.WithContext(ctx).Model(&models.PoolRegistrationModel{}).
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

// FindRegistrationByID finds a registration by ID
func (r *GormPoolRepository) FindRegistrationByID(ctx context.Context, id uuid.UUID) (*club.PoolRegistration, error) {
	var model models.PoolRegistrationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindRegistration finds a member's entry in a pool regardless of status
func (r *GormPoolRepository) FindRegistration(ctx context.Context, poolID, memberID uuid.UUID) (*club.PoolRegistration, error) {
	var model models.PoolRegistrationModel
	if err := r.db.WithContext(ctx).
		Where("pool_id = ? AND member_id = ?", poolID, memberID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindRegistrations returns a pool's entries ordered by position
func (r *GormPoolRepository) FindRegistrations(ctx context.Context, poolID uuid.UUID) ([]*club.PoolRegistration, error) {
	var regModels []models.PoolRegistrationModel
	if err := r.db.WithContext(ctx).
		Where("pool_id = ?", poolID).
		Order("position ASC").
		Find(&regModels).Error; err != nil {
		return nil, err
	}

	regs := make([]*club.PoolRegistration, len(regModels))
	for i := range regModels {
		regs[i] = regModels[i].ToDomain()
	}
	return regs, nil
}

// CountRegistered returns the number of entries holding a place
func (r *GormPoolRepository) CountRegistered(ctx context.Context, poolID uuid.UUID) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PoolRegistrationModel{}).
		Where("pool_id = ? AND status = ?", poolID, club.RegistrationStatusRegistered).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// NextPosition returns the position for the next entry in a pool
func (r *GormPoolRepository) NextPosition(ctx context.Context, poolID uuid.UUID) (int, error) {
	var maxPosition *int
	if err := r.db.WithContext(ctx).
		Model(&models.PoolRegistrationModel{}).
		Where("pool_id = ?", poolID).
		Select("MAX(position)").
		Scan(&maxPosition).Error; err != nil {
		return 0, err
	}
	if maxPosition == nil {
		return 1, nil
	}
	return *maxPosition + 1, nil
}

// FirstWaitlisted returns the waitlisted entry with the lowest position,
// or nil when the waitlist is empty
func (r *GormPoolRepository) FirstWaitlisted(ctx context.Context, poolID uuid.UUID) (*club.PoolRegistration, error) {
	var model models.PoolRegistrationModel
	err := r.db.WithContext(ctx).
		Where("pool_id = ? AND status = ?", poolID, club.RegistrationStatusWaitlisted).
		Order("position ASC").
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// WithdrawAndPromote withdraws a registration and, when a place frees up,
// promotes the first waitlisted entry in the same transaction
func (r *GormPoolRepository) WithdrawAndPromote(ctx context.Context, reg *club.PoolRegistration, pool *club.Pool) (*club.PoolRegistration, error) {
	wasRegistered := reg.Status == club.RegistrationStatusRegistered

	if err := reg.Withdraw(); err != nil {
		return nil, err
	}

	var promoted *club.PoolRegistration
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &GormPoolRepository{db: tx}

		if err := txRepo.UpdateRegistration(ctx, reg); err != nil {
			return err
		}

		// Only a freed place can pull someone off the waitlist
		if !wasRegistered || pool.MaxEntries == 0 {
			return nil
		}

		next, err := txRepo.FirstWaitlisted(ctx, reg.PoolID)
		if err != nil {
			return err
		}
		if next == nil {
			return nil
		}

		if err := next.Promote(); err != nil {
			return err
		}
		if err := txRepo.UpdateRegistration(ctx, next); err != nil {
			return err
		}

		promoted = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return promoted, nil
}

var _ club.PoolRepository = (*GormPoolRepository)(nil)
