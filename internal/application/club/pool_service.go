package club

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	auditapp "github.com/greenclub/backend/internal/application/audit"
	"github.com/greenclub/backend/internal/domain/audit"
	"github.com/greenclub/backend/internal/domain/club"
	"github.com/greenclub/backend/internal/domain/shared"
)

// PoolService handles registration pools and their waitlists
type PoolService struct {
	poolRepo    club.PoolRepository
	eventRepo   club.EventRepository
	bookingRepo club.BookingRepository
	auditor     *auditapp.Service
	logger      *zap.Logger
}

// NewPoolService creates a new pool service
func NewPoolService(
	poolRepo club.PoolRepository,
	eventRepo club.EventRepository,
	bookingRepo club.BookingRepository,
	auditor *auditapp.Service,
	logger *zap.Logger,
) *PoolService {
	return &PoolService{
		poolRepo:    poolRepo,
		eventRepo:   eventRepo,
		bookingRepo: bookingRepo,
		auditor:     auditor,
		logger:      logger,
	}
}

// Create opens a pool against an event or booking. A target carries at
// most one pool.
func (s *PoolService) Create(ctx context.Context, input CreatePoolInput) (*club.Pool, error) {
	if err := s.ensureTargetExists(ctx, input.TargetType, input.TargetID); err != nil {
		return nil, err
	}

	existing, err := s.poolRepo.FindByTarget(ctx, input.TargetType, input.TargetID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to check for existing pool", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create pool")
	}
	if existing != nil {
		return nil, shared.NewDomainError("POOL_EXISTS", "This target already has a pool")
	}

	var pool *club.Pool
	switch input.TargetType {
	case club.PoolTargetEvent:
		pool, err = club.NewEventPool(input.ActorID, input.TargetID, input.OpensAt, input.ClosesAt, input.MaxEntries)
	case club.PoolTargetBooking:
		pool, err = club.NewBookingPool(input.ActorID, input.TargetID, input.OpensAt, input.ClosesAt, input.MaxEntries)
	default:
		return nil, shared.NewDomainError("INVALID_TARGET", "Unknown pool target type")
	}
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		if err := pool.Rename(input.Name); err != nil {
			return nil, err
		}
	}

	if err := s.poolRepo.Create(ctx, pool); err != nil {
		s.logger.Error("Failed to create pool", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create pool")
	}

	s.auditor.Record(ctx, input.ActorID, audit.ActionPoolOpen, "pool", pool.ID, pool.Name, input.IP)

	return pool, nil
}

// Get returns a pool by ID
func (s *PoolService) Get(ctx context.Context, id uuid.UUID) (*club.Pool, error) {
	return s.poolRepo.FindByID(ctx, id)
}

// GetForTarget returns the pool attached to an event or booking
func (s *PoolService) GetForTarget(ctx context.Context, targetType club.PoolTargetType, targetID uuid.UUID) (*club.Pool, error) {
	return s.poolRepo.FindByTarget(ctx, targetType, targetID)
}

// ListOpen returns pools currently accepting registrations
func (s *PoolService) ListOpen(ctx context.Context) ([]*club.Pool, error) {
	pools, err := s.poolRepo.FindOpen(ctx, time.Now())
	if err != nil {
		s.logger.Error("Failed to list open pools", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list pools")
	}
	return pools, nil
}

// Update updates a pool's name, window, and capacity
func (s *PoolService) Update(ctx context.Context, input UpdatePoolInput) (*club.Pool, error) {
	pool, err := s.poolRepo.FindByID(ctx, input.PoolID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" && input.Name != pool.Name {
		if err := pool.Rename(input.Name); err != nil {
			return nil, err
		}
	}
	if input.OpensAt != nil && input.ClosesAt != nil {
		if err := pool.UpdateWindow(*input.OpensAt, *input.ClosesAt); err != nil {
			return nil, err
		}
	}
	if input.MaxEntries != nil {
		if err := pool.SetMaxEntries(*input.MaxEntries); err != nil {
			return nil, err
		}
	}

	if err := s.poolRepo.Update(ctx, pool); err != nil {
		s.logger.Error("Failed to update pool", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update pool")
	}

	s.auditor.Record(ctx, input.ActorID, audit.ActionPoolOpen, "pool", pool.ID, "updated", input.IP)

	return pool, nil
}

// Close stops a pool from accepting registrations
func (s *PoolService) Close(ctx context.Context, id, actorID uuid.UUID, ip string) (*club.Pool, error) {
	pool, err := s.poolRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := pool.Close(); err != nil {
		return nil, err
	}

	if err := s.poolRepo.Update(ctx, pool); err != nil {
		s.logger.Error("Failed to close pool", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to close pool")
	}

	s.auditor.Record(ctx, actorID, audit.ActionPoolClose, "pool", pool.ID, pool.Name, ip)

	return pool, nil
}

// Reopen reopens a closed pool
func (s *PoolService) Reopen(ctx context.Context, id, actorID uuid.UUID, ip string) (*club.Pool, error) {
	pool, err := s.poolRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := pool.Reopen(); err != nil {
		return nil, err
	}

	if err := s.poolRepo.Update(ctx, pool); err != nil {
		s.logger.Error("Failed to reopen pool", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to reopen pool")
	}

	s.auditor.Record(ctx, actorID, audit.ActionPoolOpen, "pool", pool.ID, "reopened", ip)

	return pool, nil
}

// Delete removes a pool and its registrations
func (s *PoolService) Delete(ctx context.Context, id, actorID uuid.UUID, ip string) error {
	pool, err := s.poolRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.poolRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete pool", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete pool")
	}

	s.auditor.Record(ctx, actorID, audit.ActionPoolClose, "pool", pool.ID, "deleted", ip)

	return nil
}

// Register enters a member into a pool. When the pool is full the entry
// goes onto the waitlist in arrival order.
func (s *PoolService) Register(ctx context.Context, input RegisterInput) (*RegistrationResult, error) {
	pool, err := s.poolRepo.FindByID(ctx, input.PoolID)
	if err != nil {
		return nil, err
	}

	if !pool.AcceptsAt(time.Now()) {
		return nil, shared.NewDomainError("POOL_CLOSED", "The pool is not accepting registrations")
	}

	existing, err := s.poolRepo.FindRegistration(ctx, input.PoolID, input.MemberID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to check existing registration", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register")
	}
	if existing != nil && existing.IsLive() {
		return nil, shared.NewDomainError("ALREADY_REGISTERED", "Member is already in this pool")
	}

	registered, err := s.poolRepo.CountRegistered(ctx, input.PoolID)
	if err != nil {
		s.logger.Error("Failed to count registrations", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register")
	}
	waitlisted := !pool.HasPlace(registered)

	position, err := s.poolRepo.NextPosition(ctx, input.PoolID)
	if err != nil {
		s.logger.Error("Failed to assign position", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register")
	}

	var reg *club.PoolRegistration
	if existing != nil {
		if err := existing.Rejoin(position, waitlisted); err != nil {
			return nil, err
		}
		if err := s.poolRepo.UpdateRegistration(ctx, existing); err != nil {
			s.logger.Error("Failed to update registration", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register")
		}
		reg = existing
	} else {
		reg, err = club.NewPoolRegistration(input.PoolID, input.MemberID, position, waitlisted)
		if err != nil {
			return nil, err
		}
		if err := s.poolRepo.CreateRegistration(ctx, reg); err != nil {
			s.logger.Error("Failed to create registration", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register")
		}
	}

	s.auditor.Record(ctx, input.MemberID, audit.ActionPoolRegister, "pool", pool.ID,
		fmt.Sprintf("waitlisted=%t", waitlisted), input.IP)

	return &RegistrationResult{Registration: reg, Waitlisted: waitlisted}, nil
}

// Withdraw removes a member from a pool. When the member held a place,
// the first waitlisted entry is promoted in the same transaction.
func (s *PoolService) Withdraw(ctx context.Context, poolID, memberID uuid.UUID, ip string) (*WithdrawResult, error) {
	pool, err := s.poolRepo.FindByID(ctx, poolID)
	if err != nil {
		return nil, err
	}

	reg, err := s.poolRepo.FindRegistration(ctx, poolID, memberID)
	if err != nil {
		return nil, err
	}

	promoted, err := s.poolRepo.WithdrawAndPromote(ctx, reg, pool)
	if err != nil {
		return nil, err
	}

	detail := "withdrawn"
	if promoted != nil {
		detail = fmt.Sprintf("withdrawn, promoted %s", promoted.MemberID)
	}
	s.auditor.Record(ctx, memberID, audit.ActionPoolWithdraw, "pool", pool.ID, detail, ip)

	return &WithdrawResult{Registration: reg, Promoted: promoted}, nil
}

// ListRegistrations returns a pool's entries in position order
func (s *PoolService) ListRegistrations(ctx context.Context, poolID uuid.UUID) ([]*club.PoolRegistration, error) {
	if _, err := s.poolRepo.FindByID(ctx, poolID); err != nil {
		return nil, err
	}

	regs, err := s.poolRepo.FindRegistrations(ctx, poolID)
	if err != nil {
		s.logger.Error("Failed to list registrations", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list registrations")
	}
	return regs, nil
}

func (s *PoolService) ensureTargetExists(ctx context.Context, targetType club.PoolTargetType, targetID uuid.UUID) error {
	switch targetType {
	case club.PoolTargetEvent:
		event, err := s.eventRepo.FindByID(ctx, targetID)
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("EVENT_NOT_FOUND", "Target event does not exist")
		}
		if err != nil {
			return err
		}
		if !event.IsScheduled() {
			return shared.NewDomainError("INVALID_TARGET", "Pools can only target scheduled events")
		}
		return nil
	case club.PoolTargetBooking:
		booking, err := s.bookingRepo.FindByID(ctx, targetID)
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("BOOKING_NOT_FOUND", "Target booking does not exist")
		}
		if err != nil {
			return err
		}
		if !booking.IsActive() {
			return shared.NewDomainError("INVALID_TARGET", "Pools can only target confirmed bookings")
		}
		return nil
	default:
		return shared.NewDomainError("INVALID_TARGET", "Unknown pool target type")
	}
}
