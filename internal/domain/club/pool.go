package club

import (
	"time"

	"github.com/google/uuid"

	"github.com/greenclub/backend/internal/domain/shared"
)

// PoolTargetType identifies what a registration pool collects entries for
type PoolTargetType string

const (
	PoolTargetEvent   PoolTargetType = "event"
	PoolTargetBooking PoolTargetType = "booking"
)

// PoolStatus represents the status of a registration pool
type PoolStatus string

const (
	PoolStatusOpen   PoolStatus = "open"
	PoolStatusClosed PoolStatus = "closed"
)

// Pool represents a registration pool attached to exactly one event or
// booking. Members register into the pool; entries beyond MaxEntries go
// onto a waitlist ordered by position.
type Pool struct {
	shared.BaseAggregateRoot
	Name       string
	TargetType PoolTargetType
	TargetID   uuid.UUID
	OpensAt    time.Time
	ClosesAt   time.Time
	MaxEntries int // 0 means unlimited
	Status     PoolStatus
}

// NewEventPool creates a pool collecting entries for an event
func NewEventPool(createdBy, eventID uuid.UUID, opensAt, closesAt time.Time, maxEntries int) (*Pool, error) {
	return newPool(createdBy, PoolTargetEvent, eventID, opensAt, closesAt, maxEntries)
}

// NewBookingPool creates a pool collecting entries for a booking
func NewBookingPool(createdBy, bookingID uuid.UUID, opensAt, closesAt time.Time, maxEntries int) (*Pool, error) {
	return newPool(createdBy, PoolTargetBooking, bookingID, opensAt, closesAt, maxEntries)
}

func newPool(createdBy uuid.UUID, targetType PoolTargetType, targetID uuid.UUID, opensAt, closesAt time.Time, maxEntries int) (*Pool, error) {
	if targetID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TARGET", "Pool target must be set")
	}
	if err := validatePoolWindow(opensAt, closesAt); err != nil {
		return nil, err
	}
	if maxEntries < 0 {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Max entries cannot be negative")
	}

	pool := &Pool{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(createdBy),
		TargetType:        targetType,
		TargetID:          targetID,
		OpensAt:           opensAt,
		ClosesAt:          closesAt,
		MaxEntries:        maxEntries,
		Status:            PoolStatusOpen,
	}

	pool.AddDomainEvent(NewPoolOpenedEvent(pool))

	return pool, nil
}

// Rename sets the pool's display name
func (p *Pool) Rename(name string) error {
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Pool name cannot exceed 200 characters")
	}

	p.Name = name
	p.Touch()
	p.IncrementVersion()

	return nil
}

// UpdateWindow changes when the pool accepts registrations
func (p *Pool) UpdateWindow(opensAt, closesAt time.Time) error {
	if err := validatePoolWindow(opensAt, closesAt); err != nil {
		return err
	}

	p.OpensAt = opensAt
	p.ClosesAt = closesAt
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetMaxEntries changes the number of places before the waitlist starts
func (p *Pool) SetMaxEntries(maxEntries int) error {
	if maxEntries < 0 {
		return shared.NewDomainError("INVALID_CAPACITY", "Max entries cannot be negative")
	}

	p.MaxEntries = maxEntries
	p.Touch()
	p.IncrementVersion()

	return nil
}

// Close stops the pool from accepting registrations
func (p *Pool) Close() error {
	if p.Status == PoolStatusClosed {
		return shared.NewDomainError("INVALID_STATE", "Pool is already closed")
	}

	p.Status = PoolStatusClosed
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewPoolClosedEvent(p))

	return nil
}

// Reopen lets a closed pool accept registrations again
func (p *Pool) Reopen() error {
	if p.Status == PoolStatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Pool is already open")
	}

	p.Status = PoolStatusOpen
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewPoolOpenedEvent(p))

	return nil
}

// AcceptsAt reports whether the pool takes registrations at the given time
func (p *Pool) AcceptsAt(t time.Time) bool {
	if p.Status != PoolStatusOpen {
		return false
	}
	return !t.Before(p.OpensAt) && t.Before(p.ClosesAt)
}

// HasPlace reports whether a new entry goes straight in rather than
// onto the waitlist, given the current number of registered entries.
func (p *Pool) HasPlace(registeredCount int) bool {
	if p.MaxEntries == 0 {
		return true
	}
	return registeredCount < p.MaxEntries
}

func validatePoolWindow(opensAt, closesAt time.Time) error {
	if opensAt.IsZero() || closesAt.IsZero() {
		return shared.NewDomainError("INVALID_WINDOW", "Pool window must be set")
	}
	if !closesAt.After(opensAt) {
		return shared.NewDomainError("INVALID_WINDOW", "Pool must close after it opens")
	}
	return nil
}

// RegistrationStatus represents the status of a pool entry
type RegistrationStatus string

const (
	RegistrationStatusRegistered RegistrationStatus = "registered"
	RegistrationStatusWaitlisted RegistrationStatus = "waitlisted"
	RegistrationStatusWithdrawn  RegistrationStatus = "withdrawn"
)

// PoolRegistration represents a member's entry in a pool. A member holds
// at most one live entry per pool. Position orders the waitlist.
type PoolRegistration struct {
	shared.BaseAggregateRoot
	PoolID   uuid.UUID
	MemberID uuid.UUID
	Status   RegistrationStatus
	Position int
}

// NewPoolRegistration creates an entry for a member in a pool. Position
// is the entry's order within the pool, assigned by the caller.
func NewPoolRegistration(poolID, memberID uuid.UUID, position int, waitlisted bool) (*PoolRegistration, error) {
	if poolID == uuid.Nil || memberID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REGISTRATION", "Pool and member must be set")
	}
	if position < 1 {
		return nil, shared.NewDomainError("INVALID_REGISTRATION", "Position must be positive")
	}

	status := RegistrationStatusRegistered
	if waitlisted {
		status = RegistrationStatusWaitlisted
	}

	reg := &PoolRegistration{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(memberID),
		PoolID:            poolID,
		MemberID:          memberID,
		Status:            status,
		Position:          position,
	}

	reg.AddDomainEvent(NewPoolRegistrationAddedEvent(reg))

	return reg, nil
}

// Withdraw removes the entry from the pool
func (r *PoolRegistration) Withdraw() error {
	if r.Status == RegistrationStatusWithdrawn {
		return shared.NewDomainError("ALREADY_WITHDRAWN", "Registration is already withdrawn")
	}

	r.Status = RegistrationStatusWithdrawn
	r.Touch()
	r.IncrementVersion()

	r.AddDomainEvent(NewPoolRegistrationWithdrawnEvent(r))

	return nil
}

// Rejoin re-enters a withdrawn member at the back of the pool. The entry
// keeps its row, so the one-entry-per-member rule holds.
func (r *PoolRegistration) Rejoin(position int, waitlisted bool) error {
	if r.Status != RegistrationStatusWithdrawn {
		return shared.NewDomainError("ALREADY_REGISTERED", "Member is already in this pool")
	}
	if position < 1 {
		return shared.NewDomainError("INVALID_REGISTRATION", "Position must be positive")
	}

	r.Status = RegistrationStatusRegistered
	if waitlisted {
		r.Status = RegistrationStatusWaitlisted
	}
	r.Position = position
	r.Touch()
	r.IncrementVersion()

	r.AddDomainEvent(NewPoolRegistrationAddedEvent(r))

	return nil
}

// Promote moves a waitlisted entry into a freed place
func (r *PoolRegistration) Promote() error {
	if r.Status != RegistrationStatusWaitlisted {
		return shared.NewDomainError("INVALID_STATE", "Only waitlisted registrations can be promoted")
	}

	r.Status = RegistrationStatusRegistered
	r.Touch()
	r.IncrementVersion()

	r.AddDomainEvent(NewPoolRegistrationPromotedEvent(r))

	return nil
}

// IsLive returns true if the entry still counts toward the pool
func (r *PoolRegistration) IsLive() bool {
	return r.Status != RegistrationStatusWithdrawn
}
