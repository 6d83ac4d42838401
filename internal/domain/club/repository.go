package club

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventRepository defines the interface for event persistence
type EventRepository interface {
	// Create creates a new event record
	Create(ctx context.Context, event *Event) error

	// Update updates an existing event record
	Update(ctx context.Context, event *Event) error

	// Delete deletes an event record by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds an event by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Event, error)

	// FindAll returns events matching the filter with a total count
	FindAll(ctx context.Context, filter EventFilter) ([]*Event, int64, error)

	// FindUpcoming returns scheduled events starting after the given time
	FindUpcoming(ctx context.Context, after time.Time, limit int) ([]*Event, error)
}

// EventFilter contains filter options for querying events
type EventFilter struct {
	// Search keyword for title or venue
	Keyword string

	// Filter by status
	Status *EventStatus

	// Filter by organizer
	OrganizerID *uuid.UUID

	// Only events overlapping this window
	From *time.Time
	To   *time.Time

	// Pagination
	Page     int
	PageSize int

	// Sorting
	SortBy    string
	SortOrder string // "asc" or "desc"
}

// NewEventFilter creates a new EventFilter with default values
func NewEventFilter() EventFilter {
	return EventFilter{
		Page:      1,
		PageSize:  20,
		SortBy:    "starts_at",
		SortOrder: "asc",
	}
}

// Offset returns the offset for pagination
func (f EventFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f EventFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}

// BookingRepository defines the interface for rink booking persistence
type BookingRepository interface {
	// Create creates a new booking record
	Create(ctx context.Context, booking *Booking) error

	// Update updates an existing booking record
	Update(ctx context.Context, booking *Booking) error

	// Delete deletes a booking record by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a booking by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindAll returns bookings matching the filter with a total count
	FindAll(ctx context.Context, filter BookingFilter) ([]*Booking, int64, error)

	// FindForDate returns confirmed bookings for a calendar day
	FindForDate(ctx context.Context, date time.Time) ([]*Booking, error)

	// FindOverlapping returns confirmed bookings contending for the same
	// rink time, excluding the booking with excludeID when it is not nil.
	// Used to enforce one booking per rink per session.
	FindOverlapping(ctx context.Context, date time.Time, rink, startMinute, endMinute int, excludeID *uuid.UUID) ([]*Booking, error)
}

// BookingFilter contains filter options for querying bookings
type BookingFilter struct {
	// Filter by member
	MemberID *uuid.UUID

	// Filter by linked event
	EventID *uuid.UUID

	// Filter by status
	Status *BookingStatus

	// Only bookings on days within this range
	From *time.Time
	To   *time.Time

	// Filter by rink
	Rink *int

	// Pagination
	Page     int
	PageSize int
}

// NewBookingFilter creates a new BookingFilter with default values
func NewBookingFilter() BookingFilter {
	return BookingFilter{
		Page:     1,
		PageSize: 20,
	}
}

// Offset returns the offset for pagination
func (f BookingFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f BookingFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}

// PoolRepository defines the interface for pool and registration
// persistence. Registrations live with their pool so that waitlist
// promotion can run in one transaction.
type PoolRepository interface {
	// Create creates a new pool record
	Create(ctx context.Context, pool *Pool) error

	// Update updates an existing pool record
	Update(ctx context.Context, pool *Pool) error

	// Delete deletes a pool and its registrations
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a pool by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Pool, error)

	// FindByTarget finds the pool attached to an event or booking
	FindByTarget(ctx context.Context, targetType PoolTargetType, targetID uuid.UUID) (*Pool, error)

	// FindOpen returns pools accepting registrations at the given time
	FindOpen(ctx context.Context, at time.Time) ([]*Pool, error)

	// CreateRegistration creates a new registration record
	CreateRegistration(ctx context.Context, reg *PoolRegistration) error

	// UpdateRegistration updates an existing registration record
	UpdateRegistration(ctx context.Context, reg *PoolRegistration) error

	// FindRegistrationByID finds a registration by ID
	FindRegistrationByID(ctx context.Context, id uuid.UUID) (*PoolRegistration, error)

	// FindRegistration finds a member's entry in a pool regardless of status
	FindRegistration(ctx context.Context, poolID, memberID uuid.UUID) (*PoolRegistration, error)

	// FindRegistrations returns a pool's entries ordered by position
	FindRegistrations(ctx context.Context, poolID uuid.UUID) ([]*PoolRegistration, error)

	// CountRegistered returns the number of entries holding a place
	CountRegistered(ctx context.Context, poolID uuid.UUID) (int, error)

	// NextPosition returns the position for the next entry in a pool
	NextPosition(ctx context.Context, poolID uuid.UUID) (int, error)

	// FirstWaitlisted returns the waitlisted entry with the lowest
	// position, or nil when the waitlist is empty
	FirstWaitlisted(ctx context.Context, poolID uuid.UUID) (*PoolRegistration, error)

	// WithdrawAndPromote withdraws a registration and, when a place frees
	// up, promotes the first waitlisted entry in the same transaction.
	// Returns the promoted entry, or nil when nobody was promoted.
	WithdrawAndPromote(ctx context.Context, reg *PoolRegistration, pool *Pool) (*PoolRegistration, error)
}
