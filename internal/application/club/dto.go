package club

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenclub/backend/internal/domain/club"
)

// CreateEventInput contains data for creating an event
type CreateEventInput struct {
	Title       string
	Description string
	Venue       string
	StartsAt    time.Time
	EndsAt      time.Time
	Capacity    int
	Fee         decimal.Decimal
	OrganizerID uuid.UUID
	IP          string
}

// UpdateEventInput contains data for updating an event. Schedule, capacity
// and fee fields are optional.
type UpdateEventInput struct {
	EventID     uuid.UUID
	Title       string
	Description string
	Venue       string
	StartsAt    *time.Time
	EndsAt      *time.Time
	Capacity    *int
	Fee         *decimal.Decimal
	ActorID     uuid.UUID
	IP          string
}

// EventListResult contains a paginated event listing
type EventListResult struct {
	Events   []*club.Event
	Total    int64
	Page     int
	PageSize int
}

// CreateBookingInput contains data for booking a rink session
type CreateBookingInput struct {
	MemberID    uuid.UUID
	Date        time.Time
	Rink        int
	StartMinute int
	EndMinute   int
	EventID     *uuid.UUID
	IP          string
}

// RescheduleBookingInput contains data for moving a booking
type RescheduleBookingInput struct {
	BookingID   uuid.UUID
	Date        time.Time
	Rink        int
	StartMinute int
	EndMinute   int
	ActorID     uuid.UUID
	// ActorIsManager allows acting on another member's booking
	ActorIsManager bool
	IP             string
}

// CancelBookingInput contains data for cancelling a booking
type CancelBookingInput struct {
	BookingID      uuid.UUID
	Notes          string
	ActorID        uuid.UUID
	ActorIsManager bool
	IP             string
}

// BookingListResult contains a paginated booking listing
type BookingListResult struct {
	Bookings []*club.Booking
	Total    int64
	Page     int
	PageSize int
}

// CreatePoolInput contains data for opening a registration pool against
// an event or a booking
type CreatePoolInput struct {
	Name       string
	TargetType club.PoolTargetType
	TargetID   uuid.UUID
	OpensAt    time.Time
	ClosesAt   time.Time
	MaxEntries int
	ActorID    uuid.UUID
	IP         string
}

// UpdatePoolInput contains data for updating a pool
type UpdatePoolInput struct {
	PoolID     uuid.UUID
	Name       string
	OpensAt    *time.Time
	ClosesAt   *time.Time
	MaxEntries *int
	ActorID    uuid.UUID
	IP         string
}

// RegisterInput contains data for entering a member into a pool
type RegisterInput struct {
	PoolID   uuid.UUID
	MemberID uuid.UUID
	IP       string
}

// RegistrationResult reports the outcome of a pool registration
type RegistrationResult struct {
	Registration *club.PoolRegistration
	Waitlisted   bool
}

// WithdrawResult reports a withdrawal and any promotion it triggered
type WithdrawResult struct {
	Registration *club.PoolRegistration
	Promoted     *club.PoolRegistration
}
