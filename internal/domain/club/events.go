package club

import (
	"time"

	"github.com/google/uuid"

	"github.com/greenclub/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeEvent            = "Event"
	AggregateTypeBooking          = "Booking"
	AggregateTypePool             = "Pool"
	AggregateTypePoolRegistration = "PoolRegistration"
)

// Event type constants
const (
	EventTypeEventCreated     = "EventCreated"
	EventTypeEventUpdated     = "EventUpdated"
	EventTypeEventRescheduled = "EventRescheduled"
	EventTypeEventCancelled   = "EventCancelled"
	EventTypeEventCompleted   = "EventCompleted"

	EventTypeBookingCreated     = "BookingCreated"
	EventTypeBookingRescheduled = "BookingRescheduled"
	EventTypeBookingCancelled   = "BookingCancelled"

	EventTypePoolOpened = "PoolOpened"
	EventTypePoolClosed = "PoolClosed"

	EventTypePoolRegistrationAdded     = "PoolRegistrationAdded"
	EventTypePoolRegistrationWithdrawn = "PoolRegistrationWithdrawn"
	EventTypePoolRegistrationPromoted  = "PoolRegistrationPromoted"
)

// EventCreatedEvent is published when a new event is scheduled
type EventCreatedEvent struct {
	shared.BaseDomainEvent
	Title    string    `json:"title"`
	StartsAt time.Time `json:"starts_at"`
}

// NewEventCreatedEvent creates a new EventCreatedEvent
func NewEventCreatedEvent(event *Event) *EventCreatedEvent {
	return &EventCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEventCreated, AggregateTypeEvent, event.ID),
		Title:           event.Title,
		StartsAt:        event.StartsAt,
	}
}

// EventUpdatedEvent is published when an event's details change
type EventUpdatedEvent struct {
	shared.BaseDomainEvent
	Title string `json:"title"`
}

// NewEventUpdatedEvent creates a new EventUpdatedEvent
func NewEventUpdatedEvent(event *Event) *EventUpdatedEvent {
	return &EventUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEventUpdated, AggregateTypeEvent, event.ID),
		Title:           event.Title,
	}
}

// EventRescheduledEvent is published when an event moves to a new time
type EventRescheduledEvent struct {
	shared.BaseDomainEvent
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// NewEventRescheduledEvent creates a new EventRescheduledEvent
func NewEventRescheduledEvent(event *Event) *EventRescheduledEvent {
	return &EventRescheduledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEventRescheduled, AggregateTypeEvent, event.ID),
		StartsAt:        event.StartsAt,
		EndsAt:          event.EndsAt,
	}
}

// EventCancelledEvent is published when an event is called off
type EventCancelledEvent struct {
	shared.BaseDomainEvent
	Reason string `json:"reason"`
}

// NewEventCancelledEvent creates a new EventCancelledEvent
func NewEventCancelledEvent(event *Event) *EventCancelledEvent {
	return &EventCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEventCancelled, AggregateTypeEvent, event.ID),
		Reason:          event.CancelReason,
	}
}

// EventCompletedEvent is published when an event is marked as held
type EventCompletedEvent struct {
	shared.BaseDomainEvent
}

// NewEventCompletedEvent creates a new EventCompletedEvent
func NewEventCompletedEvent(event *Event) *EventCompletedEvent {
	return &EventCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEventCompleted, AggregateTypeEvent, event.ID),
	}
}

// BookingCreatedEvent is published when a rink is booked
type BookingCreatedEvent struct {
	shared.BaseDomainEvent
	BookingID uuid.UUID `json:"booking_id"`
	MemberID  uuid.UUID `json:"member_id"`
	Date      time.Time `json:"date"`
	Rink      int       `json:"rink"`
}

// NewBookingCreatedEvent creates a new BookingCreatedEvent
func NewBookingCreatedEvent(booking *Booking) *BookingCreatedEvent {
	return &BookingCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingCreated, AggregateTypeBooking, booking.ID),
		BookingID:       booking.ID,
		MemberID:        booking.MemberID,
		Date:            booking.Date,
		Rink:            booking.Rink,
	}
}

// BookingRescheduledEvent is published when a booking moves
type BookingRescheduledEvent struct {
	shared.BaseDomainEvent
	BookingID uuid.UUID `json:"booking_id"`
	Date      time.Time `json:"date"`
	Rink      int       `json:"rink"`
}

// NewBookingRescheduledEvent creates a new BookingRescheduledEvent
func NewBookingRescheduledEvent(booking *Booking) *BookingRescheduledEvent {
	return &BookingRescheduledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingRescheduled, AggregateTypeBooking, booking.ID),
		BookingID:       booking.ID,
		Date:            booking.Date,
		Rink:            booking.Rink,
	}
}

// BookingCancelledEvent is published when a booking is cancelled
type BookingCancelledEvent struct {
	shared.BaseDomainEvent
	BookingID uuid.UUID `json:"booking_id"`
	MemberID  uuid.UUID `json:"member_id"`
}

// NewBookingCancelledEvent creates a new BookingCancelledEvent
func NewBookingCancelledEvent(booking *Booking) *BookingCancelledEvent {
	return &BookingCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingCancelled, AggregateTypeBooking, booking.ID),
		BookingID:       booking.ID,
		MemberID:        booking.MemberID,
	}
}

// PoolOpenedEvent is published when a pool opens for registrations
type PoolOpenedEvent struct {
	shared.BaseDomainEvent
	PoolID     uuid.UUID      `json:"pool_id"`
	TargetType PoolTargetType `json:"target_type"`
	TargetID   uuid.UUID      `json:"target_id"`
}

// NewPoolOpenedEvent creates a new PoolOpenedEvent
func NewPoolOpenedEvent(pool *Pool) *PoolOpenedEvent {
	return &PoolOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePoolOpened, AggregateTypePool, pool.ID),
		PoolID:          pool.ID,
		TargetType:      pool.TargetType,
		TargetID:        pool.TargetID,
	}
}

// PoolClosedEvent is published when a pool stops taking registrations
type PoolClosedEvent struct {
	shared.BaseDomainEvent
	PoolID uuid.UUID `json:"pool_id"`
}

// NewPoolClosedEvent creates a new PoolClosedEvent
func NewPoolClosedEvent(pool *Pool) *PoolClosedEvent {
	return &PoolClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePoolClosed, AggregateTypePool, pool.ID),
		PoolID:          pool.ID,
	}
}

// PoolRegistrationAddedEvent is published when a member enters a pool
type PoolRegistrationAddedEvent struct {
	shared.BaseDomainEvent
	RegistrationID uuid.UUID          `json:"registration_id"`
	PoolID         uuid.UUID          `json:"pool_id"`
	MemberID       uuid.UUID          `json:"member_id"`
	Status         RegistrationStatus `json:"status"`
}

// NewPoolRegistrationAddedEvent creates a new PoolRegistrationAddedEvent
func NewPoolRegistrationAddedEvent(reg *PoolRegistration) *PoolRegistrationAddedEvent {
	return &PoolRegistrationAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePoolRegistrationAdded, AggregateTypePoolRegistration, reg.ID),
		RegistrationID:  reg.ID,
		PoolID:          reg.PoolID,
		MemberID:        reg.MemberID,
		Status:          reg.Status,
	}
}

// PoolRegistrationWithdrawnEvent is published when a member withdraws
type PoolRegistrationWithdrawnEvent struct {
	shared.BaseDomainEvent
	RegistrationID uuid.UUID `json:"registration_id"`
	PoolID         uuid.UUID `json:"pool_id"`
	MemberID       uuid.UUID `json:"member_id"`
}

// NewPoolRegistrationWithdrawnEvent creates a new PoolRegistrationWithdrawnEvent
func NewPoolRegistrationWithdrawnEvent(reg *PoolRegistration) *PoolRegistrationWithdrawnEvent {
	return &PoolRegistrationWithdrawnEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePoolRegistrationWithdrawn, AggregateTypePoolRegistration, reg.ID),
		RegistrationID:  reg.ID,
		PoolID:          reg.PoolID,
		MemberID:        reg.MemberID,
	}
}

// PoolRegistrationPromotedEvent is published when a waitlisted entry
// takes a freed place
type PoolRegistrationPromotedEvent struct {
	shared.BaseDomainEvent
	RegistrationID uuid.UUID `json:"registration_id"`
	PoolID         uuid.UUID `json:"pool_id"`
	MemberID       uuid.UUID `json:"member_id"`
}

// NewPoolRegistrationPromotedEvent creates a new PoolRegistrationPromotedEvent
func NewPoolRegistrationPromotedEvent(reg *PoolRegistration) *PoolRegistrationPromotedEvent {
	return &PoolRegistrationPromotedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePoolRegistrationPromoted, AggregateTypePoolRegistration, reg.ID),
		RegistrationID:  reg.ID,
		PoolID:          reg.PoolID,
		MemberID:        reg.MemberID,
	}
}
