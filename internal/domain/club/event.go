package club

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenclub/backend/internal/domain/shared"
)

// EventStatus represents the status of a club event
type EventStatus string

const (
	EventStatusScheduled EventStatus = "scheduled"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

// Event represents a club event such as a competition, gala, or open day.
// It is the aggregate root for event operations.
type Event struct {
	shared.BaseAggregateRoot
	Title        string
	Description  string
	Venue        string
	StartsAt     time.Time
	EndsAt       time.Time
	Capacity     int // 0 means unlimited
	Fee          decimal.Decimal
	Status       EventStatus
	OrganizerID  uuid.UUID
	CancelReason string
}

// NewEvent creates a new scheduled event
func NewEvent(organizerID uuid.UUID, title, venue string, startsAt, endsAt time.Time) (*Event, error) {
	if err := validateEventTitle(title); err != nil {
		return nil, err
	}
	if err := validateEventTimes(startsAt, endsAt); err != nil {
		return nil, err
	}

	event := &Event{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(organizerID),
		Title:             strings.TrimSpace(title),
		Venue:             strings.TrimSpace(venue),
		StartsAt:          startsAt,
		EndsAt:            endsAt,
		Fee:               decimal.Zero,
		Status:            EventStatusScheduled,
		OrganizerID:       organizerID,
	}

	event.AddDomainEvent(NewEventCreatedEvent(event))

	return event, nil
}

// Update updates the event's descriptive information
func (e *Event) Update(title, description, venue string) error {
	if err := e.ensureMutable(); err != nil {
		return err
	}
	if err := validateEventTitle(title); err != nil {
		return err
	}

	e.Title = strings.TrimSpace(title)
	e.Description = description
	e.Venue = strings.TrimSpace(venue)
	e.Touch()
	e.IncrementVersion()

	e.AddDomainEvent(NewEventUpdatedEvent(e))

	return nil
}

// Reschedule moves the event to a new time window
func (e *Event) Reschedule(startsAt, endsAt time.Time) error {
	if err := e.ensureMutable(); err != nil {
		return err
	}
	if err := validateEventTimes(startsAt, endsAt); err != nil {
		return err
	}

	e.StartsAt = startsAt
	e.EndsAt = endsAt
	e.Touch()
	e.IncrementVersion()

	e.AddDomainEvent(NewEventRescheduledEvent(e))

	return nil
}

// SetCapacity sets the maximum number of attendees. Zero means unlimited.
func (e *Event) SetCapacity(capacity int) error {
	if err := e.ensureMutable(); err != nil {
		return err
	}
	if capacity < 0 {
		return shared.NewDomainError("INVALID_CAPACITY", "Capacity cannot be negative")
	}

	e.Capacity = capacity
	e.Touch()
	e.IncrementVersion()

	return nil
}

// SetFee sets the entry fee for the event
func (e *Event) SetFee(fee decimal.Decimal) error {
	if err := e.ensureMutable(); err != nil {
		return err
	}
	if fee.IsNegative() {
		return shared.NewDomainError("INVALID_FEE", "Fee cannot be negative")
	}

	e.Fee = fee
	e.Touch()
	e.IncrementVersion()

	return nil
}

// Cancel cancels the event with an optional reason
func (e *Event) Cancel(reason string) error {
	if e.Status == EventStatusCancelled {
		return shared.NewDomainError("ALREADY_CANCELLED", "Event is already cancelled")
	}
	if e.Status == EventStatusCompleted {
		return shared.NewDomainError("INVALID_STATE", "Completed events cannot be cancelled")
	}

	e.Status = EventStatusCancelled
	e.CancelReason = strings.TrimSpace(reason)
	e.Touch()
	e.IncrementVersion()

	e.AddDomainEvent(NewEventCancelledEvent(e))

	return nil
}

// Complete marks the event as having taken place
func (e *Event) Complete() error {
	if e.Status != EventStatusScheduled {
		return shared.NewDomainError("INVALID_STATE", "Only scheduled events can be completed")
	}
	if time.Now().Before(e.StartsAt) {
		return shared.NewDomainError("INVALID_STATE", "Event has not started yet")
	}

	e.Status = EventStatusCompleted
	e.Touch()
	e.IncrementVersion()

	e.AddDomainEvent(NewEventCompletedEvent(e))

	return nil
}

// IsScheduled returns true if the event is still on
func (e *Event) IsScheduled() bool {
	return e.Status == EventStatusScheduled
}

// HasCapacityLimit returns true if the event limits attendance
func (e *Event) HasCapacityLimit() bool {
	return e.Capacity > 0
}

func (e *Event) ensureMutable() error {
	if e.Status != EventStatusScheduled {
		return shared.NewDomainError("INVALID_STATE", "Only scheduled events can be modified")
	}
	return nil
}

// Validation functions

func validateEventTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Event title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Event title cannot exceed 200 characters")
	}
	return nil
}

func validateEventTimes(startsAt, endsAt time.Time) error {
	if startsAt.IsZero() || endsAt.IsZero() {
		return shared.NewDomainError("INVALID_TIME", "Event times must be set")
	}
	if !endsAt.After(startsAt) {
		return shared.NewDomainError("INVALID_TIME", "Event must end after it starts")
	}
	return nil
}
