package club

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/greenclub/backend/internal/domain/shared"
)

// BookingStatus represents the status of a rink booking
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Rink and session limits
const (
	MinRink = 1
	MaxRink = 8

	minutesPerDay = 24 * 60
)

// Booking represents a reservation of a single rink for part of a day.
// Times are minutes from midnight so that a booking never crosses a
// date boundary.
type Booking struct {
	shared.BaseAggregateRoot
	MemberID    uuid.UUID
	Date        time.Time // Normalized to midnight UTC
	Rink        int
	StartMinute int
	EndMinute   int
	EventID     *uuid.UUID // Set when the booking belongs to an event
	Status      BookingStatus
	Notes       string
}

// NewBooking creates a confirmed booking for a rink
func NewBooking(memberID uuid.UUID, date time.Time, rink, startMinute, endMinute int) (*Booking, error) {
	if err := validateRink(rink); err != nil {
		return nil, err
	}
	if err := validateSession(startMinute, endMinute); err != nil {
		return nil, err
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Booking date must be set")
	}

	booking := &Booking{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(memberID),
		MemberID:          memberID,
		Date:              NormalizeDate(date),
		Rink:              rink,
		StartMinute:       startMinute,
		EndMinute:         endMinute,
		Status:            BookingStatusConfirmed,
	}

	booking.AddDomainEvent(NewBookingCreatedEvent(booking))

	return booking, nil
}

// AttachEvent links the booking to an event
func (b *Booking) AttachEvent(eventID uuid.UUID) error {
	if b.Status != BookingStatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", "Only confirmed bookings can be linked to an event")
	}

	b.EventID = &eventID
	b.Touch()
	b.IncrementVersion()

	return nil
}

// Reschedule moves the booking to a different rink or session
func (b *Booking) Reschedule(date time.Time, rink, startMinute, endMinute int) error {
	if b.Status != BookingStatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", "Only confirmed bookings can be rescheduled")
	}
	if err := validateRink(rink); err != nil {
		return err
	}
	if err := validateSession(startMinute, endMinute); err != nil {
		return err
	}

	b.Date = NormalizeDate(date)
	b.Rink = rink
	b.StartMinute = startMinute
	b.EndMinute = endMinute
	b.Touch()
	b.IncrementVersion()

	b.AddDomainEvent(NewBookingRescheduledEvent(b))

	return nil
}

// Cancel cancels the booking
func (b *Booking) Cancel(notes string) error {
	if b.Status == BookingStatusCancelled {
		return shared.NewDomainError("ALREADY_CANCELLED", "Booking is already cancelled")
	}

	b.Status = BookingStatusCancelled
	if notes = strings.TrimSpace(notes); notes != "" {
		b.Notes = notes
	}
	b.Touch()
	b.IncrementVersion()

	b.AddDomainEvent(NewBookingCancelledEvent(b))

	return nil
}

// IsActive returns true if the booking still holds the rink
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusConfirmed
}

// Overlaps reports whether two bookings contend for the same rink time.
// Cancelled bookings never overlap anything.
func (b *Booking) Overlaps(other *Booking) bool {
	if !b.IsActive() || !other.IsActive() {
		return false
	}
	if b.Rink != other.Rink || !b.Date.Equal(other.Date) {
		return false
	}
	return b.StartMinute < other.EndMinute && other.StartMinute < b.EndMinute
}

// NormalizeDate truncates a time to its calendar day in UTC
func NormalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Validation functions

func validateRink(rink int) error {
	if rink < MinRink || rink > MaxRink {
		return shared.NewDomainError("INVALID_RINK", "Rink number is out of range")
	}
	return nil
}

func validateSession(startMinute, endMinute int) error {
	if startMinute < 0 || endMinute > minutesPerDay {
		return shared.NewDomainError("INVALID_SESSION", "Session must fall within a single day")
	}
	if endMinute <= startMinute {
		return shared.NewDomainError("INVALID_SESSION", "Session must end after it starts")
	}
	return nil
}
