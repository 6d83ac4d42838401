package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenclub/backend/internal/domain/club"
)

// EventModel is the persistence model for the Event domain entity
type EventModel struct {
	AggregateModel
	Title        string           `gorm:"type:varchar(200);not null"`
	Description  string           `gorm:"type:text"`
	Venue        string           `gorm:"type:varchar(200)"`
	StartsAt     time.Time        `gorm:"not null;index"`
	EndsAt       time.Time        `gorm:"not null"`
	Capacity     int              `gorm:"not null;default:0"`
	Fee          decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Status       club.EventStatus `gorm:"type:varchar(20);not null;default:'scheduled';index"`
	OrganizerID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	CancelReason string           `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (EventModel) TableName() string {
	return "events"
}

// ToDomain converts the persistence model to a domain Event entity
func (m *EventModel) ToDomain() *club.Event {
	return &club.Event{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Title:             m.Title,
		Description:       m.Description,
		Venue:             m.Venue,
		StartsAt:          m.StartsAt,
		EndsAt:            m.EndsAt,
		Capacity:          m.Capacity,
		Fee:               m.Fee,
		Status:            m.Status,
		OrganizerID:       m.OrganizerID,
		CancelReason:      m.CancelReason,
	}
}

// FromDomain populates the persistence model from a domain Event entity
func (m *EventModel) FromDomain(event *club.Event) {
	m.FromDomainAggregateRoot(event.BaseAggregateRoot)
	m.Title = event.Title
	m.Description = event.Description
	m.Venue = event.Venue
	m.StartsAt = event.StartsAt
	m.EndsAt = event.EndsAt
	m.Capacity = event.Capacity
	m.Fee = event.Fee
	m.Status = event.Status
	m.OrganizerID = event.OrganizerID
	m.CancelReason = event.CancelReason
}

// EventModelFromDomain creates a new persistence model from a domain Event
func EventModelFromDomain(event *club.Event) *EventModel {
	m := &EventModel{}
	m.FromDomain(event)
	return m
}

// BookingModel is the persistence model for the Booking domain entity
type BookingModel struct {
	AggregateModel
	MemberID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	Date        time.Time          `gorm:"not null;index:idx_booking_rink_date,priority:2"`
	Rink        int                `gorm:"not null;index:idx_booking_rink_date,priority:1"`
	StartMinute int                `gorm:"not null"`
	EndMinute   int                `gorm:"not null"`
	EventID     *uuid.UUID         `gorm:"type:uuid;index"`
	Status      club.BookingStatus `gorm:"type:varchar(20);not null;default:'confirmed';index"`
	Notes       string             `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (BookingModel) TableName() string {
	return "bookings"
}

// ToDomain converts the persistence model to a domain Booking entity
func (m *BookingModel) ToDomain() *club.Booking {
	return &club.Booking{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		MemberID:          m.MemberID,
		Date:              m.Date,
		Rink:              m.Rink,
		StartMinute:       m.StartMinute,
		EndMinute:         m.EndMinute,
		EventID:           m.EventID,
		Status:            m.Status,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Booking entity
func (m *BookingModel) FromDomain(booking *club.Booking) {
	m.FromDomainAggregateRoot(booking.BaseAggregateRoot)
	m.MemberID = booking.MemberID
	m.Date = booking.Date
	m.Rink = booking.Rink
	m.StartMinute = booking.StartMinute
	m.EndMinute = booking.EndMinute
	m.EventID = booking.EventID
	m.Status = booking.Status
	m.Notes = booking.Notes
}

// BookingModelFromDomain creates a new persistence model from a domain Booking
func BookingModelFromDomain(booking *club.Booking) *BookingModel {
	m := &BookingModel{}
	m.FromDomain(booking)
	return m
}

// PoolModel is the persistence model for the Pool domain entity
type PoolModel struct {
	AggregateModel
	Name       string              `gorm:"type:varchar(200)"`
	TargetType club.PoolTargetType `gorm:"type:varchar(20);not null;uniqueIndex:idx_pool_target,priority:1"`
	TargetID   uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_pool_target,priority:2"`
	OpensAt    time.Time           `gorm:"not null"`
	ClosesAt   time.Time           `gorm:"not null;index"`
	MaxEntries int                 `gorm:"not null;default:0"`
	Status     club.PoolStatus     `gorm:"type:varchar(20);not null;default:'open';index"`
}

// TableName returns the table name for GORM
func (PoolModel) TableName() string {
	return "pools"
}

// ToDomain converts the persistence model to a domain Pool entity
func (m *PoolModel) ToDomain() *club.Pool {
	return &club.Pool{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		TargetType:        m.TargetType,
		TargetID:          m.TargetID,
		OpensAt:           m.OpensAt,
		ClosesAt:          m.ClosesAt,
		MaxEntries:        m.MaxEntries,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain Pool entity
func (m *PoolModel) FromDomain(pool *club.Pool) {
	m.FromDomainAggregateRoot(pool.BaseAggregateRoot)
	m.Name = pool.Name
	m.TargetType = pool.TargetType
	m.TargetID = pool.TargetID
	m.OpensAt = pool.OpensAt
	m.ClosesAt = pool.ClosesAt
	m.MaxEntries = pool.MaxEntries
	m.Status = pool.Status
}

// PoolModelFromDomain creates a new persistence model from a domain Pool
func PoolModelFromDomain(pool *club.Pool) *PoolModel {
	m := &PoolModel{}
	m.FromDomain(pool)
	return m
}

// PoolRegistrationModel is the persistence model for pool entries.
// A member holds at most one entry per pool.
type PoolRegistrationModel struct {
	AggregateModel
	PoolID   uuid.UUID               `gorm:"type:uuid;not null;uniqueIndex:idx_pool_member,priority:1"`
	MemberID uuid.UUID               `gorm:"type:uuid;not null;uniqueIndex:idx_pool_member,priority:2"`
	Status   club.RegistrationStatus `gorm:"type:varchar(20);not null;index"`
	Position int                     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PoolRegistrationModel) TableName() string {
	return "pool_registrations"
}

// ToDomain converts the persistence model to a domain PoolRegistration entity
func (m *PoolRegistrationModel) ToDomain() *club.PoolRegistration {
	return &club.PoolRegistration{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		PoolID:            m.PoolID,
		MemberID:          m.MemberID,
		Status:            m.Status,
		Position:          m.Position,
	}
}

// FromDomain populates the persistence model from a domain PoolRegistration entity
func (m *PoolRegistrationModel) FromDomain(reg *club.PoolRegistration) {
	m.FromDomainAggregateRoot(reg.BaseAggregateRoot)
	m.PoolID = reg.PoolID
	m.MemberID = reg.MemberID
	m.Status = reg.Status
	m.Position = reg.Position
}

// PoolRegistrationModelFromDomain creates a new persistence model from a
// domain PoolRegistration
func PoolRegistrationModelFromDomain(reg *club.PoolRegistration) *PoolRegistrationModel {
	m := &PoolRegistrationModel{}
	m.FromDomain(reg)
	return m
}
