package club

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	auditapp "github.com/greenclub/backend/internal/application/audit"
	"github.com/greenclub/backend/internal/domain/audit"
	"github.com/greenclub/backend/internal/domain/club"
	"github.com/greenclub/backend/internal/domain/shared"
)

// BookingService handles rink booking management. Every create and
// reschedule runs the overlap check so a rink never carries two confirmed
// bookings for the same session.
type BookingService struct {
	bookingRepo club.BookingRepository
	eventRepo   club.EventRepository
	auditor     *auditapp.Service
	logger      *zap.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookingRepo club.BookingRepository,
	eventRepo club.EventRepository,
	auditor *auditapp.Service,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
		auditor:     auditor,
		logger:      logger,
	}
}

// Create books a rink session for a member
func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (*club.Booking, error) {
	booking, err := club.NewBooking(input.MemberID, input.Date, input.Rink, input.StartMinute, input.EndMinute)
	if err != nil {
		return nil, err
	}

	if input.EventID != nil {
		if _, err := s.eventRepo.FindByID(ctx, *input.EventID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("EVENT_NOT_FOUND", "Linked event does not exist")
			}
			return nil, err
		}
		if err := booking.AttachEvent(*input.EventID); err != nil {
			return nil, err
		}
	}

	if err := s.ensureRinkFree(ctx, booking.Date, booking.Rink, booking.StartMinute, booking.EndMinute, nil); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		s.logger.Error("Failed to create booking", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create booking")
	}

	s.auditor.Record(ctx, input.MemberID, audit.ActionBookingCreate, "booking", booking.ID, "", input.IP)

	return booking, nil
}

// Get returns a booking by ID
func (s *BookingService) Get(ctx context.Context, id uuid.UUID) (*club.Booking, error) {
	return s.bookingRepo.FindByID(ctx, id)
}

// List returns bookings matching the filter
func (s *BookingService) List(ctx context.Context, filter club.BookingFilter) (*BookingListResult, error) {
	bookings, total, err := s.bookingRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list bookings", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list bookings")
	}
	return &BookingListResult{
		Bookings: bookings,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.Limit(),
	}, nil
}

// ListForDate returns the confirmed bookings on a calendar day, for the
// rink availability sheet
func (s *BookingService) ListForDate(ctx context.Context, date time.Time) ([]*club.Booking, error) {
	bookings, err := s.bookingRepo.FindForDate(ctx, date)
	if err != nil {
		s.logger.Error("Failed to list bookings for date", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list bookings")
	}
	return bookings, nil
}

// Reschedule moves a booking to a new rink or session
func (s *BookingService) Reschedule(ctx context.Context, input RescheduleBookingInput) (*club.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}

	if err := ensureBookingActor(booking, input.ActorID, input.ActorIsManager); err != nil {
		return nil, err
	}

	if err := s.ensureRinkFree(ctx, club.NormalizeDate(input.Date), input.Rink, input.StartMinute, input.EndMinute, &booking.ID); err != nil {
		return nil, err
	}

	if err := booking.Reschedule(input.Date, input.Rink, input.StartMinute, input.EndMinute); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		s.logger.Error("Failed to reschedule booking", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to reschedule booking")
	}

	s.auditor.Record(ctx, input.ActorID, audit.ActionBookingCreate, "booking", booking.ID, "rescheduled", input.IP)

	return booking, nil
}

// Cancel cancels a booking
func (s *BookingService) Cancel(ctx context.Context, input CancelBookingInput) (*club.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}

	if err := ensureBookingActor(booking, input.ActorID, input.ActorIsManager); err != nil {
		return nil, err
	}

	if err := booking.Cancel(input.Notes); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		s.logger.Error("Failed to cancel booking", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to cancel booking")
	}

	s.auditor.Record(ctx, input.ActorID, audit.ActionBookingCancel, "booking", booking.ID, input.Notes, input.IP)

	return booking, nil
}

// ensureBookingActor allows a booking mutation only for its owner, unless
// the actor holds a booking management permission
func ensureBookingActor(booking *club.Booking, actorID uuid.UUID, manager bool) error {
	if manager || booking.MemberID == actorID {
		return nil
	}
	return shared.NewDomainError("FORBIDDEN", "Only the booking owner can modify this booking")
}

func (s *BookingService) ensureRinkFree(ctx context.Context, date time.Time, rink, startMinute, endMinute int, excludeID *uuid.UUID) error {
	clashes, err := s.bookingRepo.FindOverlapping(ctx, date, rink, startMinute, endMinute, excludeID)
	if err != nil {
		s.logger.Error("Failed to check rink availability", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check rink availability")
	}
	if len(clashes) > 0 {
		return shared.NewDomainError("RINK_UNAVAILABLE", "The rink is already booked for this session")
	}
	return nil
}
