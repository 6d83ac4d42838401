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

// EventService handles club event management
type EventService struct {
	eventRepo club.EventRepository
	poolRepo  club.PoolRepository
	auditor   *auditapp.Service
	logger    *zap.Logger
}

// NewEventService creates a new event service
func NewEventService(
	eventRepo club.EventRepository,
	poolRepo club.PoolRepository,
	auditor *auditapp.Service,
	logger *zap.Logger,
) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		poolRepo:  poolRepo,
		auditor:   auditor,
		logger:    logger,
	}
}

// Create creates a scheduled event
func (s *EventService) Create(ctx context.Context, input CreateEventInput) (*club.Event, error) {
	event, err := club.NewEvent(input.OrganizerID, input.Title, input.Venue, input.StartsAt, input.EndsAt)
	if err != nil {
		return nil, err
	}

	if input.Description != "" {
		if err := event.Update(input.Title, input.Description, input.Venue); err != nil {
			return nil, err
		}
	}
	if input.Capacity > 0 {
		if err := event.SetCapacity(input.Capacity); err != nil {
			return nil, err
		}
	}
	if input.Fee.IsPositive() {
		if err := event.SetFee(input.Fee); err != nil {
			return nil, err
		}
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		s.logger.Error("Failed to create event", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create event")
	}

	s.auditor.Record(ctx, input.OrganizerID, audit.ActionEventCreate, "event", event.ID, event.Title, input.IP)

	return event, nil
}

// Get returns an event by ID
func (s *EventService) Get(ctx context.Context, id uuid.UUID) (*club.Event, error) {
	return s.eventRepo.FindByID(ctx, id)
}

// List returns events matching the filter
func (s *EventService) List(ctx context.Context, filter club.EventFilter) (*EventListResult, error) {
	events, total, err := s.eventRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list events", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list events")
	}
	return &EventListResult{
		Events:   events,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.Limit(),
	}, nil
}

// ListUpcoming returns scheduled events starting after now
func (s *EventService) ListUpcoming(ctx context.Context, limit int) ([]*club.Event, error) {
	events, err := s.eventRepo.FindUpcoming(ctx, time.Now(), limit)
	if err != nil {
		s.logger.Error("Failed to list upcoming events", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list events")
	}
	return events, nil
}

// Update updates an event's details, schedule, capacity, and fee
func (s *EventService) Update(ctx context.Context, input UpdateEventInput) (*club.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, input.EventID)
	if err != nil {
		return nil, err
	}

	if err := event.Update(input.Title, input.Description, input.Venue); err != nil {
		return nil, err
	}
	if input.StartsAt != nil && input.EndsAt != nil {
		if err := event.Reschedule(*input.StartsAt, *input.EndsAt); err != nil {
			return nil, err
		}
	}
	if input.Capacity != nil {
		if err := event.SetCapacity(*input.Capacity); err != nil {
			return nil, err
		}
	}
	if input.Fee != nil {
		if err := event.SetFee(*input.Fee); err != nil {
			return nil, err
		}
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("Failed to update event", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update event")
	}

	s.auditor.Record(ctx, input.ActorID, audit.ActionEventUpdate, "event", event.ID, event.Title, input.IP)

	return event, nil
}

// Cancel cancels an event. Any registration pool attached to the event is
// closed in the same pass so no further entries come in.
func (s *EventService) Cancel(ctx context.Context, id uuid.UUID, reason string, actorID uuid.UUID, ip string) (*club.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := event.Cancel(reason); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		s.logger.Error("Failed to cancel event", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to cancel event")
	}

	s.closeAttachedPool(ctx, event.ID)

	s.auditor.Record(ctx, actorID, audit.ActionEventCancel, "event", event.ID, reason, ip)

	return event, nil
}

// Complete marks a scheduled event as held
func (s *EventService) Complete(ctx context.Context, id, actorID uuid.UUID, ip string) (*club.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := event.Complete(); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		s.logger.Error("Failed to complete event", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to complete event")
	}

	s.auditor.Record(ctx, actorID, audit.ActionEventUpdate, "event", event.ID, "completed", ip)

	return event, nil
}

// Delete removes an event record
func (s *EventService) Delete(ctx context.Context, id, actorID uuid.UUID, ip string) error {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete event", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete event")
	}

	s.auditor.Record(ctx, actorID, audit.ActionEventUpdate, "event", event.ID, "deleted", ip)

	return nil
}

// closeAttachedPool closes the event's pool when one exists and is still
// open. Failures are logged; the cancellation itself has already landed.
func (s *EventService) closeAttachedPool(ctx context.Context, eventID uuid.UUID) {
	pool, err := s.poolRepo.FindByTarget(ctx, club.PoolTargetEvent, eventID)
	if errors.Is(err, shared.ErrNotFound) {
		return
	}
	if err != nil {
		s.logger.Error("Failed to look up event pool",
			zap.String("event_id", eventID.String()),
			zap.Error(err))
		return
	}

	if err := pool.Close(); err != nil {
		// Already closed
		return
	}
	if err := s.poolRepo.Update(ctx, pool); err != nil {
		s.logger.Error("Failed to close event pool",
			zap.String("pool_id", pool.ID.String()),
			zap.Error(err))
	}
}
