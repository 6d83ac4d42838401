// Package audit records and queries the append-only action log.
package audit

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/greenclub/backend/internal/domain/audit"
)

// Service records audit entries and serves admin queries over the log.
// Recording never fails the calling operation; a write error is logged
// and swallowed.
type Service struct {
	repo   audit.Repository
	logger *zap.Logger
}

// NewService creates a new audit service
func NewService(repo audit.Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Record appends an entry for an action performed by a member
func (s *Service) Record(ctx context.Context, actorID uuid.UUID, action audit.Action, resourceType string, resourceID uuid.UUID, detail, ip string) {
	entry, err := audit.NewEntry(actorID, action, resourceType, resourceID, detail, ip)
	if err != nil {
		s.logger.Error("Failed to build audit entry",
			zap.String("action", string(action)),
			zap.Error(err))
		return
	}
	s.append(ctx, entry)
}

// RecordAnonymous appends an entry with no authenticated actor
func (s *Service) RecordAnonymous(ctx context.Context, action audit.Action, resourceType, detail, ip string) {
	entry, err := audit.NewAnonymousEntry(action, resourceType, detail, ip)
	if err != nil {
		s.logger.Error("Failed to build audit entry",
			zap.String("action", string(action)),
			zap.Error(err))
		return
	}
	s.append(ctx, entry)
}

func (s *Service) append(ctx context.Context, entry *audit.Entry) {
	if err := s.repo.Append(ctx, entry); err != nil {
		s.logger.Error("Failed to append audit entry",
			zap.String("action", string(entry.Action)),
			zap.Error(err))
	}
}

// List returns entries matching the filter, newest first
func (s *Service) List(ctx context.Context, filter audit.Filter) ([]*audit.Entry, int64, error) {
	return s.repo.FindAll(ctx, filter)
}

// Get returns a single entry by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*audit.Entry, error) {
	return s.repo.FindByID(ctx, id)
}
