package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for audit log persistence. The log
// is append-only, so there are no update or delete operations.
type Repository interface {
	// Append writes a new entry to the log
	Append(ctx context.Context, entry *Entry) error

	// FindByID finds an entry by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Entry, error)

	// FindAll returns entries matching the filter, newest first,
	// with a total count
	FindAll(ctx context.Context, filter Filter) ([]*Entry, int64, error)
}

// Filter contains filter options for querying the audit log
type Filter struct {
	// Filter by actor
	ActorID *uuid.UUID

	// Filter by action
	Action *Action

	// Filter by resource
	ResourceType string
	ResourceID   *uuid.UUID

	// Only entries within this range
	From *time.Time
	To   *time.Time

	// Pagination
	Page     int
	PageSize int
}

// NewFilter creates a new Filter with default values
func NewFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 50,
	}
}

// Offset returns the offset for pagination
func (f Filter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f Filter) Limit() int {
	if f.PageSize <= 0 {
		return 50
	}
	if f.PageSize > 200 {
		return 200
	}
	return f.PageSize
}
