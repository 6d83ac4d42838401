package content

import (
	"context"

	"github.com/google/uuid"
)

// PostRepository defines the interface for post metadata persistence
type PostRepository interface {
	// Create creates a new post record
	Create(ctx context.Context, post *Post) error

	// Update updates an existing post record
	Update(ctx context.Context, post *Post) error

	// Delete deletes a post record by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a post by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Post, error)

	// FindBySlug finds a post by its slug
	FindBySlug(ctx context.Context, slug string) (*Post, error)

	// FindByDirKey finds a post by its content directory key
	FindByDirKey(ctx context.Context, dirKey uuid.UUID) (*Post, error)

	// FindAll returns posts matching the filter with a total count
	FindAll(ctx context.Context, filter PostFilter) ([]*Post, int64, error)

	// ExistsBySlug checks whether a slug is taken
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// AllDirKeys returns the directory keys of every post record.
	// Used by orphan detection to reconcile disk against the database.
	AllDirKeys(ctx context.Context) ([]uuid.UUID, error)
}

// PostFilter contains filter options for querying posts
type PostFilter struct {
	// Search keyword for title or summary
	Keyword string

	// Filter by status
	Status *PostStatus

	// Filter by author
	AuthorID *uuid.UUID

	// Only pinned posts
	PinnedOnly bool

	// Pagination
	Page     int
	PageSize int

	// Sorting
	SortBy    string
	SortOrder string // "asc" or "desc"
}

// NewPostFilter creates a new PostFilter with default values
func NewPostFilter() PostFilter {
	return PostFilter{
		Page:      1,
		PageSize:  20,
		SortBy:    "created_at",
		SortOrder: "desc",
	}
}

// Offset returns the offset for pagination
func (f PostFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f PostFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}

// PolicyPageRepository defines the interface for policy page persistence
type PolicyPageRepository interface {
	// Create creates a new page record
	Create(ctx context.Context, page *PolicyPage) error

	// Update updates an existing page record
	Update(ctx context.Context, page *PolicyPage) error

	// Delete deletes a page record by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a page by ID
	FindByID(ctx context.Context, id uuid.UUID) (*PolicyPage, error)

	// FindBySlug finds a page by its slug
	FindBySlug(ctx context.Context, slug string) (*PolicyPage, error)

	// FindAll returns all pages ordered by sort order
	FindAll(ctx context.Context) ([]*PolicyPage, error)

	// FindPublished returns published pages ordered by sort order
	FindPublished(ctx context.Context) ([]*PolicyPage, error)

	// ExistsBySlug checks whether a slug is taken
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// AllDirKeys returns the directory keys of every page record
	AllDirKeys(ctx context.Context) ([]uuid.UUID, error)
}
