package membership

import (
	"context"

	"github.com/google/uuid"
)

// MemberRepository defines the interface for member persistence
type MemberRepository interface {
	// Create creates a new member
	Create(ctx context.Context, member *Member) error

	// Update updates an existing member
	Update(ctx context.Context, member *Member) error

	// Delete deletes a member by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a member by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Member, error)

	// FindByEmail finds a member by email
	FindByEmail(ctx context.Context, email string) (*Member, error)

	// FindAll returns members matching the filter with a total count
	FindAll(ctx context.Context, filter MemberFilter) ([]*Member, int64, error)

	// ExistsByEmail checks if an email is already registered
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// SaveMemberRoles replaces the member's role assignments
	SaveMemberRoles(ctx context.Context, member *Member) error

	// LoadMemberRoles loads the member's role assignments
	LoadMemberRoles(ctx context.Context, member *Member) error

	// Count returns the total number of members
	Count(ctx context.Context) (int64, error)
}

// MemberFilter contains filter options for querying members
type MemberFilter struct {
	// Search keyword for email or display name
	Keyword string

	// Filter by status
	Status *MemberStatus

	// Filter by role ID
	RoleID *uuid.UUID

	// Pagination
	Page     int
	PageSize int

	// Sorting
	SortBy    string
	SortOrder string // "asc" or "desc"
}

// NewMemberFilter creates a new MemberFilter with default values
func NewMemberFilter() MemberFilter {
	return MemberFilter{
		Page:      1,
		PageSize:  20,
		SortBy:    "created_at",
		SortOrder: "desc",
	}
}

// WithKeyword sets the search keyword
func (f MemberFilter) WithKeyword(keyword string) MemberFilter {
	f.Keyword = keyword
	return f
}

// WithStatus sets the status filter
func (f MemberFilter) WithStatus(status MemberStatus) MemberFilter {
	f.Status = &status
	return f
}

// WithRoleID sets the role ID filter
func (f MemberFilter) WithRoleID(roleID uuid.UUID) MemberFilter {
	f.RoleID = &roleID
	return f
}

// WithPagination sets pagination parameters
func (f MemberFilter) WithPagination(page, pageSize int) MemberFilter {
	f.Page = page
	f.PageSize = pageSize
	return f
}

// Offset returns the offset for pagination
func (f MemberFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f MemberFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
