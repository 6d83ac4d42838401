package content

import (
	"strings"

	"github.com/google/uuid"

	"github.com/greenclub/backend/internal/domain/shared"
)

// PageStatus represents the publication status of a policy page
type PageStatus string

const (
	PageStatusDraft     PageStatus = "draft"
	PageStatusPublished PageStatus = "published"
)

// PolicyPage represents a static, slug-addressed content page such as the
// club constitution or a privacy policy. Like posts, metadata is stored in
// the database and the Markdown body on disk under the DirKey directory.
type PolicyPage struct {
	shared.BaseAggregateRoot
	Slug      string
	Title     string
	Status    PageStatus
	SortOrder int
	DirKey    uuid.UUID
}

// NewPolicyPage creates a new draft policy page
func NewPolicyPage(createdBy uuid.UUID, slug, title string) (*PolicyPage, error) {
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	page := &PolicyPage{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(createdBy),
		Slug:              slug,
		Title:             strings.TrimSpace(title),
		Status:            PageStatusDraft,
		DirKey:            uuid.New(),
	}

	page.AddDomainEvent(NewPolicyPageCreatedEvent(page))

	return page, nil
}

// Update updates the page's metadata
func (pp *PolicyPage) Update(slug, title string) error {
	if err := ValidateSlug(slug); err != nil {
		return err
	}
	if err := validateTitle(title); err != nil {
		return err
	}

	pp.Slug = slug
	pp.Title = strings.TrimSpace(title)
	pp.Touch()
	pp.IncrementVersion()

	pp.AddDomainEvent(NewPolicyPageUpdatedEvent(pp))

	return nil
}

// Publish makes the page publicly visible
func (pp *PolicyPage) Publish() error {
	if pp.Status == PageStatusPublished {
		return shared.NewDomainError("ALREADY_PUBLISHED", "Page is already published")
	}

	pp.Status = PageStatusPublished
	pp.Touch()
	pp.IncrementVersion()

	pp.AddDomainEvent(NewPolicyPagePublishedEvent(pp))

	return nil
}

// Unpublish returns the page to draft
func (pp *PolicyPage) Unpublish() error {
	if pp.Status == PageStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Page is not published")
	}

	pp.Status = PageStatusDraft
	pp.Touch()
	pp.IncrementVersion()

	return nil
}

// SetSortOrder sets the navigation display order
func (pp *PolicyPage) SetSortOrder(order int) {
	pp.SortOrder = order
	pp.Touch()
	pp.IncrementVersion()
}

// IsPublished returns true if the page is publicly visible
func (pp *PolicyPage) IsPublished() bool {
	return pp.Status == PageStatusPublished
}
