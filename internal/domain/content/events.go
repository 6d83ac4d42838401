package content

import (
	"github.com/google/uuid"

	"github.com/greenclub/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypePost       = "Post"
	AggregateTypePolicyPage = "PolicyPage"
)

// Event type constants
const (
	EventTypePostCreated         = "PostCreated"
	EventTypePostUpdated         = "PostUpdated"
	EventTypePostPublished       = "PostPublished"
	EventTypePostArchived        = "PostArchived"
	EventTypePostDeleted         = "PostDeleted"
	EventTypePolicyPageCreated   = "PolicyPageCreated"
	EventTypePolicyPageUpdated   = "PolicyPageUpdated"
	EventTypePolicyPagePublished = "PolicyPagePublished"
)

// PostCreatedEvent is published when a new post is created
type PostCreatedEvent struct {
	shared.BaseDomainEvent
	PostID   uuid.UUID `json:"post_id"`
	Slug     string    `json:"slug"`
	AuthorID uuid.UUID `json:"author_id"`
}

// NewPostCreatedEvent creates a new PostCreatedEvent
func NewPostCreatedEvent(post *Post) *PostCreatedEvent {
	return &PostCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePostCreated, AggregateTypePost, post.ID),
		PostID:          post.ID,
		Slug:            post.Slug,
		AuthorID:        post.AuthorID,
	}
}

// PostUpdatedEvent is published when a post's metadata changes
type PostUpdatedEvent struct {
	shared.BaseDomainEvent
	PostID uuid.UUID `json:"post_id"`
	Slug   string    `json:"slug"`
}

// NewPostUpdatedEvent creates a new PostUpdatedEvent
func NewPostUpdatedEvent(post *Post) *PostUpdatedEvent {
	return &PostUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePostUpdated, AggregateTypePost, post.ID),
		PostID:          post.ID,
		Slug:            post.Slug,
	}
}

// PostPublishedEvent is published when a post goes live
type PostPublishedEvent struct {
	shared.BaseDomainEvent
	PostID uuid.UUID `json:"post_id"`
	Slug   string    `json:"slug"`
}

// NewPostPublishedEvent creates a new PostPublishedEvent
func NewPostPublishedEvent(post *Post) *PostPublishedEvent {
	return &PostPublishedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePostPublished, AggregateTypePost, post.ID),
		PostID:          post.ID,
		Slug:            post.Slug,
	}
}

// PostArchivedEvent is published when a post is withdrawn
type PostArchivedEvent struct {
	shared.BaseDomainEvent
	PostID uuid.UUID `json:"post_id"`
}

// NewPostArchivedEvent creates a new PostArchivedEvent
func NewPostArchivedEvent(post *Post) *PostArchivedEvent {
	return &PostArchivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePostArchived, AggregateTypePost, post.ID),
		PostID:          post.ID,
	}
}

// PolicyPageCreatedEvent is published when a policy page is created
type PolicyPageCreatedEvent struct {
	shared.BaseDomainEvent
	PageID uuid.UUID `json:"page_id"`
	Slug   string    `json:"slug"`
}

// NewPolicyPageCreatedEvent creates a new PolicyPageCreatedEvent
func NewPolicyPageCreatedEvent(page *PolicyPage) *PolicyPageCreatedEvent {
	return &PolicyPageCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePolicyPageCreated, AggregateTypePolicyPage, page.ID),
		PageID:          page.ID,
		Slug:            page.Slug,
	}
}

// PolicyPageUpdatedEvent is published when a policy page changes
type PolicyPageUpdatedEvent struct {
	shared.BaseDomainEvent
	PageID uuid.UUID `json:"page_id"`
	Slug   string    `json:"slug"`
}

// NewPolicyPageUpdatedEvent creates a new PolicyPageUpdatedEvent
func NewPolicyPageUpdatedEvent(page *PolicyPage) *PolicyPageUpdatedEvent {
	return &PolicyPageUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePolicyPageUpdated, AggregateTypePolicyPage, page.ID),
		PageID:          page.ID,
		Slug:            page.Slug,
	}
}

// PolicyPagePublishedEvent is published when a policy page goes live
type PolicyPagePublishedEvent struct {
	shared.BaseDomainEvent
	PageID uuid.UUID `json:"page_id"`
	Slug   string    `json:"slug"`
}

// NewPolicyPagePublishedEvent creates a new PolicyPagePublishedEvent
func NewPolicyPagePublishedEvent(page *PolicyPage) *PolicyPagePublishedEvent {
	return &PolicyPagePublishedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePolicyPagePublished, AggregateTypePolicyPage, page.ID),
		PageID:          page.ID,
		Slug:            page.Slug,
	}
}
