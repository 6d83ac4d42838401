package content

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/greenclub/backend/internal/domain/shared"
)

// PostStatus represents the publication status of a post
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusArchived  PostStatus = "archived"
)

// Post represents a blog-style article. Metadata lives in the database; the
// Markdown body and its rendered HTML live on disk in a per-post directory
// named by DirKey. DirKey is always generated server-side so user input can
// never influence filesystem paths.
type Post struct {
	shared.BaseAggregateRoot
	Title       string
	Slug        string
	Summary     string
	AuthorID    uuid.UUID
	Status      PostStatus
	Pinned      bool
	PublishedAt *time.Time
	DirKey      uuid.UUID
}

// NewPost creates a new draft post with a fresh directory key
func NewPost(authorID uuid.UUID, title, slug, summary string) (*Post, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}
	if err := validateSummary(summary); err != nil {
		return nil, err
	}

	post := &Post{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(authorID),
		Title:             strings.TrimSpace(title),
		Slug:              slug,
		Summary:           strings.TrimSpace(summary),
		AuthorID:          authorID,
		Status:            PostStatusDraft,
		DirKey:            uuid.New(),
	}

	post.AddDomainEvent(NewPostCreatedEvent(post))

	return post, nil
}

// RecoveredPost re-attaches an orphaned content directory as a draft post.
// The directory key is the existing on-disk directory name.
func RecoveredPost(authorID, dirKey uuid.UUID, title, slug string) (*Post, error) {
	if dirKey == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DIR_KEY", "Directory key cannot be nil")
	}
	post, err := NewPost(authorID, title, slug, "")
	if err != nil {
		return nil, err
	}
	post.DirKey = dirKey
	return post, nil
}

// Update updates the post's metadata
func (p *Post) Update(title, slug, summary string) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	if err := ValidateSlug(slug); err != nil {
		return err
	}
	if err := validateSummary(summary); err != nil {
		return err
	}

	p.Title = strings.TrimSpace(title)
	p.Slug = slug
	p.Summary = strings.TrimSpace(summary)
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewPostUpdatedEvent(p))

	return nil
}

// Publish marks the post as published
func (p *Post) Publish() error {
	if p.Status == PostStatusPublished {
		return shared.NewDomainError("ALREADY_PUBLISHED", "Post is already published")
	}

	now := time.Now()
	p.Status = PostStatusPublished
	if p.PublishedAt == nil {
		p.PublishedAt = &now
	}
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewPostPublishedEvent(p))

	return nil
}

// Archive withdraws the post from the public site
func (p *Post) Archive() error {
	if p.Status == PostStatusArchived {
		return shared.NewDomainError("ALREADY_ARCHIVED", "Post is already archived")
	}

	p.Status = PostStatusArchived
	p.Pinned = false
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewPostArchivedEvent(p))

	return nil
}

// Unarchive returns an archived post to draft
func (p *Post) Unarchive() error {
	if p.Status != PostStatusArchived {
		return shared.NewDomainError("INVALID_STATE", "Only archived posts can be unarchived")
	}

	p.Status = PostStatusDraft
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetPinned pins or unpins the post. Only published posts may be pinned.
func (p *Post) SetPinned(pinned bool) error {
	if pinned && p.Status != PostStatusPublished {
		return shared.NewDomainError("INVALID_STATE", "Only published posts can be pinned")
	}

	p.Pinned = pinned
	p.Touch()
	p.IncrementVersion()

	return nil
}

// IsPublished returns true if the post is publicly visible
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// Validation functions

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidateSlug checks a URL slug: lowercase letters, digits, and single
// hyphens, no leading or trailing hyphen.
func ValidateSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot be empty")
	}
	if len(slug) > 200 {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot exceed 200 characters")
	}
	if !slugRegex.MatchString(slug) {
		return shared.NewDomainError("INVALID_SLUG", "Slug can only contain lowercase letters, digits, and hyphens")
	}
	return nil
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 300 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 300 characters")
	}
	return nil
}

func validateSummary(summary string) error {
	if len(summary) > 1000 {
		return shared.NewDomainError("INVALID_SUMMARY", "Summary cannot exceed 1000 characters")
	}
	return nil
}
