package content

import (
	"github.com/google/uuid"

	"github.com/greenclub/backend/internal/domain/content"
)

// CreatePostInput contains data for creating a post
type CreatePostInput struct {
	Title    string
	Slug     string
	Summary  string
	Markdown string
	AuthorID uuid.UUID
	IP       string
}

// UpdatePostInput contains data for updating a post. Markdown is optional;
// when nil the files on disk are left untouched.
type UpdatePostInput struct {
	PostID   uuid.UUID
	Title    string
	Slug     string
	Summary  string
	Markdown *string
	ActorID  uuid.UUID
	IP       string
}

// PostContent bundles a post with its body read from disk
type PostContent struct {
	Post     *content.Post
	Markdown string
	HTML     string
}

// PostListResult contains a paginated post listing
type PostListResult struct {
	Posts    []*content.Post
	Total    int64
	Page     int
	PageSize int
}

// CreatePageInput contains data for creating a policy page
type CreatePageInput struct {
	Slug      string
	Title     string
	Markdown  string
	SortOrder int
	ActorID   uuid.UUID
	IP        string
}

// UpdatePageInput contains data for updating a policy page
type UpdatePageInput struct {
	PageID    uuid.UUID
	Slug      string
	Title     string
	Markdown  *string
	SortOrder *int
	ActorID   uuid.UUID
	IP        string
}

// PageContent bundles a policy page with its body read from disk
type PageContent struct {
	Page     *content.PolicyPage
	Markdown string
	HTML     string
}

// OrphanReport reconciles the content root against the database.
// Orphaned keys name directories on disk with no matching record;
// missing entries are records whose directory is gone.
type OrphanReport struct {
	OrphanedPostDirs []uuid.UUID
	OrphanedPageDirs []uuid.UUID
	MissingPosts     []*content.Post
	MissingPages     []*content.PolicyPage
}

// RecoverOrphanInput re-attaches an orphaned post directory as a draft post
type RecoverOrphanInput struct {
	DirKey  uuid.UUID
	Title   string
	Slug    string
	ActorID uuid.UUID
	IP      string
}
