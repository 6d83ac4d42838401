package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/greenclub/backend/internal/domain/content"
)

// PostModel is the persistence model for the Post domain entity.
// The Markdown body lives on disk under the post's directory key; the
// database only holds metadata.
type PostModel struct {
	AggregateModel
	Title       string             `gorm:"type:varchar(300);not null"`
	Slug        string             `gorm:"type:varchar(200);not null;uniqueIndex"`
	Summary     string             `gorm:"type:varchar(1000)"`
	AuthorID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	Status      content.PostStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	Pinned      bool               `gorm:"not null;default:false"`
	PublishedAt *time.Time         `gorm:"index"`
	DirKey      uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (PostModel) TableName() string {
	return "posts"
}

// ToDomain converts the persistence model to a domain Post entity
func (m *PostModel) ToDomain() *content.Post {
	return &content.Post{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Title:             m.Title,
		Slug:              m.Slug,
		Summary:           m.Summary,
		AuthorID:          m.AuthorID,
		Status:            m.Status,
		Pinned:            m.Pinned,
		PublishedAt:       m.PublishedAt,
		DirKey:            m.DirKey,
	}
}

// FromDomain populates the persistence model from a domain Post entity
func (m *PostModel) FromDomain(post *content.Post) {
	m.FromDomainAggregateRoot(post.BaseAggregateRoot)
	m.Title = post.Title
	m.Slug = post.Slug
	m.Summary = post.Summary
	m.AuthorID = post.AuthorID
	m.Status = post.Status
	m.Pinned = post.Pinned
	m.PublishedAt = post.PublishedAt
	m.DirKey = post.DirKey
}

// PostModelFromDomain creates a new persistence model from a domain Post
func PostModelFromDomain(post *content.Post) *PostModel {
	m := &PostModel{}
	m.FromDomain(post)
	return m
}

// PolicyPageModel is the persistence model for the PolicyPage domain entity
type PolicyPageModel struct {
	AggregateModel
	Slug      string             `gorm:"type:varchar(200);not null;uniqueIndex"`
	Title     string             `gorm:"type:varchar(300);not null"`
	Status    content.PageStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	SortOrder int                `gorm:"not null;default:0"`
	DirKey    uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (PolicyPageModel) TableName() string {
	return "policy_pages"
}

// ToDomain converts the persistence model to a domain PolicyPage entity
func (m *PolicyPageModel) ToDomain() *content.PolicyPage {
	return &content.PolicyPage{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Slug:              m.Slug,
		Title:             m.Title,
		Status:            m.Status,
		SortOrder:         m.SortOrder,
		DirKey:            m.DirKey,
	}
}

// FromDomain populates the persistence model from a domain PolicyPage entity
func (m *PolicyPageModel) FromDomain(page *content.PolicyPage) {
	m.FromDomainAggregateRoot(page.BaseAggregateRoot)
	m.Slug = page.Slug
	m.Title = page.Title
	m.Status = page.Status
	m.SortOrder = page.SortOrder
	m.DirKey = page.DirKey
}

// PolicyPageModelFromDomain creates a new persistence model from a domain PolicyPage
func PolicyPageModelFromDomain(page *content.PolicyPage) *PolicyPageModel {
	m := &PolicyPageModel{}
	m.FromDomain(page)
	return m
}
