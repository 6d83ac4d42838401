package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	auditapp "github.com/greenclub/backend/internal/application/audit"
	"github.com/greenclub/backend/internal/domain/audit"
	"github.com/greenclub/backend/internal/domain/content"
	"github.com/greenclub/backend/internal/domain/shared"
	"github.com/greenclub/backend/internal/infrastructure/contentfs"
)

// PostService coordinates post metadata in the database with the Markdown
// and rendered HTML files in the content store. The database row is the
// source of truth for metadata, the files for the body.
type PostService struct {
	postRepo content.PostRepository
	store    *contentfs.Store
	renderer *contentfs.Renderer
	auditor  *auditapp.Service
	logger   *zap.Logger
}

// NewPostService creates a new post service
func NewPostService(
	postRepo content.PostRepository,
	store *contentfs.Store,
	renderer *contentfs.Renderer,
	auditor *auditapp.Service,
	logger *zap.Logger,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		store:    store,
		renderer: renderer,
		auditor:  auditor,
		logger:   logger,
	}
}

// Create creates a draft post and writes its body to the content store
func (s *PostService) Create(ctx context.Context, input CreatePostInput) (*content.Post, error) {
	taken, err := s.postRepo.ExistsBySlug(ctx, input.Slug)
	if err != nil {
		s.logger.Error("Failed to check post slug uniqueness", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create post")
	}
	if taken {
		return nil, shared.NewDomainError("SLUG_TAKEN", "A post with this slug already exists")
	}

	post, err := content.NewPost(input.AuthorID, input.Title, input.Slug, input.Summary)
	if err != nil {
		return nil, err
	}

	html, err := s.renderer.Render(input.Markdown)
	if err != nil {
		s.logger.Error("Failed to render post markdown", zap.Error(err))
		return nil, shared.NewDomainError("RENDER_FAILED", "Failed to render content")
	}

	if err := s.store.Write(ctx, contentfs.KindPost, post.DirKey, input.Markdown, html); err != nil {
		s.logger.Error("Failed to write post content",
			zap.String("dir_key", post.DirKey.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to store content")
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		// Keep disk and database consistent when the insert fails
		if rmErr := s.store.Remove(ctx, contentfs.KindPost, post.DirKey); rmErr != nil {
			s.logger.Error("Failed to clean up content directory after create failure",
				zap.String("dir_key", post.DirKey.String()),
				zap.Error(rmErr))
		}
		s.logger.Error("Failed to create post", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create post")
	}

	s.auditor.Record(ctx, input.AuthorID, audit.ActionPostCreate, "post", post.ID, post.Title, input.IP)

	return post, nil
}

// Get returns a post with its body read from disk
func (s *PostService) Get(ctx context.Context, id uuid.UUID) (*PostContent, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.loadContent(ctx, post)
}

// GetPublishedBySlug returns a published post with its rendered HTML.
// Unpublished posts are reported as not found to keep drafts invisible.
func (s *PostService) GetPublishedBySlug(ctx context.Context, slug string) (*PostContent, error) {
	post, err := s.postRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !post.IsPublished() {
		return nil, shared.ErrNotFound
	}

	html, err := s.store.ReadHTML(ctx, contentfs.KindPost, post.DirKey)
	if err != nil {
		return nil, err
	}

	return &PostContent{Post: post, HTML: html}, nil
}

// List returns posts matching the filter
func (s *PostService) List(ctx context.Context, filter content.PostFilter) (*PostListResult, error) {
	posts, total, err := s.postRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list posts", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list posts")
	}
	return &PostListResult{
		Posts:    posts,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.Limit(),
	}, nil
}

// Update updates post metadata and, when markdown is supplied, re-renders
// and rewrites the body files
func (s *PostService) Update(ctx context.Context, input UpdatePostInput) (*content.Post, error) {
	post, err := s.postRepo.FindByID(ctx, input.PostID)
	if err != nil {
		return nil, err
	}

	if input.Slug != post.Slug {
		taken, err := s.postRepo.ExistsBySlug(ctx, input.Slug)
		if err != nil {
			s.logger.Error("Failed to check post slug uniqueness", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update post")
		}
		if taken {
			return nil, shared.NewDomainError("SLUG_TAKEN", "A post with this slug already exists")
		}
	}

	if err := post.Update(input.Title, input.Slug, input.Summary); err != nil {
		return nil, err
	}

	if input.Markdown != nil {
		html, err := s.renderer.Render(*input.Markdown)
		if err != nil {
			s.logger.Error("Failed to render post markdown", zap.Error(err))
			return nil, shared.NewDomainError("RENDER_FAILED", "Failed to render content")
		}
		if err := s.store.Write(ctx, contentfs.KindPost, post.DirKey, *input.Markdown, html); err != nil {
			s.logger.Error("Failed to write post content",
				zap.String("dir_key", post.DirKey.String()),
				zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to store content")
		}
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("Failed to update post", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update post")
	}

	s.auditor.Record(ctx, input.ActorID, audit.ActionPostUpdate, "post", post.ID, post.Title, input.IP)

	return post, nil
}

// Publish makes the post publicly visible. The body files must exist on
// disk before a post can go live.
func (s *PostService) Publish(ctx context.Context, id, actorID uuid.UUID, ip string) (*content.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.store.Exists(ctx, contentfs.KindPost, post.DirKey)
	if err != nil {
		s.logger.Error("Failed to check post content",
			zap.String("dir_key", post.DirKey.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to publish post")
	}
	if !exists {
		return nil, shared.ErrMissingContent
	}

	if err := post.Publish(); err != nil {
		return nil, err
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		s.logger.Error("Failed to publish post", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to publish post")
	}

	s.auditor.Record(ctx, actorID, audit.ActionPostPublish, "post", post.ID, post.Title, ip)

	return post, nil
}

// Archive withdraws the post from the public site
func (s *PostService) Archive(ctx context.Context, id, actorID uuid.UUID, ip string) (*content.Post, error) {
	return s.transition(ctx, id, actorID, ip, audit.ActionPostArchive, (*content.Post).Archive)
}

// Unarchive returns an archived post to draft
func (s *PostService) Unarchive(ctx context.Context, id, actorID uuid.UUID, ip string) (*content.Post, error) {
	return s.transition(ctx, id, actorID, ip, audit.ActionPostUpdate, (*content.Post).Unarchive)
}

// SetPinned pins or unpins a published post
func (s *PostService) SetPinned(ctx context.Context, id uuid.UUID, pinned bool, actorID uuid.UUID, ip string) (*content.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := post.SetPinned(pinned); err != nil {
		return nil, err
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		s.logger.Error("Failed to update post pin", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update post")
	}

	s.auditor.Record(ctx, actorID, audit.ActionPostUpdate, "post", post.ID,
		fmt.Sprintf("pinned=%t", pinned), ip)

	return post, nil
}

// Delete removes the post record and its content directory
func (s *PostService) Delete(ctx context.Context, id, actorID uuid.UUID, ip string) error {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete post", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete post")
	}

	if err := s.store.Remove(ctx, contentfs.KindPost, post.DirKey); err != nil {
		// The record is gone; the directory will surface in the orphan report
		s.logger.Error("Failed to remove post content directory",
			zap.String("dir_key", post.DirKey.String()),
			zap.Error(err))
	}

	s.auditor.Record(ctx, actorID, audit.ActionPostDelete, "post", post.ID, post.Title, ip)

	return nil
}

func (s *PostService) transition(
	ctx context.Context,
	id, actorID uuid.UUID,
	ip string,
	action audit.Action,
	change func(*content.Post) error,
) (*content.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := change(post); err != nil {
		return nil, err
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		s.logger.Error("Failed to update post status", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update post")
	}

	s.auditor.Record(ctx, actorID, action, "post", post.ID, string(post.Status), ip)

	return post, nil
}

func (s *PostService) loadContent(ctx context.Context, post *content.Post) (*PostContent, error) {
	markdown, err := s.store.ReadMarkdown(ctx, contentfs.KindPost, post.DirKey)
	if err != nil {
		return nil, err
	}

	html, err := s.store.ReadHTML(ctx, contentfs.KindPost, post.DirKey)
	if err != nil && !errors.Is(err, shared.ErrMissingContent) {
		return nil, err
	}

	return &PostContent{Post: post, Markdown: markdown, HTML: html}, nil
}
