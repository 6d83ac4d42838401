package content

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	auditapp "github.com/greenclub/backend/internal/application/audit"
	"github.com/greenclub/backend/internal/domain/audit"
	"github.com/greenclub/backend/internal/domain/content"
	"github.com/greenclub/backend/internal/domain/shared"
	"github.com/greenclub/backend/internal/infrastructure/contentfs"
)

// PolicyPageService manages slug-addressed static pages with the same
// file+database split as posts
type PolicyPageService struct {
	pageRepo content.PolicyPageRepository
	store    *contentfs.Store
	renderer *contentfs.Renderer
	auditor  *auditapp.Service
	logger   *zap.Logger
}

// NewPolicyPageService creates a new policy page service
func NewPolicyPageService(
	pageRepo content.PolicyPageRepository,
	store *contentfs.Store,
	renderer *contentfs.Renderer,
	auditor *auditapp.Service,
	logger *zap.Logger,
) *PolicyPageService {
	return &PolicyPageService{
		pageRepo: pageRepo,
		store:    store,
		renderer: renderer,
		auditor:  auditor,
		logger:   logger,
	}
}

// Create creates a draft page and writes its body to the content store
func (s *PolicyPageService) Create(ctx context.Context, input CreatePageInput) (*content.PolicyPage, error) {
	taken, err := s.pageRepo.ExistsBySlug(ctx, input.Slug)
	if err != nil {
		s.logger.Error("Failed to check page slug uniqueness", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create page")
	}
	if taken {
		return nil, shared.NewDomainError("SLUG_TAKEN", "A page with this slug already exists")
	}

	page, err := content.NewPolicyPage(input.ActorID, input.Slug, input.Title)
	if err != nil {
		return nil, err
	}
	page.SetSortOrder(input.SortOrder)

	html, err := s.renderer.Render(input.Markdown)
	if err != nil {
		s.logger.Error("Failed to render page markdown", zap.Error(err))
		return nil, shared.NewDomainError("RENDER_FAILED", "Failed to render content")
	}

	if err := s.store.Write(ctx, contentfs.KindPage, page.DirKey, input.Markdown, html); err != nil {
		s.logger.Error("Failed to write page content",
			zap.String("dir_key", page.DirKey.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to store content")
	}

	if err := s.pageRepo.Create(ctx, page); err != nil {
		if rmErr := s.store.Remove(ctx, contentfs.KindPage, page.DirKey); rmErr != nil {
			s.logger.Error("Failed to clean up content directory after create failure",
				zap.String("dir_key", page.DirKey.String()),
				zap.Error(rmErr))
		}
		s.logger.Error("Failed to create page", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create page")
	}

	s.auditor.Record(ctx, input.ActorID, audit.ActionPageCreate, "policy_page", page.ID, page.Title, input.IP)

	return page, nil
}

// Get returns a page with its body read from disk
func (s *PolicyPageService) Get(ctx context.Context, id uuid.UUID) (*PageContent, error) {
	page, err := s.pageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	markdown, err := s.store.ReadMarkdown(ctx, contentfs.KindPage, page.DirKey)
	if err != nil {
		return nil, err
	}

	html, err := s.store.ReadHTML(ctx, contentfs.KindPage, page.DirKey)
	if err != nil && !errors.Is(err, shared.ErrMissingContent) {
		return nil, err
	}

	return &PageContent{Page: page, Markdown: markdown, HTML: html}, nil
}

// GetPublishedBySlug returns a published page with its rendered HTML
func (s *PolicyPageService) GetPublishedBySlug(ctx context.Context, slug string) (*PageContent, error) {
	page, err := s.pageRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !page.IsPublished() {
		return nil, shared.ErrNotFound
	}

	html, err := s.store.ReadHTML(ctx, contentfs.KindPage, page.DirKey)
	if err != nil {
		return nil, err
	}

	return &PageContent{Page: page, HTML: html}, nil
}

// List returns all pages in navigation order
func (s *PolicyPageService) List(ctx context.Context) ([]*content.PolicyPage, error) {
	pages, err := s.pageRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list pages", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list pages")
	}
	return pages, nil
}

// ListPublished returns published pages in navigation order
func (s *PolicyPageService) ListPublished(ctx context.Context) ([]*content.PolicyPage, error) {
	pages, err := s.pageRepo.FindPublished(ctx)
	if err != nil {
		s.logger.Error("Failed to list published pages", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list pages")
	}
	return pages, nil
}

// Update updates page metadata and, when markdown is supplied, re-renders
// and rewrites the body files
func (s *PolicyPageService) Update(ctx context.Context, input UpdatePageInput) (*content.PolicyPage, error) {
	page, err := s.pageRepo.FindByID(ctx, input.PageID)
	if err != nil {
		return nil, err
	}

	if input.Slug != page.Slug {
		taken, err := s.pageRepo.ExistsBySlug(ctx, input.Slug)
		if err != nil {
			s.logger.Error("Failed to check page slug uniqueness", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update page")
		}
		if taken {
			return nil, shared.NewDomainError("SLUG_TAKEN", "A page with this slug already exists")
		}
	}

	if err := page.Update(input.Slug, input.Title); err != nil {
		return nil, err
	}
	if input.SortOrder != nil {
		page.SetSortOrder(*input.SortOrder)
	}

	if input.Markdown != nil {
		html, err := s.renderer.Render(*input.Markdown)
		if err != nil {
			s.logger.Error("Failed to render page markdown", zap.Error(err))
			return nil, shared.NewDomainError("RENDER_FAILED", "Failed to render content")
		}
		if err := s.store.Write(ctx, contentfs.KindPage, page.DirKey, *input.Markdown, html); err != nil {
			s.logger.Error("Failed to write page content",
				zap.String("dir_key", page.DirKey.String()),
				zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to store content")
		}
	}

	if err := s.pageRepo.Update(ctx, page); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("Failed to update page", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update page")
	}

	s.auditor.Record(ctx, input.ActorID, audit.ActionPageUpdate, "policy_page", page.ID, page.Title, input.IP)

	return page, nil
}

// Publish makes the page publicly visible. The body files must exist on disk.
func (s *PolicyPageService) Publish(ctx context.Context, id, actorID uuid.UUID, ip string) (*content.PolicyPage, error) {
	page, err := s.pageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.store.Exists(ctx, contentfs.KindPage, page.DirKey)
	if err != nil {
		s.logger.Error("Failed to check page content",
			zap.String("dir_key", page.DirKey.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to publish page")
	}
	if !exists {
		return nil, shared.ErrMissingContent
	}

	if err := page.Publish(); err != nil {
		return nil, err
	}

	if err := s.pageRepo.Update(ctx, page); err != nil {
		s.logger.Error("Failed to publish page", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to publish page")
	}

	s.auditor.Record(ctx, actorID, audit.ActionPagePublish, "policy_page", page.ID, page.Title, ip)

	return page, nil
}

// Unpublish returns the page to draft
func (s *PolicyPageService) Unpublish(ctx context.Context, id, actorID uuid.UUID, ip string) (*content.PolicyPage, error) {
	page, err := s.pageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := page.Unpublish(); err != nil {
		return nil, err
	}

	if err := s.pageRepo.Update(ctx, page); err != nil {
		s.logger.Error("Failed to unpublish page", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to unpublish page")
	}

	s.auditor.Record(ctx, actorID, audit.ActionPageUpdate, "policy_page", page.ID, "unpublished", ip)

	return page, nil
}

// Delete removes the page record and its content directory
func (s *PolicyPageService) Delete(ctx context.Context, id, actorID uuid.UUID, ip string) error {
	page, err := s.pageRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.pageRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete page", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete page")
	}

	if err := s.store.Remove(ctx, contentfs.KindPage, page.DirKey); err != nil {
		s.logger.Error("Failed to remove page content directory",
			zap.String("dir_key", page.DirKey.String()),
			zap.Error(err))
	}

	s.auditor.Record(ctx, actorID, audit.ActionPageUpdate, "policy_page", page.ID, "deleted", ip)

	return nil
}
