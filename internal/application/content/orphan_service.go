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

// OrphanService reconciles the content root against the database. Crashes
// between a file write and a database write, or manual tampering with the
// content root, can leave directories without records or records without
// directories; this service finds and repairs both.
type OrphanService struct {
	postRepo content.PostRepository
	pageRepo content.PolicyPageRepository
	store    *contentfs.Store
	renderer *contentfs.Renderer
	auditor  *auditapp.Service
	logger   *zap.Logger
}

// NewOrphanService creates a new orphan service
func NewOrphanService(
	postRepo content.PostRepository,
	pageRepo content.PolicyPageRepository,
	store *contentfs.Store,
	renderer *contentfs.Renderer,
	auditor *auditapp.Service,
	logger *zap.Logger,
) *OrphanService {
	return &OrphanService{
		postRepo: postRepo,
		pageRepo: pageRepo,
		store:    store,
		renderer: renderer,
		auditor:  auditor,
		logger:   logger,
	}
}

// Report scans both content subtrees and returns directories with no
// matching record and records whose directory is missing
func (s *OrphanService) Report(ctx context.Context) (*OrphanReport, error) {
	report := &OrphanReport{
		OrphanedPostDirs: []uuid.UUID{},
		OrphanedPageDirs: []uuid.UUID{},
		MissingPosts:     []*content.Post{},
		MissingPages:     []*content.PolicyPage{},
	}

	postDirs, err := s.store.ListDirKeys(ctx, contentfs.KindPost)
	if err != nil {
		s.logger.Error("Failed to scan post content directories", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to scan content root")
	}
	postKeys, err := s.postRepo.AllDirKeys(ctx)
	if err != nil {
		s.logger.Error("Failed to load post directory keys", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to scan content root")
	}

	onDisk := keySet(postDirs)
	inDB := keySet(postKeys)

	for _, key := range postDirs {
		if !inDB[key] {
			report.OrphanedPostDirs = append(report.OrphanedPostDirs, key)
		}
	}
	for _, key := range postKeys {
		if onDisk[key] {
			continue
		}
		post, err := s.postRepo.FindByDirKey(ctx, key)
		if err != nil {
			s.logger.Error("Failed to load post for missing directory",
				zap.String("dir_key", key.String()),
				zap.Error(err))
			continue
		}
		report.MissingPosts = append(report.MissingPosts, post)
	}

	pageDirs, err := s.store.ListDirKeys(ctx, contentfs.KindPage)
	if err != nil {
		s.logger.Error("Failed to scan page content directories", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to scan content root")
	}
	pages, err := s.pageRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to load pages", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to scan content root")
	}

	pageKeys := make(map[uuid.UUID]bool, len(pages))
	pagesOnDisk := keySet(pageDirs)
	for _, page := range pages {
		pageKeys[page.DirKey] = true
		if !pagesOnDisk[page.DirKey] {
			report.MissingPages = append(report.MissingPages, page)
		}
	}
	for _, key := range pageDirs {
		if !pageKeys[key] {
			report.OrphanedPageDirs = append(report.OrphanedPageDirs, key)
		}
	}

	return report, nil
}

// RecoverPost re-attaches an orphaned post directory as a draft post owned
// by the acting member
func (s *OrphanService) RecoverPost(ctx context.Context, input RecoverOrphanInput) (*content.Post, error) {
	exists, err := s.store.Exists(ctx, contentfs.KindPost, input.DirKey)
	if err != nil {
		s.logger.Error("Failed to check orphan directory",
			zap.String("dir_key", input.DirKey.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to recover content")
	}
	if !exists {
		return nil, shared.NewDomainError("ORPHAN_NOT_FOUND", "No content directory with this key exists")
	}

	existing, err := s.postRepo.FindByDirKey(ctx, input.DirKey)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to check directory key", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to recover content")
	}
	if existing != nil {
		return nil, shared.NewDomainError("NOT_ORPHANED", "Directory is already attached to a post")
	}

	taken, err := s.postRepo.ExistsBySlug(ctx, input.Slug)
	if err != nil {
		s.logger.Error("Failed to check post slug uniqueness", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to recover content")
	}
	if taken {
		return nil, shared.NewDomainError("SLUG_TAKEN", "A post with this slug already exists")
	}

	post, err := content.RecoveredPost(input.ActorID, input.DirKey, input.Title, input.Slug)
	if err != nil {
		return nil, err
	}

	// Regenerate the rendered file when only the markdown survived
	if err := s.repairHTML(ctx, contentfs.KindPost, input.DirKey); err != nil {
		return nil, err
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		s.logger.Error("Failed to create recovered post", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to recover content")
	}

	s.auditor.Record(ctx, input.ActorID, audit.ActionPostRecover, "post", post.ID, post.Title, input.IP)

	return post, nil
}

// PurgePost deletes an orphaned post directory from disk. Directories still
// referenced by a record are refused.
func (s *OrphanService) PurgePost(ctx context.Context, dirKey, actorID uuid.UUID, ip string) error {
	return s.purge(ctx, contentfs.KindPost, dirKey, actorID, ip)
}

// PurgePage deletes an orphaned page directory from disk
func (s *OrphanService) PurgePage(ctx context.Context, dirKey, actorID uuid.UUID, ip string) error {
	return s.purge(ctx, contentfs.KindPage, dirKey, actorID, ip)
}

func (s *OrphanService) purge(ctx context.Context, kind contentfs.Kind, dirKey, actorID uuid.UUID, ip string) error {
	exists, err := s.store.Exists(ctx, kind, dirKey)
	if err != nil {
		s.logger.Error("Failed to check orphan directory",
			zap.String("dir_key", dirKey.String()),
			zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to purge content")
	}
	if !exists {
		return shared.NewDomainError("ORPHAN_NOT_FOUND", "No content directory with this key exists")
	}

	referenced, err := s.isReferenced(ctx, kind, dirKey)
	if err != nil {
		return err
	}
	if referenced {
		return shared.NewDomainError("NOT_ORPHANED", "Directory is still attached to a record")
	}

	if err := s.store.Remove(ctx, kind, dirKey); err != nil {
		s.logger.Error("Failed to purge orphan directory",
			zap.String("dir_key", dirKey.String()),
			zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to purge content")
	}

	s.auditor.Record(ctx, actorID, audit.ActionOrphanPurge, "content_dir", dirKey, string(kind), ip)

	return nil
}

// RewritePostHTML regenerates a post's rendered file from its stored markdown
func (s *OrphanService) RewritePostHTML(ctx context.Context, postID uuid.UUID) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	return s.rewriteHTML(ctx, contentfs.KindPost, post.DirKey)
}

// RewritePageHTML regenerates a page's rendered file from its stored markdown
func (s *OrphanService) RewritePageHTML(ctx context.Context, pageID uuid.UUID) error {
	page, err := s.pageRepo.FindByID(ctx, pageID)
	if err != nil {
		return err
	}
	return s.rewriteHTML(ctx, contentfs.KindPage, page.DirKey)
}

// repairHTML renders content.html only when the markdown exists and the
// rendered file does not
func (s *OrphanService) repairHTML(ctx context.Context, kind contentfs.Kind, dirKey uuid.UUID) error {
	hasHTML, err := s.store.HasHTML(ctx, kind, dirKey)
	if err != nil {
		s.logger.Error("Failed to check rendered content", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to repair content")
	}
	if hasHTML {
		return nil
	}
	return s.rewriteHTML(ctx, kind, dirKey)
}

func (s *OrphanService) rewriteHTML(ctx context.Context, kind contentfs.Kind, dirKey uuid.UUID) error {
	markdown, err := s.store.ReadMarkdown(ctx, kind, dirKey)
	if err != nil {
		return err
	}

	html, err := s.renderer.Render(markdown)
	if err != nil {
		s.logger.Error("Failed to render markdown",
			zap.String("dir_key", dirKey.String()),
			zap.Error(err))
		return shared.NewDomainError("RENDER_FAILED", "Failed to render content")
	}

	if err := s.store.Write(ctx, kind, dirKey, markdown, html); err != nil {
		s.logger.Error("Failed to rewrite rendered content",
			zap.String("dir_key", dirKey.String()),
			zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to repair content")
	}

	return nil
}

func (s *OrphanService) isReferenced(ctx context.Context, kind contentfs.Kind, dirKey uuid.UUID) (bool, error) {
	switch kind {
	case contentfs.KindPost:
		_, err := s.postRepo.FindByDirKey(ctx, dirKey)
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		if err != nil {
			s.logger.Error("Failed to check directory key", zap.Error(err))
			return false, shared.NewDomainError("INTERNAL_ERROR", "Failed to purge content")
		}
		return true, nil
	case contentfs.KindPage:
		keys, err := s.pageRepo.AllDirKeys(ctx)
		if err != nil {
			s.logger.Error("Failed to load page directory keys", zap.Error(err))
			return false, shared.NewDomainError("INTERNAL_ERROR", "Failed to purge content")
		}
		for _, key := range keys {
			if key == dirKey {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, shared.NewDomainError("INTERNAL_ERROR", "Unknown content kind")
	}
}

func keySet(keys []uuid.UUID) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(keys))
	for _, key := range keys {
		set[key] = true
	}
	return set
}
