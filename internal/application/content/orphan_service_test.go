package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	auditapp "github.com/greenclub/backend/internal/application/audit"
	"github.com/greenclub/backend/internal/domain/content"
	"github.com/greenclub/backend/internal/domain/shared"
	"github.com/greenclub/backend/internal/infrastructure/contentfs"
)

func newTestOrphanService(
	t *testing.T,
	postRepo *MockPostRepository,
	pageRepo *MockPolicyPageRepository,
	auditRepo *MockAuditRepository,
) (*OrphanService, *contentfs.Store) {
	t.Helper()
	store := newTestStore(t)
	auditor := auditapp.NewService(auditRepo, zap.NewNop())
	return NewOrphanService(postRepo, pageRepo, store, contentfs.NewRenderer(), auditor, zap.NewNop()), store
}

func TestOrphanService_Report(t *testing.T) {
	t.Run("finds orphaned directories and missing content", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		pageRepo := new(MockPolicyPageRepository)
		auditRepo := new(MockAuditRepository)
		service, store := newTestOrphanService(t, postRepo, pageRepo, auditRepo)

		ctx := context.Background()

		// A matched post, an orphaned directory, and a record with no files
		matched, err := content.NewPost(uuid.New(), "Matched", "matched", "")
		require.NoError(t, err)
		require.NoError(t, store.Write(ctx, contentfs.KindPost, matched.DirKey, "body", "<p>body</p>"))

		orphanKey := uuid.New()
		require.NoError(t, store.Write(ctx, contentfs.KindPost, orphanKey, "stray", "<p>stray</p>"))

		missing, err := content.NewPost(uuid.New(), "Missing", "missing", "")
		require.NoError(t, err)

		postRepo.On("AllDirKeys", mock.Anything).Return([]uuid.UUID{matched.DirKey, missing.DirKey}, nil)
		postRepo.On("FindByDirKey", mock.Anything, missing.DirKey).Return(missing, nil)

		missingPage, err := content.NewPolicyPage(uuid.New(), "house-rules", "House Rules")
		require.NoError(t, err)
		pageRepo.On("FindAll", mock.Anything).Return([]*content.PolicyPage{missingPage}, nil)

		report, err := service.Report(ctx)
		require.NoError(t, err)

		assert.Equal(t, []uuid.UUID{orphanKey}, report.OrphanedPostDirs)
		require.Len(t, report.MissingPosts, 1)
		assert.Equal(t, missing.ID, report.MissingPosts[0].ID)
		assert.Empty(t, report.OrphanedPageDirs)
		require.Len(t, report.MissingPages, 1)
		assert.Equal(t, missingPage.ID, report.MissingPages[0].ID)
	})

	t.Run("clean tree yields an empty report", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		pageRepo := new(MockPolicyPageRepository)
		auditRepo := new(MockAuditRepository)
		service, _ := newTestOrphanService(t, postRepo, pageRepo, auditRepo)

		postRepo.On("AllDirKeys", mock.Anything).Return([]uuid.UUID{}, nil)
		pageRepo.On("FindAll", mock.Anything).Return([]*content.PolicyPage{}, nil)

		report, err := service.Report(context.Background())
		require.NoError(t, err)
		assert.Empty(t, report.OrphanedPostDirs)
		assert.Empty(t, report.OrphanedPageDirs)
		assert.Empty(t, report.MissingPosts)
		assert.Empty(t, report.MissingPages)
	})
}

func TestOrphanService_RecoverPost(t *testing.T) {
	t.Run("attaches an orphan directory as a draft and rebuilds html", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		pageRepo := new(MockPolicyPageRepository)
		auditRepo := new(MockAuditRepository)
		service, store := newTestOrphanService(t, postRepo, pageRepo, auditRepo)

		ctx := context.Background()
		orphanKey := uuid.New()
		// Markdown survived but the rendered file is gone
		require.NoError(t, store.Write(ctx, contentfs.KindPost, orphanKey, "# Rescued\n\nstill here", "<h1>Rescued</h1>"))
		require.NoError(t, os.Remove(filepath.Join(store.Root(), "posts", orphanKey.String(), "content.html")))

		postRepo.On("FindByDirKey", mock.Anything, orphanKey).Return(nil, shared.ErrNotFound)
		postRepo.On("ExistsBySlug", mock.Anything, "rescued").Return(false, nil)
		postRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		post, err := service.RecoverPost(ctx, RecoverOrphanInput{
			DirKey:  orphanKey,
			Title:   "Rescued",
			Slug:    "rescued",
			ActorID: uuid.New(),
		})

		require.NoError(t, err)
		assert.Equal(t, orphanKey, post.DirKey)
		assert.Equal(t, content.PostStatusDraft, post.Status)

		html, err := store.ReadHTML(ctx, contentfs.KindPost, orphanKey)
		require.NoError(t, err)
		assert.Contains(t, html, "<h1")
	})

	t.Run("refuses a directory that is not orphaned", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		pageRepo := new(MockPolicyPageRepository)
		auditRepo := new(MockAuditRepository)
		service, store := newTestOrphanService(t, postRepo, pageRepo, auditRepo)

		ctx := context.Background()
		owner, err := content.NewPost(uuid.New(), "Owner", "owner", "")
		require.NoError(t, err)
		require.NoError(t, store.Write(ctx, contentfs.KindPost, owner.DirKey, "body", "<p>body</p>"))

		postRepo.On("FindByDirKey", mock.Anything, owner.DirKey).Return(owner, nil)

		_, err = service.RecoverPost(ctx, RecoverOrphanInput{
			DirKey:  owner.DirKey,
			Title:   "Hijack",
			Slug:    "hijack",
			ActorID: uuid.New(),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_ORPHANED", domainErr.Code)
	})

	t.Run("refuses an unknown directory key", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		pageRepo := new(MockPolicyPageRepository)
		auditRepo := new(MockAuditRepository)
		service, _ := newTestOrphanService(t, postRepo, pageRepo, auditRepo)

		_, err := service.RecoverPost(context.Background(), RecoverOrphanInput{
			DirKey:  uuid.New(),
			Title:   "Ghost",
			Slug:    "ghost",
			ActorID: uuid.New(),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ORPHAN_NOT_FOUND", domainErr.Code)
	})
}

func TestOrphanService_Purge(t *testing.T) {
	t.Run("purges an orphaned post directory", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		pageRepo := new(MockPolicyPageRepository)
		auditRepo := new(MockAuditRepository)
		service, store := newTestOrphanService(t, postRepo, pageRepo, auditRepo)

		ctx := context.Background()
		orphanKey := uuid.New()
		require.NoError(t, store.Write(ctx, contentfs.KindPost, orphanKey, "stray", "<p>stray</p>"))

		postRepo.On("FindByDirKey", mock.Anything, orphanKey).Return(nil, shared.ErrNotFound)
		auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		require.NoError(t, service.PurgePost(ctx, orphanKey, uuid.New(), ""))

		exists, err := store.Exists(ctx, contentfs.KindPost, orphanKey)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("refuses to purge a referenced directory", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		pageRepo := new(MockPolicyPageRepository)
		auditRepo := new(MockAuditRepository)
		service, store := newTestOrphanService(t, postRepo, pageRepo, auditRepo)

		ctx := context.Background()
		owner, err := content.NewPost(uuid.New(), "Owner", "owner", "")
		require.NoError(t, err)
		require.NoError(t, store.Write(ctx, contentfs.KindPost, owner.DirKey, "body", "<p>body</p>"))

		postRepo.On("FindByDirKey", mock.Anything, owner.DirKey).Return(owner, nil)

		err = service.PurgePost(ctx, owner.DirKey, uuid.New(), "")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_ORPHANED", domainErr.Code)

		exists, err := store.Exists(ctx, contentfs.KindPost, owner.DirKey)
		require.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestOrphanService_RewritePostHTML(t *testing.T) {
	postRepo := new(MockPostRepository)
	pageRepo := new(MockPolicyPageRepository)
	auditRepo := new(MockAuditRepository)
	service, store := newTestOrphanService(t, postRepo, pageRepo, auditRepo)

	ctx := context.Background()
	post, err := content.NewPost(uuid.New(), "Title", "the-slug", "")
	require.NoError(t, err)
	require.NoError(t, store.Write(ctx, contentfs.KindPost, post.DirKey, "fresh *render*", "stale"))

	postRepo.On("FindByID", mock.Anything, post.ID).Return(post, nil)

	require.NoError(t, service.RewritePostHTML(ctx, post.ID))

	html, err := store.ReadHTML(ctx, contentfs.KindPost, post.DirKey)
	require.NoError(t, err)
	assert.Contains(t, html, "<em>render</em>")
}
