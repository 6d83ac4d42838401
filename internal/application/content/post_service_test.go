package content

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	auditapp "github.com/greenclub/backend/internal/application/audit"
	"github.com/greenclub/backend/internal/domain/audit"
	"github.com/greenclub/backend/internal/domain/content"
	"github.com/greenclub/backend/internal/domain/shared"
	"github.com/greenclub/backend/internal/infrastructure/contentfs"
)

// MockPostRepository is a mock implementation of content.PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *content.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Update(ctx context.Context, post *content.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.Post), args.Error(1)
}

func (m *MockPostRepository) FindBySlug(ctx context.Context, slug string) (*content.Post, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.Post), args.Error(1)
}

func (m *MockPostRepository) FindByDirKey(ctx context.Context, dirKey uuid.UUID) (*content.Post, error) {
	args := m.Called(ctx, dirKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.Post), args.Error(1)
}

func (m *MockPostRepository) FindAll(ctx context.Context, filter content.PostFilter) ([]*content.Post, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*content.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) AllDirKeys(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockPolicyPageRepository is a mock implementation of content.PolicyPageRepository
type MockPolicyPageRepository struct {
	mock.Mock
}

func (m *MockPolicyPageRepository) Create(ctx context.Context, page *content.PolicyPage) error {
	args := m.Called(ctx, page)
	return args.Error(0)
}

func (m *MockPolicyPageRepository) Update(ctx context.Context, page *content.PolicyPage) error {
	args := m.Called(ctx, page)
	return args.Error(0)
}

func (m *MockPolicyPageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPolicyPageRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.PolicyPage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.PolicyPage), args.Error(1)
}

func (m *MockPolicyPageRepository) FindBySlug(ctx context.Context, slug string) (*content.PolicyPage, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.PolicyPage), args.Error(1)
}

func (m *MockPolicyPageRepository) FindAll(ctx context.Context) ([]*content.PolicyPage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*content.PolicyPage), args.Error(1)
}

func (m *MockPolicyPageRepository) FindPublished(ctx context.Context) ([]*content.PolicyPage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*content.PolicyPage), args.Error(1)
}

func (m *MockPolicyPageRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockPolicyPageRepository) AllDirKeys(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockAuditRepository is a mock implementation of audit.Repository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) FindByID(ctx context.Context, id uuid.UUID) (*audit.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audit.Entry), args.Error(1)
}

func (m *MockAuditRepository) FindAll(ctx context.Context, filter audit.Filter) ([]*audit.Entry, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*audit.Entry), args.Get(1).(int64), args.Error(2)
}

func newTestStore(t *testing.T) *contentfs.Store {
	t.Helper()
	store, err := contentfs.NewStore(&contentfs.StoreConfig{
		Root:   t.TempDir(),
		Logger: zap.NewNop(),
	})
	require.NoError(t, err)
	return store
}

func newTestPostService(t *testing.T, postRepo *MockPostRepository, auditRepo *MockAuditRepository) (*PostService, *contentfs.Store) {
	t.Helper()
	store := newTestStore(t)
	auditor := auditapp.NewService(auditRepo, zap.NewNop())
	return NewPostService(postRepo, store, contentfs.NewRenderer(), auditor, zap.NewNop()), store
}

func TestPostService_Create(t *testing.T) {
	t.Run("creates a draft and writes both files", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		auditRepo := new(MockAuditRepository)
		service, store := newTestPostService(t, postRepo, auditRepo)

		postRepo.On("ExistsBySlug", mock.Anything, "spring-open-day").Return(false, nil)
		postRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		post, err := service.Create(context.Background(), CreatePostInput{
			Title:    "Spring Open Day",
			Slug:     "spring-open-day",
			Summary:  "Everyone welcome",
			Markdown: "# Spring Open Day\n\nBring a friend.",
			AuthorID: uuid.New(),
		})

		require.NoError(t, err)
		assert.Equal(t, content.PostStatusDraft, post.Status)
		assert.NotEqual(t, uuid.Nil, post.DirKey)

		markdown, err := store.ReadMarkdown(context.Background(), contentfs.KindPost, post.DirKey)
		require.NoError(t, err)
		assert.Contains(t, markdown, "Bring a friend")

		html, err := store.ReadHTML(context.Background(), contentfs.KindPost, post.DirKey)
		require.NoError(t, err)
		assert.Contains(t, html, "<h1")
	})

	t.Run("rejects a duplicate slug", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		auditRepo := new(MockAuditRepository)
		service, _ := newTestPostService(t, postRepo, auditRepo)

		postRepo.On("ExistsBySlug", mock.Anything, "spring-open-day").Return(true, nil)

		post, err := service.Create(context.Background(), CreatePostInput{
			Title:    "Spring Open Day",
			Slug:     "spring-open-day",
			AuthorID: uuid.New(),
		})

		assert.Nil(t, post)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SLUG_TAKEN", domainErr.Code)
	})

	t.Run("removes the directory when the insert fails", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		auditRepo := new(MockAuditRepository)
		service, store := newTestPostService(t, postRepo, auditRepo)

		postRepo.On("ExistsBySlug", mock.Anything, "spring-open-day").Return(false, nil)
		postRepo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

		_, err := service.Create(context.Background(), CreatePostInput{
			Title:    "Spring Open Day",
			Slug:     "spring-open-day",
			Markdown: "body",
			AuthorID: uuid.New(),
		})
		require.Error(t, err)

		keys, err := store.ListDirKeys(context.Background(), contentfs.KindPost)
		require.NoError(t, err)
		assert.Empty(t, keys)
	})
}

func TestPostService_Update(t *testing.T) {
	t.Run("rewrites the files when markdown changes", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		auditRepo := new(MockAuditRepository)
		service, store := newTestPostService(t, postRepo, auditRepo)

		post, err := content.NewPost(uuid.New(), "Old Title", "old-slug", "")
		require.NoError(t, err)
		require.NoError(t, store.Write(context.Background(), contentfs.KindPost, post.DirKey, "old body", "<p>old body</p>"))

		postRepo.On("FindByID", mock.Anything, post.ID).Return(post, nil)
		postRepo.On("ExistsBySlug", mock.Anything, "new-slug").Return(false, nil)
		postRepo.On("Update", mock.Anything, post).Return(nil)
		auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		markdown := "new **body**"
		updated, err := service.Update(context.Background(), UpdatePostInput{
			PostID:   post.ID,
			Title:    "New Title",
			Slug:     "new-slug",
			Markdown: &markdown,
			ActorID:  uuid.New(),
		})

		require.NoError(t, err)
		assert.Equal(t, "New Title", updated.Title)

		html, err := store.ReadHTML(context.Background(), contentfs.KindPost, post.DirKey)
		require.NoError(t, err)
		assert.Contains(t, html, "<strong>body</strong>")
	})

	t.Run("leaves the files alone when markdown is nil", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		auditRepo := new(MockAuditRepository)
		service, store := newTestPostService(t, postRepo, auditRepo)

		post, err := content.NewPost(uuid.New(), "Title", "the-slug", "")
		require.NoError(t, err)
		require.NoError(t, store.Write(context.Background(), contentfs.KindPost, post.DirKey, "original", "<p>original</p>"))

		postRepo.On("FindByID", mock.Anything, post.ID).Return(post, nil)
		postRepo.On("Update", mock.Anything, post).Return(nil)
		auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		_, err = service.Update(context.Background(), UpdatePostInput{
			PostID:  post.ID,
			Title:   "Renamed",
			Slug:    "the-slug",
			ActorID: uuid.New(),
		})
		require.NoError(t, err)

		markdown, err := store.ReadMarkdown(context.Background(), contentfs.KindPost, post.DirKey)
		require.NoError(t, err)
		assert.Equal(t, "original", markdown)
	})
}

func TestPostService_Publish(t *testing.T) {
	t.Run("publishes when content exists on disk", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		auditRepo := new(MockAuditRepository)
		service, store := newTestPostService(t, postRepo, auditRepo)

		post, err := content.NewPost(uuid.New(), "Title", "the-slug", "")
		require.NoError(t, err)
		require.NoError(t, store.Write(context.Background(), contentfs.KindPost, post.DirKey, "body", "<p>body</p>"))

		postRepo.On("FindByID", mock.Anything, post.ID).Return(post, nil)
		postRepo.On("Update", mock.Anything, post).Return(nil)
		auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		published, err := service.Publish(context.Background(), post.ID, uuid.New(), "")
		require.NoError(t, err)
		assert.Equal(t, content.PostStatusPublished, published.Status)
		assert.NotNil(t, published.PublishedAt)
	})

	t.Run("refuses to publish without content on disk", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		auditRepo := new(MockAuditRepository)
		service, _ := newTestPostService(t, postRepo, auditRepo)

		post, err := content.NewPost(uuid.New(), "Title", "the-slug", "")
		require.NoError(t, err)

		postRepo.On("FindByID", mock.Anything, post.ID).Return(post, nil)

		_, err = service.Publish(context.Background(), post.ID, uuid.New(), "")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "MISSING_CONTENT", domainErr.Code)
		postRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestPostService_GetPublishedBySlug(t *testing.T) {
	t.Run("returns rendered html for a published post", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		auditRepo := new(MockAuditRepository)
		service, store := newTestPostService(t, postRepo, auditRepo)

		post, err := content.NewPost(uuid.New(), "Title", "the-slug", "")
		require.NoError(t, err)
		require.NoError(t, store.Write(context.Background(), contentfs.KindPost, post.DirKey, "body", "<p>body</p>"))
		require.NoError(t, post.Publish())

		postRepo.On("FindBySlug", mock.Anything, "the-slug").Return(post, nil)

		result, err := service.GetPublishedBySlug(context.Background(), "the-slug")
		require.NoError(t, err)
		assert.Equal(t, "<p>body</p>", result.HTML)
	})

	t.Run("hides drafts", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		auditRepo := new(MockAuditRepository)
		service, _ := newTestPostService(t, postRepo, auditRepo)

		post, err := content.NewPost(uuid.New(), "Title", "the-slug", "")
		require.NoError(t, err)

		postRepo.On("FindBySlug", mock.Anything, "the-slug").Return(post, nil)

		_, err = service.GetPublishedBySlug(context.Background(), "the-slug")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestPostService_Delete(t *testing.T) {
	t.Run("removes the record and the directory", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		auditRepo := new(MockAuditRepository)
		service, store := newTestPostService(t, postRepo, auditRepo)

		post, err := content.NewPost(uuid.New(), "Title", "the-slug", "")
		require.NoError(t, err)
		require.NoError(t, store.Write(context.Background(), contentfs.KindPost, post.DirKey, "body", "<p>body</p>"))

		postRepo.On("FindByID", mock.Anything, post.ID).Return(post, nil)
		postRepo.On("Delete", mock.Anything, post.ID).Return(nil)
		auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		require.NoError(t, service.Delete(context.Background(), post.ID, uuid.New(), ""))

		exists, err := store.Exists(context.Background(), contentfs.KindPost, post.DirKey)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestPostService_SetPinned(t *testing.T) {
	t.Run("rejects pinning a draft", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		auditRepo := new(MockAuditRepository)
		service, _ := newTestPostService(t, postRepo, auditRepo)

		post, err := content.NewPost(uuid.New(), "Title", "the-slug", "")
		require.NoError(t, err)

		postRepo.On("FindByID", mock.Anything, post.ID).Return(post, nil)

		_, err = service.SetPinned(context.Background(), post.ID, true, uuid.New(), "")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}
