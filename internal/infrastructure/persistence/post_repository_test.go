package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/greenclub/backend/internal/domain/content"
	"github.com/greenclub/backend/internal/domain/shared"
)

// newMockPostRepository creates a GormPostRepository with a mocked SQL connection
func newMockPostRepository(t *testing.T) (*GormPostRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormPostRepository(gormDB), mock, mockDB
}

func TestGormPostRepository_FindByID(t *testing.T) {
	t.Run("finds existing post", func(t *testing.T) {
		repo, mock, mockDB := newMockPostRepository(t)
		defer mockDB.Close()

		postID := uuid.New()
		authorID := uuid.New()
		dirKey := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "title", "slug", "author_id", "status", "pinned", "dir_key"}).
			AddRow(postID, "Club Open Day", "club-open-day", authorID, "published", false, dirKey)

		mock.ExpectQuery(`SELECT \* FROM "posts" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(postID, 1).
			WillReturnRows(rows)

		post, err := repo.FindByID(context.Background(), postID)

		assert.NoError(t, err)
		assert.NotNil(t, post)
		assert.Equal(t, postID, post.ID)
		assert.Equal(t, "club-open-day", post.Slug)
		assert.Equal(t, dirKey, post.DirKey)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent post", func(t *testing.T) {
		repo, mock, mockDB := newMockPostRepository(t)
		defer mockDB.Close()

		postID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "posts" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(postID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		post, err := repo.FindByID(context.Background(), postID)

		assert.Error(t, err)
		assert.Nil(t, post)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPostRepository_FindBySlug(t *testing.T) {
	t.Run("finds post by slug", func(t *testing.T) {
		repo, mock, mockDB := newMockPostRepository(t)
		defer mockDB.Close()

		postID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "title", "slug", "status"}).
			AddRow(postID, "Club Open Day", "club-open-day", "published")

		mock.ExpectQuery(`SELECT \* FROM "posts" WHERE slug = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("club-open-day", 1).
			WillReturnRows(rows)

		post, err := repo.FindBySlug(context.Background(), "club-open-day")

		assert.NoError(t, err)
		assert.Equal(t, postID, post.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for unknown slug", func(t *testing.T) {
		repo, mock, mockDB := newMockPostRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "posts" WHERE slug = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("missing", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		post, err := repo.FindBySlug(context.Background(), "missing")

		assert.Nil(t, post)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormPostRepository_FindByDirKey(t *testing.T) {
	t.Run("finds post by directory key", func(t *testing.T) {
		repo, mock, mockDB := newMockPostRepository(t)
		defer mockDB.Close()

		postID := uuid.New()
		dirKey := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "title", "slug", "dir_key"}).
			AddRow(postID, "Club Open Day", "club-open-day", dirKey)

		mock.ExpectQuery(`SELECT \* FROM "posts" WHERE dir_key = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(dirKey, 1).
			WillReturnRows(rows)

		post, err := repo.FindByDirKey(context.Background(), dirKey)

		assert.NoError(t, err)
		assert.Equal(t, postID, post.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPostRepository_Update(t *testing.T) {
	t.Run("updates existing post", func(t *testing.T) {
		repo, mock, mockDB := newMockPostRepository(t)
		defer mockDB.Close()

		post, err := content.NewPost(uuid.New(), "Club Open Day", "club-open-day", "")
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "posts" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Update(context.Background(), post)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when no rows affected", func(t *testing.T) {
		repo, mock, mockDB := newMockPostRepository(t)
		defer mockDB.Close()

		post, err := content.NewPost(uuid.New(), "Club Open Day", "club-open-day", "")
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "posts" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.Update(context.Background(), post)

		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormPostRepository_Delete(t *testing.T) {
	t.Run("deletes existing post", func(t *testing.T) {
		repo, mock, mockDB := newMockPostRepository(t)
		defer mockDB.Close()

		postID := uuid.New()

		mock.ExpectExec(`DELETE FROM "posts" WHERE id = \$1`).
			WithArgs(postID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), postID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent post", func(t *testing.T) {
		repo, mock, mockDB := newMockPostRepository(t)
		defer mockDB.Close()

		postID := uuid.New()

		mock.ExpectExec(`DELETE FROM "posts" WHERE id = \$1`).
			WithArgs(postID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), postID)

		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormPostRepository_ExistsBySlug(t *testing.T) {
	t.Run("returns true when slug exists", func(t *testing.T) {
		repo, mock, mockDB := newMockPostRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "posts" WHERE slug = \$1`).
			WithArgs("club-open-day").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsBySlug(context.Background(), "club-open-day")

		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("returns false when slug is free", func(t *testing.T) {
		repo, mock, mockDB := newMockPostRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "posts" WHERE slug = \$1`).
			WithArgs("unused").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsBySlug(context.Background(), "unused")

		assert.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestGormPostRepository_AllDirKeys(t *testing.T) {
	t.Run("returns all directory keys", func(t *testing.T) {
		repo, mock, mockDB := newMockPostRepository(t)
		defer mockDB.Close()

		key1 := uuid.New()
		key2 := uuid.New()

		mock.ExpectQuery(`SELECT "dir_key" FROM "posts"`).
			WillReturnRows(sqlmock.NewRows([]string{"dir_key"}).AddRow(key1).AddRow(key2))

		keys, err := repo.AllDirKeys(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, []uuid.UUID{key1, key2}, keys)
	})
}
