package contentfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenclub/backend/internal/domain/shared"
)

func newTestStore(t *testing.T) *Store {
	store, err := NewStore(&StoreConfig{Root: t.TempDir()})
	require.NoError(t, err)
	return store
}

func TestNewStore(t *testing.T) {
	t.Run("creates kind subtrees under the root", func(t *testing.T) {
		root := t.TempDir()
		store, err := NewStore(&StoreConfig{Root: root})

		require.NoError(t, err)
		assert.DirExists(t, filepath.Join(store.Root(), "posts"))
		assert.DirExists(t, filepath.Join(store.Root(), "pages"))
	})

	t.Run("rejects empty root", func(t *testing.T) {
		store, err := NewStore(&StoreConfig{})

		assert.Error(t, err)
		assert.Nil(t, store)
	})
}

func TestStore_WriteAndRead(t *testing.T) {
	t.Run("round-trips markdown and html", func(t *testing.T) {
		store := newTestStore(t)
		ctx := context.Background()
		dirKey := uuid.New()

		err := store.Write(ctx, KindPost, dirKey, "# Hello", "<h1>Hello</h1>")
		require.NoError(t, err)

		md, err := store.ReadMarkdown(ctx, KindPost, dirKey)
		require.NoError(t, err)
		assert.Equal(t, "# Hello", md)

		html, err := store.ReadHTML(ctx, KindPost, dirKey)
		require.NoError(t, err)
		assert.Equal(t, "<h1>Hello</h1>", html)
	})

	t.Run("overwrites existing content", func(t *testing.T) {
		store := newTestStore(t)
		ctx := context.Background()
		dirKey := uuid.New()

		require.NoError(t, store.Write(ctx, KindPost, dirKey, "first", "<p>first</p>"))
		require.NoError(t, store.Write(ctx, KindPost, dirKey, "second", "<p>second</p>"))

		md, err := store.ReadMarkdown(ctx, KindPost, dirKey)
		require.NoError(t, err)
		assert.Equal(t, "second", md)
	})

	t.Run("returns missing content error when directory is absent", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.ReadMarkdown(context.Background(), KindPost, uuid.New())

		assert.Equal(t, shared.ErrMissingContent, err)
	})

	t.Run("rejects nil directory key", func(t *testing.T) {
		store := newTestStore(t)

		err := store.Write(context.Background(), KindPost, uuid.Nil, "x", "x")

		assert.Error(t, err)
	})

	t.Run("kinds are isolated", func(t *testing.T) {
		store := newTestStore(t)
		ctx := context.Background()
		dirKey := uuid.New()

		require.NoError(t, store.Write(ctx, KindPost, dirKey, "post body", "<p>post body</p>"))

		_, err := store.ReadMarkdown(ctx, KindPage, dirKey)
		assert.Equal(t, shared.ErrMissingContent, err)
	})
}

func TestStore_Exists(t *testing.T) {
	t.Run("reports presence of markdown", func(t *testing.T) {
		store := newTestStore(t)
		ctx := context.Background()
		dirKey := uuid.New()

		exists, err := store.Exists(ctx, KindPost, dirKey)
		require.NoError(t, err)
		assert.False(t, exists)

		require.NoError(t, store.Write(ctx, KindPost, dirKey, "body", "<p>body</p>"))

		exists, err = store.Exists(ctx, KindPost, dirKey)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("HasHTML is false when only markdown was written", func(t *testing.T) {
		store := newTestStore(t)
		ctx := context.Background()
		dirKey := uuid.New()

		require.NoError(t, store.Write(ctx, KindPost, dirKey, "body", "<p>body</p>"))
		require.NoError(t, os.Remove(filepath.Join(store.Root(), "posts", dirKey.String(), "content.html")))

		hasHTML, err := store.HasHTML(ctx, KindPost, dirKey)
		require.NoError(t, err)
		assert.False(t, hasHTML)

		exists, err := store.Exists(ctx, KindPost, dirKey)
		require.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestStore_Remove(t *testing.T) {
	t.Run("removes the directory", func(t *testing.T) {
		store := newTestStore(t)
		ctx := context.Background()
		dirKey := uuid.New()

		require.NoError(t, store.Write(ctx, KindPost, dirKey, "body", "<p>body</p>"))
		require.NoError(t, store.Remove(ctx, KindPost, dirKey))

		exists, err := store.Exists(ctx, KindPost, dirKey)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("removing an absent directory is not an error", func(t *testing.T) {
		store := newTestStore(t)

		assert.NoError(t, store.Remove(context.Background(), KindPost, uuid.New()))
	})
}

func TestStore_ListDirKeys(t *testing.T) {
	t.Run("returns keys on disk, skipping foreign entries", func(t *testing.T) {
		store := newTestStore(t)
		ctx := context.Background()

		key1 := uuid.New()
		key2 := uuid.New()
		require.NoError(t, store.Write(ctx, KindPost, key1, "a", "<p>a</p>"))
		require.NoError(t, store.Write(ctx, KindPost, key2, "b", "<p>b</p>"))

		// Stray entries that are not key directories
		require.NoError(t, os.MkdirAll(filepath.Join(store.Root(), "posts", "not-a-key"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(store.Root(), "posts", "README"), []byte("x"), 0644))

		keys, err := store.ListDirKeys(ctx, KindPost)

		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{key1, key2}, keys)
	})

	t.Run("empty kind returns no keys", func(t *testing.T) {
		store := newTestStore(t)

		keys, err := store.ListDirKeys(context.Background(), KindPage)

		require.NoError(t, err)
		assert.Empty(t, keys)
	})
}
