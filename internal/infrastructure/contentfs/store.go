// Package contentfs stores post and page bodies on the local file system.
// Each record owns one directory named by its directory key, holding the
// authored Markdown and the rendered HTML.
package contentfs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/greenclub/backend/internal/domain/shared"
)

// Kind selects the subtree under the content root
type Kind string

const (
	KindPost Kind = "posts"
	KindPage Kind = "pages"
)

const (
	markdownFile = "content.md"
	htmlFile     = "content.html"

	dirPerm  = 0755
	filePerm = 0644
)

// StoreConfig contains configuration for the content store
type StoreConfig struct {
	// Root is the base directory for content storage
	Root string
	// Logger for operations
	Logger *zap.Logger
}

// Store reads and writes content directories under a fixed root.
// Directory keys are server-generated UUIDs, so every path is rebuilt
// from its parsed form and checked to stay inside the root.
type Store struct {
	root   string
	logger *zap.Logger
}

// NewStore creates a content store rooted at config.Root, creating the
// per-kind subtrees when they do not exist yet
func NewStore(config *StoreConfig) (*Store, error) {
	if config == nil || config.Root == "" {
		return nil, errors.New("content root is required")
	}

	root, err := filepath.Abs(config.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve content root: %w", err)
	}

	for _, kind := range []Kind{KindPost, KindPage} {
		if err := os.MkdirAll(filepath.Join(root, string(kind)), dirPerm); err != nil {
			return nil, fmt.Errorf("create content directory %s: %w", kind, err)
		}
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{root: root, logger: logger}, nil
}

// Root returns the absolute content root
func (s *Store) Root() string {
	return s.root
}

// dirFor builds the directory path for a record. The key is re-rendered
// from the parsed UUID so user input can never reach the path, and the
// result is still verified against the root.
func (s *Store) dirFor(kind Kind, dirKey uuid.UUID) (string, error) {
	if dirKey == uuid.Nil {
		return "", shared.NewDomainError("INVALID_DIR_KEY", "Directory key must not be empty")
	}

	dir := filepath.Join(s.root, string(kind), dirKey.String())
	if !strings.HasPrefix(filepath.Clean(dir), s.root+string(os.PathSeparator)) {
		return "", shared.NewDomainError("INVALID_DIR_KEY", "Directory key resolves outside the content root")
	}
	return dir, nil
}

// Write stores the markdown and rendered html for a record, creating
// its directory when needed
func (s *Store) Write(ctx context.Context, kind Kind, dirKey uuid.UUID, markdown, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir, err := s.dirFor(kind, dirKey)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create content directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, markdownFile), []byte(markdown), filePerm); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, htmlFile), []byte(html), filePerm); err != nil {
		return fmt.Errorf("write html: %w", err)
	}

	s.logger.Debug("content written",
		zap.String("kind", string(kind)),
		zap.String("dir_key", dirKey.String()),
		zap.Int("markdown_bytes", len(markdown)))
	return nil
}

// ReadMarkdown returns the authored markdown for a record
func (s *Store) ReadMarkdown(ctx context.Context, kind Kind, dirKey uuid.UUID) (string, error) {
	return s.readFile(ctx, kind, dirKey, markdownFile)
}

// ReadHTML returns the rendered html for a record
func (s *Store) ReadHTML(ctx context.Context, kind Kind, dirKey uuid.UUID) (string, error) {
	return s.readFile(ctx, kind, dirKey, htmlFile)
}

func (s *Store) readFile(ctx context.Context, kind Kind, dirKey uuid.UUID, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir, err := s.dirFor(kind, dirKey)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return "", shared.ErrMissingContent
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(data), nil
}

// Exists reports whether a record's directory holds a markdown file
func (s *Store) Exists(ctx context.Context, kind Kind, dirKey uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	dir, err := s.dirFor(kind, dirKey)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(filepath.Join(dir, markdownFile))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// HasHTML reports whether a record's rendered html is present on disk
func (s *Store) HasHTML(ctx context.Context, kind Kind, dirKey uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	dir, err := s.dirFor(kind, dirKey)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(filepath.Join(dir, htmlFile))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes a record's directory and everything in it. Removing a
// directory that is already gone is not an error.
func (s *Store) Remove(ctx context.Context, kind Kind, dirKey uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir, err := s.dirFor(kind, dirKey)
	if err != nil {
		return err
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove content directory: %w", err)
	}

	s.logger.Debug("content removed",
		zap.String("kind", string(kind)),
		zap.String("dir_key", dirKey.String()))
	return nil
}

// ListDirKeys returns the directory keys present on disk for a kind.
// Entries that are not directories or not valid UUIDs are skipped.
func (s *Store) ListDirKeys(ctx context.Context, kind Kind) ([]uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(s.root, string(kind)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan content directory: %w", err)
	}

	keys := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		key, err := uuid.Parse(entry.Name())
		if err != nil {
			s.logger.Warn("skipping non-key directory under content root",
				zap.String("kind", string(kind)),
				zap.String("name", entry.Name()))
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}
