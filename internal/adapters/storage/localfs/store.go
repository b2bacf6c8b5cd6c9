// Package localfs stores proof-of-payment files on the local filesystem.
// Stored paths are opaque references relative to the upload root, so the
// store can later be swapped for an object store without touching callers.
package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/istafrica-dennw/trucks-app/internal/apperrors"
	portsrepo "github.com/istafrica-dennw/trucks-app/internal/core/ports/repositories"
)

type Store struct {
	root string
}

// NewStore creates the upload root if needed and returns the store.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", root, err)
	}
	return &Store{root: root}, nil
}

var _ portsrepo.FileStore = (*Store)(nil)

// Save writes the content under a date-partitioned unique path and returns
// that path. The original filename survives only as a sanitized suffix.
func (s *Store) Save(ctx context.Context, filename string, content io.Reader) (string, error) {
	rel := filepath.Join(
		time.Now().UTC().Format("2006/01"),
		uuid.NewString()+"-"+sanitizeFilename(filename),
	)
	abs := filepath.Join(s.root, rel)

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload subdirectory: %w", err)
	}

	f, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", rel, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(abs)
		return "", fmt.Errorf("failed to write file %s: %w", rel, err)
	}
	return filepath.ToSlash(rel), nil
}

// Open returns a reader for a previously saved path.
func (s *Store) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	abs, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError("stored file not found: " + path)
		}
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	return f, nil
}

// Remove deletes a stored file. A missing file is not an error.
func (s *Store) Remove(ctx context.Context, path string) error {
	abs, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file %s: %w", path, err)
	}
	return nil
}

// resolve rejects paths escaping the upload root.
func (s *Store) resolve(path string) (string, error) {
	abs := filepath.Join(s.root, filepath.FromSlash(path))
	cleanRoot := filepath.Clean(s.root) + string(filepath.Separator)
	if !strings.HasPrefix(abs, cleanRoot) {
		return "", fmt.Errorf("%w: invalid file path", apperrors.ErrValidation)
	}
	return abs, nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
