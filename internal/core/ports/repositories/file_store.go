package repositories

import (
	"context"
	"io"
)

// FileStore abstracts the blob storage used for payment proofs and expense
// receipts. Paths returned by Save are opaque references stored alongside the
// attachment metadata.
type FileStore interface {
	// Save writes the content under a generated path derived from filename and
	// returns that path.
	Save(ctx context.Context, filename string, content io.Reader) (string, error)

	// Open returns a reader for a previously saved path. Returns
	// apperrors.ErrNotFound when the path does not resolve.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Remove deletes the stored file. Removing an absent path is not an error.
	Remove(ctx context.Context, path string) error
}
