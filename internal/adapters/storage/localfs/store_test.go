package localfs

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/istafrica-dennw/trucks-app/internal/apperrors"
)

func TestStore_SaveAndOpen(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.Save(context.Background(), "receipt 1.pdf", strings.NewReader("proof bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "-receipt_1.pdf"), "path = %s", path)

	rc, err := store.Open(context.Background(), path)
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "proof bytes", string(content))
}

func TestStore_OpenMissing(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open(context.Background(), "2025/01/nope.pdf")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStore_RejectsEscapingPath(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open(context.Background(), "../../etc/passwd")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestStore_RemoveIdempotent(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.Save(context.Background(), "receipt.pdf", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(context.Background(), path))
	require.NoError(t, store.Remove(context.Background(), path))
}
