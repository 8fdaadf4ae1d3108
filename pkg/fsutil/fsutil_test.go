package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wikiparse/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content and metadata", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.wiki")
		require.NoError(t, os.WriteFile(path, []byte("== Title =="), 0o600))

		content, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "== Title ==", string(content))
		assert.Equal(t, path, info.Path)
		assert.EqualValues(t, len(content), info.Size)
		assert.Equal(t, os.FileMode(0o600), info.Mode.Perm())
		assert.Equal(t, fsutil.HashContent(content), info.Key())
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, fsutil.ErrNotFound))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		assert.True(t, errors.Is(err, fsutil.ErrIsDirectory))
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := fsutil.ReadFile(ctx, "anything")
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestHashContent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, fsutil.HashContent([]byte("a")), fsutil.HashContent([]byte("a")))
	assert.NotEqual(t, fsutil.HashContent([]byte("a")), fsutil.HashContent([]byte("b")))
	assert.Len(t, fsutil.HashContent(nil), 64)
}

func TestExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	assert.True(t, fsutil.Exists(dir))
	assert.False(t, fsutil.Exists(filepath.Join(dir, "nope")))
}
