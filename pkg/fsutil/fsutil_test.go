package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttscoff/md-fixup/pkg/fsutil"
)

const sampleDoc = "# Notes\n\n* first\n* second\n\n"

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("returns content and snapshot", func(t *testing.T) {
		t.Parallel()
		path := writeDoc(t, sampleDoc)

		content, snap, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, sampleDoc, string(content))
		require.NotNil(t, snap)
		assert.Equal(t, path, snap.Path)
		assert.Equal(t, int64(len(sampleDoc)), snap.Size)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "absent.md"))
		assert.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()
		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		assert.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := fsutil.ReadFile(ctx, writeDoc(t, sampleDoc))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSnapshotModified(t *testing.T) {
	t.Parallel()

	t.Run("untouched file", func(t *testing.T) {
		t.Parallel()
		path := writeDoc(t, sampleDoc)
		_, snap, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		modified, err := snap.Modified(context.Background())
		require.NoError(t, err)
		assert.False(t, modified)
	})

	t.Run("content rewritten", func(t *testing.T) {
		t.Parallel()
		path := writeDoc(t, sampleDoc)
		_, snap, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("# Notes\n\n* edited\n"), 0o644))

		modified, err := snap.Modified(context.Background())
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("same size and mtime different bytes", func(t *testing.T) {
		t.Parallel()
		path := writeDoc(t, sampleDoc)
		_, snap, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		// Swap two bytes and restore the mtime so only the hash tier
		// can catch the edit.
		altered := []byte(sampleDoc)
		altered[2], altered[3] = altered[3], altered[2]
		require.NoError(t, os.WriteFile(path, altered, 0o644))
		require.NoError(t, os.Chtimes(path, snap.ModTime, snap.ModTime))

		modified, err := snap.Modified(context.Background())
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("deleted file counts as modified", func(t *testing.T) {
		t.Parallel()
		path := writeDoc(t, sampleDoc)
		_, snap, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		require.NoError(t, os.Remove(path))

		modified, err := snap.Modified(context.Background())
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("nil snapshot", func(t *testing.T) {
		t.Parallel()
		var snap *fsutil.Snapshot
		_, err := snap.Modified(context.Background())
		assert.Error(t, err)
	})
}

func TestSnapshotModTimeCheck(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, sampleDoc)
	_, snap, err := fsutil.ReadFile(context.Background(), path)
	require.NoError(t, err)

	// A bare touch counts as modified: the overwrite is skipped
	// rather than risking a clobber.
	later := snap.ModTime.Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))

	modified, err := snap.Modified(context.Background())
	require.NoError(t, err)
	assert.True(t, modified)
}
