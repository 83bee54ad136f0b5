package fsutil_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttscoff/md-fixup/pkg/fsutil"
)

func TestBackupPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "notes.md.md-fixup.bak", fsutil.BackupPath("notes.md", fsutil.BackupModeSidecar))
	assert.Equal(t, "", fsutil.BackupPath("notes.md", fsutil.BackupModeNone))
	assert.Equal(t, "notes.md.md-fixup.bak", fsutil.BackupPath("notes.md", fsutil.BackupMode("bogus")))
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	enabled := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	t.Run("captures the original", func(t *testing.T) {
		t.Parallel()
		path := writeDoc(t, sampleDoc)

		created, err := fsutil.CreateBackup(context.Background(), path, enabled)
		require.NoError(t, err)
		assert.True(t, created)

		got, err := os.ReadFile(path + fsutil.BackupSuffix)
		require.NoError(t, err)
		assert.Equal(t, sampleDoc, string(got))
	})

	t.Run("never replaces an existing backup", func(t *testing.T) {
		t.Parallel()
		path := writeDoc(t, sampleDoc)

		created, err := fsutil.CreateBackup(context.Background(), path, enabled)
		require.NoError(t, err)
		require.True(t, created)

		// Simulate a second run on the already-normalized file.
		require.NoError(t, os.WriteFile(path, []byte("# Notes\n\n* normalized\n\n"), 0o644))

		created, err = fsutil.CreateBackup(context.Background(), path, enabled)
		require.NoError(t, err)
		assert.False(t, created)

		got, err := os.ReadFile(path + fsutil.BackupSuffix)
		require.NoError(t, err)
		assert.Equal(t, sampleDoc, string(got), "first capture must survive later runs")
	})

	t.Run("disabled config is a no-op", func(t *testing.T) {
		t.Parallel()
		path := writeDoc(t, sampleDoc)

		created, err := fsutil.CreateBackup(context.Background(), path,
			fsutil.BackupConfig{Enabled: false, Mode: fsutil.BackupModeSidecar})
		require.NoError(t, err)
		assert.False(t, created)
		assert.NoFileExists(t, path+fsutil.BackupSuffix)
	})

	t.Run("mode none is a no-op", func(t *testing.T) {
		t.Parallel()
		path := writeDoc(t, sampleDoc)

		created, err := fsutil.CreateBackup(context.Background(), path,
			fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeNone})
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("missing original is a no-op", func(t *testing.T) {
		t.Parallel()
		created, err := fsutil.CreateBackup(context.Background(), "/no/such/doc.md", enabled)
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := fsutil.CreateBackup(ctx, writeDoc(t, sampleDoc), enabled)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestBackupExists(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, sampleDoc)
	assert.False(t, fsutil.BackupExists(path, fsutil.BackupModeSidecar))

	_, err := fsutil.CreateBackup(context.Background(), path,
		fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar})
	require.NoError(t, err)

	assert.True(t, fsutil.BackupExists(path, fsutil.BackupModeSidecar))
	assert.False(t, fsutil.BackupExists(path, fsutil.BackupModeNone))
}
