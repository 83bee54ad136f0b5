package fsutil

import (
	"context"
	"fmt"
	"os"
)

// BackupSuffix is appended to a document's path for its sidecar
// backup.
const BackupSuffix = ".md-fixup.bak"

// BackupMode selects where overwrite backups go.
type BackupMode string

const (
	// BackupModeSidecar keeps the backup next to the document as
	// <name>.md-fixup.bak.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupConfig controls backup behavior during --overwrite runs.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// BackupPath returns where the backup for path goes, or "" when
// backups are off. Unknown modes fall back to sidecar.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup copies the document at path to its backup location
// before an overwrite. An existing backup is never replaced: the first
// run of a session captures the original, and later runs on the
// already-normalized file must not overwrite that capture. Reports
// whether a backup was written.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	if !cfg.Enabled || cfg.Mode == BackupModeNone {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("backup %s: %w", path, err)
	}

	backupPath := BackupPath(path, cfg.Mode)
	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read for backup: %w", err)
	}
	stat, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat for backup: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, content, stat.Mode()); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// BackupExists reports whether a backup is present for path.
func BackupExists(path string, mode BackupMode) bool {
	backupPath := BackupPath(path, mode)
	if backupPath == "" {
		return false
	}
	_, err := os.Stat(backupPath)
	return err == nil
}
