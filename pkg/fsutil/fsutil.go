// Package fsutil is the file safety layer for rewriting markdown
// documents in place: atomic replacement, sidecar backups, and
// detection of edits that land between reading a document and writing
// the normalized form back.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"time"
)

// Sentinel errors, matched with errors.Is by the CLI's exit-code
// mapping.
var (
	// ErrNotFound indicates the document does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates the document cannot be read.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path names a directory.
	ErrIsDirectory = errors.New("path is a directory")
)

// Snapshot records a document's state at read time. Before an
// overwrite, Modified compares the file on disk against the snapshot
// so an edit made while the run was in flight is never clobbered.
type Snapshot struct {
	// Path is the path the document was read from.
	Path string

	// Mode is the document's permission bits, reapplied on overwrite.
	Mode os.FileMode

	// ModTime and Size are the cheap first-tier modification check.
	ModTime time.Time
	Size    int64

	// Hash is the SHA-256 of the content, the second-tier check.
	Hash [32]byte
}

// ReadFile reads a document and captures its snapshot.
func ReadFile(ctx context.Context, path string) ([]byte, *Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	stat, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	case err != nil:
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	case stat.IsDir():
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
		}
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	return content, &Snapshot{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}, nil
}

// Modified reports whether the document on disk has changed since the
// snapshot was taken. Deletion counts as a modification. Mod time and
// size are checked first; on a match the content is re-hashed, since
// an editor can rewrite a file without changing either.
func (s *Snapshot) Modified(ctx context.Context) (bool, error) {
	if s == nil {
		return false, errors.New("nil snapshot")
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check %s: %w", s.Path, err)
	}

	stat, err := os.Stat(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", s.Path, err)
	}

	if !stat.ModTime().Equal(s.ModTime) || stat.Size() != s.Size {
		return true, nil
	}

	content, err := os.ReadFile(s.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return sha256.Sum256(content) != s.Hash, nil
}
