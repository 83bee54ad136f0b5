package runner

import (
	"time"

	"github.com/ttscoff/md-fixup/pkg/diff"
)

// FileOutcome records what happened to a single file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Changed is true if normalization altered the content.
	Changed bool

	// Written is true if the normalized content was written back to disk.
	Written bool

	// Skipped is true if the file was skipped because it changed on disk
	// between read and write.
	Skipped bool

	// Output is the normalized content.
	// May be nil if the file encountered an error during processing.
	Output []byte

	// Diff describes the changes, nil when nothing changed.
	Diff *diff.Diff

	// BackupPath is the sidecar backup created before overwriting, if any.
	BackupPath string

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesChanged is the number of files whose content was altered.
	FilesChanged int

	// FilesWritten is the number of files written back to disk.
	FilesWritten int

	// FilesSkipped is the number of files skipped due to concurrent modification.
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// LinesAdded and LinesRemoved aggregate diff line counts across files.
	LinesAdded   int
	LinesRemoved int

	// Duration is the wall-clock time of the run.
	Duration time.Duration
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasFailures reports whether any file failed to process.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0 || len(r.Errors) > 0
}

// HasChanges reports whether any file content was altered.
func (r *Result) HasChanges() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesChanged > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++

	if outcome.Skipped {
		r.Stats.FilesSkipped++
	}
	if outcome.Changed {
		r.Stats.FilesChanged++
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	}
	if outcome.Diff != nil {
		r.Stats.LinesAdded += outcome.Diff.Additions
		r.Stats.LinesRemoved += outcome.Diff.Deletions
	}
}
