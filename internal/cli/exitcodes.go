package cli

import (
	"errors"
	"io/fs"

	"github.com/ttscoff/md-fixup/pkg/runner"
)

// Exit codes for md-fixup.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitRunErrors indicates the run completed but some files failed.
	ExitRunErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Sentinel errors used to map command failures to exit codes.
var (
	// ErrFilesFailed is returned when one or more files could not be processed.
	ErrFilesFailed = errors.New("some files failed")

	// ErrConfigLoad is returned when configuration cannot be loaded or is invalid.
	ErrConfigLoad = errors.New("configuration error")

	// ErrUsage is returned for invalid flags or arguments.
	ErrUsage = errors.New("invalid usage")
)

// ExitCodeFromResult determines the exit code based on a run result.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasFailures() {
		return ExitRunErrors
	}

	return ExitSuccess
}

// ExitCodeForError maps a command error to a process exit code.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfigLoad):
		return ExitConfigError
	case errors.Is(err, ErrFilesFailed):
		return ExitRunErrors
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return ExitIOError
	}

	return ExitRunErrors
}
