// Package main is the entry point for the md-fixup CLI.
package main

import (
	"errors"
	"os"

	"github.com/ttscoff/md-fixup/internal/cli"
	"github.com/ttscoff/md-fixup/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Build and execute the root command.
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// Don't log ErrFilesFailed - per-file errors were already reported.
		if !errors.Is(err, cli.ErrFilesFailed) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCodeForError(err)
	}

	return cli.ExitSuccess
}
