// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldWidth     = "width"
	FieldOverwrite = "overwrite"
	FieldBackup    = "backup"
	FieldSkip      = "skip"
	FieldConfig    = "config"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"
	FieldFilesErrored    = "files_errored"
	FieldDuration        = "duration"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule fields.
	FieldRule        = "rule"
	FieldName        = "name"
	FieldEnabled     = "enabled"
	FieldDescription = "description"
)
