package configloader

import (
	"fmt"
	"strings"

	"github.com/ttscoff/md-fixup/pkg/config"
	"github.com/ttscoff/md-fixup/pkg/normalize"
)

// minUsableWidth is the smallest wrap width worth warning about rather
// than rejecting. The engine clamps anything smaller.
const minUsableWidth = 20

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.skip").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Width < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "width",
			Value:   cfg.Width,
			Message: "width must not be negative",
		})
	} else if cfg.Width > 0 && cfg.Width < minUsableWidth {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "width",
			Value:   cfg.Width,
			Message: fmt.Sprintf("width below %d is clamped to %d", minUsableWidth, minUsableWidth),
		})
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   string(cfg.Format),
			Message: "format must be text, diff, or summary",
		})
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "backups.mode",
			Value:   cfg.Backups.Mode,
			Message: "backup mode must be sidecar or none",
		})
	}

	// Rule selectors must resolve; the engine's parser is the authority.
	if _, _, err := normalize.ParseRuleSet(cfg.Rules.Skip, cfg.Rules.Include); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "rules",
			Message: err.Error(),
		})
	}

	return result
}
