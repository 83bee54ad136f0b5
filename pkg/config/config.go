// Package config defines core configuration types for md-fixup.
// These types are pure data structures with no dependency on the
// normalization engine or any config loader.
package config

// DefaultWidth is the default wrap width for paragraph and list reflow.
const DefaultWidth = 60

// RulesConfig controls which normalization rules run.
// Skip disables rules; Include re-enables rules after a skip
// (most useful together with "all": skip everything, then opt back in).
// Entries may be rule numbers ("14") or keywords ("wrap", "all").
type RulesConfig struct {
	Skip    SkipList `mapstructure:"skip" yaml:"skip,omitempty"`
	Include []string `mapstructure:"include" yaml:"include,omitempty"`
}

// BackupsConfig controls backup behavior when overwriting files.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // "sidecar" or "none"
}

// OutputFormat specifies the output format for results.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the format is a known valid format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatDiff, FormatSummary:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure for md-fixup.
type Config struct {
	// Width is the wrap width for paragraph and list item reflow.
	Width int `mapstructure:"width" yaml:"width"`

	// Overwrite writes results back to the input files instead of stdout.
	Overwrite bool `mapstructure:"overwrite" yaml:"overwrite"`

	// ReverseEmphasis flips the emphasis normalization direction:
	// italic to underscores and bold to asterisks.
	ReverseEmphasis bool `mapstructure:"reverse_emphasis" yaml:"reverse_emphasis,omitempty"`

	// Rules selects which normalization rules run.
	Rules RulesConfig `mapstructure:"rules" yaml:"rules,omitempty"`

	// Backups configures backup behavior when overwriting.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// DryRun reports what would change without writing anything.
	DryRun bool `mapstructure:"-" yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Output is an explicit output path for single-file input.
	Output string `mapstructure:"-" yaml:"-"`

	// NoBackups disables backup creation when overwriting.
	NoBackups bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Width: DefaultWidth,
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format: FormatText,
	}
}
