package configloader

import "github.com/ttscoff/md-fixup/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	// Start with a shallow copy of base
	result := *base

	// Scalars: override overwrites base if set (non-zero value)
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Output != "" {
		result.Output = override.Output
	}

	// Booleans: false is the zero value, so a source can set but not
	// unset these. CLI flags use Changed() checks to express "off".
	if override.Overwrite {
		result.Overwrite = override.Overwrite
	}
	if override.ReverseEmphasis {
		result.ReverseEmphasis = override.ReverseEmphasis
	}
	if override.DryRun {
		result.DryRun = override.DryRun
	}
	if override.NoBackups {
		result.NoBackups = override.NoBackups
	}

	// Backups: merge individual fields
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = override.Backups.Enabled
	}

	// Rule lists: override replaces base entirely if non-nil
	if override.Rules.Skip != nil {
		result.Rules.Skip = override.Rules.Skip
	}
	if override.Rules.Include != nil {
		result.Rules.Include = override.Rules.Include
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
