package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ttscoff/md-fixup/pkg/config"
)

// envVarPrefix is the prefix for all md-fixup environment variables.
const envVarPrefix = "MDFIXUP_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"WIDTH":            {field: "width", typ: envTypeInt},
	"OVERWRITE":        {field: "overwrite", typ: envTypeBool},
	"REVERSE_EMPHASIS": {field: "reverse_emphasis", typ: envTypeBool},
	"DRY_RUN":          {field: "dry_run", typ: envTypeBool},
	"FORMAT":           {field: "format", typ: envTypeString},
	"SKIP":             {field: "rules.skip", typ: envTypeSlice},
	"INCLUDE":          {field: "rules.include", typ: envTypeSlice},
	"BACKUPS_ENABLED":  {field: "backups.enabled", typ: envTypeBool},
	"BACKUPS_MODE":     {field: "backups.mode", typ: envTypeString},
	"NO_BACKUPS":       {field: "no_backups", typ: envTypeBool},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MDFIXUP_ (e.g., MDFIXUP_WIDTH).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		parts := parseSliceValue(value)
		return setSliceField(cfg, mapping.field, parts)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "backups.mode":
		cfg.Backups.Mode = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "overwrite":
		cfg.Overwrite = value
	case "reverse_emphasis":
		cfg.ReverseEmphasis = value
	case "dry_run":
		cfg.DryRun = value
	case "backups.enabled":
		cfg.Backups.Enabled = value
	case "no_backups":
		cfg.NoBackups = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "width":
		cfg.Width = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "rules.skip":
		cfg.Rules.Skip = config.SkipList(value)
	case "rules.include":
		cfg.Rules.Include = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// ListEnvVars returns a list of all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"MDFIXUP_WIDTH":            "Wrap width for paragraph and list reflow",
		"MDFIXUP_OVERWRITE":        "Write results back to input files: true or false",
		"MDFIXUP_REVERSE_EMPHASIS": "Reverse emphasis normalization direction: true or false",
		"MDFIXUP_DRY_RUN":          "Dry-run mode: true or false",
		"MDFIXUP_FORMAT":           "Output format: text, diff, or summary",
		"MDFIXUP_SKIP":             "Comma-separated rules to skip (numbers or keywords)",
		"MDFIXUP_INCLUDE":          "Comma-separated rules to re-enable after a skip",
		"MDFIXUP_BACKUPS_ENABLED":  "Enable backups when overwriting: true or false",
		"MDFIXUP_BACKUPS_MODE":     "Backup mode: sidecar or none",
		"MDFIXUP_NO_BACKUPS":       "Disable backups: true or false",
	}
}
