package config

import (
	"bytes"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes every rule with its documentation.
	// If false, generates a minimal template.
	Full bool

	// Rules is the rule catalog to document in full templates.
	Rules []RuleInfo
}

// RuleInfo contains rule metadata for template generation.
// The CLI supplies these from the normalization engine's catalog,
// which keeps this package free of engine dependencies.
type RuleInfo struct {
	Number      int
	Keyword     string
	Description string
	Enabled     bool
}

// templateHeader is the comment block at the top of every generated config.
const templateHeader = `# md-fixup configuration
#
# A local .md-fixup in the working directory takes precedence over
# $XDG_CONFIG_HOME/md-fixup/config.yml.
`

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Full {
		return generateFullTemplate(opts)
	}
	return generateMinimalTemplate()
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(templateHeader)
	buf.WriteString(`
# Wrap width for paragraph and list reflow
width: 60

# Write results back to the input files instead of stdout
overwrite: false

# Backup configuration when overwriting
backups:
  enabled: true
  mode: sidecar

# Rule selection: skip disables rules, include re-enables them.
# Entries are rule numbers (1-30) or keywords.
# rules:
#   skip: all
#   include:
#     - wrap
#     - trailing-whitespace
`)

	return buf.Bytes(), nil
}

// generateFullTemplate creates a template documenting every rule.
// All rules are skipped and then re-enabled by keyword, so disabling
// one is a matter of deleting its include line.
func generateFullTemplate(opts TemplateOptions) ([]byte, error) {
	if len(opts.Rules) == 0 {
		return nil, fmt.Errorf("full template requires a rule catalog")
	}

	var buf bytes.Buffer

	buf.WriteString(templateHeader)
	buf.WriteString(`
# Wrap width for paragraph and list reflow
width: 60

# Write results back to the input files instead of stdout
overwrite: false

# Backup configuration when overwriting
backups:
  enabled: true
  mode: sidecar

# Every rule is listed below. Delete an include line to disable that
# rule, or replace the whole block with "skip: [...]" to disable a few.
rules:
  skip: all
  include:
`)

	for _, rule := range opts.Rules {
		comment := wrapComment(rule.Description, commentWrapWidth)
		for _, line := range strings.Split(comment, "\n") {
			buf.WriteString("    # " + line + "\n")
		}
		entry := fmt.Sprintf("    - %s\n", rule.Keyword)
		if !rule.Enabled {
			entry = fmt.Sprintf("    # - %s\n", rule.Keyword)
		}
		buf.WriteString(entry)
	}

	return buf.Bytes(), nil
}

// wrapComment wraps a comment string at the given width.
func wrapComment(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	lines = append(lines, current)

	return strings.Join(lines, "\n")
}
