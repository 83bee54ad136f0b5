// Package cli provides the Cobra command structure for md-fixup.
package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ttscoff/md-fixup/internal/ui/pretty"
)

// helpStyles is the lipgloss style set for rendered help text. The
// zero value renders everything unstyled, which is the no-color mode.
type helpStyles struct {
	command    lipgloss.Style
	heading    lipgloss.Style
	subcommand lipgloss.Style
	flag       lipgloss.Style
	dim        lipgloss.Style
}

func colorHelpStyles() helpStyles {
	return helpStyles{
		command:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		subcommand: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		flag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders styled usage and help text for the command
// tree.
type HelpFormatter struct {
	styles helpStyles
}

// NewHelpFormatter creates a formatter honoring the --color mode for
// the given output.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	f := &HelpFormatter{}
	if pretty.IsColorEnabled(colorMode, writer) {
		f.styles = colorHelpStyles()
	}
	return f
}

func (h *HelpFormatter) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"styleCommand":            h.styles.command.Render,
		"styleHeading":            h.styles.heading.Render,
		"styleSubcommand":         h.styles.subcommand.Render,
		"styleDim":                h.styles.dim.Render,
		"styleFlagsUsage":         h.styleFlagsUsage,
		"join":                    strings.Join,
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

func (h *HelpFormatter) usageTemplate() string {
	return `{{ styleHeading "Usage:" }}
  {{if .Runnable}}{{ styleCommand .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ styleCommand .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ styleHeading "Aliases:" }}
  {{ styleDim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ styleHeading "Examples:" }}
{{ styleDim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ styleHeading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ styleSubcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ styleHeading "Flags:" }}
{{ styleFlagsUsage .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ styleHeading "Global Flags:" }}
{{ styleFlagsUsage .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ styleCommand (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`
}

func (h *HelpFormatter) helpTemplate() string {
	return `{{if or .Runnable .HasSubCommands}}{{ styleCommand .CommandPath }}{{if .Version}} {{ styleDim .Version }}{{end}}

{{end}}{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}` + h.usageTemplate()
}

// styleFlagsUsage re-renders pflag's FlagUsages output with the flag
// names colored and type indicators dimmed.
func (h *HelpFormatter) styleFlagsUsage(flags interface{}) string {
	src, ok := flags.(interface{ FlagUsages() string })
	if !ok {
		return ""
	}
	usages := src.FlagUsages()
	if usages == "" {
		return ""
	}

	lines := strings.Split(strings.TrimSuffix(usages, "\n"), "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) styleFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if trimmed == "" {
		return line
	}
	indent := line[:len(line)-len(trimmed)]

	// pflag separates the flag spec from its description with a run
	// of spaces.
	spec, desc, found := cutFlagSpec(trimmed)
	if !found {
		return line
	}
	return indent + h.styleFlagSpec(spec) + "   " + desc
}

// cutFlagSpec splits "  -w, --width int   wrap width" into the spec
// and description around the first run of two or more spaces.
func cutFlagSpec(line string) (spec, desc string, found bool) {
	for i := 0; i+1 < len(line); i++ {
		if line[i] != ' ' || line[i+1] != ' ' {
			continue
		}
		rest := strings.TrimLeft(line[i:], " ")
		if rest == "" {
			break
		}
		return strings.TrimRight(line[:i], " "), rest, true
	}
	return "", "", false
}

func (h *HelpFormatter) styleFlagSpec(spec string) string {
	tokens := strings.Fields(spec)
	for i, token := range tokens {
		if strings.HasPrefix(token, "-") {
			name := strings.TrimSuffix(token, ",")
			tokens[i] = h.styles.flag.Render(name)
			if name != token {
				tokens[i] += ","
			}
		} else {
			tokens[i] = h.styles.dim.Render(token)
		}
	}
	return strings.Join(tokens, " ")
}

// ApplyToCommand installs the styled usage and help rendering on cmd
// and its subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.templateFuncs()

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		tmpl, err := template.New("usage").Funcs(funcs).Parse(h.usageTemplate())
		if err != nil {
			return fmt.Errorf("parse usage template: %w", err)
		}
		return tmpl.Execute(command.OutOrStdout(), command)
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		tmpl, err := template.New("help").Funcs(funcs).Parse(h.helpTemplate())
		if err != nil {
			command.PrintErrln(err)
			return
		}
		if err := tmpl.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
