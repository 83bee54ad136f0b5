package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ttscoff/md-fixup/internal/configloader"
	"github.com/ttscoff/md-fixup/internal/logging"
	"github.com/ttscoff/md-fixup/pkg/config"
	"github.com/ttscoff/md-fixup/pkg/normalize"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	local  bool
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter configuration file",
		Long: `Create a starter configuration file with documented defaults.

By default the file is written to the user config directory
($XDG_CONFIG_HOME/md-fixup/config.yml). With --local, a .md-fixup file
is written in the current directory instead.

Examples:
  md-fixup init              Create the user-level config
  md-fixup init --local      Create ./.md-fixup for this project
  md-fixup init --full       Document every rule in the template
  md-fixup init -o conf.yml  Write to a custom path`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVar(&flags.local, "local", false, "write a project-level .md-fixup in the current directory")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "generate full template with all rules documented")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path")

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.NewWriter(os.Stderr, "info")

	outputPath, err := initTargetPath(flags)
	if err != nil {
		return err
	}

	// An existing file needs confirmation unless --force was given.
	force := flags.force
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			if !confirmOverwrite(outputPath) {
				return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
			}
			force = true
		}
	}

	rules := make([]config.RuleInfo, 0, len(normalize.Catalog()))
	for _, r := range normalize.Catalog() {
		rules = append(rules, config.RuleInfo{
			Number:      r.Number,
			Keyword:     r.Keyword,
			Description: r.Description,
			Enabled:     r.Default,
		})
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:  flags.full,
		Rules: rules,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := configloader.WriteConfig(content, outputPath, force); err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'md-fixup rules' to see all available rules")

	return nil
}

// initTargetPath resolves where the new config file should be written.
func initTargetPath(flags *initFlags) (string, error) {
	if flags.output != "" {
		abs, err := filepath.Abs(flags.output)
		if err != nil {
			return "", fmt.Errorf("resolve path: %w", err)
		}
		return abs, nil
	}

	if flags.local {
		abs, err := filepath.Abs(".md-fixup")
		if err != nil {
			return "", fmt.Errorf("resolve path: %w", err)
		}
		return abs, nil
	}

	path := configloader.DefaultUserConfigPath()
	if path == "" {
		return "", fmt.Errorf("cannot resolve user config directory; use --output")
	}
	return path, nil
}

// confirmOverwrite prompts on an interactive terminal; piped runs never
// overwrite silently.
func confirmOverwrite(path string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}

	fmt.Fprintf(os.Stderr, "%s already exists. Overwrite? [y/N] ", path)

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
