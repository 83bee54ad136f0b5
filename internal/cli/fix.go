package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ttscoff/md-fixup/internal/configloader"
	"github.com/ttscoff/md-fixup/internal/logging"
	"github.com/ttscoff/md-fixup/pkg/config"
	"github.com/ttscoff/md-fixup/pkg/fsutil"
	"github.com/ttscoff/md-fixup/pkg/normalize"
	"github.com/ttscoff/md-fixup/pkg/reporter"
	"github.com/ttscoff/md-fixup/pkg/runner"
)

type fixFlags struct {
	width           int
	output          string
	overwrite       bool
	skip            []string
	include         []string
	diffMode        bool
	dryRun          bool
	format          string
	backup          bool
	noBackup        bool
	reverseEmphasis bool
	jobs            int
}

func newFixCommand() *cobra.Command {
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Normalize Markdown files",
		Long:  fixLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, flags)
		},
	}

	addFixFlags(cmd, flags)

	return cmd
}

const fixLongDescription = `Normalize Markdown files.

By default, fixes all .md and .markdown files in the current directory
and subdirectories, streaming the normalized content to stdout. Specify
paths to fix specific files or directories. With a piped stdin and no
paths, reads the content (or a list of file paths) from stdin.

Examples:
  md-fixup fix README.md             # Normalize to stdout
  md-fixup fix --overwrite docs/     # Rewrite changed files in place
  md-fixup fix --diff README.md      # Show a unified diff
  md-fixup fix --dry-run --overwrite # Report what would change
  md-fixup fix --skip wrap,emoji     # Disable rules by keyword
  md-fixup fix --skip all --include 5,6,7
  cat notes.md | md-fixup fix        # Normalize stdin to stdout`

func runFix(cmd *cobra.Command, args []string, flags *fixFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.IntoContext(ctx, logger)

	// With no path arguments and a piped stdin, the input comes from the
	// pipe: either raw Markdown or a newline-separated list of files.
	var stdinContent []byte
	if len(args) == 0 && isPipedStdin(cmd.InOrStdin()) {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		if paths, ok := looksLikeFileList(data); ok {
			args = paths
		} else if len(bytes.TrimSpace(data)) > 0 {
			stdinContent = data
		}
	}

	finalCfg, workDir, err := loadFixConfig(ctx, cmd, flags)
	if err != nil {
		return err
	}

	engineOpts, err := runner.EngineOptions(finalCfg)
	if err != nil {
		return errors.Join(ErrConfigLoad, err)
	}
	engine := normalize.NewEngine(engineOpts)

	// Raw stdin content bypasses discovery entirely.
	if stdinContent != nil {
		normalized, _ := engine.Normalize(stdinContent)
		if _, err := cmd.OutOrStdout().Write(normalized); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	runOpts := runner.Options{
		Paths:      args,
		WorkingDir: workDir,
		Extensions: runner.DefaultExtensions(),
		Jobs:       flags.jobs,
		Config:     finalCfg,
	}

	logger.Debug("starting fix run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldWidth, finalCfg.Width,
		logging.FieldOverwrite, finalCfg.Overwrite,
	)

	fixRunner := runner.New(engine)

	result, err := fixRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("fix run failed"), err)
	}

	// Reporting modes summarize the run; the default mode streams the
	// normalized content itself.
	if reportMode(cmd, flags, finalCfg) {
		if err := reportFixResult(ctx, cmd, finalCfg, workDir, result); err != nil {
			return err
		}
	} else if err := streamOutcomes(cmd, flags, result); err != nil {
		return err
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrFilesFailed
	}

	return nil
}

// loadFixConfig merges file, environment, and CLI configuration for the
// fix command.
func loadFixConfig(ctx context.Context, cmd *cobra.Command, flags *fixFlags) (*config.Config, string, error) {
	logger := logging.Default()

	cliCfg := config.NewConfig()
	cliCfg.Width = 0
	cliCfg.Backups = config.BackupsConfig{}
	cliCfg.Format = ""

	if cmd.Flags().Changed("width") {
		cliCfg.Width = flags.width
	}
	if cmd.Flags().Changed("skip") {
		cliCfg.Rules.Skip = config.SkipList(flags.skip)
	}
	if cmd.Flags().Changed("include") {
		cliCfg.Rules.Include = flags.include
	}
	cliCfg.Overwrite = flags.overwrite
	cliCfg.ReverseEmphasis = flags.reverseEmphasis
	cliCfg.DryRun = flags.dryRun
	cliCfg.NoBackups = flags.noBackup
	cliCfg.Output = flags.output
	if cmd.Flags().Changed("format") {
		// A bad flag value is a usage error, not a config error.
		format := config.OutputFormat(flags.format)
		if !format.IsValid() {
			return nil, "", fmt.Errorf("%w: invalid format %q (valid: text, diff, summary)",
				ErrUsage, flags.format)
		}
		cliCfg.Format = format
	}
	if flags.diffMode {
		cliCfg.Format = config.FormatDiff
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", errors.Join(ErrConfigLoad, err)
	}

	finalCfg := loadResult.Config

	// Merging only promotes booleans to true; an explicit --flag=false
	// still wins over the config file.
	if cmd.Flags().Changed("overwrite") && !flags.overwrite {
		finalCfg.Overwrite = false
	}
	if cmd.Flags().Changed("reverse-emphasis") && !flags.reverseEmphasis {
		finalCfg.ReverseEmphasis = false
	}
	if cmd.Flags().Changed("backup") {
		finalCfg.Backups.Enabled = flags.backup
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldConfig, loadResult.LoadedFrom)
	}

	return finalCfg, workDir, nil
}

// reportMode reports whether the run should be summarized rather than
// streamed as content.
func reportMode(cmd *cobra.Command, flags *fixFlags, cfg *config.Config) bool {
	return flags.diffMode || cfg.DryRun || cfg.Overwrite || cmd.Flags().Changed("format")
}

func reportFixResult(ctx context.Context, cmd *cobra.Command, cfg *config.Config,
	workDir string, result *runner.Result,
) error {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return errors.Join(ErrUsage, err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowSummary: true,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	return nil
}

// streamOutcomes writes normalized content to stdout, or to --output for
// a single input file.
func streamOutcomes(cmd *cobra.Command, flags *fixFlags, result *runner.Result) error {
	if flags.output != "" && flags.output != "-" {
		if len(result.Files) != 1 {
			return errors.Join(ErrUsage,
				fmt.Errorf("--output requires exactly one input file, got %d", len(result.Files)))
		}
		outcome := result.Files[0]
		if outcome.Error != nil {
			return nil
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if err := fsutil.WriteAtomic(ctx, flags.output, outcome.Output, 0644); err != nil {
			return fmt.Errorf("write %s: %w", flags.output, err)
		}
		return nil
	}

	out := cmd.OutOrStdout()
	for _, outcome := range result.Files {
		if outcome.Error != nil || outcome.Output == nil {
			continue
		}
		if _, err := out.Write(outcome.Output); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	return nil
}

// isPipedStdin reports whether r is the real stdin attached to a pipe
// rather than a terminal.
func isPipedStdin(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		// Test harnesses substitute a buffer; treat it as piped input.
		return r != nil
	}
	if f != os.Stdin {
		return true
	}
	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}

// looksLikeFileList reports whether piped input is a newline-separated
// list of existing files rather than Markdown content.
func looksLikeFileList(data []byte) ([]string, bool) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, false
	}

	var paths []string
	scanner := bufio.NewScanner(strings.NewReader(trimmed))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		info, err := os.Stat(line)
		if err != nil || info.IsDir() {
			return nil, false
		}
		paths = append(paths, line)
	}

	return paths, len(paths) > 0
}

func addFixFlags(cmd *cobra.Command, flags *fixFlags) {
	cmd.Flags().IntVarP(&flags.width, "width", "w", 0, "wrap width for the wrap rule (default 60)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output path for a single input file")
	cmd.Flags().BoolVar(&flags.overwrite, "overwrite", false, "rewrite changed files in place")
	cmd.Flags().StringSliceVar(&flags.skip, "skip", nil,
		"rules to skip, by number or keyword (or 'all')")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil,
		"rules to re-include after --skip all")
	cmd.Flags().BoolVar(&flags.diffMode, "diff", false, "print a unified diff instead of content")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "report changes without writing anything")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, diff, summary")
	cmd.Flags().BoolVar(&flags.backup, "backup", true, "create sidecar backups before overwriting")
	cmd.Flags().BoolVar(&flags.noBackup, "no-backup", false, "disable backup creation")
	cmd.Flags().BoolVar(&flags.reverseEmphasis, "reverse-emphasis", false,
		"swap bold and italic markers")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
}
