package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/ttscoff/md-fixup/internal/logging"
	"github.com/ttscoff/md-fixup/pkg/config"
	"github.com/ttscoff/md-fixup/pkg/diff"
	"github.com/ttscoff/md-fixup/pkg/fsutil"
	"github.com/ttscoff/md-fixup/pkg/normalize"
)

// Runner orchestrates multi-file normalization with a shared engine.
type Runner struct {
	engine *normalize.Engine
}

// New creates a new Runner with the given engine.
func New(engine *normalize.Engine) *Runner {
	return &Runner{engine: engine}
}

// EngineOptions builds engine options from a resolved configuration.
func EngineOptions(cfg *config.Config) (normalize.Options, error) {
	opts := normalize.DefaultOptions()
	if cfg == nil {
		return opts, nil
	}

	rules, flags, err := normalize.ParseRuleSet(cfg.Rules.Skip, cfg.Rules.Include)
	if err != nil {
		return opts, fmt.Errorf("resolve rules: %w", err)
	}

	opts.Rules = rules
	opts.ReverseEmphasis = cfg.ReverseEmphasis
	opts.SkipEmDash = flags.EmDash
	opts.SkipGuillemet = flags.Guillemet
	if cfg.Width > 0 {
		opts.WrapWidth = cfg.Width
	}

	return opts, nil
}

// Run discovers files under opts.Paths and processes them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate stats.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Normalizes files concurrently using a worker pool
//   - Writes changed files back when overwrite mode is on
//   - Aggregates results into a single Result with statistics
//   - Respects context cancellation
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	// Discover files.
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		result.Stats.Duration = time.Since(start)
		return result, nil
	}

	cfg := opts.effectiveConfig()

	// Determine job count.
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	// Don't use more workers than files.
	if jobs > len(files) {
		jobs = len(files)
	}

	// Create channels.
	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	// Start workers.
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, cfg)
		}()
	}

	// Feed work in a separate goroutine.
	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	// Close outCh when all workers are done.
	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Collect results.
	// Use a map to maintain order since workers may complete out of order.
	outcomes := make(map[string]FileOutcome, len(files))

	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	// Build result in deterministic order.
	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	result.Stats.Duration = time.Since(start)

	// Check for context error.
	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	cfg *config.Config,
) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.processFile(ctx, path, cfg)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// processFile runs the full read-normalize-write pipeline for one file.
// Writes only happen in overwrite mode; dry-run stops after the diff.
func (r *Runner) processFile(ctx context.Context, path string, cfg *config.Config) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	output, changed := r.engine.Normalize(content)
	outcome.Output = output
	outcome.Changed = changed

	if changed {
		outcome.Diff = diff.Generate(path, content, output)
	}

	if !cfg.Overwrite || cfg.DryRun || !changed {
		return outcome
	}

	// The file may have changed on disk while we worked on it.
	modified, err := snap.Modified(ctx)
	if err != nil {
		outcome.Error = fmt.Errorf("check modified: %w", err)
		return outcome
	}
	if modified {
		logging.FromContext(ctx).Warn("file changed on disk, skipping overwrite",
			logging.FieldPath, path)
		outcome.Skipped = true
		return outcome
	}

	backupCfg := fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
	created, err := fsutil.CreateBackup(ctx, path, backupCfg)
	if err != nil {
		outcome.Error = fmt.Errorf("create backup: %w", err)
		return outcome
	}
	if created {
		outcome.BackupPath = fsutil.BackupPath(path, backupCfg.Mode)
	}

	if err := fsutil.WriteAtomic(ctx, path, output, snap.Mode); err != nil {
		outcome.Error = fmt.Errorf("write %s: %w", path, err)
		return outcome
	}
	outcome.Written = true

	return outcome
}
