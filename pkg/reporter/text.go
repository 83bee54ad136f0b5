package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"

	"github.com/ttscoff/md-fixup/internal/ui/pretty"
	"github.com/ttscoff/md-fixup/pkg/runner"
)

// TextReporter formats results as one styled line per affected file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to process."))
		}
		return 0, nil
	}

	var changed int

	for _, file := range result.Files {
		displayPath := r.displayPath(file.Path)

		switch {
		case file.Error != nil:
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(displayPath),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
		case file.Skipped:
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(displayPath),
				r.styles.Warning.Render("skipped (modified on disk)"),
			)
		case file.Changed:
			changed++
			fmt.Fprint(r.bw, r.styles.FilePath.Render(displayPath))
			if file.Diff != nil {
				fmt.Fprintf(r.bw, ": %s %s",
					r.styles.DiffAdd.Render(fmt.Sprintf("+%d", file.Diff.Additions)),
					r.styles.DiffRemove.Render(fmt.Sprintf("-%d", file.Diff.Deletions)),
				)
			}
			if file.Written {
				fmt.Fprintf(r.bw, " %s", r.styles.Success.Render("(written)"))
			}
			fmt.Fprintln(r.bw)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return changed, nil
}

// displayPath makes a path relative to the working directory when possible.
func (r *TextReporter) displayPath(path string) string {
	if r.opts.WorkingDir == "" {
		return path
	}
	rel, err := filepath.Rel(r.opts.WorkingDir, path)
	if err != nil {
		return path
	}
	return rel
}
