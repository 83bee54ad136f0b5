package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/ttscoff/md-fixup/internal/ui/pretty"
	"github.com/ttscoff/md-fixup/pkg/runner"
)

// SummaryReporter writes only the aggregate statistics block.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	// Errors appear before the block so they are not lost in the stats.
	for _, file := range result.Files {
		if file.Error == nil {
			continue
		}
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(file.Path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
	}

	fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))

	return result.Stats.FilesChanged, nil
}
