package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ttscoff/md-fixup/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 of 12 files changed (+18 -9), 1 skipped".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesChanged == 0 && stats.FilesErrored == 0 {
		return s.Success.Render("No changes") +
			s.Dim.Render(fmt.Sprintf(" (%d files checked)", stats.FilesProcessed)) + "\n"
	}

	var parts []string

	fileWord := wordFiles
	if stats.FilesChanged == 1 {
		fileWord = wordFile
	}
	parts = append(parts, fmt.Sprintf("%d of %d %s changed",
		stats.FilesChanged, stats.FilesProcessed, fileWord))

	if stats.LinesAdded > 0 || stats.LinesRemoved > 0 {
		parts = append(parts, fmt.Sprintf("(%s %s)",
			s.DiffAdd.Render(fmt.Sprintf("+%d", stats.LinesAdded)),
			s.DiffRemove.Render(fmt.Sprintf("-%d", stats.LinesRemoved))))
	}

	if stats.FilesWritten > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d written", stats.FilesWritten)))
	}

	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d errored", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	// Files
	builder.WriteString("  Files checked:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesChanged > 0 {
		builder.WriteString("  Files changed:   " +
			s.SummaryValue.Render(strconv.Itoa(stats.FilesChanged)) + "\n")
	}

	if stats.FilesWritten > 0 {
		builder.WriteString("  Files written:   " +
			s.Success.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}

	if stats.FilesSkipped > 0 {
		builder.WriteString("  Files skipped:   " +
			s.Warning.Render(strconv.Itoa(stats.FilesSkipped)) + "\n")
	}

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files errored:   " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	if stats.LinesAdded > 0 || stats.LinesRemoved > 0 {
		builder.WriteString("  Lines:           " +
			s.DiffAdd.Render(fmt.Sprintf("+%d", stats.LinesAdded)) + " " +
			s.DiffRemove.Render(fmt.Sprintf("-%d", stats.LinesRemoved)) + "\n")
	}

	if stats.Duration > 0 {
		builder.WriteString("  Duration:        " +
			s.Dim.Render(stats.Duration.Round(time.Millisecond).String()) + "\n")
	}

	builder.WriteString("\n")

	// Overall status
	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Completed with errors"))
	case stats.FilesChanged > 0:
		builder.WriteString(s.SummaryValue.Render("Changes detected"))
	default:
		builder.WriteString(s.Success.Render("All files clean"))
	}
	builder.WriteString("\n")

	return builder.String()
}
