// Package diff computes unified diffs between original and normalized
// file content, for dry-run and diff output modes.
package diff

import (
	"fmt"
	"strings"
)

// contextLines is the number of context lines to show around changes.
const contextLines = 3

// Diff represents a unified diff between original and modified content.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Hunks contains the diff hunks.
	Hunks []Hunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// Hunk represents a single hunk in a unified diff.
type Hunk struct {
	// OriginalStart is the 1-based line number where the hunk starts in the original.
	OriginalStart int

	// OriginalCount is the number of lines from the original in this hunk.
	OriginalCount int

	// ModifiedStart is the 1-based line number where the hunk starts in the modified.
	ModifiedStart int

	// ModifiedCount is the number of lines from the modified in this hunk.
	ModifiedCount int

	// Lines contains the diff lines in this hunk.
	Lines []Line
}

// Line represents a single line in a diff hunk.
type Line struct {
	// Kind indicates whether this is a context, add, or remove line.
	Kind LineKind

	// Content is the line content (without the diff prefix).
	Content string
}

// LineKind indicates the type of diff line.
type LineKind int

const (
	// LineContext is an unchanged context line.
	LineContext LineKind = iota

	// LineAdd is a line added in the modified version.
	LineAdd

	// LineRemove is a line removed from the original version.
	LineRemove
)

// Generate creates a unified diff between original and modified content.
// Returns nil if there are no changes.
func Generate(path string, original, modified []byte) *Diff {
	if len(original) == 0 && len(modified) == 0 {
		return nil
	}

	origLines := splitLines(original)
	modLines := splitLines(modified)

	if linesEqual(origLines, modLines) {
		return nil
	}

	hunks := computeHunks(origLines, modLines)
	if len(hunks) == 0 {
		return nil
	}

	var additions, deletions int
	for _, hunk := range hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineAdd:
				additions++
			case LineRemove:
				deletions++
			}
		}
	}

	return &Diff{
		Path:      path,
		Hunks:     hunks,
		Additions: additions,
		Deletions: deletions,
	}
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String returns the diff in unified diff format (without the git header).
func (d *Diff) String() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)

		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineContext:
				fmt.Fprintf(&builder, " %s\n", line.Content)
			case LineAdd:
				fmt.Fprintf(&builder, "+%s\n", line.Content)
			case LineRemove:
				fmt.Fprintf(&builder, "-%s\n", line.Content)
			}
		}
	}

	return builder.String()
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// splitLines splits content into lines, removing the trailing newline if present.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	lines := strings.Split(string(content), "\n")

	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// linesEqual compares two string slices for equality.
func linesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// computeHunks computes diff hunks using an LCS-based algorithm.
func computeHunks(orig, mod []string) []Hunk {
	lcs := longestCommonSubsequence(orig, mod)

	ops := buildOps(orig, mod, lcs)
	if len(ops) == 0 {
		return nil
	}

	return groupIntoHunks(ops)
}

// op represents a single diff operation.
type op struct {
	kind    LineKind
	content string
}

// buildOps builds a sequence of diff operations from original, modified, and LCS.
func buildOps(orig, mod []string, lcs []string) []op {
	var ops []op
	origIdx, modIdx, lcsIdx := 0, 0, 0

	for origIdx < len(orig) || modIdx < len(mod) {
		// If both match the LCS, it's a context line.
		if lcsIdx < len(lcs) &&
			origIdx < len(orig) && modIdx < len(mod) &&
			orig[origIdx] == lcs[lcsIdx] && mod[modIdx] == lcs[lcsIdx] {
			ops = append(ops, op{kind: LineContext, content: orig[origIdx]})
			origIdx++
			modIdx++
			lcsIdx++
			continue
		}

		// Remove lines from original that aren't in LCS.
		for origIdx < len(orig) && (lcsIdx >= len(lcs) || orig[origIdx] != lcs[lcsIdx]) {
			ops = append(ops, op{kind: LineRemove, content: orig[origIdx]})
			origIdx++
		}

		// Add lines from modified that aren't in LCS.
		for modIdx < len(mod) && (lcsIdx >= len(lcs) || mod[modIdx] != lcs[lcsIdx]) {
			ops = append(ops, op{kind: LineAdd, content: mod[modIdx]})
			modIdx++
		}
	}

	return ops
}

// groupIntoHunks groups diff operations into hunks with context lines.
func groupIntoHunks(ops []op) []Hunk {
	if len(ops) == 0 {
		return nil
	}

	// Find ranges of changes (non-context lines).
	type changeRange struct {
		start, end int // Indices into ops.
	}

	var ranges []changeRange
	inChange := false
	rangeStart := 0

	for opIdx, operation := range ops {
		isChange := operation.kind != LineContext
		if isChange && !inChange {
			rangeStart = opIdx
			inChange = true
		} else if !isChange && inChange {
			ranges = append(ranges, changeRange{rangeStart, opIdx})
			inChange = false
		}
	}
	if inChange {
		ranges = append(ranges, changeRange{rangeStart, len(ops)})
	}

	if len(ranges) == 0 {
		return nil
	}

	// Merge ranges that are close together and build hunks.
	var hunks []Hunk

	for rangeIdx := 0; rangeIdx < len(ranges); {
		mergeEnd := rangeIdx + 1
		for mergeEnd < len(ranges) {
			gap := ranges[mergeEnd].start - ranges[mergeEnd-1].end
			if gap > contextLines*2 {
				break
			}
			mergeEnd++
		}

		hunk := buildHunk(ops, ranges[rangeIdx].start, ranges[mergeEnd-1].end)
		if len(hunk.Lines) > 0 {
			hunks = append(hunks, hunk)
		}

		rangeIdx = mergeEnd
	}

	return hunks
}

// buildHunk builds a single hunk from a range of operations.
func buildHunk(ops []op, changeStart, changeEnd int) Hunk {
	// Expand to include context lines.
	start := changeStart - contextLines
	if start < 0 {
		start = 0
	}
	end := changeEnd + contextLines
	if end > len(ops) {
		end = len(ops)
	}

	hunk := Hunk{}

	// Find original and modified start positions.
	origStart := 1
	modStart := 1
	for opIdx := range start {
		if ops[opIdx].kind != LineAdd {
			origStart++
		}
		if ops[opIdx].kind != LineRemove {
			modStart++
		}
	}
	hunk.OriginalStart = origStart
	hunk.ModifiedStart = modStart

	for i := start; i < end; i++ {
		operation := ops[i]
		hunk.Lines = append(hunk.Lines, Line{
			Kind:    operation.kind,
			Content: operation.content,
		})

		switch operation.kind {
		case LineContext:
			hunk.OriginalCount++
			hunk.ModifiedCount++
		case LineRemove:
			hunk.OriginalCount++
		case LineAdd:
			hunk.ModifiedCount++
		}
	}

	return hunk
}

// longestCommonSubsequence computes the LCS of two string slices.
func longestCommonSubsequence(orig, mod []string) []string {
	origLen, modLen := len(orig), len(mod)
	if origLen == 0 || modLen == 0 {
		return nil
	}

	// Build DP table.
	dp := make([][]int, origLen+1)
	for idx := range dp {
		dp[idx] = make([]int, modLen+1)
	}

	for row := 1; row <= origLen; row++ {
		for col := 1; col <= modLen; col++ {
			if orig[row-1] == mod[col-1] {
				dp[row][col] = dp[row-1][col-1] + 1
			} else {
				dp[row][col] = max(dp[row-1][col], dp[row][col-1])
			}
		}
	}

	// Backtrack to recover the subsequence.
	lcs := make([]string, 0, dp[origLen][modLen])
	row, col := origLen, modLen
	for row > 0 && col > 0 {
		switch {
		case orig[row-1] == mod[col-1]:
			lcs = append(lcs, orig[row-1])
			row--
			col--
		case dp[row-1][col] >= dp[row][col-1]:
			row--
		default:
			col--
		}
	}

	// Reverse in place.
	for i, j := 0, len(lcs)-1; i < j; i, j = i+1, j-1 {
		lcs[i], lcs[j] = lcs[j], lcs[i]
	}

	return lcs
}
