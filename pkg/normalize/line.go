// Package normalize implements the markdown normalization engine.
// It rewrites a document's lines into canonical form (heading spacing,
// list markers and numbering, table alignment, emphasis markers, link
// style, emoji shortcodes, whitespace, wrap width) while preserving the
// document's block structure: what is a list, a table, a code block, a
// quote stays exactly that.
package normalize

import (
	"bytes"
	"regexp"
	"strings"
)

// Line is one line of a document: its text without the terminator, plus
// a flag recording whether the terminator was present. Only the final
// line of a file may lack one. Lines are value types; rules produce new
// Line values rather than mutating in place.
type Line struct {
	Text string
	EOL  bool
}

// NewLine returns a terminated line with the given text.
func NewLine(text string) Line {
	return Line{Text: text, EOL: true}
}

// IsBlank reports whether the line contains only whitespace.
func (l Line) IsBlank() bool {
	return strings.TrimSpace(l.Text) == ""
}

// blankLine is the canonical blank line emitted between blocks.
var blankLine = Line{Text: "", EOL: true}

// SplitLines splits raw file content into lines. Carriage returns are
// kept in Text so that rule 1 (line-ending normalization) can be
// toggled independently.
func SplitLines(data []byte) []Line {
	if len(data) == 0 {
		return nil
	}
	parts := bytes.Split(data, []byte("\n"))
	lines := make([]Line, 0, len(parts))
	for i, p := range parts {
		if i == len(parts)-1 {
			if len(p) == 0 {
				break
			}
			lines = append(lines, Line{Text: string(p), EOL: false})
			continue
		}
		lines = append(lines, Line{Text: string(p), EOL: true})
	}
	return lines
}

// JoinLines renders lines back to file content.
func JoinLines(lines []Line) []byte {
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l.Text)
		if l.EOL {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

// LineKind is the tagged classification of a line, computed once and
// consumed by every downstream rule instead of re-scanning the text.
type LineKind int

const (
	KindBlank LineKind = iota
	KindHeading
	KindCodeFence
	KindHorizontalRule
	KindListItem
	KindBlockquote
	KindTableRow
	KindSeparatorRow
	KindMathFence
	KindRefDefinition
	KindParagraph
)

var (
	listItemRe   = regexp.MustCompile(`^(?:[-*+]\s+|[-*+][^\s]|\d+\.\s+)`)
	listMarkerRe = regexp.MustCompile(`^(\s*)([-*+]|\d+\.)(\s*)(.*)$`)
	headingRe    = regexp.MustCompile(`^#+(?:\s|[^\s#])`)
	hruleRe      = regexp.MustCompile(`^[-*_]{3,}$`)
	refDefRe     = regexp.MustCompile(`^(\[[^\]]+\])\s*:\s*(.+)$`)
)

// Classify returns the LineKind for a line of text. Classification is
// shallow and context-free; block state (inside a fence, inside math)
// is tracked separately by the orchestrator.
func Classify(text string) LineKind {
	trimmed := strings.TrimSpace(text)
	switch {
	case trimmed == "":
		return KindBlank
	case IsCodeFence(text):
		return KindCodeFence
	case trimmed == "$$":
		return KindMathFence
	case IsHeading(text):
		return KindHeading
	case IsHorizontalRule(text):
		return KindHorizontalRule
	case IsListItem(text):
		return KindListItem
	case IsBlockquote(text):
		return KindBlockquote
	case IsSeparatorRow(text):
		return KindSeparatorRow
	case IsTableRow(text):
		return KindTableRow
	case refDefRe.MatchString(trimmed):
		return KindRefDefinition
	default:
		return KindParagraph
	}
}

// IsCodeFence reports whether the line opens or closes a fenced code
// block (``` or ~~~).
func IsCodeFence(text string) bool {
	trimmed := strings.TrimSpace(text)
	return strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")
}

// IsListItem reports whether the line is a bulleted or numbered list
// item, with or without a space after the marker.
func IsListItem(text string) bool {
	return listItemRe.MatchString(strings.TrimLeft(text, " \t"))
}

// IsHeading reports whether the line is an ATX heading, including
// malformed ones like "#BadHeader" that rule 4 repairs.
func IsHeading(text string) bool {
	return headingRe.MatchString(strings.TrimSpace(text))
}

// IsHorizontalRule reports whether the line is a horizontal rule.
func IsHorizontalRule(text string) bool {
	return hruleRe.MatchString(strings.TrimSpace(text))
}

// IsBlockquote reports whether the line is a blockquote.
func IsBlockquote(text string) bool {
	return strings.HasPrefix(strings.TrimLeft(text, " \t"), ">")
}

// IsTableRow reports whether the line is a pipe-bearing content row.
// Separator rows are excluded.
func IsTableRow(text string) bool {
	trimmed := strings.TrimSpace(text)
	if !strings.Contains(trimmed, "|") {
		return false
	}
	return !isSeparatorChars(trimmed)
}

// IsSeparatorRow reports whether the line is a table alignment row:
// cells drawn only from ':', '-' and spaces, containing a dash.
func IsSeparatorRow(text string) bool {
	trimmed := strings.TrimSpace(text)
	if !strings.Contains(trimmed, "|") {
		return false
	}
	return isSeparatorChars(trimmed) && strings.Contains(trimmed, "-")
}

func isSeparatorChars(trimmed string) bool {
	for _, r := range trimmed {
		switch r {
		case '|', ':', '-', ' ':
		default:
			return false
		}
	}
	return true
}
