package normalize

import (
	"regexp"
	"strings"
)

// Emphasis normalization rewrites bold and italic markers to one
// canonical pair: __bold__ and *italic* by default, **bold** and
// _italic_ in reversed mode. Code spans and emoji shortcodes are
// protected; the protected intervals are recomputed between passes
// because each pass shifts byte positions.

var (
	codeSpanRe   = regexp.MustCompile("`+[^`]*`+")
	emojiSpanRe  = regexp.MustCompile(`(?i):[a-z0-9_+-]+:`)
	boldItalicRe = regexp.MustCompile(`([_*]{3})(.+?)([_*]{3})`)
	boldUndRe    = regexp.MustCompile(`__([^_]+?)__`)
	boldStarRe   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italStarRe   = regexp.MustCompile(`\*([^*]+?)\*`)
	italUndRe    = regexp.MustCompile(`_([^_]+?)_`)
)

// span is a half-open byte interval.
type span struct {
	start, end int
}

type spanSet []span

// protectedSpans returns the merged code-span and emoji intervals of
// text, sorted by start.
func protectedSpans(text string) spanSet {
	var spans spanSet
	for _, m := range codeSpanRe.FindAllStringIndex(text, -1) {
		spans = append(spans, span{m[0], m[1]})
	}
	for _, m := range emojiSpanRe.FindAllStringIndex(text, -1) {
		spans = append(spans, span{m[0], m[1]})
	}
	if len(spans) < 2 {
		return spans
	}
	for i := 1; i < len(spans); i++ {
		for j := i; j > 0 && spans[j].start < spans[j-1].start; j-- {
			spans[j], spans[j-1] = spans[j-1], spans[j]
		}
	}
	merged := spans[:1]
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.start <= last.end {
			if s.end > last.end {
				last.end = s.end
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

func (ss spanSet) contains(pos int) bool {
	for _, s := range ss {
		if pos >= s.start && pos < s.end {
			return true
		}
	}
	return false
}

func wordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// intraword reports whether a marker run at [start,end) touches word
// characters on the outside, as in snake_case identifiers. Rewriting
// those would change how the text renders.
func intraword(text string, start, end int) bool {
	if start > 0 && wordByte(text[start-1]) {
		return true
	}
	return end < len(text) && wordByte(text[end])
}

// reverseMarkers returns the marker run reversed, so a closing run
// can be checked against its opening ("**_" closes "_**").
func reverseMarkers(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// normalizeEmphasis rewrites emphasis markers in a single line.
func normalizeEmphasis(text string, reverse bool) string {
	text = normalizeBoldItalic(text, reverse)
	text = normalizeBold(text, reverse)
	return normalizeItalic(text, reverse)
}

// normalizeBoldItalic handles triple-marker runs: any balanced
// three-marker combination collapses to the canonical nested form.
func normalizeBoldItalic(text string, reverse bool) string {
	protected := protectedSpans(text)
	var b strings.Builder
	last := 0
	for _, m := range boldItalicRe.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[0], m[1]
		b.WriteString(text[last:start])
		opening := text[m[2]:m[3]]
		content := text[m[4]:m[5]]
		closing := text[m[6]:m[7]]
		if protected.contains(start) || closing != reverseMarkers(opening) {
			b.WriteString(text[start:end])
		} else if reverse {
			b.WriteString("_**" + content + "**_")
		} else {
			b.WriteString("__*" + content + "*__")
		}
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

// normalizeBold converts the non-canonical bold marker to the
// canonical one, leaving nested bold-italic runs alone.
func normalizeBold(text string, reverse bool) string {
	protected := protectedSpans(text)
	re := boldStarRe
	if reverse {
		re = boldUndRe
	}
	var b strings.Builder
	pos := 0
	for pos < len(text) {
		m := re.FindStringSubmatchIndex(text[pos:])
		if m == nil {
			break
		}
		start, end := pos+m[0], pos+m[1]
		content := text[pos+m[2] : pos+m[3]]
		keep := protected.contains(start) || intraword(text, start, end)
		if !keep {
			if reverse {
				// Part of ___x___ or __*x*__ style runs.
				precededBy := start > 0 && text[start-1] == '_'
				followedBy := end < len(text) && text[end] == '_'
				keep = precededBy || followedBy
			} else {
				precededByStar := start > 0 && text[start-1] == '*'
				followedByStar := end < len(text) && text[end] == '*'
				followedByUnd := end < len(text) && text[end] == '_'
				tripleStart := start+2 < len(text) && text[start+2] == '*'
				keep = precededByStar || (tripleStart && followedByStar) || followedByUnd
			}
		}
		if keep {
			// A kept match must not swallow a later opening
			// delimiter, so resume just past its first byte.
			b.WriteString(text[pos : start+1])
			pos = start + 1
			continue
		}
		b.WriteString(text[pos:start])
		if reverse {
			b.WriteString("**" + content + "**")
		} else {
			b.WriteString("__" + content + "__")
		}
		pos = end
	}
	b.WriteString(text[pos:])
	return b.String()
}

// normalizeItalic converts the non-canonical italic marker to the
// canonical one.
func normalizeItalic(text string, reverse bool) string {
	protected := protectedSpans(text)
	re := italUndRe
	marker := byte('_')
	if reverse {
		re = italStarRe
		marker = '*'
	}
	var b strings.Builder
	pos := 0
	for pos < len(text) {
		m := re.FindStringSubmatchIndex(text[pos:])
		if m == nil {
			break
		}
		start, end := pos+m[0], pos+m[1]
		content := text[pos+m[2] : pos+m[3]]
		precededBy := start > 0 && text[start-1] == marker
		followedBy := end < len(text) && text[end] == marker
		if protected.contains(start) || precededBy || followedBy || intraword(text, start, end) {
			// A kept match must not swallow a later opening
			// delimiter, so resume just past its first byte.
			b.WriteString(text[pos : start+1])
			pos = start + 1
			continue
		}
		b.WriteString(text[pos:start])
		if reverse {
			b.WriteString("_" + content + "_")
		} else {
			b.WriteString("*" + content + "*")
		}
		pos = end
	}
	b.WriteString(text[pos:])
	return b.String()
}
