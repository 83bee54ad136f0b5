package normalize

import (
	"regexp"
	"strings"
)

var (
	displayMathRe = regexp.MustCompile(`(?s)\$\$(.*?)\$\$`)
	inlineMathRe  = regexp.MustCompile(`\$([^$]+?)\$`)
	currencyRe    = regexp.MustCompile(`^[\d.,\s]+$`)
)

// normalizeMathSpacing tightens $$...$$ and $...$ spans that sit
// inside a single line. Multi-line display math is handled by the
// block tracker, not here.
func normalizeMathSpacing(text string) string {
	result := displayMathRe.ReplaceAllStringFunc(text, func(m string) string {
		content := m[2 : len(m)-2]
		parts := strings.Split(content, "\n")
		if len(parts) > 1 {
			if strings.TrimSpace(parts[0]) == "" {
				parts = parts[1:]
			}
			if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
				parts = parts[:len(parts)-1]
			}
			if len(parts) > 0 {
				parts[0] = strings.TrimLeft(parts[0], " \t")
				parts[len(parts)-1] = strings.TrimRight(parts[len(parts)-1], " \t")
			}
			return "$$" + strings.Join(parts, "\n") + "$$"
		}
		return "$$" + strings.TrimSpace(content) + "$$"
	})

	// Inline math is normalized conservatively: a closing $ with a
	// space before it and a non-space after it is probably prose
	// (prices, shell variables), and numeric content is left alone so
	// currency amounts keep their spacing.
	matches := inlineMathRe.FindAllStringSubmatchIndex(result, -1)
	if matches == nil {
		return result
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		content := result[m[2]:m[3]]
		b.WriteString(result[last:start])

		spaceBeforeClosing := strings.HasSuffix(content, " ") || strings.HasSuffix(content, "\t")
		nonSpaceAfter := end < len(result) && !isSpaceByte(result[end])
		trimmed := strings.TrimSpace(content)

		switch {
		case spaceBeforeClosing && nonSpaceAfter:
			b.WriteString(result[start:end])
		case currencyRe.MatchString(trimmed):
			b.WriteString("$" + content + "$")
		default:
			b.WriteString("$" + trimmed + "$")
		}
		last = end
	}
	b.WriteString(result[last:])
	return b.String()
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
