package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// shouldPreserveLine reports whether a line is exempt from wrapping:
// fences, headings, horizontal rules and anything pipe-bearing.
// Blank lines are not preserved; they go through blank collapsing.
func shouldPreserveLine(text string) bool {
	trimmed := strings.TrimSpace(text)
	return IsCodeFence(text) ||
		strings.HasPrefix(trimmed, "#") ||
		IsHorizontalRule(text) ||
		strings.Contains(trimmed, "|")
}

// tokenizeForWrap splits text into wrap tokens. Markdown links --
// [text](url) and [text][ref] -- are atomic, with any punctuation
// attached to the closing bracket carried along so a trailing comma
// or period never starts a line. Code spans are ordinary words and
// may break.
func tokenizeForWrap(text string) []string {
	var tokens []string
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			i++
		}
		if i >= len(runes) {
			break
		}
		start := i

		if runes[i] == '[' {
			depth := 1
			i++
			for i < len(runes) && depth > 0 {
				switch runes[i] {
				case '[':
					depth++
				case ']':
					depth--
				}
				i++
			}
			if i < len(runes) && (runes[i] == '(' || runes[i] == '[') {
				closer := ')'
				if runes[i] == '[' {
					closer = ']'
				}
				i++
				for i < len(runes) && runes[i] != closer {
					i++
				}
				if i < len(runes) {
					i++
				}
			}
			for i < len(runes) && !unicode.IsSpace(runes[i]) {
				i++
			}
			tokens = append(tokens, string(runes[start:i]))
			continue
		}

		for i < len(runes) && !unicode.IsSpace(runes[i]) {
			i++
		}
		tokens = append(tokens, string(runes[start:i]))
	}
	return tokens
}

// wrapText greedily wraps text at width, prepending prefix to every
// produced line. Width is measured in characters. A single token
// longer than the width gets its own line rather than being split.
func wrapText(text string, width int, prefix string) []string {
	if utf8.RuneCountInString(prefix+text) <= width {
		return []string{prefix + text}
	}

	words := tokenizeForWrap(text)
	var lines []string
	current := prefix
	for _, word := range words {
		test := current + " " + word
		if current == prefix {
			test = current + word
		}
		if utf8.RuneCountInString(test) <= width {
			current = test
			continue
		}
		if current != prefix {
			lines = append(lines, current)
		}
		current = prefix + word
	}
	if current != prefix {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		return []string{prefix + text}
	}
	return lines
}
