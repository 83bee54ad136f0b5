package normalize

import (
	"regexp"
	"strings"

	"github.com/ttscoff/md-fixup/pkg/langdetect"
)

// Single-line normalizers. Each takes line text without a terminator
// and returns the normalized text; callers compare against the input
// to detect changes.

var (
	headingSpacingRe = regexp.MustCompile(`^(#+)(\s*)(.*)$`)
	ialRe            = regexp.MustCompile(`(\{:?\s*)([^}]*?)(\s*\})`)
	fenceLangRe      = regexp.MustCompile("^(```|~~~)(\\s*)([^\\s`~]+)")
	refDefSpacingRe  = regexp.MustCompile(`^(\[[^\]]+\])\s*:\s*`)
	taskCheckboxRe   = regexp.MustCompile(`^(\s*[-*+])\s+\[[Xx]\]\s+`)
	bqSpacingRe      = regexp.MustCompile(`^(\s*)>([^\s>])`)
	innerSpaceRe     = regexp.MustCompile(`\s+`)
)

// normalizeTrailingWhitespace strips trailing whitespace, keeping a
// run of exactly two trailing spaces as a hard line break.
func normalizeTrailingWhitespace(text string) string {
	noSpaces := strings.TrimRight(text, " ")
	if len(text)-len(noSpaces) == 2 {
		return strings.TrimRight(noSpaces, "\t") + "  "
	}
	return strings.TrimRight(text, " \t")
}

// normalizeHeadingSpacing rewrites the gap between the hash run and
// the heading text to a single space.
func normalizeHeadingSpacing(text string) string {
	m := headingSpacingRe.FindStringSubmatch(text)
	if m == nil || m[2] == " " {
		return text
	}
	return m[1] + " " + m[3]
}

// normalizeIALSpacing canonicalizes inline attribute lists: inner
// whitespace collapses to single spaces, and the kramdown form gets
// exactly one space after the colon.
func normalizeIALSpacing(text string) string {
	return ialRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := ialRe.FindStringSubmatch(m)
		content := innerSpaceRe.ReplaceAllString(strings.TrimSpace(sub[2]), " ")
		if strings.Contains(sub[1], ":") {
			return "{: " + content + "}"
		}
		return "{" + content + "}"
	})
}

// normalizeFenceLang removes the gap between a code fence and its
// language tag and canonicalizes the tag through the language alias
// table. Unknown tags pass through unchanged.
func normalizeFenceLang(text string) string {
	m := fenceLangRe.FindStringSubmatch(text)
	if m == nil {
		return text
	}
	lang := langdetect.Canonical(m[3])
	return fenceLangRe.ReplaceAllLiteralString(text, m[1]+lang)
}

// normalizeRefDefSpacing puts exactly one space after the colon of a
// reference link definition.
func normalizeRefDefSpacing(text string) string {
	m := refDefSpacingRe.FindStringSubmatch(text)
	if m == nil {
		return text
	}
	return refDefSpacingRe.ReplaceAllLiteralString(text, m[1]+": ")
}

// normalizeTaskCheckbox lowercases checked task boxes and tightens
// the spacing around them.
func normalizeTaskCheckbox(text string) string {
	m := taskCheckboxRe.FindStringSubmatch(text)
	if m == nil {
		return text
	}
	return taskCheckboxRe.ReplaceAllLiteralString(text, m[1]+" [x] ")
}

// normalizeBlockquoteSpacing inserts a space after a bare > marker.
func normalizeBlockquoteSpacing(text string) string {
	m := bqSpacingRe.FindStringSubmatch(text)
	if m == nil {
		return text
	}
	return bqSpacingRe.ReplaceAllString(text, "$1> $2")
}

var typographyReplacer = strings.NewReplacer(
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"–", "--", // en dash
	"…", "...", // ellipsis
)

// normalizeTypography converts curly quotes, dashes, ellipses and
// guillemets to their ASCII spellings. Em dashes and guillemets can
// be left alone via the sub-flags.
func normalizeTypography(text string, skipEmDash, skipGuillemet bool) string {
	result := typographyReplacer.Replace(text)
	if !skipEmDash {
		result = strings.ReplaceAll(result, "—", "---")
	}
	if !skipGuillemet {
		result = strings.ReplaceAll(result, "«", `"`)
		result = strings.ReplaceAll(result, "»", `"`)
	}
	return result
}
