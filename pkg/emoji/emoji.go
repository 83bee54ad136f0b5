// Package emoji corrects :emoji: shortcodes against a fixed
// vocabulary. Names are canonicalized (lowercase, hyphens to
// underscores) and misspellings are matched to the closest known
// shortcode by edit distance.
package emoji

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
)

// MaxDistance is the largest edit distance accepted when matching a
// misspelled shortcode.
const MaxDistance = 4

var shortcodeRe = regexp.MustCompile(`:([a-zA-Z0-9_+-]+):`)

// Corrector matches shortcodes against the vocabulary.
type Corrector struct {
	valid map[string]struct{}
}

// NewCorrector returns a Corrector over the built-in vocabulary.
func NewCorrector() *Corrector {
	valid := make(map[string]struct{}, len(names))
	for _, n := range names {
		valid[n] = struct{}{}
	}
	return &Corrector{valid: valid}
}

// Canonical lowercases a shortcode name and converts hyphens to
// underscores.
func Canonical(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.Trim(name, ":")), "-", "_")
}

// Valid reports whether the canonical form of name is in the
// vocabulary.
func (c *Corrector) Valid(name string) bool {
	_, ok := c.valid[Canonical(name)]
	return ok
}

// Match returns the vocabulary entry for name. Exact canonical matches
// win; otherwise the closest entry within MaxDistance is returned,
// with ties broken by shorter name then vocabulary order. The second
// return is false when nothing is close enough.
func (c *Corrector) Match(name string) (string, bool) {
	canonical := Canonical(name)
	if _, ok := c.valid[canonical]; ok {
		return canonical, true
	}

	best := ""
	bestDist := MaxDistance + 1
	for _, candidate := range names {
		d := levenshtein.ComputeDistance(canonical, candidate)
		if d < bestDist || (d == bestDist && best != "" && len(candidate) < len(best)) {
			best = candidate
			bestDist = d
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

// CorrectLine rewrites every :shortcode: occurrence in line to its
// corrected form. Unrecognized shortcodes with no close match are
// left untouched.
func (c *Corrector) CorrectLine(line string) string {
	return shortcodeRe.ReplaceAllStringFunc(line, func(m string) string {
		name := m[1 : len(m)-1]
		if corrected, ok := c.Match(name); ok {
			return ":" + corrected + ":"
		}
		return m
	})
}
