// Package langdetect canonicalizes fenced code block language tags.
// It resolves aliases through go-enry's linguist data, so "Python",
// "py" and "python3" all collapse to "python" while unknown tags are
// returned as written.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// fenceTags maps enry language names to the fence tag conventionally
// used for them where the lowercased name is not it.
var fenceTags = map[string]string{
	"shell": "bash",
}

// fenceAliases covers shorthand tags missing from enry's alias table.
var fenceAliases = map[string]string{
	"py": "python",
}

// Canonical returns the canonical fence tag for a language alias.
// Tags enry does not recognize are returned unchanged.
func Canonical(tag string) string {
	if tag == "" {
		return tag
	}
	if t, ok := fenceAliases[strings.ToLower(tag)]; ok {
		return t
	}
	lang, ok := enry.GetLanguageByAlias(tag)
	if !ok {
		return tag
	}
	lower := strings.ToLower(lang)
	if t, ok := fenceTags[lower]; ok {
		return t
	}
	return lower
}
