package normalize

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	inlineLinkRe   = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	refLinkRe      = regexp.MustCompile(`\[([^\]]+)\]\[([^\]]+)\]`)
	implicitLinkRe = regexp.MustCompile(`\[([^\]]+)\]`)
	urlTitleRe     = regexp.MustCompile(`^([^\s"]+)(?:\s+"([^"]+)")?$`)
)

type linkKind int

const (
	linkInline linkKind = iota
	linkReference
	linkImplicit
)

// link is one link occurrence found in the document, with byte
// positions into its line.
type link struct {
	lineIdx    int
	start, end int
	text       string
	url        string
	title      string
	kind       linkKind
	refID      string
}

// urlKey identifies a link target for dedupe purposes.
type urlKey struct {
	url   string
	title string
}

// definition is a parsed reference definition.
type definition struct {
	url   string
	title string
}

// isInCodeSpan reports whether byte position pos sits inside an open
// code span: an odd number of unescaped backticks precedes it.
func isInCodeSpan(text string, pos int) bool {
	if pos > len(text) {
		pos = len(text)
	}
	backticks := 0
	for i := 0; i < pos; i++ {
		switch text[i] {
		case '`':
			backticks++
		case '\\':
			i++
		}
	}
	return backticks%2 == 1
}

// splitURLTitle separates a definition or inline target into its URL
// and optional quoted title.
func splitURLTitle(part string) (string, string) {
	part = strings.TrimSpace(part)
	if m := urlTitleRe.FindStringSubmatch(part); m != nil {
		return m[1], m[2]
	}
	return part, ""
}

// convertLinks rewrites the document's links per mode: all inline, or
// all reference-style with definitions collected, deduped and placed
// at the end (or after the frontmatter). Existing textual reference
// IDs are preserved; inline links get numeric IDs that skip any
// numbers already taken.
func convertLinks(lines []Line, mode LinkMode) []Line {
	if !mode.Inline && !mode.Reference {
		return lines
	}

	defs := make(map[string]definition)
	var defOrder []string
	var defLines []int
	for i, l := range lines {
		trimmed := strings.TrimSpace(l.Text)
		m := refDefRe.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		refID := m[1]
		url, title := splitURLTitle(m[2])
		if _, seen := defs[refID]; !seen {
			defOrder = append(defOrder, refID)
		}
		defs[refID] = definition{url: url, title: title}
		normalized := "[" + strings.ToLower(strings.TrimSpace(refID[1:len(refID)-1])) + "]"
		if normalized != refID {
			if _, seen := defs[normalized]; !seen {
				defOrder = append(defOrder, normalized)
			}
			defs[normalized] = definition{url: url, title: title}
		}
		defLines = append(defLines, i)
	}
	for i := len(defLines) - 1; i >= 0; i-- {
		lines = append(lines[:defLines[i]], lines[defLines[i]+1:]...)
	}

	links := collectLinks(lines, defs, defOrder)

	if mode.Inline {
		return inlineAll(lines, links)
	}
	return referenceAll(lines, links, mode.AtEnd)
}

// collectLinks finds every link occurrence outside code, classified
// as inline, reference, or implicit reference.
func collectLinks(lines []Line, defs map[string]definition, defOrder []string) []link {
	var links []link
	type posKey struct{ line, start, end int }
	matched := make(map[posKey]bool)
	inCode := false

	for i, l := range lines {
		if IsCodeFence(l.Text) {
			inCode = !inCode
			continue
		}
		if inCode {
			continue
		}
		text := l.Text

		for _, m := range inlineLinkRe.FindAllStringSubmatchIndex(text, -1) {
			if isInCodeSpan(text, m[0]) {
				continue
			}
			key := posKey{i, m[0], m[1]}
			if matched[key] {
				continue
			}
			matched[key] = true
			url, title := splitURLTitle(text[m[4]:m[5]])
			links = append(links, link{
				lineIdx: i, start: m[0], end: m[1],
				text: text[m[2]:m[3]], url: url, title: title,
				kind: linkInline,
			})
		}

		for _, m := range refLinkRe.FindAllStringSubmatchIndex(text, -1) {
			if isInCodeSpan(text, m[0]) {
				continue
			}
			key := posKey{i, m[0], m[1]}
			if matched[key] {
				continue
			}
			matched[key] = true
			refID := text[m[4]:m[5]]
			def, ok := defs["["+refID+"]"]
			if !ok {
				continue
			}
			links = append(links, link{
				lineIdx: i, start: m[0], end: m[1],
				text: text[m[2]:m[3]], url: def.url, title: def.title,
				kind: linkReference, refID: refID,
			})
		}

		for _, m := range implicitLinkRe.FindAllStringSubmatchIndex(text, -1) {
			if isInCodeSpan(text, m[0]) {
				continue
			}
			covered := false
			for key := range matched {
				if key.line == i && key.start <= m[0] && m[0] < key.end {
					covered = true
					break
				}
			}
			if covered {
				continue
			}
			if m[1] < len(text) && (text[m[1]] == '[' || text[m[1]] == '(') {
				continue
			}
			linkText := text[m[2]:m[3]]
			normalized := "[" + strings.TrimSpace(strings.ToLower(linkText)) + "]"
			def, ok := defs[normalized]
			if !ok {
				continue
			}
			matched[posKey{i, m[0], m[1]}] = true
			refID := strings.TrimSpace(strings.ToLower(linkText))
			for _, defID := range defOrder {
				if strings.EqualFold(defID, normalized) {
					refID = defID[1 : len(defID)-1]
					break
				}
			}
			links = append(links, link{
				lineIdx: i, start: m[0], end: m[1],
				text: linkText, url: def.url, title: def.title,
				kind: linkImplicit, refID: refID,
			})
		}
	}
	return links
}

// inlineAll rewrites every collected link to inline form, replacing
// right to left so positions stay valid.
func inlineAll(lines []Line, links []link) []Line {
	sort.SliceStable(links, func(a, b int) bool {
		if links[a].lineIdx != links[b].lineIdx {
			return links[a].lineIdx > links[b].lineIdx
		}
		return links[a].start > links[b].start
	})
	for _, lk := range links {
		text := lines[lk.lineIdx].Text
		replacement := fmt.Sprintf("[%s](%s)", lk.text, lk.url)
		if lk.title != "" {
			replacement = fmt.Sprintf("[%s](%s %q)", lk.text, lk.url, lk.title)
		}
		lines[lk.lineIdx].Text = text[:lk.start] + replacement + text[lk.end:]
	}
	return lines
}

// referenceAll rewrites inline links as numeric reference links while
// preserving existing textual references, then appends the collected
// definitions.
func referenceAll(lines []Line, links []link, atEnd bool) []Line {
	textRefs := make(map[string]definition)
	var textRefOrder []string
	for _, lk := range links {
		if lk.kind != linkReference && lk.kind != linkImplicit {
			continue
		}
		if lk.refID == "" || lk.url == "" {
			continue
		}
		if _, seen := textRefs[lk.refID]; !seen {
			textRefOrder = append(textRefOrder, lk.refID)
		}
		textRefs[lk.refID] = definition{url: lk.url, title: lk.title}
	}

	usedNumbers := make(map[int]bool)
	for refID := range textRefs {
		if n, err := strconv.Atoi(refID); err == nil {
			usedNumbers[n] = true
		}
	}
	nextRef := 1
	for n := range usedNumbers {
		if n >= nextRef {
			nextRef = n + 1
		}
	}

	numberFor := make(map[urlKey]int)
	for _, lk := range links {
		if lk.kind != linkInline || lk.url == "" {
			continue
		}
		key := urlKey{lk.url, lk.title}
		if _, ok := numberFor[key]; ok {
			continue
		}
		for usedNumbers[nextRef] {
			nextRef++
		}
		numberFor[key] = nextRef
		usedNumbers[nextRef] = true
		nextRef++
	}

	byLine := make(map[int][]link)
	type posKey struct{ line, start, end int }
	seen := make(map[posKey]bool)
	for _, lk := range links {
		key := posKey{lk.lineIdx, lk.start, lk.end}
		if seen[key] {
			continue
		}
		seen[key] = true
		byLine[lk.lineIdx] = append(byLine[lk.lineIdx], lk)
	}

	for lineIdx, lineLinks := range byLine {
		original := lines[lineIdx].Text
		sort.Slice(lineLinks, func(a, b int) bool {
			return lineLinks[a].start > lineLinks[b].start
		})
		text := original
		for _, lk := range lineLinks {
			var replacement string
			switch {
			case lk.kind == linkReference && lk.refID != "":
				replacement = fmt.Sprintf("[%s][%s]", lk.text, lk.refID)
			case lk.kind == linkImplicit && lk.refID != "":
				replacement = fmt.Sprintf("[%s]", lk.text)
			case lk.kind == linkInline && lk.url != "":
				replacement = fmt.Sprintf("[%s][%d]", lk.text, numberFor[urlKey{lk.url, lk.title}])
			default:
				continue
			}
			text = text[:lk.start] + replacement + text[lk.end:]
		}
		lines[lineIdx].Text = restoreListStructure(original, text)
	}

	// Textual IDs come first in occurrence order; numeric IDs, whether
	// preserved or freshly assigned, are emitted together in ascending
	// order so repeated runs produce the same definition block.
	var defLines []Line
	type numberedDef struct {
		num int
		def definition
	}
	var numbered []numberedDef
	for _, refID := range textRefOrder {
		def := textRefs[refID]
		if n, err := strconv.Atoi(refID); err == nil {
			numbered = append(numbered, numberedDef{n, def})
			continue
		}
		defLines = append(defLines, NewLine(formatDefinition(refID, def)))
	}
	for key, num := range numberFor {
		numbered = append(numbered, numberedDef{num, definition{key.url, key.title}})
	}
	sort.Slice(numbered, func(a, b int) bool { return numbered[a].num < numbered[b].num })
	for _, n := range numbered {
		defLines = append(defLines, NewLine(formatDefinition(strconv.Itoa(n.num), n.def)))
	}

	if len(defLines) == 0 {
		return lines
	}
	if atEnd {
		for len(lines) > 0 && lines[len(lines)-1].IsBlank() {
			lines = lines[:len(lines)-1]
		}
		lines = append(lines, blankLine)
		return append(lines, defLines...)
	}
	return insertAfterFrontmatter(lines, defLines)
}

// restoreListStructure puts back the indent and marker of a list line
// whose replacement disturbed them. Numeric reference IDs at the
// start of a line would otherwise read as ordered list markers.
func restoreListStructure(original, rewritten string) string {
	if !IsListItem(original) {
		return rewritten
	}
	orig, ok := parseListItem(original)
	if !ok {
		return rewritten
	}
	if next, ok := parseListItem(rewritten); ok {
		if next.marker != orig.marker || next.indent != orig.indent {
			return orig.indent + orig.marker + orig.markerSpace + next.content
		}
		return rewritten
	}
	markerEnd := len(orig.indent) + len(orig.marker) + len(orig.markerSpace)
	content := rewritten
	if len(rewritten) >= markerEnd {
		content = rewritten[markerEnd:]
	}
	content = strings.TrimLeft(content, " \t")
	return orig.indent + orig.marker + orig.markerSpace + content
}

// insertAfterFrontmatter places definition lines at the top of the
// document, after any YAML frontmatter, with blank separators.
func insertAfterFrontmatter(lines []Line, defLines []Line) []Line {
	insertPos := 0
	if len(lines) > 0 && strings.TrimSpace(lines[0].Text) == "---" {
		for i := 1; i < len(lines); i++ {
			if strings.TrimSpace(lines[i].Text) == "---" {
				insertPos = i + 1
				break
			}
		}
	}
	var block []Line
	if insertPos < len(lines) && !lines[insertPos].IsBlank() && insertPos > 0 {
		block = append(block, blankLine)
	}
	block = append(block, defLines...)
	if insertPos < len(lines) && !lines[insertPos].IsBlank() {
		block = append(block, blankLine)
	}
	result := make([]Line, 0, len(lines)+len(block))
	result = append(result, lines[:insertPos]...)
	result = append(result, block...)
	result = append(result, lines[insertPos:]...)
	return result
}

func formatDefinition(refID string, def definition) string {
	if def.title != "" {
		return fmt.Sprintf("[%s]: %s %q", refID, def.url, def.title)
	}
	return fmt.Sprintf("[%s]: %s", refID, def.url)
}
