package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var numberedMarkerRe = regexp.MustCompile(`^\d+\.$`)

// listItem is a parsed list line: indent, marker, the gap after the
// marker, and the content.
type listItem struct {
	indent      string
	marker      string
	markerSpace string
	content     string
}

func parseListItem(text string) (listItem, bool) {
	m := listMarkerRe.FindStringSubmatch(text)
	if m == nil {
		return listItem{}, false
	}
	return listItem{indent: m[1], marker: m[2], markerSpace: m[3], content: m[4]}, true
}

func (it listItem) numbered() bool {
	return numberedMarkerRe.MatchString(it.marker)
}

func (it listItem) String() string {
	return it.indent + it.marker + it.markerSpace + it.content
}

// listLevel converts an indent string to a nesting level: each tab is
// one level, each indent-unit run of spaces is one level.
func listLevel(indent string, indentUnit int) int {
	tabs := strings.Count(indent, "\t")
	spaces := len(indent) - tabs
	return tabs + spaces/indentUnit
}

// listContext tracks one open list level while walking a document.
type listContext struct {
	level    int
	numbered bool
	number   int
}

// listState is the stack of open list levels plus the indent unit
// detected for the current list.
type listState struct {
	stack      []listContext
	indentUnit int
}

func (s *listState) reset() {
	s.stack = s.stack[:0]
	s.indentUnit = 0
}

func (s *listState) active() bool {
	return s.indentUnit != 0
}

// dropDeeper removes contexts nested deeper than level.
func (s *listState) dropDeeper(level int) {
	kept := s.stack[:0]
	for _, ctx := range s.stack {
		if ctx.level <= level {
			kept = append(kept, ctx)
		}
	}
	s.stack = kept
}

// dropLevel removes the context at exactly level, so a fresh list can
// start there.
func (s *listState) dropLevel(level int) {
	kept := s.stack[:0]
	for _, ctx := range s.stack {
		if ctx.level != level {
			kept = append(kept, ctx)
		}
	}
	s.stack = kept
}

func (s *listState) find(level int) *listContext {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if s.stack[i].level == level {
			return &s.stack[i]
		}
	}
	return nil
}

// bulletForLevel alternates bullet characters by nesting depth.
func bulletForLevel(level int) string {
	switch level {
	case 0:
		return "*"
	case 1:
		return "-"
	default:
		return "+"
	}
}

// detectIndentUnit scans the list containing lines[startIdx] and
// returns 2 or 4 depending on how its nested items are indented.
// Tab-indented and flat lists default to 2.
func detectIndentUnit(lines []Line, startIdx int) int {
	listStart := 0
	for i := startIdx; i >= 0; i-- {
		if !IsListItem(lines[i].Text) {
			listStart = i + 1
			break
		}
		if it, ok := parseListItem(lines[i].Text); ok {
			if strings.Count(it.indent, "\t") == len(it.indent) {
				listStart = i
				break
			}
		}
	}

	for i := listStart + 1; i < len(lines); i++ {
		if !IsListItem(lines[i].Text) {
			if !lines[i].IsBlank() {
				break
			}
			continue
		}
		it, ok := parseListItem(lines[i].Text)
		if !ok {
			continue
		}
		spaces := len(it.indent) - strings.Count(it.indent, "\t")
		if spaces >= 4 {
			return 4
		}
		if spaces >= 2 {
			return 2
		}
	}
	return 2
}

// normalizeListMarker rewrites the marker of a list line: bullets get
// the level's canonical character, numbered items get the next number
// in their level's sequence. A new numbered list restarts at 1 unless
// resetNumbers is false, in which case the written start number is
// kept. Reports whether the marker changed.
func normalizeListMarker(text string, state *listState, resetNumbers bool) (string, bool) {
	it, ok := parseListItem(text)
	if !ok {
		return text, false
	}

	level := listLevel(it.indent, state.indentUnit)
	state.dropDeeper(level)

	var newMarker string
	if ctx := state.find(level); ctx != nil {
		if ctx.numbered {
			ctx.number++
			newMarker = strconv.Itoa(ctx.number) + "."
		} else {
			newMarker = bulletForLevel(level)
		}
	} else if it.numbered() {
		start := 1
		if !resetNumbers {
			if n, err := strconv.Atoi(strings.TrimSuffix(it.marker, ".")); err == nil {
				start = n
			}
		}
		state.stack = append(state.stack, listContext{level: level, numbered: true, number: start})
		newMarker = fmt.Sprintf("%d.", start)
	} else {
		state.stack = append(state.stack, listContext{level: level, numbered: false})
		newMarker = bulletForLevel(level)
	}

	changed := newMarker != it.marker || it.markerSpace != " "
	return it.indent + newMarker + " " + it.content, changed
}

// spacesToTabs converts space indentation on a list line to tabs, one
// tab per indent unit. Lines already using tabs are left alone.
func spacesToTabs(text string, indentUnit int) string {
	it, ok := parseListItem(text)
	if !ok {
		return text
	}
	if strings.Contains(it.indent, "\t") {
		return text
	}
	markerSpace := it.markerSpace
	if markerSpace != " " {
		markerSpace = " "
	}
	tabs := strings.Repeat("\t", len(it.indent)/indentUnit)
	return tabs + it.marker + markerSpace + it.content
}
