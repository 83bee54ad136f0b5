package normalize

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/ttscoff/md-fixup/pkg/emoji"
)

// Engine applies the rule pipeline to whole documents. It is safe to
// reuse across documents; each Normalize call carries its own state.
type Engine struct {
	opts      Options
	corrector *emoji.Corrector
}

// NewEngine returns an Engine for the given options.
func NewEngine(opts Options) *Engine {
	opts.normalize()
	return &Engine{
		opts:      opts,
		corrector: emoji.NewCorrector(),
	}
}

// Options returns the engine's effective options.
func (e *Engine) Options() Options {
	return e.opts
}

// Normalize rewrites content into canonical form and reports whether
// anything changed. The input is never modified.
func (e *Engine) Normalize(content []byte) ([]byte, bool) {
	lines := SplitLines(content)
	out := make([]Line, 0, len(lines)+8)
	rules := e.opts.Rules

	var (
		inCode        bool
		inMath        bool
		inFrontmatter bool
		blanks        int
		lists         listState
	)

	if len(lines) > 0 && strings.TrimSpace(lines[0].Text) == "---" {
		inFrontmatter = true
	}

	i := 0
	for i < len(lines) {
		line := lines[i]

		if rules.Enabled(RuleLineEndings) {
			line.Text = strings.TrimSuffix(line.Text, "\r")
			line.EOL = true
		}
		if !line.IsBlank() {
			blanks = 0
		}
		kind := Classify(line.Text)

		// Frontmatter passes through untouched apart from line
		// endings: a stray blank after the opening fence is dropped,
		// trailing blanks are dropped before the closing fence.
		if inFrontmatter {
			trimmed := strings.TrimSpace(line.Text)
			if i > 0 && (trimmed == "---" || trimmed == "...") {
				out = popTrailingBlanks(out)
				out = append(out, line)
				inFrontmatter = false
				i++
				continue
			}
			if i == 1 && trimmed == "" {
				i++
				continue
			}
			out = append(out, line)
			i++
			continue
		}

		if kind == KindCodeFence {
			if rules.Enabled(RuleCodeLangSpacing) {
				line.Text = normalizeFenceLang(line.Text)
			}
			opening := !inCode
			inCode = !inCode

			if rules.Enabled(RuleCodeBefore) && opening {
				if last, ok := lastLine(out); ok && !last.IsBlank() && !IsCodeFence(last.Text) {
					out = append(out, blankLine)
				}
			}
			if !opening {
				// Drop blank lines that accumulated before the
				// closing fence, but never past the opening fence of
				// an empty block.
				for {
					last, ok := lastLine(out)
					if !ok || !last.IsBlank() || IsCodeFence(last.Text) {
						break
					}
					out = out[:len(out)-1]
				}
			}
			out = append(out, line)
			if rules.Enabled(RuleCodeAfter) && !inCode && i+1 < len(lines) && !lines[i+1].IsBlank() {
				out = append(out, blankLine)
			}
			i++
			continue
		}

		if inCode {
			out = append(out, line)
			i++
			continue
		}

		if rules.Enabled(RuleEmojiSpellcheck) && !inMath {
			line.Text = e.corrector.CorrectLine(line.Text)
		}
		if rules.Enabled(RuleTypography) {
			line.Text = normalizeTypography(line.Text, e.opts.SkipEmDash, e.opts.SkipGuillemet)
		}
		if rules.Enabled(RuleBoldItalic) {
			line.Text = normalizeEmphasis(line.Text, e.opts.ReverseEmphasis)
		}
		if rules.Enabled(RuleIALSpacing) {
			line.Text = normalizeIALSpacing(line.Text)
		}
		if rules.Enabled(RuleRefLinkSpacing) {
			line.Text = normalizeRefDefSpacing(line.Text)
		}

		if rules.Enabled(RuleMathSpacing) {
			if kind == KindMathFence {
				opening := !inMath
				inMath = !inMath
				if opening {
					if last, ok := lastLine(out); ok && !last.IsBlank() {
						out = append(out, blankLine)
					}
					out = append(out, NewLine("$$"))
				} else {
					out = append(out, NewLine("$$"))
					if i+1 < len(lines) && !lines[i+1].IsBlank() {
						out = append(out, blankLine)
					}
				}
				i++
				continue
			}
			if inMath {
				first := false
				if last, ok := lastLine(out); ok {
					first = strings.TrimSpace(last.Text) == "$$"
				}
				lastInner := i+1 < len(lines) && strings.TrimSpace(lines[i+1].Text) == "$$"
				if first {
					line.Text = strings.TrimLeft(line.Text, " \t")
				} else if lastInner {
					line.Text = strings.TrimRight(line.Text, " \t")
				}
				out = append(out, line)
				i++
				continue
			}
			line.Text = normalizeMathSpacing(line.Text)
		}

		stripped := strings.TrimSpace(line.Text)

		if rules.Enabled(RuleTableFormat) && !inMath &&
			(kind == KindTableRow || kind == KindSeparatorRow) {
			var tableLines []string
			j := i
			for j < len(lines) {
				cur := lines[j]
				if cur.IsBlank() || IsCodeFence(cur.Text) || !strings.Contains(cur.Text, "|") {
					break
				}
				tableLines = append(tableLines, cur.Text)
				j++
			}
			if len(tableLines) >= 2 {
				if formatted := formatTable(tableLines); formatted != nil {
					for _, t := range formatted {
						out = append(out, NewLine(t))
					}
					i = j
					continue
				}
			}
		}

		if kind == KindHeading {
			lists.reset()
			if rules.Enabled(RuleHeaderSpacing) {
				line.Text = normalizeHeadingSpacing(line.Text)
			}
			out = append(out, line)
			if rules.Enabled(RuleHeaderNewlines) && i+1 < len(lines) {
				next := lines[i+1]
				if !next.IsBlank() && !IsHeading(next.Text) && !IsCodeFence(next.Text) {
					out = append(out, blankLine)
				}
			}
			i++
			continue
		}

		if kind == KindHorizontalRule {
			lists.reset()
			if rules.Enabled(RuleRuleBefore) {
				if last, ok := lastLine(out); ok && !last.IsBlank() {
					out = append(out, blankLine)
				}
			}
			out = append(out, line)
			if rules.Enabled(RuleRuleAfter) && i+1 < len(lines) && !lines[i+1].IsBlank() {
				out = append(out, blankLine)
			}
			i++
			continue
		}

		if shouldPreserveLine(line.Text) {
			out = append(out, line)
			i++
			continue
		}

		if kind == KindListItem {
			out, line = e.processListItem(out, lines, i, line, rules, &lists)
			if i+1 >= len(lines) {
				lists.reset()
			} else if next := lines[i+1]; !next.IsBlank() && !IsListItem(next.Text) {
				if rules.Enabled(RuleListAfter) {
					out = append(out, blankLine)
				}
				lists.reset()
			}
			i++
			continue
		}

		if kind == KindBlockquote {
			lists.reset()
			if rules.Enabled(RuleBlockquoteSpacing) {
				line.Text = normalizeBlockquoteSpacing(line.Text)
			}
			out = e.emitBlockquote(out, line, rules)
			i++
			continue
		}

		if stripped != "" {
			lists.reset()
			if last, ok := lastLine(out); ok && !last.IsBlank() {
				if IsCodeFence(last.Text) || IsListItem(last.Text) {
					out = append(out, blankLine)
				}
			}
			if rules.Enabled(RuleTrailingSpace) {
				line.Text = normalizeTrailingWhitespace(line.Text)
			}
			if rules.Enabled(RuleWrap) && utf8.RuneCountInString(strings.TrimRight(line.Text, " \t")) > e.opts.WrapWidth {
				for _, w := range wrapText(strings.TrimSpace(line.Text), e.opts.WrapWidth, "") {
					out = append(out, NewLine(w))
				}
			} else {
				out = append(out, line)
			}
		} else {
			if rules.Enabled(RuleBlankCollapse) {
				blanks++
				if blanks <= 1 {
					out = append(out, blankLine)
				}
			} else {
				out = append(out, blankLine)
				blanks = 0
			}
		}
		i++
	}

	if mode := rules.ResolveLinkMode(); mode.Inline || mode.Reference {
		out = convertLinks(out, mode)
	}

	if rules.Enabled(RuleEndNewline) {
		out = popTrailingBlanks(out)
		if len(out) > 0 {
			if !out[len(out)-1].EOL {
				out[len(out)-1].EOL = true
			}
			out = append(out, blankLine)
		}
	}

	result := JoinLines(out)
	return result, !bytes.Equal(result, content)
}

// processListItem handles one list line: checkbox, indent-unit
// detection, interrupted-list splitting, marker normalization,
// indentation, spacing before, and wrapping.
func (e *Engine) processListItem(out []Line, lines []Line, i int, line Line, rules *RuleSet, lists *listState) ([]Line, Line) {
	if rules.Enabled(RuleTaskCheckbox) {
		line.Text = normalizeTaskCheckbox(line.Text)
	}
	if !lists.active() {
		lists.indentUnit = detectIndentUnit(lines, i)
	}

	// A top-level item whose marker type flips against the item right
	// above it (bullet after numbered or vice versa, same level) would
	// be absorbed into the previous list, so the two lists are split
	// with a comment. An item following a nested item is a
	// continuation of the open context, not an interruption.
	if cur, ok := parseListItem(line.Text); ok {
		if curLevel := listLevel(cur.indent, lists.indentUnit); curLevel == 0 {
			if prev, ok := lastNonBlank(out); ok {
				if pv, ok := parseListItem(prev.Text); ok &&
					listLevel(pv.indent, lists.indentUnit) == 0 &&
					pv.numbered() != cur.numbered() {
					lists.dropLevel(0)
					if last, ok := lastLine(out); ok && !last.IsBlank() {
						out = append(out, blankLine)
					}
					out = append(out, NewLine("<!-- -->"), blankLine)
				}
			}
		}
	}

	if rules.Enabled(RuleListMarkers) {
		line.Text, _ = normalizeListMarker(line.Text, lists, rules.Enabled(RuleListReset))
	}
	if rules.Enabled(RuleListTabs) {
		line.Text = spacesToTabs(line.Text, lists.indentUnit)
	}

	if rules.Enabled(RuleListBefore) {
		if last, ok := lastLine(out); ok && !last.IsBlank() && !IsListItem(last.Text) {
			t := strings.TrimSpace(last.Text)
			if !strings.HasPrefix(t, ">") && !strings.HasPrefix(t, "#") {
				out = append(out, blankLine)
			}
		}
	}

	it, ok := parseListItem(line.Text)
	if !ok {
		return append(out, line), line
	}
	if rules.Enabled(RuleListMarkerSpace) && it.markerSpace != " " {
		it.markerSpace = " "
		line.Text = it.String()
	}

	prefix := it.indent + it.marker + it.markerSpace
	contIndent := it.indent + "\t"

	if rules.Enabled(RuleWrap) && it.content != "" &&
		utf8.RuneCountInString(strings.TrimRight(line.Text, " \t")) > e.opts.WrapWidth {
		wrapped := wrapText(it.content, e.opts.WrapWidth-utf8.RuneCountInString(prefix), "")
		for j, w := range wrapped {
			if j == 0 {
				out = append(out, NewLine(prefix+w))
			} else {
				out = append(out, NewLine(contIndent+w))
			}
		}
		return out, line
	}
	return append(out, line), line
}

// emitBlockquote wraps an over-long quote line, carrying the quote
// prefix onto continuation lines.
func (e *Engine) emitBlockquote(out []Line, line Line, rules *RuleSet) []Line {
	prefix := blockquotePrefix(line.Text)
	content := strings.TrimLeft(line.Text[len(prefix):], " \t")

	if rules.Enabled(RuleWrap) && content != "" &&
		utf8.RuneCountInString(strings.TrimRight(line.Text, " \t")) > e.opts.WrapWidth {
		for _, w := range wrapText(content, e.opts.WrapWidth, prefix+" ") {
			out = append(out, NewLine(w))
		}
		return out
	}
	return append(out, line)
}

// blockquotePrefix returns the indent plus > marker of a quote line.
func blockquotePrefix(text string) string {
	trimmed := strings.TrimLeft(text, " \t")
	if !strings.HasPrefix(trimmed, ">") {
		return ""
	}
	return text[:len(text)-len(trimmed)] + ">"
}

func lastLine(out []Line) (Line, bool) {
	if len(out) == 0 {
		return Line{}, false
	}
	return out[len(out)-1], true
}

func lastNonBlank(out []Line) (Line, bool) {
	for i := len(out) - 1; i >= 0; i-- {
		if !out[i].IsBlank() {
			return out[i], true
		}
	}
	return Line{}, false
}

func popTrailingBlanks(out []Line) []Line {
	for len(out) > 0 && out[len(out)-1].IsBlank() {
		out = out[:len(out)-1]
	}
	return out
}
