package normalize

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Rule identifies one of the toggleable normalization rules.
type Rule int

// The rule catalog. Numbers are part of the user-facing contract: they
// appear in --skip and in config files.
const (
	RuleLineEndings       Rule = 1  // CRLF/CR -> LF
	RuleTrailingSpace     Rule = 2  // strip trailing whitespace
	RuleBlankCollapse     Rule = 3  // collapse runs of blank lines
	RuleHeaderSpacing     Rule = 4  // "#Bad" -> "# Bad"
	RuleHeaderNewlines    Rule = 5  // blank line after headings
	RuleCodeBefore        Rule = 6  // blank before fences
	RuleCodeAfter         Rule = 7  // blank after fences
	RuleListBefore        Rule = 8  // blank before lists
	RuleListAfter         Rule = 9  // blank after lists
	RuleRuleBefore        Rule = 10 // blank before horizontal rules
	RuleRuleAfter         Rule = 11 // blank after horizontal rules
	RuleListTabs          Rule = 12 // canonical list indentation
	RuleListMarkerSpace   Rule = 13 // "-item" -> "- item"
	RuleWrap              Rule = 14 // wrap long paragraphs
	RuleEndNewline        Rule = 15 // single trailing blank line
	RuleIALSpacing        Rule = 16 // {: .class} spacing
	RuleCodeLangSpacing   Rule = 17 // "``` python" -> "```python"
	RuleRefLinkSpacing    Rule = 18 // "[id]:url" -> "[id]: url"
	RuleTaskCheckbox      Rule = 19 // "[ x]" -> "[x]"
	RuleBlockquoteSpacing Rule = 20 // ">text" -> "> text"
	RuleMathSpacing       Rule = 21 // blank around $$ blocks
	RuleTableFormat       Rule = 22 // align and pad table columns
	RuleEmojiSpellcheck   Rule = 23 // :smiel: -> :smile:
	RuleTypography        Rule = 24 // curly quotes/dashes/ellipses to ASCII
	RuleBoldItalic        Rule = 25 // canonical emphasis markers
	RuleListMarkers       Rule = 26 // alternate bullet chars by level
	RuleListReset         Rule = 27 // renumber ordered lists
	RuleReferenceLinks    Rule = 28 // normalize reference definitions
	RuleLinksAtEnd        Rule = 29 // move definitions to document end
	RuleInlineLinks       Rule = 30 // convert references to inline
)

const (
	minRule = RuleLineEndings
	maxRule = RuleInlineLinks
)

// ruleKeywords maps each skip/include keyword to the rules it toggles.
// Group keywords fan out to several rules.
var ruleKeywords = map[string][]Rule{
	"line-endings":          {RuleLineEndings},
	"trailing":              {RuleTrailingSpace},
	"blank-lines":           {RuleBlankCollapse},
	"header-spacing":        {RuleHeaderSpacing},
	"header-newline":        {RuleHeaderNewlines},
	"code-before":           {RuleCodeBefore},
	"code-after":            {RuleCodeAfter},
	"code-block-newlines":   {RuleCodeBefore, RuleCodeAfter},
	"list-before":           {RuleListBefore},
	"list-after":            {RuleListAfter},
	"rule-before":           {RuleRuleBefore},
	"rule-after":            {RuleRuleAfter},
	"list-tabs":             {RuleListTabs},
	"list-marker":           {RuleListMarkerSpace},
	"wrap":                  {RuleWrap},
	"end-newline":           {RuleEndNewline},
	"ial-spacing":           {RuleIALSpacing},
	"code-lang-spacing":     {RuleCodeLangSpacing},
	"ref-link-spacing":      {RuleRefLinkSpacing},
	"task-checkbox":         {RuleTaskCheckbox},
	"blockquote-spacing":    {RuleBlockquoteSpacing},
	"math-spacing":          {RuleMathSpacing},
	"display-math-newlines": {RuleMathSpacing},
	"table-format":          {RuleTableFormat},
	"emoji-spellcheck":      {RuleEmojiSpellcheck},
	"typography":            {RuleTypography},
	"bold-italic":           {RuleBoldItalic},
	"emphasis":              {RuleBoldItalic},
	"list-markers":          {RuleListMarkers},
	"list-reset":            {RuleListReset},
	"reference-links":       {RuleReferenceLinks},
	"links-at-end":          {RuleLinksAtEnd},
	"inline-links":          {RuleInlineLinks},
}

// ruleNames maps each rule to its canonical keyword, for display.
var ruleNames = map[Rule]string{
	RuleLineEndings:       "line-endings",
	RuleTrailingSpace:     "trailing",
	RuleBlankCollapse:     "blank-lines",
	RuleHeaderSpacing:     "header-spacing",
	RuleHeaderNewlines:    "header-newline",
	RuleCodeBefore:        "code-before",
	RuleCodeAfter:         "code-after",
	RuleListBefore:        "list-before",
	RuleListAfter:         "list-after",
	RuleRuleBefore:        "rule-before",
	RuleRuleAfter:         "rule-after",
	RuleListTabs:          "list-tabs",
	RuleListMarkerSpace:   "list-marker",
	RuleWrap:              "wrap",
	RuleEndNewline:        "end-newline",
	RuleIALSpacing:        "ial-spacing",
	RuleCodeLangSpacing:   "code-lang-spacing",
	RuleRefLinkSpacing:    "ref-link-spacing",
	RuleTaskCheckbox:      "task-checkbox",
	RuleBlockquoteSpacing: "blockquote-spacing",
	RuleMathSpacing:       "math-spacing",
	RuleTableFormat:       "table-format",
	RuleEmojiSpellcheck:   "emoji-spellcheck",
	RuleTypography:        "typography",
	RuleBoldItalic:        "bold-italic",
	RuleListMarkers:       "list-markers",
	RuleListReset:         "list-reset",
	RuleReferenceLinks:    "reference-links",
	RuleLinksAtEnd:        "links-at-end",
	RuleInlineLinks:       "inline-links",
}

// ruleDescriptions backs the `rules` subcommand listing.
var ruleDescriptions = map[Rule]string{
	RuleLineEndings:       "Normalize CRLF and CR line endings to LF",
	RuleTrailingSpace:     "Remove trailing whitespace from lines",
	RuleBlankCollapse:     "Collapse consecutive blank lines into one",
	RuleHeaderSpacing:     "Ensure a space between # and heading text",
	RuleHeaderNewlines:    "Insert a blank line after headings",
	RuleCodeBefore:        "Insert a blank line before code fences",
	RuleCodeAfter:         "Insert a blank line after code fences",
	RuleListBefore:        "Insert a blank line before lists",
	RuleListAfter:         "Insert a blank line after lists",
	RuleRuleBefore:        "Insert a blank line before horizontal rules",
	RuleRuleAfter:         "Insert a blank line after horizontal rules",
	RuleListTabs:          "Normalize list indentation to one tab per level",
	RuleListMarkerSpace:   "Ensure a space after list markers",
	RuleWrap:              "Wrap long paragraph lines at the configured width",
	RuleEndNewline:        "End the file with exactly one trailing blank line",
	RuleIALSpacing:        "Normalize spacing inside {: ...} attribute lists",
	RuleCodeLangSpacing:   "Remove space between fence and language tag",
	RuleRefLinkSpacing:    "Normalize spacing in reference link definitions",
	RuleTaskCheckbox:      "Normalize task list checkboxes",
	RuleBlockquoteSpacing: "Ensure a space after blockquote markers",
	RuleMathSpacing:       "Surround $$ display math with blank lines",
	RuleTableFormat:       "Align table columns and normalize separators",
	RuleEmojiSpellcheck:   "Correct misspelled :emoji: shortcodes",
	RuleTypography:        "Curly quotes, dashes, ellipses and guillemets to ASCII",
	RuleBoldItalic:        "Normalize bold and italic emphasis markers",
	RuleListMarkers:       "Alternate bullet markers by level and renumber ordered lists",
	RuleListReset:         "Reset ordered list numbering to start at 1",
	RuleReferenceLinks:    "Normalize and dedupe reference link definitions",
	RuleLinksAtEnd:        "Move reference definitions to the document end",
	RuleInlineLinks:       "Convert reference links to inline links",
}

// RuleSet records which rules are enabled for a run.
type RuleSet struct {
	enabled map[Rule]bool
}

// DefaultRuleSet returns the default: every rule on except inline-link
// conversion, which is opt-in because it is the inverse of the
// reference-link rules.
func DefaultRuleSet() *RuleSet {
	rs := &RuleSet{enabled: make(map[Rule]bool, int(maxRule))}
	for r := minRule; r <= maxRule; r++ {
		rs.enabled[r] = true
	}
	rs.enabled[RuleInlineLinks] = false
	return rs
}

// SkipFlags carries the typography sub-flags that ride along in a
// skip list without being rules of their own.
type SkipFlags struct {
	EmDash    bool
	Guillemet bool
}

// ParseRuleSet builds a RuleSet from skip and include tokens. Tokens
// are rule numbers or keywords. A skip token of "all" disables every
// rule; include tokens then re-enable selected rules on top of
// whatever the skip list produced. The "em-dash" and "guillemet"
// tokens are sub-flags of the typography rule and are reported
// separately. Unknown tokens are an error.
func ParseRuleSet(skip, include []string) (*RuleSet, SkipFlags, error) {
	rs := DefaultRuleSet()
	var flags SkipFlags
	for _, tok := range skip {
		tok = strings.ToLower(strings.TrimSpace(tok))
		switch tok {
		case "":
			continue
		case "all":
			for r := minRule; r <= maxRule; r++ {
				rs.enabled[r] = false
			}
			continue
		case "em-dash":
			flags.EmDash = true
			continue
		case "guillemet":
			flags.Guillemet = true
			continue
		}
		rules, err := resolveToken(tok)
		if err != nil {
			return nil, flags, err
		}
		for _, r := range rules {
			rs.enabled[r] = false
		}
	}
	for _, tok := range include {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" {
			continue
		}
		rules, err := resolveToken(tok)
		if err != nil {
			return nil, flags, err
		}
		for _, r := range rules {
			rs.enabled[r] = true
		}
	}
	return rs, flags, nil
}

func resolveToken(tok string) ([]Rule, error) {
	if n, err := strconv.Atoi(tok); err == nil {
		if n < int(minRule) || n > int(maxRule) {
			return nil, fmt.Errorf("unknown rule number %d (valid: %d-%d)", n, minRule, maxRule)
		}
		return []Rule{Rule(n)}, nil
	}
	if rules, ok := ruleKeywords[strings.ToLower(tok)]; ok {
		return rules, nil
	}
	return nil, fmt.Errorf("unknown rule keyword %q", tok)
}

// Enabled reports whether a rule is active.
func (rs *RuleSet) Enabled(r Rule) bool {
	return rs.enabled[r]
}

// Disable turns a rule off.
func (rs *RuleSet) Disable(r Rule) {
	rs.enabled[r] = false
}

// Enable turns a rule on.
func (rs *RuleSet) Enable(r Rule) {
	rs.enabled[r] = true
}

// LinkMode is the resolved link-handling strategy for a run, computed
// once from the rule set so the three link rules cannot fight.
type LinkMode struct {
	// Inline converts every reference link to inline form.
	Inline bool
	// Reference normalizes reference definitions (implies collecting
	// and deduping them).
	Reference bool
	// AtEnd moves definitions to the end of the document. When false
	// with Reference on, definitions are placed after the frontmatter
	// instead.
	AtEnd bool
}

// ResolveLinkMode applies rule precedence: inline-links overrides the
// reference rules; links-at-end implies reference-links.
func (rs *RuleSet) ResolveLinkMode() LinkMode {
	if rs.Enabled(RuleInlineLinks) {
		return LinkMode{Inline: true}
	}
	m := LinkMode{
		Reference: rs.Enabled(RuleReferenceLinks),
		AtEnd:     rs.Enabled(RuleLinksAtEnd),
	}
	if m.AtEnd {
		m.Reference = true
	}
	return m
}

// RuleInfo describes one rule for display purposes.
type RuleInfo struct {
	Number      int
	Keyword     string
	Description string
	Default     bool
}

// Catalog returns every rule in numeric order.
func Catalog() []RuleInfo {
	defaults := DefaultRuleSet()
	infos := make([]RuleInfo, 0, int(maxRule))
	for r := minRule; r <= maxRule; r++ {
		infos = append(infos, RuleInfo{
			Number:      int(r),
			Keyword:     ruleNames[r],
			Description: ruleDescriptions[r],
			Default:     defaults.Enabled(r),
		})
	}
	return infos
}

// Keywords returns every recognized keyword, sorted, for help output.
func Keywords() []string {
	keys := make([]string, 0, len(ruleKeywords))
	for k := range ruleKeywords {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String returns the canonical keyword for the rule.
func (r Rule) String() string {
	if name, ok := ruleNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}
