package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		ok   bool
		want listItem
	}{
		{
			name: "bullet",
			text: "* item",
			ok:   true,
			want: listItem{marker: "*", markerSpace: " ", content: "item"},
		},
		{
			name: "numbered with indent",
			text: "  12. numbered",
			ok:   true,
			want: listItem{indent: "  ", marker: "12.", markerSpace: " ", content: "numbered"},
		},
		{
			name: "tab indent",
			text: "\t- deep",
			ok:   true,
			want: listItem{indent: "\t", marker: "-", markerSpace: " ", content: "deep"},
		},
		{
			name: "wide marker gap",
			text: "+   spaced out",
			ok:   true,
			want: listItem{marker: "+", markerSpace: "   ", content: "spaced out"},
		},
		{
			name: "plain text",
			text: "just a sentence",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			it, ok := parseListItem(tt.text)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, it)
				assert.Equal(t, tt.text, it.String())
			}
		})
	}
}

func TestListItemNumbered(t *testing.T) {
	t.Parallel()

	it, ok := parseListItem("3. third")
	require.True(t, ok)
	assert.True(t, it.numbered())

	it, ok = parseListItem("- dash")
	require.True(t, ok)
	assert.False(t, it.numbered())
}

func TestListLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		indent string
		unit   int
		want   int
	}{
		{"", 2, 0},
		{"  ", 2, 1},
		{"    ", 2, 2},
		{"    ", 4, 1},
		{"\t", 2, 1},
		{"\t\t", 4, 2},
		{"\t  ", 2, 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, listLevel(tt.indent, tt.unit), "indent %q unit %d", tt.indent, tt.unit)
	}
}

func TestBulletForLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "*", bulletForLevel(0))
	assert.Equal(t, "-", bulletForLevel(1))
	assert.Equal(t, "+", bulletForLevel(2))
	assert.Equal(t, "+", bulletForLevel(5))
}

func TestDetectIndentUnit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		doc   string
		start int
		want  int
	}{
		{
			name:  "two space nesting",
			doc:   "* a\n  * b\n",
			start: 0,
			want:  2,
		},
		{
			name:  "four space nesting",
			doc:   "* a\n    * b\n",
			start: 0,
			want:  4,
		},
		{
			name:  "flat list defaults to two",
			doc:   "* a\n* b\n* c\n",
			start: 0,
			want:  2,
		},
		{
			name:  "tab nesting defaults to two",
			doc:   "* a\n\t* b\n",
			start: 0,
			want:  2,
		},
		{
			name:  "detected from mid list",
			doc:   "text\n* a\n* b\n    * c\n",
			start: 2,
			want:  4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			lines := SplitLines([]byte(tt.doc))
			assert.Equal(t, tt.want, detectIndentUnit(lines, tt.start))
		})
	}
}

func TestNormalizeListMarker_Numbered(t *testing.T) {
	t.Parallel()

	state := &listState{indentUnit: 2}

	got, changed := normalizeListMarker("1. first", state, true)
	assert.Equal(t, "1. first", got)
	assert.False(t, changed)

	got, changed = normalizeListMarker("1. second", state, true)
	assert.Equal(t, "2. second", got)
	assert.True(t, changed)

	got, changed = normalizeListMarker("7. third", state, true)
	assert.Equal(t, "3. third", got)
	assert.True(t, changed)
}

func TestNormalizeListMarker_KeepsStartNumber(t *testing.T) {
	t.Parallel()

	state := &listState{indentUnit: 2}

	got, changed := normalizeListMarker("4. continues", state, false)
	assert.Equal(t, "4. continues", got)
	assert.False(t, changed)

	got, _ = normalizeListMarker("4. next", state, false)
	assert.Equal(t, "5. next", got)
}

func TestNormalizeListMarker_BulletLevels(t *testing.T) {
	t.Parallel()

	state := &listState{indentUnit: 2}

	got, changed := normalizeListMarker("- top", state, true)
	assert.Equal(t, "* top", got)
	assert.True(t, changed)

	got, _ = normalizeListMarker("  * nested", state, true)
	assert.Equal(t, "  - nested", got)

	got, _ = normalizeListMarker("    * deeper", state, true)
	assert.Equal(t, "    + deeper", got)

	// Returning to the top level drops the deeper contexts.
	got, _ = normalizeListMarker("- top again", state, true)
	assert.Equal(t, "* top again", got)
}

func TestNormalizeListMarker_SeparateNumberingPerLevel(t *testing.T) {
	t.Parallel()

	state := &listState{indentUnit: 2}

	got, _ := normalizeListMarker("1. outer", state, true)
	assert.Equal(t, "1. outer", got)

	got, _ = normalizeListMarker("  1. inner", state, true)
	assert.Equal(t, "  1. inner", got)

	got, _ = normalizeListMarker("  5. inner", state, true)
	assert.Equal(t, "  2. inner", got)

	got, _ = normalizeListMarker("9. outer", state, true)
	assert.Equal(t, "2. outer", got)
}

func TestNormalizeListMarker_CollapsesMarkerGap(t *testing.T) {
	t.Parallel()

	state := &listState{indentUnit: 2}

	got, changed := normalizeListMarker("*   wide gap", state, true)
	assert.Equal(t, "* wide gap", got)
	assert.True(t, changed)
}

func TestSpacesToTabs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		unit int
		want string
	}{
		{
			name: "two space unit",
			text: "  - nested",
			unit: 2,
			want: "\t- nested",
		},
		{
			name: "four space unit two levels",
			text: "        + deep",
			unit: 4,
			want: "\t\t+ deep",
		},
		{
			name: "marker gap collapses",
			text: "*   wide gap",
			unit: 2,
			want: "* wide gap",
		},
		{
			name: "already tabbed left alone",
			text: "\t*   wide gap",
			unit: 2,
			want: "\t*   wide gap",
		},
		{
			name: "non list untouched",
			text: "    indented code",
			unit: 2,
			want: "    indented code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, spacesToTabs(tt.text, tt.unit))
		})
	}
}

func TestEngine_Normalize_ListRenumbering(t *testing.T) {
	t.Parallel()

	engine := NewEngine(DefaultOptions())

	got, changed := engine.Normalize([]byte("1. first\n1. second\n1. third\n"))
	assert.True(t, changed)
	assert.Equal(t, "1. first\n2. second\n3. third\n\n", string(got))
}

func TestEngine_Normalize_ListStartNumberKept(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	rules, _, err := ParseRuleSet([]string{"list-reset"}, nil)
	require.NoError(t, err)
	opts.Rules = rules
	engine := NewEngine(opts)

	got, _ := engine.Normalize([]byte("4. fourth\n4. fifth\n"))
	assert.Equal(t, "4. fourth\n5. fifth\n\n", string(got))
}

func TestEngine_Normalize_NestedBulletMarkers(t *testing.T) {
	t.Parallel()

	engine := NewEngine(DefaultOptions())

	got, _ := engine.Normalize([]byte("- one\n- two\n  - nested\n    - deeper\n"))
	assert.Equal(t, "* one\n* two\n\t- nested\n\t\t+ deeper\n\n", string(got))
}

func TestEngine_Normalize_InterruptedListSplit(t *testing.T) {
	t.Parallel()

	engine := NewEngine(DefaultOptions())

	got, _ := engine.Normalize([]byte("* bullet one\n* bullet two\n1. number one\n1. number two\n"))
	assert.Equal(t,
		"* bullet one\n* bullet two\n\n<!-- -->\n\n1. number one\n2. number two\n\n",
		string(got))
}

func TestEngine_Normalize_NumberedAfterNestedContinuesList(t *testing.T) {
	t.Parallel()

	engine := NewEngine(DefaultOptions())

	// The nested item does not interrupt the open top-level list, so
	// the numbered item is absorbed into it as a bullet.
	got, _ := engine.Normalize([]byte("* one\n  * nested\n1. numbered\n"))
	assert.Equal(t, "* one\n\t- nested\n* numbered\n\n", string(got))
}

func TestEngine_Normalize_TaskCheckboxes(t *testing.T) {
	t.Parallel()

	engine := NewEngine(DefaultOptions())

	got, _ := engine.Normalize([]byte("- [X]  checked\n- [x] already fine\n- [ ] open\n"))
	assert.Equal(t, "* [x] checked\n* [x] already fine\n* [ ] open\n\n", string(got))
}

func TestEngine_Normalize_BlankLineBeforeList(t *testing.T) {
	t.Parallel()

	engine := NewEngine(DefaultOptions())

	got, _ := engine.Normalize([]byte("Intro paragraph.\n* first\n* second\nTrailing paragraph.\n"))
	assert.Equal(t,
		"Intro paragraph.\n\n* first\n* second\n\nTrailing paragraph.\n\n",
		string(got))
}
