package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountColumns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want int
	}{
		{"| a | b |", 2},
		{"| a | b | c |", 3},
		{"a | b", 2},
		{"single", 1},
		{"", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, countColumns(tt.text), "text %q", tt.text)
	}
}

func TestSeparatorAlignments(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]string{alignLeft, alignRight, alignCenter, alignLeft},
		separatorAlignments("|:--|--:|:-:|---|"))

	assert.Nil(t, separatorAlignments("|"))
}

func TestPadCell(t *testing.T) {
	t.Parallel()

	assert.Equal(t, " x    ", padCell(" x ", alignLeft, 6))
	assert.Equal(t, "    x ", padCell(" x ", alignRight, 6))
	assert.Equal(t, "   x   ", padCell(" x ", alignCenter, 7))
	assert.Equal(t, " wide ", padCell(" wide ", alignLeft, 3))
}

func TestFormatTable(t *testing.T) {
	t.Parallel()

	t.Run("pads and aligns columns", func(t *testing.T) {
		t.Parallel()
		got := formatTable([]string{
			"| Name | Value |",
			"|---|---|",
			"| a | 1 |",
			"| long name | 22 |",
		})
		assert.Equal(t, []string{
			"| Name      | Value |",
			"|:----------|:------|",
			"| a         | 1     |",
			"| long name | 22    |",
		}, got)
	})

	t.Run("honors alignment markers", func(t *testing.T) {
		t.Parallel()
		got := formatTable([]string{
			"| l | r | c |",
			"|:--|--:|:-:|",
			"| aa | bb | cc |",
		})
		assert.Equal(t, []string{
			"| l  |  r | c  |",
			"|:---|---:|:--:|",
			"| aa | bb | cc |",
		}, got)
	})

	t.Run("missing separator gets a default", func(t *testing.T) {
		t.Parallel()
		got := formatTable([]string{
			"| a | b |",
			"| c | d |",
		})
		assert.Equal(t, []string{
			"| a | b |",
			"|:--|:--|",
			"| c | d |",
		}, got)
	})

	t.Run("headerless table keeps separator first", func(t *testing.T) {
		t.Parallel()
		got := formatTable([]string{
			"|---|---|",
			"| a | b |",
		})
		assert.Equal(t, []string{
			"|:--|:--|",
			"| a | b |",
		}, got)
	})

	t.Run("wide runes measured by display width", func(t *testing.T) {
		t.Parallel()
		got := formatTable([]string{
			"| lang | word |",
			"|---|---|",
			"| ja | 日本語 |",
		})
		assert.Equal(t, []string{
			"| lang | word   |",
			"|:-----|:-------|",
			"| ja   | 日本語 |",
		}, got)
	})

	t.Run("short rows padded with empty cells", func(t *testing.T) {
		t.Parallel()
		got := formatTable([]string{
			"| a | b | c |",
			"|---|---|---|",
			"| x |",
		})
		assert.Equal(t, []string{
			"| a | b | c |",
			"|:--|:--|:--|",
			"| x |   |   |",
		}, got)
	})

	t.Run("not a table", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, formatTable([]string{"| only one row |"}))
		assert.Nil(t, formatTable([]string{"no pipes here", "none here either"}))
	})
}

func TestEngine_Normalize_TableRun(t *testing.T) {
	t.Parallel()

	engine := NewEngine(DefaultOptions())

	got, changed := engine.Normalize([]byte("| h | k |\n|---|---|\n| one | two |\n"))
	assert.True(t, changed)
	assert.Equal(t, "| h   | k   |\n|:----|:----|\n| one | two |\n\n", string(got))
}

func TestEngine_Normalize_TableSkipped(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	rules, _, err := ParseRuleSet([]string{"table-format"}, nil)
	assert.NoError(t, err)
	opts.Rules = rules
	engine := NewEngine(opts)

	in := "| h | k |\n|---|---|\n| one | two |\n\n"
	got, changed := engine.Normalize([]byte(in))
	assert.False(t, changed)
	assert.Equal(t, in, string(got))
}
