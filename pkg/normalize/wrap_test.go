package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeForWrap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "plain words",
			text: "plain words  here",
			want: []string{"plain", "words", "here"},
		},
		{
			name: "inline link is one token",
			text: "see [text](https://example.com/x) now",
			want: []string{"see", "[text](https://example.com/x)", "now"},
		},
		{
			name: "reference link with trailing punctuation",
			text: "link [a][1], next",
			want: []string{"link", "[a][1],", "next"},
		},
		{
			name: "nested brackets",
			text: "[outer [inner]](url) tail",
			want: []string{"[outer [inner]](url)", "tail"},
		},
		{
			name: "bare brackets",
			text: "bare [brackets] only",
			want: []string{"bare", "[brackets]", "only"},
		},
		{
			name: "empty",
			text: "   ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tokenizeForWrap(tt.text))
		})
	}
}

func TestWrapText(t *testing.T) {
	t.Parallel()

	t.Run("short text unchanged", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"short"}, wrapText("short", 20, ""))
	})

	t.Run("greedy fill", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t,
			[]string{"aaa bbb", "ccc ddd"},
			wrapText("aaa bbb ccc ddd", 7, ""))
	})

	t.Run("over-long token gets its own line", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t,
			[]string{"short", "averyveryverylongtoken", "end"},
			wrapText("short averyveryverylongtoken end", 10, ""))
	})

	t.Run("link never splits", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t,
			[]string{"see", "[label](https://example.com/long/path)", "here"},
			wrapText("see [label](https://example.com/long/path) here", 20, ""))
	})

	t.Run("prefix on every line", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t,
			[]string{"> one two", "> three", "> four"},
			wrapText("one two three four", 10, "> "))
	})

	t.Run("prefix kept when content alone fits", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"> fits now"}, wrapText("fits now", 20, "> "))
	})
}

func TestShouldPreserveLine(t *testing.T) {
	t.Parallel()

	assert.True(t, shouldPreserveLine("```go"))
	assert.True(t, shouldPreserveLine("# heading"))
	assert.True(t, shouldPreserveLine("---"))
	assert.True(t, shouldPreserveLine("| a | b |"))
	assert.False(t, shouldPreserveLine("ordinary prose"))
	assert.False(t, shouldPreserveLine("   "))
}

func TestEngine_Normalize_WrapsParagraphs(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.WrapWidth = 20
	engine := NewEngine(opts)

	got, _ := engine.Normalize([]byte("alpha beta gamma delta epsilon zeta\n"))
	assert.Equal(t, "alpha beta gamma\ndelta epsilon zeta\n\n", string(got))
}

func TestEngine_Normalize_WrapsListItems(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.WrapWidth = 20
	engine := NewEngine(opts)

	got, _ := engine.Normalize([]byte("* alpha beta gamma delta epsilon\n"))
	assert.Equal(t, "* alpha beta gamma\n\tdelta epsilon\n\n", string(got))
}

func TestEngine_Normalize_WrapsBlockquotes(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.WrapWidth = 20
	engine := NewEngine(opts)

	got, _ := engine.Normalize([]byte("> alpha beta gamma delta epsilon\n"))
	assert.Equal(t, "> alpha beta gamma\n> delta epsilon\n\n", string(got))
}

func TestOptions_WidthClamp(t *testing.T) {
	t.Parallel()

	engine := NewEngine(Options{WrapWidth: 5})
	assert.Equal(t, 20, engine.Options().WrapWidth)

	engine = NewEngine(Options{})
	assert.Equal(t, DefaultWrapWidth, engine.Options().WrapWidth)
}

func TestDefaultOptions_WrapWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 60, DefaultOptions().WrapWidth)
}
