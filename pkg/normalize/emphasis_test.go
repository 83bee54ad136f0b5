package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmphasis(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "star bold to underscore",
			text: "some **bold** text",
			want: "some __bold__ text",
		},
		{
			name: "underscore italic to star",
			text: "some _italic_ text",
			want: "some *italic* text",
		},
		{
			name: "canonical forms untouched",
			text: "__bold__ and *italic*",
			want: "__bold__ and *italic*",
		},
		{
			name: "triple star bold italic",
			text: "***both***",
			want: "__*both*__",
		},
		{
			name: "triple underscore bold italic",
			text: "___both___",
			want: "__*both*__",
		},
		{
			name: "mixed triple run",
			text: "**_both_**",
			want: "__*both*__",
		},
		{
			name: "unbalanced triple left alone",
			text: "***odd**_",
			want: "***odd**_",
		},
		{
			name: "multiple spans on one line",
			text: "**a** then _b_ then **c**",
			want: "__a__ then *b* then __c__",
		},
		{
			name: "italic after a kept identifier",
			text: "snake_case and _x_",
			want: "snake_case and *x*",
		},
		{
			name: "code span protected",
			text: "see `_x_` and _italic_",
			want: "see `_x_` and *italic*",
		},
		{
			name: "emoji shortcode protected",
			text: "a :thumbs_up_sign: stays",
			want: "a :thumbs_up_sign: stays",
		},
		{
			name: "snake case identifier untouched",
			text: "call some_function_name now",
			want: "call some_function_name now",
		},
		{
			name: "no emphasis",
			text: "plain text",
			want: "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalizeEmphasis(tt.text, false))
		})
	}
}

func TestNormalizeEmphasis_Reverse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "underscore bold to star",
			text: "some __bold__ text",
			want: "some **bold** text",
		},
		{
			name: "star italic to underscore",
			text: "some *italic* text",
			want: "some _italic_ text",
		},
		{
			name: "triple run to reversed nesting",
			text: "***both***",
			want: "_**both**_",
		},
		{
			name: "canonical reversed forms untouched",
			text: "**bold** and _italic_",
			want: "**bold** and _italic_",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalizeEmphasis(tt.text, true))
		})
	}
}

func TestNormalizeEmphasis_Stable(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"some **bold** and _italic_ and ***both*** text",
		"`**not bold**` with __real__",
		"a_b_c identifiers and **bold**",
	}

	for _, in := range inputs {
		once := normalizeEmphasis(in, false)
		twice := normalizeEmphasis(once, false)
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestProtectedSpans(t *testing.T) {
	t.Parallel()

	spans := protectedSpans("a `code` b :smile: c")
	assert.Len(t, spans, 2)
	assert.True(t, spans.contains(3))  // inside the code span
	assert.True(t, spans.contains(12)) // inside the shortcode
	assert.False(t, spans.contains(0))

	assert.Empty(t, protectedSpans("nothing special"))
}

func TestReverseMarkers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "**_", reverseMarkers("_**"))
	assert.Equal(t, "***", reverseMarkers("***"))
}
