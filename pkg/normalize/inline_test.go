package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTrailingWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"trailing spaces", "text   ", "text"},
		{"trailing tabs", "text\t\t", "text"},
		{"mixed", "text \t ", "text"},
		{"hard break kept", "text  ", "text  "},
		{"hard break after tab", "text\t  ", "text  "},
		{"clean line", "text", "text"},
		{"three spaces stripped", "text   ", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalizeTrailingWhitespace(tt.text))
		})
	}
}

func TestNormalizeHeadingSpacing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want string
	}{
		{"#Title", "# Title"},
		{"##  Wide", "## Wide"},
		{"### Fine", "### Fine"},
		{"not a heading", "not a heading"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeHeadingSpacing(tt.text), "text %q", tt.text)
	}
}

func TestNormalizeIALSpacing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want string
	}{
		{"para {:.class}", "para {: .class}"},
		{"para {:   .a   .b}", "para {: .a .b}"},
		{"para {.plain}", "para {.plain}"},
		{"para { .spaced  }", "para {.spaced}"},
		{"no attributes", "no attributes"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeIALSpacing(tt.text), "text %q", tt.text)
	}
}

func TestNormalizeFenceLang(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want string
	}{
		{"``` python", "```python"},
		{"```Python", "```python"},
		{"```golang", "```go"},
		{"~~~ ruby", "~~~ruby"},
		{"```", "```"},
		{"```unknownlang", "```unknownlang"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeFenceLang(tt.text), "text %q", tt.text)
	}
}

func TestNormalizeRefDefSpacing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want string
	}{
		{"[1]:https://example.com", "[1]: https://example.com"},
		{"[tag]  :   https://example.com", "[tag]: https://example.com"},
		{"[ok]: https://example.com", "[ok]: https://example.com"},
		{"not a definition", "not a definition"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeRefDefSpacing(tt.text), "text %q", tt.text)
	}
}

func TestNormalizeTaskCheckbox(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want string
	}{
		{"- [X] done", "- [x] done"},
		{"- [x]   wide gap", "- [x] wide gap"},
		{"  * [X] nested", "  * [x] nested"},
		{"- [ ] open box untouched", "- [ ] open box untouched"},
		{"- no box", "- no box"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeTaskCheckbox(tt.text), "text %q", tt.text)
	}
}

func TestNormalizeBlockquoteSpacing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want string
	}{
		{">quoted", "> quoted"},
		{"  >indented", "  > indented"},
		{"> already fine", "> already fine"},
		{">> nested marker untouched", ">> nested marker untouched"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeBlockquoteSpacing(tt.text), "text %q", tt.text)
	}
}

func TestNormalizeTypography(t *testing.T) {
	t.Parallel()

	t.Run("full conversion", func(t *testing.T) {
		t.Parallel()
		got := normalizeTypography("“quote” ‘single’ en–dash em—dash ellipsis… «guillemets»", false, false)
		assert.Equal(t, `"quote" 'single' en--dash em---dash ellipsis... "guillemets"`, got)
	})

	t.Run("em dash skipped", func(t *testing.T) {
		t.Parallel()
		got := normalizeTypography("a—b and “c”", true, false)
		assert.Equal(t, `a—b and "c"`, got)
	})

	t.Run("guillemets skipped", func(t *testing.T) {
		t.Parallel()
		got := normalizeTypography("«keep» but “fix”", false, true)
		assert.Equal(t, `«keep» but "fix"`, got)
	})

	t.Run("ascii untouched", func(t *testing.T) {
		t.Parallel()
		text := `plain "ascii" text -- with dashes...`
		assert.Equal(t, text, normalizeTypography(text, false, false))
	})
}

func TestNormalizeMathSpacing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "display math trimmed",
			text: "$$ x^2 + y^2 $$",
			want: "$$x^2 + y^2$$",
		},
		{
			name: "inline math trimmed",
			text: "value $ x + y $ matters",
			want: "value $x + y$ matters",
		},
		{
			name: "currency spacing kept",
			text: "it costs $5 and $10 total",
			want: "it costs $5 and $10 total",
		},
		{
			name: "shell variable untouched",
			text: "run $ HOME and $PATH now",
			want: "run $ HOME and $PATH now",
		},
		{
			name: "no math",
			text: "nothing to do",
			want: "nothing to do",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalizeMathSpacing(tt.text))
		})
	}
}
