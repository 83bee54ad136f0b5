package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestCutFlagSpec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		line  string
		spec  string
		desc  string
		found bool
	}{
		{"long and short", "-w, --width int   wrap width for paragraphs", "-w, --width int", "wrap width for paragraphs", true},
		{"long only", "--overwrite   write changes back to disk", "--overwrite", "write changes back to disk", true},
		{"no separator", "--overwrite write", "", "", false},
		{"empty", "", "", "", false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			spec, desc, found := cutFlagSpec(testCase.line)
			if found != testCase.found {
				t.Fatalf("found = %v, want %v", found, testCase.found)
			}
			if spec != testCase.spec || desc != testCase.desc {
				t.Errorf("got (%q, %q), want (%q, %q)", spec, desc, testCase.spec, testCase.desc)
			}
		})
	}
}

func TestHelpFormatter_RendersUsage(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{
		Use:   "md-fixup",
		Short: "Normalize Markdown documents",
		RunE:  func(*cobra.Command, []string) error { return nil },
	}
	cmd.Flags().IntP("width", "w", 60, "wrap width for paragraphs")

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--help"})

	formatter := NewHelpFormatter("never", io.Discard)
	formatter.ApplyToCommand(cmd)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Usage:", "md-fixup", "--width", "wrap width for paragraphs"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q:\n%s", want, out)
		}
	}
}
