package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ttscoff/md-fixup/internal/logging"
)

func TestIntoContextFromContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	attached := logging.NewWriter(&buf, "debug")

	ctx := logging.IntoContext(context.Background(), attached)
	got := logging.FromContext(ctx)
	if got != attached {
		t.Fatal("FromContext did not return the attached logger")
	}

	got.Debug("worker output")
	if !strings.Contains(buf.String(), "worker output") {
		t.Errorf("expected output to contain message, got %q", buf.String())
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	t.Parallel()

	if logging.FromContext(context.Background()) != logging.Default() {
		t.Error("bare context should yield the default logger")
	}

	if logging.FromContext(nil) != logging.Default() { //nolint:staticcheck // nil fallback is part of the contract
		t.Error("nil context should yield the default logger")
	}
}

func TestIntoContextNilContext(t *testing.T) {
	t.Parallel()

	attached := logging.New("info")
	ctx := logging.IntoContext(nil, attached) //nolint:staticcheck // nil fallback is part of the contract
	if logging.FromContext(ctx) != attached {
		t.Error("IntoContext with nil context should still carry the logger")
	}
}
