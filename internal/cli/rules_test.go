package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRulesCommand(t *testing.T) {
	cmd := newRulesCommand()
	assert.Equal(t, "rules", cmd.Name())
	assert.NotNil(t, cmd.Run)
}

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"usage", ErrUsage, ExitInvalidUsage},
		{"config", ErrConfigLoad, ExitConfigError},
		{"files failed", ErrFilesFailed, ExitRunErrors},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeForError(tt.err))
		})
	}
}
