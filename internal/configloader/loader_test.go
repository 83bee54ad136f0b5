package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ttscoff/md-fixup/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	// Create temp directory with no config files
	tmpDir := t.TempDir()

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}

	// Check defaults are applied
	if result.Config.Width != config.DefaultWidth {
		t.Errorf("expected width %d, got %d", config.DefaultWidth, result.Config.Width)
	}
	if result.Config.Overwrite {
		t.Error("expected overwrite to default to false")
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
width: 72
rules:
  skip:
    - wrap
`
	configPath := filepath.Join(tmpDir, ".md-fixup")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Width != 72 {
		t.Errorf("expected width 72, got %d", result.Config.Width)
	}

	if len(result.Config.Rules.Skip) != 1 || result.Config.Rules.Skip[0] != "wrap" {
		t.Errorf("expected skip [wrap], got %v", result.Config.Rules.Skip)
	}

	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
width: 100
overwrite: true
`
	customPath := filepath.Join(tmpDir, "custom-config.yml")
	if err := os.WriteFile(customPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		ExplicitPath:       customPath,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Width != 100 {
		t.Errorf("expected width 100, got %d", result.Config.Width)
	}
	if !result.Config.Overwrite {
		t.Error("expected overwrite true from explicit config")
	}
}

func TestLoad_ExplicitOverridesProject(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	projectPath := filepath.Join(tmpDir, ".md-fixup")
	if err := os.WriteFile(projectPath, []byte("width: 72\n"), 0644); err != nil {
		t.Fatalf("write project config: %v", err)
	}

	explicitPath := filepath.Join(tmpDir, "other.yml")
	if err := os.WriteFile(explicitPath, []byte("width: 120\n"), 0644); err != nil {
		t.Fatalf("write explicit config: %v", err)
	}

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		ExplicitPath:       explicitPath,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Width != 120 {
		t.Errorf("expected explicit config to win, got width %d", result.Config.Width)
	}
	if len(result.LoadedFrom) != 2 {
		t.Errorf("expected 2 loaded files, got %d: %v", len(result.LoadedFrom), result.LoadedFrom)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
width: 72
`
	configPath := filepath.Join(tmpDir, ".md-fixup")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	cliCfg := &config.Config{
		Width:     100,
		Overwrite: true,
		Rules: config.RulesConfig{
			Skip: config.SkipList{"table-format"},
		},
	}
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
		CLIConfig:          cliCfg,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// CLI should override project config
	if result.Config.Width != 100 {
		t.Errorf("expected width 100 (CLI override), got %d", result.Config.Width)
	}

	if !result.Config.Overwrite {
		t.Error("expected overwrite true (CLI override)")
	}

	if len(result.Config.Rules.Skip) != 1 || result.Config.Rules.Skip[0] != "table-format" {
		t.Errorf("expected CLI skip list to replace config, got %v", result.Config.Rules.Skip)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	// Not parallel because it modifies the environment.

	tmpDir := t.TempDir()

	t.Setenv("MDFIXUP_WIDTH", "90")
	t.Setenv("MDFIXUP_SKIP", "wrap, table-format")

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Width != 90 {
		t.Errorf("expected width 90 from environment, got %d", result.Config.Width)
	}
	if len(result.Config.Rules.Skip) != 2 {
		t.Errorf("expected 2 skip entries from environment, got %v", result.Config.Rules.Skip)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
rules:
  skip:
    - no-such-rule
`
	configPath := filepath.Join(tmpDir, ".md-fixup")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}

	_, err := Load(ctx, opts)
	if err == nil {
		t.Fatal("expected validation error for unknown rule selector")
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	opts := LoadOptions{
		WorkingDir:         t.TempDir(),
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}

	_, err := Load(ctx, opts)
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestFindProjectConfig_SearchesUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "docs", "guides")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	configPath := filepath.Join(root, ".md-fixup")
	if err := os.WriteFile(configPath, []byte("width: 60\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	found, err := FindProjectConfig(context.Background(), nested)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}

	if found != configPath {
		t.Errorf("expected %q, got %q", configPath, found)
	}
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	// Config above the VCS root must not be found.
	if err := os.WriteFile(filepath.Join(root, ".md-fixup"), []byte("width: 60\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	repo := filepath.Join(root, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	nested := filepath.Join(repo, "docs")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, err := FindProjectConfig(context.Background(), nested)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}

	if found != "" {
		t.Errorf("expected no config past VCS root, got %q", found)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     *config.Config
		wantErr bool
	}{
		{"nil config", nil, false},
		{"defaults", config.NewConfig(), false},
		{"negative width", &config.Config{Width: -1}, true},
		{"bad format", &config.Config{Format: "yaml"}, true},
		{"bad backup mode", &config.Config{Backups: config.BackupsConfig{Mode: "cloud"}}, true},
		{"bad rule selector", &config.Config{Rules: config.RulesConfig{Skip: config.SkipList{"bogus"}}}, true},
		{"valid rule selectors", &config.Config{Rules: config.RulesConfig{
			Skip:    config.SkipList{"all"},
			Include: []string{"wrap", "14"},
		}}, false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := Validate(testCase.cfg)
			if testCase.wantErr && result.Valid() {
				t.Error("expected validation error")
			}
			if !testCase.wantErr && !result.Valid() {
				t.Errorf("unexpected validation errors: %v", result.Errors)
			}
		})
	}
}
