package config

import (
	"os"
	"path/filepath"
	"testing"

	platformerrors "storeicons/internal/platform/errors"
)

func TestLoader_Load(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, FileName)

	configContent := `
log:
  log_level: "DEBUG"
  log_dir: "/tmp/logs"
  log_file: "test.log"
generator:
  default_family: "wide"
  default_output_dir: "/tmp/icons"
  sharpen: true
`

	if err := os.WriteFile(configFile, []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	loader := NewLoader().WithDotEnv(false).WithPath(configFile)
	result, err := loader.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	cfg := result.Config
	if cfg.Log.Level != "DEBUG" {
		t.Errorf("expected log level DEBUG, got %s", cfg.Log.Level)
	}
	if cfg.Generator.DefaultFamily != "wide" {
		t.Errorf("expected default family wide, got %s", cfg.Generator.DefaultFamily)
	}
	if cfg.Generator.DefaultOutputDir != "/tmp/icons" {
		t.Errorf("expected output dir /tmp/icons, got %s", cfg.Generator.DefaultOutputDir)
	}
	if !cfg.Generator.Sharpen {
		t.Error("expected sharpen enabled")
	}
	if result.Path != configFile {
		t.Errorf("expected path %s, got %s", configFile, result.Path)
	}
}

func TestLoader_Defaults(t *testing.T) {
	loader := NewLoader().WithDotEnv(false).WithPath(filepath.Join(t.TempDir(), "absent.yaml"))

	// A pinned but absent file reads as an error; an unpinned absent file
	// falls back to defaults.
	if _, err := loader.Load(); err == nil {
		t.Fatal("expected error for pinned missing file")
	} else if !platformerrors.IsKind(err, platformerrors.KindConfig) {
		t.Errorf("expected config kind, got %v", err)
	}
}

func TestLoader_EnvOverride(t *testing.T) {
	t.Setenv("STOREICONS_LOG_LEVEL", "ERROR")
	t.Setenv("STOREICONS_FAMILY", "wide")
	t.Setenv("HOME", t.TempDir())

	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer os.Chdir(oldWd)

	result, err := NewLoader().WithDotEnv(false).Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if result.Config.Log.Level != "ERROR" {
		t.Errorf("expected env log level ERROR, got %s", result.Config.Log.Level)
	}
	if result.Config.Generator.DefaultFamily != "wide" {
		t.Errorf("expected env family wide, got %s", result.Config.Generator.DefaultFamily)
	}
	if result.Path != "" {
		t.Errorf("expected empty path for defaults, got %s", result.Path)
	}
}

func TestLoader_InvalidYAML(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(configFile, []byte("log: [not, a, mapping"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := NewLoader().WithDotEnv(false).WithPath(configFile).Load()
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !platformerrors.IsKind(err, platformerrors.KindConfig) {
		t.Errorf("expected config kind, got %v", err)
	}
}
