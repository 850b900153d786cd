package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	platformerrors "storeicons/internal/platform/errors"
)

// FileName is the config file looked up in the working directory and then in
// the user's home directory.
const FileName = ".storeicons.yaml"

// Loader reads tool defaults from an optional yaml file, with environment
// variables (optionally from a .env file) layered on top.
type Loader struct {
	useDotEnv bool
	path      string
}

func NewLoader() *Loader {
	return &Loader{useDotEnv: true}
}

// WithDotEnv toggles loading variables from a .env file before reading config.
func (l *Loader) WithDotEnv(enabled bool) *Loader {
	l.useDotEnv = enabled
	return l
}

// WithPath pins the config file location (useful for tests).
func (l *Loader) WithPath(path string) *Loader {
	l.path = path
	return l
}

// Result captures the loaded configuration and its origin path. Path is empty
// when defaults were used.
type Result struct {
	Config *Config
	Path   string
}

func (l *Loader) resolvePath() string {
	if l.path != "" {
		return l.path
	}
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Load retrieves configuration, falling back to defaults when no file exists.
func (l *Loader) Load() (*Result, error) {
	if l.useDotEnv {
		// Missing .env just means plain environment variables.
		_ = godotenv.Load()
	}

	cfg := DefaultConfig()
	path := l.resolvePath()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, platformerrors.Wrap(platformerrors.KindConfig,
				"config load", "read config file", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, platformerrors.Wrap(platformerrors.KindConfig,
				"config load", "parse config file", err)
		}
	}

	applyEnv(cfg)
	return &Result{Config: cfg, Path: path}, nil
}

// applyEnv lets environment variables override file values.
func applyEnv(cfg *Config) {
	if v := os.Getenv("STOREICONS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("STOREICONS_LOG_DIR"); v != "" {
		cfg.Log.Dir = v
	}
	if v := os.Getenv("STOREICONS_FAMILY"); v != "" {
		cfg.Generator.DefaultFamily = v
	}
	if v := os.Getenv("STOREICONS_OUTPUT_DIR"); v != "" {
		cfg.Generator.DefaultOutputDir = v
	}
}
