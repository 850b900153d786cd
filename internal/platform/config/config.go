// Package config holds tool-level defaults loaded from an optional yaml file
// and environment overrides. All generation parameters are still supplied per
// call; nothing here is required for the pipeline to run.
package config

type Config struct {
	Log       LogConfig       `yaml:"log"`
	Generator GeneratorConfig `yaml:"generator"`
}

type LogConfig struct {
	Level string `yaml:"log_level"`
	Dir   string `yaml:"log_dir"`
	File  string `yaml:"log_file"`
}

// GeneratorConfig remembers the user's usual choices so the CLI flags can
// default to them.
type GeneratorConfig struct {
	DefaultFamily    string `yaml:"default_family"`
	DefaultOutputDir string `yaml:"default_output_dir"`
	Sharpen          bool   `yaml:"sharpen"`
}
