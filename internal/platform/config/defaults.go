package config

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: "INFO",
			Dir:   "",
			File:  "storeicons.log",
		},
		Generator: GeneratorConfig{
			DefaultFamily: "square",
			Sharpen:       false,
		},
	}
}
