package config

import "fmt"

// Config is the root application configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Builder BuilderConfig `yaml:"builder"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// BuilderConfig holds batch builder settings.
type BuilderConfig struct {
	// ProgressEvery controls how often the driver logs ingestion progress,
	// in words.
	ProgressEvery int `yaml:"progress_every" env:"BUILDER_PROGRESS_EVERY" env-default:"500"`
	// DataVersion is stamped into the output directory's settings store so
	// consumers can detect stale prebuilt files.
	DataVersion string `yaml:"data_version" env:"BUILDER_DATA_VERSION" env-default:"1"`
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Builder.ProgressEvery <= 0 {
		return fmt.Errorf("builder.progress_every must be positive, got %d", c.Builder.ProgressEvery)
	}
	if c.Builder.DataVersion == "" {
		return fmt.Errorf("builder.data_version must not be empty")
	}
	return nil
}
