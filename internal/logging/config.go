package logging

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// Config controls logger construction. It is loaded as a sub-section of the
// coordinator's overall config (internal/config).
type Config struct {
	Level  string            `koanf:"level"`  // "trace".."fatal"
	Format string            `koanf:"format"` // "json" or "console"
	Caller CallerConfig      `koanf:"caller"`
	Fields map[string]string `koanf:"fields"`
}

type CallerConfig struct {
	Enabled bool `koanf:"enabled"`
	Skip    int  `koanf:"skip"`
}

// DefaultConfig returns sane defaults: info level, JSON output, no caller.
func DefaultConfig() *Config {
	return &Config{
		Level:  "info",
		Format: "json",
	}
}

// Validate checks that Level parses and Format is recognized.
func (c *Config) Validate() error {
	if _, err := LevelFromString(c.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("invalid log format %q: must be json or console", c.Format)
	}
	return nil
}

func (c *Config) zapLevel() zapcore.Level {
	lvl, _ := LevelFromString(c.Level)
	return lvl
}
