package logger

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
)

var (
	validLevels  = []string{"trace", "debug", "info", "warn", "error", "fatal"}
	validFormats = []string{"json", "console", "pretty", "text"}
)

// Config contains logging configuration.
type Config struct {
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
	Level       string `yaml:"level" mapstructure:"level"`
	Format      string `yaml:"format" mapstructure:"format"`
	Output      string `yaml:"output" mapstructure:"output"`
	NoColor     bool   `yaml:"no_color" mapstructure:"no_color"`
	Timestamp   bool   `yaml:"timestamp" mapstructure:"timestamp"`
	Caller      bool   `yaml:"caller" mapstructure:"caller"`
}

// ConfigFromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_OUTPUT, LOG_NO_COLOR and
// LOG_TIMESTAMP. Unset or malformed values keep their defaults.
func ConfigFromEnv() Config {
	cfg := Config{Level: "info", Format: "console", Output: "stdout", Timestamp: true}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok && v != "" {
		cfg.Level = v
	}
	if v, ok := os.LookupEnv("LOG_FORMAT"); ok && v != "" {
		cfg.Format = v
	}
	if v, ok := os.LookupEnv("LOG_OUTPUT"); ok && v != "" {
		cfg.Output = v
	}
	if b, err := strconv.ParseBool(os.Getenv("LOG_NO_COLOR")); err == nil {
		cfg.NoColor = b
	}
	if b, err := strconv.ParseBool(os.Getenv("LOG_TIMESTAMP")); err == nil {
		cfg.Timestamp = b
	}
	return cfg
}

// ApplyDefaults fills empty fields. Timestamps are always on.
func (c *Config) ApplyDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "restwire"
	}
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
	c.Timestamp = true
}

// Validate validates logging configuration.
func (c *Config) Validate() error {
	if !slices.Contains(validLevels, c.Level) {
		return fmt.Errorf("logging.level must be one of %v (got: %s)", validLevels, c.Level)
	}
	if !slices.Contains(validFormats, c.Format) {
		return fmt.Errorf("logging.format must be one of %v (got: %s)", validFormats, c.Format)
	}
	return nil
}

func (c *Config) console() bool {
	switch strings.ToLower(c.Format) {
	case "console", "pretty":
		return true
	}
	return false
}

func (c *Config) writer() io.Writer {
	if strings.EqualFold(c.Output, "stderr") {
		return os.Stderr
	}
	return os.Stdout
}
