package logger

import (
	"errors"
	"strings"
)

// Config defines the logger configuration
type Config struct {
	Level  string     `mapstructure:"level" yaml:"level"`   // debug, info, warn, error
	Format string     `mapstructure:"format" yaml:"format"` // json, console
	Output string     `mapstructure:"output" yaml:"output"` // console, file, both
	File   FileConfig `mapstructure:"file" yaml:"file"`
}

// FileConfig defines file output configuration
type FileConfig struct {
	Filename   string `mapstructure:"filename" yaml:"filename"`     // log file path
	MaxSize    int    `mapstructure:"maxsize" yaml:"maxsize"`       // max size in MB
	MaxAge     int    `mapstructure:"maxage" yaml:"maxage"`         // max age in days
	MaxBackups int    `mapstructure:"maxbackups" yaml:"maxbackups"` // max backup files
	Compress   bool   `mapstructure:"compress" yaml:"compress"`     // compress rotated files
}

// DefaultConfig returns default logger configuration
func DefaultConfig() *Config {
	return &Config{
		Level:  "info",
		Format: "console",
		Output: "console",
		File: FileConfig{
			Filename:   "logs/mdtoc.log",
			MaxSize:    10,
			MaxAge:     30,
			MaxBackups: 3,
			Compress:   true,
		},
	}
}

// Validate validates the logger configuration
func (c *Config) Validate() error {
	switch strings.ToLower(c.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("invalid log level, must be one of: debug, info, warn, error")
	}

	if c.Format != "json" && c.Format != "console" {
		return errors.New("invalid log format, must be 'json' or 'console'")
	}

	if c.Output != "console" && c.Output != "file" && c.Output != "both" {
		return errors.New("invalid log output, must be 'console', 'file' or 'both'")
	}

	// Validate file config when output is file or both
	if c.Output == "file" || c.Output == "both" {
		if c.File.Filename == "" {
			return errors.New("log file filename is required when output is 'file' or 'both'")
		}
		if c.File.MaxSize <= 0 {
			return errors.New("log file maxsize must be greater than 0")
		}
		if c.File.MaxAge <= 0 {
			return errors.New("log file maxage must be greater than 0")
		}
		if c.File.MaxBackups < 0 {
			return errors.New("log file maxbackups must be greater than or equal to 0")
		}
	}

	return nil
}
