package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/ccollicutt/chatbackup/pkg/parser"
)

// Default values for configuration.
const (
	DefaultOutputDir   = "."
	DefaultInputFormat = "auto"
	DefaultTimezone    = "UTC"
	DefaultLogLevel    = "warn"
)

// EnvPrefix is the prefix of environment variable overrides, e.g.
// CHATBACKUP_OUTPUT_DIR.
const EnvPrefix = "CHATBACKUP"

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:          DefaultOutputDir,
		InputFormat:        DefaultInputFormat,
		Timezone:           DefaultTimezone,
		StickerPlaceholder: parser.DefaultStickerPlaceholder,
		NoticeMarkers:      []string{},
		DateLayouts:        []string{},
		LogLevel:           DefaultLogLevel,
	}
}

// applyEnvironmentOverrides applies CHATBACKUP_* environment variables to the config.
func (c *Config) applyEnvironmentOverrides() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}

	if env.OutputDir != "" {
		c.OutputDir = env.OutputDir
	}
	if env.InputFormat != "" {
		c.InputFormat = env.InputFormat
	}
	if env.Timezone != "" {
		c.Timezone = env.Timezone
	}
	if env.LogLevel != "" {
		c.LogLevel = env.LogLevel
	}
	return nil
}
