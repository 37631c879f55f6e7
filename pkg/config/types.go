// Package config provides configuration loading and validation for chatbackup.
package config

import "time"

// Config is the root configuration structure loaded from YAML or TOML.
type Config struct {
	// OutputDir is where export writes backup files.
	OutputDir string `yaml:"output_dir" toml:"output_dir" validate:"required"`

	// InputFormat forces the parser format; "auto" picks it per file.
	InputFormat string `yaml:"input_format" toml:"input_format" validate:"required,oneof=auto txt csv"`

	// Timezone is the IANA zone timestamps are interpreted in.
	Timezone string `yaml:"timezone" toml:"timezone" validate:"required"`

	// StickerPlaceholder is the token exports use in place of stickers.
	StickerPlaceholder string `yaml:"sticker_placeholder" toml:"sticker_placeholder" validate:"required"`

	// NoticeMarkers are extra system-notice substrings added to the built-ins.
	NoticeMarkers []string `yaml:"notice_markers,omitempty" toml:"notice_markers" validate:"dive,required"`

	// DateLayouts are extra Go time layouts tried for CSV Date values.
	DateLayouts []string `yaml:"date_layouts,omitempty" toml:"date_layouts" validate:"dive,required"`

	// LogLevel is the logrus level name.
	LogLevel string `yaml:"log_level" toml:"log_level" validate:"required,oneof=trace debug info warn warning error"`

	// location is the resolved Timezone (populated during validation).
	location *time.Location
}

// Location returns the resolved time zone, or UTC before validation.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// envOverrides holds values read from CHATBACKUP_* environment variables.
type envOverrides struct {
	OutputDir   string `envconfig:"OUTPUT_DIR"`
	InputFormat string `envconfig:"INPUT_FORMAT"`
	Timezone    string `envconfig:"TIMEZONE"`
	LogLevel    string `envconfig:"LOG_LEVEL"`
}
