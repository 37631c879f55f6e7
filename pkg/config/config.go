package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/chatbackup/pkg/chat"
	"github.com/ccollicutt/chatbackup/pkg/parser"
)

var validate = validator.New()

// Load reads and validates a configuration file. Files ending in .toml are
// decoded as TOML, everything else as YAML.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := decode(path, data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return finish(cfg)
}

// LoadDefault loads the user config from the default location
// ($HOME/.config/chatbackup/config.yaml or config.toml). Defaults are used
// when neither file exists.
func LoadDefault(ctx context.Context) (*Config, error) {
	if path := DefaultPath(); path != "" {
		return Load(ctx, path)
	}
	return finish(DefaultConfig())
}

// DefaultPath returns the first existing default config file, or "".
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	dir := filepath.Join(home, ".config", "chatbackup")
	for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err := toml.Decode(string(data), cfg)
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func finish(cfg *Config) (*Config, error) {
	if err := cfg.applyEnvironmentOverrides(); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks a configuration for errors, resolves the time zone and
// expands a leading ~ in output_dir.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return describe(err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	cfg.location = loc

	dir, err := expandHome(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("output_dir: %w", err)
	}
	cfg.OutputDir = dir

	return nil
}

// describe turns validator errors into messages naming the config keys.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		key := yamlKey(fe.StructField())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, key+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s: invalid value %q (must be one of: %s)", key, fe.Value(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: failed %s check", key, fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// yamlKey converts a Go field name such as InputFormat (or NoticeMarkers[0])
// to its config key.
func yamlKey(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Format returns the forced input format, or false for "auto".
func (c *Config) Format() (chat.Format, bool) {
	if c.InputFormat == "" || c.InputFormat == DefaultInputFormat {
		return "", false
	}
	f, err := chat.ParseFormat(c.InputFormat)
	if err != nil {
		return "", false
	}
	return f, true
}

// ParserOptions converts the configuration into parser options.
func (c *Config) ParserOptions() []parser.Option {
	opts := []parser.Option{
		parser.WithLocation(c.Location()),
		parser.WithStickerPlaceholder(c.StickerPlaceholder),
	}
	if len(c.NoticeMarkers) > 0 {
		opts = append(opts, parser.WithNoticeMarkers(c.NoticeMarkers...))
	}
	if len(c.DateLayouts) > 0 {
		opts = append(opts, parser.WithDateLayouts(c.DateLayouts...))
	}
	return opts
}
