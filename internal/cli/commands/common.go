package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatbackup/internal/logging"
	"github.com/ccollicutt/chatbackup/pkg/chat"
	"github.com/ccollicutt/chatbackup/pkg/config"
	"github.com/ccollicutt/chatbackup/pkg/detector"
	"github.com/ccollicutt/chatbackup/pkg/output"
	"github.com/ccollicutt/chatbackup/pkg/parser"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// GlobalOptions holds the flags shared by every command.
type GlobalOptions struct {
	ConfigPath string
	LogLevel   string
}

// Globals is bound to the root command's persistent flags.
var Globals = &GlobalOptions{}

// BindGlobalFlags registers the shared flags on the root command.
func BindGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&Globals.ConfigPath, "config", "c", "", "Config file (default ~/.config/chatbackup/config.yaml)")
	cmd.PersistentFlags().StringVar(&Globals.LogLevel, "log-level", "", "Log level (trace|debug|info|warn|error)")
}

// loadConfig loads the config named by --config, or the default one, and
// applies the effective log level.
func loadConfig(ctx context.Context) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if Globals.ConfigPath != "" {
		cfg, err = config.Load(ctx, Globals.ConfigPath)
	} else {
		cfg, err = config.LoadDefault(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.LogLevel
	if Globals.LogLevel != "" {
		level = Globals.LogLevel
	}
	if err := logging.SetLevel(level); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadedChat is the merged result of parsing every input file.
type loadedChat struct {
	Config   *config.Config
	Messages []chat.Message
	Sources  []output.Source
	Started  time.Time
}

// Grouped groups the merged messages by date.
func (l *loadedChat) Grouped() *chat.Grouped {
	return chat.GroupByDate(l.Messages)
}

// Report builds the output report for the merged messages.
func (l *loadedChat) Report() *output.Report {
	return output.NewReport(l.Messages, l.Sources, l.Started)
}

// loadChat reads, parses and merges the exports matched by patterns.
func loadChat(ctx context.Context, patterns []string, formatFlag string) (*loadedChat, error) {
	started := time.Now()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	paths, err := parser.ExpandGlobs(patterns)
	if err != nil {
		return nil, err
	}
	inputs, err := parser.ReadInputs(ctx, paths)
	if err != nil {
		return nil, err
	}

	log := logging.NewLogger("cli")
	opts := append(cfg.ParserOptions(), parser.WithLogger(logging.NewLogger("parser")))
	p, err := parser.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating parser: %w", err)
	}

	seqs := make([][]chat.Message, 0, len(inputs))
	sources := make([]output.Source, 0, len(inputs))
	for _, in := range inputs {
		format, err := resolveFormat(formatFlag, cfg, in)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", in.Path, err)
		}

		messages, err := p.Parse(in.Text(), format)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", in.Path, err)
		}
		log.WithField("path", in.Path).
			WithField("format", format).
			WithField("messages", len(messages)).
			Debug("parsed export")

		seqs = append(seqs, messages)
		sources = append(sources, output.Source{Path: in.Path, Format: format, Messages: len(messages)})
	}

	return &loadedChat{
		Config:   cfg,
		Messages: chat.Merge(seqs...),
		Sources:  sources,
		Started:  started,
	}, nil
}

// resolveFormat picks the input format from the flag, then the config, then
// the file extension, then content detection.
func resolveFormat(flag string, cfg *config.Config, in *parser.Input) (chat.Format, error) {
	if flag != "" && flag != config.DefaultInputFormat {
		return chat.ParseFormat(flag)
	}
	if f, ok := cfg.Format(); ok {
		return f, nil
	}
	if f, ok := chat.FormatFromPath(in.Path); ok {
		return f, nil
	}
	return detector.New().DetectFromBytes(in.Data).Format()
}

func addFormatFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "format", "", "Input format (auto|txt|csv), overrides config and file extension")
}
