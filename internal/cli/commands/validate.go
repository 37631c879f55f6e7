package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatbackup/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a chatbackup configuration file without parsing any export.

Checks:
  - YAML or TOML syntax
  - Allowed values for input_format and log_level
  - Time zone name
  - Output directory path

CHATBACKUP_* environment variables are applied before validation.`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Input format:        %s\n", cfg.InputFormat)
	fmt.Fprintf(out, "  Output dir:          %s\n", cfg.OutputDir)
	fmt.Fprintf(out, "  Timezone:            %s\n", cfg.Location())
	fmt.Fprintf(out, "  Sticker placeholder: %s\n", cfg.StickerPlaceholder)
	fmt.Fprintf(out, "  Log level:           %s\n", cfg.LogLevel)

	if len(cfg.NoticeMarkers) > 0 {
		fmt.Fprintf(out, "\nExtra notice markers:\n")
		for _, m := range cfg.NoticeMarkers {
			fmt.Fprintf(out, "  - %s\n", m)
		}
	}
	if len(cfg.DateLayouts) > 0 {
		fmt.Fprintf(out, "\nExtra date layouts: %s\n", strings.Join(cfg.DateLayouts, ", "))
	}

	return nil
}
