package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatbackup/pkg/output"
)

// ParseOptions holds command-line options for the parse command.
type ParseOptions struct {
	Format  string
	Output  string
	Verbose bool
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse <export-file>...",
		Short: "Parse chat exports and print the messages",
		Long: `Parse one or more chat exports and print every message in
chronological order, followed by a summary.

Text exports (.txt) and CSV exports (.csv) are supported. Files with another
extension are detected from their content. Multiple files are merged into one
timeline.

Example:
  chatbackup parse KakaoTalk_Chat.txt
  chatbackup parse -o json exports/*.csv
  chatbackup parse --format txt chat.log`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	addFormatFlag(cmd, &opts.Format)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show per-file details")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	formatter, err := output.NewFormatter(opts.Output, output.FormatOptions{
		Messages: true,
		Verbose:  opts.Verbose,
	})
	if err != nil {
		return err
	}

	loaded, err := loadChat(ctx, args, opts.Format)
	if err != nil {
		return err
	}

	return formatter.Format(ctx, loaded.Report(), cmd.OutOrStdout())
}
