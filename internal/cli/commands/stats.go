package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatbackup/pkg/output"
)

// StatsOptions holds command-line options for the stats command.
type StatsOptions struct {
	Format  string
	Output  string
	Verbose bool
	Quiet   bool
}

// NewStatsCommand creates the stats command.
func NewStatsCommand() *cobra.Command {
	opts := &StatsOptions{}

	cmd := &cobra.Command{
		Use:   "stats <export-file>...",
		Short: "Summarize chat exports",
		Long: `Print a summary of one or more chat exports: message and participant
counts, the first and last message, the busiest date, the dominant language and
a per-sender breakdown.

Example:
  chatbackup stats KakaoTalk_Chat.txt
  chatbackup stats -o json exports/*.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args, opts)
		},
	}

	addFormatFlag(cmd, &opts.Format)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show per-file details")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "One-line summary only")

	return cmd
}

func runStats(cmd *cobra.Command, args []string, opts *StatsOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	formatter, err := output.NewFormatter(opts.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	loaded, err := loadChat(ctx, args, opts.Format)
	if err != nil {
		return err
	}

	report := loaded.Report()
	if report.IsEmpty() {
		ExitCode = 1
	}
	return formatter.Format(ctx, report, cmd.OutOrStdout())
}
