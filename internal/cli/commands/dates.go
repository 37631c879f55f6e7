package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatbackup/pkg/output"
)

// DatesOptions holds command-line options for the dates command.
type DatesOptions struct {
	Format string
}

// NewDatesCommand creates the dates command.
func NewDatesCommand() *cobra.Command {
	opts := &DatesOptions{}

	cmd := &cobra.Command{
		Use:   "dates <export-file>...",
		Short: "List the dates that have messages",
		Long: `List every date that has at least one message, oldest first, with the
number of messages and senders on that date.

The dates are printed as YYYY.MM.DD and can be passed to 'show' and
'export --date'.

Example:
  chatbackup dates KakaoTalk_Chat.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDates(cmd, args, opts)
		},
	}

	addFormatFlag(cmd, &opts.Format)

	return cmd
}

func runDates(cmd *cobra.Command, args []string, opts *DatesOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	loaded, err := loadChat(ctx, args, opts.Format)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	g := loaded.Grouped()
	if g.Len() == 0 {
		fmt.Fprintln(out, "No messages found.")
		ExitCode = 1
		return nil
	}

	output.WriteDateTable(out, output.DateCounts(g))
	return nil
}
