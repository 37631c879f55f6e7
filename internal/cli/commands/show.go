package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ccollicutt/chatbackup/pkg/chat"
	"github.com/ccollicutt/chatbackup/pkg/export"
)

var dateHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("12"))

// ShowOptions holds command-line options for the show command.
type ShowOptions struct {
	Format  string
	NoColor bool
}

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	opts := &ShowOptions{}

	cmd := &cobra.Command{
		Use:   "show <date> <export-file>...",
		Short: "Print the conversation of one date",
		Long: `Print the messages of a single date exactly as they would be written to
the date's backup file. Consecutive messages from the same sender are shown
as one block under a single name.

The date must be given as YYYY.MM.DD. Use 'dates' to list the available dates.

Example:
  chatbackup show 2024.01.05 KakaoTalk_Chat.txt`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args, opts)
		},
	}

	addFormatFlag(cmd, &opts.Format)
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "Disable styling of the date header")

	return cmd
}

func runShow(cmd *cobra.Command, args []string, opts *ShowOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	key, err := chat.ParseDateKey(args[0])
	if err != nil {
		return err
	}

	loaded, err := loadChat(ctx, args[1:], opts.Format)
	if err != nil {
		return err
	}

	text, err := export.FormatDate(loaded.Grouped(), key)
	if errors.Is(err, export.ErrUnknownDate) {
		fmt.Fprintf(cmd.ErrOrStderr(), "No messages on %s\n", key)
		ExitCode = 1
		return nil
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !opts.NoColor && isTerminal(out) {
		text = dateHeaderStyle.Render(key.String()) + strings.TrimPrefix(text, key.String())
	}
	_, err = io.WriteString(out, text)
	return err
}

// isTerminal reports whether w is a terminal that accepts styling.
func isTerminal(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
