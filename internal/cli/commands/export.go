package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatbackup/internal/logging"
	"github.com/ccollicutt/chatbackup/pkg/chat"
	"github.com/ccollicutt/chatbackup/pkg/export"
)

// ExportOptions holds command-line options for the export command.
type ExportOptions struct {
	Format string
	Date   string
	From   string
	To     string
	All    bool
	Dir    string
	Stdout bool
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export <export-file>...",
		Short: "Write a text backup of the chat",
		Long: `Write a plain-text backup of the chat. Each date is written as a
YYYY.MM.DD heading followed by its messages, with consecutive messages from the
same sender grouped under one name.

Selections and file names:
  --all (default)        chat-backup.txt
  --date D               chat-D.txt
  --from S --to E        chat-S-to-E.txt
  --from S               chat-from-S.txt
  --to E                 chat-until-E.txt

Exit codes:
  0 - Backup written
  1 - The selection contains no messages
  2 - Configuration or runtime error

Example:
  chatbackup export KakaoTalk_Chat.txt
  chatbackup export --date 2024.01.05 KakaoTalk_Chat.txt
  chatbackup export --from 2024.01.01 --to 2024.01.31 --dir backups chat.csv
  chatbackup export --stdout chat.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, opts)
		},
	}

	addFormatFlag(cmd, &opts.Format)
	cmd.Flags().StringVar(&opts.Date, "date", "", "Export a single date (YYYY.MM.DD)")
	cmd.Flags().StringVar(&opts.From, "from", "", "First date of the range (YYYY.MM.DD)")
	cmd.Flags().StringVar(&opts.To, "to", "", "Last date of the range (YYYY.MM.DD)")
	cmd.Flags().BoolVar(&opts.All, "all", false, "Export every date (default)")
	cmd.Flags().StringVarP(&opts.Dir, "dir", "d", "", "Output directory (default from config)")
	cmd.Flags().BoolVar(&opts.Stdout, "stdout", false, "Write the backup to stdout instead of a file")

	cmd.MarkFlagsMutuallyExclusive("date", "from")
	cmd.MarkFlagsMutuallyExclusive("date", "to")
	cmd.MarkFlagsMutuallyExclusive("date", "all")
	cmd.MarkFlagsMutuallyExclusive("all", "from")
	cmd.MarkFlagsMutuallyExclusive("all", "to")

	return cmd
}

func runExport(cmd *cobra.Command, args []string, opts *ExportOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	loaded, err := loadChat(ctx, args, opts.Format)
	if err != nil {
		return err
	}

	backup, label, err := selectBackup(loaded.Grouped(), opts)
	if err != nil {
		return err
	}

	if backup.Empty() {
		fmt.Fprintf(cmd.ErrOrStderr(), "No messages to export for %s\n", label)
		ExitCode = 1
		return nil
	}

	if opts.Stdout {
		_, err := io.WriteString(cmd.OutOrStdout(), backup.Content)
		return err
	}

	dir := opts.Dir
	if dir == "" {
		dir = loaded.Config.OutputDir
	}
	path, err := backup.Save(dir)
	if err != nil {
		return err
	}

	logging.NewLogger("export").
		WithField("path", path).
		WithField("dates", len(backup.Dates)).
		Info("backup written")
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d date(s) to %s\n", len(backup.Dates), path)
	return nil
}

// selectBackup renders the backup chosen by the selection flags and a label
// describing it.
func selectBackup(g *chat.Grouped, opts *ExportOptions) (export.Backup, string, error) {
	switch {
	case opts.Date != "":
		key, err := chat.ParseDateKey(opts.Date)
		if err != nil {
			return export.Backup{}, "", err
		}
		if !g.Has(key) {
			return export.Backup{Name: export.DateFileName(key)}, key.String(), nil
		}
		b, err := export.ForDate(g, key)
		return b, key.String(), err

	case opts.From != "" || opts.To != "":
		r, err := export.NewRange(opts.From, opts.To)
		if err != nil {
			return export.Backup{}, "", err
		}
		b, err := export.ForRange(g, r)
		return b, r.String(), err

	default:
		return export.Full(g), "all dates", nil
	}
}
