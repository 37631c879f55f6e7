package commands

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatbackup/pkg/chat"
	"github.com/ccollicutt/chatbackup/pkg/parser"
)

// Version is set via ldflags at build time.
var Version = "dev"

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print the version of chatbackup and, with -v, the build and supported input formats.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "chatbackup %s\n", Version)
			if !verbose {
				return
			}

			fmt.Fprintf(w, "go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
				fmt.Fprintf(w, "module:   %s %s\n", info.Main.Path, info.Main.Version)
			}
			fmt.Fprintf(w, "formats:  %s, %s\n", chat.FormatTxt, chat.FormatCSV)
			fmt.Fprintf(w, "csv date: %s\n", strings.Join(parser.DefaultDateLayouts(), " | "))
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show build and format details")

	return cmd
}
