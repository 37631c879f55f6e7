// Package cli provides the command-line interface for chatbackup.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatbackup/internal/cli/commands"
	"github.com/ccollicutt/chatbackup/internal/cli/plugins"
	"github.com/ccollicutt/chatbackup/pkg/config"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

// Run executes the command line args and returns the exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	commands.ExitCode = 0

	rootCmd := NewRootCommand()

	// An unknown first word may name a chatbackup-<command> plugin.
	pluginCommand := ""
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' && !isBuiltinCommand(rootCmd, args[0]) {
		pluginCommand = args[0]
		if pluginPath, err := plugins.FindPlugin(pluginCommand); err == nil {
			host := plugins.Host{Version: commands.Version, ConfigPath: config.DefaultPath()}
			return plugins.Execute(ctx, pluginPath, args[1:], host, stdout, stderr)
		}
	}

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if pluginCommand != "" {
			_, _ = fmt.Fprintln(stderr, plugins.FormatNotFoundError(pluginCommand))
			return 2
		}
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// isBuiltinCommand checks if name is a subcommand of rootCmd.
func isBuiltinCommand(rootCmd *cobra.Command, name string) bool {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return true
		}
	}
	return name == "help" || name == "completion" ||
		name == cobra.ShellCompRequestCmd || name == cobra.ShellCompNoDescRequestCmd
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chatbackup",
		Short: "Back up KakaoTalk chat exports as dated text files",
		Long: `chatbackup reads the chat exports produced by KakaoTalk and turns them
into clean, dated plain-text backups.

It understands:
  - Text exports (Korean timestamp headers, multi-line messages)
  - CSV exports (Date, User and Message columns)

System notices and stickers are dropped, messages are grouped by calendar
date, and consecutive messages from one sender are written as a single block.

Plugins:
  An unknown command <name> runs the binary chatbackup-<name>, searched for
  next to chatbackup, in ~/.config/chatbackup/plugins/ and in PATH. Plugins
  receive CHATBACKUP_VERSION and CHATBACKUP_CONFIG in their environment.

Exit codes:
  0 - Success
  1 - Nothing matched (no messages, or an empty date selection)
  2 - Configuration or runtime error`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	commands.BindGlobalFlags(rootCmd)

	rootCmd.AddCommand(commands.NewParseCommand())
	rootCmd.AddCommand(commands.NewDatesCommand())
	rootCmd.AddCommand(commands.NewShowCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewStatsCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewDiagnoseCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
