// Package plugins runs external chatbackup-<command> binaries.
//
// An unknown subcommand is looked up as a standalone executable and run with
// the remaining arguments, so new backup targets (an HTML renderer, an upload
// step) can ship separately from the parser.
package plugins

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Prefix is prepended to a command name to form the plugin binary name.
const Prefix = "chatbackup-"

// ErrPluginNotFound is returned when no plugin binary can be located.
var ErrPluginNotFound = errors.New("plugin not found")

// Host describes the running chatbackup to a plugin. It is passed through
// the environment as CHATBACKUP_VERSION and CHATBACKUP_CONFIG.
type Host struct {
	Version    string
	ConfigPath string
}

// Dir returns the per-user plugin directory, next to the config file.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "chatbackup", "plugins"), nil
}

// FindPlugin searches for chatbackup-<command> in order:
//  1. the directory of the chatbackup binary
//  2. the plugin directory (see Dir)
//  3. PATH
func FindPlugin(command string) (string, error) {
	name := Prefix + command

	if execPath, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(execPath), name)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}

	if dir, err := Dir(); err == nil {
		candidate := filepath.Join(dir, name)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}

	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	return "", ErrPluginNotFound
}

// Execute runs the plugin with args and returns its exit code. Output goes to
// stdout and stderr; stdin is inherited so plugins can read piped exports.
func Execute(ctx context.Context, pluginPath string, args []string, host Host, stdout, stderr io.Writer) int {
	cmd := exec.CommandContext(ctx, pluginPath, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Env = append(os.Environ(),
		"CHATBACKUP_VERSION="+host.Version,
		"CHATBACKUP_CONFIG="+host.ConfigPath,
	)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		_, _ = fmt.Fprintf(stderr, "Error: running plugin %s: %v\n", filepath.Base(pluginPath), err)
		return 2
	}
	return 0
}

// FormatNotFoundError explains where a plugin for command would be found.
func FormatNotFoundError(command string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Error: unknown command %q for \"chatbackup\"\n", command)
	sb.WriteString("\nIf this is a plugin, install the binary as one of:\n")
	fmt.Fprintf(&sb, "  - %s%s in the same directory as chatbackup\n", Prefix, command)
	fmt.Fprintf(&sb, "  - ~/.config/chatbackup/plugins/%s%s\n", Prefix, command)
	fmt.Fprintf(&sb, "  - %s%s anywhere in your PATH\n", Prefix, command)
	sb.WriteString("\nRun 'chatbackup --help' for usage.")

	return sb.String()
}

// isExecutable reports whether path is a regular file with an execute bit.
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode()&0o111 != 0
}
