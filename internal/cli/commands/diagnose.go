package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatbackup/internal/logging"
	"github.com/ccollicutt/chatbackup/pkg/chat"
	"github.com/ccollicutt/chatbackup/pkg/config"
	"github.com/ccollicutt/chatbackup/pkg/detector"
	"github.com/ccollicutt/chatbackup/pkg/parser"
)

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	Verbose bool
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose <export-file>",
		Short: "Diagnose problems reading a chat export",
		Long: `Diagnose why a chat export does not parse as expected.

This command checks:
- Configuration file syntax and values
- Export file existence and accessibility
- Whether the file is text
- Which export format the content matches
- How many messages parse out of it

Example:
  chatbackup diagnose KakaoTalk_Chat.txt
  chatbackup diagnose -v export.csv  # verbose output`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runDiagnose(ctx, cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed diagnostic output")

	return cmd
}

func runDiagnose(ctx context.Context, w io.Writer, path string, opts *DiagnoseOptions) error {
	results := []DiagnosticResult{}

	// 1. Config
	cfg, result := checkConfig(ctx)
	results = append(results, result)
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	// 2. Export file existence
	result = checkExportExists(path)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(w, results, opts)
		return nil
	}

	// 3. Content type and format
	format, detResults := checkFormat(ctx, cfg, path, opts)
	results = append(results, detResults...)
	if format == "" {
		printDiagnostics(w, results, opts)
		return nil
	}

	// 4. Parse
	results = append(results, checkParse(ctx, cfg, path, format, opts))

	printDiagnostics(w, results, opts)
	return nil
}

func checkConfig(ctx context.Context) (*config.Config, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Config",
	}

	path := Globals.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := loadConfig(ctx)
	if err != nil {
		result.Status = "error"
		result.Message = err.Error()
		result.Suggests = []string{
			"Run 'chatbackup validate " + path + "' for details",
			"Use 'chatbackup detect <export-file> --write-config config.yaml' to generate a starter config",
		}
		return nil, result
	}

	result.Status = "ok"
	if _, err := os.Stat(path); err == nil {
		result.Message = fmt.Sprintf("Loaded: %s", path)
	} else {
		result.Message = "No config file, using defaults"
	}
	result.Details = []string{
		fmt.Sprintf("Input format: %s", cfg.InputFormat),
		fmt.Sprintf("Timezone: %s", cfg.Timezone),
		fmt.Sprintf("Output dir: %s", cfg.OutputDir),
	}
	return cfg, result
}

func checkExportExists(path string) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Export File",
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		result.Status = "error"
		result.Message = fmt.Sprintf("File not found: %s", path)
		result.Suggests = []string{"Check the file path is correct"}
		return result
	}
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access file: %v", err)
		result.Suggests = []string{"Check file permissions"}
		return result
	}
	if info.IsDir() {
		result.Status = "error"
		result.Message = "Path is a directory, not a file"
		result.Suggests = []string{"Pass the exported .txt or .csv file itself"}
		return result
	}
	if info.Size() == 0 {
		result.Status = "error"
		result.Message = "File is empty (0 bytes)"
		result.Suggests = []string{"Export the chat again from the messenger"}
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Found: %s (%d bytes)", path, info.Size())
	return result
}

// checkFormat reports the content type and the format the file will be parsed
// as. The returned format is empty when parsing cannot proceed.
func checkFormat(ctx context.Context, cfg *config.Config, path string, opts *DiagnoseOptions) (chat.Format, []DiagnosticResult) {
	results := []DiagnosticResult{}

	d := detector.New()
	det, err := d.DetectFromFile(ctx, path)
	if err != nil {
		results = append(results, DiagnosticResult{
			Check:   "Content Type",
			Status:  "error",
			Message: fmt.Sprintf("Cannot read file: %v", err),
		})
		return "", results
	}

	typeResult := DiagnosticResult{Check: "Content Type"}
	if det.Binary {
		typeResult.Status = "error"
		typeResult.Message = fmt.Sprintf("File is not text (%s)", det.MIME)
		typeResult.Suggests = []string{"Chat exports are plain text or CSV files"}
		return "", append(results, typeResult)
	}
	typeResult.Status = "ok"
	typeResult.Message = det.MIME
	results = append(results, typeResult)

	formatResult := DiagnosticResult{Check: "Export Format"}
	detected, detErr := det.Format()
	switch {
	case detErr == nil:
		best := det.BestMatch()
		formatResult.Status = "ok"
		formatResult.Message = fmt.Sprintf("%s (%.0f%% confidence)", best.Format.Name, best.Confidence*100)
		if opts.Verbose && best.SampleLine != "" {
			formatResult.Details = []string{
				"Sample match:",
				truncate(best.SampleLine, 80),
			}
		}
	default:
		formatResult.Status = "warning"
		formatResult.Message = "Content matches no known export format"
		formatResult.Suggests = []string{
			"Text exports need lines like '2024년 1월 5일 오전 9:03, Alice : Hello'",
			"CSV exports need a Date,User,Message header row",
		}
	}

	// Config and extension win over content, as in the other commands.
	used := detected
	if f, ok := cfg.Format(); ok {
		used = f
	} else if f, ok := chat.FormatFromPath(path); ok {
		used = f
	}
	if used == "" {
		formatResult.Status = "error"
		return "", append(results, formatResult)
	}
	if detErr == nil && used != detected {
		formatResult.Status = "warning"
		formatResult.Details = append(formatResult.Details,
			fmt.Sprintf("File will be parsed as %s but the content looks like %s", used, detected))
		formatResult.Suggests = append(formatResult.Suggests,
			fmt.Sprintf("Pass --format %s or set input_format: %s", detected, detected))
	}

	return used, append(results, formatResult)
}

func checkParse(ctx context.Context, cfg *config.Config, path string, format chat.Format, opts *DiagnoseOptions) DiagnosticResult {
	result := DiagnosticResult{
		Check: fmt.Sprintf("Parse as %s", format),
	}

	in, err := parser.ReadInput(ctx, path)
	if err != nil {
		result.Status = "error"
		result.Message = err.Error()
		return result
	}

	p, err := parser.New(append(cfg.ParserOptions(), parser.WithLogger(logging.NewLogger("parser")))...)
	if err != nil {
		result.Status = "error"
		result.Message = err.Error()
		return result
	}

	messages, err := p.Parse(in.Text(), format)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Parse failed: %v", err)
		return result
	}

	if len(messages) == 0 {
		result.Status = "error"
		result.Message = "No messages parsed"
		result.Suggests = []string{
			"Run with --log-level debug to see discarded lines",
			"Check the file is a chat export and not an empty conversation",
		}
		return result
	}

	g := chat.GroupByDate(messages)
	keys := g.SortedKeys()
	result.Status = "ok"
	result.Message = fmt.Sprintf("%d messages on %d date(s)", len(messages), g.Len())
	result.Details = []string{
		fmt.Sprintf("First date: %s", keys[0]),
		fmt.Sprintf("Last date: %s", keys[len(keys)-1]),
	}
	if opts.Verbose {
		m := messages[0]
		result.Details = append(result.Details,
			"First message:",
			truncate(fmt.Sprintf("%s %s: %s", m.Timestamp.Format("2006-01-02 15:04"), m.Sender, m.Content), 80))
	}
	return result
}

func printDiagnostics(w io.Writer, results []DiagnosticResult, opts *DiagnoseOptions) {
	fmt.Fprintln(w, "=== chatbackup Diagnostics ===")
	fmt.Fprintln(w)

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range results {
		var icon string
		switch r.Status {
		case "ok":
			icon = "PASS"
			okCount++
		case "warning":
			icon = "WARN"
			warnCount++
		case "error":
			icon = "FAIL"
			errCount++
		}

		fmt.Fprintf(w, "[%s] %s\n", icon, r.Check)
		fmt.Fprintf(w, "    %s\n", r.Message)

		if opts.Verbose || r.Status != "ok" {
			for _, d := range r.Details {
				fmt.Fprintf(w, "      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			fmt.Fprintf(w, "      Hint: %s\n", s)
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

	if errCount > 0 {
		fmt.Fprintln(w, "\nFix the errors above before exporting.")
	} else if warnCount > 0 {
		fmt.Fprintln(w, "\nThe export is usable but has warnings.")
	} else {
		fmt.Fprintln(w, "\nEverything looks good!")
	}
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
