package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatbackup/pkg/config"
	"github.com/ccollicutt/chatbackup/pkg/detector"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output      string
	SampleSize  int
	ShowAll     bool
	WriteConfig string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <export-file>",
		Short: "Detect the format of a chat export",
		Long: `Analyze a file to work out which chat export format it uses.

Samples lines from the start of the file and scores them against the text
export header grammar and the CSV column layout. Binary files are rejected.
Reports the detected format with a confidence score.

Optionally generates a starter config file with --write-config.

Example:
  chatbackup detect KakaoTalk_Chat.txt
  chatbackup detect --sample 500 export.dat
  chatbackup detect --write-config chatbackup.yaml export.dat`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 100, "Number of lines to sample")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show all detected formats, not just the best match")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter config to file (will not overwrite)")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	file := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := os.Stat(file); os.IsNotExist(err) {
		return fmt.Errorf("export file not found: %s", file)
	}

	d := detector.New(detector.WithSampleSize(opts.SampleSize))
	result, err := d.DetectFromFile(ctx, file)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if opts.WriteConfig != "" {
		if err := writeStarterConfig(out, result, opts.WriteConfig); err != nil {
			return err
		}
	}

	switch opts.Output {
	case "json":
		return outputDetectJSON(out, result, file, opts)
	default:
		return outputDetectText(out, result, file, opts)
	}
}

func outputDetectText(w io.Writer, result *detector.DetectionResult, file string, opts *DetectOptions) error {
	fmt.Fprintln(w, "=== Export Format Detection ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "File: %s\n", file)
	if result.MIME != "" {
		fmt.Fprintf(w, "Content type: %s\n", result.MIME)
	}
	fmt.Fprintf(w, "Lines sampled: %d\n", result.SampledLines)
	fmt.Fprintln(w)

	if result.Binary {
		fmt.Fprintln(w, "The file is not text and cannot be a chat export.")
		return nil
	}

	if !result.HasMatch() {
		fmt.Fprintln(w, "No chat export format detected.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Tip: Text exports start each message with a line like")
		fmt.Fprintln(w, "  2024년 1월 5일 오전 9:03, Alice : Hello")
		fmt.Fprintln(w, "and CSV exports need a Date,User,Message header row.")
		return nil
	}

	best := result.BestMatch()
	fmt.Fprintf(w, "Detected Format: %s (%s)\n", best.Format.Name, best.Format.Format)
	fmt.Fprintf(w, "Confidence: %.1f%% (%d matched)\n", best.Confidence*100, best.MatchCount)
	fmt.Fprintln(w)
	if best.SampleLine != "" {
		fmt.Fprintf(w, "Sample match:\n  %s\n", best.SampleLine)
	}
	if !best.ParsedTime.IsZero() {
		fmt.Fprintf(w, "Parsed as: %s\n", best.ParsedTime.Format("2006-01-02 15:04:05 MST"))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "--- Configuration snippet (copy to your config file) ---")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "input_format: %s\n", best.Format.Format)
	fmt.Fprintln(w)

	if opts.ShowAll && len(result.Matches) > 1 {
		fmt.Fprintln(w, "--- Alternative formats detected ---")
		for i, m := range result.Matches[1:] {
			fmt.Fprintf(w, "%d. %s (%.1f%% confidence)\n", i+2, m.Format.Name, m.Confidence*100)
		}
		fmt.Fprintln(w)
	}

	return nil
}

// JSONMatch represents a format match in JSON output.
type JSONMatch struct {
	Name       string  `json:"name"`
	Format     string  `json:"format"`
	Confidence float64 `json:"confidence"`
	MatchCount int     `json:"match_count"`
	SampleLine string  `json:"sample_line,omitempty"`
}

// JSONOutput represents the full JSON output.
type JSONOutput struct {
	File         string      `json:"file"`
	MIME         string      `json:"mime,omitempty"`
	Binary       bool        `json:"binary,omitempty"`
	Matches      []JSONMatch `json:"matches"`
	SampledLines int         `json:"sampled_lines"`
}

func outputDetectJSON(w io.Writer, result *detector.DetectionResult, file string, opts *DetectOptions) error {
	out := JSONOutput{
		File:         file,
		MIME:         result.MIME,
		Binary:       result.Binary,
		SampledLines: result.SampledLines,
		Matches:      make([]JSONMatch, 0),
	}

	matches := result.Matches
	if !opts.ShowAll && len(matches) > 1 {
		matches = matches[:1]
	}

	for _, m := range matches {
		out.Matches = append(out.Matches, JSONMatch{
			Name:       m.Format.Name,
			Format:     string(m.Format.Format),
			Confidence: m.Confidence,
			MatchCount: m.MatchCount,
			SampleLine: m.SampleLine,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(out)
}

// writeStarterConfig generates a starter config file with the detected format.
func writeStarterConfig(w io.Writer, result *detector.DetectionResult, configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s (will not overwrite)", configPath)
	}

	format, err := result.Format()
	if err != nil {
		return fmt.Errorf("cannot generate config: %w", err)
	}

	content := generateStarterConfig(result.BestMatch(), string(format))

	// #nosec G306 - config file doesn't need restrictive permissions
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(w, "Wrote starter config to: %s\n\n", configPath)
	return nil
}

// generateStarterConfig creates a YAML config template.
func generateStarterConfig(match *detector.FormatMatch, format string) string {
	defaults := config.DefaultConfig()

	return fmt.Sprintf(`# chatbackup configuration
# Generated by: chatbackup detect
# Detected format: %s (%.0f%% confidence)

# Input format: auto, txt or csv.
input_format: %s

# Directory backups are written to.
output_dir: %s

# IANA time zone that export timestamps are interpreted in.
timezone: %s

# Content that marks a sticker message. Sticker messages are skipped.
sticker_placeholder: %s

# Extra system notice markers, added to the built-in ones.
# notice_markers:
#   - "left the chatroom"

# Extra CSV date layouts (Go time layouts), tried before the built-in ones.
# date_layouts:
#   - "02/01/2006 15:04"

log_level: %s
`, match.Format.Name, match.Confidence*100,
		format,
		defaults.OutputDir,
		defaults.Timezone,
		defaults.StickerPlaceholder,
		defaults.LogLevel)
}
