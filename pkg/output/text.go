package output

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/ccollicutt/chatbackup/pkg/chat"
)

// TimeLayout is how message timestamps are printed.
const TimeLayout = "2006-01-02 15:04"

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(_ context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "chatbackup: %d messages, %d participants, %d dates\n",
		report.Summary.TotalMessages,
		len(report.Summary.Participants),
		report.Summary.Dates)
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	if f.opts.Messages {
		fmt.Fprintln(w, "=== Messages ===")
		fmt.Fprintln(w)
		WriteMessages(w, report.Messages)
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "=== Chat Summary ===")
	fmt.Fprintln(w)

	s := report.Summary
	if report.IsEmpty() {
		fmt.Fprintln(w, "No messages found.")
		return nil
	}

	fmt.Fprintf(w, "Messages:     %d\n", s.TotalMessages)
	fmt.Fprintf(w, "Participants: %d\n", len(s.Participants))
	fmt.Fprintf(w, "Dates:        %d\n", s.Dates)
	fmt.Fprintf(w, "First:        %s\n", s.FirstMessage.Format(TimeLayout))
	fmt.Fprintf(w, "Last:         %s\n", s.LastMessage.Format(TimeLayout))
	if s.BusiestDate != "" {
		fmt.Fprintf(w, "Busiest date: %s\n", s.BusiestDate)
	}
	if s.Language != "" {
		fmt.Fprintf(w, "Language:     %s\n", s.Language)
	}
	fmt.Fprintln(w)

	table := newTable(w, "Sender", "Messages", "Share")
	for _, sc := range s.TopSenders() {
		share := float64(sc.Count) / float64(s.TotalMessages) * 100
		table.Append([]string{sc.Sender, strconv.Itoa(sc.Count), fmt.Sprintf("%.1f%%", share)})
	}
	table.Render()

	if f.opts.Verbose {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Sources:")
		for _, src := range report.Metadata.Sources {
			fmt.Fprintf(w, "  - %s (%s, %d messages)\n", src.Path, src.Format, src.Messages)
		}
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	return nil
}

// WriteMessages prints one message per entry as "time sender: content".
// Continuation lines of multi-line content are indented under the first.
func WriteMessages(w io.Writer, messages []chat.Message) {
	for _, m := range messages {
		lines := strings.Split(m.Content, "\n")
		fmt.Fprintf(w, "%s %s: %s\n", m.Timestamp.Format(TimeLayout), m.Sender, lines[0])
		for _, l := range lines[1:] {
			fmt.Fprintf(w, "%s  %s\n", strings.Repeat(" ", len(TimeLayout)), l)
		}
	}
}

// WriteDateTable prints the per-date message counts as a table.
func WriteDateTable(w io.Writer, dates []DateCount) {
	table := newTable(w, "Date", "Messages", "Senders")
	total := 0
	for _, d := range dates {
		table.Append([]string{d.Date.String(), strconv.Itoa(d.Messages), strconv.Itoa(d.Senders)})
		total += d.Messages
	}
	table.SetFooter([]string{fmt.Sprintf("%d dates", len(dates)), strconv.Itoa(total), ""})
	table.Render()
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}
