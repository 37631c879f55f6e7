package output

import (
	"context"
	"fmt"
	"io"
)

// Formatter renders a parse report in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (text, json).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Messages includes every parsed message, not just the summary.
	Messages bool

	// Verbose adds per-source metadata.
	Verbose bool

	// Quiet reduces output to a one-line summary.
	Quiet bool
}

// NewFormatter returns the formatter for name (text or json).
func NewFormatter(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "text":
		return NewTextFormatter(opts), nil
	case "json":
		return NewJSONFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", name)
	}
}
