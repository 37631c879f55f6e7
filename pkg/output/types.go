// Package output renders parsed chats for the terminal.
package output

import (
	"time"

	"github.com/ccollicutt/chatbackup/pkg/chat"
	"github.com/ccollicutt/chatbackup/pkg/summary"
)

// Report is the complete result of parsing one or more exports.
type Report struct {
	// Summary provides aggregate statistics.
	Summary summary.Summary `json:"summary"`

	// Dates lists every date with its message count, ascending.
	Dates []DateCount `json:"dates"`

	// Messages are the parsed messages in chronological order.
	Messages []chat.Message `json:"messages,omitempty"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`
}

// DateCount is the number of messages on one date.
type DateCount struct {
	Date     chat.DateKey `json:"date"`
	Messages int          `json:"messages"`
	Senders  int          `json:"senders"`
}

// Metadata provides context about the parse run.
type Metadata struct {
	// Sources lists the files that were parsed with their formats.
	Sources []Source `json:"sources"`

	// ParsedAt is when parsing finished.
	ParsedAt time.Time `json:"parsed_at"`

	// Duration is how long reading and parsing took.
	Duration time.Duration `json:"duration"`
}

// Source is one parsed input file.
type Source struct {
	Path     string      `json:"path"`
	Format   chat.Format `json:"format"`
	Messages int         `json:"messages"`
}

// NewReport builds a Report from merged messages and their sources.
func NewReport(messages []chat.Message, sources []Source, started time.Time) *Report {
	g := chat.GroupByDate(messages)
	now := time.Now()

	return &Report{
		Summary:  summary.Compute(messages),
		Dates:    DateCounts(g),
		Messages: messages,
		Metadata: Metadata{
			Sources:  sources,
			ParsedAt: now,
			Duration: now.Sub(started),
		},
	}
}

// DateCounts lists every date in g, ascending.
func DateCounts(g *chat.Grouped) []DateCount {
	keys := g.SortedKeys()
	out := make([]DateCount, 0, len(keys))
	for _, key := range keys {
		msgs := g.Messages(key)
		senders := make(map[string]struct{}, len(msgs))
		for _, m := range msgs {
			senders[m.Sender] = struct{}{}
		}
		out = append(out, DateCount{Date: key, Messages: len(msgs), Senders: len(senders)})
	}
	return out
}

// IsEmpty returns true if no messages were parsed.
func (r *Report) IsEmpty() bool {
	return r.Summary.TotalMessages == 0
}
