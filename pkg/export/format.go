// Package export renders grouped chat messages back to plain text backups.
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ccollicutt/chatbackup/pkg/chat"
)

// ErrUnknownDate is returned when a requested date has no messages.
var ErrUnknownDate = errors.New("no messages on date")

// FormatForExport renders messages as "sender: content" lines. Within a run of
// consecutive messages from the same sender only the first carries the
// "sender: " label. Every message ends with a newline.
func FormatForExport(messages []chat.Message) string {
	var b strings.Builder
	prev := ""
	for i, m := range messages {
		if i == 0 || m.Sender != prev {
			b.WriteString(m.Sender)
			b.WriteString(": ")
		}
		b.WriteString(m.Content)
		b.WriteByte('\n')
		prev = m.Sender
	}
	return b.String()
}

// FormatRangeOrAll renders every date in r, in ascending order. Each date is
// written as its key, a blank line, the message block and a trailing blank
// line. A zero Range selects all dates.
func FormatRangeOrAll(g *chat.Grouped, r Range) string {
	var b strings.Builder
	for _, key := range r.Select(g.SortedKeys()) {
		writeDate(&b, key, g.Messages(key))
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatAll renders the full backup: every date, ascending.
func FormatAll(g *chat.Grouped) string {
	return FormatRangeOrAll(g, Range{})
}

// FormatDate renders a single-date backup: the key, a blank line and the
// message block.
func FormatDate(g *chat.Grouped, key chat.DateKey) (string, error) {
	if !g.Has(key) {
		return "", fmt.Errorf("%w %s", ErrUnknownDate, key)
	}
	var b strings.Builder
	writeDate(&b, key, g.Messages(key))
	return b.String(), nil
}

func writeDate(b *strings.Builder, key chat.DateKey, messages []chat.Message) {
	b.WriteString(key.String())
	b.WriteString("\n\n")
	b.WriteString(FormatForExport(messages))
}
