// Package chat defines the message model shared by the parsers, the grouping
// stage and the exporters.
package chat

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Message is one chat turn.
type Message struct {
	// Timestamp is when the message was sent. Text exports carry minute
	// precision, CSV exports whatever the Date column holds.
	Timestamp time.Time `json:"timestamp"`

	// Sender is the trimmed, non-empty display name of the author.
	Sender string `json:"sender"`

	// Content is the trimmed, non-empty message body. Continuation lines are
	// joined with "\n".
	Content string `json:"content"`
}

// DateKey is the calendar date of a message formatted as YYYY.MM.DD.
// Keys sort lexicographically in chronological order.
type DateKey string

// DateKeyLayout is the time layout matching DateKey.
const DateKeyLayout = "2006.01.02"

// ErrInvalidDateKey is returned when a string is not a valid YYYY.MM.DD date.
var ErrInvalidDateKey = errors.New("invalid date key")

// KeyFor returns the DateKey for t, using t's own calendar date.
func KeyFor(t time.Time) DateKey {
	return DateKey(fmt.Sprintf("%04d.%02d.%02d", t.Year(), int(t.Month()), t.Day()))
}

// Key returns the DateKey of the message.
func (m Message) Key() DateKey {
	return KeyFor(m.Timestamp)
}

// ParseDateKey validates s as a YYYY.MM.DD date and returns it as a DateKey.
func ParseDateKey(s string) (DateKey, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(DateKeyLayout, s); err != nil {
		return "", fmt.Errorf("%w %q (want YYYY.MM.DD)", ErrInvalidDateKey, s)
	}
	return DateKey(s), nil
}

// String implements fmt.Stringer.
func (k DateKey) String() string {
	return string(k)
}

// Format identifies the shape of an exported chat file.
type Format string

const (
	// FormatTxt is the messenger's native text export.
	FormatTxt Format = "txt"
	// FormatCSV is the tabular export with Date, User and Message columns.
	FormatCSV Format = "csv"
)

// ParseFormat converts a user-supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatTxt:
		return FormatTxt, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unknown format %q (must be txt or csv)", s)
	}
}

// FormatFromPath infers the format from a file extension.
// The second return value is false when the extension is not recognized.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return FormatTxt, true
	case ".csv":
		return FormatCSV, true
	default:
		return "", false
	}
}
