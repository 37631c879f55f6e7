package export

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/ccollicutt/chatbackup/pkg/chat"
)

// ErrInvalidRange is returned when a range starts after it ends.
var ErrInvalidRange = errors.New("invalid date range")

// Range is an inclusive date range. An empty bound is open.
type Range struct {
	Start chat.DateKey
	End   chat.DateKey
}

// NewRange builds a Range from user input. Empty strings leave the bound open;
// anything else must be a valid YYYY.MM.DD date.
func NewRange(start, end string) (Range, error) {
	var r Range
	if start != "" {
		k, err := chat.ParseDateKey(start)
		if err != nil {
			return Range{}, fmt.Errorf("range start: %w", err)
		}
		r.Start = k
	}
	if end != "" {
		k, err := chat.ParseDateKey(end)
		if err != nil {
			return Range{}, fmt.Errorf("range end: %w", err)
		}
		r.End = k
	}
	return r, r.Validate()
}

// Validate reports ErrInvalidRange when both bounds are set and Start > End.
func (r Range) Validate() error {
	if r.Start != "" && r.End != "" && r.Start > r.End {
		return fmt.Errorf("%w: %s is after %s", ErrInvalidRange, r.Start, r.End)
	}
	return nil
}

// IsAll reports whether both bounds are open.
func (r Range) IsAll() bool {
	return r.Start == "" && r.End == ""
}

// Contains reports whether key lies within the range.
func (r Range) Contains(key chat.DateKey) bool {
	if r.Start != "" && key < r.Start {
		return false
	}
	if r.End != "" && key > r.End {
		return false
	}
	return true
}

// Select returns the keys inside the range, preserving their order.
func (r Range) Select(keys []chat.DateKey) []chat.DateKey {
	return lo.Filter(keys, func(k chat.DateKey, _ int) bool {
		return r.Contains(k)
	})
}

// String describes the range for log and status messages.
func (r Range) String() string {
	switch {
	case r.IsAll():
		return "all dates"
	case r.End == "":
		return "from " + r.Start.String()
	case r.Start == "":
		return "until " + r.End.String()
	default:
		return r.Start.String() + " to " + r.End.String()
	}
}
