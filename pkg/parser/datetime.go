package parser

import (
	"fmt"
	"strings"
	"time"
)

// DefaultDateLayouts returns the layouts tried, in order, for CSV Date values.
// Layouts without a zone are interpreted in the parser's location.
func DefaultDateLayouts() []string {
	return []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006/1/2 15:04:05",
		"2006/1/2 15:04",
		"2006.1.2 15:04:05",
		"2006.1.2 15:04",
		"2006. 1. 2. 15:04:05",
		"2006. 1. 2. 15:04",
		"1/2/2006 15:04:05",
		"1/2/2006 3:04:05 PM",
		"1/2/2006 15:04",
		"Jan 2, 2006 15:04:05",
		"Mon Jan 2 2006 15:04:05",
		"2006-01-02",
		"2006/1/2",
		"2006.1.2",
		"1/2/2006",
	}
}

// parseDateTime parses s with the first matching layout. The messenger's own
// "2024년 1월 5일 오후 3:04" form is accepted as well.
func (p *Parser) parseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range p.layouts {
		if t, err := time.ParseInLocation(layout, s, p.location); err == nil {
			return t, nil
		}
	}
	if t, err := ParseKoreanTimestamp(s, p.location); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
