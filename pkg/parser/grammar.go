package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Meridiem markers used by the export's 12-hour clock.
const (
	MarkerAM = "오전"
	MarkerPM = "오후"
)

var (
	// headerPattern matches a message-start line:
	//   2024년 1월 5일 오후 3:04, Alice : Hello
	// The separator after the time may be a comma or a space, and the
	// " : <content>" part is optional.
	headerPattern = regexp.MustCompile(
		`^(\d{4})년 (\d{1,2})월 (\d{1,2})일 (` + MarkerAM + `|` + MarkerPM + `) (\d{1,2}):(\d{2})(?:,|\s)\s*(.+?)(?:\s:(?:\s+(.*))?)?$`)

	// timestampPattern matches a bare timestamp in the same grammar.
	timestampPattern = regexp.MustCompile(
		`^(\d{4})년 (\d{1,2})월 (\d{1,2})일 (` + MarkerAM + `|` + MarkerPM + `) (\d{1,2}):(\d{2})$`)

	// fragmentPattern matches lines that are only the date portion of a
	// header: day banners ("2024년 1월 5일 금요일"), bare dates and
	// timestamp-only lines.
	fragmentPattern = regexp.MustCompile(
		`^\d{4}년 \d{1,2}월 \d{1,2}일(?: [월화수목금토일]요일| (?:` + MarkerAM + `|` + MarkerPM + `) \d{1,2}:\d{2},?)?$`)
)

// errInvalidTimestamp is returned when the captured fields do not form a real date and time.
var errInvalidTimestamp = errors.New("invalid timestamp")

// Header holds the fields captured from a message-start line.
type Header struct {
	Year   int
	Month  int // 1-12
	Day    int
	PM     bool
	Hour   int // as written, 12-hour clock
	Minute int
	Sender string
	// Content is the text after " : " on the header line, possibly empty.
	Content string
}

// MatchHeader reports whether line is a message-start line and returns its
// fields. Sender and Content are trimmed.
func MatchHeader(line string) (Header, bool) {
	m := headerPattern.FindStringSubmatch(line)
	if m == nil {
		return Header{}, false
	}

	h := Header{
		Year:    atoi(m[1]),
		Month:   atoi(m[2]),
		Day:     atoi(m[3]),
		PM:      m[4] == MarkerPM,
		Hour:    atoi(m[5]),
		Minute:  atoi(m[6]),
		Sender:  strings.TrimSpace(m[7]),
		Content: strings.TrimSpace(m[8]),
	}
	return h, true
}

// IsHeaderFragment reports whether line is a day banner or a bare timestamp.
// Such lines are never treated as continuation text.
func IsHeaderFragment(line string) bool {
	return fragmentPattern.MatchString(line)
}

// NormalizeHour converts a 12-hour clock reading to 24-hour form.
func NormalizeHour(hour int, pm bool) int {
	switch {
	case pm && hour != 12:
		return hour + 12
	case !pm && hour == 12:
		return 0
	default:
		return hour
	}
}

// Timestamp builds the header's time in loc. Out-of-range fields (month 13,
// February 30th, hour 0 or 13, minute 60) are rejected rather than normalized.
func (h Header) Timestamp(loc *time.Location) (time.Time, error) {
	return buildTimestamp(h.Year, h.Month, h.Day, h.Hour, h.Minute, h.PM, loc)
}

// ParseKoreanTimestamp parses a bare "2024년 1월 5일 오후 3:04" timestamp.
func ParseKoreanTimestamp(s string, loc *time.Location) (time.Time, error) {
	m := timestampPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, fmt.Errorf("timestamp pattern did not match %q", s)
	}
	return buildTimestamp(atoi(m[1]), atoi(m[2]), atoi(m[3]), atoi(m[5]), atoi(m[6]), m[4] == MarkerPM, loc)
}

func buildTimestamp(year, month, day, hour, minute int, pm bool, loc *time.Location) (time.Time, error) {
	if hour < 1 || hour > 12 || minute > 59 {
		return time.Time{}, fmt.Errorf("%w: %d:%02d", errInvalidTimestamp, hour, minute)
	}

	ts := time.Date(year, time.Month(month), day, NormalizeHour(hour, pm), minute, 0, 0, loc)
	if ts.Year() != year || int(ts.Month()) != month || ts.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d", errInvalidTimestamp, year, month, day)
	}
	return ts, nil
}

// atoi converts a regexp digit capture; the pattern guarantees it is numeric.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
