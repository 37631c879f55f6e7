package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchHeader(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   Header
		wantOK bool
	}{
		{
			name:   "comma separator",
			line:   "2024년 1월 5일 오전 9:03, Alice : Hello",
			want:   Header{Year: 2024, Month: 1, Day: 5, Hour: 9, Minute: 3, Sender: "Alice", Content: "Hello"},
			wantOK: true,
		},
		{
			name:   "space separator",
			line:   "2024년 12월 25일 오후 11:59 Bob : Merry",
			want:   Header{Year: 2024, Month: 12, Day: 25, PM: true, Hour: 11, Minute: 59, Sender: "Bob", Content: "Merry"},
			wantOK: true,
		},
		{
			name:   "no content",
			line:   "2024년 1월 5일 오전 9:03, Alice",
			want:   Header{Year: 2024, Month: 1, Day: 5, Hour: 9, Minute: 3, Sender: "Alice"},
			wantOK: true,
		},
		{
			name:   "dangling separator",
			line:   "2024년 1월 5일 오전 9:03, Alice :",
			want:   Header{Year: 2024, Month: 1, Day: 5, Hour: 9, Minute: 3, Sender: "Alice"},
			wantOK: true,
		},
		{
			name:   "content contains separator",
			line:   "2024년 1월 5일 오후 1:00, 홍길동 : 비율은 3 : 2",
			want:   Header{Year: 2024, Month: 1, Day: 5, PM: true, Hour: 1, Minute: 0, Sender: "홍길동", Content: "비율은 3 : 2"},
			wantOK: true,
		},
		{
			name:   "sender with spaces",
			line:   "2023년 7월 1일 오후 12:30, Dr. Kim Lee : ok",
			want:   Header{Year: 2023, Month: 7, Day: 1, PM: true, Hour: 12, Minute: 30, Sender: "Dr. Kim Lee", Content: "ok"},
			wantOK: true,
		},
		{
			name:   "date banner",
			line:   "2024년 1월 5일 금요일",
			wantOK: false,
		},
		{
			name:   "timestamp only",
			line:   "2024년 1월 5일 오전 9:03",
			wantOK: false,
		},
		{
			name:   "plain text",
			line:   "World",
			wantOK: false,
		},
		{
			name:   "not at line start",
			line:   "저장한 날짜 : 2024년 1월 5일 오전 9:03, Alice : Hello",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MatchHeader(tt.line)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNormalizeHour(t *testing.T) {
	tests := []struct {
		hour int
		pm   bool
		want int
	}{
		{hour: 12, pm: false, want: 0},
		{hour: 12, pm: true, want: 12},
		{hour: 5, pm: true, want: 17},
		{hour: 5, pm: false, want: 5},
		{hour: 11, pm: true, want: 23},
		{hour: 1, pm: false, want: 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeHour(tt.hour, tt.pm), "hour=%d pm=%v", tt.hour, tt.pm)
	}
}

func TestHeader_Timestamp(t *testing.T) {
	h := Header{Year: 2024, Month: 2, Day: 29, PM: true, Hour: 3, Minute: 7}
	ts, err := h.Timestamp(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 15, 7, 0, 0, time.UTC), ts)
}

func TestHeader_Timestamp_Invalid(t *testing.T) {
	tests := []struct {
		name string
		h    Header
	}{
		{name: "month 13", h: Header{Year: 2024, Month: 13, Day: 1, Hour: 1}},
		{name: "february 30", h: Header{Year: 2024, Month: 2, Day: 30, Hour: 1}},
		{name: "month 0", h: Header{Year: 2024, Month: 0, Day: 1, Hour: 1}},
		{name: "hour 0", h: Header{Year: 2024, Month: 1, Day: 5, Hour: 0, Minute: 30}},
		{name: "hour 13", h: Header{Year: 2024, Month: 1, Day: 1, Hour: 13}},
		{name: "minute 60", h: Header{Year: 2024, Month: 1, Day: 1, Hour: 1, Minute: 60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.h.Timestamp(time.UTC)
			assert.ErrorIs(t, err, errInvalidTimestamp)
		})
	}
}

func TestHeader_TimestampInLocation(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	h := Header{Year: 2024, Month: 1, Day: 1, Hour: 12, Minute: 30}

	ts, err := h.Timestamp(seoul)
	require.NoError(t, err)
	assert.Equal(t, 0, ts.Hour())
	assert.Equal(t, seoul, ts.Location())
}

func TestIsHeaderFragment(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{line: "2024년 1월 5일 금요일", want: true},
		{line: "2024년 1월 5일 오전 9:03", want: true},
		{line: "2024년 1월 5일 오후 12:30,", want: true},
		{line: "2024년 1월 5일", want: true},
		{line: "2024년 3월 1일에 만나", want: false},
		{line: "2024년 3월 1일 오전에 보자", want: false},
		{line: "2024년 3월 1일 금요일 저녁 어때?", want: false},
		{line: "see you on 2024년", want: false},
		{line: "World", want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsHeaderFragment(tt.line), "line %q", tt.line)
	}
}

func TestParseKoreanTimestamp(t *testing.T) {
	ts, err := ParseKoreanTimestamp("2024년 3월 9일 오후 12:05", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 9, 12, 5, 0, 0, time.UTC), ts)

	_, err = ParseKoreanTimestamp("2024-03-09", time.UTC)
	assert.Error(t, err)
}
