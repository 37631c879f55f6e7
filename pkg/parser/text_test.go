package parser

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/chatbackup/pkg/chat"
)

const sampleExport = `동창회 님과 카카오톡 대화
저장한 날짜 : 2024년 1월 6일 오전 10:00

2024년 1월 5일 금요일
운영정책을 위반한 메시지로 신고 접수 시 카카오톡 이용에 제한이 있을 수 있습니다.
2024년 1월 5일 오전 9:00, Carol님이 들어왔습니다.
2024년 1월 5일 오전 9:03, Alice : Hello
World
2024년 1월 5일 오전 9:04, Bob : 이모티콘
2024년 1월 5일 오후 5:30, Bob : Hi Alice
2024년 1월 6일 토요일
2024년 1월 6일 오전 12:01 Carol : late night
2024년 1월 6일 오전 12:02, Dave님이 나갔습니다.
`

func TestParseText_Sample(t *testing.T) {
	got := ParseText(sampleExport)

	want := []chat.Message{
		{Timestamp: time.Date(2024, 1, 5, 9, 3, 0, 0, time.UTC), Sender: "Alice", Content: "Hello\nWorld"},
		{Timestamp: time.Date(2024, 1, 5, 17, 30, 0, 0, time.UTC), Sender: "Bob", Content: "Hi Alice"},
		{Timestamp: time.Date(2024, 1, 6, 0, 1, 0, 0, time.UTC), Sender: "Carol", Content: "late night"},
	}
	assert.Equal(t, want, got)
}

func TestParseText_MultiLineContinuation(t *testing.T) {
	got := ParseText("2024년 1월 5일 오전 9:03, Alice : Hello\nWorld")

	require.Len(t, got, 1)
	assert.Equal(t, "Hello\nWorld", got[0].Content)
	assert.Equal(t, "Alice", got[0].Sender)
}

func TestParseText_HeaderWithoutContent(t *testing.T) {
	raw := "2024년 1월 5일 오전 9:03, Alice\nfirst line\n  second line  \n\n2024년 1월 5일 오전 9:04, Bob : next"
	got := ParseText(raw)

	require.Len(t, got, 2)
	assert.Equal(t, "first line\nsecond line", got[0].Content)
	assert.Equal(t, "next", got[1].Content)
}

func TestParseText_EmptyHeaderFollowedByHeaderIsDropped(t *testing.T) {
	raw := "2024년 1월 5일 오전 9:03, Alice :\n2024년 1월 5일 오전 9:04, Bob : hi"
	got := ParseText(raw)

	require.Len(t, got, 1)
	assert.Equal(t, "Bob", got[0].Sender)
}

func TestParseText_HourNormalization(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantHour int
	}{
		{name: "AM 12 becomes 0", header: "2024년 1월 5일 오전 12:15, A : x", wantHour: 0},
		{name: "PM 12 stays 12", header: "2024년 1월 5일 오후 12:15, A : x", wantHour: 12},
		{name: "PM 5 becomes 17", header: "2024년 1월 5일 오후 5:15, A : x", wantHour: 17},
		{name: "AM 5 stays 5", header: "2024년 1월 5일 오전 5:15, A : x", wantHour: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseText(tt.header)
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantHour, got[0].Timestamp.Hour())
			assert.Equal(t, 15, got[0].Timestamp.Minute())
		})
	}
}

func TestParseText_StickerExcluded(t *testing.T) {
	raw := "2024년 1월 5일 오전 9:03, Alice : 이모티콘\n2024년 1월 5일 오전 9:04, Alice : real text"
	got := ParseText(raw)

	require.Len(t, got, 1)
	assert.Equal(t, "real text", got[0].Content)
}

func TestParseText_StickerHeaderSwallowsNothing(t *testing.T) {
	// Lines after a discarded header are not attached to the previous message.
	raw := "2024년 1월 5일 오전 9:03, Alice : hi\n2024년 1월 5일 오전 9:04, Alice : 이모티콘\norphan"
	got := ParseText(raw)

	require.Len(t, got, 1)
	assert.Equal(t, "hi", got[0].Content)
}

func TestParseText_NoiseNeverInOutput(t *testing.T) {
	noise := []string{
		"동창회 님과 카카오톡 대화",
		"카카오톡 대화",
		"저장한 날짜 : 2024년 1월 6일 오전 10:00",
		"Carol님이 들어왔습니다.",
		"운영정책을 위반한 메시지로 신고 접수 시 카카오톡 이용에 제한이 있을 수 있습니다.",
	}

	// Place every notice inside a message body so it would be absorbed as a
	// continuation line if it were not filtered.
	raw := "2024년 1월 5일 오전 9:03, Alice : start\n" + strings.Join(noise, "\n") + "\nend"
	got := ParseText(raw)

	require.Len(t, got, 1)
	assert.Equal(t, "start\nend", got[0].Content)
	for _, m := range got {
		for _, n := range noise {
			assert.NotContains(t, m.Content, n)
			assert.NotContains(t, m.Sender, n)
		}
	}
}

func TestParseText_NoticeSenderRejected(t *testing.T) {
	raw := "2024년 1월 5일 오전 9:03, Alice : hi\n2024년 1월 5일 오전 9:04, Bob님이 나갔습니다.\ntrailing"
	got := ParseText(raw)

	require.Len(t, got, 1)
	assert.Equal(t, "Alice", got[0].Sender)
	assert.Equal(t, "hi", got[0].Content)
}

func TestParseText_HeaderQuotingMarkerKeepsSender(t *testing.T) {
	raw := "2024년 1월 5일 오전 9:03, Alice : hi\n" +
		"2024년 1월 5일 오전 9:04, Bob : 저장한 날짜 알려줘\n" +
		"second line from Bob\n"
	got := ParseText(raw)

	require.Len(t, got, 2)
	assert.Equal(t, "Alice", got[0].Sender)
	assert.Equal(t, "hi", got[0].Content)
	assert.Equal(t, "Bob", got[1].Sender)
	assert.Equal(t, "저장한 날짜 알려줘\nsecond line from Bob", got[1].Content)
}

func TestParseText_MarkerMidLineIsContent(t *testing.T) {
	raw := "2024년 1월 5일 오전 9:03, Alice : 공지\n회의록 저장한 날짜 알려줘"
	got := ParseText(raw)

	require.Len(t, got, 1)
	assert.Equal(t, "공지\n회의록 저장한 날짜 알려줘", got[0].Content)
}

func TestParseText_DateInBodyIsContent(t *testing.T) {
	raw := "2024년 2월 20일 오후 8:00, Alice : 다음 모임\n2024년 3월 1일에 만나"
	got := ParseText(raw)

	require.Len(t, got, 1)
	assert.Equal(t, "다음 모임\n2024년 3월 1일에 만나", got[0].Content)
}

func TestParseText_HourZeroRejected(t *testing.T) {
	raw := "2024년 1월 5일 오전 9:03, Alice : kept\n2024년 1월 5일 오전 0:30, Bob : bad hour\nlost"
	got := ParseText(raw)

	require.Len(t, got, 1)
	assert.Equal(t, "Alice", got[0].Sender)
	assert.Equal(t, "kept", got[0].Content)
}

func TestParseText_DateBannerNotAbsorbed(t *testing.T) {
	raw := "2024년 1월 5일 오후 11:59, Alice : good night\n2024년 1월 6일 토요일\n2024년 1월 6일 오전 7:00, Alice : morning"
	got := ParseText(raw)

	require.Len(t, got, 2)
	assert.Equal(t, "good night", got[0].Content)
}

func TestParseText_InvalidHeaderFinalizesCurrent(t *testing.T) {
	raw := "2024년 1월 5일 오전 9:03, Alice : kept\n2024년 2월 30일 오전 9:04, Bob : bad date\nlost"
	got := ParseText(raw)

	require.Len(t, got, 1)
	assert.Equal(t, "kept", got[0].Content)
}

func TestParseText_WrongFormatYieldsEmpty(t *testing.T) {
	raw := "Date,User,Message\n2024-01-05 09:03:00,Alice,Hello\n"
	assert.Empty(t, ParseText(raw))
	assert.Empty(t, ParseText(""))
}

func TestParseText_CRLF(t *testing.T) {
	raw := "2024년 1월 5일 오전 9:03, Alice : Hello\r\nWorld\r\n"
	got := ParseText(raw)

	require.Len(t, got, 1)
	assert.Equal(t, "Hello\nWorld", got[0].Content)
}

func TestParseText_GroupingIdempotent(t *testing.T) {
	first := chat.GroupByDate(ParseText(sampleExport))
	second := chat.GroupByDate(ParseText(sampleExport))

	assert.Equal(t, first.Keys(), second.Keys())
	for _, k := range first.Keys() {
		assert.Equal(t, first.Messages(k), second.Messages(k))
	}
}

func TestParser_CustomOptions(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	p, err := New(
		WithLocation(seoul),
		WithStickerPlaceholder("(sticker)"),
		WithNoticeMarkers("left the chat"),
	)
	require.NoError(t, err)

	raw := "2024년 1월 5일 오전 9:03, Alice : (sticker)\n" +
		"2024년 1월 5일 오전 9:04, Alice : 이모티콘\n" +
		"2024년 1월 5일 오전 9:05, Bob : hi\n" +
		"Carol left the chat\n"
	got := p.ParseText(raw)

	require.Len(t, got, 2)
	assert.Equal(t, "이모티콘", got[0].Content)
	assert.Equal(t, "hi", got[1].Content)
	assert.Equal(t, seoul, got[1].Timestamp.Location())
}
