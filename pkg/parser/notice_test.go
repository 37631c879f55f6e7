package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoticeFilter_IsNotice(t *testing.T) {
	f, err := NewNoticeFilter(DefaultNoticeMarkers())
	require.NoError(t, err)

	tests := []struct {
		line string
		want bool
	}{
		{line: "저장한 날짜 : 2024년 1월 6일 오전 10:00", want: true},
		{line: "2024년 1월 5일 오전 9:00, Carol님이 들어왔습니다.", want: true},
		{line: "운영정책을 위반한 메시지로 신고 접수 시 카카오톡 이용에 제한이 있을 수 있습니다.", want: true},
		{line: "동창회 님과 카카오톡 대화", want: true},
		{line: "카카오톡 대화", want: true},
		{line: "카카오톡 대화 내보내기 어떻게 해?", want: false},
		{line: "Carol님이 들어왔습니다", want: true},
		{line: "회의록 저장한 날짜 알려줘", want: false},
		{line: "어제 지훈님이 들어왔습니다 라고 떴어", want: false},
		{line: "2024년 1월 5일 오전 9:04, Bob : 회의록 저장한 날짜 알려줘", want: false},
		{line: "2024년 1월 5일 오전 9:03, Alice : Hello", want: false},
		{line: "", want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, f.IsNotice(tt.line), "line %q", tt.line)
	}
}

func TestNewNoticeFilter_CleansMarkers(t *testing.T) {
	f, err := NewNoticeFilter([]string{" b ", "a", "", "b", "  "})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, f.Markers())
}

func TestNewNoticeFilter_Empty(t *testing.T) {
	_, err := NewNoticeFilter([]string{"", " "})
	assert.Error(t, err)
}

func TestIsNoticeSender(t *testing.T) {
	assert.True(t, isNoticeSender("Bob님이 나갔습니다."))
	assert.True(t, isNoticeSender("Alice님이 Bob님을 초대했습니다."))
	assert.False(t, isNoticeSender("Alice"))
}
