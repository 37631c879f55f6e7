package parser

import (
	"fmt"
	"sort"
	"strings"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

// Built-in system-notice markers. A line that starts or ends with one of them
// describes a chat-room event rather than user content.
const (
	MarkerSaveDate = "저장한 날짜"
	MarkerEntered  = "님이 들어왔습니다"
	MarkerPolicy   = "운영정책을 위반한 메시지로 신고 접수 시"

	// SenderNoticeMarker appears in the sender slot of event lines such as
	// "Alice님이 나갔습니다." that otherwise look like message headers.
	SenderNoticeMarker = "님이"

	// TitleSuffix ends the chat-title line at the top of an export.
	TitleSuffix = "님과 카카오톡 대화"
	// TitleLine is the title line of exports without a room name.
	TitleLine = "카카오톡 대화"

	// DefaultStickerPlaceholder replaces stickers and emoticons in exports.
	DefaultStickerPlaceholder = "이모티콘"
)

// DefaultNoticeMarkers returns the built-in system-notice markers.
func DefaultNoticeMarkers() []string {
	return []string{MarkerSaveDate, MarkerEntered, MarkerPolicy}
}

// NoticeFilter recognizes system-notice lines.
type NoticeFilter struct {
	machine *goahocorasick.Machine
	markers []string
}

// NewNoticeFilter builds a filter over markers. Empty and duplicate markers
// are ignored; at least one marker must remain.
func NewNoticeFilter(markers []string) (*NoticeFilter, error) {
	cleaned := lo.Uniq(lo.Compact(lo.Map(markers, func(m string, _ int) string {
		return strings.TrimSpace(m)
	})))
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("notice filter: no markers")
	}
	sort.Strings(cleaned)

	patterns := lo.Map(cleaned, func(m string, _ int) []rune { return []rune(m) })
	machine := new(goahocorasick.Machine)
	if err := machine.Build(patterns); err != nil {
		return nil, fmt.Errorf("notice filter: building matcher: %w", err)
	}

	return &NoticeFilter{machine: machine, markers: cleaned}, nil
}

// Markers returns the sorted marker set.
func (f *NoticeFilter) Markers() []string {
	return append([]string(nil), f.markers...)
}

// IsNotice reports whether the trimmed line is a system notice: it starts or
// ends with a marker (ignoring a final period), or it is the chat-title
// header. Markers in the middle of a line are user text.
func (f *NoticeFilter) IsNotice(line string) bool {
	if line == TitleLine || strings.HasSuffix(line, TitleSuffix) {
		return true
	}

	text := []rune(strings.TrimSuffix(line, "."))
	for _, term := range f.machine.MultiPatternSearch(text, false) {
		if term.Pos == 0 || term.Pos+len(term.Word) == len(text) {
			return true
		}
	}
	return false
}

// isNoticeSender reports whether a header's sender slot holds an event
// description instead of a name.
func isNoticeSender(sender string) bool {
	return strings.Contains(sender, SenderNoticeMarker)
}
