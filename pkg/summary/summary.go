// Package summary computes aggregate statistics over a parsed chat.
package summary

import (
	"sort"
	"strings"
	"time"

	"github.com/abadojack/whatlanggo"
	"github.com/samber/lo"

	"github.com/ccollicutt/chatbackup/pkg/chat"
)

// languageSampleSize bounds the text handed to language detection.
const languageSampleSize = 64 * 1024

// Summary describes a parsed chat.
type Summary struct {
	// TotalMessages is the number of messages.
	TotalMessages int `json:"total_messages"`

	// Participants lists senders in order of first appearance.
	Participants []string `json:"participants"`

	// MessagesBySender counts messages per sender.
	MessagesBySender map[string]int `json:"messages_by_sender"`

	// FirstMessage and LastMessage are the earliest and latest timestamps.
	FirstMessage time.Time `json:"first_message"`
	LastMessage  time.Time `json:"last_message"`

	// Dates is the number of distinct calendar dates.
	Dates int `json:"dates"`

	// BusiestDate is the date with the most messages; ties go to the earlier date.
	BusiestDate chat.DateKey `json:"busiest_date,omitempty"`

	// Language is the ISO 639-1 code of the dominant language, empty when
	// it cannot be determined.
	Language string `json:"language,omitempty"`
}

// SenderCount pairs a sender with their message count.
type SenderCount struct {
	Sender string
	Count  int
}

// Compute summarizes messages.
func Compute(messages []chat.Message) Summary {
	s := Summary{
		TotalMessages:    len(messages),
		Participants:     lo.Uniq(lo.Map(messages, func(m chat.Message, _ int) string { return m.Sender })),
		MessagesBySender: lo.CountValuesBy(messages, func(m chat.Message) string { return m.Sender }),
	}
	if len(messages) == 0 {
		return s
	}

	s.FirstMessage = lo.MinBy(messages, func(a, b chat.Message) bool {
		return a.Timestamp.Before(b.Timestamp)
	}).Timestamp
	s.LastMessage = lo.MaxBy(messages, func(a, b chat.Message) bool {
		return a.Timestamp.After(b.Timestamp)
	}).Timestamp

	g := chat.GroupByDate(messages)
	s.Dates = g.Len()
	s.BusiestDate = busiest(g)
	s.Language = detectLanguage(messages)

	return s
}

// TopSenders returns senders ordered by message count, highest first. Equal
// counts keep first-appearance order.
func (s Summary) TopSenders() []SenderCount {
	out := lo.Map(s.Participants, func(p string, _ int) SenderCount {
		return SenderCount{Sender: p, Count: s.MessagesBySender[p]}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func busiest(g *chat.Grouped) chat.DateKey {
	var best chat.DateKey
	most := 0
	for _, key := range g.SortedKeys() {
		if n := len(g.Messages(key)); n > most {
			best, most = key, n
		}
	}
	return best
}

func detectLanguage(messages []chat.Message) string {
	var b strings.Builder
	for _, m := range messages {
		if b.Len() >= languageSampleSize {
			break
		}
		b.WriteString(m.Content)
		b.WriteByte('\n')
	}

	info := whatlanggo.Detect(b.String())
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.Iso6391()
}
