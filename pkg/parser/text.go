package parser

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ccollicutt/chatbackup/pkg/chat"
)

// assemblyState is the state of the message accumulator.
type assemblyState int

const (
	// stateIdle: no message is in progress; continuation lines are ignored.
	stateIdle assemblyState = iota
	// stateBuilding: a header was accepted and continuation lines are appended.
	stateBuilding
)

// accumulator is the in-progress message threaded through the line loop.
type accumulator struct {
	state   assemblyState
	msg     chat.Message
	lineNum int
}

// ParseText parses a native text export.
//
// Each trimmed, non-empty line is either a header (starting a new message and
// finalizing the previous one), a system notice (skipped), or a continuation
// line appended to the message in progress. Headers are matched before
// notices, so a message quoting a notice marker stays with its sender. Lines
// that are none of these are ignored; this never fails.
func (p *Parser) ParseText(raw string) []chat.Message {
	var out []chat.Message
	acc := accumulator{state: stateIdle}

	for i, line := range strings.Split(raw, "\n") {
		lineNum := i + 1
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if h, ok := MatchHeader(line); ok {
			out = p.finalize(acc, out)
			acc = p.begin(h, lineNum)
			continue
		}

		if p.notices.IsNotice(line) {
			continue
		}

		if acc.state == stateBuilding && !IsHeaderFragment(line) {
			if acc.msg.Content == "" {
				acc.msg.Content = line
			} else {
				acc.msg.Content += "\n" + line
			}
		}
	}

	return p.finalize(acc, out)
}

// begin starts a new message from h, or returns an idle accumulator when the
// header must be discarded.
func (p *Parser) begin(h Header, lineNum int) accumulator {
	log := p.log.WithField("line", lineNum)

	if isNoticeSender(h.Sender) {
		log.WithField("sender", h.Sender).Debug("Discarding header: sender is a system notice")
		return accumulator{state: stateIdle}
	}
	if h.Content == p.sticker {
		log.Debug("Discarding header: sticker placeholder")
		return accumulator{state: stateIdle}
	}

	ts, err := h.Timestamp(p.location)
	if err != nil {
		log.WithError(err).Debug("Discarding header: invalid timestamp")
		return accumulator{state: stateIdle}
	}

	return accumulator{
		state:   stateBuilding,
		lineNum: lineNum,
		msg: chat.Message{
			Timestamp: ts,
			Sender:    h.Sender,
			Content:   h.Content,
		},
	}
}

// finalize appends the accumulated message to out if it is complete.
func (p *Parser) finalize(acc accumulator, out []chat.Message) []chat.Message {
	if acc.state != stateBuilding {
		return out
	}

	msg := acc.msg
	msg.Content = strings.TrimSpace(msg.Content)
	if msg.Content == "" || msg.Content == p.sticker {
		p.log.WithFields(logrus.Fields{
			"line":   acc.lineNum,
			"sender": msg.Sender,
		}).Debug("Dropping message without text content")
		return out
	}

	return append(out, msg)
}
