package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ccollicutt/chatbackup/pkg/chat"
)

// Required CSV header names. Column order is free.
const (
	ColumnDate    = "Date"
	ColumnUser    = "User"
	ColumnMessage = "Message"
)

const utf8BOM = "\ufeff"

// columns holds the indexes of the required columns in a CSV header.
type columns struct {
	date, user, message int
}

// ParseCSV parses a CSV export. The first row must be a header naming the
// Date, User and Message columns; without them the result is empty.
//
// A row is dropped when any required value is blank, when the message is the
// sticker placeholder, when the date cannot be parsed, or when the row itself
// is malformed. Rows are returned in input order. Only failures of the
// underlying reader (or an unreadable header) are returned as errors.
func (p *Parser) ParseCSV(raw string) ([]chat.Message, error) {
	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(raw, utf8BOM)))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	cols, missing := locateColumns(header)
	if len(missing) > 0 {
		p.log.WithField("missing", missing).Debug("CSV header lacks required columns")
		return nil, nil
	}

	var out []chat.Message
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			p.log.WithError(err).WithField("line", parseErr.StartLine).Debug("Dropping malformed CSV row")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}

		line, _ := r.FieldPos(0)
		if msg, ok := p.recordToMessage(record, cols, line); ok {
			out = append(out, msg)
		}
	}

	return out, nil
}

func (p *Parser) recordToMessage(record []string, cols columns, line int) (chat.Message, bool) {
	log := p.log.WithField("line", line)

	date := field(record, cols.date)
	user := field(record, cols.user)
	content := field(record, cols.message)
	if date == "" || user == "" || content == "" {
		log.WithFields(logrus.Fields{
			"date_empty":    date == "",
			"user_empty":    user == "",
			"message_empty": content == "",
		}).Debug("Dropping CSV row with missing values")
		return chat.Message{}, false
	}
	if content == p.sticker {
		log.Debug("Dropping CSV row: sticker placeholder")
		return chat.Message{}, false
	}

	ts, err := p.parseDateTime(date)
	if err != nil {
		log.WithError(err).Debug("Dropping CSV row with invalid date")
		return chat.Message{}, false
	}

	return chat.Message{Timestamp: ts, Sender: user, Content: content}, true
}

// locateColumns finds the required columns by name and lists any that are missing.
func locateColumns(header []string) (columns, []string) {
	idx := map[string]int{}
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}

	var missing []string
	lookup := func(name string) int {
		i, ok := idx[name]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}

	cols := columns{
		date:    lookup(ColumnDate),
		user:    lookup(ColumnUser),
		message: lookup(ColumnMessage),
	}
	return cols, missing
}

// field returns the trimmed value at i, or "" for short rows.
func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
