// Package parser turns exported chat logs into chat.Message sequences.
//
// Two input shapes are supported: the messenger's native text export, where
// each message starts with a Korean 12-hour timestamp header and may continue
// over several lines, and a CSV export with Date, User and Message columns.
// Parsing is a pure function of the input text: the caller reads the file and
// chooses the format, the parser never sniffs.
package parser

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ccollicutt/chatbackup/pkg/chat"
)

// ErrUnknownFormat is returned by Parse for a format other than txt or csv.
var ErrUnknownFormat = errors.New("unknown input format")

// Parser holds the settings shared by the text and CSV parsers.
// A Parser is immutable once built and may be reused across calls.
type Parser struct {
	location *time.Location
	sticker  string
	notices  *NoticeFilter
	layouts  []string
	log      *logrus.Entry

	extraMarkers []string
}

// Option configures a Parser.
type Option func(*Parser)

// WithLocation sets the time zone timestamps are constructed in (default UTC).
func WithLocation(loc *time.Location) Option {
	return func(p *Parser) {
		if loc != nil {
			p.location = loc
		}
	}
}

// WithStickerPlaceholder overrides the token that stands in for stickers.
func WithStickerPlaceholder(token string) Option {
	return func(p *Parser) {
		if token != "" {
			p.sticker = token
		}
	}
}

// WithNoticeMarkers adds system-notice markers to the built-in set.
func WithNoticeMarkers(markers ...string) Option {
	return func(p *Parser) {
		p.extraMarkers = append(p.extraMarkers, markers...)
	}
}

// WithDateLayouts adds time layouts tried for the CSV Date column before the
// built-in ones.
func WithDateLayouts(layouts ...string) Option {
	return func(p *Parser) {
		p.layouts = append(append([]string(nil), layouts...), p.layouts...)
	}
}

// WithLogger sets the logger used to report discarded input at debug level.
func WithLogger(log *logrus.Entry) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// New creates a Parser.
func New(opts ...Option) (*Parser, error) {
	p := &Parser{
		location: time.UTC,
		sticker:  DefaultStickerPlaceholder,
		layouts:  DefaultDateLayouts(),
		log:      discardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}

	notices, err := NewNoticeFilter(append(DefaultNoticeMarkers(), p.extraMarkers...))
	if err != nil {
		return nil, err
	}
	p.notices = notices

	return p, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Parser {
	p, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Parse dispatches raw to the parser for format.
func (p *Parser) Parse(raw string, format chat.Format) ([]chat.Message, error) {
	switch format {
	case chat.FormatTxt:
		return p.ParseText(raw), nil
	case chat.FormatCSV:
		return p.ParseCSV(raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

var defaultParser = MustNew()

// Parse parses raw with the default settings.
func Parse(raw string, format chat.Format) ([]chat.Message, error) {
	return defaultParser.Parse(raw, format)
}

// ParseText parses a native text export with the default settings.
func ParseText(raw string) []chat.Message {
	return defaultParser.ParseText(raw)
}

// ParseCSV parses a CSV export with the default settings.
func ParseCSV(raw string) ([]chat.Message, error) {
	return defaultParser.ParseCSV(raw)
}

func discardLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
