// Package detector provides automatic format detection for chat export files.
package detector

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/ccollicutt/chatbackup/pkg/chat"
	"github.com/ccollicutt/chatbackup/pkg/parser"
)

// ErrBinaryInput is returned by Format when the sample is not text.
var ErrBinaryInput = errors.New("input is not a text file")

// ErrNoFormat is returned by Format when no export format matched.
var ErrNoFormat = errors.New("no chat export format detected")

// DetectionResult holds the result of analyzing an export file.
type DetectionResult struct {
	Matches      []FormatMatch // Formats that matched, sorted by confidence descending
	SampledLines int           // Number of non-empty lines sampled
	MIME         string        // Content type reported by mimetype, when bytes were available
	Binary       bool          // True when the content is not text
}

// FormatMatch represents a format that matched with its confidence score.
type FormatMatch struct {
	Format     *ExportFormat
	Confidence float64   // 0.0 to 1.0
	MatchCount int       // Number of lines or rows that matched
	SampleLine string    // Example line that matched
	ParsedTime time.Time // Timestamp parsed from the sample, when available
}

// Detector analyzes chat exports to identify their format.
type Detector struct {
	sampleSize  int
	sampleBytes int64
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample (default 100).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// New creates a new Detector.
func New(opts ...Option) *Detector {
	d := &Detector{
		sampleSize:  100,
		sampleBytes: 64 * 1024,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile analyzes the head of an export file.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G304 - path is provided by user via CLI
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	head, err := io.ReadAll(io.LimitReader(file, d.sampleBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return d.DetectFromBytes(head), nil
}

// DetectFromBytes analyzes raw file content. Content that mimetype does not
// classify as text yields a result with Binary set and no matches.
func (d *Detector) DetectFromBytes(data []byte) *DetectionResult {
	mime := mimetype.Detect(data)
	if !isText(mime) {
		return &DetectionResult{MIME: mime.String(), Binary: true}
	}

	result := d.DetectFromLines(d.sampleLines(data))
	result.MIME = mime.String()
	return result
}

// DetectFromLines scores every known format against lines.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	var sampled []string
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			sampled = append(sampled, line)
		}
		if len(sampled) >= d.sampleSize {
			break
		}
	}

	result := &DetectionResult{SampledLines: len(sampled)}
	if len(sampled) == 0 {
		return result
	}

	if m, ok := scoreText(sampled); ok {
		result.Matches = append(result.Matches, m)
	}
	if m, ok := scoreCSV(sampled); ok {
		result.Matches = append(result.Matches, m)
	}

	sort.SliceStable(result.Matches, func(i, j int) bool {
		return result.Matches[i].Confidence > result.Matches[j].Confidence
	})

	return result
}

// scoreText counts sampled lines that are message headers.
func scoreText(lines []string) (FormatMatch, bool) {
	m := FormatMatch{Format: FormatByID(chat.FormatTxt)}
	for _, line := range lines {
		h, ok := parser.MatchHeader(strings.TrimSpace(line))
		if !ok {
			continue
		}
		if m.MatchCount == 0 {
			m.SampleLine = strings.TrimSpace(line)
			if ts, err := h.Timestamp(time.UTC); err == nil {
				m.ParsedTime = ts
			}
		}
		m.MatchCount++
	}
	if m.MatchCount == 0 {
		return FormatMatch{}, false
	}
	m.Confidence = float64(m.MatchCount) / float64(len(lines))
	return m, true
}

// scoreCSV checks the header row for the required columns, then counts rows
// with the header's field count. A header-only sample scores 1.0.
func scoreCSV(lines []string) (FormatMatch, bool) {
	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(strings.Join(lines, "\n"), "\ufeff")))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil || !hasColumns(header, parser.ColumnDate, parser.ColumnUser, parser.ColumnMessage) {
		return FormatMatch{}, false
	}

	m := FormatMatch{
		Format:     FormatByID(chat.FormatCSV),
		SampleLine: strings.TrimSpace(lines[0]),
	}
	rows := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		rows++
		if err == nil && len(record) == len(header) {
			m.MatchCount++
		}
	}

	m.Confidence = float64(1+m.MatchCount) / float64(1+rows)
	return m, true
}

func hasColumns(header []string, names ...string) bool {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}
	for _, n := range names {
		if !present[n] {
			return false
		}
	}
	return true
}

// sampleLines splits the head of a file into lines. A trailing partial line
// is dropped when the sample was cut at the byte limit.
func (d *Detector) sampleLines(data []byte) []string {
	if int64(len(data)) >= d.sampleBytes {
		if i := bytes.LastIndexByte(data, '\n'); i >= 0 {
			data = data[:i]
		}
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), int(d.sampleBytes)+1)
	for scanner.Scan() && len(lines) < d.sampleSize {
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func isText(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "text/") {
			return true
		}
	}
	return false
}

// BestMatch returns the highest confidence match, or nil if none found.
func (r *DetectionResult) BestMatch() *FormatMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one format matched.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}

// Format returns the parser format of the best match.
func (r *DetectionResult) Format() (chat.Format, error) {
	if r.Binary {
		return "", fmt.Errorf("%w (%s)", ErrBinaryInput, r.MIME)
	}
	best := r.BestMatch()
	if best == nil {
		return "", ErrNoFormat
	}
	return best.Format.Format, nil
}
