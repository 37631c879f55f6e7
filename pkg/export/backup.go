package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ccollicutt/chatbackup/pkg/chat"
)

// Backup is a rendered export ready to be saved.
type Backup struct {
	// Name is the conventional file name for this selection.
	Name string

	// Content is the rendered text.
	Content string

	// Dates lists the date keys included, ascending.
	Dates []chat.DateKey
}

// Full renders the full backup of g.
func Full(g *chat.Grouped) Backup {
	return Backup{
		Name:    BackupFileName,
		Content: FormatAll(g),
		Dates:   g.SortedKeys(),
	}
}

// ForDate renders the backup of a single date.
func ForDate(g *chat.Grouped, key chat.DateKey) (Backup, error) {
	content, err := FormatDate(g, key)
	if err != nil {
		return Backup{}, err
	}
	return Backup{Name: DateFileName(key), Content: content, Dates: []chat.DateKey{key}}, nil
}

// ForRange renders the backup of the dates in r.
func ForRange(g *chat.Grouped, r Range) (Backup, error) {
	if err := r.Validate(); err != nil {
		return Backup{}, err
	}
	return Backup{
		Name:    r.FileName(),
		Content: FormatRangeOrAll(g, r),
		Dates:   r.Select(g.SortedKeys()),
	}, nil
}

// Empty reports whether the backup selected no dates.
func (b Backup) Empty() bool {
	return len(b.Dates) == 0
}

// Save writes the backup into dir, creating it if needed, and returns the
// path written.
func (b Backup) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, b.Name)
	if err := os.WriteFile(path, []byte(b.Content), 0o600); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
