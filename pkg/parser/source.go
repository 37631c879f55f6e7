package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// maxInputSize bounds a single export file.
const maxInputSize = 256 * 1024 * 1024

// Input is one export file read fully into memory.
type Input struct {
	// Path is the file the data came from.
	Path string

	// Data is the complete file contents.
	Data []byte
}

// Text returns the contents as a string.
func (in *Input) Text() string {
	return string(in.Data)
}

// ExpandGlobs expands file paths and glob patterns into a sorted,
// deduplicated list. Patterns that match nothing are kept as literal paths so
// the later read reports a useful file-not-found error.
func ExpandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			add(pattern)
			continue
		}
		for _, match := range matches {
			add(match)
		}
	}

	sort.Strings(result)
	return result, nil
}

// ReadInput reads one export file. Directories and files larger than the
// input limit are rejected.
func ReadInput(ctx context.Context, path string) (*Input, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening chat export %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("chat export %s is a directory", path)
	}
	if info.Size() > maxInputSize {
		return nil, fmt.Errorf("chat export %s is too large (%d bytes)", path, info.Size())
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("reading chat export %s: %w", path, err)
	}

	return &Input{Path: path, Data: data}, nil
}

// ReadInputs reads every file in paths, stopping at the first error or when
// ctx is cancelled.
func ReadInputs(ctx context.Context, paths []string) ([]*Input, error) {
	inputs := make([]*Input, 0, len(paths))
	for _, path := range paths {
		in, err := ReadInput(ctx, path)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}
