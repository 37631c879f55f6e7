package test

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
)

// getProjectRoot returns the project root directory based on this test file's location.
func getProjectRoot() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "."
	}
	// Go up one level from test/ to project root
	return filepath.Dir(filepath.Dir(filename))
}

// walkGoFiles calls fn for every Go file in the module, skipping directories
// the go tool ignores.
func walkGoFiles(t *testing.T, fn func(path string)) {
	t.Helper()
	err := filepath.Walk(getProjectRoot(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			name := info.Name()
			if path != getProjectRoot() && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") ||
				name == "vendor" || name == "testdata") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".go") {
			fn(path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to walk directory: %v", err)
	}
}

// TestNoSkippedTests ensures no test files contain t.Skip() calls.
// Skipped tests hide failures - tests should either pass or fail, never skip.
func TestNoSkippedTests(t *testing.T) {
	forbiddenPatterns := []string{
		"t.Skip(",
		"t.SkipNow(",
		"testing.Short()",
	}

	testFiles := []string{}
	walkGoFiles(t, func(path string) {
		// Skip this quality test file itself
		if strings.HasSuffix(path, "_test.go") && !strings.HasSuffix(path, "quality_test.go") {
			testFiles = append(testFiles, path)
		}
	})

	violations := []string{}

	for _, testFile := range testFiles {
		f, err := os.Open(testFile)
		if err != nil {
			t.Fatalf("Failed to open %s: %v", testFile, err)
		}

		scanner := bufio.NewScanner(f)
		lineNum := 0
		for scanner.Scan() {
			lineNum++
			line := scanner.Text()

			// Skip comments
			if strings.HasPrefix(strings.TrimSpace(line), "//") {
				continue
			}

			for _, pattern := range forbiddenPatterns {
				if strings.Contains(line, pattern) {
					violations = append(violations,
						testFile+":"+strconv.Itoa(lineNum)+": contains forbidden pattern '"+pattern+"'")
				}
			}
		}
		f.Close()

		if err := scanner.Err(); err != nil {
			t.Fatalf("Error scanning %s: %v", testFile, err)
		}
	}

	if len(violations) > 0 {
		t.Errorf("Found %d test skip violation(s):\n", len(violations))
		for _, v := range violations {
			t.Errorf("  %s", v)
		}
		t.Error("\nTests should not be skipped. Either:")
		t.Error("  1. Fix the issue causing the skip")
		t.Error("  2. Use t.Fatalf() if a required resource is missing")
		t.Error("  3. Remove the test if it's no longer relevant")
	}
}

// TestNoByteOrderMarks ensures Go sources spell U+FEFF as an escape. A raw
// BOM inside a string literal is invisible in review.
func TestNoByteOrderMarks(t *testing.T) {
	bom := []byte{0xEF, 0xBB, 0xBF}

	walkGoFiles(t, func(path string) {
		data, err := os.ReadFile(path) // #nosec G304 -- walking our own sources
		if err != nil {
			t.Fatalf("Failed to read %s: %v", path, err)
		}
		if i := bytes.Index(data, bom); i >= 0 {
			line := bytes.Count(data[:i], []byte("\n")) + 1
			t.Errorf("%s:%d: raw byte order mark, use \"\\ufeff\"", path, line)
		}
	})
}

// TestNoEmptyTests ensures test files are discovered at all.
func TestNoEmptyTests(t *testing.T) {
	testFiles := []string{}
	walkGoFiles(t, func(path string) {
		if strings.HasSuffix(path, "_test.go") && !strings.HasSuffix(path, "quality_test.go") {
			testFiles = append(testFiles, path)
		}
	})

	if len(testFiles) == 0 {
		t.Fatal("No test files found - something is wrong with test discovery")
	}

	t.Logf("Found %d test files", len(testFiles))
}
