// internal/feedback/feedback.go
package feedback

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/signalnine/feedmark/internal/timestamp"
)

// DefaultFileName is the marker file name resolved against the working
// directory when no path is given.
const DefaultFileName = "USER_FEEDBACK.md"

// DefaultNote is the second line written on init.
const DefaultNote = "Do not delete the timestamp above; it records the last time this file was read by an agent."

var (
	ErrNotFound = errors.New("file not found")
	ErrExists   = errors.New("file already exists")
)

// Init creates the feedback file: first line is the canonical timestamp,
// second line is the note. Parent directories are created as needed.
// Refuses to clobber an existing file unless force is set.
func Init(path, note string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	content := timestamp.FormatNow() + "\n" + note + "\n"
	return os.WriteFile(path, []byte(content), 0644)
}

// Update rewrites the first line with the current canonical timestamp.
// The first line keeps its original terminator (CRLF, LF, or none) and
// every other byte of the file is preserved verbatim. An empty file
// becomes a single timestamp line.
func Update(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return err
	}

	lines := splitLines(strings.ToValidUTF8(string(data), "�"))
	now := timestamp.FormatNow()
	if len(lines) == 0 {
		lines = []string{now + "\n"}
	} else {
		lines[0] = now + lineEnding(lines[0])
	}

	return os.WriteFile(path, []byte(strings.Join(lines, "")), 0644)
}

// Check reports whether the file was modified after its recorded
// timestamp by more than threshold seconds. Equality within the
// threshold is stale: the tolerance absorbs clock-granularity and
// write-latency noise, so "no meaningful change" stays stale.
func Check(path string, threshold float64) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return false, err
	}

	first := string(data)
	if i := strings.IndexByte(first, '\n'); i >= 0 {
		first = first[:i]
	}

	ts, err := timestamp.Parse(strings.ToValidUTF8(first, "�"))
	if err != nil {
		return false, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	tolerance := time.Duration(threshold * float64(time.Second))
	return info.ModTime().After(ts.Add(tolerance)), nil
}

// splitLines splits keeping each line's terminating newline, so joining
// the result reproduces the input byte-for-byte.
func splitLines(s string) []string {
	var lines []string
	for len(s) > 0 {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i+1])
		s = s[i+1:]
	}
	return lines
}

func lineEnding(line string) string {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return "\r\n"
	case strings.HasSuffix(line, "\n"):
		return "\n"
	default:
		return ""
	}
}
