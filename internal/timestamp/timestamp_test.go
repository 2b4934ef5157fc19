// internal/timestamp/timestamp_test.go
package timestamp

import (
	"errors"
	"regexp"
	"testing"
	"time"
)

func TestParseEpoch(t *testing.T) {
	tests := []struct {
		line string
		want time.Time
	}{
		{"1704067200", time.Unix(1704067200, 0)},
		{"0", time.Unix(0, 0)},
		{"1704067200.5", time.Unix(1704067200, 500000000)},
		{"1704067200.25", time.Unix(1704067200, 250000000)},
		{"  1704067200.75  ", time.Unix(1704067200, 750000000)},
	}

	for _, tt := range tests {
		got, err := Parse(tt.line)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.line, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("Parse(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestParseDateTimeWithOffset(t *testing.T) {
	tests := []struct {
		line string
		want time.Time
	}{
		{"2024-01-01T00:00:00Z", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-01-01 00:00:00Z", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-01-01T01:00:00+01:00", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2023-12-31T19:00:00-05:00", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-06-01T12:00:00+0530", time.Date(2024, 6, 1, 6, 30, 0, 0, time.UTC)},
		{"2024-01-01T00:00:00.25Z", time.Date(2024, 1, 1, 0, 0, 0, 250000000, time.UTC)},
		{"last read at 2024-01-01T00:00:00Z by the agent", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := Parse(tt.line)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.line, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("Parse(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

// The same instant expressed with different offsets must parse equal.
func TestParseOffsetEquivalence(t *testing.T) {
	a, err := Parse("2024-01-01T00:00:00Z")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b, err := Parse("2024-01-01T01:00:00+01:00")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !a.Equal(b) {
		t.Errorf("offset forms of the same instant differ: %v vs %v", a, b)
	}
}

// Naive date-times are wall-clock local time, not UTC.
func TestParseNaiveDateTime(t *testing.T) {
	got, err := Parse("2024-03-15T12:30:45")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := time.Date(2024, 3, 15, 12, 30, 45, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("Parse naive = %v, want local %v", got, want)
	}

	// Fractional seconds survive without an offset too.
	got, err = Parse("2024-03-15T12:30:45.5")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want = time.Date(2024, 3, 15, 12, 30, 45, 500000000, time.Local)
	if !got.Equal(want) {
		t.Errorf("Parse fractional naive = %v, want %v", got, want)
	}
}

func TestParseBareDate(t *testing.T) {
	tests := []string{
		"2024-05-06",
		"reviewed on 2024-05-06 by a human",
	}
	want := time.Date(2024, 5, 6, 0, 0, 0, 0, time.Local)

	for _, line := range tests {
		got, err := Parse(line)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", line, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("Parse(%q) = %v, want local midnight %v", line, got, want)
		}
	}
}

func TestParseUnrecognized(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"no timestamp here",
		"12:30:00",
		"2024-99-99T99:99:99",
		"-5",
	}

	for _, line := range tests {
		got, err := Parse(line)
		if err == nil {
			t.Errorf("Parse(%q) expected error, got %v", line, got)
			continue
		}
		if !errors.Is(err, ErrUnrecognized) {
			t.Errorf("Parse(%q) error = %v, want ErrUnrecognized", line, err)
		}
	}
}

func TestFormatNow(t *testing.T) {
	s := FormatNow()

	shape := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}$`)
	if !shape.MatchString(s) {
		t.Fatalf("FormatNow() = %q, want canonical YYYY-MM-DDTHH:MM:SS", s)
	}

	// Canonical output must round-trip through Parse as local time.
	ts, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(FormatNow()) error: %v", err)
	}
	if diff := time.Since(ts); diff < 0 || diff > 5*time.Second {
		t.Errorf("Parse(FormatNow()) = %v, too far from now (%v)", ts, diff)
	}
}
