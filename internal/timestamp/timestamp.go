// internal/timestamp/timestamp.go
package timestamp

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// canonicalLayout is what init/update write: local time, second precision,
// no offset.
const canonicalLayout = "2006-01-02T15:04:05"

// ErrUnrecognized indicates the line matched none of the accepted
// timestamp forms.
var ErrUnrecognized = errors.New("unrecognized timestamp")

var (
	epochRe     = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
	dateTimeRe  = regexp.MustCompile(`\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:?\d{2})?`)
	dateRe      = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	numOffsetRe = regexp.MustCompile(`[+-]\d{4}$`)
	colOffsetRe = regexp.MustCompile(`[+-]\d{2}:\d{2}$`)
)

// Parse extracts a timestamp from the first line of a feedback file.
// Accepted forms, first match wins:
//   - the whole trimmed line is epoch seconds (integer or decimal)
//   - the line contains an ISO-8601-like date-time, with or without
//     fractional seconds and offset; the separator may be a space
//   - the line contains a bare YYYY-MM-DD date (local midnight)
//
// Date-times without an offset are wall-clock LOCAL time, matching the
// clock that wrote the canonical form. Anything else fails; a first line
// never silently defaults.
func Parse(line string) (time.Time, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("%w: first line is empty", ErrUnrecognized)
	}

	if epochRe.MatchString(trimmed) {
		sec, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognized, trimmed)
		}
		whole, frac := math.Modf(sec)
		return time.Unix(int64(whole), int64(math.Round(frac*1e9))), nil
	}

	if token := dateTimeRe.FindString(trimmed); token != "" {
		return parseDateTime(token, trimmed)
	}

	if token := dateRe.FindString(trimmed); token != "" {
		ts, err := time.ParseInLocation("2006-01-02", token, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognized, trimmed)
		}
		return ts, nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognized, trimmed)
}

func parseDateTime(token, line string) (time.Time, error) {
	token = strings.Replace(token, " ", "T", 1)
	if strings.HasSuffix(token, "Z") {
		token = strings.TrimSuffix(token, "Z") + "+00:00"
	}
	// Rewrite a trailing ±HHMM offset to ±HH:MM. Only the exact 4-digit
	// form is handled; other lengths fail below.
	if numOffsetRe.MatchString(token) {
		token = token[:len(token)-5] + token[len(token)-5:len(token)-2] + ":" + token[len(token)-2:]
	}

	var ts time.Time
	var err error
	if colOffsetRe.MatchString(token) {
		ts, err = time.Parse("2006-01-02T15:04:05-07:00", token)
	} else {
		ts, err = time.ParseInLocation(canonicalLayout, token, time.Local)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognized, line)
	}
	return ts, nil
}

// FormatNow returns the canonical first-line token for the current local
// time.
func FormatNow() string {
	return time.Now().Format(canonicalLayout)
}
