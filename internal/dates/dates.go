// Package dates normalizes the cutoff dates accepted by every date-aware
// operation. A malformed cutoff is never a hard failure: the current time is
// substituted and the substitution is reported to the caller.
package dates

import (
	"strings"
	"time"
)

const dayFormat = "2006-01-02"

var cutoffFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	dayFormat,
}

// CutoffOrNow parses an ISO-8601 date or date-time cutoff. The second return
// value reports whether the input was unusable and the current time was
// substituted instead.
func CutoffOrNow(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now().UTC(), false
	}
	for _, layout := range cutoffFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), false
		}
	}
	// Salvage a date-time whose time portion is malformed.
	if idx := strings.IndexByte(raw, 'T'); idx > 0 {
		if t, err := time.Parse(dayFormat, raw[:idx]); err == nil {
			return t.UTC(), false
		}
	}
	return time.Now().UTC(), true
}

// Day formats a time as an ISO-8601 calendar date.
func Day(t time.Time) string {
	return t.Format(dayFormat)
}
