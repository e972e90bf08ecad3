package repository

import (
	"time"
)

// parseTime parses a stored RFC3339 timestamp, returning the zero time for
// empty or malformed values.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// timeToString formats t for storage, defaulting to now when t is zero.
func timeToString(t time.Time) string {
	if t.IsZero() {
		return nowUTC()
	}
	return t.UTC().Format(time.RFC3339)
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
