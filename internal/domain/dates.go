package domain

import (
	"fmt"
	"time"
)

// DateLayout is the storage and input format for plan dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must use YYYY-MM-DD format", s)
	}
	return t, nil
}

// Today formats now as a calendar date in its own location.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// ValidateStartDate rejects malformed dates and dates before today.
func ValidateStartDate(s string, now time.Time) error {
	if _, err := ParseDate(s); err != nil {
		return err
	}
	if s < Today(now) {
		return fmt.Errorf("start date %s is in the past", s)
	}
	return nil
}

// ValidateEndDate rejects malformed end dates and end dates before start.
// An empty start date leaves the end date unconstrained.
func ValidateEndDate(end, start string) error {
	if _, err := ParseDate(end); err != nil {
		return err
	}
	if start != "" && end < start {
		return fmt.Errorf("end date %s is before start date %s", end, start)
	}
	return nil
}
