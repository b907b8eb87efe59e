// Package dateutils provides the date layouts used by the bank adapters
// and the output format.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Date layout constants. Each adapter parses with exactly one layout; a
// date in the wrong shape is a row error, never a guess.
const (
	// LayoutISO is the ISO calendar date used by Sparda exports and by
	// the HomeBank output format.
	LayoutISO = "2006-01-02"
	// LayoutGerman is the dotted day-first date used by Postbank
	// exports. Day and month appear without leading zeros ("7.3.2024"),
	// which time.Parse also accepts in padded form.
	LayoutGerman = "2.1.2006"
)

// ParseStrict parses a date string with a single layout. The time
// component of the result is always midnight UTC; only the calendar day
// is meaningful.
func ParseStrict(value, layout string) (time.Time, error) {
	t, err := time.Parse(layout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("date '%s' does not match layout %s: %w", value, layout, err)
	}
	return t, nil
}

// ToISODate formats a time value as an ISO date (YYYY-MM-DD).
func ToISODate(date time.Time) string {
	return date.Format(LayoutISO)
}
