// Package timeutil holds the calendar-date helpers used to pick the day a
// dashboard page shows.
package timeutil

import (
	"fmt"
	"regexp"
	"time"
)

// ISOLayout is the date layout the workforce API expects in ?date= queries.
const ISOLayout = "2006-01-02"

var (
	isoPartialRe    = regexp.MustCompile(`^\d{4}-\d{1,2}$`)
	yearOnlyRe      = regexp.MustCompile(`^\d{4}$`)
	isoPartialDayRe = regexp.MustCompile(`^\d{1,2}-\d{1,2}$`)
	euroPartialRe   = regexp.MustCompile(`^\d{1,2}/\d{1,2}$`)
	tooManyPartsRe  = regexp.MustCompile(`^\d+[-/]\d+[-/]\d+[-/]`)
)

// StartOfDay returns midnight of the given day in the same timezone
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ISODate formats t as YYYY-MM-DD in its own location.
func ISODate(t time.Time) string {
	return t.Format(ISOLayout)
}

// Today returns the current local date as YYYY-MM-DD.
func Today() string {
	return ISODate(time.Now())
}

// ParseDate parses a date string in YYYY-MM-DD or DD/MM/YYYY format.
// Returns the parsed date at midnight in the local timezone.
// ISO is tried first, so ambiguous input like 05/06/2024 is never read as ISO.
func ParseDate(input string) (time.Time, error) {
	if input == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty (use format YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-01-15 or 15/01/2024)")
	}

	t, err := time.ParseInLocation(ISOLayout, input, time.Local)
	if err == nil {
		return StartOfDay(t), nil
	}

	t, err = time.ParseInLocation("02/01/2006", input, time.Local)
	if err == nil {
		return StartOfDay(t), nil
	}

	return time.Time{}, buildDateParseError(input)
}

// NormalizeDate parses input with ParseDate and returns it as YYYY-MM-DD.
// An empty input yields today's date.
func NormalizeDate(input string) (string, error) {
	if input == "" {
		return Today(), nil
	}
	t, err := ParseDate(input)
	if err != nil {
		return "", err
	}
	return ISODate(t), nil
}

// ShiftDate moves an ISO date by the given number of days.
// Unparsable input is returned unchanged.
func ShiftDate(iso string, days int) string {
	t, err := time.ParseInLocation(ISOLayout, iso, time.Local)
	if err != nil {
		return iso
	}
	return ISODate(t.AddDate(0, 0, days))
}

// buildDateParseError creates a helpful error message based on the input pattern
func buildDateParseError(input string) error {
	switch {
	case yearOnlyRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing month and day (use format YYYY-MM-DD, e.g., %s-01-15)", input, input)
	case isoPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing day (use format YYYY-MM-DD, e.g., %s-15)", input, input)
	case isoPartialDayRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing year (use format YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-%s)", input, input)
	case euroPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing year (use format DD/MM/YYYY, e.g., %s/2024)", input, input)
	case tooManyPartsRe.MatchString(input):
		return fmt.Errorf("invalid date '%s': too many date parts (use format YYYY-MM-DD or DD/MM/YYYY)", input)
	default:
		return fmt.Errorf("invalid date format '%s' (use YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-01-15 or 15/01/2024)", input)
	}
}
