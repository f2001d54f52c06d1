// Package format converts raw statistics returned by the workforce API
// into display strings shared by the CLI and the TUI.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// InvalidDate is rendered for date strings that cannot be parsed.
const InvalidDate = "Invalid Date"

// dateLayouts lists the date and timestamp layouts the backend is known to emit.
// Layouts without a zone are interpreted as local wall-clock time.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Time formats fractional hours as "{h}h {m}m".
// Negative hours are not guarded against.
func Time(hours float64) string {
	totalMinutes := int(math.Floor(hours * 60))
	h := totalMinutes / 60
	m := totalMinutes % 60
	return fmt.Sprintf("%dh %dm", h, m)
}

// Minutes formats a minute count as "{h}h {m}m", dropping the hour segment
// entirely when it is zero.
func Minutes(minutes float64) string {
	h := int(math.Floor(minutes / 60))
	m := int(math.Floor(math.Mod(minutes, 60)))
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// Date renders a date string as e.g. "Fri, Jan 5".
func Date(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return InvalidDate
	}
	return t.Format("Mon, Jan 2")
}

// DateLong renders a date string as e.g. "Friday, January 5, 2024".
func DateLong(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return InvalidDate
	}
	return t.Format("Monday, January 2, 2006")
}

// ParseDate parses an ISO date or timestamp. A bare date is kept as a
// calendar date in the local zone so it never shifts by a day.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ClockTime renders an activity timestamp as "03:04:05 PM".
// Unparsable timestamps are returned unchanged.
func ClockTime(ts string) string {
	t, ok := ParseDate(ts)
	if !ok {
		return ts
	}
	return t.Format("03:04:05 PM")
}

// ProductivityPercentage returns active/total as a whole percentage.
// A zero total yields 0. The result is not clamped, so values above 100
// are possible when the backend reports more active than total minutes.
func ProductivityPercentage(activeMinutes, totalMinutes float64) int {
	if totalMinutes == 0 {
		return 0
	}
	// round half up, matching how the dashboard has always rounded
	return int(math.Floor(activeMinutes/totalMinutes*100 + 0.5))
}

// Level buckets a productivity percentage for colouring.
type Level int

const (
	LevelPoor Level = iota
	LevelFair
	LevelGood
)

// String implements fmt.Stringer
func (l Level) String() string {
	switch l {
	case LevelGood:
		return "good"
	case LevelFair:
		return "fair"
	default:
		return "poor"
	}
}

// LevelFor returns the level for a productivity percentage.
func LevelFor(percentage int) Level {
	if percentage >= 80 {
		return LevelGood
	}
	if percentage >= 60 {
		return LevelFair
	}
	return LevelPoor
}

// Hours2 rounds v to two decimal places.
func Hours2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Plural returns word with an "s" suffix unless count is 1.
func Plural(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}

// OrDefault returns s, or fallback when s is empty.
func OrDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
