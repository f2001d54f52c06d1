// Package stats aggregates the per-day statistics returned by the workforce
// API into the totals and series the dashboard displays.
package stats

import (
	"github.com/xolan/wfdash/internal/api"
	"github.com/xolan/wfdash/internal/format"
)

// Totals contains aggregated statistics for a timesheet window
type Totals struct {
	TotalHours         float64
	TotalActiveMinutes float64
	DaysWorked         int
	AvgHoursPerDay     float64
}

// Productivity returns the active share of the total worked time.
func (t Totals) Productivity() int {
	return format.ProductivityPercentage(t.TotalActiveMinutes, t.TotalHours*60)
}

// ChartPoint is one day of the hours chart.
type ChartPoint struct {
	Date   string
	Label  string
	Hours  float64
	Active float64
}

// CalculateTotals sums hours and active minutes over entries.
// A day counts as worked when it has any hours; the average is taken over
// worked days only and is 0 when there are none.
func CalculateTotals(entries []api.TimesheetEntry) Totals {
	var totals Totals

	for _, e := range entries {
		totals.TotalHours += e.Stats.TotalWorkHours
		totals.TotalActiveMinutes += e.Stats.TotalActiveMinutes
		if e.Stats.TotalWorkHours > 0 {
			totals.DaysWorked++
		}
	}

	if totals.DaysWorked > 0 {
		totals.AvgHoursPerDay = totals.TotalHours / float64(totals.DaysWorked)
	}

	return totals
}

// ChartSeries returns the timesheet in chronological order. The server
// lists the newest day first, so the input order is reversed.
func ChartSeries(entries []api.TimesheetEntry) []ChartPoint {
	points := make([]ChartPoint, len(entries))
	for i, e := range entries {
		points[len(entries)-1-i] = ChartPoint{
			Date:   e.Date,
			Label:  format.Date(e.Date),
			Hours:  format.Hours2(e.Stats.TotalWorkHours),
			Active: format.Hours2(e.Stats.TotalActiveMinutes / 60),
		}
	}
	return points
}

// MaxHours returns the largest hours value in points, or 0 for none.
func MaxHours(points []ChartPoint) float64 {
	var max float64
	for _, p := range points {
		if p.Hours > max {
			max = p.Hours
		}
		if p.Active > max {
			max = p.Active
		}
	}
	return max
}

// SessionStarts flags each activity row that begins a new agent session.
// The agent's cumulative hours counter resets on restart, so a row whose
// normal_hours is lower than its predecessor's starts a session. The first
// row is never flagged.
func SessionStarts(activities []api.ActivityEntry) []bool {
	starts := make([]bool, len(activities))
	for i := 1; i < len(activities); i++ {
		starts[i] = activities[i].NormalHours < activities[i-1].NormalHours
	}
	return starts
}

// CountSessions returns the number of agent runs visible in activities.
func CountSessions(activities []api.ActivityEntry) int {
	if len(activities) == 0 {
		return 0
	}
	n := 1
	for _, start := range SessionStarts(activities) {
		if start {
			n++
		}
	}
	return n
}

// IdleThresholdSeconds marks an activity sample as mostly idle.
const IdleThresholdSeconds = 60

// IsIdle reports whether a sample's idle time exceeds IdleThresholdSeconds.
func IsIdle(a api.ActivityEntry) bool {
	return a.IdleSeconds > IdleThresholdSeconds
}
