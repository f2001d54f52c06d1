package api

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Text decodes a JSON string or number into its textual form.
// The device registry has been seen to emit numeric employee ids.
type Text string

// UnmarshalJSON implements json.Unmarshaler
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = Text(strings.TrimSpace(n.String()))
	return nil
}

// EmployeeInfo identifies the employee the agent is registered to.
type EmployeeInfo struct {
	EmployeeName string `json:"employee_name"`
	EmployeeID   Text   `json:"employee_id"`
	Designation  string `json:"designation"`
	Email        string `json:"email,omitempty"`
	Department   string `json:"department,omitempty"`
	DeviceID     Text   `json:"device_id,omitempty"`
}

// DailyStats is the backend's per-day aggregate.
// FirstLogin and LastActivity are "HH:MM" and empty when nothing was logged.
type DailyStats struct {
	TotalWorkHours     float64 `json:"total_work_hours"`
	TotalActiveMinutes float64 `json:"total_active_minutes"`
	TotalIdleMinutes   float64 `json:"total_idle_minutes"`
	Sessions           int     `json:"sessions"`
	BreaksTaken        int     `json:"breaks_taken"`
	LunchTaken         bool    `json:"lunch_taken"`
	FirstLogin         string  `json:"first_login"`
	LastActivity       string  `json:"last_activity"`
}

// TodayResponse is returned by /api/work/today.
type TodayResponse struct {
	Date     string        `json:"date"`
	Message  string        `json:"message,omitempty"`
	Stats    DailyStats    `json:"stats"`
	Employee *EmployeeInfo `json:"employee,omitempty"`
}

// TimesheetEntry is one calendar day of a timesheet.
type TimesheetEntry struct {
	Date  string     `json:"date"`
	Day   string     `json:"day"`
	Stats DailyStats `json:"stats"`
}

// TimesheetResponse is returned by /api/work/timesheet, newest day first.
type TimesheetResponse struct {
	Period    string           `json:"period"`
	Timesheet []TimesheetEntry `json:"timesheet"`
	Employee  *EmployeeInfo    `json:"employee,omitempty"`
}

// ActivityEntry is a single per-minute sample written by the agent.
// NormalHours is cumulative within one agent run.
type ActivityEntry struct {
	Timestamp   string  `json:"timestamp"`
	NormalHours float64 `json:"normal_hours"`
	IdleSeconds int     `json:"idle_seconds"`
	BreaksUsed  int     `json:"breaks_used"`
	LunchUsed   bool    `json:"lunch_used"`
}

// ActivityResponse is returned by /api/activity/detailed.
type ActivityResponse struct {
	Date         string          `json:"date"`
	TotalEntries int             `json:"total_entries"`
	Activities   []ActivityEntry `json:"activities"`
	Stats        DailyStats      `json:"stats"`
}

// Screenshot references an image captured by the agent.
type Screenshot struct {
	Filename  string `json:"filename"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path,omitempty"`
}

// ScreenshotListResponse is returned by /api/screenshots/list.
type ScreenshotListResponse struct {
	Date        string       `json:"date"`
	Screenshots []Screenshot `json:"screenshots"`
	Count       int          `json:"count"`
}

// AnalyticsSummary is returned by /api/analytics/summary.
type AnalyticsSummary struct {
	Period                 string        `json:"period"`
	TotalWorkHours         float64       `json:"total_work_hours"`
	TotalActiveMinutes     float64       `json:"total_active_minutes"`
	TotalIdleMinutes       float64       `json:"total_idle_minutes"`
	DaysWorked             int           `json:"days_worked"`
	AverageWorkHoursPerDay float64       `json:"average_work_hours_per_day"`
	Employee               *EmployeeInfo `json:"employee,omitempty"`
}
