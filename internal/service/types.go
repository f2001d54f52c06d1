// Package service provides the business logic layer for wfdash.
// It wraps the API client, the aggregation helpers and the config package,
// providing one API for both the CLI and the TUI frontends.
package service

import (
	"context"

	"github.com/xolan/wfdash/internal/api"
	"github.com/xolan/wfdash/internal/format"
	"github.com/xolan/wfdash/internal/stats"
)

// API is the workforce backend as seen by the services. *api.Client
// implements it; tests substitute fakes.
type API interface {
	EmployeeInfo(ctx context.Context) (*api.EmployeeInfo, error)
	TodayStats(ctx context.Context) (*api.TodayResponse, error)
	Timesheet(ctx context.Context, days int) (*api.TimesheetResponse, error)
	DetailedActivity(ctx context.Context, date string) (*api.ActivityResponse, error)
	ListScreenshots(ctx context.Context, date string) (*api.ScreenshotListResponse, error)
	ScreenshotURL(date, filename string) string
	Screenshot(ctx context.Context, date, filename string) ([]byte, error)
	AnalyticsSummary(ctx context.Context, days int) (*api.AnalyticsSummary, error)
}

// TodayReport is today's statistics with the derived productivity figure.
type TodayReport struct {
	Date         string
	Message      string
	Stats        api.DailyStats
	Productivity int
	Level        format.Level
}

// HasActivity reports whether any work was logged today.
func (r TodayReport) HasActivity() bool {
	return r.Stats.TotalWorkHours != 0
}

// TimesheetRow is one day of the daily breakdown table.
type TimesheetRow struct {
	Date         string
	Day          string
	Label        string
	Stats        api.DailyStats
	Productivity int
	Level        format.Level
}

// Span returns "first - last" activity times, or "" when nothing was logged.
func (r TimesheetRow) Span() string {
	if r.Stats.FirstLogin == "" {
		return ""
	}
	return r.Stats.FirstLogin + " - " + r.Stats.LastActivity
}

// TimesheetReport is a timesheet window with totals and chart series.
type TimesheetReport struct {
	Days   int
	Period string
	Rows   []TimesheetRow
	Totals stats.Totals
	Series []stats.ChartPoint
}

// ActivityRow is one per-minute sample prepared for display.
type ActivityRow struct {
	api.ActivityEntry
	Time         string
	SessionStart bool
	Idle         bool
}

// ActivityReport is the detailed activity log for one date.
type ActivityReport struct {
	Date         string
	TotalEntries int
	Stats        api.DailyStats
	Rows         []ActivityRow
	// Sessions is the server's count, or the runs visible in Rows when
	// the server reports none.
	Sessions int
}

// HasRows reports whether any samples were logged on the date.
func (r ActivityReport) HasRows() bool {
	return len(r.Rows) > 0
}

// ScreenshotList is the screenshots captured on one date.
type ScreenshotList struct {
	Date  string
	Items []api.Screenshot
	Count int
}

// Total returns the server's screenshot count, or the number of items when
// the server sent none.
func (l ScreenshotList) Total() int {
	if l.Count > 0 {
		return l.Count
	}
	return len(l.Items)
}

// ScreenshotImage is a fetched screenshot with its decoded metadata.
type ScreenshotImage struct {
	Filename string
	URL      string
	Data     []byte
	Format   string
	Width    int
	Height   int
}

// Size returns the image size in human readable form, e.g. "1.2 MB".
func (i ScreenshotImage) Size() string {
	return HumanBytes(len(i.Data))
}
