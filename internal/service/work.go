package service

import (
	"context"
	"fmt"

	"github.com/xolan/wfdash/internal/api"
	"github.com/xolan/wfdash/internal/format"
	"github.com/xolan/wfdash/internal/stats"
)

// WorkService provides today, timesheet and summary reports
type WorkService struct {
	api API
}

// NewWorkService creates a new WorkService
func NewWorkService(backend API) *WorkService {
	return &WorkService{api: backend}
}

// Today returns today's statistics. Productivity is active minutes over
// total work minutes.
func (s *WorkService) Today(ctx context.Context) (*TodayReport, error) {
	resp, err := s.api.TodayStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load today's stats: %w", err)
	}

	pct := format.ProductivityPercentage(resp.Stats.TotalActiveMinutes, resp.Stats.TotalWorkHours*60)
	return &TodayReport{
		Date:         resp.Date,
		Message:      resp.Message,
		Stats:        resp.Stats,
		Productivity: pct,
		Level:        format.LevelFor(pct),
	}, nil
}

// Timesheet returns the last days days of work with totals and a
// chronological chart series. Rows keep the server's newest-first order.
func (s *WorkService) Timesheet(ctx context.Context, days int) (*TimesheetReport, error) {
	if days <= 0 {
		days = api.DefaultTimesheetDays
	}

	resp, err := s.api.Timesheet(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("failed to load timesheet: %w", err)
	}

	rows := make([]TimesheetRow, 0, len(resp.Timesheet))
	for _, day := range resp.Timesheet {
		pct := format.ProductivityPercentage(day.Stats.TotalActiveMinutes, day.Stats.TotalWorkHours*60)
		rows = append(rows, TimesheetRow{
			Date:         day.Date,
			Day:          day.Day,
			Label:        format.Date(day.Date),
			Stats:        day.Stats,
			Productivity: pct,
			Level:        format.LevelFor(pct),
		})
	}

	return &TimesheetReport{
		Days:   days,
		Period: resp.Period,
		Rows:   rows,
		Totals: stats.CalculateTotals(resp.Timesheet),
		Series: stats.ChartSeries(resp.Timesheet),
	}, nil
}

// Summary returns the analytics summary over the last days days.
func (s *WorkService) Summary(ctx context.Context, days int) (*api.AnalyticsSummary, error) {
	summary, err := s.api.AnalyticsSummary(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("failed to load analytics summary: %w", err)
	}
	return summary, nil
}
