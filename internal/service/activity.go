package service

import (
	"context"
	"fmt"

	"github.com/xolan/wfdash/internal/format"
	"github.com/xolan/wfdash/internal/stats"
)

// ActivityService provides the per-minute activity log
type ActivityService struct {
	api API
}

// NewActivityService creates a new ActivityService
func NewActivityService(backend API) *ActivityService {
	return &ActivityService{api: backend}
}

// Detailed returns the activity log for date (YYYY-MM-DD) with session
// boundaries and idle samples marked.
func (s *ActivityService) Detailed(ctx context.Context, date string) (*ActivityReport, error) {
	resp, err := s.api.DetailedActivity(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity for %s: %w", date, err)
	}

	starts := stats.SessionStarts(resp.Activities)
	rows := make([]ActivityRow, len(resp.Activities))
	for i, a := range resp.Activities {
		rows[i] = ActivityRow{
			ActivityEntry: a,
			Time:          format.ClockTime(a.Timestamp),
			SessionStart:  starts[i],
			Idle:          stats.IsIdle(a),
		}
	}

	reportDate := resp.Date
	if reportDate == "" {
		reportDate = date
	}

	sessions := resp.Stats.Sessions
	if sessions == 0 {
		sessions = stats.CountSessions(resp.Activities)
	}

	return &ActivityReport{
		Date:         reportDate,
		TotalEntries: resp.TotalEntries,
		Stats:        resp.Stats,
		Rows:         rows,
		Sessions:     sessions,
	}, nil
}
