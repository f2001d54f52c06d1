package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/xolan/wfdash/internal/format"
	"github.com/xolan/wfdash/internal/logger"
	"github.com/xolan/wfdash/internal/poll"
	"github.com/xolan/wfdash/internal/service"
	"github.com/xolan/wfdash/internal/timeutil"
)

// todayCmd represents the today command
var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's work statistics",
	Long: `Show today's work hours, active and idle time, sessions and the
productivity score.

With --watch the report is printed again every refresh_interval until
interrupted. A failed refresh prints a warning and keeps watching.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		watch, _ := cmd.Flags().GetBool("watch")
		if !watch {
			showToday(cmd.Context())
			return
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		watchToday(ctx)
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().BoolP("watch", "w", false, "Refresh periodically until interrupted")
}

// showToday prints today's report once.
func showToday(ctx context.Context) {
	services, ok := loadServices()
	if !ok {
		return
	}

	report, err := services.Work.Today(ctx)
	if err != nil {
		handleRequestError("today's statistics", err, services)
		return
	}
	renderToday(deps.Stdout, report)
}

// watchToday prints today's report every refresh interval until ctx ends.
func watchToday(ctx context.Context) {
	services, ok := loadServices()
	if !ok {
		return
	}
	interval := services.Config.Get().Interval()

	err := poll.Every(ctx, interval, func(ctx context.Context) error {
		report, err := services.Work.Today(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Warn("today refresh failed", "error", err)
			_, _ = fmt.Fprintf(deps.Stderr, "Warning: Refresh failed, retrying in %s\n", interval)
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			return nil
		}
		renderToday(deps.Stdout, report)
		_, _ = fmt.Fprintf(deps.Stdout, "Updated %s, refreshing every %s (Ctrl+C to stop)\n\n",
			time.Now().Format("03:04:05 PM"), interval)
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		handleRequestError("today's statistics", err, services)
	}
}

func renderToday(w io.Writer, report *service.TodayReport) {
	_, _ = fmt.Fprintf(w, "Today's Activity - %s\n", format.DateLong(timeutil.Today()))
	_, _ = fmt.Fprintln(w, strings.Repeat("=", 60))
	_, _ = fmt.Fprintln(w)

	s := report.Stats
	_, _ = fmt.Fprintf(w, "Work Hours:      %s\n", format.Time(s.TotalWorkHours))
	_, _ = fmt.Fprintf(w, "Active Time:     %s (%d%% productive)\n", format.Minutes(s.TotalActiveMinutes), report.Productivity)
	_, _ = fmt.Fprintf(w, "Idle Time:       %s\n", format.Minutes(s.TotalIdleMinutes))
	_, _ = fmt.Fprintf(w, "Sessions:        %d (%d %s)\n", s.Sessions, s.BreaksTaken, format.Plural("break", s.BreaksTaken))
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, "Work Timeline")
	_, _ = fmt.Fprintln(w, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(w, "First Login:     %s\n", format.OrDefault(s.FirstLogin, "Not started"))
	_, _ = fmt.Fprintf(w, "Last Activity:   %s\n", format.OrDefault(s.LastActivity, "Not started"))
	lunch := "Not taken"
	if s.LunchTaken {
		lunch = "Taken"
	}
	_, _ = fmt.Fprintf(w, "Lunch:           %s\n", lunch)
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintf(w, "Productivity:    %d%% (%s)\n", report.Productivity, report.Level)

	if !report.HasActivity() {
		_, _ = fmt.Fprintln(w)
		msg := format.OrDefault(report.Message, "No activity logged today")
		_, _ = fmt.Fprintf(w, "%s. Make sure the desktop agent is running.\n", strings.TrimSuffix(msg, "."))
	}
	_, _ = fmt.Fprintln(w)
}
