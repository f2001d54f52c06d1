package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/wfdash/internal/api"
	"github.com/xolan/wfdash/internal/format"
	"github.com/xolan/wfdash/internal/service"
	"github.com/xolan/wfdash/internal/timeutil"
)

// activityCmd represents the activity command
var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show the per-minute activity log for a day",
	Long: `Show every sample the desktop agent recorded on a day.

Rows where the cumulative hours drop mark a new agent session. Idle
seconds above 60 are flagged with '!'.

Examples:
  wfdash activity
  wfdash activity --date 2024-01-05
  wfdash activity --date 05/01/2024`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		date, _ := cmd.Flags().GetString("date")
		showActivity(cmd.Context(), date)
	},
}

func init() {
	rootCmd.AddCommand(activityCmd)
	activityCmd.Flags().String("date", "", "Day to show (YYYY-MM-DD or DD/MM/YYYY, default today)")
}

// resolveDate normalizes a --date value, defaulting to today.
func resolveDate(input string) (string, bool) {
	date, err := timeutil.NormalizeDate(strings.TrimSpace(input))
	if err != nil {
		handleInvalidFlag("date", err, "Use YYYY-MM-DD or DD/MM/YYYY")
		return "", false
	}
	return date, true
}

// showActivity prints the activity log for a day.
func showActivity(ctx context.Context, input string) {
	date, ok := resolveDate(input)
	if !ok {
		return
	}

	services, ok := loadServices()
	if !ok {
		return
	}

	report, err := services.Activity.Detailed(ctx, date)
	if err != nil {
		if api.IsNotFound(err) {
			_, _ = fmt.Fprintf(deps.Stdout, "Activity Log - %s\n", format.DateLong(date))
			_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
			_, _ = fmt.Fprintln(deps.Stdout)
			_, _ = fmt.Fprintln(deps.Stdout, "No activity recorded for this date")
			return
		}
		handleRequestError("activity log", err, services)
		return
	}
	renderActivity(deps.Stdout, report)
}

func renderActivity(w io.Writer, report *service.ActivityReport) {
	_, _ = fmt.Fprintf(w, "Activity Log - %s\n", format.DateLong(report.Date))
	_, _ = fmt.Fprintln(w, strings.Repeat("=", 60))
	_, _ = fmt.Fprintln(w)

	if !report.HasRows() {
		_, _ = fmt.Fprintln(w, "No activity recorded for this date")
		return
	}

	s := report.Stats
	_, _ = fmt.Fprintf(w, "Total Entries:   %d\n", report.TotalEntries)
	_, _ = fmt.Fprintf(w, "Work Hours:      %.2fh\n", s.TotalWorkHours)
	_, _ = fmt.Fprintf(w, "Sessions:        %d\n", report.Sessions)
	_, _ = fmt.Fprintf(w, "Breaks:          %d\n", s.BreaksTaken)
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, "Timeline:")
	_, _ = fmt.Fprintln(w, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(w, "  %-11s  %-11s  %8s  %6s  %6s  %s\n", "Time", "", "Hours", "Idle", "Breaks", "Lunch")
	for _, row := range report.Rows {
		marker := ""
		if row.SessionStart {
			marker = "New Session"
		}
		idle := fmt.Sprintf("%ds", row.IdleSeconds)
		if row.Idle {
			idle += "!"
		}
		lunch := "No"
		if row.LunchUsed {
			lunch = "Yes"
		}
		_, _ = fmt.Fprintf(w, "  %-11s  %-11s  %7.2fh  %6s  %6d  %s\n",
			row.Time, marker, row.NormalHours, idle, row.BreaksUsed, lunch)
	}
	_, _ = fmt.Fprintln(w)
}
