package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/wfdash/internal/config"
	"github.com/xolan/wfdash/internal/format"
	"github.com/xolan/wfdash/internal/service"
)

// timesheetCmd represents the timesheet command
var timesheetCmd = &cobra.Command{
	Use:   "timesheet",
	Short: "Show the daily breakdown for a period",
	Long: `Show totals and a per-day breakdown for the last 7, 14 or 30 days.

Without --days the timesheet_days config value is used.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		days, _ := cmd.Flags().GetInt("days")
		showTimesheet(cmd.Context(), days)
	},
}

func init() {
	rootCmd.AddCommand(timesheetCmd)
	timesheetCmd.Flags().IntP("days", "d", 0, "Period length: 7, 14 or 30")
}

// showTimesheet prints the timesheet. days of 0 selects the configured period.
func showTimesheet(ctx context.Context, days int) {
	if days != 0 && !config.ValidTimesheetDays(days) {
		handleInvalidFlag("days", fmt.Errorf("unsupported period %d", days), "Use 7, 14 or 30")
		return
	}

	services, ok := loadServices()
	if !ok {
		return
	}
	if days == 0 {
		days = services.Config.Get().TimesheetDays
	}

	report, err := services.Work.Timesheet(ctx, days)
	if err != nil {
		handleRequestError("timesheet", err, services)
		return
	}
	renderTimesheet(deps.Stdout, report)
}

func renderTimesheet(w io.Writer, report *service.TimesheetReport) {
	_, _ = fmt.Fprintf(w, "Timesheet - %s\n", format.OrDefault(report.Period, fmt.Sprintf("Last %d days", report.Days)))
	_, _ = fmt.Fprintln(w, strings.Repeat("=", 60))
	_, _ = fmt.Fprintln(w)

	t := report.Totals
	_, _ = fmt.Fprintf(w, "Total Hours:     %s\n", format.Time(t.TotalHours))
	_, _ = fmt.Fprintf(w, "Days Worked:     %d of %d\n", t.DaysWorked, report.Days)
	_, _ = fmt.Fprintf(w, "Average/Day:     %s\n", format.Time(t.AvgHoursPerDay))
	_, _ = fmt.Fprintf(w, "Productivity:    %d%%\n", t.Productivity())
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, "Daily Breakdown:")
	_, _ = fmt.Fprintln(w, strings.Repeat("-", 60))
	if len(report.Rows) == 0 {
		_, _ = fmt.Fprintln(w, "No work recorded in this period")
		_, _ = fmt.Fprintln(w)
		return
	}

	_, _ = fmt.Fprintf(w, "  %-12s  %8s  %8s  %8s  %8s  %5s\n", "Date", "Hours", "Active", "Idle", "Sessions", "Prod")
	for _, row := range report.Rows {
		_, _ = fmt.Fprintf(w, "  %-12s  %8s  %8s  %8s  %8d  %4d%%\n",
			row.Label,
			format.Time(row.Stats.TotalWorkHours),
			format.Minutes(row.Stats.TotalActiveMinutes),
			format.Minutes(row.Stats.TotalIdleMinutes),
			row.Stats.Sessions,
			row.Productivity,
		)
	}
	_, _ = fmt.Fprintln(w)
}
