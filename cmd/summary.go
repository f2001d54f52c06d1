package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/wfdash/internal/api"
	"github.com/xolan/wfdash/internal/format"
)

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the analytics summary",
	Long: `Show the backend's analytics summary: total and average hours, active
and idle time, and days worked over the last --days days (default 30).`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		days, _ := cmd.Flags().GetInt("days")
		showSummary(cmd.Context(), days)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().IntP("days", "d", api.DefaultSummaryDays, "Number of days to summarize")
}

// showSummary prints the analytics summary over days days.
func showSummary(ctx context.Context, days int) {
	if days <= 0 {
		handleInvalidFlag("days", fmt.Errorf("period must be positive, got %d", days), "")
		return
	}

	services, ok := loadServices()
	if !ok {
		return
	}

	summary, err := services.Work.Summary(ctx, days)
	if err != nil {
		handleRequestError("analytics summary", err, services)
		return
	}
	renderSummary(deps.Stdout, summary, days)
}

func renderSummary(w io.Writer, s *api.AnalyticsSummary, days int) {
	_, _ = fmt.Fprintf(w, "Summary - %s\n", format.OrDefault(s.Period, fmt.Sprintf("Last %d days", days)))
	_, _ = fmt.Fprintln(w, strings.Repeat("=", 60))
	_, _ = fmt.Fprintln(w)

	pct := format.ProductivityPercentage(s.TotalActiveMinutes, s.TotalWorkHours*60)
	_, _ = fmt.Fprintf(w, "Total Hours:     %s\n", format.Time(s.TotalWorkHours))
	_, _ = fmt.Fprintf(w, "Average/Day:     %s\n", format.Time(s.AverageWorkHoursPerDay))
	_, _ = fmt.Fprintf(w, "Days Worked:     %d %s\n", s.DaysWorked, format.Plural("day", s.DaysWorked))
	_, _ = fmt.Fprintf(w, "Active Time:     %s\n", format.Minutes(s.TotalActiveMinutes))
	_, _ = fmt.Fprintf(w, "Idle Time:       %s\n", format.Minutes(s.TotalIdleMinutes))
	_, _ = fmt.Fprintf(w, "Productivity:    %d%% (%s)\n", pct, format.LevelFor(pct))
	_, _ = fmt.Fprintln(w)
}
