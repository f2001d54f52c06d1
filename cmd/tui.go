package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xolan/wfdash/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	Long: `Launch the interactive dashboard.

Pages available (--page):
  /             Today: hours, sessions and productivity, refreshed periodically
  /timesheet    Timesheet: 7, 14 or 30 day breakdown with a trend chart
  /activity     Activity Log: per-minute samples for a day
  /screenshots  Screenshots: captures for a day, with preview and download

Keyboard shortcuts:
  - Tab/Shift+Tab: Navigate between pages
  - 1-4: Jump to a specific page
  - [ ] t g: Previous day, next day, today, go to date
  - r: Refresh
  - T: Next theme
  - ?: Show help
  - q: Quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		page, _ := cmd.Flags().GetString("page")
		runTUI(page)
	},
}

// runDashboard is replaced in tests so no terminal program starts.
var runDashboard = tui.Run

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().String("page", "/", "Page to open the dashboard on")
}

// runTUI resolves the start page and runs the dashboard.
func runTUI(page string) {
	tab, err := tui.TabForPath(page)
	if err != nil {
		handleInvalidFlag("page", err, "")
		return
	}

	services, ok := loadServices()
	if !ok {
		return
	}

	if err := runDashboard(services, tab); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to run the dashboard")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
	}
}
