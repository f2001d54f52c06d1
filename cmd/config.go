package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/wfdash/internal/config"
	"github.com/xolan/wfdash/internal/logger"
	"github.com/xolan/wfdash/internal/tui/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for wfdash.

Shows the configuration file location, whether it exists, and all current settings.
Values come from the config file, then a .env file in the working directory,
then WFDASH_API_URL, WFDASH_THEME and WFDASH_DEBUG.

By default, wfdash works without any configuration file. All settings have defaults:
  - api_base_url: http://127.0.0.1:8000
  - refresh_interval: 60s
  - timesheet_days: 7
  - theme: dracula
  - download_dir: (empty, uses ~/Downloads)

Examples:

  Display current configuration:
    wfdash config                    Show all current settings

  Create a commented sample file:
    wfdash config init

  List the dashboard themes:
    wfdash config themes

Configuration file location:
  ~/.config/wfdash/config.toml       Linux
  ~/Library/Application Support/wfdash/config.toml   macOS
  %APPDATA%\wfdash\config.toml       Windows`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showConfig()
	},
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sample config file",
	Long:  `Write a commented config.toml with every setting at its default value. An existing file is never overwritten.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		initConfig()
	},
}

// configThemesCmd represents the config themes command
var configThemesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List dashboard themes",
	Long:  `List every theme id accepted by the theme setting and WFDASH_THEME. The active theme is marked with *.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		listThemes()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configThemesCmd)
}

// showConfig displays the current effective configuration
func showConfig() {
	services, ok := loadServices()
	if !ok {
		return
	}
	cfg := services.Config.Get()
	configPath := services.Config.GetPath()

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration for wfdash")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintf(deps.Stdout, "Config file:     %s\n", configPath)
	if services.Config.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          File exists (using custom configuration)")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          No config file (using defaults)")
	}
	if dir, err := config.Dir(); err == nil {
		_, _ = fmt.Fprintf(deps.Stdout, "Log file:        %s\n", logger.Path(dir))
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintln(deps.Stdout, "Current Settings:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "API Base URL:    %s\n", cfg.APIBaseURL)
	_, _ = fmt.Fprintf(deps.Stdout, "Refresh:         %s\n", cfg.Interval())
	_, _ = fmt.Fprintf(deps.Stdout, "Timesheet Days:  %d\n", cfg.TimesheetDays)
	_, _ = fmt.Fprintf(deps.Stdout, "Theme:           %s\n", cfg.Theme)
	if cfg.DownloadDir == "" {
		_, _ = fmt.Fprintf(deps.Stdout, "Download Dir:    %s (default)\n", cfg.ResolvedDownloadDir())
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Download Dir:    %s\n", cfg.DownloadDir)
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Debug:           %t\n", cfg.Debug)
	_, _ = fmt.Fprintln(deps.Stdout)

	if !services.Config.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Tip: Run 'wfdash config init' to create a config file with every option documented.")
		_, _ = fmt.Fprintln(deps.Stdout)
	}
}

// initConfig writes the sample config file.
func initConfig() {
	services, ok := loadServices()
	if !ok {
		return
	}

	if err := services.Config.Init(); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to create config file")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Edit the existing file instead: %s\n", services.Config.GetPath())
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", services.Config.GetPath())
}

// listThemes prints the bundled theme ids, marking the configured one.
func listThemes() {
	services, ok := loadServices()
	if !ok {
		return
	}

	themes := ui.NewThemeProvider(services.Config.Get().Theme)
	current := themes.CurrentName()
	ids := themes.AvailableThemes()

	_, _ = fmt.Fprintf(deps.Stdout, "Themes (%d)\n", len(ids))
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	for _, id := range ids {
		marker := " "
		if id == current {
			marker = "*"
		}
		_, _ = fmt.Fprintf(deps.Stdout, "%s %s\n", marker, id)
	}
}
