package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/wfdash/internal/config"
	"github.com/xolan/wfdash/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "wfdash",
	Short: "A terminal dashboard for workforce activity",
	Long: `wfdash shows the work statistics recorded by the desktop agent.

Run without arguments to open the interactive dashboard, or use one of the
commands below to print a single report.

Usage:
  wfdash                                  Open the dashboard on Today
  wfdash tui --page /timesheet            Open the dashboard on a given page
  wfdash today [--watch]                  Today's hours, sessions and productivity
  wfdash timesheet [--days 7|14|30]       Daily breakdown for a period
  wfdash activity [--date 2024-01-05]     Per-minute activity log for a day
  wfdash screenshots [--date 05/01/2024]  Screenshots captured on a day
  wfdash screenshots download <file>      Save a screenshot to disk
  wfdash summary [--days 30]              Analytics summary
  wfdash whoami                           Employee the agent is registered to
  wfdash config                           Show configuration

Dates accept YYYY-MM-DD or DD/MM/YYYY.
The backend URL comes from the config file or WFDASH_API_URL.`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
	Run: func(cmd *cobra.Command, args []string) {
		page, _ := cmd.Flags().GetString("page")
		runTUI(page)
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Write debug output to the log file")
	rootCmd.Flags().String("page", "/", "Page to open the dashboard on")
}

// initLogging starts the file logger. Debug output is mirrored to stderr
// only for one-shot commands; the dashboard owns the terminal.
func initLogging(cmd *cobra.Command) {
	dir, err := config.Dir()
	if err != nil {
		return
	}

	debug, _ := cmd.Flags().GetBool("debug")
	if !debug {
		debug = configDebug()
	}

	interactive := !cmd.HasParent() || cmd.Name() == "tui"
	_ = logger.Init(logger.Config{
		Debug:     debug,
		ConfigDir: dir,
		Mirror:    !interactive,
	})
	logger.Debug("command started", "command", cmd.CommandPath())
}

// configDebug reports the debug setting of the effective configuration.
// A config that fails to load is reported later by the command itself.
func configDebug() bool {
	path, err := config.GetConfigPath()
	if err != nil {
		return false
	}
	_ = config.LoadDotEnv(config.EnvFile)
	cfg, err := config.Resolve(path)
	if err != nil {
		return false
	}
	return cfg.Debug
}

// SetVersionInfo sets version information for the root command
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"wfdash version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
