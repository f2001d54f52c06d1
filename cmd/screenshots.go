package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/wfdash/internal/format"
	"github.com/xolan/wfdash/internal/service"
)

// screenshotsCmd represents the screenshots command
var screenshotsCmd = &cobra.Command{
	Use:   "screenshots",
	Short: "List screenshots captured on a day",
	Long: `List the screenshots the desktop agent captured on a day, with the
URL each one is served from.

Examples:
  wfdash screenshots
  wfdash screenshots --date 2024-01-05
  wfdash screenshots download shot_0930.png --date 2024-01-05 --out ./shots`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		date, _ := cmd.Flags().GetString("date")
		listScreenshots(cmd.Context(), date)
	},
}

// screenshotsDownloadCmd represents the screenshots download command
var screenshotsDownloadCmd = &cobra.Command{
	Use:   "download <filename>",
	Short: "Save a screenshot to disk",
	Long: `Download a screenshot into --out, or into download_dir from the config
file (~/Downloads when unset).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		date, _ := cmd.Flags().GetString("date")
		out, _ := cmd.Flags().GetString("out")
		downloadScreenshot(cmd.Context(), date, args[0], out)
	},
}

func init() {
	rootCmd.AddCommand(screenshotsCmd)
	screenshotsCmd.AddCommand(screenshotsDownloadCmd)

	screenshotsCmd.PersistentFlags().String("date", "", "Day to show (YYYY-MM-DD or DD/MM/YYYY, default today)")
	screenshotsDownloadCmd.Flags().StringP("out", "o", "", "Directory to save into")
}

// listScreenshots prints the screenshots captured on a day.
func listScreenshots(ctx context.Context, input string) {
	date, ok := resolveDate(input)
	if !ok {
		return
	}

	services, ok := loadServices()
	if !ok {
		return
	}

	list, err := services.Screenshots.List(ctx, date)
	if err != nil {
		handleRequestError("screenshots", err, services)
		return
	}
	renderScreenshots(deps.Stdout, list, services.Screenshots)
}

func renderScreenshots(w io.Writer, list *service.ScreenshotList, svc *service.ScreenshotService) {
	n := list.Total()
	_, _ = fmt.Fprintf(w, "Screenshots - %s (%d %s)\n", format.DateLong(list.Date), n, format.Plural("screenshot", n))
	_, _ = fmt.Fprintln(w, strings.Repeat("=", 60))
	_, _ = fmt.Fprintln(w)

	if len(list.Items) == 0 {
		_, _ = fmt.Fprintln(w, "No screenshots found for this date")
		_, _ = fmt.Fprintln(w, "Screenshots are captured while the desktop agent is running.")
		return
	}

	for i, shot := range list.Items {
		_, _ = fmt.Fprintf(w, "  %3d. %-28s  %s\n", i+1, shot.Filename, svc.URL(list.Date, shot.Filename))
	}
	_, _ = fmt.Fprintln(w)
}

// downloadScreenshot saves one screenshot and prints where it went.
func downloadScreenshot(ctx context.Context, input, filename, out string) {
	date, ok := resolveDate(input)
	if !ok {
		return
	}

	services, ok := loadServices()
	if !ok {
		return
	}

	path, size, err := services.Screenshots.Download(ctx, date, filename, out)
	if err != nil {
		handleRequestError("screenshot "+filename, err, services)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Saved %s (%s)\n", path, service.HumanBytes(size))
}
