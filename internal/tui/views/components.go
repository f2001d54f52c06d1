package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/wfdash/internal/format"
	"github.com/xolan/wfdash/internal/stats"
	"github.com/xolan/wfdash/internal/tui/ui"
)

const (
	cardWidth     = 22
	gaugeWidth    = 40
	chartLabelCol = 12
)

// StatCard renders a bordered card with a title, a large value and a
// subtitle line.
func StatCard(styles ui.Styles, title, value, subtitle string) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitle.Render(title),
		styles.CardValue.Render(value),
		styles.CardSub.Render(subtitle),
	)
	return styles.Card.Width(cardWidth).Render(body)
}

// CardGrid lays cards out left to right, wrapping onto new rows when the
// available width runs out.
func CardGrid(cards []string, width int) string {
	if len(cards) == 0 {
		return ""
	}

	var rows []string
	var row []string
	rowWidth := 0
	for _, c := range cards {
		w := lipgloss.Width(c)
		if len(row) > 0 && width > 0 && rowWidth+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, c)
		rowWidth += w
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Gauge renders a horizontal bar filled to pct percent of width cells.
// The fill is not capped, so above 100% it runs past the end of the track.
func Gauge(styles ui.Styles, pct, width int) string {
	filled := pct * width / 100
	if filled < 0 {
		filled = 0
	}
	track := width - filled
	if track < 0 {
		track = 0
	}

	fill := styles.Level(format.LevelFor(pct)).Render(strings.Repeat("█", filled))
	return fill + styles.GaugeTrack.Render(strings.Repeat("░", track))
}

// HoursChart renders one pair of bars per day: worked hours and active
// hours, scaled to the largest value in the series.
func HoursChart(styles ui.Styles, points []stats.ChartPoint, width int) string {
	if len(points) == 0 {
		return styles.Muted.Render("No data for this period")
	}

	barWidth := width - chartLabelCol - 10
	if barWidth < 10 {
		barWidth = 10
	}
	scale := stats.MaxHours(points)

	var b strings.Builder
	for _, p := range points {
		label := fmt.Sprintf("%-*s", chartLabelCol, p.Label)
		b.WriteString(label)
		b.WriteString(styles.BarHours.Render(strings.Repeat("█", barLength(p.Hours, scale, barWidth))))
		b.WriteString(fmt.Sprintf(" %.2fh\n", p.Hours))

		b.WriteString(strings.Repeat(" ", chartLabelCol))
		b.WriteString(styles.BarActive.Render(strings.Repeat("▒", barLength(p.Active, scale, barWidth))))
		b.WriteString(styles.Muted.Render(fmt.Sprintf(" %.2fh", p.Active)))
		b.WriteString("\n")
	}
	b.WriteString(styles.BarHours.Render("█") + " Work Hours  " + styles.BarActive.Render("▒") + " Active Hours")
	return b.String()
}

func barLength(v, scale float64, width int) int {
	if scale <= 0 || v <= 0 {
		return 0
	}
	n := int(v / scale * float64(width))
	if n == 0 {
		// keep non-zero values visible
		n = 1
	}
	return n
}

// loadingView renders the spinner with a caption.
func loadingView(sp spinner.Model, caption string) string {
	return sp.View() + " " + caption
}

func newSpinner() spinner.Model {
	return spinner.New(spinner.WithSpinner(spinner.Dot))
}

func renderStatLine(styles ui.Styles, label, value string) string {
	return styles.StatLabel.Render(label) + " " + styles.StatValue.Render(value) + "\n"
}

// truncate shortens s to width cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if width == 1 {
		return "…"
	}
	if len(r) > width-1 {
		r = r[:width-1]
	}
	return string(r) + "…"
}

// visibleRange returns the [start, end) window of n rows that keeps cursor
// on screen given room for height rows.
func visibleRange(n, cursor, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > n {
		start = n - height
	}
	return start, start + height
}
