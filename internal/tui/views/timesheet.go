package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/wfdash/internal/format"
	"github.com/xolan/wfdash/internal/loadstate"
	"github.com/xolan/wfdash/internal/logger"
	"github.com/xolan/wfdash/internal/service"
	"github.com/xolan/wfdash/internal/tui/ui"
)

// TimesheetModel is the model for the timesheet view
type TimesheetModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width   int
	height  int
	days    int
	state   loadstate.State[*service.TimesheetReport]
	spinner spinner.Model
	cursor  int
	cancel  context.CancelFunc
}

// NewTimesheetModel creates a new timesheet view model showing the last
// days days.
func NewTimesheetModel(services *service.Services, styles ui.Styles, keys ui.KeyMap, days int) TimesheetModel {
	if days <= 0 {
		days = 7
	}
	return TimesheetModel{
		services: services,
		styles:   styles,
		keys:     keys,
		days:     days,
		state:    loadstate.New[*service.TimesheetReport](loadstate.KeepOnError),
		spinner:  newSpinner(),
	}
}

// timesheetLoadedMsg is sent when the timesheet is loaded
type timesheetLoadedMsg struct {
	seq    uint64
	report *service.TimesheetReport
	err    error
}

// Init implements tea.Model
func (m TimesheetModel) Init() tea.Cmd {
	return nil
}

// Activate loads the current period.
func (m TimesheetModel) Activate() (TimesheetModel, tea.Cmd) {
	return m.load()
}

// Deactivate drops any in-flight request.
func (m TimesheetModel) Deactivate() TimesheetModel {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.state = m.state.Invalidate()
	return m
}

// Days returns the selected period length.
func (m TimesheetModel) Days() int {
	return m.days
}

// Update implements tea.Model
func (m TimesheetModel) Update(msg tea.Msg) (TimesheetModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Week):
			return m.setDays(7)
		case key.Matches(msg, m.keys.Fortnight):
			return m.setDays(14)
		case key.Matches(msg, m.keys.Month):
			return m.setDays(30)
		case key.Matches(msg, m.keys.Refresh):
			return m.load()
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < m.rowCount()-1 {
				m.cursor++
			}
		}

	case timesheetLoadedMsg:
		if msg.err != nil && msg.seq == m.state.Seq() {
			logger.Warn("timesheet load failed", "days", m.days, "error", msg.err)
		}
		m.state = m.state.Resolve(msg.seq, msg.report, msg.err)
		if m.cursor >= m.rowCount() {
			m.cursor = max(m.rowCount()-1, 0)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	return m, nil
}

// setDays switches the period. Selecting the current period is a no-op.
func (m TimesheetModel) setDays(days int) (TimesheetModel, tea.Cmd) {
	if days == m.days {
		return m, nil
	}
	m.days = days
	m.cursor = 0
	return m.load()
}

func (m TimesheetModel) load() (TimesheetModel, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	var seq uint64
	m.state, seq = m.state.Begin()

	svc, days := m.services.Work, m.days
	fetch := func() tea.Msg {
		report, err := svc.Timesheet(ctx, days)
		return timesheetLoadedMsg{seq: seq, report: report, err: err}
	}
	return m, tea.Batch(fetch, m.spinner.Tick)
}

func (m TimesheetModel) rowCount() int {
	if report, ok := m.state.Data(); ok && report != nil {
		return len(report.Rows)
	}
	return 0
}

// View implements tea.Model
func (m TimesheetModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Timesheet"))
	b.WriteString("  ")
	b.WriteString(m.renderPeriods())
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("Your work hours and activity log"))
	b.WriteString("\n\n")

	report, ok := m.state.Data()
	if !ok || report == nil {
		if m.state.Loading() {
			b.WriteString(loadingView(m.spinner, "Loading timesheet..."))
		}
		return b.String()
	}

	t := report.Totals
	cards := []string{
		StatCard(m.styles, "Total Hours", format.Time(t.TotalHours), fmt.Sprintf("%d days", report.Days)),
		StatCard(m.styles, "Days Worked", fmt.Sprintf("%d", t.DaysWorked), fmt.Sprintf("out of %d", report.Days)),
		StatCard(m.styles, "Avg Hours/Day", format.Time(t.AvgHoursPerDay), "when working"),
		StatCard(m.styles, "Active Time", format.Minutes(t.TotalActiveMinutes), fmt.Sprintf("%d%% productive", t.Productivity())),
	}
	b.WriteString(CardGrid(cards, m.width))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Section.Render("Work Hours Trend"))
	b.WriteString("\n")
	b.WriteString(HoursChart(m.styles, report.Series, m.width))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Section.Render("Daily Breakdown"))
	b.WriteString("\n")
	b.WriteString(m.renderTable(report.Rows))

	if m.state.Loading() {
		b.WriteString("\n")
		b.WriteString(loadingView(m.spinner, "Refreshing..."))
	}

	return b.String()
}

func (m TimesheetModel) renderPeriods() string {
	var parts []string
	for _, days := range []int{7, 14, 30} {
		label := fmt.Sprintf("%d days", days)
		if days == m.days {
			parts = append(parts, m.styles.NavActive.Render(label))
		} else {
			parts = append(parts, m.styles.NavInactive.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m TimesheetModel) renderTable(rows []service.TimesheetRow) string {
	if len(rows) == 0 {
		return m.styles.Muted.Render("No data for this period")
	}

	var b strings.Builder
	header := fmt.Sprintf("  %-22s %-24s %-10s %-10s %-8s %s",
		"Date", "Work Hours", "Active", "Idle", "Sessions", "Productivity")
	b.WriteString(m.styles.TableHeader.Render(header))
	b.WriteString("\n")

	start, end := visibleRange(len(rows), m.cursor, m.tableHeight())
	for i := start; i < end; i++ {
		row := rows[i]
		hours := format.Time(row.Stats.TotalWorkHours)
		if span := row.Span(); span != "" {
			hours += " (" + span + ")"
		}
		line := fmt.Sprintf("%-22s %-24s %-10s %-10s %-8d ",
			truncate(row.Day+" "+row.Label, 22),
			truncate(hours, 24),
			format.Minutes(row.Stats.TotalActiveMinutes),
			format.Minutes(row.Stats.TotalIdleMinutes),
			row.Stats.Sessions)
		pct := m.styles.Level(row.Level).Render(fmt.Sprintf("%d%% %s", row.Productivity, trendMark(row.Level)))

		if i == m.cursor {
			b.WriteString(m.styles.RowSelected.Render("> " + line))
		} else {
			b.WriteString(m.styles.RowNormal.Render("  " + line))
		}
		b.WriteString(pct)
		b.WriteString("\n")
	}
	return b.String()
}

// trendMark flags good days up and poor days down.
func trendMark(level format.Level) string {
	switch level {
	case format.LevelGood:
		return "↑"
	case format.LevelPoor:
		return "↓"
	}
	return ""
}

func (m TimesheetModel) tableHeight() int {
	// cards, chart and headings take the rest
	if m.height <= 0 {
		return 0
	}
	return max(m.height/3, 5)
}

// SetSize updates the view dimensions
func (m *TimesheetModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
