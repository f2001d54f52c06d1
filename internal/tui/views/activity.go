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

// ActivityModel is the model for the activity log view
type ActivityModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width   int
	height  int
	dates   dateBar
	state   loadstate.State[*service.ActivityReport]
	spinner spinner.Model
	cursor  int
	cancel  context.CancelFunc
}

// NewActivityModel creates a new activity view model for today's date
func NewActivityModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) ActivityModel {
	return ActivityModel{
		services: services,
		styles:   styles,
		keys:     keys,
		dates:    newDateBar(keys),
		state:    loadstate.New[*service.ActivityReport](loadstate.ClearOnError),
		spinner:  newSpinner(),
	}
}

// activityLoadedMsg is sent when the activity log is loaded
type activityLoadedMsg struct {
	seq    uint64
	report *service.ActivityReport
	err    error
}

// Init implements tea.Model
func (m ActivityModel) Init() tea.Cmd {
	return nil
}

// Activate loads the selected date.
func (m ActivityModel) Activate() (ActivityModel, tea.Cmd) {
	return m.load()
}

// Deactivate drops any in-flight request.
func (m ActivityModel) Deactivate() ActivityModel {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.state = m.state.Invalidate()
	return m
}

// Date returns the selected date as YYYY-MM-DD.
func (m ActivityModel) Date() string {
	return m.dates.date
}

// IsInputMode returns true when the date prompt is capturing keys
func (m ActivityModel) IsInputMode() bool {
	return m.dates.editing
}

// Update implements tea.Model
func (m ActivityModel) Update(msg tea.Msg) (ActivityModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.dates.editing {
			switch {
			case key.Matches(msg, m.keys.Refresh):
				return m.load()
			case key.Matches(msg, m.keys.Up):
				if m.cursor > 0 {
					m.cursor--
				}
				return m, nil
			case key.Matches(msg, m.keys.Down):
				if m.cursor < m.rowCount()-1 {
					m.cursor++
				}
				return m, nil
			}
		}

		var changed bool
		var cmd tea.Cmd
		m.dates, changed, cmd = m.dates.update(msg)
		if changed {
			m.cursor = 0
			return m.load()
		}
		return m, cmd

	case activityLoadedMsg:
		if msg.err != nil && msg.seq == m.state.Seq() {
			logger.Warn("activity load failed", "date", m.dates.date, "error", msg.err)
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

func (m ActivityModel) load() (ActivityModel, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	var seq uint64
	m.state, seq = m.state.Begin()

	svc, date := m.services.Activity, m.dates.date
	fetch := func() tea.Msg {
		report, err := svc.Detailed(ctx, date)
		return activityLoadedMsg{seq: seq, report: report, err: err}
	}
	return m, tea.Batch(fetch, m.spinner.Tick)
}

func (m ActivityModel) rowCount() int {
	if report, ok := m.state.Data(); ok && report != nil {
		return len(report.Rows)
	}
	return 0
}

// View implements tea.Model
func (m ActivityModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Activity Log"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("Detailed activity timeline"))
	b.WriteString("\n\n")
	b.WriteString(m.dates.view(m.styles))
	b.WriteString("\n\n")

	if m.state.Loading() {
		b.WriteString(loadingView(m.spinner, "Loading activity..."))
		return b.String()
	}

	report, _ := m.state.Data()
	if report != nil && report.HasRows() {
		s := report.Stats
		cards := []string{
			StatCard(m.styles, "Total Entries", fmt.Sprintf("%d", report.TotalEntries), ""),
			StatCard(m.styles, "Work Hours", fmt.Sprintf("%.2fh", s.TotalWorkHours), ""),
			StatCard(m.styles, "Sessions", fmt.Sprintf("%d", report.Sessions), ""),
			StatCard(m.styles, "Breaks", fmt.Sprintf("%d", s.BreaksTaken), ""),
		}
		b.WriteString(CardGrid(cards, m.width))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.Section.Render("Timeline for " + format.DateLong(m.dates.date)))
	b.WriteString("\n")

	if report == nil || !report.HasRows() {
		b.WriteString(m.styles.Notice.Render("No activity recorded for this date"))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("Select a different date or start the desktop agent"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTable(report.Rows))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(`"New Session" marks an agent restart. Idle seconds above 60 are highlighted.`))
	return b.String()
}

func (m ActivityModel) renderTable(rows []service.ActivityRow) string {
	var b strings.Builder
	header := fmt.Sprintf("  %-25s %-17s %-13s %-7s %s", "Time", "Cumulative Hours", "Idle Seconds", "Breaks", "Lunch")
	b.WriteString(m.styles.TableHeader.Render(header))
	b.WriteString("\n")

	start, end := visibleRange(len(rows), m.cursor, m.tableHeight())
	for i := start; i < end; i++ {
		row := rows[i]

		timeCol := fmt.Sprintf("%-11s", row.Time)
		if row.SessionStart {
			timeCol += " " + m.styles.SessionBadge.Render("New Session")
		} else {
			timeCol += strings.Repeat(" ", len(" New Session"))
		}

		idle := fmt.Sprintf("%-13s", fmt.Sprintf("%ds", row.IdleSeconds))
		if row.Idle {
			idle = m.styles.Idle.Render(idle)
		}

		lunch := "No"
		if row.LunchUsed {
			lunch = m.styles.Success.Render("Yes")
		}

		prefix := "  "
		if i == m.cursor {
			prefix = m.styles.RowSelected.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s  %-17s %s %-7d %s\n",
			prefix, timeCol, fmt.Sprintf("%.2fh", row.NormalHours), idle, row.BreaksUsed, lunch))
	}
	return b.String()
}

func (m ActivityModel) tableHeight() int {
	if m.height <= 0 {
		return 0
	}
	return max(m.height-16, 5)
}

// SetSize updates the view dimensions
func (m *ActivityModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
