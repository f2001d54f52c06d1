package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/wfdash/internal/format"
	"github.com/xolan/wfdash/internal/loadstate"
	"github.com/xolan/wfdash/internal/logger"
	"github.com/xolan/wfdash/internal/service"
	"github.com/xolan/wfdash/internal/timeutil"
	"github.com/xolan/wfdash/internal/tui/ui"
)

// TodayModel is the model for the today view. While active it refreshes
// on a fixed interval.
type TodayModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width    int
	height   int
	state    loadstate.State[*service.TodayReport]
	spinner  spinner.Model
	interval time.Duration

	// polling
	polling bool
	pollGen int
	cancel  context.CancelFunc
}

// NewTodayModel creates a new today view model
func NewTodayModel(services *service.Services, styles ui.Styles, keys ui.KeyMap, interval time.Duration) TodayModel {
	if interval <= 0 {
		interval = time.Minute
	}
	return TodayModel{
		services: services,
		styles:   styles,
		keys:     keys,
		state:    loadstate.New[*service.TodayReport](loadstate.KeepOnError),
		spinner:  newSpinner(),
		interval: interval,
	}
}

// todayLoadedMsg is sent when today's stats are loaded
type todayLoadedMsg struct {
	seq    uint64
	report *service.TodayReport
	err    error
}

// todayTickMsg triggers a refresh. Ticks from an earlier activation carry a
// stale gen and are dropped.
type todayTickMsg struct {
	gen int
}

// Init implements tea.Model
func (m TodayModel) Init() tea.Cmd {
	return nil
}

// Activate starts polling: an immediate load plus the first tick.
func (m TodayModel) Activate() (TodayModel, tea.Cmd) {
	m.pollGen++
	m.polling = true
	m, load := m.load()
	return m, tea.Batch(load, m.tick())
}

// Deactivate stops polling and drops any in-flight request.
func (m TodayModel) Deactivate() TodayModel {
	m.polling = false
	m.pollGen++
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.state = m.state.Invalidate()
	return m
}

// Polling reports whether the view is refreshing on its interval.
func (m TodayModel) Polling() bool {
	return m.polling
}

// Update implements tea.Model
func (m TodayModel) Update(msg tea.Msg) (TodayModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Refresh) {
			return m.load()
		}

	case todayTickMsg:
		if !m.polling || msg.gen != m.pollGen {
			return m, nil
		}
		m, load := m.load()
		return m, tea.Batch(load, m.tick())

	case todayLoadedMsg:
		if msg.err != nil && msg.seq == m.state.Seq() {
			logger.Warn("today stats refresh failed", "error", msg.err)
		}
		m.state = m.state.Resolve(msg.seq, msg.report, msg.err)
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

// load starts a fetch, superseding any request still in flight.
func (m TodayModel) load() (TodayModel, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	var seq uint64
	m.state, seq = m.state.Begin()

	svc := m.services.Work
	fetch := func() tea.Msg {
		report, err := svc.Today(ctx)
		return todayLoadedMsg{seq: seq, report: report, err: err}
	}
	return m, tea.Batch(fetch, m.spinner.Tick)
}

func (m TodayModel) tick() tea.Cmd {
	gen := m.pollGen
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return todayTickMsg{gen: gen}
	})
}

// View implements tea.Model
func (m TodayModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Today's Activity"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render(format.DateLong(timeutil.Today())))
	b.WriteString("\n\n")

	report, ok := m.state.Data()
	if !ok || report == nil {
		switch {
		case m.state.Loading():
			b.WriteString(loadingView(m.spinner, "Loading today's stats..."))
		case m.state.Err() != nil:
			b.WriteString(m.styles.Banner.Render("Failed to load today's statistics"))
			b.WriteString("\n")
			b.WriteString(m.styles.Muted.Render("Press r to retry"))
		}
		return b.String()
	}

	s := report.Stats
	lunch := "No lunch yet"
	if s.LunchTaken {
		lunch = "Lunch included"
	}
	cards := []string{
		StatCard(m.styles, "Total Work Time", format.Time(s.TotalWorkHours),
			fmt.Sprintf("%d %s", s.Sessions, format.Plural("session", s.Sessions))),
		StatCard(m.styles, "Active Time", format.Minutes(s.TotalActiveMinutes),
			fmt.Sprintf("%d%% productive", report.Productivity)),
		StatCard(m.styles, "Idle Time", format.Minutes(s.TotalIdleMinutes), "Time away from desk"),
		StatCard(m.styles, "Breaks Taken", fmt.Sprintf("%d", s.BreaksTaken), lunch),
	}
	b.WriteString(CardGrid(cards, m.width))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Section.Render("Work Timeline"))
	b.WriteString("\n")
	b.WriteString(renderStatLine(m.styles, "First Login:  ", format.OrDefault(s.FirstLogin, "Not started")))
	b.WriteString(renderStatLine(m.styles, "Last Activity:", format.OrDefault(s.LastActivity, "Not started")))
	b.WriteString("\n")

	b.WriteString(m.styles.Section.Render("Productivity Score"))
	b.WriteString("\n")
	b.WriteString(Gauge(m.styles, report.Productivity, m.gaugeWidth()))
	b.WriteString(" ")
	b.WriteString(m.styles.Level(report.Level).Render(fmt.Sprintf("%d%%", report.Productivity)))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Based on active vs idle time ratio. Active time includes keyboard/mouse activity."))
	b.WriteString("\n")

	if !report.HasActivity() {
		b.WriteString("\n")
		b.WriteString(m.styles.Notice.Render("No activity recorded yet today"))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("Start the desktop agent to begin tracking your work time."))
		b.WriteString("\n")
	}

	if m.state.Err() != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Warning.Render("Last refresh failed, showing previous data"))
		b.WriteString("\n")
	}

	return b.String()
}

func (m TodayModel) gaugeWidth() int {
	if m.width > 0 && m.width-10 < gaugeWidth {
		return max(m.width-10, 10)
	}
	return gaugeWidth
}

// SetSize updates the view dimensions
func (m *TodayModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
