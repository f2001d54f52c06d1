// Package tui provides the Terminal User Interface for the wfdash application.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/wfdash/internal/api"
	"github.com/xolan/wfdash/internal/logger"
	"github.com/xolan/wfdash/internal/service"
	"github.com/xolan/wfdash/internal/tui/ui"
	"github.com/xolan/wfdash/internal/tui/views"
)

const (
	appTitle = "Workforce Dashboard"

	// below this width the sidebar is hidden
	sidebarMinWidth = 90
)

// Model is the root TUI model
type Model struct {
	// Services
	services *service.Services

	// UI state
	activeTab Tab
	width     int
	height    int
	showHelp  bool
	status    ui.StatusMsg
	startCmd  tea.Cmd

	// Employee identity, fetched once
	employee    *api.EmployeeInfo
	employeeErr error

	// View models
	todayView       views.TodayModel
	timesheetView   views.TimesheetModel
	activityView    views.ActivityModel
	screenshotsView views.ScreenshotsModel

	// Theme and styles
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// employeeLoadedMsg is sent when the employee info is loaded
type employeeLoadedMsg struct {
	info *api.EmployeeInfo
	err  error
}

// New creates a new TUI model opened on start
func New(services *service.Services, start Tab) Model {
	cfg := services.Config.Get()
	themeProvider := ui.NewThemeProvider(cfg.Theme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	if start.Path() == "" {
		start = TabToday
	}

	m := Model{
		services:        services,
		activeTab:       start,
		themeProvider:   themeProvider,
		styles:          styles,
		keys:            keys,
		todayView:       views.NewTodayModel(services, styles, keys, cfg.Interval()),
		timesheetView:   views.NewTimesheetModel(services, styles, keys, cfg.TimesheetDays),
		activityView:    views.NewActivityModel(services, styles, keys),
		screenshotsView: views.NewScreenshotsModel(services, styles, keys),
	}

	// Init cannot keep model changes, so the first page is activated here
	// and its commands are handed to Init.
	var startCmd tea.Cmd
	m, startCmd = m.activate(start)
	m.startCmd = startCmd
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadEmployee(), m.startCmd)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.status = ui.StatusMsg{}

		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		// Modal input (date prompt, image modal) owns every other key.
		if m.isModalInputMode() {
			break
		}

		if m.showHelp {
			if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Back) {
				m.showHelp = false
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			return m.switchTo(Tab((int(m.activeTab) + 1) % len(routes)))

		case key.Matches(msg, m.keys.PrevTab):
			return m.switchTo(Tab((int(m.activeTab) - 1 + len(routes)) % len(routes)))

		case key.Matches(msg, m.keys.Tab1):
			return m.switchTo(TabToday)

		case key.Matches(msg, m.keys.Tab2):
			return m.switchTo(TabTimesheet)

		case key.Matches(msg, m.keys.Tab3):
			return m.switchTo(TabActivity)

		case key.Matches(msg, m.keys.Tab4):
			return m.switchTo(TabScreenshots)

		case key.Matches(msg, m.keys.NextTheme):
			next := m.themeProvider.Next()
			return m, func() tea.Msg { return ui.ThemeChangeRequestMsg{ThemeName: next} }
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViews()
		return m, nil

	case employeeLoadedMsg:
		m.employee = msg.info
		m.employeeErr = msg.err
		if msg.err != nil {
			logger.Warn("employee info unavailable", "error", msg.err)
		}
		return m, nil

	case ui.StatusMsg:
		m.status = msg
		return m, nil

	case ui.ThemeChangeRequestMsg:
		m.themeProvider.SetTheme(msg.ThemeName)
		newTheme := m.themeProvider.CurrentName()

		m.styles = m.themeProvider.Styles()

		// Broadcast theme change to all views
		themeMsg := ui.ThemeChangedMsg{
			ThemeName: newTheme,
			Styles:    m.styles,
		}
		m.todayView, _ = m.todayView.Update(themeMsg)
		m.timesheetView, _ = m.timesheetView.Update(themeMsg)
		m.activityView, _ = m.activityView.Update(themeMsg)
		m.screenshotsView, _ = m.screenshotsView.Update(themeMsg)

		m.status = ui.StatusMsg{Text: "Theme: " + m.themeProvider.CurrentDisplayName()}
		return m, m.saveThemeConfig(newTheme)
	}

	// Update the active view
	switch m.activeTab {
	case TabToday:
		m.todayView, cmd = m.todayView.Update(msg)
	case TabTimesheet:
		m.timesheetView, cmd = m.timesheetView.Update(msg)
	case TabActivity:
		m.activityView, cmd = m.activityView.Update(msg)
	case TabScreenshots:
		m.screenshotsView, cmd = m.screenshotsView.Update(msg)
	}

	return m, cmd
}

// switchTo tears down the current page and activates tab.
func (m Model) switchTo(tab Tab) (Model, tea.Cmd) {
	if tab == m.activeTab {
		return m, nil
	}
	m = m.deactivate(m.activeTab)
	m.activeTab = tab
	return m.activate(tab)
}

func (m Model) activate(tab Tab) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch tab {
	case TabToday:
		m.todayView, cmd = m.todayView.Activate()
	case TabTimesheet:
		m.timesheetView, cmd = m.timesheetView.Activate()
	case TabActivity:
		m.activityView, cmd = m.activityView.Activate()
	case TabScreenshots:
		m.screenshotsView, cmd = m.screenshotsView.Activate()
	}
	return m, cmd
}

func (m Model) deactivate(tab Tab) Model {
	switch tab {
	case TabToday:
		m.todayView = m.todayView.Deactivate()
	case TabTimesheet:
		m.timesheetView = m.timesheetView.Deactivate()
	case TabActivity:
		m.activityView = m.activityView.Deactivate()
	case TabScreenshots:
		m.screenshotsView = m.screenshotsView.Deactivate()
	}
	return m
}

// loadEmployee fetches the employee identity shown in the header and sidebar.
func (m Model) loadEmployee() tea.Cmd {
	svc := m.services.Employee
	return func() tea.Msg {
		info, err := svc.Info(context.Background())
		return employeeLoadedMsg{info: info, err: err}
	}
}

// saveThemeConfig saves the theme to the config file
func (m Model) saveThemeConfig(themeName string) tea.Cmd {
	return func() tea.Msg {
		if err := m.services.Config.SetTheme(themeName); err != nil {
			logger.Error("failed to save theme", "theme", themeName, "error", err)
		}
		return nil
	}
}

func (m *Model) resizeViews() {
	frameW, frameH := m.styles.App.GetFrameSize()
	contentWidth := m.width - frameW
	if m.showSidebar() {
		contentWidth -= m.sidebarWidth()
	}
	// header, blank line and status bar
	contentHeight := m.height - frameH - 3

	m.todayView.SetSize(contentWidth, contentHeight)
	m.timesheetView.SetSize(contentWidth, contentHeight)
	m.activityView.SetSize(contentWidth, contentHeight)
	m.screenshotsView.SetSize(contentWidth, contentHeight)
}

func (m Model) showSidebar() bool {
	return m.width >= sidebarMinWidth
}

func (m Model) sidebarWidth() int {
	return lipgloss.Width(m.styles.Sidebar.Render(""))
}

// isModalInputMode checks if the current view is capturing all keys
// (date prompt or screenshot modal)
func (m Model) isModalInputMode() bool {
	switch m.activeTab {
	case TabActivity:
		return m.activityView.IsInputMode()
	case TabScreenshots:
		return m.screenshotsView.IsInputMode()
	}
	return false
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	var content string
	switch m.activeTab {
	case TabToday:
		content = m.todayView.View()
	case TabTimesheet:
		content = m.timesheetView.View()
	case TabActivity:
		content = m.activityView.View()
	case TabScreenshots:
		content = m.screenshotsView.View()
	}
	content = m.styles.Content.Render(content)

	body := content
	if m.showSidebar() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), content)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	return m.styles.App.Render(b.String())
}

// renderHeader renders the title with the employee name and id
func (m Model) renderHeader() string {
	title := m.styles.Header.Render(appTitle)

	var who string
	switch {
	case m.employee != nil:
		who = fmt.Sprintf("%s · ID %s", m.employee.EmployeeName, m.employee.EmployeeID)
	case m.employeeErr != nil:
		who = "Employee unavailable"
	}
	who = m.styles.Employee.Render(who)

	frameW, _ := m.styles.App.GetFrameSize()
	gap := m.width - frameW - lipgloss.Width(title) - lipgloss.Width(who)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + who
}

// renderSidebar renders navigation and the employee card
func (m Model) renderSidebar() string {
	var b strings.Builder
	b.WriteString(m.styles.SidebarTitle.Render("Navigation"))
	b.WriteString("\n")

	for i, r := range routes {
		label := fmt.Sprintf("%d %s", i+1, r.name)
		if Tab(i) == m.activeTab {
			b.WriteString(m.styles.NavActive.Render("▸ " + label))
		} else {
			b.WriteString(m.styles.NavInactive.Render("  " + label))
		}
		b.WriteString("\n")
	}

	if m.employee != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.SidebarTitle.Render("Employee"))
		b.WriteString("\n")
		b.WriteString(m.styles.StatValue.Render(m.employee.EmployeeName))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render(m.employee.Designation))
	}

	return m.styles.Sidebar.Render(b.String())
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	if m.status.Text != "" {
		style := m.styles.Success
		if m.status.Error {
			style = m.styles.Error
		}
		parts = append(parts, style.Render(m.status.Text))
	}

	if m.isModalInputMode() {
		if m.activeTab == TabScreenshots && !m.screenshotsDatePrompt() {
			parts = append(parts, m.renderKeyHelp("d", "download"))
			parts = append(parts, m.renderKeyHelp("Esc", "close"))
		} else {
			parts = append(parts, m.renderKeyHelp("Enter", "go"))
			parts = append(parts, m.renderKeyHelp("Esc", "cancel"))
		}
	} else {
		// View-specific keys
		switch m.activeTab {
		case TabToday:
			parts = append(parts, m.renderKeyHelp("r", "refresh"))
		case TabTimesheet:
			parts = append(parts, m.renderKeyHelp("w/f/m", "7/14/30 days"))
			parts = append(parts, m.renderKeyHelp("r", "refresh"))
		case TabActivity:
			parts = append(parts, m.renderKeyHelp("[/]", "day"))
			parts = append(parts, m.renderKeyHelp("t", "today"))
			parts = append(parts, m.renderKeyHelp("g", "go to date"))
		case TabScreenshots:
			parts = append(parts, m.renderKeyHelp("[/]", "day"))
			parts = append(parts, m.renderKeyHelp("Enter", "open"))
			parts = append(parts, m.renderKeyHelp("d", "download"))
		}

		// Global keys
		parts = append(parts, m.renderKeyHelp("1-4", "pages"))
		parts = append(parts, m.renderKeyHelp("T", "theme"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")

	// Fill to width
	frameW, _ := m.styles.App.GetFrameSize()
	padding := m.width - frameW - lipgloss.Width(content)
	if padding > 0 {
		content += strings.Repeat(" ", padding)
	}

	return m.styles.StatusBar.Render(content)
}

func (m Model) screenshotsDatePrompt() bool {
	return m.screenshotsView.IsInputMode() && !m.screenshotsView.ModalOpen()
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// renderHelpOverlay renders the keyboard shortcut dialog
func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.DialogTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n\n")

	help.WriteString(m.styles.StatLabel.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  Tab/1-4    Switch pages\n")
	help.WriteString("  T          Next theme\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Quit\n")
	help.WriteString("\n")

	switch m.activeTab {
	case TabToday:
		help.WriteString(m.styles.StatLabel.Render("Today:"))
		help.WriteString("\n")
		help.WriteString(fmt.Sprintf("  r          Refresh (auto every %s)\n", m.services.Config.Get().Interval()))
	case TabTimesheet:
		help.WriteString(m.styles.StatLabel.Render("Timesheet:"))
		help.WriteString("\n")
		help.WriteString("  w/f/m      Last 7/14/30 days\n")
		help.WriteString("  j/k        Scroll rows\n")
		help.WriteString("  r          Refresh\n")
	case TabActivity:
		help.WriteString(m.styles.StatLabel.Render("Activity:"))
		help.WriteString("\n")
		help.WriteString("  [ / ]      Previous/next day\n")
		help.WriteString("  t          Today\n")
		help.WriteString("  g          Go to date\n")
		help.WriteString("  j/k        Scroll rows\n")
		help.WriteString("  r          Refresh\n")
	case TabScreenshots:
		help.WriteString(m.styles.StatLabel.Render("Screenshots:"))
		help.WriteString("\n")
		help.WriteString("  [ / ]      Previous/next day\n")
		help.WriteString("  t          Today\n")
		help.WriteString("  g          Go to date\n")
		help.WriteString("  h/j/k/l    Select\n")
		help.WriteString("  Enter      Open\n")
		help.WriteString("  d          Download\n")
		help.WriteString("  Esc        Close\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.Muted.Render("Press ? to close"))

	return m.styles.App.Render(m.styles.Dialog.Render(help.String()))
}

// ActiveTab returns the page currently shown
func (m Model) ActiveTab() Tab {
	return m.activeTab
}

// Run starts the TUI application on the start page
func Run(services *service.Services, start Tab) error {
	model := New(services, start)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
