package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/wfdash/internal/api"
	"github.com/xolan/wfdash/internal/config"
	"github.com/xolan/wfdash/internal/service"
	"github.com/xolan/wfdash/internal/tui/ui"
)

var errOffline = errors.New("backend offline")

// stubBackend answers the employee endpoint and fails everything else.
type stubBackend struct {
	employee *api.EmployeeInfo
}

func (s *stubBackend) EmployeeInfo(context.Context) (*api.EmployeeInfo, error) {
	if s.employee == nil {
		return nil, errOffline
	}
	return s.employee, nil
}

func (s *stubBackend) TodayStats(context.Context) (*api.TodayResponse, error) {
	return nil, errOffline
}

func (s *stubBackend) Timesheet(context.Context, int) (*api.TimesheetResponse, error) {
	return nil, errOffline
}

func (s *stubBackend) DetailedActivity(context.Context, string) (*api.ActivityResponse, error) {
	return nil, errOffline
}

func (s *stubBackend) ListScreenshots(context.Context, string) (*api.ScreenshotListResponse, error) {
	return nil, errOffline
}

func (s *stubBackend) ScreenshotURL(date, filename string) string {
	return "/api/screenshots/" + date + "/" + filename
}

func (s *stubBackend) Screenshot(context.Context, string, string) ([]byte, error) {
	return nil, errOffline
}

func (s *stubBackend) AnalyticsSummary(context.Context, int) (*api.AnalyticsSummary, error) {
	return nil, errOffline
}

func setupTestServices(t *testing.T) *service.Services {
	t.Helper()
	backend := &stubBackend{employee: &api.EmployeeInfo{
		EmployeeName: "Ada Lovelace",
		EmployeeID:   "1042",
		Designation:  "Engineer",
	}}
	configPath := filepath.Join(t.TempDir(), "config.toml")
	return service.NewServicesWithAPI(backend, configPath, config.DefaultConfig())
}

func sized(t *testing.T, model Model, width, height int) Model {
	t.Helper()
	newModel, _ := model.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return newModel.(Model)
}

func press(t *testing.T, model Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	newModel, cmd := model.Update(msg)
	return newModel.(Model), cmd
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNew(t *testing.T) {
	services := setupTestServices(t)
	model := New(services, TabToday)

	if model.activeTab != TabToday {
		t.Errorf("expected initial tab to be Today, got %v", model.activeTab)
	}
	if model.services == nil {
		t.Error("expected services to be set")
	}
	if model.showHelp {
		t.Error("expected showHelp to be false initially")
	}
	if !model.todayView.Polling() {
		t.Error("today page should poll from the start")
	}
}

func TestNew_StartPage(t *testing.T) {
	model := New(setupTestServices(t), TabScreenshots)
	if model.ActiveTab() != TabScreenshots {
		t.Errorf("ActiveTab() = %v, want Screenshots", model.ActiveTab())
	}
	if model.todayView.Polling() {
		t.Error("today page must not poll when another page is shown")
	}

	model = New(setupTestServices(t), Tab(42))
	if model.ActiveTab() != TabToday {
		t.Errorf("invalid start tab should fall back to Today, got %v", model.ActiveTab())
	}
}

func TestInit(t *testing.T) {
	model := New(setupTestServices(t), TabToday)

	if cmd := model.Init(); cmd == nil {
		t.Error("expected Init to return a command")
	}

	msg := model.loadEmployee()()
	loaded, ok := msg.(employeeLoadedMsg)
	if !ok {
		t.Fatalf("expected employeeLoadedMsg, got %T", msg)
	}
	if loaded.err != nil || loaded.info.EmployeeName != "Ada Lovelace" {
		t.Errorf("unexpected employee result %+v", loaded)
	}
}

func TestUpdate_EmployeeShownInHeaderAndSidebar(t *testing.T) {
	model := sized(t, New(setupTestServices(t), TabToday), 120, 40)

	newModel, _ := model.Update(employeeLoadedMsg{info: &api.EmployeeInfo{
		EmployeeName: "Ada Lovelace",
		EmployeeID:   "1042",
		Designation:  "Engineer",
	}})
	view := newModel.(Model).View()

	for _, want := range []string{"Workforce Dashboard", "Ada Lovelace", "ID 1042", "Engineer"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestUpdate_EmployeeError(t *testing.T) {
	model := sized(t, New(setupTestServices(t), TabToday), 120, 40)
	newModel, _ := model.Update(employeeLoadedMsg{err: errOffline})

	if !strings.Contains(newModel.(Model).View(), "Employee unavailable") {
		t.Error("expected employee placeholder in header")
	}
}

func TestUpdate_WindowSizeMsg(t *testing.T) {
	m := sized(t, New(setupTestServices(t), TabToday), 100, 50)

	if m.width != 100 {
		t.Errorf("expected width 100, got %d", m.width)
	}
	if m.height != 50 {
		t.Errorf("expected height 50, got %d", m.height)
	}
}

func TestUpdate_QuitKey(t *testing.T) {
	model := New(setupTestServices(t), TabToday)

	_, cmd := press(t, model, keyRune('q'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestUpdate_HelpKey(t *testing.T) {
	model := sized(t, New(setupTestServices(t), TabToday), 100, 40)

	m, _ := press(t, model, keyRune('?'))
	if !m.showHelp {
		t.Error("expected showHelp to be true after pressing ?")
	}
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("expected help overlay")
	}

	// other keys are swallowed while help is open
	m, _ = press(t, m, keyRune('2'))
	if m.activeTab != TabToday {
		t.Error("page switched behind the help overlay")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showHelp {
		t.Error("expected esc to close help")
	}
}

func TestUpdate_TabNavigation(t *testing.T) {
	model := New(setupTestServices(t), TabToday)

	m, cmd := press(t, model, tea.KeyMsg{Type: tea.KeyTab})
	if m.activeTab != TabTimesheet {
		t.Errorf("expected Timesheet after pressing tab, got %v", m.activeTab)
	}
	if cmd == nil {
		t.Error("expected the new page to load")
	}
	if m.todayView.Polling() {
		t.Error("leaving Today must stop polling")
	}

	m, _ = press(t, m, keyRune('1'))
	if !m.todayView.Polling() {
		t.Error("returning to Today must resume polling")
	}
}

func TestUpdate_DirectTabKeys(t *testing.T) {
	tests := []struct {
		key      rune
		expected Tab
	}{
		{'1', TabToday},
		{'2', TabTimesheet},
		{'3', TabActivity},
		{'4', TabScreenshots},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			model := New(setupTestServices(t), TabToday)
			m, _ := press(t, model, keyRune(tt.key))
			if m.activeTab != tt.expected {
				t.Errorf("expected tab %v, got %v", tt.expected, m.activeTab)
			}
		})
	}
}

func TestUpdate_SameTabIsNoop(t *testing.T) {
	model := New(setupTestServices(t), TabTimesheet)
	_, cmd := press(t, model, keyRune('2'))
	if cmd != nil {
		t.Error("selecting the active page should not reload it")
	}
}

func TestUpdate_PrevTab_Wraparound(t *testing.T) {
	model := New(setupTestServices(t), TabToday)

	m, _ := press(t, model, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.activeTab != TabScreenshots {
		t.Errorf("expected wrap to Screenshots, got %v", m.activeTab)
	}
}

func TestUpdate_NextTab_Wraparound(t *testing.T) {
	model := New(setupTestServices(t), TabScreenshots)

	m, _ := press(t, model, tea.KeyMsg{Type: tea.KeyTab})
	if m.activeTab != TabToday {
		t.Errorf("expected wrap to Today, got %v", m.activeTab)
	}
}

func TestUpdate_ModalInputBlocksAllKeys(t *testing.T) {
	model := sized(t, New(setupTestServices(t), TabActivity), 100, 40)

	// open the date prompt
	m, _ := press(t, model, keyRune('g'))
	if !m.isModalInputMode() {
		t.Fatal("expected date prompt to be open")
	}

	m, _ = press(t, m, keyRune('2'))
	if m.activeTab != TabActivity {
		t.Errorf("expected to stay on Activity while typing, got %v", m.activeTab)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.activeTab != TabActivity {
		t.Errorf("expected Tab to not switch pages while typing, got %v", m.activeTab)
	}

	m, _ = press(t, m, keyRune('q'))
	if !m.isModalInputMode() {
		t.Error("q must be typed, not quit, while the prompt is open")
	}

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Error("ctrl+c should always quit")
	}
}

func TestUpdate_StatusMsg(t *testing.T) {
	model := sized(t, New(setupTestServices(t), TabScreenshots), 120, 40)

	newModel, _ := model.Update(ui.StatusMsg{Text: "Saved /tmp/shot1.png (48 kB)"})
	m := newModel.(Model)
	if !strings.Contains(m.View(), "Saved /tmp/shot1.png") {
		t.Error("expected status text in status bar")
	}

	m, _ = press(t, m, keyRune('j'))
	if m.status.Text != "" {
		t.Error("status should clear on the next key")
	}
}

func TestUpdate_ThemeChange(t *testing.T) {
	services := setupTestServices(t)
	model := New(services, TabToday)

	newModel, cmd := model.Update(ui.ThemeChangeRequestMsg{ThemeName: "nord"})
	m := newModel.(Model)
	if m.themeProvider.CurrentName() != "nord" {
		t.Errorf("theme = %q, want nord", m.themeProvider.CurrentName())
	}
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	cmd()

	if !services.Config.Exists() {
		t.Error("expected theme to be written to the config file")
	}
	if services.Config.Get().Theme != "nord" {
		t.Errorf("saved theme = %q", services.Config.Get().Theme)
	}
}

func TestUpdate_NextThemeKey(t *testing.T) {
	model := New(setupTestServices(t), TabToday)
	before := model.themeProvider.CurrentName()

	_, cmd := press(t, model, keyRune('T'))
	if cmd == nil {
		t.Fatal("expected a theme change request")
	}
	req, ok := cmd().(ui.ThemeChangeRequestMsg)
	if !ok {
		t.Fatal("expected ThemeChangeRequestMsg")
	}
	if req.ThemeName == before {
		t.Errorf("expected a different theme than %q", before)
	}
}

func TestView_Loading(t *testing.T) {
	model := New(setupTestServices(t), TabToday)
	if model.View() != "Loading..." {
		t.Error("expected placeholder before the first WindowSizeMsg")
	}
}

func TestView_AllTabs(t *testing.T) {
	titles := map[Tab]string{
		TabToday:       "Today's Activity",
		TabTimesheet:   "Timesheet",
		TabActivity:    "Activity Log",
		TabScreenshots: "Screenshots",
	}

	for tab, title := range titles {
		t.Run(tab.String(), func(t *testing.T) {
			m := sized(t, New(setupTestServices(t), tab), 120, 40)
			view := m.View()
			if !strings.Contains(view, title) {
				t.Errorf("View() missing title %q", title)
			}
			if !strings.Contains(view, "Navigation") {
				t.Error("expected sidebar on a wide terminal")
			}
		})
	}
}

func TestView_NarrowHidesSidebar(t *testing.T) {
	m := sized(t, New(setupTestServices(t), TabToday), 60, 30)
	if strings.Contains(m.View(), "Navigation") {
		t.Error("sidebar should be hidden on narrow terminals")
	}
}

func TestRenderStatusBar(t *testing.T) {
	tests := []struct {
		tab  Tab
		want string
	}{
		{TabToday, "refresh"},
		{TabTimesheet, "7/14/30 days"},
		{TabActivity, "go to date"},
		{TabScreenshots, "download"},
	}

	for _, tt := range tests {
		t.Run(tt.tab.String(), func(t *testing.T) {
			m := sized(t, New(setupTestServices(t), tt.tab), 160, 40)
			bar := m.renderStatusBar()
			if !strings.Contains(bar, tt.want) {
				t.Errorf("status bar missing %q: %s", tt.want, bar)
			}
			if !strings.Contains(bar, "quit") {
				t.Error("status bar missing global keys")
			}
		})
	}
}

func TestRenderKeyHelp(t *testing.T) {
	model := New(setupTestServices(t), TabToday)
	result := model.renderKeyHelp("q", "quit")
	if !strings.Contains(result, "q") || !strings.Contains(result, "quit") {
		t.Errorf("unexpected key help %q", result)
	}
}
