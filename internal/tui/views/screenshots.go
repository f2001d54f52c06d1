package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/wfdash/internal/api"
	"github.com/xolan/wfdash/internal/format"
	"github.com/xolan/wfdash/internal/loadstate"
	"github.com/xolan/wfdash/internal/logger"
	"github.com/xolan/wfdash/internal/service"
	"github.com/xolan/wfdash/internal/tui/ui"
)

const screenshotCellWidth = 28

// ScreenshotsModel is the model for the screenshots view
type ScreenshotsModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width   int
	height  int
	dates   dateBar
	state   loadstate.State[*service.ScreenshotList]
	spinner spinner.Model
	cursor  int
	cancel  context.CancelFunc

	// Modal state
	selected    *api.Screenshot
	image       loadstate.State[*service.ScreenshotImage]
	imageCancel context.CancelFunc
}

// NewScreenshotsModel creates a new screenshots view model for today's date
func NewScreenshotsModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) ScreenshotsModel {
	return ScreenshotsModel{
		services: services,
		styles:   styles,
		keys:     keys,
		dates:    newDateBar(keys),
		state:    loadstate.New[*service.ScreenshotList](loadstate.ClearOnError),
		image:    loadstate.New[*service.ScreenshotImage](loadstate.ClearOnError),
		spinner:  newSpinner(),
	}
}

// screenshotsLoadedMsg is sent when the screenshot list is loaded
type screenshotsLoadedMsg struct {
	seq  uint64
	list *service.ScreenshotList
	err  error
}

// screenshotImageMsg is sent when the modal image is fetched
type screenshotImageMsg struct {
	seq   uint64
	image *service.ScreenshotImage
	err   error
}

// Init implements tea.Model
func (m ScreenshotsModel) Init() tea.Cmd {
	return nil
}

// Activate loads the selected date.
func (m ScreenshotsModel) Activate() (ScreenshotsModel, tea.Cmd) {
	return m.load()
}

// Deactivate drops in-flight requests and closes the modal.
func (m ScreenshotsModel) Deactivate() ScreenshotsModel {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.state = m.state.Invalidate()
	return m.closeModal()
}

// Date returns the selected date as YYYY-MM-DD.
func (m ScreenshotsModel) Date() string {
	return m.dates.date
}

// IsInputMode returns true when the view captures keys: the date prompt
// or the image modal is open
func (m ScreenshotsModel) IsInputMode() bool {
	return m.dates.editing || m.selected != nil
}

// ModalOpen returns true while a screenshot is shown full size
func (m ScreenshotsModel) ModalOpen() bool {
	return m.selected != nil
}

// Update implements tea.Model
func (m ScreenshotsModel) Update(msg tea.Msg) (ScreenshotsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.selected != nil {
			return m.handleModalKeys(msg)
		}
		if !m.dates.editing {
			if next, cmd, ok := m.handleGridKeys(msg); ok {
				return next, cmd
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

	case screenshotsLoadedMsg:
		if msg.err != nil && msg.seq == m.state.Seq() {
			logger.Warn("screenshot list failed", "date", m.dates.date, "error", msg.err)
		}
		m.state = m.state.Resolve(msg.seq, msg.list, msg.err)
		if m.cursor >= len(m.items()) {
			m.cursor = max(len(m.items())-1, 0)
		}
		return m, nil

	case screenshotImageMsg:
		if msg.err != nil && msg.seq == m.image.Seq() {
			logger.Warn("screenshot preview failed", "error", msg.err)
		}
		m.image = m.image.Resolve(msg.seq, msg.image, msg.err)
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading() && !m.image.Loading() {
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

// handleGridKeys handles selection keys; ok is false for keys it does not own.
func (m ScreenshotsModel) handleGridKeys(msg tea.KeyMsg) (ScreenshotsModel, tea.Cmd, bool) {
	items := m.items()
	cols := m.columns()

	switch {
	case key.Matches(msg, m.keys.Refresh):
		next, cmd := m.load()
		return next, cmd, true
	case key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor+cols < len(items) {
			m.cursor += cols
		}
	case key.Matches(msg, m.keys.Select):
		if len(items) == 0 {
			return m, nil, true
		}
		next, cmd := m.openModal(items[m.cursor])
		return next, cmd, true
	case key.Matches(msg, m.keys.Download):
		if len(items) == 0 {
			return m, nil, true
		}
		return m, m.download(items[m.cursor]), true
	default:
		return m, nil, false
	}
	return m, nil, true
}

func (m ScreenshotsModel) handleModalKeys(msg tea.KeyMsg) (ScreenshotsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), msg.String() == "q":
		return m.closeModal(), nil
	case key.Matches(msg, m.keys.Download):
		return m, m.download(*m.selected)
	}
	return m, nil
}

func (m ScreenshotsModel) openModal(shot api.Screenshot) (ScreenshotsModel, tea.Cmd) {
	m.selected = &shot

	ctx, cancel := context.WithCancel(context.Background())
	m.imageCancel = cancel

	var seq uint64
	m.image, seq = m.image.Begin()

	svc, date := m.services.Screenshots, m.dates.date
	fetch := func() tea.Msg {
		img, err := svc.Fetch(ctx, date, shot.Filename)
		return screenshotImageMsg{seq: seq, image: img, err: err}
	}
	return m, tea.Batch(fetch, m.spinner.Tick)
}

func (m ScreenshotsModel) closeModal() ScreenshotsModel {
	if m.imageCancel != nil {
		m.imageCancel()
		m.imageCancel = nil
	}
	m.selected = nil
	m.image = m.image.Invalidate()
	return m
}

// download saves the screenshot and reports the outcome on the status bar.
func (m ScreenshotsModel) download(shot api.Screenshot) tea.Cmd {
	svc, date := m.services.Screenshots, m.dates.date
	return func() tea.Msg {
		path, n, err := svc.Download(context.Background(), date, shot.Filename, "")
		if err != nil {
			logger.Error("screenshot download failed", "file", shot.Filename, "error", err)
			return ui.StatusMsg{Text: "Download failed: " + err.Error(), Error: true}
		}
		logger.Info("screenshot downloaded", "path", path, "bytes", n)
		return ui.StatusMsg{Text: fmt.Sprintf("Saved %s (%s)", path, service.HumanBytes(n))}
	}
}

func (m ScreenshotsModel) load() (ScreenshotsModel, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	var seq uint64
	m.state, seq = m.state.Begin()

	svc, date := m.services.Screenshots, m.dates.date
	fetch := func() tea.Msg {
		list, err := svc.List(ctx, date)
		return screenshotsLoadedMsg{seq: seq, list: list, err: err}
	}
	return m, tea.Batch(fetch, m.spinner.Tick)
}

func (m ScreenshotsModel) items() []api.Screenshot {
	if list, ok := m.state.Data(); ok && list != nil {
		return list.Items
	}
	return nil
}

func (m ScreenshotsModel) total() int {
	if list, ok := m.state.Data(); ok && list != nil {
		return list.Total()
	}
	return 0
}

func (m ScreenshotsModel) columns() int {
	if m.width < screenshotCellWidth {
		return 1
	}
	return max(m.width/screenshotCellWidth, 1)
}

// View implements tea.Model
func (m ScreenshotsModel) View() string {
	if m.selected != nil {
		return m.renderModal()
	}

	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Screenshots"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("Activity screenshots captured by the agent"))
	b.WriteString("\n\n")
	b.WriteString(m.dates.view(m.styles))
	b.WriteString("\n\n")

	if m.state.Loading() {
		b.WriteString(loadingView(m.spinner, "Loading screenshots..."))
		return b.String()
	}

	items := m.items()
	b.WriteString(m.styles.Section.Render(format.DateLong(m.dates.date)))
	b.WriteString("  ")
	total := m.total()
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d %s", total, format.Plural("screenshot", total))))
	b.WriteString("\n")

	if len(items) == 0 {
		b.WriteString(m.styles.Notice.Render("No screenshots available for this date"))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("Screenshots are captured periodically by the desktop agent"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderGrid(items))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Privacy Note: Screenshots are captured locally by the desktop agent and stored on your device. " +
		"They are only accessible through this dashboard when connected to your local machine."))
	return b.String()
}

func (m ScreenshotsModel) renderGrid(items []api.Screenshot) string {
	cols := m.columns()
	inner := screenshotCellWidth - 4

	var rows []string
	var row []string
	for i, shot := range items {
		body := truncate(shot.Filename, inner) + "\n" + m.styles.Muted.Render(truncate(shot.Timestamp, inner))
		style := m.styles.Card.Width(inner)
		if i == m.cursor {
			style = style.BorderForeground(m.styles.NavActive.GetForeground())
		}
		row = append(row, style.Render(body))
		if len(row) == cols {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m ScreenshotsModel) renderModal() string {
	shot := *m.selected

	var b strings.Builder
	b.WriteString(m.styles.DialogTitle.Render(shot.Filename))
	b.WriteString("\n\n")
	b.WriteString(renderStatLine(m.styles, "Timestamp:", shot.Timestamp))
	b.WriteString(renderStatLine(m.styles, "URL:      ", m.services.Screenshots.URL(m.dates.date, shot.Filename)))
	b.WriteString("\n")

	img, ok := m.image.Data()
	switch {
	case m.image.Loading():
		b.WriteString(loadingView(m.spinner, "Loading image..."))
	case ok && img != nil:
		b.WriteString(renderStatLine(m.styles, "Format:   ", strings.ToUpper(img.Format)))
		b.WriteString(renderStatLine(m.styles, "Size:     ", fmt.Sprintf("%d x %d", img.Width, img.Height)))
		b.WriteString(renderStatLine(m.styles, "File size:", img.Size()))
	case m.image.Err() != nil:
		b.WriteString(m.styles.Error.Render("[ Image Error ]"))
		if errors.Is(m.image.Err(), service.ErrInvalidImage) {
			b.WriteString("\n")
			b.WriteString(m.styles.Muted.Render("The server returned data that is not an image"))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render("d download • esc close"))

	// the dialog sizes to its widest line so the URL is never wrapped
	dialog := m.styles.Dialog
	if m.width > 0 {
		dialog = dialog.MaxWidth(m.width)
	}
	return dialog.Render(b.String())
}

// SetSize updates the view dimensions
func (m *ScreenshotsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
