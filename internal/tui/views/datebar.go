package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/wfdash/internal/format"
	"github.com/xolan/wfdash/internal/timeutil"
	"github.com/xolan/wfdash/internal/tui/ui"
)

// dateBar is the date selector shared by the activity and screenshot pages.
// The selected date is always a valid YYYY-MM-DD string.
type dateBar struct {
	keys    ui.KeyMap
	date    string
	input   textinput.Model
	editing bool
	err     string
}

func newDateBar(keys ui.KeyMap) dateBar {
	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD or DD/MM/YYYY"
	ti.CharLimit = 10
	ti.Width = 14

	return dateBar{
		keys:  keys,
		date:  timeutil.Today(),
		input: ti,
	}
}

// update handles a key press and reports whether the selected date changed.
func (d dateBar) update(msg tea.KeyMsg) (dateBar, bool, tea.Cmd) {
	if d.editing {
		return d.updateInput(msg)
	}

	prev := d.date
	switch {
	case key.Matches(msg, d.keys.PrevDay):
		d.date = timeutil.ShiftDate(d.date, -1)
	case key.Matches(msg, d.keys.NextDay):
		d.date = timeutil.ShiftDate(d.date, 1)
	case key.Matches(msg, d.keys.Today):
		d.date = timeutil.Today()
	case key.Matches(msg, d.keys.GoToDate):
		d.editing = true
		d.err = ""
		d.input.SetValue(d.date)
		d.input.CursorEnd()
		return d, false, d.input.Focus()
	default:
		return d, false, nil
	}
	return d, d.date != prev, nil
}

func (d dateBar) updateInput(msg tea.KeyMsg) (dateBar, bool, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		d.editing = false
		d.err = ""
		d.input.Blur()
		return d, false, nil
	case tea.KeyEnter:
		date, err := timeutil.NormalizeDate(d.input.Value())
		if err != nil {
			d.err = err.Error()
			return d, false, nil
		}
		prev := d.date
		d.date = date
		d.editing = false
		d.err = ""
		d.input.Blur()
		return d, d.date != prev, nil
	}

	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, false, cmd
}

func (d dateBar) view(styles ui.Styles) string {
	var b strings.Builder
	b.WriteString(styles.Muted.Render("◀ [ "))
	b.WriteString(styles.StatValue.Render(format.DateLong(d.date)))
	b.WriteString(styles.Muted.Render(" ] ▶"))

	if d.editing {
		b.WriteString("\n")
		b.WriteString(styles.InputFocused.Render(d.input.View()))
		if d.err != "" {
			b.WriteString("\n")
			b.WriteString(styles.Error.Render(d.err))
		}
	}
	return b.String()
}
