package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap contains all key bindings for the TUI
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Page navigation
	NextTab key.Binding
	PrevTab key.Binding
	Tab1    key.Binding
	Tab2    key.Binding
	Tab3    key.Binding
	Tab4    key.Binding

	// Actions
	Select    key.Binding
	Back      key.Binding
	Quit      key.Binding
	Help      key.Binding
	Refresh   key.Binding
	NextTheme key.Binding

	// Date selection (activity, screenshots)
	PrevDay  key.Binding
	NextDay  key.Binding
	Today    key.Binding
	GoToDate key.Binding

	// Timesheet periods
	Week      key.Binding
	Fortnight key.Binding
	Month     key.Binding

	// Screenshots
	Download key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation (vim + arrows)
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),

		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next page"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev page"),
		),
		Tab1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "today"),
		),
		Tab2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "timesheet"),
		),
		Tab3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "activity"),
		),
		Tab4: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "screenshots"),
		),

		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		NextTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "next theme"),
		),

		PrevDay: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next day"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		GoToDate: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "go to date"),
		),

		Week: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "7 days"),
		),
		Fortnight: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "14 days"),
		),
		Month: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "30 days"),
		),

		Download: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "download"),
		),
	}
}
