package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"

	"github.com/xolan/wfdash/internal/format"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	// Base styles
	App lipgloss.Style

	// Sidebar and header
	Sidebar      lipgloss.Style
	SidebarTitle lipgloss.Style
	NavActive    lipgloss.Style
	NavInactive  lipgloss.Style
	Header       lipgloss.Style
	Employee     lipgloss.Style

	// Content area
	Content   lipgloss.Style
	ViewTitle lipgloss.Style
	Subtitle  lipgloss.Style
	Section   lipgloss.Style

	// Status bar
	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style
	StatusHelp  lipgloss.Style

	// Stat cards
	Card      lipgloss.Style
	CardTitle lipgloss.Style
	CardValue lipgloss.Style
	CardSub   lipgloss.Style

	// Gauge and chart
	GaugeTrack lipgloss.Style
	BarHours   lipgloss.Style
	BarActive  lipgloss.Style

	// Tables
	TableHeader  lipgloss.Style
	RowSelected  lipgloss.Style
	RowNormal    lipgloss.Style
	SessionBadge lipgloss.Style
	Idle         lipgloss.Style
	Muted        lipgloss.Style

	// Stats
	StatLabel lipgloss.Style
	StatValue lipgloss.Style

	// Help
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Input
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Dialog
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	// Notices
	Banner  lipgloss.Style
	Notice  lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// palette is the set of semantic colors the styles are built from
type palette struct {
	primary, secondary, accent, muted lipgloss.TerminalColor
	success, warning, errorColor      lipgloss.TerminalColor
	fg, bg, selection                 lipgloss.TerminalColor
}

// DefaultStyles returns the default TUI styles
func DefaultStyles() Styles {
	return newStyles(palette{
		primary:    lipgloss.Color("99"),  // Purple
		secondary:  lipgloss.Color("39"),  // Cyan
		accent:     lipgloss.Color("212"), // Pink
		muted:      lipgloss.Color("240"), // Gray
		success:    lipgloss.Color("82"),  // Green
		warning:    lipgloss.Color("214"), // Orange
		errorColor: lipgloss.Color("196"), // Red
		fg:         lipgloss.Color("252"),
		bg:         lipgloss.Color("236"),
		selection:  lipgloss.Color("237"),
	})
}

// NewStylesFromRegistry creates a Styles struct using colors from a bubbletint registry.
// Purple drives titles and navigation, cyan keys and active time, bright
// purple the hours bars, bright black muted text. Status levels use
// green, yellow and red.
func NewStylesFromRegistry(r *tint.Registry) Styles {
	return newStyles(palette{
		primary:    r.Purple(),
		secondary:  r.Cyan(),
		accent:     r.BrightPurple(),
		muted:      r.BrightBlack(),
		success:    r.Green(),
		warning:    r.Yellow(),
		errorColor: r.Red(),
		fg:         r.Fg(),
		bg:         r.Bg(),
		selection:  r.BrightBlack(),
	})
}

func newStyles(p palette) Styles {
	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		Sidebar: lipgloss.NewStyle().
			Width(24).
			PaddingRight(2).
			MarginRight(2).
			BorderRight(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.muted),
		SidebarTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),
		NavActive: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),
		NavInactive: lipgloss.NewStyle().
			Foreground(p.muted),
		Header: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.muted),
		Employee: lipgloss.NewStyle().
			Foreground(p.fg).
			Bold(true),

		Content: lipgloss.NewStyle().
			Padding(0, 1),
		ViewTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.muted).
			MarginBottom(1),
		Section: lipgloss.NewStyle().
			Foreground(p.fg).
			Bold(true).
			MarginTop(1),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.fg).
			Background(p.bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		StatusValue: lipgloss.NewStyle().
			Foreground(p.fg),
		StatusHelp: lipgloss.NewStyle().
			Foreground(p.muted),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.muted).
			Padding(0, 1).
			MarginRight(1),
		CardTitle: lipgloss.NewStyle().
			Foreground(p.muted),
		CardValue: lipgloss.NewStyle().
			Foreground(p.fg).
			Bold(true),
		CardSub: lipgloss.NewStyle().
			Foreground(p.secondary),

		GaugeTrack: lipgloss.NewStyle().
			Foreground(p.muted),
		BarHours: lipgloss.NewStyle().
			Foreground(p.accent),
		BarActive: lipgloss.NewStyle().
			Foreground(p.secondary),

		TableHeader: lipgloss.NewStyle().
			Foreground(p.muted).
			Bold(true),
		RowSelected: lipgloss.NewStyle().
			Background(p.selection).
			Bold(true),
		RowNormal: lipgloss.NewStyle(),
		SessionBadge: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),
		Idle: lipgloss.NewStyle().
			Foreground(p.warning),
		Muted: lipgloss.NewStyle().
			Foreground(p.muted),

		StatLabel: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(20),
		StatValue: lipgloss.NewStyle().
			Foreground(p.fg).
			Bold(true),

		HelpKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(p.muted),

		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.muted).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.primary).
			Padding(0, 1),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2),
		DialogTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		Banner: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.errorColor).
			Foreground(p.errorColor).
			Padding(0, 2),
		Notice: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.secondary).
			Padding(0, 2).
			MarginTop(1),
		Error: lipgloss.NewStyle().
			Foreground(p.errorColor),
		Warning: lipgloss.NewStyle().
			Foreground(p.warning),
		Success: lipgloss.NewStyle().
			Foreground(p.success),
	}
}

// Level returns the style for a productivity level: green, yellow or red.
func (s Styles) Level(l format.Level) lipgloss.Style {
	switch l {
	case format.LevelGood:
		return s.Success
	case format.LevelFair:
		return s.Warning
	default:
		return s.Error
	}
}
