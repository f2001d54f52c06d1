package ui

// ThemeChangeRequestMsg is sent when a theme change is requested.
type ThemeChangeRequestMsg struct {
	ThemeName string
}

// ThemeChangedMsg is broadcast to all views when the theme changes.
type ThemeChangedMsg struct {
	ThemeName string
	Styles    Styles
}

// StatusMsg shows a transient message in the status bar, e.g. after a
// screenshot download.
type StatusMsg struct {
	Text  string
	Error bool
}
