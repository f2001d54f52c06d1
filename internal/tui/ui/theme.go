package ui

import (
	"sort"

	tint "github.com/lrstanley/bubbletint"
)

// DefaultTheme is the default theme used when no theme is configured
const DefaultTheme = "dracula"

// ThemeProvider wraps a bubbletint registry holding every bundled theme.
type ThemeProvider struct {
	registry *tint.Registry
}

// NewThemeProvider creates a ThemeProvider positioned on theme. An empty or
// unknown id leaves DefaultTheme selected.
func NewThemeProvider(theme string) *ThemeProvider {
	all := tint.DefaultTints()

	var fallback tint.Tint
	for _, t := range all {
		if t.ID() == DefaultTheme {
			fallback = t
			break
		}
	}
	if fallback == nil && len(all) > 0 {
		fallback = all[0]
	}

	tp := &ThemeProvider{registry: tint.NewRegistry(fallback, all...)}
	if theme != "" {
		tp.registry.SetTintID(theme)
	}
	return tp
}

// SetTheme selects a theme by id and reports whether it exists.
func (tp *ThemeProvider) SetTheme(id string) bool {
	return tp.registry.SetTintID(id)
}

// Next selects the following theme and returns its id.
func (tp *ThemeProvider) Next() string {
	tp.registry.NextTint()
	return tp.registry.ID()
}

// CurrentName returns the id of the selected theme.
func (tp *ThemeProvider) CurrentName() string {
	return tp.registry.ID()
}

// CurrentDisplayName returns the human name of the selected theme.
func (tp *ThemeProvider) CurrentDisplayName() string {
	return tp.registry.DisplayName()
}

// AvailableThemes returns all theme ids, sorted.
func (tp *ThemeProvider) AvailableThemes() []string {
	ids := tp.registry.TintIDs()
	sort.Strings(ids)
	return ids
}

// Styles returns a Styles struct configured for the current theme.
func (tp *ThemeProvider) Styles() Styles {
	return NewStylesFromRegistry(tp.registry)
}
