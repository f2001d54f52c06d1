package ui

import (
	"sort"
	"testing"
)

func TestNewThemeProvider(t *testing.T) {
	tests := []struct {
		name  string
		theme string
		want  string
	}{
		{"empty uses default", "", DefaultTheme},
		{"known theme", "nord", "nord"},
		{"unknown falls back", "nonexistent-theme-xyz", DefaultTheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp := NewThemeProvider(tt.theme)
			if tp.CurrentName() != tt.want {
				t.Errorf("CurrentName() = %q, expected %q", tp.CurrentName(), tt.want)
			}
		})
	}
}

func TestThemeProvider_SetTheme(t *testing.T) {
	tp := NewThemeProvider("")

	if !tp.SetTheme("nord") {
		t.Error("expected SetTheme to return true for valid theme")
	}
	if tp.CurrentName() != "nord" {
		t.Errorf("expected theme 'nord', got %q", tp.CurrentName())
	}

	if tp.SetTheme("nonexistent-theme-xyz") {
		t.Error("expected SetTheme to return false for invalid theme")
	}
	if tp.CurrentName() != "nord" {
		t.Errorf("invalid theme changed selection to %q", tp.CurrentName())
	}
}

func TestThemeProvider_Next(t *testing.T) {
	tp := NewThemeProvider("dracula")

	next := tp.Next()
	if next == "dracula" {
		t.Error("Next() did not move off the current theme")
	}
	if tp.CurrentName() != next {
		t.Errorf("CurrentName() = %q, expected %q", tp.CurrentName(), next)
	}
	if tp.CurrentDisplayName() == "" {
		t.Error("CurrentDisplayName() is empty")
	}
}

func TestThemeProvider_AvailableThemes(t *testing.T) {
	themes := NewThemeProvider("").AvailableThemes()

	if len(themes) < 2 {
		t.Fatalf("expected several themes, got %d", len(themes))
	}
	if !sort.StringsAreSorted(themes) {
		t.Error("AvailableThemes() is not sorted")
	}

	found := false
	for _, id := range themes {
		if id == DefaultTheme {
			found = true
		}
	}
	if !found {
		t.Errorf("default theme %q not available", DefaultTheme)
	}
}
