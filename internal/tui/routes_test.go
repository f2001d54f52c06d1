package tui

import (
	"strings"
	"testing"
)

func TestTabForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Tab
		wantErr bool
	}{
		{"/", TabToday, false},
		{"/timesheet", TabTimesheet, false},
		{"/activity", TabActivity, false},
		{"/screenshots", TabScreenshots, false},
		{"", 0, true},
		{"/settings", 0, true},
		{"timesheet", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := TabForPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("TabForPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil {
				if !strings.Contains(err.Error(), "/timesheet") {
					t.Errorf("error should list valid pages: %v", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("TabForPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestTab_PathRoundTrip(t *testing.T) {
	if len(Paths()) != 4 {
		t.Fatalf("expected 4 routes, got %d", len(Paths()))
	}
	for _, tab := range []Tab{TabToday, TabTimesheet, TabActivity, TabScreenshots} {
		got, err := TabForPath(tab.Path())
		if err != nil || got != tab {
			t.Errorf("TabForPath(%q) = %v, %v; want %v", tab.Path(), got, err, tab)
		}
	}
	if Tab(9).Path() != "" || Tab(9).String() != "Tab(9)" {
		t.Error("out of range tab should have no route")
	}
}
