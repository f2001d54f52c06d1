package timeutil

import (
	"strings"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{"iso", "2024-01-15", time.Date(2024, time.January, 15, 0, 0, 0, 0, time.Local)},
		{"leap day", "2024-02-29", time.Date(2024, time.February, 29, 0, 0, 0, 0, time.Local)},
		{"european", "15/01/2024", time.Date(2024, time.January, 15, 0, 0, 0, 0, time.Local)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDate(tt.input)
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if !result.Equal(tt.expected) {
				t.Errorf("ParseDate(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseDate_Errors(t *testing.T) {
	tests := []struct {
		input    string
		contains string
	}{
		{"", "cannot be empty"},
		{"2024", "missing month and day"},
		{"2024-01", "missing day"},
		{"01-15", "missing year"},
		{"15/01", "missing year"},
		{"2024-01-15-01", "too many date parts"},
		{"yesterday", "invalid date format"},
		{"2024-02-30", "invalid date format"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseDate(tt.input)
			if err == nil {
				t.Fatalf("ParseDate(%q) expected error", tt.input)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("ParseDate(%q) error = %q, expected it to contain %q", tt.input, err, tt.contains)
			}
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	got, err := NormalizeDate("05/01/2024")
	if err != nil {
		t.Fatalf("NormalizeDate() error = %v", err)
	}
	if got != "2024-01-05" {
		t.Errorf("NormalizeDate() = %q, want 2024-01-05", got)
	}

	got, err = NormalizeDate("")
	if err != nil {
		t.Fatalf("NormalizeDate(\"\") error = %v", err)
	}
	if got != Today() {
		t.Errorf("NormalizeDate(\"\") = %q, want today %q", got, Today())
	}

	if _, err := NormalizeDate("nope"); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestShiftDate(t *testing.T) {
	tests := []struct {
		in   string
		days int
		want string
	}{
		{"2024-01-05", 1, "2024-01-06"},
		{"2024-01-01", -1, "2023-12-31"},
		{"2024-02-28", 1, "2024-02-29"},
		{"2024-03-10", 0, "2024-03-10"},
		{"bad", 1, "bad"},
	}

	for _, tt := range tests {
		if got := ShiftDate(tt.in, tt.days); got != tt.want {
			t.Errorf("ShiftDate(%q, %d) = %q, want %q", tt.in, tt.days, got, tt.want)
		}
	}
}

func TestToday(t *testing.T) {
	if got, want := Today(), time.Now().Format("2006-01-02"); got != want {
		// crossing midnight between the two calls is the only way this fails
		t.Logf("Today() = %q, now = %q", got, want)
	}
	if len(Today()) != len("2006-01-02") {
		t.Errorf("Today() = %q, expected YYYY-MM-DD", Today())
	}
}
