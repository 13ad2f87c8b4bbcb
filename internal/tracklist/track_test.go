package tracklist

import "testing"

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"3:30", 210},
		{"0:10", 10},
		{"0:05", 5},
		{"10:00", 600},
		{"1:02:03", 3723},
		{" 4:20 ", 260},
		{"", 0},
		{"abc", 0},
		{"3", 0},
		{"3:xx", 0},
		{"-1:30", 0},
		{"1:2:3:4", 0},
		{"0:00", 0},
		{":", 0},
	}
	for _, tt := range tests {
		if got := ParseDuration(tt.in); got != tt.want {
			t.Errorf("ParseDuration(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{210, "3:30"},
		{10, "0:10"},
		{5, "0:05"},
		{600, "10:00"},
		{0, "-:--"},
		{-5, "-:--"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTrack_HasDuration(t *testing.T) {
	if (Track{DurationSeconds: 0}).HasDuration() {
		t.Error("HasDuration() = true for unknown duration, want false")
	}
	if !(Track{DurationSeconds: 1}).HasDuration() {
		t.Error("HasDuration() = false for 1s duration, want true")
	}
}
