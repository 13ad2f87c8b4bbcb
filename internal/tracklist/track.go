// Package tracklist holds the track model and the session that maintains the
// current-track cursor within a loaded release.
package tracklist

import (
	"fmt"
	"strconv"
	"strings"
)

// Track is a single tracklist entry from a release. Tracks are never mutated
// after creation; loading a new release replaces the whole list.
type Track struct {
	Position        string // side/track label, e.g. "A1", "B2"
	Title           string
	Artist          string
	Album           string
	DurationSeconds int // 0 when unknown
	ArtworkURL      string
}

// HasDuration reports whether the track carries a usable duration.
// Tracks without one never scrobble and never auto-advance.
func (t Track) HasDuration() bool {
	return t.DurationSeconds > 0
}

// ParseDuration converts a "M:SS" or "H:MM:SS" duration string to whole
// seconds. Empty or malformed input yields 0 (duration unknown).
func ParseDuration(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0
	}

	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}
	if total <= 0 {
		return 0
	}
	return total
}

// FormatDuration renders whole seconds as "M:SS". Unknown durations (0)
// render as "-:--".
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "-:--"
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
