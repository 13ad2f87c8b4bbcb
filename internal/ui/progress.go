package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/platter/internal/tracklist"
)

var (
	filledBlock = "▓"
	emptyBlock  = "░"
)

// renderProgressBar renders a block-style progress bar.
// Format: ▶  1:23  ▓▓▓▓▓░░░░░  4:56
func renderProgressBar(elapsed, duration, width int, playing bool) string {
	status := "▶"
	if !playing {
		status = "⏹"
	}

	posStr := fmt.Sprintf("%d:%02d", elapsed/60, elapsed%60)
	durStr := tracklist.FormatDuration(duration)

	// Calculate space for the bar itself
	fixedWidth := lipgloss.Width(status) + 2 + lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixedWidth

	if barWidth < 3 {
		// Too narrow for bar, just show times
		return status + "  " + posStr + " / " + durStr
	}

	// Unknown duration: the needle keeps moving but there is nothing to fill
	var ratio float64
	if duration > 0 {
		ratio = float64(elapsed) / float64(duration)
	}
	filled := min(int(float64(barWidth)*ratio), barWidth)

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, barWidth-filled)

	return status + "  " + posStr + "  " + bar + "  " + durStr
}
