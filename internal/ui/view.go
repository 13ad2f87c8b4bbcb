package ui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/llehouerou/platter/internal/tracklist"
)

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	if m.showHistory {
		return m.viewHistory()
	}

	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")
	b.WriteString(m.viewTracklist())
	b.WriteString("\n")
	b.WriteString(renderProgressBar(m.elapsed, m.duration, m.width-2, m.playing))
	b.WriteString("\n\n")

	if m.prompting {
		b.WriteString(promptStyle.Render("Load release: " + m.prompt.View()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(
		"space play/stop · n/p track · enter play selected · o load release · h history · r retry scrobbles · q quit"))

	return b.String()
}

func (m Model) viewHeader() string {
	if m.release == nil {
		if len(m.tracks) == 0 {
			return headerStyle.Render("Platter") + "\n" +
				helpStyle.Render("No release loaded. Press o to load one from Discogs.")
		}
		return headerStyle.Render("Platter")
	}

	header := headerStyle.Render(m.release.Artist + " - " + m.release.Title)
	if m.release.Year > 0 {
		header += yearStyle.Render(fmt.Sprintf("  (%d)", m.release.Year))
	}
	return header
}

func (m Model) viewTracklist() string {
	if len(m.tracks) == 0 {
		return ""
	}

	playingIdx := -1
	if cur := m.engine.CurrentIndex(); cur >= 0 {
		playingIdx = cur
	}

	var b strings.Builder
	for i, t := range m.tracks {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}

		marker := "  "
		if i == playingIdx {
			if m.playing {
				marker = playingStyle.Render("▶ ")
			} else {
				marker = "⏹ "
			}
		}

		title := runewidth.Truncate(t.Title, max(m.width-20, 10), "…")
		if i == playingIdx {
			title = playingStyle.Render(title)
		}

		dur := durationStyle.Render(" " + tracklist.FormatDuration(t.DurationSeconds))
		b.WriteString(cursor + marker + positionStyle.Render(t.Position) + title + dur + "\n")
	}
	return b.String()
}

func (m Model) viewHistory() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Recent plays"))
	b.WriteString("\n\n")

	if len(m.history) == 0 {
		b.WriteString(helpStyle.Render("Nothing scrobbled yet."))
	}
	for _, p := range m.history {
		line := fmt.Sprintf("%s - %s", p.Artist, p.Track)
		if p.Album != "" {
			line += durationStyle.Render("  (" + p.Album + ")")
		}
		b.WriteString(line)
		b.WriteString(helpStyle.Render("  " + humanize.Time(p.PlayedAt)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("h/esc back"))
	return b.String()
}
