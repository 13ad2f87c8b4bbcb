package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/platter/internal/discogs"
	"github.com/llehouerou/platter/internal/errmsg"
	"github.com/llehouerou/platter/internal/notify"
	"github.com/llehouerou/platter/internal/playback"
	"github.com/llehouerou/platter/internal/scrobble"
	"github.com/llehouerou/platter/internal/state"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case stateMsg:
		m.playing = msg.Current == playback.StatePlaying
		return m, waitForEvent(m.sub)

	case trackMsg:
		return m.handleTrackChange(msg)

	case progressMsg:
		m.elapsed = msg.Elapsed
		m.duration = msg.Duration
		return m, waitForEvent(m.sub)

	case nowPlayingMsg:
		m.status = errmsg.Format(errmsg.OpNowPlaying, msg.Err)
		return m, waitForEvent(m.sub)

	case scrobbleMsg:
		return m.handleScrobbleResult(msg)

	case engineDoneMsg:
		return m, tea.Quit

	case releaseLoadedMsg:
		return m.handleReleaseLoaded(msg)

	case errorMsg:
		m.status = errmsg.Format(msg.op, msg.err)
		m.log.Error(string(msg.op), "err", msg.err)
		return m, nil

	case historyMsg:
		m.history = msg.plays
		m.showHistory = true
		return m, nil

	case pendingFlushMsg:
		m.status = fmt.Sprintf("pending scrobbles: %d submitted, %d still failing",
			msg.submitted, msg.failed)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompting {
		switch msg.String() {
		case "enter":
			input := m.prompt.Value()
			m.prompting = false
			m.prompt.Blur()
			if input == "" {
				return m, nil
			}
			if _, err := discogs.ParseReleaseID(input); err == nil || m.searcher == nil {
				m.status = "loading release..."
				return m, m.loadRelease(input)
			}
			m.status = "searching..."
			return m, m.searchRelease(input)
		case "esc":
			m.prompting = false
			m.prompt.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.prompt, cmd = m.prompt.Update(msg)
			return m, cmd
		}
	}

	if m.showHistory {
		switch msg.String() {
		case "q", "esc", "h":
			m.showHistory = false
			return m, nil
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case " ":
		m.engine.TogglePlayPause()

	case "n", "right":
		m.engine.Advance()

	case "p", "left":
		m.engine.GoBack()

	case "j", "down":
		if m.cursor < len(m.tracks)-1 {
			m.cursor++
		}

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "enter":
		if m.cursor >= 0 && m.cursor < len(m.tracks) {
			m.engine.SelectAndPlay(m.tracks[m.cursor].Position)
		}

	case "o":
		if m.loader == nil {
			m.status = "release loading not configured"
			return m, nil
		}
		m.prompting = true
		m.prompt.SetValue("")
		return m, m.prompt.Focus()

	case "h":
		if m.store == nil {
			return m, nil
		}
		return m, m.loadHistory()

	case "r":
		if m.store == nil || m.flusher == nil {
			m.status = "scrobbling not configured"
			return m, nil
		}
		m.status = "retrying pending scrobbles..."
		return m, m.flushPending()
	}

	return m, nil
}

func (m Model) handleTrackChange(msg trackMsg) (tea.Model, tea.Cmd) {
	if msg.Index >= 0 {
		m.cursor = msg.Index
	}
	m.elapsed = 0
	m.duration = 0
	if msg.Current != nil {
		m.duration = msg.Current.DurationSeconds
	}

	if m.desktop != nil && m.cfg.ShowNotifications() &&
		m.engine.IsPlaying() && msg.Current != nil {
		id, err := m.desktop.Notify(notify.ForTrack(*msg.Current, m.lastNotifyID))
		if err != nil {
			m.log.Warn("desktop notification failed", "err", err)
		} else {
			m.lastNotifyID = id
		}
	}

	return m, waitForEvent(m.sub)
}

// handleScrobbleResult persists the outcome: successes land in the play
// history, failures queue for a manual retry.
func (m Model) handleScrobbleResult(msg scrobbleMsg) (tea.Model, tea.Cmd) {
	if m.store != nil {
		if msg.Err != nil {
			err := m.store.AddPendingScrobble(state.PendingScrobble{
				Artist:          scrobble.CleanArtist(msg.Track.Artist),
				Track:           msg.Track.Title,
				Album:           msg.Track.Album,
				DurationSeconds: msg.Track.DurationSeconds,
				Timestamp:       msg.StartedAt,
				LastError:       msg.Err.Error(),
			})
			if err != nil {
				m.log.Error("queue pending scrobble", "err", err)
			}
		} else {
			err := m.store.AddPlay(state.Play{
				Artist:          scrobble.CleanArtist(msg.Track.Artist),
				Track:           msg.Track.Title,
				Album:           msg.Track.Album,
				DurationSeconds: msg.Track.DurationSeconds,
			})
			if err != nil {
				m.log.Error("record play", "err", err)
			}
		}
	}

	if msg.Err != nil {
		m.status = errmsg.FormatWith(errmsg.OpScrobble, msg.Track.Title, msg.Err) + " (queued for retry)"
	} else {
		m.status = fmt.Sprintf("scrobbled: %s", msg.Track.Title)
	}
	return m, waitForEvent(m.sub)
}

func (m Model) handleReleaseLoaded(msg releaseLoadedMsg) (tea.Model, tea.Cmd) {
	m.release = msg.release
	m.tracks = msg.release.Tracks
	m.cursor = 0
	m.status = fmt.Sprintf("loaded %s - %s", msg.release.Artist, msg.release.Title)

	m.engine.Load(msg.release.Tracks)

	if m.store != nil {
		err := m.store.SaveLastRelease(state.LastRelease{
			DiscogsID: msg.release.ID,
			Title:     msg.release.Title,
			Artist:    msg.release.Artist,
		})
		if err != nil {
			m.log.Error("save last release", "err", err)
		}
	}
	return m, nil
}
