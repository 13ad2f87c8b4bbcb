package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/platter/internal/discogs"
	"github.com/llehouerou/platter/internal/errmsg"
	"github.com/llehouerou/platter/internal/playback"
	"github.com/llehouerou/platter/internal/recognize"
	"github.com/llehouerou/platter/internal/state"
)

type (
	stateMsg      playback.StateChange
	trackMsg      playback.TrackChange
	progressMsg   playback.ProgressChange
	nowPlayingMsg playback.NowPlayingResult
	scrobbleMsg   playback.ScrobbleResult
	engineDoneMsg struct{}

	releaseLoadedMsg struct{ release *discogs.Release }
	errorMsg         struct {
		op  errmsg.Op
		err error
	}

	historyMsg      struct{ plays []state.Play }
	pendingFlushMsg struct {
		submitted int
		failed    int
	}
)

// waitForEvent blocks on the engine subscription and converts the next event
// into a message. The update loop re-issues it after each engine message.
func waitForEvent(sub *playback.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return stateMsg(e)
		case e := <-sub.TrackChanged:
			return trackMsg(e)
		case e := <-sub.ProgressChanged:
			return progressMsg(e)
		case e := <-sub.NowPlayingResult:
			return nowPlayingMsg(e)
		case e := <-sub.ScrobbleResult:
			return scrobbleMsg(e)
		case <-sub.Done:
			return engineDoneMsg{}
		}
	}
}

// loadRelease parses the user's input and fetches the release, filling
// missing durations from Last.fm when a client is available.
func (m Model) loadRelease(input string) tea.Cmd {
	loader, filler := m.loader, m.filler
	return func() tea.Msg {
		id, err := discogs.ParseReleaseID(input)
		if err != nil {
			return errorMsg{errmsg.OpReleaseLoad, err}
		}
		rel, err := loader.Release(id)
		if err != nil {
			return errorMsg{errmsg.OpReleaseLoad, fmt.Errorf("release %d: %w", id, err)}
		}
		if filler != nil {
			rel.Tracks = filler.FillDurations(rel.Tracks)
		}
		return releaseLoadedMsg{rel}
	}
}

// searchRelease resolves free-text input into a release. The typed text
// stands in for an identification of what's spinning; the best candidate
// loads directly.
func (m Model) searchRelease(input string) tea.Cmd {
	loader, searcher, filler := m.loader, m.searcher, m.filler
	return func() tea.Msg {
		resolver := recognize.NewResolver(recognize.Manual("", input, ""), searcher)
		_, results, err := resolver.Resolve(context.Background())
		if err != nil {
			return errorMsg{errmsg.OpReleaseSearch, err}
		}
		if len(results) == 0 {
			return errorMsg{errmsg.OpReleaseSearch, fmt.Errorf("no releases match %q", input)}
		}
		rel, err := loader.Release(results[0].ID)
		if err != nil {
			return errorMsg{errmsg.OpReleaseLoad, err}
		}
		if filler != nil {
			rel.Tracks = filler.FillDurations(rel.Tracks)
		}
		return releaseLoadedMsg{rel}
	}
}

// loadHistory fetches recent plays from the store.
func (m Model) loadHistory() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		plays, err := store.RecentPlays(20)
		if err != nil {
			return errorMsg{errmsg.OpHistoryLoad, err}
		}
		return historyMsg{plays}
	}
}

// flushPending retries every stored failed scrobble once. Successes leave the
// queue; failures stay with an updated attempt count.
func (m Model) flushPending() tea.Cmd {
	store, flusher := m.store, m.flusher
	return func() tea.Msg {
		pending, err := store.PendingScrobbles()
		if err != nil {
			return errorMsg{errmsg.OpPendingFlush, err}
		}

		var msg pendingFlushMsg
		for _, s := range pending {
			err := flusher.ScrobbleAt(s.Artist, s.Track, s.Album, s.DurationSeconds, s.Timestamp)
			if err != nil {
				msg.failed++
				_ = store.UpdatePendingScrobbleAttempt(s.ID, err.Error())
				continue
			}
			msg.submitted++
			_ = store.DeletePendingScrobble(s.ID)
			_ = store.AddPlay(state.Play{
				Artist:          s.Artist,
				Track:           s.Track,
				Album:           s.Album,
				DurationSeconds: s.DurationSeconds,
				PlayedAt:        s.Timestamp,
			})
		}
		return msg
	}
}
