package playback

import (
	"errors"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/llehouerou/platter/internal/tracklist"
)

type fakeNotifier struct {
	mu            sync.Mutex
	nowPlaying    []tracklist.Track
	scrobbles     []tracklist.Track
	scrobbleTimes []time.Time
	nowPlayingErr error
	scrobbleErr   error
}

func (f *fakeNotifier) NowPlaying(t tracklist.Track) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nowPlaying = append(f.nowPlaying, t)
	return f.nowPlayingErr
}

func (f *fakeNotifier) Scrobble(t tracklist.Track, startedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scrobbles = append(f.scrobbles, t)
	f.scrobbleTimes = append(f.scrobbleTimes, startedAt)
	return f.scrobbleErr
}

func (f *fakeNotifier) nowPlayingPositions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.nowPlaying))
	for i, t := range f.nowPlaying {
		out[i] = t.Position
	}
	return out
}

func (f *fakeNotifier) scrobblePositions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.scrobbles))
	for i, t := range f.scrobbles {
		out[i] = t.Position
	}
	return out
}

func newTestEngine(tracks ...tracklist.Track) (*Engine, *fakeNotifier) {
	session := tracklist.NewSession()
	session.Load(tracks)
	n := &fakeNotifier{}
	return New(session, n, nil), n
}

func track(position string, durationSeconds int) tracklist.Track {
	return tracklist.Track{
		Position:        position,
		Title:           "Track " + position,
		Artist:          "Artist",
		Album:           "Album",
		DurationSeconds: durationSeconds,
	}
}

func tick(e *Engine, n int) {
	for range n {
		e.Tick()
	}
}

func TestEngine_TogglePlay_FiresNowPlaying(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		eng, n := newTestEngine(track("A1", 180))
		defer eng.Close()

		eng.TogglePlayPause()
		synctest.Wait()

		if eng.State() != StatePlaying {
			t.Errorf("State() = %v, want Playing", eng.State())
		}
		if eng.Elapsed() != 0 {
			t.Errorf("Elapsed() = %d, want 0", eng.Elapsed())
		}
		if got := n.nowPlayingPositions(); len(got) != 1 || got[0] != "A1" {
			t.Errorf("nowPlaying = %v, want [A1]", got)
		}
	})
}

func TestEngine_Toggle_NoRelease_NoOp(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		session := tracklist.NewSession()
		n := &fakeNotifier{}
		eng := New(session, n, nil)
		defer eng.Close()

		eng.TogglePlayPause()
		synctest.Wait()

		if eng.State() != StateStopped {
			t.Errorf("State() = %v, want Stopped", eng.State())
		}
		if got := n.nowPlayingPositions(); len(got) != 0 {
			t.Errorf("nowPlaying = %v, want none", got)
		}
	})
}

func TestEngine_ScrobbleAtHalfDuration(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		eng, n := newTestEngine(track("A1", 10))
		defer eng.Close()

		eng.TogglePlayPause()
		tick(eng, 4)
		synctest.Wait()
		if got := n.scrobblePositions(); len(got) != 0 {
			t.Fatalf("scrobbles after 4s = %v, want none", got)
		}

		eng.Tick() // elapsed = 5 >= 10/2
		synctest.Wait()
		if got := n.scrobblePositions(); len(got) != 1 || got[0] != "A1" {
			t.Fatalf("scrobbles after 5s = %v, want [A1]", got)
		}

		// A scrobble fires at most once per play-through.
		tick(eng, 4)
		synctest.Wait()
		if got := n.scrobblePositions(); len(got) != 1 {
			t.Errorf("scrobbles after 9s = %v, want exactly one", got)
		}
	})
}

func TestEngine_ScrobbleAtFourMinutes(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		// Half of 600s is 300s: the absolute 240s threshold wins.
		eng, n := newTestEngine(track("A1", 600))
		defer eng.Close()

		eng.TogglePlayPause()
		tick(eng, 239)
		synctest.Wait()
		if got := n.scrobblePositions(); len(got) != 0 {
			t.Fatalf("scrobbles after 239s = %v, want none", got)
		}

		eng.Tick() // elapsed = 240
		synctest.Wait()
		if got := n.scrobblePositions(); len(got) != 1 {
			t.Errorf("scrobbles after 240s = %v, want exactly one", got)
		}
	})
}

func TestEngine_NoDuration_NoAutoBehavior(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		eng, n := newTestEngine(track("A1", 0), track("A2", 120))
		defer eng.Close()

		eng.TogglePlayPause()
		tick(eng, 500)
		synctest.Wait()

		if got := n.scrobblePositions(); len(got) != 0 {
			t.Errorf("scrobbles = %v, want none for unknown duration", got)
		}
		if cur := eng.CurrentTrack(); cur.Position != "A1" {
			t.Errorf("CurrentTrack().Position = %q, want A1 (no auto-advance)", cur.Position)
		}
		if eng.State() != StatePlaying {
			t.Errorf("State() = %v, want Playing", eng.State())
		}
		if eng.Elapsed() != 500 {
			t.Errorf("Elapsed() = %d, want 500", eng.Elapsed())
		}
	})
}

func TestEngine_AutoAdvance(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		eng, n := newTestEngine(track("A1", 10), track("A2", 300))
		defer eng.Close()

		eng.TogglePlayPause()
		tick(eng, 10)
		synctest.Wait()

		if cur := eng.CurrentTrack(); cur.Position != "A2" {
			t.Errorf("CurrentTrack().Position = %q, want A2", cur.Position)
		}
		if eng.Elapsed() != 0 {
			t.Errorf("Elapsed() = %d, want 0 after auto-advance", eng.Elapsed())
		}
		if eng.State() != StatePlaying {
			t.Errorf("State() = %v, want Playing", eng.State())
		}
		if got := n.nowPlayingPositions(); len(got) != 2 || got[1] != "A2" {
			t.Errorf("nowPlaying = %v, want [A1 A2]", got)
		}
		if got := n.scrobblePositions(); len(got) != 1 || got[0] != "A1" {
			t.Errorf("scrobbles = %v, want [A1]", got)
		}
	})
}

func TestEngine_EndOfRelease_StopsAndRepositions(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		eng, n := newTestEngine(track("A1", 10), track("A2", 5))
		defer eng.Close()

		eng.SelectAndPlay("A2")
		synctest.Wait()
		tick(eng, 5)
		synctest.Wait()

		if eng.State() != StateStopped {
			t.Errorf("State() = %v, want Stopped", eng.State())
		}
		if eng.Elapsed() != 0 {
			t.Errorf("Elapsed() = %d, want 0", eng.Elapsed())
		}
		if cur := eng.CurrentTrack(); cur.Position != "A1" {
			t.Errorf("CurrentTrack().Position = %q, want A1 (repositioned)", cur.Position)
		}
		// No now-playing for the reposition target.
		if got := n.nowPlayingPositions(); len(got) != 1 || got[0] != "A2" {
			t.Errorf("nowPlaying = %v, want [A2]", got)
		}
	})
}

func TestEngine_BothThresholdsSameTick_ScrobblesOnce(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		// A 1-second track reaches the scrobble threshold and completion on
		// the same tick; the scrobble must still fire, exactly once.
		eng, n := newTestEngine(track("A1", 1))
		defer eng.Close()

		eng.TogglePlayPause()
		eng.Tick()
		synctest.Wait()

		if got := n.scrobblePositions(); len(got) != 1 || got[0] != "A1" {
			t.Errorf("scrobbles = %v, want [A1]", got)
		}
		if eng.State() != StateStopped {
			t.Errorf("State() = %v, want Stopped", eng.State())
		}
	})
}

func TestEngine_ManualAdvance_WhilePlaying(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		eng, n := newTestEngine(track("A1", 100), track("A2", 100))
		defer eng.Close()

		eng.TogglePlayPause()
		tick(eng, 7)

		if !eng.Advance() {
			t.Fatal("Advance() = false, want true")
		}
		synctest.Wait()

		if cur := eng.CurrentTrack(); cur.Position != "A2" {
			t.Errorf("CurrentTrack().Position = %q, want A2", cur.Position)
		}
		if eng.Elapsed() != 0 {
			t.Errorf("Elapsed() = %d, want 0 after manual advance", eng.Elapsed())
		}
		if got := n.nowPlayingPositions(); len(got) != 2 || got[1] != "A2" {
			t.Errorf("nowPlaying = %v, want [A1 A2]", got)
		}
	})
}

func TestEngine_ManualAdvance_WhileStopped_Silent(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		eng, n := newTestEngine(track("A1", 100), track("A2", 100))
		defer eng.Close()

		if !eng.Advance() {
			t.Fatal("Advance() = false, want true")
		}
		synctest.Wait()

		if eng.State() != StateStopped {
			t.Errorf("State() = %v, want Stopped", eng.State())
		}
		if cur := eng.CurrentTrack(); cur.Position != "A2" {
			t.Errorf("CurrentTrack().Position = %q, want A2", cur.Position)
		}
		if got := n.nowPlayingPositions(); len(got) != 0 {
			t.Errorf("nowPlaying = %v, want none while stopped", got)
		}
	})
}

func TestEngine_Advance_AtLastTrack_NoOp(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		eng, n := newTestEngine(track("A1", 100), track("A2", 100))
		defer eng.Close()

		eng.SelectAndPlay("A2")
		tick(eng, 3)

		if eng.Advance() {
			t.Error("Advance() at last track = true, want false")
		}
		synctest.Wait()

		if eng.Elapsed() != 3 {
			t.Errorf("Elapsed() = %d, want 3 (no-op navigation leaves state unchanged)", eng.Elapsed())
		}
		if got := n.nowPlayingPositions(); len(got) != 1 {
			t.Errorf("nowPlaying = %v, want just the initial one", got)
		}
	})
}

func TestEngine_SelectAndPlay_ForcesPlaying(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		eng, n := newTestEngine(track("A1", 100), track("B1", 100))
		defer eng.Close()

		if !eng.SelectAndPlay("B1") {
			t.Fatal("SelectAndPlay(B1) = false, want true")
		}
		synctest.Wait()

		if eng.State() != StatePlaying {
			t.Errorf("State() = %v, want Playing", eng.State())
		}
		if got := n.nowPlayingPositions(); len(got) != 1 || got[0] != "B1" {
			t.Errorf("nowPlaying = %v, want [B1]", got)
		}
	})
}

func TestEngine_SelectAndPlay_UnknownPosition_NoOp(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		eng, n := newTestEngine(track("A1", 100))
		defer eng.Close()

		if eng.SelectAndPlay("Z9") {
			t.Error("SelectAndPlay(Z9) = true, want false")
		}
		synctest.Wait()

		if eng.State() != StateStopped {
			t.Errorf("State() = %v, want Stopped", eng.State())
		}
		if got := n.nowPlayingPositions(); len(got) != 0 {
			t.Errorf("nowPlaying = %v, want none", got)
		}
	})
}

func TestEngine_NotifierFailure_DoesNotStopPlayback(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		eng, n := newTestEngine(track("A1", 10))
		n.nowPlayingErr = errors.New("network down")
		n.scrobbleErr = errors.New("network down")
		sub := eng.Subscribe()
		defer eng.Close()

		eng.TogglePlayPause()
		tick(eng, 5)
		synctest.Wait()

		if eng.State() != StatePlaying {
			t.Errorf("State() = %v, want Playing despite notifier failures", eng.State())
		}

		select {
		case res := <-sub.ScrobbleResult:
			if res.Err == nil {
				t.Error("ScrobbleResult.Err = nil, want error")
			}
		default:
			t.Fatal("no ScrobbleResult event received")
		}

		// Failed scrobbles are not retried by the engine.
		tick(eng, 4)
		synctest.Wait()
		if got := n.scrobblePositions(); len(got) != 1 {
			t.Errorf("scrobble attempts = %d, want 1 (no retry)", len(got))
		}
	})
}

func TestEngine_StopKeepsElapsed_FreshStartResets(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		eng, n := newTestEngine(track("A1", 100))
		defer eng.Close()

		eng.TogglePlayPause()
		tick(eng, 3)
		eng.TogglePlayPause() // stop
		synctest.Wait()

		if eng.Elapsed() != 3 {
			t.Errorf("Elapsed() = %d, want 3 (stop does not reset)", eng.Elapsed())
		}

		eng.TogglePlayPause() // fresh start
		synctest.Wait()

		if eng.Elapsed() != 0 {
			t.Errorf("Elapsed() = %d, want 0 (fresh start resets)", eng.Elapsed())
		}
		if got := n.nowPlayingPositions(); len(got) != 2 {
			t.Errorf("nowPlaying count = %d, want 2", len(got))
		}
	})
}

func TestEngine_Load_StopsAndResets(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		eng, _ := newTestEngine(track("A1", 100))
		defer eng.Close()

		eng.TogglePlayPause()
		tick(eng, 3)

		eng.Load([]tracklist.Track{track("B1", 100), track("B2", 100)})
		synctest.Wait()

		if eng.State() != StateStopped {
			t.Errorf("State() = %v, want Stopped after Load", eng.State())
		}
		if eng.Elapsed() != 0 {
			t.Errorf("Elapsed() = %d, want 0 after Load", eng.Elapsed())
		}
		if cur := eng.CurrentTrack(); cur.Position != "B1" {
			t.Errorf("CurrentTrack().Position = %q, want B1", cur.Position)
		}
	})
}

func TestEngine_Ticker_DrivesTicks(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		eng, _ := newTestEngine(track("A1", 100))
		defer eng.Close()

		eng.TogglePlayPause()
		time.Sleep(3 * time.Second)
		synctest.Wait()

		if eng.Elapsed() != 3 {
			t.Errorf("Elapsed() = %d, want 3 after 3s of wall time", eng.Elapsed())
		}

		eng.TogglePlayPause() // stop cancels the tick
		time.Sleep(5 * time.Second)
		synctest.Wait()

		if eng.Elapsed() != 3 {
			t.Errorf("Elapsed() = %d, want 3 (no ticks while stopped)", eng.Elapsed())
		}
	})
}

func TestEngine_Subscription_Events(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		eng, _ := newTestEngine(track("A1", 100))
		sub := eng.Subscribe()
		defer eng.Close()

		eng.TogglePlayPause()
		synctest.Wait()

		select {
		case e := <-sub.StateChanged:
			if e.Previous != StateStopped || e.Current != StatePlaying {
				t.Errorf("StateChanged = %+v, want Stopped->Playing", e)
			}
		default:
			t.Fatal("no StateChanged event")
		}

		eng.Tick()
		synctest.Wait()

		select {
		case e := <-sub.ProgressChanged:
			if e.Elapsed != 1 || e.Duration != 100 {
				t.Errorf("ProgressChanged = %+v, want {1 100}", e)
			}
		default:
			t.Fatal("no ProgressChanged event")
		}
	})
}

// Full play-through of a two-track side: A1 (0:10) then A2 (0:05).
func TestEngine_FullSidePlaythrough(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		eng, n := newTestEngine(track("A1", 10), track("A2", 5))
		defer eng.Close()

		eng.TogglePlayPause()
		synctest.Wait()
		if got := n.nowPlayingPositions(); len(got) != 1 || got[0] != "A1" {
			t.Fatalf("nowPlaying = %v, want [A1]", got)
		}

		tick(eng, 5) // A1 scrobbles at elapsed 5 (>= 10/2)
		synctest.Wait()
		if got := n.scrobblePositions(); len(got) != 1 || got[0] != "A1" {
			t.Fatalf("scrobbles at A1 tick 5 = %v, want [A1]", got)
		}

		tick(eng, 5) // A1 completes at elapsed 10, auto-advance to A2
		synctest.Wait()
		if cur := eng.CurrentTrack(); cur.Position != "A2" {
			t.Fatalf("CurrentTrack().Position = %q, want A2", cur.Position)
		}
		if got := n.nowPlayingPositions(); len(got) != 2 || got[1] != "A2" {
			t.Fatalf("nowPlaying = %v, want [A1 A2]", got)
		}

		tick(eng, 2) // A2 scrobbles at elapsed 2 (>= 5/2)
		synctest.Wait()
		if got := n.scrobblePositions(); len(got) != 2 || got[1] != "A2" {
			t.Fatalf("scrobbles at A2 tick 2 = %v, want [A1 A2]", got)
		}

		tick(eng, 3) // A2 completes, end of release
		synctest.Wait()
		if eng.State() != StateStopped {
			t.Errorf("State() = %v, want Stopped", eng.State())
		}
		if eng.Elapsed() != 0 {
			t.Errorf("Elapsed() = %d, want 0", eng.Elapsed())
		}
		if cur := eng.CurrentTrack(); cur.Position != "A1" {
			t.Errorf("CurrentTrack().Position = %q, want A1 (ready to replay)", cur.Position)
		}
		if got := n.nowPlayingPositions(); len(got) != 2 {
			t.Errorf("nowPlaying = %v, want exactly [A1 A2]", got)
		}
		if got := n.scrobblePositions(); len(got) != 2 {
			t.Errorf("scrobbles = %v, want exactly [A1 A2]", got)
		}
	})
}
