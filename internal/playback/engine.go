package playback

import (
	"log/slog"
	"sync"
	"time"

	"github.com/llehouerou/platter/internal/tracklist"
)

// scrobbleAfterSeconds is the absolute scrobble threshold: a track scrobbles
// at half its duration or after 4 minutes, whichever comes first.
const scrobbleAfterSeconds = 240

// Notifier submits listening activity to a scrobbling service. Calls are
// dispatched fire-and-forget from the engine: a failure is logged and
// reported on the event subscription, never retried, and never blocks
// playback.
type Notifier interface {
	NowPlaying(track tracklist.Track) error
	Scrobble(track tracklist.Track, startedAt time.Time) error
}

// Engine owns the playback progress state: elapsed seconds, the scrobble arm
// flag, and the Stopped/Playing state. All mutation is serialized under one
// mutex; ticks and navigation calls never overlap.
type Engine struct {
	mu       sync.Mutex
	session  *tracklist.Session
	notifier Notifier
	log      *slog.Logger

	state     State
	elapsed   int       // seconds into the current track, reset on track change
	armed     bool      // scrobble not yet fired for this play-through
	startedAt time.Time // when the current play began, used as scrobble timestamp

	stopTick chan struct{} // closes to cancel the ticker goroutine, nil when stopped

	subsMu sync.RWMutex
	subs   []*Subscription
	closed bool
}

// New creates an engine over the given session. notifier may be nil, in which
// case playback runs without scrobbling. log may be nil.
func New(session *tracklist.Session, notifier Notifier, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		session:  session,
		notifier: notifier,
		log:      log,
		armed:    true,
	}
}

// State returns the current playback state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// IsPlaying reports whether playback is running.
func (e *Engine) IsPlaying() bool {
	return e.State() == StatePlaying
}

// Elapsed returns the seconds played of the current track.
func (e *Engine) Elapsed() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.elapsed
}

// CurrentTrack returns a copy of the current track, or nil if no release is
// loaded.
func (e *Engine) CurrentTrack() *tracklist.Track {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Current()
}

// CurrentIndex returns the storage index of the current track (-1 if none).
func (e *Engine) CurrentIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.CurrentIndex()
}

// Tracks returns a copy of the loaded tracklist in storage order.
func (e *Engine) Tracks() []tracklist.Track {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Tracks()
}

// Load replaces the tracklist. Playback stops and progress resets; the cursor
// moves to the first track in storage order.
func (e *Engine) Load(tracks []tracklist.Track) {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev := e.session.Current()
	e.setStateLocked(StateStopped)
	e.session.Load(tracks)
	e.resetLocked()
	e.emitTrackLocked(prev)
}

// TogglePlayPause starts playback from Stopped or stops it from Playing.
// Starting is always a fresh play of the current track: elapsed resets, the
// scrobble re-arms, and a now-playing notification fires. Stopping keeps
// elapsed as is. With no release loaded this is a no-op.
func (e *Engine) TogglePlayPause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StatePlaying {
		e.setStateLocked(StateStopped)
		return
	}

	cur := e.session.Current()
	if cur == nil {
		return
	}
	e.resetLocked()
	e.setStateLocked(StatePlaying)
	e.dispatchNowPlaying(*cur)
}

// Advance moves to the next track in position order. On an actual move the
// progress state fully resets; while playing, the tick restarts and a fresh
// now-playing notification fires. At the last track (or with no release) this
// is a no-op returning false.
func (e *Engine) Advance() bool {
	return e.navigate((*tracklist.Session).Advance)
}

// GoBack is the symmetric predecessor operation.
func (e *Engine) GoBack() bool {
	return e.navigate((*tracklist.Session).GoBack)
}

func (e *Engine) navigate(move func(*tracklist.Session) bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev := e.session.Current()
	if !move(e.session) {
		return false
	}
	e.resetLocked()
	cur := e.session.Current()
	e.emitTrackLocked(prev)
	if e.state == StatePlaying {
		e.restartTickLocked()
		e.dispatchNowPlaying(*cur)
	}
	return true
}

// SelectAndPlay moves the cursor to the track with the given position and
// forces playback regardless of prior state, with the usual reset-and-notify
// semantics. Returns false without any state change if no track matches.
func (e *Engine) SelectAndPlay(position string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev := e.session.Current()
	if !e.session.Select(position) {
		return false
	}
	e.resetLocked()
	cur := e.session.Current()
	e.emitTrackLocked(prev)
	if e.state == StatePlaying {
		e.restartTickLocked()
	} else {
		e.setStateLocked(StatePlaying)
	}
	e.dispatchNowPlaying(*cur)
	return true
}

// Tick advances playback by one second. It is invoked by the engine's own
// ticker while playing, and may be called directly by any scheduler; it
// no-ops when stopped. Threshold order matters: the scrobble check runs
// before the completion check so a track reaching both on the same tick still
// scrobbles.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StatePlaying {
		return
	}
	cur := e.session.Current()
	if cur == nil {
		return
	}

	e.elapsed++
	e.emit(func(s *Subscription) {
		s.sendProgress(ProgressChange{Elapsed: e.elapsed, Duration: cur.DurationSeconds})
	})

	if cur.HasDuration() && e.armed &&
		(e.elapsed >= cur.DurationSeconds/2 || e.elapsed >= scrobbleAfterSeconds) {
		e.armed = false
		e.dispatchScrobble(*cur, e.startedAt)
	}

	if !cur.HasDuration() || e.elapsed < cur.DurationSeconds {
		return
	}

	// Track complete.
	prev := cur
	if e.session.Advance() {
		e.resetLocked()
		next := e.session.Current()
		e.emitTrackLocked(prev)
		e.dispatchNowPlaying(*next)
		return
	}

	// End of release: stop and reposition to the first track in position
	// order, ready to replay without auto-starting. No now-playing fires.
	e.setStateLocked(StateStopped)
	e.resetLocked()
	e.session.SelectFirst()
	e.emitTrackLocked(prev)
}

// Subscribe creates a new event subscription.
func (e *Engine) Subscribe() *Subscription {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	sub := newSubscription()
	e.subs = append(e.subs, sub)
	return sub
}

// Close stops playback and signals all subscribers. In-flight notification
// calls complete on their own; their results are discarded.
func (e *Engine) Close() error {
	e.mu.Lock()
	e.state = StateStopped
	e.stopTickLocked()
	e.mu.Unlock()

	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	for _, sub := range e.subs {
		sub.close()
	}
	e.subs = nil
	return nil
}

// resetLocked clears progress for a fresh play of the current track.
func (e *Engine) resetLocked() {
	e.elapsed = 0
	e.armed = true
	e.startedAt = time.Now()
}

// setStateLocked transitions the state, managing the ticker and emitting a
// StateChange. No-op if the state is unchanged.
func (e *Engine) setStateLocked(s State) {
	if e.state == s {
		return
	}
	prev := e.state
	e.state = s
	if s == StatePlaying {
		e.startTickLocked()
	} else {
		e.stopTickLocked()
	}
	e.emit(func(sub *Subscription) {
		sub.sendState(StateChange{Previous: prev, Current: s})
	})
}

func (e *Engine) startTickLocked() {
	stop := make(chan struct{})
	e.stopTick = stop
	go e.runTicker(stop)
}

func (e *Engine) stopTickLocked() {
	if e.stopTick != nil {
		close(e.stopTick)
		e.stopTick = nil
	}
}

// restartTickLocked re-arms the ticker so the new track gets a full first
// second.
func (e *Engine) restartTickLocked() {
	e.stopTickLocked()
	e.startTickLocked()
}

func (e *Engine) runTicker(stop chan struct{}) {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			e.Tick()
		case <-stop:
			return
		}
	}
}

func (e *Engine) emitTrackLocked(prev *tracklist.Track) {
	cur := e.session.Current()
	idx := e.session.CurrentIndex()
	e.emit(func(s *Subscription) {
		s.sendTrack(TrackChange{Previous: prev, Current: cur, Index: idx})
	})
}

func (e *Engine) emit(send func(*Subscription)) {
	e.subsMu.RLock()
	defer e.subsMu.RUnlock()
	for _, sub := range e.subs {
		send(sub)
	}
}

// dispatchNowPlaying fires the notification without waiting for it. The
// result only reaches the log and the event subscription.
func (e *Engine) dispatchNowPlaying(t tracklist.Track) {
	if e.notifier == nil {
		return
	}
	go func() {
		err := e.notifier.NowPlaying(t)
		if err != nil {
			e.log.Error("now playing update failed", "track", t.Title, "err", err)
		}
		e.emit(func(s *Subscription) {
			s.sendNowPlaying(NowPlayingResult{Track: t, Err: err})
		})
	}()
}

func (e *Engine) dispatchScrobble(t tracklist.Track, startedAt time.Time) {
	if e.notifier == nil {
		return
	}
	go func() {
		err := e.notifier.Scrobble(t, startedAt)
		if err != nil {
			e.log.Error("scrobble failed", "track", t.Title, "err", err)
		}
		e.emit(func(s *Subscription) {
			s.sendScrobble(ScrobbleResult{Track: t, StartedAt: startedAt, Err: err})
		})
	}()
}
