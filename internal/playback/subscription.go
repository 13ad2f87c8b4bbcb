package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber. Sends are
// non-blocking: events are dropped when a buffer fills rather than stalling
// the engine.
type Subscription struct {
	StateChanged     <-chan StateChange
	TrackChanged     <-chan TrackChange
	ProgressChanged  <-chan ProgressChange
	NowPlayingResult <-chan NowPlayingResult
	ScrobbleResult   <-chan ScrobbleResult
	Done             <-chan struct{}

	// Internal write channels
	stateCh      chan StateChange
	trackCh      chan TrackChange
	progressCh   chan ProgressChange
	nowPlayingCh chan NowPlayingResult
	scrobbleCh   chan ScrobbleResult
	doneCh       chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:      make(chan StateChange, eventBufferSize),
		trackCh:      make(chan TrackChange, eventBufferSize),
		progressCh:   make(chan ProgressChange, eventBufferSize),
		nowPlayingCh: make(chan NowPlayingResult, eventBufferSize),
		scrobbleCh:   make(chan ScrobbleResult, eventBufferSize),
		doneCh:       make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.TrackChanged = s.trackCh
	s.ProgressChanged = s.progressCh
	s.NowPlayingResult = s.nowPlayingCh
	s.ScrobbleResult = s.scrobbleCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
		// Drop if buffer full
	}
}

func (s *Subscription) sendTrack(e TrackChange) {
	select {
	case s.trackCh <- e:
	default:
	}
}

func (s *Subscription) sendProgress(e ProgressChange) {
	select {
	case s.progressCh <- e:
	default:
	}
}

func (s *Subscription) sendNowPlaying(e NowPlayingResult) {
	select {
	case s.nowPlayingCh <- e:
	default:
	}
}

func (s *Subscription) sendScrobble(e ScrobbleResult) {
	select {
	case s.scrobbleCh <- e:
	default:
	}
}
