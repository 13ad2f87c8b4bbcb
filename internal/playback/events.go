package playback

import (
	"time"

	"github.com/llehouerou/platter/internal/tracklist"
)

// StateChange is emitted when the engine transitions between Stopped and
// Playing.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted whenever the current track changes: initial load,
// auto-advance, manual navigation, or direct selection. The end-of-release
// reposition back to the first track also emits one (with the engine stopped),
// so observers always track the cursor.
type TrackChange struct {
	Previous *tracklist.Track
	Current  *tracklist.Track
	Index    int // storage index of Current, -1 if none
}

// ProgressChange is emitted on every tick while playing.
type ProgressChange struct {
	Elapsed  int // seconds into the current track
	Duration int // track duration in seconds, 0 if unknown
}

// NowPlayingResult reports the outcome of a now-playing notification. The
// engine has already moved on by the time this arrives; it is observational
// only.
type NowPlayingResult struct {
	Track tracklist.Track
	Err   error
}

// ScrobbleResult reports the outcome of a scrobble submission. A scrobble is
// dispatched at most once per play-through; a failure here is never retried
// by the engine.
type ScrobbleResult struct {
	Track     tracklist.Track
	StartedAt time.Time
	Err       error
}
