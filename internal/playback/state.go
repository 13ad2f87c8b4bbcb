// Package playback drives simulated playback of a loaded tracklist. A
// one-second tick accumulates elapsed time against the current track's
// duration, fires now-playing and scrobble notifications through an injected
// Notifier, and advances the session when a track completes. There is no
// audio: the record spins on the turntable, the engine only keeps time with it.
package playback

// State represents the playback state.
type State int

const (
	StateStopped State = iota
	StatePlaying
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	default:
		return "Unknown"
	}
}
