// Package scrobble submits listening activity to Last.fm and looks up track
// metadata the release source lacks.
package scrobble

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shkh/lastfm-go/lastfm"

	"github.com/llehouerou/platter/internal/tracklist"
)

// ErrNotAuthenticated is returned when an operation requires authentication.
var ErrNotAuthenticated = errors.New("not authenticated")

// Client wraps the Last.fm API for scrobbling operations.
type Client struct {
	api           *lastfm.Api
	authenticated bool
}

// New creates a new Last.fm client with the given API credentials.
func New(apiKey, apiSecret string) *Client {
	return &Client{
		api: lastfm.New(apiKey, apiSecret),
	}
}

// Login authenticates with username and password (mobile session flow).
func (c *Client) Login(username, password string) error {
	if err := c.api.Login(username, password); err != nil {
		return fmt.Errorf("last.fm login: %w", err)
	}
	c.authenticated = true
	return nil
}

// IsAuthenticated returns true if a session has been established.
func (c *Client) IsAuthenticated() bool {
	return c.authenticated
}

// NowPlaying sends a "now playing" notification to Last.fm.
func (c *Client) NowPlaying(track tracklist.Track) error {
	if !c.authenticated {
		return ErrNotAuthenticated
	}

	params := lastfm.P{
		"artist": CleanArtist(track.Artist),
		"track":  track.Title,
	}
	if track.Album != "" {
		params["album"] = track.Album
	}
	if track.DurationSeconds > 0 {
		params["duration"] = track.DurationSeconds
	}

	_, err := c.api.Track.UpdateNowPlaying(params)
	if err != nil {
		return fmt.Errorf("update now playing: %w", err)
	}
	return nil
}

// Scrobble submits a track play to Last.fm, timestamped at when the play
// began.
func (c *Client) Scrobble(track tracklist.Track, startedAt time.Time) error {
	return c.ScrobbleAt(CleanArtist(track.Artist), track.Title, track.Album,
		track.DurationSeconds, startedAt)
}

// ScrobbleAt submits a single play from raw fields. Used to flush plays that
// failed to submit the first time, where only the recorded fields remain.
func (c *Client) ScrobbleAt(artist, title, album string, durationSeconds int, startedAt time.Time) error {
	if !c.authenticated {
		return ErrNotAuthenticated
	}

	params := lastfm.P{
		"artist":    artist,
		"track":     title,
		"timestamp": startedAt.Unix(),
	}
	if album != "" {
		params["album"] = album
	}
	if durationSeconds > 0 {
		params["duration"] = durationSeconds
	}

	_, err := c.api.Track.Scrobble(params)
	if err != nil {
		return fmt.Errorf("scrobble: %w", err)
	}
	return nil
}

// TrackDuration looks up a track's duration on Last.fm. Returns 0 when
// Last.fm doesn't know it either.
func (c *Client) TrackDuration(artist, title string) (int, error) {
	params := lastfm.P{
		"artist": CleanArtist(artist),
		"track":  title,
	}

	info, err := c.api.Track.GetInfo(params)
	if err != nil {
		return 0, fmt.Errorf("track info: %w", err)
	}

	// Last.fm reports duration in milliseconds.
	ms, err := strconv.Atoi(info.Duration)
	if err != nil || ms <= 0 {
		return 0, nil
	}
	return ms / 1000, nil
}

// FillDurations looks up missing durations on Last.fm, leaving tracks that
// already have one untouched. Lookup failures leave the duration unknown;
// playback copes with that.
func (c *Client) FillDurations(tracks []tracklist.Track) []tracklist.Track {
	out := make([]tracklist.Track, len(tracks))
	copy(out, tracks)
	for i := range out {
		if out[i].HasDuration() {
			continue
		}
		seconds, err := c.TrackDuration(out[i].Artist, out[i].Title)
		if err != nil || seconds <= 0 {
			continue
		}
		out[i].DurationSeconds = seconds
	}
	return out
}
