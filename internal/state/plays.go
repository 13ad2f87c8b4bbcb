package state

import (
	"database/sql"
	"time"
)

// Play is one entry in the listening history.
type Play struct {
	ID              int64
	Artist          string
	Track           string
	Album           string
	DurationSeconds int
	PlayedAt        time.Time
}

// AddPlay records a successfully scrobbled play.
func (m *Manager) AddPlay(p Play) error {
	playedAt := p.PlayedAt
	if playedAt.IsZero() {
		playedAt = time.Now()
	}
	_, err := m.db.Exec(`
		INSERT INTO plays (artist, track, album, duration_seconds, played_at)
		VALUES (?, ?, ?, ?, ?)
	`, p.Artist, p.Track, p.Album, p.DurationSeconds, playedAt.Unix())
	return err
}

// RecentPlays returns the most recent plays, newest first.
func (m *Manager) RecentPlays(limit int) ([]Play, error) {
	rows, err := m.db.Query(`
		SELECT id, artist, track, album, duration_seconds, played_at
		FROM plays
		ORDER BY played_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plays []Play
	for rows.Next() {
		var p Play
		var album sql.NullString
		var playedAt int64

		if err := rows.Scan(&p.ID, &p.Artist, &p.Track, &album, &p.DurationSeconds, &playedAt); err != nil {
			return nil, err
		}
		p.Album = album.String
		p.PlayedAt = time.Unix(playedAt, 0)
		plays = append(plays, p)
	}

	return plays, rows.Err()
}
