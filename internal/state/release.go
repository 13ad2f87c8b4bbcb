package state

import (
	"database/sql"
	"time"
)

// LastRelease remembers the release loaded in the previous session.
type LastRelease struct {
	DiscogsID int
	Title     string
	Artist    string
	LoadedAt  time.Time
}

// SaveLastRelease stores the currently loaded release.
func (m *Manager) SaveLastRelease(r LastRelease) error {
	_, err := m.db.Exec(`
		INSERT INTO last_release (id, discogs_id, title, artist, loaded_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			discogs_id = excluded.discogs_id,
			title = excluded.title,
			artist = excluded.artist,
			loaded_at = excluded.loaded_at
	`, r.DiscogsID, r.Title, r.Artist, time.Now().Unix())
	return err
}

// LastRelease returns the release from the previous session, or nil if none
// was ever loaded.
func (m *Manager) LastRelease() (*LastRelease, error) {
	var r LastRelease
	var loadedAt int64

	err := m.db.QueryRow(`
		SELECT discogs_id, title, artist, loaded_at FROM last_release WHERE id = 1
	`).Scan(&r.DiscogsID, &r.Title, &r.Artist, &loadedAt)

	if err == sql.ErrNoRows {
		return nil, nil //nolint:nilnil // nil release means none stored, not an error
	}
	if err != nil {
		return nil, err
	}

	r.LoadedAt = time.Unix(loadedAt, 0)
	return &r, nil
}
