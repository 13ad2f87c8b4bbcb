package discogs

import "github.com/llehouerou/platter/internal/tracklist"

// Release is a Discogs release with its tracklist converted for playback.
type Release struct {
	ID         int
	Title      string
	Artist     string
	Year       int
	ArtworkURL string
	Tracks     []tracklist.Track
}

// SearchResult is one entry from a release search.
type SearchResult struct {
	ID         int
	Title      string // Discogs formats this as "Artist - Title"
	Year       string
	Format     string
	CoverImage string
}

// Raw API response types below. Discogs uses "type_" for track entries
// because "type" collides with their index type field.

type releaseResponse struct {
	ID        int            `json:"id"`
	Title     string         `json:"title"`
	Year      int            `json:"year"`
	Artists   []artistResult `json:"artists"`
	Images    []imageResult  `json:"images"`
	Tracklist []trackResult  `json:"tracklist"`
}

type artistResult struct {
	Name string `json:"name"`
	Join string `json:"join"`
}

type imageResult struct {
	Type string `json:"type"`
	URI  string `json:"uri"`
}

type trackResult struct {
	Position string         `json:"position"`
	Type     string         `json:"type_"`
	Title    string         `json:"title"`
	Duration string         `json:"duration"`
	Artists  []artistResult `json:"artists"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	Year       string   `json:"year"`
	Format     []string `json:"format"`
	CoverImage string   `json:"cover_image"`
}
