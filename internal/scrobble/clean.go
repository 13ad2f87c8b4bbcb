package scrobble

import "regexp"

// Discogs disambiguates artists sharing a name with a numeric suffix, e.g.
// "Santana (2)". Last.fm wants the plain name.
var artistSuffixRe = regexp.MustCompile(`\s*\(\d+\)\s*$`)

// CleanArtist strips the Discogs disambiguation suffix from an artist name.
func CleanArtist(name string) string {
	return artistSuffixRe.ReplaceAllString(name, "")
}
