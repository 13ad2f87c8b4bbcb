// Package recognize resolves "what record is spinning" into Discogs release
// candidates. Identification itself is pluggable: anything that can name a
// playing track (an external recognition service, a barcode scan, the user
// typing it in) satisfies Matcher.
package recognize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/llehouerou/platter/internal/discogs"
)

// ErrNoMatch is returned when identification found nothing.
var ErrNoMatch = errors.New("no match")

// Match is an identified recording.
type Match struct {
	Title  string
	Artist string
	Album  string
}

// Matcher identifies the currently playing recording.
type Matcher interface {
	Identify(ctx context.Context) (Match, error)
}

// Manual returns a Matcher for an identification the user typed themselves.
func Manual(artist, title, album string) Matcher {
	return manualMatcher{Match{Title: title, Artist: artist, Album: album}}
}

type manualMatcher struct {
	match Match
}

func (m manualMatcher) Identify(context.Context) (Match, error) {
	return m.match, nil
}

// ReleaseSearcher finds releases matching a free-text query.
type ReleaseSearcher interface {
	SearchReleases(query string) ([]discogs.SearchResult, error)
}

// Resolver turns an identification into release candidates.
type Resolver struct {
	matcher  Matcher
	searcher ReleaseSearcher
}

// NewResolver creates a resolver over the given matcher and searcher.
func NewResolver(matcher Matcher, searcher ReleaseSearcher) *Resolver {
	return &Resolver{matcher: matcher, searcher: searcher}
}

// Resolve identifies the playing recording and searches for releases that
// could contain it. The album query is tried first when the match names one;
// falling back to artist plus track title.
func (r *Resolver) Resolve(ctx context.Context) (Match, []discogs.SearchResult, error) {
	match, err := r.matcher.Identify(ctx)
	if err != nil {
		return Match{}, nil, fmt.Errorf("identify: %w", err)
	}
	if match.Title == "" && match.Album == "" {
		return Match{}, nil, ErrNoMatch
	}

	if match.Album != "" {
		results, err := r.searcher.SearchReleases(query(match.Artist, match.Album))
		if err != nil {
			return match, nil, fmt.Errorf("search releases: %w", err)
		}
		if len(results) > 0 {
			return match, results, nil
		}
	}

	results, err := r.searcher.SearchReleases(query(match.Artist, match.Title))
	if err != nil {
		return match, nil, fmt.Errorf("search releases: %w", err)
	}
	return match, results, nil
}

func query(parts ...string) string {
	return strings.TrimSpace(strings.Join(parts, " "))
}
