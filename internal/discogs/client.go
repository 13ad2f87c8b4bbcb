// Package discogs provides access to the Discogs API for loading vinyl
// release tracklists.
package discogs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/llehouerou/platter/internal/tracklist"
)

const (
	baseURL      = "https://api.discogs.com"
	userAgent    = "Platter/0.1 (https://github.com/llehouerou/platter)"
	rateLimitDur = time.Second // Discogs allows 60 requests per minute

	// Retry configuration
	maxRetries   = 3
	initialDelay = 2 * time.Second
	maxDelay     = 30 * time.Second
)

// ErrNotFound is returned when the requested release does not exist.
var ErrNotFound = errors.New("release not found")

// Client provides access to the Discogs API.
type Client struct {
	httpClient  *http.Client
	token       string
	lastRequest time.Time
	mu          sync.Mutex
}

// NewClient creates a new Discogs API client. token is a personal access
// token; the release endpoint works without one at a lower rate limit.
func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		token:      token,
	}
}

// Release fetches a release and its tracklist by Discogs release ID.
func (c *Client) Release(id int) (*Release, error) {
	c.waitForRateLimit()

	reqURL := fmt.Sprintf("%s/releases/%d", baseURL, id)
	resp, err := c.get(reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API status %d: %s", resp.StatusCode, string(body))
	}

	var result releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return convertRelease(&result), nil
}

// SearchReleases searches the Discogs database for releases matching the
// query. Requires a token.
func (c *Client) SearchReleases(query string) ([]SearchResult, error) {
	if c.token == "" {
		return nil, errors.New("search requires a Discogs token")
	}
	c.waitForRateLimit()

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "release")
	params.Set("per_page", "25")

	reqURL := fmt.Sprintf("%s/database/search?%s", baseURL, params.Encode())
	resp, err := c.get(reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API status %d: %s", resp.StatusCode, string(body))
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return convertSearchResults(result.Results), nil
}

func (c *Client) get(reqURL string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Discogs token="+c.token)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}

// waitForRateLimit ensures we don't exceed Discogs rate limits.
func (c *Client) waitForRateLimit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := time.Since(c.lastRequest)
	if elapsed < rateLimitDur {
		time.Sleep(rateLimitDur - elapsed)
	}
	c.lastRequest = time.Now()
}

// doRequestWithRetry executes an HTTP request with exponential backoff retry.
// Retries on 5xx errors and network errors.
func (c *Client) doRequestWithRetry(req *http.Request) (*http.Response, error) {
	var lastErr error
	delay := initialDelay

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(delay)
			delay = min(delay*2, maxDelay)
			c.waitForRateLimit() // Re-apply rate limit after retry delay
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		// Success or client error (4xx) - don't retry
		if resp.StatusCode < 500 {
			return resp, nil
		}

		// Server error (5xx) - retry
		resp.Body.Close()
		lastErr = fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", maxRetries+1, lastErr)
}

// convertRelease converts a raw release response, flattening the tracklist
// for playback. Index headings ("Side A" separators) carry no position and
// are skipped.
func convertRelease(r *releaseResponse) *Release {
	release := &Release{
		ID:         r.ID,
		Title:      r.Title,
		Artist:     extractArtist(r.Artists),
		Year:       r.Year,
		ArtworkURL: extractArtwork(r.Images),
	}

	for _, t := range r.Tracklist {
		if t.Position == "" || (t.Type != "" && t.Type != "track") {
			continue
		}
		artist := release.Artist
		if len(t.Artists) > 0 {
			artist = extractArtist(t.Artists)
		}
		release.Tracks = append(release.Tracks, tracklist.Track{
			Position:        t.Position,
			Title:           t.Title,
			Artist:          artist,
			Album:           r.Title,
			DurationSeconds: tracklist.ParseDuration(t.Duration),
			ArtworkURL:      release.ArtworkURL,
		})
	}

	return release
}

func convertSearchResults(results []searchResult) []SearchResult {
	out := make([]SearchResult, 0, len(results))
	for _, r := range results {
		out = append(out, SearchResult{
			ID:         r.ID,
			Title:      r.Title,
			Year:       r.Year,
			Format:     strings.Join(r.Format, ", "),
			CoverImage: r.CoverImage,
		})
	}
	return out
}

// extractArtist joins artist credits using Discogs join phrases.
func extractArtist(credits []artistResult) string {
	if len(credits) == 0 {
		return ""
	}

	var b strings.Builder
	for i, c := range credits {
		b.WriteString(c.Name)
		if i < len(credits)-1 {
			join := c.Join
			if join == "" || join == "," {
				b.WriteString(", ")
			} else {
				b.WriteString(" " + join + " ")
			}
		}
	}
	return b.String()
}

// extractArtwork picks the primary image, falling back to the first.
func extractArtwork(images []imageResult) string {
	for _, img := range images {
		if img.Type == "primary" {
			return img.URI
		}
	}
	if len(images) > 0 {
		return images[0].URI
	}
	return ""
}
