// Package ui implements the terminal interface: the loaded tracklist, a
// progress bar tracking the needle, and prompts for loading releases.
package ui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/platter/internal/config"
	"github.com/llehouerou/platter/internal/discogs"
	"github.com/llehouerou/platter/internal/notify"
	"github.com/llehouerou/platter/internal/playback"
	"github.com/llehouerou/platter/internal/recognize"
	"github.com/llehouerou/platter/internal/state"
	"github.com/llehouerou/platter/internal/tracklist"
)

// releaseLoader fetches a release by Discogs ID.
type releaseLoader interface {
	Release(id int) (*discogs.Release, error)
}

// durationFiller fills missing track durations from an external source.
type durationFiller interface {
	FillDurations([]tracklist.Track) []tracklist.Track
}

// pendingFlusher submits stored plays that failed to scrobble.
type pendingFlusher interface {
	ScrobbleAt(artist, title, album string, durationSeconds int, startedAt time.Time) error
}

// releaseSearcher finds release candidates for a free-text query.
type releaseSearcher = recognize.ReleaseSearcher

// Model is the top-level bubbletea model.
type Model struct {
	engine   *playback.Engine
	sub      *playback.Subscription
	store    *state.Manager
	loader   releaseLoader
	searcher releaseSearcher
	filler   durationFiller
	flusher  pendingFlusher
	desktop  notify.Notifier
	cfg      *config.Config
	log      *slog.Logger

	width  int
	height int

	release *discogs.Release
	tracks  []tracklist.Track
	cursor  int

	playing  bool
	elapsed  int
	duration int

	prompt    textinput.Model
	prompting bool

	showHistory bool
	history     []state.Play

	status       string
	lastNotifyID uint32
}

// Options carries the optional collaborators; any of them may be nil and the
// corresponding feature degrades.
type Options struct {
	Store    *state.Manager
	Loader   releaseLoader
	Searcher releaseSearcher
	Filler   durationFiller
	Flusher  pendingFlusher
	Desktop  notify.Notifier
}

// New creates the UI over an engine and its event subscription.
func New(engine *playback.Engine, cfg *config.Config, log *slog.Logger, opts Options) Model {
	prompt := textinput.New()
	prompt.Placeholder = "Discogs release ID, URL, or artist and title"
	prompt.CharLimit = 200

	return Model{
		engine:   engine,
		sub:      engine.Subscribe(),
		store:    opts.Store,
		loader:   opts.Loader,
		searcher: opts.Searcher,
		filler:   opts.Filler,
		flusher:  opts.Flusher,
		desktop:  opts.Desktop,
		cfg:      cfg,
		log:      log,
		tracks:   engine.Tracks(),
		cursor:   max(engine.CurrentIndex(), 0),
		prompt:   prompt,
	}
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.sub)
}
