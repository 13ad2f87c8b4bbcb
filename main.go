package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/platter/internal/config"
	"github.com/llehouerou/platter/internal/discogs"
	"github.com/llehouerou/platter/internal/logging"
	"github.com/llehouerou/platter/internal/notify"
	"github.com/llehouerou/platter/internal/playback"
	"github.com/llehouerou/platter/internal/scrobble"
	"github.com/llehouerou/platter/internal/state"
	"github.com/llehouerou/platter/internal/tracklist"
	"github.com/llehouerou/platter/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	// Seed a commented config on first run so users know what to fill in.
	if _, err := config.WriteDefault(); err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not write default config:", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logging.Open()
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}

	store, err := state.Open()
	if err != nil {
		return fmt.Errorf("open state db: %w", err)
	}
	defer store.Close()

	// Last.fm is optional: without credentials the app still tracks playback,
	// it just doesn't scrobble.
	var scrobbler *scrobble.Client
	if cfg.HasLastfm() {
		scrobbler = scrobble.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)
		if err := scrobbler.Login(cfg.Lastfm.Username, cfg.Lastfm.Password); err != nil {
			log.Error("last.fm login failed, scrobbling disabled", "err", err)
			scrobbler = nil
		}
	}

	// A nil *Client in a non-nil interface would pass the engine's nil check,
	// so only assign when the client exists.
	var notifier playback.Notifier
	if scrobbler != nil {
		notifier = scrobbler
	}

	engine := playback.New(tracklist.NewSession(), notifier, log)
	defer engine.Close()

	desktop, err := notify.New()
	if err != nil {
		log.Warn("desktop notifications unavailable", "err", err)
	}

	dc := discogs.NewClient(cfg.Discogs.Token)
	opts := ui.Options{
		Store:   store,
		Loader:  dc,
		Desktop: desktop,
	}
	// Free-text search needs an authenticated Discogs endpoint.
	if cfg.HasDiscogs() {
		opts.Searcher = dc
	}
	if scrobbler != nil {
		opts.Filler = scrobbler
		opts.Flusher = scrobbler
	}

	log.Info("platter starting",
		"lastfm", scrobbler != nil,
		"discogs_token", cfg.HasDiscogs())

	p := tea.NewProgram(ui.New(engine, cfg, log, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
