// Package config loads application settings from TOML config files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	// Desktop notifications on track change (default: on)
	Notifications *bool `koanf:"notifications"`

	// Last.fm scrobbling (enables scrobbling when configured)
	Lastfm LastfmConfig `koanf:"lastfm"`

	// Discogs release loading
	Discogs DiscogsConfig `koanf:"discogs"`
}

// LastfmConfig holds Last.fm scrobbling configuration.
type LastfmConfig struct {
	APIKey    string `koanf:"api_key"`
	APISecret string `koanf:"api_secret"`
	Username  string `koanf:"username"`
	Password  string `koanf:"password"`
}

// DiscogsConfig holds Discogs API configuration.
type DiscogsConfig struct {
	Token string `koanf:"token"` // personal access token, optional
}

func Load() (*Config, error) {
	return loadFrom(getConfigPaths())
}

func loadFrom(configPaths []string) (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/platter/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "platter", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

// HasLastfm returns true if Last.fm scrobbling is configured.
func (c *Config) HasLastfm() bool {
	return c.Lastfm.APIKey != "" && c.Lastfm.APISecret != "" &&
		c.Lastfm.Username != "" && c.Lastfm.Password != ""
}

// HasDiscogs returns true if a Discogs token is configured.
func (c *Config) HasDiscogs() bool {
	return c.Discogs.Token != ""
}

// ShowNotifications returns whether desktop notifications are enabled.
func (c *Config) ShowNotifications() bool {
	if c.Notifications == nil {
		return true
	}
	return *c.Notifications
}

const defaultConfig = `# Platter configuration

# Desktop notifications on track change
notifications = true

[lastfm]
# Credentials from https://www.last.fm/api/account/create
api_key = ""
api_secret = ""
username = ""
password = ""

[discogs]
# Personal access token from https://www.discogs.com/settings/developers
token = ""
`

// WriteDefault writes a commented default config to the user config path if
// none exists yet. Returns the path it wrote (or found).
func WriteDefault() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(home, ".config", "platter", "config.toml")

	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o600); err != nil {
		return "", fmt.Errorf("write default config: %w", err)
	}
	return path, nil
}
