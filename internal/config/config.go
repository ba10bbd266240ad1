// Package config loads and persists the player's on-disk settings:
// buffer size, volume, and the saved playlists. The file lives at
// platform.ConfigDir()/config.toml and is seeded with a default
// playlist pointing at the OS's Music folder the first time it is
// read.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ontley/amuseing/internal/platform"
	"github.com/ontley/amuseing/pkg/song"
)

const (
	defaultBufferSize = 2048
	defaultVolume     = 0.5
)

// PlaylistEntry is one saved playlist: a name, the directory it scans,
// and an optional icon shown for it in the UI.
type PlaylistEntry struct {
	Name     string `mapstructure:"name"`
	Path     string `mapstructure:"path"`
	IconPath string `mapstructure:"icon-path"`
}

// Config is the player's persisted settings.
type Config struct {
	BufferSize int             `mapstructure:"buffer-size"`
	Volume     float64         `mapstructure:"volume"`
	Playlists  []PlaylistEntry `mapstructure:"playlist"`

	path string
}

// SongPlaylists turns the saved entries into song.Playlist values
// ready to enumerate.
func (c *Config) SongPlaylists() []song.Playlist {
	out := make([]song.Playlist, len(c.Playlists))
	for i, p := range c.Playlists {
		out[i] = song.Playlist{Name: p.Name, Dir: p.Path, IconPath: p.IconPath}
	}
	return out
}

// Load reads config.toml from the platform config directory, seeding a
// default file (buffer size 2048, volume 0.5, one playlist named
// "Music" pointing at the OS music folder) when no file exists yet.
// The Music entry is silently omitted if the folder itself can't be
// resolved or doesn't exist, matching a fresh install with no music
// folder at all.
func Load() (*Config, error) {
	dir, err := platform.ConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	path := filepath.Join(dir, "config.toml")

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetDefault("buffer-size", defaultBufferSize)
	v.SetDefault("volume", defaultVolume)

	cfg := &Config{path: path}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg.BufferSize = defaultBufferSize
		cfg.Volume = defaultVolume
		cfg.Playlists = defaultPlaylists()
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("write default config: %w", err)
		}
		return cfg, nil
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.path = path

	return cfg, nil
}

// defaultPlaylists seeds a single "Music" playlist at the OS music
// folder, or none at all if that folder can't be resolved or doesn't
// exist — a fresh install on an unfamiliar OS still starts cleanly.
func defaultPlaylists() []PlaylistEntry {
	dir, err := platform.MusicDir()
	if err != nil {
		return nil
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil
	}
	return []PlaylistEntry{{Name: "Music", Path: dir}}
}

// Save writes the config back to its on-disk path in TOML, pretty
// enough for a human to edit by hand, matching the original's
// write-whole-file-on-every-change model.
func (c *Config) Save() error {
	v := viper.New()
	v.SetConfigType("toml")
	v.Set("buffer-size", c.BufferSize)
	v.Set("volume", c.Volume)
	v.Set("playlist", c.Playlists)
	return v.WriteConfigAs(c.path)
}
