package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSeedsDefaultsOnFirstRun(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_MUSIC_DIR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BufferSize != defaultBufferSize {
		t.Fatalf("BufferSize = %d, want %d", cfg.BufferSize, defaultBufferSize)
	}
	if cfg.Volume != defaultVolume {
		t.Fatalf("Volume = %v, want %v", cfg.Volume, defaultVolume)
	}

	path := filepath.Join(dir, "amuseing", "config.toml")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be written at %s: %v", path, err)
	}
}

func TestLoadRoundTripsSavedValues(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.BufferSize = 4096
	cfg.Volume = 0.75
	cfg.Playlists = []PlaylistEntry{{Name: "test", Path: "/tmp/music"}}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := Load()
	if err != nil {
		t.Fatalf("Load after save: %v", err)
	}
	if reloaded.BufferSize != 4096 {
		t.Fatalf("BufferSize = %d, want 4096", reloaded.BufferSize)
	}
	if reloaded.Volume != 0.75 {
		t.Fatalf("Volume = %v, want 0.75", reloaded.Volume)
	}
	if len(reloaded.Playlists) != 1 || reloaded.Playlists[0].Name != "test" {
		t.Fatalf("Playlists = %+v, want one entry named test", reloaded.Playlists)
	}
}
