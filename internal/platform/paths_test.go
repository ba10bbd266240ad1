package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestConfigDirHonorsXDGOverride(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG override only applies on non-Windows")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdgcfg")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir: %v", err)
	}
	want := filepath.Join("/tmp/xdgcfg", appName)
	if dir != want {
		t.Fatalf("ConfigDir = %q, want %q", dir, want)
	}
}

func TestConfigDirFallsBackToHome(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("HOME fallback only applies on non-Windows")
	}
	t.Setenv("XDG_CONFIG_HOME", "")
	home, _ := os.UserHomeDir()
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir: %v", err)
	}
	want := filepath.Join(home, ".config", appName)
	if dir != want {
		t.Fatalf("ConfigDir = %q, want %q", dir, want)
	}
}

func TestMusicDirHonorsXDGOverride(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG override only applies on non-Windows")
	}
	t.Setenv("XDG_MUSIC_DIR", "/tmp/tunes")
	dir, err := MusicDir()
	if err != nil {
		t.Fatalf("MusicDir: %v", err)
	}
	if dir != "/tmp/tunes" {
		t.Fatalf("MusicDir = %q, want /tmp/tunes", dir)
	}
}
