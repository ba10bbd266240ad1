// Package platform resolves the per-OS directories the player's config
// file and default playlist live under.
package platform

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "amuseing"

// ConfigDir returns the directory the config file is read from and
// written to: %APPDATA%\amuseing on Windows, $XDG_CONFIG_HOME/amuseing
// (falling back to $HOME/.config/amuseing) elsewhere.
func ConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "AppData", "Roaming", appName), nil
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// MusicDir returns the directory seeded as the default "Music"
// playlist on first run: %USERPROFILE%\Music on Windows,
// $XDG_MUSIC_DIR (falling back to $HOME/Music) elsewhere.
func MusicDir() (string, error) {
	if runtime.GOOS == "windows" {
		if profile := os.Getenv("USERPROFILE"); profile != "" {
			return filepath.Join(profile, "Music"), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Music"), nil
	}

	if xdgMusic := os.Getenv("XDG_MUSIC_DIR"); xdgMusic != "" {
		return xdgMusic, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Music"), nil
}
