package song

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Playlist is a named, directory-backed collection of MP3 songs. It is
// not mutated by the engine; it only enumerates songs on demand.
type Playlist struct {
	Name     string
	Dir      string
	IconPath string
}

// Songs walks Dir (non-recursively, matching a simple folder-based
// playlist model) and returns a Song for every *.mp3 entry, using the
// filename stem as the title. Entries that fail to parse as MP3 are
// logged and skipped rather than aborting the whole scan.
func (p Playlist) Songs() []Song {
	entries, err := os.ReadDir(p.Dir)
	if err != nil {
		slog.Warn("failed to read playlist directory", "playlist", p.Name, "dir", p.Dir, "error", err)
		return nil
	}

	songs := make([]Song, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".mp3") {
			continue
		}

		path := filepath.Join(p.Dir, entry.Name())
		title := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))

		s, err := FromPath(title, path)
		if err != nil {
			slog.Warn("skipping unparsable song", "path", path, "error", err)
			continue
		}
		songs = append(songs, s)
	}

	return songs
}
