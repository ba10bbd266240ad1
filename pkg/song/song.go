// Package song describes playable MP3 files and the folder-based
// playlists that enumerate them.
package song

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	gomp3 "github.com/imcarsen/go-mp3"
)

// Song is an immutable descriptor of a playable MP3 file. It never
// changes after construction; the queue is the only thing that holds
// or drops it.
type Song struct {
	ID       uint64
	Title    string
	Path     string
	Duration time.Duration
}

var nextID atomic.Uint64

// FromPath canonicalizes path, opens it once to compute its duration
// from the MP3's sample rate and decoded byte length (the Go analogue
// of time_base * frame_count), and returns an immutable Song. title is
// used as given; this decoder stack reads no container metadata, so
// Playlist.Songs passes the filename stem when nothing better is known.
func FromPath(title, path string) (Song, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Song{}, fmt.Errorf("canonicalize %s: %w", path, err)
	}

	file, err := os.Open(abs)
	if err != nil {
		return Song{}, fmt.Errorf("open %s: %w", abs, err)
	}
	defer file.Close()

	dec, err := gomp3.NewDecoder(file)
	if err != nil {
		return Song{}, fmt.Errorf("decode %s: %w", abs, err)
	}

	const bytesPerSample = 2 // 16-bit
	const channels = 2       // go-mp3 always decodes to stereo
	totalSamples := dec.Length() / (bytesPerSample * channels)
	duration := time.Duration(totalSamples) * time.Second / time.Duration(dec.SampleRate())

	return Song{
		ID:       nextID.Add(1),
		Title:    title,
		Path:     abs,
		Duration: duration,
	}, nil
}
