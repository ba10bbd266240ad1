package engine

import "sync/atomic"

// TimePlaying is a lock-free wrapper around the current song's playback
// position in milliseconds, written by the decoder goroutine and read
// by anything displaying progress.
type TimePlaying struct {
	millis atomic.Int64
}

// AsSecondsF64 returns the current position in seconds.
func (t *TimePlaying) AsSecondsF64() float64 {
	return float64(t.millis.Load()) / 1000
}

// Millis returns the current position in milliseconds.
func (t *TimePlaying) Millis() int64 {
	return t.millis.Load()
}

// SetMillis overwrites the current position.
func (t *TimePlaying) SetMillis(millis int64) {
	t.millis.Store(millis)
}
