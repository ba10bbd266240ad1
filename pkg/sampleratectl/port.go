// Package sampleratectl carries the native sample rate of the song being
// decoded from the decoder goroutine (which learns it from each song's
// format) to readers outside it, such as Player.CurrentSampleRate,
// without a lock or a channel. The realtime audio callback does not
// read it: frames reach the callback already resampled to the device's
// output rate.
package sampleratectl

import "sync/atomic"

// Port is a last-write-wins single-value channel between one writer
// (the decoder goroutine, at the start of each song) and any number of
// readers. There is no queue:
// if the writer publishes twice before the reader polls, only the most
// recent rate survives, which is correct here since only the current
// rate is ever meaningful.
type Port struct {
	rate atomic.Uint32
}

// NewPort creates a Port already carrying initialRate.
func NewPort(initialRate uint32) *Port {
	p := &Port{}
	p.rate.Store(initialRate)
	return p
}

// Publish stores a new rate. Producer-only, safe to call from the
// decoder goroutine at any time.
func (p *Port) Publish(rate uint32) {
	p.rate.Store(rate)
}

// Rate returns the most recently published rate. Safe to call from the
// callback with no risk of blocking.
func (p *Port) Rate() uint32 {
	return p.rate.Load()
}

// Poll returns the current rate and whether it differs from lastSeen.
// Callers that only need to react to rate changes (rebuilding a
// resampler, say) use this instead of unconditionally comparing Rate().
func (p *Port) Poll(lastSeen uint32) (rate uint32, changed bool) {
	rate = p.rate.Load()
	return rate, rate != lastSeen
}
