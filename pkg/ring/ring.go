// Package ring implements a lock-free single-producer/single-consumer
// ring buffer of stereo sample frames — the handoff between the decoder
// goroutine and the realtime audio callback.
package ring

import (
	"sync/atomic"

	"github.com/ontley/amuseing/pkg/types"
)

// Re-export the common ring errors for callers that compare with errors.Is.
var (
	ErrInsufficientSpace = types.ErrInsufficientSpace
	ErrInsufficientData  = types.ErrInsufficientData
)

// Frame is one stereo sample pair.
type Frame struct {
	L, R float64
}

// Ring is a lock-free SPSC ring buffer of Frame.
//
// Thread safety:
//   - Write must only be called by the producer (the decoder goroutine).
//   - Read must only be called by the consumer (the audio callback).
//
// Capacity is rounded up to the next power of 2 for a cheap modulo via
// bitmask. Frame has no pointer or slice fields, so — unlike the
// byte-payload frame ring this is adapted from — a plain element
// assignment already is a full, independent copy; no deep-copy step is
// needed on write.
type Ring struct {
	buffer   []Frame
	size     uint64
	mask     uint64
	writePos atomic.Uint64
	readPos  atomic.Uint64
}

// New creates a Ring with the given capacity in frames, rounded up to
// the next power of 2.
func New(capacity uint64) *Ring {
	capacity = nextPowerOf2(capacity)
	return &Ring{
		buffer: make([]Frame, capacity),
		size:   capacity,
		mask:   capacity - 1,
	}
}

// Write copies as many frames as fit and returns the count written.
// Producer-only.
func (r *Ring) Write(frames []Frame) (int, error) {
	n := uint64(len(frames))
	if n == 0 {
		return 0, nil
	}

	available := r.AvailableWrite()
	toWrite := min(n, available)
	if toWrite == 0 {
		return 0, ErrInsufficientSpace
	}

	writePos := r.writePos.Load()
	for i := uint64(0); i < toWrite; i++ {
		r.buffer[(writePos+i)&r.mask] = frames[i]
	}
	r.writePos.Store(writePos + toWrite)

	return int(toWrite), nil
}

// Read copies up to numFrames from the ring into a freshly allocated
// slice. Consumer-only.
func (r *Ring) Read(numFrames int) ([]Frame, error) {
	if numFrames <= 0 {
		return nil, nil
	}

	available := r.AvailableRead()
	if available == 0 {
		return nil, ErrInsufficientData
	}

	toRead := min(uint64(numFrames), available)
	readPos := r.readPos.Load()
	out := make([]Frame, toRead)
	for i := uint64(0); i < toRead; i++ {
		out[i] = r.buffer[(readPos+i)&r.mask]
	}
	r.readPos.Store(readPos + toRead)

	return out, nil
}

// AvailableWrite returns the number of frames free for writing.
func (r *Ring) AvailableWrite() uint64 {
	return r.size - (r.writePos.Load() - r.readPos.Load())
}

// AvailableRead returns the number of frames available for reading.
func (r *Ring) AvailableRead() uint64 {
	return r.writePos.Load() - r.readPos.Load()
}

// Size returns the ring's capacity in frames.
func (r *Ring) Size() uint64 {
	return r.size
}

// Reset rewinds both cursors to 0 without touching buffer contents.
// Used when rebuilding the stream after a device error.
func (r *Ring) Reset() {
	r.readPos.Store(0)
	r.writePos.Store(0)
}

func nextPowerOf2(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	n++
	return n
}
