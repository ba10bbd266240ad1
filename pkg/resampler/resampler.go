// Package resampler adapts zaf/resample's push-style, io.Writer-based
// SoX resampler to the pull/chunk contract the decoder loop needs: feed
// it whatever frames were just decoded, get back whatever frames are
// ready to hand to the ring, with no goroutine or blocking of its own.
package resampler

import (
	"encoding/binary"
	"fmt"
	"math"

	soxr "github.com/zaf/resample"

	"github.com/ontley/amuseing/pkg/ring"
	"github.com/ontley/amuseing/pkg/ringbuffer"
)

const stagingCapacity = 64 * 1024 // bytes; several callback periods' worth at typical rates

// Resampler converts a stream of stereo Frame values from one sample
// rate to another using libsoxr's variable-rate resampler. When the
// input and output rates match, Process returns a straight copy of its
// input.
type Resampler struct {
	inRate, outRate int
	bypass          bool

	soxr    *soxr.Resampler
	staging *ringbuffer.RingBuffer

	inBuf  []byte // scratch for interleaved int16 input
	outBuf []byte // scratch for reading staged int16 output
}

// New builds a Resampler converting inRate -> outRate for stereo 16-bit
// PCM. If the rates are equal, the returned Resampler is a passthrough
// and never touches soxr.
func New(inRate, outRate int) (*Resampler, error) {
	r := &Resampler{
		inRate:  inRate,
		outRate: outRate,
		bypass:  inRate == outRate,
		staging: ringbuffer.New(stagingCapacity),
	}
	if r.bypass {
		return r, nil
	}

	sx, err := soxr.New(
		r.staging,
		float64(inRate),
		float64(outRate),
		2, // stereo
		soxr.I16,
		soxr.HighQ,
	)
	if err != nil {
		return nil, fmt.Errorf("create resampler %d->%d: %w", inRate, outRate, err)
	}
	r.soxr = sx
	return r, nil
}

// Bypass reports whether this Resampler is a passthrough.
func (r *Resampler) Bypass() bool {
	return r.bypass
}

// Process converts in into the equivalent frames at the output rate.
// Every call to Write flushes synchronously into the staging buffer, so
// the returned slice is always the complete output for this input
// batch; there is no internal backlog carried between calls beyond what
// soxr itself buffers for interpolation continuity.
func (r *Resampler) Process(in []ring.Frame) ([]ring.Frame, error) {
	if len(in) == 0 {
		return nil, nil
	}
	if r.bypass {
		out := make([]ring.Frame, len(in))
		copy(out, in)
		return out, nil
	}

	need := len(in) * 4 // 2 channels * 2 bytes
	if cap(r.inBuf) < need {
		r.inBuf = make([]byte, need)
	}
	buf := r.inBuf[:need]
	for i, f := range in {
		binary.LittleEndian.PutUint16(buf[i*4:], floatToInt16(f.L))
		binary.LittleEndian.PutUint16(buf[i*4+2:], floatToInt16(f.R))
	}

	if _, err := r.soxr.Write(buf); err != nil {
		return nil, fmt.Errorf("resample write: %w", err)
	}

	return r.drainStaging()
}

// Close flushes any remaining samples held inside libsoxr's internal
// state and releases it. Call once per song, after the last Process.
func (r *Resampler) Close() ([]ring.Frame, error) {
	if r.bypass || r.soxr == nil {
		return nil, nil
	}
	if err := r.soxr.Close(); err != nil {
		return nil, fmt.Errorf("close resampler: %w", err)
	}
	return r.drainStaging()
}

func (r *Resampler) drainStaging() ([]ring.Frame, error) {
	available := r.staging.AvailableRead()
	if available == 0 {
		return nil, nil
	}
	// Drop a trailing odd half-frame; it will be completed and emitted
	// on the next Process call once its other channel's sample arrives.
	usable := available - (available % 4)
	if usable == 0 {
		return nil, nil
	}

	if uint64(cap(r.outBuf)) < usable {
		r.outBuf = make([]byte, usable)
	}
	buf := r.outBuf[:usable]
	n, err := r.staging.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("drain resampler staging buffer: %w", err)
	}
	buf = buf[:n]

	frames := make([]ring.Frame, n/4)
	for i := range frames {
		l := int16(binary.LittleEndian.Uint16(buf[i*4:]))
		rr := int16(binary.LittleEndian.Uint16(buf[i*4+2:]))
		frames[i] = ring.Frame{L: int16ToFloat(l), R: int16ToFloat(rr)}
	}
	return frames, nil
}

func floatToInt16(v float64) uint16 {
	v = math.Max(-1, math.Min(1, v))
	return uint16(int16(v * math.MaxInt16))
}

func int16ToFloat(v int16) float64 {
	return float64(v) / math.MaxInt16
}
