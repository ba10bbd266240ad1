package engine

import "testing"

func TestBytesToFramesConvertsStereo16Bit(t *testing.T) {
	// L = 16384 (0.5 * 32768), R = -16384
	buf := []byte{0x00, 0x40, 0x00, 0xC0}
	frames := bytesToFrames(buf)
	if len(frames) != 1 {
		t.Fatalf("len(frames) = %d, want 1", len(frames))
	}
	if frames[0].L != 0.5 {
		t.Fatalf("L = %v, want 0.5", frames[0].L)
	}
	if frames[0].R != -0.5 {
		t.Fatalf("R = %v, want -0.5", frames[0].R)
	}
}

func TestBytesToFramesEmpty(t *testing.T) {
	if frames := bytesToFrames(nil); len(frames) != 0 {
		t.Fatalf("len(frames) = %d, want 0", len(frames))
	}
}

func TestMillisToBytesRoundTrip(t *testing.T) {
	rate := 44100
	millis := int64(1000)
	b := millisToBytes(millis, rate)
	if got := bytesToMillis(b, rate); got != millis {
		t.Fatalf("round trip = %d, want %d", got, millis)
	}
}

func TestBytesToMillisZeroRate(t *testing.T) {
	if got := bytesToMillis(1000, 0); got != 0 {
		t.Fatalf("bytesToMillis with zero rate = %d, want 0", got)
	}
}

func TestFramePeriodFallsBackOnZeroRate(t *testing.T) {
	p := framePeriod(deviceConfig{sampleRate: 0, framesPerBuffer: 512})
	if p <= 0 {
		t.Fatalf("framePeriod = %v, want positive fallback", p)
	}
}

func TestFramePeriodScalesWithBufferSize(t *testing.T) {
	small := framePeriod(deviceConfig{sampleRate: 44100, framesPerBuffer: 256})
	large := framePeriod(deviceConfig{sampleRate: 44100, framesPerBuffer: 1024})
	if large <= small {
		t.Fatalf("framePeriod(1024) = %v should exceed framePeriod(256) = %v", large, small)
	}
}

func TestBytesToFramesIgnoresTrailingPartialFrame(t *testing.T) {
	buf := []byte{0x00, 0x40, 0x00, 0xC0, 0x01, 0x02}
	frames := bytesToFrames(buf)
	if len(frames) != 1 {
		t.Fatalf("len(frames) = %d, want 1 (trailing partial bytes dropped)", len(frames))
	}
}
