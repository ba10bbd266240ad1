package resampler

import (
	"testing"

	"github.com/ontley/amuseing/pkg/ring"
)

func TestBypassWhenRatesMatch(t *testing.T) {
	r, err := New(44100, 44100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !r.Bypass() {
		t.Fatal("expected bypass when rates match")
	}
}

func TestBypassPassesFramesThrough(t *testing.T) {
	r, err := New(44100, 44100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	in := []ring.Frame{{L: 0.5, R: -0.5}, {L: 0.25, R: -0.25}}
	out, err := r.Process(in)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], in[i])
		}
	}
}

func TestNonBypassConstructsResampler(t *testing.T) {
	r, err := New(22050, 44100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r.Bypass() {
		t.Fatal("expected non-bypass for differing rates")
	}
	if r.soxr == nil {
		t.Fatal("expected soxr resampler to be constructed")
	}
}

func TestFloatInt16RoundTrip(t *testing.T) {
	for _, v := range []float64{0, 0.5, -0.5, 1, -1} {
		got := int16ToFloat(int16(floatToInt16(v)))
		if diff := got - v; diff > 0.001 || diff < -0.001 {
			t.Fatalf("round trip %v -> %v, diff too large", v, got)
		}
	}
}
