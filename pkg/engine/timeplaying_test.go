package engine

import "testing"

func TestTimePlayingSetAndRead(t *testing.T) {
	var tp TimePlaying
	tp.SetMillis(1500)
	if tp.Millis() != 1500 {
		t.Fatalf("Millis() = %d, want 1500", tp.Millis())
	}
	if tp.AsSecondsF64() != 1.5 {
		t.Fatalf("AsSecondsF64() = %v, want 1.5", tp.AsSecondsF64())
	}
}

func TestTimePlayingZeroValue(t *testing.T) {
	var tp TimePlaying
	if tp.Millis() != 0 {
		t.Fatalf("Millis() = %d, want 0", tp.Millis())
	}
}
