package volume

import "testing"

func TestSpecialCases(t *testing.T) {
	if m := FromPercent(0).Multiplier(); m != 0 {
		t.Fatalf("from_percent(0).multiplier() = %v, want 0", m)
	}
	if m := FromPercent(1).Multiplier(); m != 1 {
		t.Fatalf("from_percent(1).multiplier() = %v, want 1", m)
	}
}

func TestMonotoneIncreasing(t *testing.T) {
	prev := FromPercent(0).Multiplier()
	for i := 1; i <= 20; i++ {
		p := float64(i) / 20
		m := FromPercent(p).Multiplier()
		if m < prev {
			t.Fatalf("multiplier decreased at p=%v: %v < %v", p, m, prev)
		}
		prev = m
	}
}

func TestSetUpdatesBothFields(t *testing.T) {
	v := FromPercent(0.5)
	v.Set(0.75)
	if v.Percent() != 0.75 {
		t.Fatalf("percent = %v, want 0.75", v.Percent())
	}
	want := multiplierFor(0.75)
	if v.Multiplier() != want {
		t.Fatalf("multiplier = %v, want %v", v.Multiplier(), want)
	}
}

func TestFromPercentCheckedBounds(t *testing.T) {
	if _, err := FromPercentChecked(-0.1); err == nil {
		t.Fatal("expected error for negative percent")
	}
	if _, err := FromPercentChecked(1.1); err == nil {
		t.Fatal("expected error for percent > 1")
	}
	if _, err := FromPercentChecked(0.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
