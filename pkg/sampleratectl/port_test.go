package sampleratectl

import "testing"

func TestNewPortCarriesInitialRate(t *testing.T) {
	p := NewPort(44100)
	if p.Rate() != 44100 {
		t.Fatalf("Rate() = %d, want 44100", p.Rate())
	}
}

func TestPublishOverwrites(t *testing.T) {
	p := NewPort(44100)
	p.Publish(48000)
	if p.Rate() != 48000 {
		t.Fatalf("Rate() = %d, want 48000", p.Rate())
	}
}

func TestPollReportsChange(t *testing.T) {
	p := NewPort(44100)
	if rate, changed := p.Poll(44100); changed || rate != 44100 {
		t.Fatalf("Poll(44100) = %d, %v, want 44100, false", rate, changed)
	}
	p.Publish(48000)
	if rate, changed := p.Poll(44100); !changed || rate != 48000 {
		t.Fatalf("Poll(44100) = %d, %v, want 48000, true", rate, changed)
	}
}

func TestPublishIsLastWriteWins(t *testing.T) {
	p := NewPort(0)
	p.Publish(22050)
	p.Publish(44100)
	p.Publish(48000)
	if p.Rate() != 48000 {
		t.Fatalf("Rate() = %d, want 48000 (last write)", p.Rate())
	}
}
