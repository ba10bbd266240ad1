package engine

import "testing"

func TestNewPlayerStartsNotStarted(t *testing.T) {
	p := New(0.5, 0, 512)
	if p.State() != NotStarted {
		t.Fatalf("State() = %v, want NotStarted", p.State())
	}
	if p.IsRunning() {
		t.Fatal("IsRunning() = true before Run")
	}
	if p.IsPaused() {
		t.Fatal("IsPaused() = true before Run")
	}
}

func TestCommandsNoOpBeforeRun(t *testing.T) {
	p := New(0.5, 0, 512)
	if p.Stop() {
		t.Fatal("Stop() = true before Run, want false")
	}
	if p.Quit() {
		t.Fatal("Quit() = true before Run, want false")
	}
}

func TestSeekDurationWithNoCurrentSong(t *testing.T) {
	p := New(0.5, 0, 512)
	if _, err := p.SeekDuration(0); err != ErrNoCurrentSong {
		t.Fatalf("err = %v, want ErrNoCurrentSong", err)
	}
}

func TestPauseResumeUpdateStateDirectly(t *testing.T) {
	p := New(0.5, 0, 512)
	p.state.Store(int32(Playing))

	p.Pause()
	if !p.IsPaused() {
		t.Fatal("IsPaused() = false after Pause()")
	}

	p.Resume()
	if p.State() != Playing {
		t.Fatalf("State() = %v after Resume(), want Playing", p.State())
	}
}

func TestCurrentSampleRateZeroBeforeRun(t *testing.T) {
	p := New(0.5, 0, 512)
	if rate := p.CurrentSampleRate(); rate != 0 {
		t.Fatalf("CurrentSampleRate() = %d before Run, want 0", rate)
	}
}

func TestVolumeRoundTrip(t *testing.T) {
	p := New(0.25, 0, 512)
	if p.Volume().Percent() != 0.25 {
		t.Fatalf("Percent() = %v, want 0.25", p.Volume().Percent())
	}
	p.SetVolume(0.75)
	if p.Volume().Percent() != 0.75 {
		t.Fatalf("Percent() = %v after SetVolume, want 0.75", p.Volume().Percent())
	}
}
