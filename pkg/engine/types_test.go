package engine

import "testing"

func TestStateString(t *testing.T) {
	cases := map[State]string{
		NotStarted: "not started",
		Paused:     "paused",
		Playing:    "playing",
		Finished:   "finished",
		State(99):  "unknown",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Fatalf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}

func TestCommandVariantsImplementInterface(t *testing.T) {
	var cmds = []Command{CmdStop{}, CmdSeek{Millis: 1500}, CmdQuit{}}
	if len(cmds) != 3 {
		t.Fatal("expected all three command variants to satisfy Command")
	}
}

func TestUpdateVariantsImplementInterface(t *testing.T) {
	var updates = []Update{
		UpdateSongChange{Song: nil, Index: 0},
		UpdateDeviceDisconnect{},
		UpdateStateChange{State: Playing},
	}
	if len(updates) != 3 {
		t.Fatal("expected all three update variants to satisfy Update")
	}
}
