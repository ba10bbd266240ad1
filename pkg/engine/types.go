// Package engine runs the decoder goroutine and realtime audio
// callback that together make up playback: a Player facade the caller
// drives from the outside, a command protocol that crosses into the
// decoder goroutine, and a lock-free path (ring, volume) that crosses
// into the audio callback.
package engine

import "github.com/ontley/amuseing/pkg/song"

// State is the decoder goroutine's current playback state.
type State int

const (
	// NotStarted: Run has not been called yet.
	NotStarted State = iota
	Paused
	Playing
	Finished
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Paused:
		return "paused"
	case Playing:
		return "playing"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Command is sent from the Player facade to the decoder goroutine over
// a buffered channel. Commands are one-shot and FIFO; Pause/Resume are
// not commands, they're a level-triggered state the decoder polls
// every iteration (see Player.Pause/Resume).
type Command interface {
	isCommand()
}

// CmdStop stops the current song. If the queue has more songs, the
// decoder moves on to the next one; otherwise it finishes.
type CmdStop struct{}

// CmdSeek seeks the current song to an offset in milliseconds.
type CmdSeek struct{ Millis int64 }

// CmdQuit stops the decoder goroutine entirely.
type CmdQuit struct{}

func (CmdStop) isCommand() {}
func (CmdSeek) isCommand() {}
func (CmdQuit) isCommand() {}

// Update is sent from the decoder goroutine out to whatever is
// listening (a UI, a CLI status line) as playback progresses.
type Update interface {
	isUpdate()
}

// UpdateSongChange fires whenever the queue's cursor moves to a new
// song, successful or not — Song is nil when the queue is exhausted.
type UpdateSongChange struct {
	Song  *song.Song
	Index int
}

// UpdateDeviceDisconnect fires whenever the decoder rebuilds the
// output stream after losing it.
type UpdateDeviceDisconnect struct{}

// UpdateStateChange is declared but never sent by the decoder loop;
// state is read through Player.State.
type UpdateStateChange struct{ State State }

func (UpdateSongChange) isUpdate()      {}
func (UpdateDeviceDisconnect) isUpdate() {}
func (UpdateStateChange) isUpdate()     {}
