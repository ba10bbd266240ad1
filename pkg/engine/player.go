package engine

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ontley/amuseing/pkg/queue"
	"github.com/ontley/amuseing/pkg/sampleratectl"
	"github.com/ontley/amuseing/pkg/song"
	"github.com/ontley/amuseing/pkg/volume"
)

// rewindTolerance is how long a song must have been playing before
// Rewind restarts it instead of moving to the previous track.
const rewindTolerance = 3 * time.Second

// ErrAlreadyRunning is returned by Run when the decoder loop is
// already playing or paused.
var ErrAlreadyRunning = fmt.Errorf("player is already running")

// SeekOutOfRangeError reports a seek past the current song's duration.
type SeekOutOfRangeError struct {
	Requested, Max time.Duration
}

func (e *SeekOutOfRangeError) Error() string {
	return fmt.Sprintf("seek to %v exceeds song duration %v", e.Requested, e.Max)
}

// ErrNoCurrentSong is returned by SeekDuration when the queue has no
// current song to seek within.
var ErrNoCurrentSong = fmt.Errorf("no song is currently playing")

// Player is the external facade over one decoder loop: a queue of
// songs, the current playback state, volume, and the command channel
// that reaches into the (possibly not-yet-started) decoder goroutine.
type Player struct {
	queueMu sync.Mutex
	queue   *queue.Queue[song.Song]

	state     atomic.Int32
	commandCh chan Command

	timePlaying TimePlaying
	volume      *volume.AtomicVolume

	deviceIndex     int
	framesPerBuffer int

	dl *decoderLoop
}

// New creates a Player with an empty, repeat-all queue at the given
// initial volume percent.
func New(volumePercent float64, deviceIndex, framesPerBuffer int) *Player {
	return &Player{
		queue:           queue.New[song.Song](queue.All),
		volume:          volume.FromPercent(volumePercent),
		deviceIndex:     deviceIndex,
		framesPerBuffer: framesPerBuffer,
	}
}

// WithQueue is New, but starting from an already populated queue.
func WithQueue(q *queue.Queue[song.Song], volumePercent float64, deviceIndex, framesPerBuffer int) *Player {
	p := New(volumePercent, deviceIndex, framesPerBuffer)
	p.queue = q
	return p
}

// QueueMut runs fn with the underlying queue while holding the queue
// lock. fn must not retain the pointer after it returns if Run is (or
// might be) concurrently active.
func (p *Player) QueueMut(fn func(*queue.Queue[song.Song])) {
	p.queueMu.Lock()
	defer p.queueMu.Unlock()
	fn(p.queue)
}

// SetVolume updates the shared volume percent in place.
func (p *Player) SetVolume(percent float64) {
	p.volume.Set(percent)
}

// Volume returns the shared AtomicVolume.
func (p *Player) Volume() *volume.AtomicVolume {
	return p.volume
}

// Current returns the song the queue's cursor currently points at, if
// any.
func (p *Player) Current() *song.Song {
	p.queueMu.Lock()
	defer p.queueMu.Unlock()
	return p.queue.Current()
}

// TimePlaying returns the shared playback-position clock.
func (p *Player) TimePlaying() *TimePlaying {
	return &p.timePlaying
}

// CurrentSampleRate returns the native sample rate of the song currently
// being decoded, or 0 before any song has started. This is purely
// informational: every song is resampled to the device's fixed output
// rate before reaching the ring, so nothing downstream needs this value
// to function.
func (p *Player) CurrentSampleRate() uint32 {
	if p.dl == nil || p.dl.ratePort == nil {
		return 0
	}
	return p.dl.ratePort.Rate()
}

// State returns the shared playback state. Pause and Resume store into
// it directly; the decoder loop stores Playing when a song starts,
// Paused on device trouble and Finished when it exits. Stop and Quit
// change it only once the decoder loop acts on them. No Update value
// carries state transitions.
func (p *Player) State() State {
	return State(p.state.Load())
}

// IsPaused reports whether the decoder loop is currently paused.
func (p *Player) IsPaused() bool {
	return p.State() == Paused
}

// IsRunning reports whether the decoder loop is active (playing or
// paused, as opposed to not started or finished).
func (p *Player) IsRunning() bool {
	s := p.State()
	return s == Playing || s == Paused
}

// Run starts the decoder goroutine. bufferSize sets the capacity, in
// frames, of the ring handed to the realtime callback. The returned
// channel carries Update values as playback progresses and is closed
// when the decoder loop exits (CmdQuit, or the queue permanently
// exhausted).
func (p *Player) Run(bufferSize int) (<-chan Update, error) {
	if p.IsRunning() {
		return nil, ErrAlreadyRunning
	}
	p.state.Store(int32(Paused))

	p.commandCh = make(chan Command, 8)
	updateCh := make(chan Update, 64)

	p.dl = &decoderLoop{
		q:               p.queue,
		queueMu:         &p.queueMu,
		state:           &p.state,
		commandCh:       p.commandCh,
		updateCh:        updateCh,
		timePlaying:     &p.timePlaying,
		volume:          p.volume,
		ratePort:        sampleratectl.NewPort(0),
		deviceIndex:     p.deviceIndex,
		framesPerBuffer: p.framesPerBuffer,
		bufferSize:      bufferSize,
	}
	go p.dl.run()

	return updateCh, nil
}

// sendCommand enqueues a command for the decoder loop without blocking.
// It reports whether the command was enqueued: false before Run, or
// when the command buffer is full.
func (p *Player) sendCommand(cmd Command) bool {
	if p.commandCh == nil {
		return false
	}
	select {
	case p.commandCh <- cmd:
		return true
	default:
		return false
	}
}

// Quit stops the decoder loop entirely. The Update channel from Run
// closes once it has.
func (p *Player) Quit() bool {
	return p.sendCommand(CmdQuit{})
}

// Stop ends the current song early; if the queue has more songs the
// loop moves on to the next one.
func (p *Player) Stop() bool {
	return p.sendCommand(CmdStop{})
}

// Pause marks playback paused. The decoder loop observes this on its
// next iteration, not synchronously.
func (p *Player) Pause() {
	p.state.Store(int32(Paused))
}

// Resume marks playback playing.
func (p *Player) Resume() {
	p.state.Store(int32(Playing))
}

// SeekDuration seeks the current song to duration, failing if it
// exceeds the song's own duration or nothing is currently playing.
func (p *Player) SeekDuration(duration time.Duration) (bool, error) {
	current := p.Current()
	if current == nil {
		return false, ErrNoCurrentSong
	}
	if duration > current.Duration {
		return false, &SeekOutOfRangeError{Requested: duration, Max: current.Duration}
	}
	return p.sendCommand(CmdSeek{Millis: duration.Milliseconds()}), nil
}

// FastForward skips to the next song.
func (p *Player) FastForward() {
	p.Stop()
}

// Rewind restarts the current song if it's played past rewindTolerance,
// otherwise moves the queue cursor back one song and stops the current
// one.
func (p *Player) Rewind() {
	if p.timePlaying.AsSecondsF64() > rewindTolerance.Seconds() && p.Current() != nil {
		p.sendCommand(CmdSeek{Millis: 0})
		return
	}
	p.QueueMut(func(q *queue.Queue[song.Song]) { q.Rewind(1) })
	p.Stop()
}
