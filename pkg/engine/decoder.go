package engine

import (
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ontley/amuseing/pkg/decoders/mp3"
	"github.com/ontley/amuseing/pkg/queue"
	"github.com/ontley/amuseing/pkg/resampler"
	"github.com/ontley/amuseing/pkg/ring"
	"github.com/ontley/amuseing/pkg/sampleratectl"
	"github.com/ontley/amuseing/pkg/song"
	"github.com/ontley/amuseing/pkg/volume"
)

const (
	// outputSampleRate is the fixed rate the device is opened at; every
	// song is resampled to it regardless of its own native rate, so the
	// stream never needs rebuilding on a song change, only on an actual
	// device error.
	outputSampleRate = 44100
	// defaultBufferSize is used when the caller configures a non-positive
	// buffer size.
	defaultBufferSize  = 2048
	decodeChunkSamples = 4096
)

// decoderLoop is the single goroutine that owns: the queue cursor, the
// current song's decoder and resampler, the output device, and the
// ring that hands resampled frames to the realtime callback. Nothing
// else touches these directly.
type decoderLoop struct {
	q       *queue.Queue[song.Song]
	queueMu *sync.Mutex

	state     *atomic.Int32
	commandCh chan Command
	updateCh  chan Update

	timePlaying *TimePlaying
	volume      *volume.AtomicVolume
	ratePort    *sampleratectl.Port

	deviceIndex     int
	framesPerBuffer int
	bufferSize      int
}

// setState records the decoder loop's current state. StateChange is
// declared but never sent on updateCh; callers read state via
// Player.State() instead.
func (dl *decoderLoop) setState(s State) {
	dl.state.Store(int32(s))
}

// run is the full outer/song loop. It returns once CmdQuit is received
// or the queue is permanently exhausted (RepeatMode Off).
func (dl *decoderLoop) run() {
	defer close(dl.updateCh)

	bufferSize := dl.bufferSize
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	r := ring.New(uint64(bufferSize))
	cfg := deviceConfig{
		deviceIndex:     dl.deviceIndex,
		sampleRate:      outputSampleRate,
		channels:        2,
		bitsPerSample:   16,
		framesPerBuffer: dl.framesPerBuffer,
	}

	dev := newDevice(cfg)
	if err := dev.start(cfg, newAudioCallback(r, dl.volume, dev, cfg)); err != nil {
		slog.Error("failed to open audio device", "error", err)
		dl.setState(Finished)
		return
	}

mainLoop:
	for {
		s, index := dl.nextSong()
		dl.updateCh <- UpdateSongChange{Song: s, Index: index}
		if s == nil {
			break
		}

		if !dl.playSong(*s, r, dev, &cfg) {
			break mainLoop
		}
	}

	if err := dev.close(); err != nil {
		slog.Warn("failed to close audio device", "error", err)
	}
	dl.setState(Finished)
}

func (dl *decoderLoop) nextSong() (*song.Song, int) {
	dl.queueMu.Lock()
	defer dl.queueMu.Unlock()
	index := dl.q.Index()
	return dl.q.NextItem(), index
}

// playSong decodes and streams one song to completion, handling
// commands, pause/resume, and device trouble along the way. It returns
// false when the whole decoder loop should quit.
func (dl *decoderLoop) playSong(s song.Song, r *ring.Ring, dev *device, cfg *deviceConfig) bool {
	dec := mp3.NewDecoder()
	if err := dec.Open(s.Path); err != nil {
		slog.Error("failed to open song", "path", s.Path, "error", err)
		return true
	}
	defer dec.Close()

	rate, _, _ := dec.GetFormat()
	dl.ratePort.Publish(uint32(rate))
	resamp, err := resampler.New(rate, outputSampleRate)
	if err != nil {
		slog.Error("failed to build resampler", "error", err)
		return true
	}

	dl.timePlaying.SetMillis(0)
	dl.setState(Playing)

	decodeBuf := make([]byte, decodeChunkSamples*4) // stereo 16-bit
	var pending []ring.Frame
	playing := true
	pauseSleep := framePeriod(*cfg)

	for {
		select {
		case trouble := <-dev.troubleCh:
			_ = trouble
			dl.setState(Paused)
			if err := rebuildDevice(dev, cfg, r, dl.volume); err != nil {
				slog.Error("failed to rebuild audio device", "error", err)
				return false
			}
			dl.updateCh <- UpdateDeviceDisconnect{}
		default:
		}

		drained := false
		for !drained {
			select {
			case cmd := <-dl.commandCh:
				switch c := cmd.(type) {
				case CmdQuit:
					return false
				case CmdStop:
					return true
				case CmdSeek:
					switch err := dec.SeekApprox(millisToBytes(c.Millis, rate)); err {
					case nil:
						dl.timePlaying.SetMillis(bytesToMillis(dec.BytesDecoded(), rate))
						pending = nil
					case io.EOF:
						// Seek landed past the end of the song; treat it
						// as the song having finished.
						return true
					default:
						slog.Error("seek failed", "error", err)
						return false
					}
				}
			default:
				drained = true
			}
		}

		desired := State(dl.state.Load())
		if playing && desired == Paused {
			playing = false
		} else if !playing && desired == Playing {
			playing = true
		}
		if !playing {
			time.Sleep(pauseSleep)
			continue
		}

		if len(pending) > 0 {
			n, _ := r.Write(pending)
			pending = pending[n:]
		}

		if len(pending) == 0 {
			samplesRead, err := dec.DecodeSamples(decodeChunkSamples, decodeBuf)
			if samplesRead == 0 {
				if err != nil && err != io.EOF {
					slog.Warn("decode error", "error", err)
				}
				break
			}

			frames := bytesToFrames(decodeBuf[:samplesRead*4])
			out, procErr := resamp.Process(frames)
			if procErr != nil {
				slog.Warn("resample error", "error", procErr)
			}
			if len(out) > 0 {
				n, _ := r.Write(out)
				pending = out[n:]
			}
			dl.timePlaying.SetMillis(bytesToMillis(dec.BytesDecoded(), rate))

			if err == io.EOF {
				if tail, closeErr := resamp.Close(); closeErr == nil && len(tail) > 0 {
					n, _ := r.Write(tail)
					pending = tail[n:]
				}
				if len(pending) == 0 {
					break
				}
			}
		}

		time.Sleep(5 * time.Millisecond)
	}

	return true
}

// rebuildDevice replaces dev's stream in place after trouble was
// signaled. The ring is reset so callback and decoder agree on an
// empty buffer instead of resuming mid-stream against stale cursors.
func rebuildDevice(dev *device, cfg *deviceConfig, r *ring.Ring, vol *volume.AtomicVolume) error {
	_ = dev.close()
	r.Reset()
	return dev.start(*cfg, newAudioCallback(r, vol, dev, *cfg))
}

func bytesToFrames(b []byte) []ring.Frame {
	n := len(b) / 4
	frames := make([]ring.Frame, n)
	for i := range frames {
		l := int16(uint16(b[i*4]) | uint16(b[i*4+1])<<8)
		rr := int16(uint16(b[i*4+2]) | uint16(b[i*4+3])<<8)
		frames[i] = ring.Frame{L: float64(l) / 32768, R: float64(rr) / 32768}
	}
	return frames
}

func millisToBytes(millis int64, rate int) int64 {
	samples := millis * int64(rate) / 1000
	return samples * 4
}

func bytesToMillis(bytesDecoded int64, rate int) int64 {
	samples := bytesDecoded / 4
	if rate == 0 {
		return 0
	}
	return samples * 1000 / int64(rate)
}
