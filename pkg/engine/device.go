package engine

import (
	"fmt"
	"time"

	"github.com/drgolem/go-portaudio/portaudio"
)

// deviceConfig is everything the decoder loop knows about a song's
// output requirements when it asks for a stream.
type deviceConfig struct {
	deviceIndex     int
	sampleRate      int
	channels        int
	bitsPerSample   int
	framesPerBuffer int
}

// device owns one PortAudio output stream plus the watchdog that
// notices when the backend stops servicing it.
type device struct {
	stream        *portaudio.PaStream
	bytesPerFrame int

	// troubleCh receives a value whenever the callback observes enough
	// consecutive output-underflow statuses in a row to suspect the
	// device itself, not just a slow producer, has gone away. Buffered
	// to 1 so the callback's non-blocking send never stalls real-time
	// execution.
	troubleCh chan struct{}
}

// consecutiveUnderflowLimit is how many back-to-back callback
// invocations flagged with an output underflow are tolerated before
// the decoder loop rebuilds the stream. A handful of isolated
// underflows is normal under scheduling jitter; a long unbroken run
// means nothing is draining the device anymore.
const consecutiveUnderflowLimit = 64

// callbackFunc matches the signature PortAudio invokes on its own
// realtime thread for every buffer of output it needs filled.
type callbackFunc func(
	input, output []byte,
	frameCount uint,
	timeInfo *portaudio.StreamCallbackTimeInfo,
	statusFlags portaudio.StreamCallbackFlags,
) portaudio.StreamCallbackResult

// newDevice allocates a device's bookkeeping ahead of opening its
// stream, so a realtime callback can close over it (to call
// signalTrouble) before the stream that will invoke that callback
// exists.
func newDevice(cfg deviceConfig) *device {
	return &device{
		bytesPerFrame: cfg.channels * (cfg.bitsPerSample / 8),
		troubleCh:     make(chan struct{}, 1),
	}
}

// start builds and starts cfg's PortAudio output stream with cb as its
// realtime callback.
func (d *device) start(cfg deviceConfig, cb callbackFunc) error {
	sampleFormat, err := paSampleFormat(cfg.bitsPerSample)
	if err != nil {
		return err
	}

	stream := &portaudio.PaStream{
		OutputParameters: &portaudio.PaStreamParameters{
			DeviceIndex:  cfg.deviceIndex,
			ChannelCount: cfg.channels,
			SampleFormat: sampleFormat,
		},
		SampleRate: float64(cfg.sampleRate),
	}

	if err := stream.OpenCallback(cfg.framesPerBuffer, cb); err != nil {
		return fmt.Errorf("open audio stream: %w", err)
	}
	if err := stream.StartStream(); err != nil {
		return fmt.Errorf("start audio stream: %w", err)
	}

	d.stream = stream
	return nil
}

// signalTrouble is called from the realtime callback. It must never
// block.
func (d *device) signalTrouble() {
	select {
	case d.troubleCh <- struct{}{}:
	default:
	}
}

// close stops and releases the underlying stream. Errors are returned
// for logging, not to stop the shutdown sequence.
func (d *device) close() error {
	var errs []error
	if err := d.stream.StopStream(); err != nil {
		errs = append(errs, fmt.Errorf("stop stream: %w", err))
	}
	if err := d.stream.CloseCallback(); err != nil {
		errs = append(errs, fmt.Errorf("close stream: %w", err))
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func paSampleFormat(bitsPerSample int) (portaudio.PaSampleFormat, error) {
	switch bitsPerSample {
	case 16:
		return portaudio.SampleFmtInt16, nil
	case 24:
		return portaudio.SampleFmtInt24, nil
	case 32:
		return portaudio.SampleFmtInt32, nil
	default:
		return 0, fmt.Errorf("unsupported bit depth: %d", bitsPerSample)
	}
}

// framePeriod estimates how long one callback period lasts, used only
// to size sleeps in the decoder loop while waiting for a paused stream.
func framePeriod(cfg deviceConfig) time.Duration {
	if cfg.sampleRate == 0 {
		return 10 * time.Millisecond
	}
	return time.Duration(cfg.framesPerBuffer) * time.Second / time.Duration(cfg.sampleRate)
}
