package engine

import (
	"math"

	"github.com/drgolem/go-portaudio/portaudio"

	"github.com/ontley/amuseing/pkg/ring"
	"github.com/ontley/amuseing/pkg/volume"
)

// callbackState is the realtime-side state captured by the closure
// newAudioCallback returns. The callback never blocks; each refill from
// the ring allocates a fresh slice (Ring.Read).
type callbackState struct {
	samples []ring.Frame // drained front-to-back, refilled from the ring
	bytesPerSample int
	channels       int
	consecutiveUnderflow int
}

// newAudioCallback builds the PortAudio realtime callback for one
// stream. It pulls frames from r (written by the decoder goroutine,
// already resampled to the device's output rate), applies the current
// volume multiplier, and fans each stereo frame out across the
// device's actual channel count — exactly the channel_factor
// replication the reference player performs for surround/multi-speaker
// outputs, generalized from a fixed stereo assumption to
// cfg.channels/2.
func newAudioCallback(r *ring.Ring, vol *volume.AtomicVolume, dev *device, cfg deviceConfig) callbackFunc {
	st := &callbackState{
		bytesPerSample: cfg.bitsPerSample / 8,
		channels:       cfg.channels,
	}
	channelFactor := cfg.channels / 2
	if channelFactor < 1 {
		channelFactor = 1
	}

	return func(
		_ []byte,
		output []byte,
		frameCount uint,
		_ *portaudio.StreamCallbackTimeInfo,
		statusFlags portaudio.StreamCallbackFlags,
	) portaudio.StreamCallbackResult {
		if statusFlags&portaudio.OutputUnderflow != 0 {
			st.consecutiveUnderflow++
			if st.consecutiveUnderflow >= consecutiveUnderflowLimit {
				st.consecutiveUnderflow = 0
				dev.signalTrouble()
			}
		} else {
			st.consecutiveUnderflow = 0
		}

		mult := vol.Multiplier()
		bytesPerFrameGroup := st.bytesPerSample * st.channels
		written := 0

		for written+bytesPerFrameGroup <= len(output) {
			if len(st.samples) == 0 {
				frames, err := r.Read(int(frameCount))
				if err != nil || len(frames) == 0 {
					break
				}
				st.samples = frames
			}

			frame := st.samples[0]
			st.samples = st.samples[1:]

			writeSample(output[written:], frame.L*mult, st.bytesPerSample, channelFactor, 0)
			writeSample(output[written:], frame.R*mult, st.bytesPerSample, channelFactor, channelFactor)
			written += bytesPerFrameGroup
		}

		for i := written; i < len(output); i++ {
			output[i] = 0
		}

		return portaudio.Continue
	}
}

// writeSample writes value, quantized to the device's bit depth,
// repeated across replicas consecutive channel slots starting at
// channelOffset within dst — the mono-to-multichannel fanout a stereo
// frame needs on a device with more than two output channels.
func writeSample(dst []byte, value float64, bytesPerSample, replicas, channelOffset int) {
	value = math.Max(-1, math.Min(1, value))

	for r := 0; r < replicas; r++ {
		base := (channelOffset + r) * bytesPerSample
		if base+bytesPerSample > len(dst) {
			return
		}
		switch bytesPerSample {
		case 2:
			v := int16(value * math.MaxInt16)
			dst[base] = byte(v)
			dst[base+1] = byte(v >> 8)
		case 3:
			v := int32(value * 8388607)
			dst[base] = byte(v)
			dst[base+1] = byte(v >> 8)
			dst[base+2] = byte(v >> 16)
		case 4:
			v := int32(value * math.MaxInt32)
			dst[base] = byte(v)
			dst[base+1] = byte(v >> 8)
			dst[base+2] = byte(v >> 16)
			dst[base+3] = byte(v >> 24)
		}
	}
}
