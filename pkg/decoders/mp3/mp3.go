package mp3

import (
	"fmt"
	"io"
	"os"

	gomp3 "github.com/imcarsen/go-mp3"
)

// Decoder wraps imcarsen/go-mp3 to provide MP3 decoding capabilities.
// Implements types.AudioDecoder interface.
//
// go-mp3 always decodes to 16-bit little-endian stereo PCM, so GetFormat
// reports channels=2, bitsPerSample=16 unconditionally; only the sample
// rate varies with the source file.
type Decoder struct {
	fileName     string
	file         *os.File
	decoder      *gomp3.Decoder
	rate         int
	bytesDecoded int64
}

// NewDecoder creates a new MP3 decoder
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Open opens and initializes an MP3 file for decoding
func (d *Decoder) Open(fileName string) error {
	file, err := os.Open(fileName)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", fileName, err)
	}

	decoder, err := gomp3.NewDecoder(file)
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	d.fileName = fileName
	d.file = file
	d.decoder = decoder
	d.rate = decoder.SampleRate()
	d.bytesDecoded = 0

	return nil
}

// Close closes the decoder and releases resources
func (d *Decoder) Close() error {
	d.decoder = nil
	if d.file != nil {
		err := d.file.Close()
		d.file = nil
		return err
	}
	return nil
}

// GetFormat returns the audio format: sample rate, channels (always 2),
// bits per sample (always 16)
func (d *Decoder) GetFormat() (rate, channels, bitsPerSample int) {
	return d.rate, 2, 16
}

// DecodeSamples decodes the specified number of samples (stereo frames)
// into the audio buffer. Returns the number of samples actually decoded.
func (d *Decoder) DecodeSamples(samples int, audio []byte) (int, error) {
	if d.decoder == nil {
		return 0, fmt.Errorf("decoder not initialized")
	}

	bytesNeeded := samples * 2 * 2 // channels * bytesPerSample
	if len(audio) < bytesNeeded {
		return 0, fmt.Errorf("buffer too small: need %d bytes, have %d", bytesNeeded, len(audio))
	}

	n, err := io.ReadFull(d.decoder, audio[:bytesNeeded])
	samplesRead := n / (2 * 2)
	d.bytesDecoded += int64(n)

	if err == io.ErrUnexpectedEOF || err == io.EOF {
		return samplesRead, io.EOF
	}
	if err != nil {
		return samplesRead, fmt.Errorf("decode error: %w", err)
	}

	return samplesRead, nil
}

// Rate returns the sample rate in Hz
func (d *Decoder) Rate() int {
	return d.rate
}

// BytesDecoded returns the number of PCM bytes decoded so far, used by
// the decoder loop to compute the elapsed playback time.
func (d *Decoder) BytesDecoded() int64 {
	return d.bytesDecoded
}

// SeekApprox reopens the underlying file and discards decoded output up
// to targetByte PCM bytes. go-mp3 has no native seek table, so this is a
// coarse, linear-time approximation of a timestamp seek: the caller
// reads back BytesDecoded() afterward to learn the position reached,
// which on success equals targetByte. If the stream ends before
// targetByte it returns io.EOF.
func (d *Decoder) SeekApprox(targetByte int64) error {
	if targetByte < 0 {
		targetByte = 0
	}

	if err := d.Close(); err != nil {
		return err
	}
	if err := d.Open(d.fileName); err != nil {
		return err
	}

	const chunk = 32 * 1024
	discard := make([]byte, chunk)
	for d.bytesDecoded < targetByte {
		remaining := targetByte - d.bytesDecoded
		n := int64(len(discard))
		if remaining < n {
			n = remaining
		}
		read, err := io.ReadFull(d.decoder, discard[:n])
		d.bytesDecoded += int64(read)
		if err != nil {
			break
		}
	}

	// The target lies past the end of the stream: report it the same way
	// DecodeSamples reports running out of song.
	if d.bytesDecoded < targetByte {
		return io.EOF
	}

	return nil
}
