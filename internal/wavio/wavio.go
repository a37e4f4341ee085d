// Package wavio encodes rendered sample buffers into standard PCM WAV
// containers. Samples are expected in [-1,1]; out-of-range values clip at
// full scale during the int16 conversion.
package wavio

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const bitDepth = 16

// Encode writes the samples as 16-bit mono PCM WAV.
func Encode(w io.WriteSeeker, samples []float64, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("encode wav: invalid sample rate %d", sampleRate)
	}
	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, len(samples)),
		SourceBitDepth: bitDepth,
	}
	for i, v := range samples {
		buf.Data[i] = toInt16(v)
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}
	return nil
}

// EncodeBytes encodes into memory, for callers that serve the container
// over HTTP instead of writing a file.
func EncodeBytes(samples []float64, sampleRate int) ([]byte, error) {
	var buf seekBuffer
	if err := Encode(&buf, samples, sampleRate); err != nil {
		return nil, err
	}
	return buf.buf, nil
}

// WriteFile encodes the samples into a WAV file at path.
func WriteFile(path string, samples []float64, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := Encode(f, samples, sampleRate); err != nil {
		return err
	}
	return f.Close()
}

// toInt16 scales a normalized sample to 16-bit PCM.
func toInt16(v float64) int {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int(v * math.MaxInt16)
}

// seekBuffer is the in-memory io.WriteSeeker the wav encoder needs to
// back-patch chunk sizes on Close.
type seekBuffer struct {
	buf []byte
	pos int
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	if need := b.pos + len(p); need > len(b.buf) {
		grown := make([]byte, need)
		copy(grown, b.buf)
		b.buf = grown
	}
	copy(b.buf[b.pos:], p)
	b.pos += len(p)
	return len(p), nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = int64(b.pos) + offset
	case io.SeekEnd:
		pos = int64(len(b.buf)) + offset
	default:
		return 0, fmt.Errorf("seek: invalid whence %d", whence)
	}
	if pos < 0 {
		return 0, fmt.Errorf("seek: negative position %d", pos)
	}
	b.pos = int(pos)
	return pos, nil
}
