// Package player renders sample buffers through the system speaker.
package player

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/notesmith/notesmith/internal/errors"
)

// Play blocks until the whole buffer has been played. The audio device is
// opened on first use; a missing or busy device surfaces as ErrNoPlayback.
func Play(samples []float64, sampleRate int) error {
	if len(samples) == 0 {
		return errors.ErrNoSamples
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrNoPlayback, err)
	}
	<-ready

	p := ctx.NewPlayer(bytes.NewReader(toPCM(samples)))
	p.Play()
	for p.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	return p.Close()
}

// toPCM converts normalized samples to little-endian 16-bit mono.
func toPCM(samples []float64) []byte {
	pcm := make([]byte, 2*len(samples))
	for i, v := range samples {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		s := int16(v * math.MaxInt16)
		pcm[2*i] = byte(s)
		pcm[2*i+1] = byte(s >> 8)
	}
	return pcm
}
