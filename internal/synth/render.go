package synth

import (
	"github.com/notesmith/notesmith/internal/errors"
	"github.com/notesmith/notesmith/internal/notation"
)

// Renderer turns a parsed Track into a PCM sample buffer under one fixed
// pair of configurations. It memoizes raw note waveforms keyed by shape,
// frequency and length, so repeated notes inside a track are generated
// once. A Renderer is not safe for concurrent use; the package-level
// Render builds a fresh one per call.
type Renderer struct {
	wave WaveConfig
	env  EnvelopeConfig
	memo map[memoKey][]float64
}

type memoKey struct {
	shape   Shape
	freq    float64
	samples int
}

// NewRenderer validates the configurations and builds a Renderer.
func NewRenderer(wave WaveConfig, env EnvelopeConfig) (*Renderer, error) {
	if err := wave.Validate(); err != nil {
		return nil, err
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{wave: wave, env: env, memo: make(map[memoKey][]float64)}, nil
}

// Render produces the final sample buffer for the track.
//
// Each chord member is rendered at its own length, enveloped over that same
// length, placed at the chord start and implicitly zero-padded to the
// longest member; members are then summed. Summed samples are hard-clamped
// to [-1,1]; Normalize stays a separate step so quiet passages are never
// rescaled implicitly. Chords concatenate back-to-back with no gap.
func (r *Renderer) Render(track notation.Track) ([]float64, error) {
	if len(track.Chords) == 0 {
		return nil, errors.ErrEmptyTrack
	}
	unit := r.wave.UnitSamples()
	out := make([]float64, 0, track.TotalUnits()*unit)

	for _, chord := range track.Chords {
		if len(chord.Events) == 0 {
			return nil, errors.ErrEmptyChord
		}
		mix := make([]float64, chord.MaxUnits()*unit)
		for _, ev := range chord.Events {
			n := ev.LengthUnits() * unit
			sound, ok := ev.(notation.Sound)
			if !ok {
				// a rest contributes nothing to the mix
				continue
			}
			raw, err := r.noteWave(sound.Pitch.Frequency(), n)
			if err != nil {
				return nil, err
			}
			env, err := Envelope(n, r.env)
			if err != nil {
				return nil, err
			}
			for i := 0; i < n; i++ {
				mix[i] += raw[i] * env[i]
			}
		}
		for i, v := range mix {
			if v > 1 {
				mix[i] = 1
			} else if v < -1 {
				mix[i] = -1
			}
		}
		out = append(out, mix...)
	}
	return out, nil
}

// SampleRate reports the rate the rendered buffer is meant to be played at.
func (r *Renderer) SampleRate() int {
	return r.wave.SampleRate
}

// noteWave returns the raw oscillator buffer for one note, memoized.
// Cached buffers are read-only; mixing copies into the chord buffer.
func (r *Renderer) noteWave(freq float64, n int) ([]float64, error) {
	key := memoKey{shape: r.wave.Shape, freq: freq, samples: n}
	if w, ok := r.memo[key]; ok {
		return w, nil
	}
	w, err := Generate(r.wave.Shape, freq, n, r.wave.SampleRate)
	if err != nil {
		return nil, err
	}
	r.memo[key] = w
	return w, nil
}

// Render synthesizes the track under the process-wide default
// configuration. Concurrent calls are safe: each takes a locked snapshot
// of the configuration and renders independently.
func Render(track notation.Track) ([]float64, error) {
	wave, env := snapshot()
	r, err := NewRenderer(wave, env)
	if err != nil {
		return nil, err
	}
	return r.Render(track)
}
