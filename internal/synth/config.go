package synth

import (
	"math"
	"sync"

	"github.com/notesmith/notesmith/internal/errors"
)

// Shape selects one of the five oscillator kinds. The set is closed:
// synthesis dispatches by exhaustive switch, never by string lookup.
type Shape int

const (
	ShapeSine Shape = iota
	ShapeSquare
	ShapeSaw
	ShapeBacksaw
	ShapeTriangular
)

var shapeNames = map[Shape]string{
	ShapeSine:       "sin",
	ShapeSquare:     "square",
	ShapeSaw:        "saw",
	ShapeBacksaw:    "backsaw",
	ShapeTriangular: "triangular",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseShape resolves a shape tag. Full names and single-letter
// aliases (s, sq, sw, bs, t) are both accepted.
func ParseShape(tag string) (Shape, error) {
	switch tag {
	case "sin", "sine", "s":
		return ShapeSine, nil
	case "square", "sq":
		return ShapeSquare, nil
	case "saw", "sw":
		return ShapeSaw, nil
	case "backsaw", "bs":
		return ShapeBacksaw, nil
	case "triangular", "triangle", "t":
		return ShapeTriangular, nil
	}
	return 0, &errors.ShapeError{Shape: tag}
}

// Default voice: 44.1 kHz, 144 BPM triangular waves with a gentle ADSR.
const (
	DefaultSampleRate = 44100
	DefaultBPM        = 144
)

// WaveConfig holds the oscillator selection and timing parameters for one
// render. Values are plain data; validate before use.
type WaveConfig struct {
	Shape        Shape
	SampleRate   int
	UnitDuration float64 // seconds for a length-1 note
}

// DefaultWaveConfig returns the process defaults.
func DefaultWaveConfig() WaveConfig {
	cfg := WaveConfig{Shape: ShapeTriangular, SampleRate: DefaultSampleRate}
	cfg.SetBPM(DefaultBPM)
	return cfg
}

// SetBPM derives the base unit duration from beats per minute. The duration
// is snapped to a whole sample count so chords concatenate without drift.
func (c *WaveConfig) SetBPM(bpm int) error {
	if bpm <= 0 {
		return &errors.ConfigError{Field: "bpm", Reason: "must be positive"}
	}
	if c.SampleRate <= 0 {
		return &errors.ConfigError{Field: "sample rate", Reason: "must be positive"}
	}
	c.UnitDuration = float64(c.SampleRate*60/bpm) / float64(c.SampleRate)
	return nil
}

// UnitSamples is the sample length of a length-1 note.
func (c WaveConfig) UnitSamples() int {
	return int(math.Round(c.UnitDuration * float64(c.SampleRate)))
}

// Validate checks the configuration for a render.
func (c WaveConfig) Validate() error {
	if _, ok := shapeNames[c.Shape]; !ok {
		return &errors.ShapeError{Shape: c.Shape.String()}
	}
	if c.SampleRate <= 0 {
		return &errors.ConfigError{Field: "sample rate", Reason: "must be positive"}
	}
	if c.UnitDuration <= 0 {
		return &errors.ConfigError{Field: "unit duration", Reason: "must be positive"}
	}
	if c.UnitSamples() == 0 {
		return &errors.ConfigError{Field: "unit duration", Reason: "shorter than one sample"}
	}
	return nil
}

// EnvelopeConfig holds the ADSR breakpoints. Shares are fractions of the
// note duration at which attack, decay and sustain end; levels are the
// amplitudes reached at those points. Release is implicit: from the third
// breakpoint the amplitude returns linearly to zero.
type EnvelopeConfig struct {
	Enabled bool
	Shares  [3]float64
	Levels  [3]float64
}

// DefaultEnvelopeConfig returns the default ADSR.
func DefaultEnvelopeConfig() EnvelopeConfig {
	return EnvelopeConfig{
		Enabled: true,
		Shares:  [3]float64{0.05, 0.3, 0.9},
		Levels:  [3]float64{1.0, 1.0, 0.7},
	}
}

// Validate checks share ordering and level ranges.
func (c EnvelopeConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	prev := 0.0
	for _, s := range c.Shares {
		if s <= prev || s >= 1 {
			return &errors.ConfigError{Field: "envelope shares", Reason: "must be strictly increasing within (0,1)"}
		}
		prev = s
	}
	for _, l := range c.Levels {
		if l < 0 || l > 1 {
			return &errors.ConfigError{Field: "envelope levels", Reason: "must lie in [0,1]"}
		}
	}
	return nil
}

// Process-wide default configuration. Single writer through the setters,
// any number of concurrent readers through snapshot().
var (
	configMu    sync.RWMutex
	defaultWave = DefaultWaveConfig()
	defaultEnv  = DefaultEnvelopeConfig()
)

// SetShape changes the globally active oscillator shape.
func SetShape(s Shape) error {
	if _, ok := shapeNames[s]; !ok {
		return &errors.ShapeError{Shape: s.String()}
	}
	configMu.Lock()
	defer configMu.Unlock()
	defaultWave.Shape = s
	return nil
}

// SetBPM changes the global tempo.
func SetBPM(bpm int) error {
	configMu.Lock()
	defer configMu.Unlock()
	return defaultWave.SetBPM(bpm)
}

// SetEnvelope replaces the global ADSR configuration.
func SetEnvelope(cfg EnvelopeConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	configMu.Lock()
	defer configMu.Unlock()
	defaultEnv = cfg
	return nil
}

// snapshot returns a consistent copy of the global configuration.
func snapshot() (WaveConfig, EnvelopeConfig) {
	configMu.RLock()
	defer configMu.RUnlock()
	return defaultWave, defaultEnv
}
