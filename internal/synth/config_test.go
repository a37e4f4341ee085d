package synth

import (
	"errors"
	"testing"

	apperrors "github.com/notesmith/notesmith/internal/errors"
)

func TestParseShape(t *testing.T) {
	cases := map[string]Shape{
		"sin": ShapeSine, "sine": ShapeSine, "s": ShapeSine,
		"square": ShapeSquare, "sq": ShapeSquare,
		"saw": ShapeSaw, "sw": ShapeSaw,
		"backsaw": ShapeBacksaw, "bs": ShapeBacksaw,
		"triangular": ShapeTriangular, "triangle": ShapeTriangular, "t": ShapeTriangular,
	}
	for tag, want := range cases {
		got, err := ParseShape(tag)
		if err != nil {
			t.Errorf("ParseShape(%q): %v", tag, err)
			continue
		}
		if got != want {
			t.Errorf("ParseShape(%q) = %v, want %v", tag, got, want)
		}
	}

	t.Run("Unknown", func(t *testing.T) {
		_, err := ParseShape("noise")
		var shapeErr *apperrors.ShapeError
		if !errors.As(err, &shapeErr) {
			t.Fatalf("expected *ShapeError, got %T: %v", err, err)
		}
	})
}

func TestSetBPMSnapsToWholeSamples(t *testing.T) {
	cfg := WaveConfig{Shape: ShapeTriangular, SampleRate: 44100}
	if err := cfg.SetBPM(144); err != nil {
		t.Fatalf("SetBPM: %v", err)
	}
	// 44100*60/144 divides evenly into 18375 samples
	if got := cfg.UnitSamples(); got != 18375 {
		t.Errorf("UnitSamples() = %d, want 18375", got)
	}

	// A bpm that does not divide the rate still snaps to a whole count.
	if err := cfg.SetBPM(113); err != nil {
		t.Fatalf("SetBPM: %v", err)
	}
	want := 44100 * 60 / 113
	if got := cfg.UnitSamples(); got != want {
		t.Errorf("UnitSamples() = %d, want %d", got, want)
	}
}

func TestSetBPMRejectsNonPositive(t *testing.T) {
	cfg := DefaultWaveConfig()
	for _, bpm := range []int{0, -10} {
		if err := cfg.SetBPM(bpm); err == nil {
			t.Errorf("SetBPM(%d): expected error, got nil", bpm)
		}
	}
}

func TestWaveConfigValidate(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		if err := DefaultWaveConfig().Validate(); err != nil {
			t.Errorf("default config invalid: %v", err)
		}
	})

	cases := []struct {
		name string
		cfg  WaveConfig
	}{
		{"UnknownShape", WaveConfig{Shape: Shape(9), SampleRate: 44100, UnitDuration: 0.5}},
		{"ZeroRate", WaveConfig{Shape: ShapeSine, SampleRate: 0, UnitDuration: 0.5}},
		{"ZeroDuration", WaveConfig{Shape: ShapeSine, SampleRate: 44100, UnitDuration: 0}},
		{"SubSampleDuration", WaveConfig{Shape: ShapeSine, SampleRate: 44100, UnitDuration: 1e-9}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestShapeString(t *testing.T) {
	if got := ShapeBacksaw.String(); got != "backsaw" {
		t.Errorf("String() = %q, want %q", got, "backsaw")
	}
	if got := Shape(99).String(); got != "unknown" {
		t.Errorf("String() = %q, want %q", got, "unknown")
	}
}
