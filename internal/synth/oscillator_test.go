package synth

import (
	"errors"
	"math"
	"testing"

	apperrors "github.com/notesmith/notesmith/internal/errors"
)

func TestGenerateShapes(t *testing.T) {
	// One full period: frequency 1 Hz at 8 Hz sampling puts sample i at
	// phase fraction i/8.
	const (
		freq = 1.0
		n    = 8
		rate = 8
	)

	cases := []struct {
		name  string
		shape Shape
		want  []float64
	}{
		{"Square", ShapeSquare, []float64{1, 1, 1, 1, -1, -1, -1, -1}},
		{"Saw", ShapeSaw, []float64{-1, -0.75, -0.5, -0.25, 0, 0.25, 0.5, 0.75}},
		{"Backsaw", ShapeBacksaw, []float64{1, 0.75, 0.5, 0.25, 0, -0.25, -0.5, -0.75}},
		{"Triangular", ShapeTriangular, []float64{1, 0.5, 0, -0.5, -1, -0.5, 0, 0.5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Generate(tc.shape, freq, n, rate)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if len(got) != n {
				t.Fatalf("len = %d, want %d", len(got), n)
			}
			for i := range got {
				if math.Abs(got[i]-tc.want[i]) > 1e-12 {
					t.Errorf("sample %d = %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}

	t.Run("Sine", func(t *testing.T) {
		got, err := Generate(ShapeSine, freq, n, rate)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		for i := range got {
			want := math.Sin(2 * math.Pi * float64(i) / 8)
			if math.Abs(got[i]-want) > 1e-12 {
				t.Errorf("sample %d = %v, want %v", i, got[i], want)
			}
		}
	})
}

func TestGenerateAmplitudeBounds(t *testing.T) {
	for shape := range shapeNames {
		got, err := Generate(shape, 440, 1000, 44100)
		if err != nil {
			t.Fatalf("Generate(%v): %v", shape, err)
		}
		for i, v := range got {
			if v < -1 || v > 1 {
				t.Fatalf("%v sample %d = %v outside [-1,1]", shape, i, v)
			}
		}
	}
}

func TestGenerateLength(t *testing.T) {
	for _, n := range []int{0, 1, 7, 44100} {
		got, err := Generate(ShapeTriangular, 440, n, 44100)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if len(got) != n {
			t.Errorf("len = %d, want %d", len(got), n)
		}
	}
}

func TestGenerateUnsupportedShape(t *testing.T) {
	_, err := Generate(Shape(99), 440, 10, 44100)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var shapeErr *apperrors.ShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("expected *ShapeError, got %T: %v", err, err)
	}
}

func TestSilence(t *testing.T) {
	got := Silence(5)
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	for i, v := range got {
		if v != 0 {
			t.Errorf("sample %d = %v, want 0", i, v)
		}
	}
}
