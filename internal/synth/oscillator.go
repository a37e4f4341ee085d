package synth

import (
	"math"

	"github.com/notesmith/notesmith/internal/errors"
)

// Generate produces n samples of the shape at the given frequency, unit
// amplitude. All shapes share the phase convention
// phase(i) = 2*pi*frequency*i/rate.
func Generate(shape Shape, frequency float64, n, rate int) ([]float64, error) {
	var fn func(frac float64) float64
	switch shape {
	case ShapeSine:
		fn = func(frac float64) float64 { return math.Sin(2 * math.Pi * frac) }
	case ShapeSquare:
		// sign(sin(phase)) with the zero crossing resolved to +1
		fn = func(frac float64) float64 {
			if frac < 0.5 {
				return 1
			}
			return -1
		}
	case ShapeSaw:
		fn = func(frac float64) float64 { return 2*frac - 1 }
	case ShapeBacksaw:
		fn = func(frac float64) float64 { return 1 - 2*frac }
	case ShapeTriangular:
		fn = func(frac float64) float64 { return 4*math.Abs(frac-0.5) - 1 }
	default:
		return nil, &errors.ShapeError{Shape: shape.String()}
	}

	out := make([]float64, n)
	step := frequency / float64(rate)
	for i := range out {
		x := step * float64(i)
		out[i] = fn(x - math.Floor(x))
	}
	return out, nil
}

// Silence is the rest waveform: n zero samples.
func Silence(n int) []float64 {
	return make([]float64, n)
}
