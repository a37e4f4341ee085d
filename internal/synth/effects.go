package synth

import (
	"math"
	"math/rand"
)

// volumeCorrection keeps normalized peaks just under full scale; samples at
// exactly |1.0| click in some WAV players.
const volumeCorrection = 0.99

// Normalize scales the wave so its peak sits at volumeCorrection. An
// all-zero wave is returned unchanged.
func Normalize(wave []float64) []float64 {
	peak := 0.0
	for _, v := range wave {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	out := make([]float64, len(wave))
	if peak == 0 {
		copy(out, wave)
		return out
	}
	scale := volumeCorrection / peak
	for i, v := range wave {
		out[i] = v * scale
	}
	return out
}

// Smooth applies a windowed mean the given number of times: every sample at
// least wing away from the edges becomes the average of its 2*wing
// neighborhood from the previous pass. The result is re-normalized.
func Smooth(wave []float64, times, wing int) []float64 {
	out := make([]float64, len(wave))
	copy(out, wave)
	if wing <= 0 || len(wave) <= 2*wing {
		return out
	}
	for t := 0; t < times; t++ {
		prev := make([]float64, len(out))
		copy(prev, out)
		for i := wing; i < len(prev)-wing; i++ {
			sum := 0.0
			for j := i - wing; j < i+wing; j++ {
				sum += prev[j]
			}
			out[i] = sum / float64(2*wing)
		}
	}
	return Normalize(out)
}

// Distort shifts every sample by a random factor within 1 +/- distance.
// The caller owns the rand source, so a fixed seed reproduces the exact
// same output. The result is re-normalized.
func Distort(wave []float64, distance float64, rng *rand.Rand) []float64 {
	out := make([]float64, len(wave))
	for i, v := range wave {
		out[i] = v * (1 + distance*(2*rng.Float64()-1))
	}
	return Normalize(out)
}
