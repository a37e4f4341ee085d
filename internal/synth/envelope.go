package synth

import "math"

// Envelope returns an amplitude multiplier curve of exactly n samples.
// Disabled configurations yield a constant 1.0 curve. Enabled ones ramp
// 0 -> l1 (attack), l1 -> l2 (decay), l2 -> l3 (sustain), l3 -> 0
// (release), with breakpoints at round(share*n). Each segment includes
// both endpoints; a one-sample segment is an instantaneous jump to its
// start value and an empty segment is skipped, so short notes never
// divide by zero. Output depends only on the inputs.
func Envelope(n int, cfg EnvelopeConfig) ([]float64, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	env := make([]float64, n)
	if !cfg.Enabled {
		for i := range env {
			env[i] = 1
		}
		return env, nil
	}

	bounds := [5]int{0, 0, 0, 0, n}
	for k, share := range cfg.Shares {
		b := int(math.Round(share * float64(n)))
		if b < bounds[k] {
			b = bounds[k]
		}
		if b > n {
			b = n
		}
		bounds[k+1] = b
	}

	l1, l2, l3 := cfg.Levels[0], cfg.Levels[1], cfg.Levels[2]
	starts := [4]float64{0, l1, l2, l3}
	ends := [4]float64{l1, l2, l3, 0}
	for seg := 0; seg < 4; seg++ {
		a, b := bounds[seg], bounds[seg+1]
		m := b - a
		if m <= 0 {
			continue
		}
		if m == 1 {
			env[a] = starts[seg]
			continue
		}
		slope := (ends[seg] - starts[seg]) / float64(m-1)
		for j := 0; j < m; j++ {
			env[a+j] = starts[seg] + slope*float64(j)
		}
	}
	return env, nil
}
