package notation

import (
	"math"

	"github.com/notesmith/notesmith/internal/errors"
)

// Supported octave range. A single decimal digit selects the octave, and
// octave 9 is rejected to keep every legal pitch below the audible ceiling
// used by the frequency table.
const (
	MinOctave = 0
	MaxOctave = 8
)

// chromatic position of each natural letter within one octave, following
// the ordering c, c#, d, d#, e, f, f#, g, g#, a, a#, b.
var chromaticIndex = map[byte]int{
	'c': 0, 'd': 2, 'e': 4, 'f': 5, 'g': 7, 'a': 9, 'b': 11,
}

// Pitch is a letter+accidental+octave triple. Letters are stored in
// canonical lower case. Frequency is always derived, never stored.
type Pitch struct {
	Letter byte
	Sharp  bool
	Octave int
}

// NewPitch validates and builds a Pitch. Sharp is rejected on e and b (the
// two natural-to-natural semitone steps), and the octave must lie within
// [MinOctave, MaxOctave].
func NewPitch(letter byte, sharp bool, octave int) (Pitch, error) {
	if _, ok := chromaticIndex[letter]; !ok {
		return Pitch{}, &errors.PitchError{Letter: letter, Sharp: sharp, Octave: octave, Reason: "letter must be a-g"}
	}
	if sharp && (letter == 'e' || letter == 'b') {
		return Pitch{}, &errors.PitchError{Letter: letter, Sharp: sharp, Octave: octave, Reason: "no sharp exists for this letter"}
	}
	if octave < MinOctave || octave > MaxOctave {
		return Pitch{}, &errors.PitchError{Letter: letter, Sharp: sharp, Octave: octave, Reason: "octave out of range"}
	}
	return Pitch{Letter: letter, Sharp: sharp, Octave: octave}, nil
}

// Frequency returns the equal-temperament frequency in Hz, anchored at
// a4 = 440 Hz.
func (p Pitch) Frequency() float64 {
	idx := chromaticIndex[p.Letter]
	if p.Sharp {
		idx++
	}
	semitones := idx - chromaticIndex['a'] + 12*(p.Octave-4)
	return 440 * math.Pow(2, float64(semitones)/12)
}

// String renders the pitch in notation form, e.g. "as4".
func (p Pitch) String() string {
	s := string(p.Letter)
	if p.Sharp {
		s += "s"
	}
	return s + string(byte('0'+p.Octave))
}
