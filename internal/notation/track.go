package notation

// Event is one member of a chord: a pitched Sound or a silent Rest. The
// two cases are a closed set, selected by type switch during synthesis.
type Event interface {
	// LengthUnits is the event duration as a multiple of the base unit:
	// 1 plus the count of trailing '-' marks in the notation.
	LengthUnits() int

	event()
}

// Sound is a pitched event.
type Sound struct {
	Pitch Pitch
	Units int
}

func (s Sound) LengthUnits() int { return s.Units }
func (Sound) event()             {}

// Rest is a silent event, written as '0' in notation.
type Rest struct {
	Units int
}

func (r Rest) LengthUnits() int { return r.Units }
func (Rest) event()             {}

// Chord is a non-empty set of events that start simultaneously, composed
// with '*'. Member order carries no meaning.
type Chord struct {
	Events []Event
}

// MaxUnits is the chord's rendered duration in base units: the longest
// member. Shorter members go silent for the remainder.
func (c Chord) MaxUnits() int {
	max := 0
	for _, ev := range c.Events {
		if u := ev.LengthUnits(); u > max {
			max = u
		}
	}
	return max
}

// Track is the ordered chord sequence composed with '+', played
// back-to-back with no gaps.
type Track struct {
	Chords []Chord
}

// TotalUnits is the track duration in base units.
func (t Track) TotalUnits() int {
	total := 0
	for _, c := range t.Chords {
		total += c.MaxUnits()
	}
	return total
}
