package notation

import (
	"fmt"
	"unicode"

	"github.com/notesmith/notesmith/internal/errors"
)

// Parse turns notation text into a Track.
//
// Whitespace and newlines carry no meaning anywhere and are stripped first.
// '+' composes chords in sequence, '*' composes simultaneous notes inside a
// chord. A note is `letter ['s'] octave-digit {'-'}`, a rest is `'0' {'-'}`;
// each trailing '-' extends the event by one base unit. Letters are
// case-insensitive and normalized to lower case.
//
// Errors are *errors.ParseError carrying the byte offset in the original
// text; illegal pitches (sharp on e/b, octave out of range) are caught here
// eagerly and wrap the underlying *errors.PitchError.
func Parse(text string) (Track, error) {
	stripped, origPos := stripSpace(text)
	posAt := func(i int) int {
		if i < len(origPos) {
			return origPos[i]
		}
		return len(text)
	}

	if len(stripped) == 0 {
		return Track{}, &errors.ParseError{Pos: 0, Reason: "empty notation", Cause: errors.ErrEmptyTrack}
	}

	var track Track
	for start := 0; start <= len(stripped); {
		end := start
		for end < len(stripped) && stripped[end] != '+' {
			end++
		}
		if end == start {
			return Track{}, &errors.ParseError{Pos: posAt(start), Reason: "empty chord fragment", Cause: errors.ErrEmptyChord}
		}
		chord, err := parseChord(stripped, start, end, posAt)
		if err != nil {
			return Track{}, err
		}
		track.Chords = append(track.Chords, chord)
		start = end + 1
		if end == len(stripped) {
			break
		}
	}
	return track, nil
}

// parseChord parses one '+' fragment: one or more '*'-separated events.
func parseChord(buf []byte, start, end int, posAt func(int) int) (Chord, error) {
	var chord Chord
	for s := start; s <= end; {
		e := s
		for e < end && buf[e] != '*' {
			e++
		}
		if e == s {
			return Chord{}, &errors.ParseError{Pos: posAt(s), Reason: "empty note fragment", Cause: errors.ErrEmptyChord}
		}
		ev, err := parseEvent(buf, s, e, posAt)
		if err != nil {
			return Chord{}, err
		}
		chord.Events = append(chord.Events, ev)
		s = e + 1
		if e == end {
			break
		}
	}
	return chord, nil
}

// parseEvent parses one note or rest fragment.
func parseEvent(buf []byte, start, end int, posAt func(int) int) (Event, error) {
	c := lower(buf[start])
	if c == '0' {
		units, err := parseDashes(buf, start+1, end, posAt)
		if err != nil {
			return nil, err
		}
		return Rest{Units: units}, nil
	}
	if c < 'a' || c > 'g' {
		return nil, errors.NewParseError(posAt(start), fmt.Sprintf("expected note letter a-g or rest 0, got %q", buf[start]))
	}

	i := start + 1
	sharp := false
	if i < end && lower(buf[i]) == 's' {
		sharp = true
		i++
	}
	if i >= end || buf[i] < '0' || buf[i] > '9' {
		return nil, errors.NewParseError(posAt(i), "expected octave digit")
	}
	octave := int(buf[i] - '0')
	i++

	pitch, err := NewPitch(c, sharp, octave)
	if err != nil {
		return nil, &errors.ParseError{Pos: posAt(start), Reason: err.Error(), Cause: err}
	}

	units, err := parseDashes(buf, i, end, posAt)
	if err != nil {
		return nil, err
	}
	return Sound{Pitch: pitch, Units: units}, nil
}

// parseDashes counts the trailing '-' run and rejects anything else.
func parseDashes(buf []byte, start, end int, posAt func(int) int) (int, error) {
	units := 1
	for i := start; i < end; i++ {
		if buf[i] != '-' {
			return 0, errors.NewParseError(posAt(i), fmt.Sprintf("unexpected character %q after note", buf[i]))
		}
		units++
	}
	return units, nil
}

// stripSpace drops every whitespace rune and records, for each remaining
// byte, its offset in the original text so errors can point back at it.
func stripSpace(text string) ([]byte, []int) {
	stripped := make([]byte, 0, len(text))
	origPos := make([]int, 0, len(text))
	for i, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		for j, n := 0, len(string(r)); j < n; j++ {
			stripped = append(stripped, text[i+j])
			origPos = append(origPos, i)
		}
	}
	return stripped, origPos
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
