package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for expected failure modes
var (
	ErrEmptyTrack = errors.New("notation contains no chords")
	ErrEmptyChord = errors.New("chord contains no notes")
	ErrNoSamples  = errors.New("render produced no samples")
	ErrNoPlayback = errors.New("audio playback unavailable")
)

// ParseError reports malformed notation. Pos is the byte offset of the
// offending character in the original input, before whitespace stripping.
type ParseError struct {
	Pos    int
	Reason string
	Cause  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("notation syntax error at position %d: %s", e.Pos, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a ParseError
func NewParseError(pos int, reason string) *ParseError {
	return &ParseError{Pos: pos, Reason: reason}
}

// PitchError reports an illegal pitch: a sharp on a letter that has no
// sharp, or an octave outside the supported range.
type PitchError struct {
	Letter byte
	Sharp  bool
	Octave int
	Reason string
}

func (e *PitchError) Error() string {
	name := string(e.Letter)
	if e.Sharp {
		name += "s"
	}
	return fmt.Sprintf("invalid pitch %s%d: %s", name, e.Octave, e.Reason)
}

// ShapeError reports an oscillator shape outside the five supported kinds.
type ShapeError struct {
	Shape string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unsupported wave shape %q (want sin, square, saw, backsaw or triangular)", e.Shape)
}

// ConfigError reports an invalid wave or envelope configuration.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}
