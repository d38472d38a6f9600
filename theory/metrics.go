package theory

import (
	"fmt"
	"math"
)

// A0 is the lowest A on a piano, MIDI note 21.
var A0 = Pitch{Letter: 'A', Degree: 1}

const (
	midiA0      = 21
	concertA    = 440.0
	a0ToConcert = 48 // semitones from A0 up to A4
)

// MIDINumber returns the MIDI note number of p. Middle C (C4) is 60.
// The result is not clamped to 0..127; see MIDIByte.
func MIDINumber(p Pitch) int {
	return midiA0 + Interval(A0, p)
}

// FrequencyHz returns the twelve-tone equal temperament frequency of p with
// A4 tuned to 440 Hz.
func FrequencyHz(p Pitch) float64 {
	return concertA * math.Pow(2, float64(Interval(A0, p)-a0ToConcert)/12)
}

// MIDIByte is MIDINumber checked against the 0..127 range of a MIDI message.
func MIDIByte(p Pitch) (uint8, error) {
	n := MIDINumber(p)
	if n < 0 || n > 127 {
		return 0, fmt.Errorf("%s is MIDI note %d: %w", p, n, ErrOutOfRange)
	}
	return uint8(n), nil
}
