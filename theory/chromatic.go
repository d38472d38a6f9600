package theory

import "strings"

// Two cyclic alphabets. naturals holds the seven letters in order. semitones
// holds the twelve chromatic slots from C; a blank is a slot without a natural
// letter of its own, so E-F and B-C sit next to each other.
const (
	naturals  = "CDEFGAB"
	semitones = "C D EF G A B"
)

// SemitonesPerOctave is the size of the chromatic cycle.
const SemitonesPerOctave = len(semitones)

// floorMod returns i mod n in [0, n) for any sign of i.
func floorMod(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// floorDiv divides rounding towards negative infinity.
func floorDiv(i, n int) int {
	return (i - floorMod(i, n)) / n
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// slotAt looks up an alphabet with wraparound in both directions.
func slotAt(i int, alphabet string) byte {
	return alphabet[floorMod(i, len(alphabet))]
}

// baseSlot is the chromatic slot of a natural letter, C = 0 ... B = 11.
func baseSlot(l Letter) int {
	return strings.IndexByte(semitones, byte(l.orDefault()))
}

// letterIndex is the position of a natural letter in C D E F G A B.
func letterIndex(l Letter) int {
	return strings.IndexByte(naturals, byte(l.orDefault()))
}

// ChromaticIndex is the absolute semitone position of p: the slot of its
// letter plus its accidental plus twelve per octave. C0 is 0, middle C (C4) is 48.
func ChromaticIndex(p Pitch) int {
	return baseSlot(p.Letter) + p.Accidental + SemitonesPerOctave*p.Octave
}

// Interval is the signed number of semitones from one pitch up to another.
func Interval(from, to Pitch) int {
	return ChromaticIndex(to) - ChromaticIndex(from)
}

// SemitoneDistance is the octave-aware absolute distance between two pitches.
// This is the distance used for MIDI numbers and frequencies.
func SemitoneDistance(a, b Pitch) int {
	return abs(Interval(a, b))
}

// PitchClassDistance compares two pitches within a single chromatic cycle:
// octaves are ignored and the result is always in [0, 12).
func PitchClassDistance(a, b Pitch) int {
	ia := baseSlot(a.Letter) + a.Accidental
	ib := baseSlot(b.Letter) + b.Accidental
	return abs(ia-ib) % SemitonesPerOctave
}

// PitchClass is the position of p on the chromatic cycle, C = 0 ... B = 11.
func PitchClass(p Pitch) int {
	return floorMod(ChromaticIndex(p), SemitonesPerOctave)
}

// Enharmonic reports whether a and b sound the same, e.g. F#4 and Gb4.
func Enharmonic(a, b Pitch) bool {
	return ChromaticIndex(a) == ChromaticIndex(b)
}

// SemitonesFrom returns the chromatic alphabet rotated to start at the given
// pitch class, so a blank in it marks a black key counting up from there.
// Any integer is accepted; a MIDI note number works as its own pitch class.
func SemitonesFrom(pitchClass int) string {
	i := floorMod(pitchClass, SemitonesPerOctave)
	return semitones[i:] + semitones[:i]
}
