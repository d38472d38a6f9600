package theory

import (
	"strconv"
	"strings"
)

// ScaleLength is the number of tones in a diatonic scale.
const ScaleLength = len(naturals)

// ionian is the whole/half step template of mode 1. Every other mode is a
// rotation of it.
var ionian = [ScaleLength]int{2, 2, 1, 2, 2, 2, 1}

// Mode numbers
const (
	Ionian = iota + 1
	Dorian
	Phrygian
	Lydian
	Mixolydian
	Aeolian
	Locrian
)

var modeNames = []string{"Ionian", "Dorian", "Phrygian", "Lydian", "Mixolydian", "Aeolian", "Locrian"}

var modeAliases = map[string]int{
	"major": Ionian,
	"minor": Aeolian,
}

// NormalizeMode folds any mode number into 1..7. Multiples of seven are mode 7,
// anything below 1 is mode 1.
func NormalizeMode(mode int) int {
	if mode < 1 {
		return Ionian
	}
	m := mode % ScaleLength
	if m == 0 {
		return ScaleLength
	}
	return m
}

// ModeName returns the church-mode name for a mode number.
func ModeName(mode int) string {
	return modeNames[NormalizeMode(mode)-1]
}

// ParseMode accepts a mode number ("6") or a name ("aeolian", "Minor", "dor").
// Names may be abbreviated to any unambiguous prefix. Anything else is mode 1.
func ParseMode(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Ionian
	}
	if n, err := strconv.Atoi(s); err == nil {
		return NormalizeMode(n)
	}
	if m, ok := modeAliases[s]; ok {
		return m
	}

	found := 0
	for i, name := range modeNames {
		if strings.HasPrefix(strings.ToLower(name), s) {
			if found != 0 {
				return Ionian // ambiguous
			}
			found = i + 1
		}
	}
	if found == 0 {
		return Ionian
	}
	return found
}

// StepPattern returns the semitone steps between consecutive degrees of a mode:
// the Ionian template rotated left by mode-1.
func StepPattern(mode int) [ScaleLength]int {
	start := NormalizeMode(mode) - 1
	var steps [ScaleLength]int
	for i := range steps {
		steps[i] = ionian[(start+i)%ScaleLength]
	}
	return steps
}

// Scale is a seven tone diatonic scale built from a root and a mode.
// It is immutable once built.
type Scale struct {
	Root  Pitch
	Mode  int
	tones [ScaleLength]Pitch
}

// NewScale builds the scale on root for the given mode. Each degree gets the
// next natural letter after the previous one and whatever accidental puts it
// on the right chromatic slot, so every letter appears exactly once. Tones
// ascend from the root: a degree that passes C moves up an octave.
func NewScale(root Pitch, mode int) *Scale {
	root.Letter = root.Letter.orDefault()
	root.Degree = 1

	s := &Scale{
		Root: root,
		Mode: NormalizeMode(mode),
	}

	steps := StepPattern(s.Mode)
	semis := 0
	for i := 1; i <= ScaleLength; i++ {
		s.tones[i-1] = spellDegree(root, i, semis)
		semis += steps[i-1]
	}

	return s
}

// spellDegree finds the pitch for a degree that lies semis semitones above root.
func spellDegree(root Pitch, degree, semis int) Pitch {
	target := slotAt(letterIndex(root.Letter)+degree-1, naturals)
	slot := baseSlot(root.Letter) + semis
	acc := root.Accidental

	// Look for the target letter around the expected slot, nearest first and
	// behind before ahead at each distance.
	if slotAt(slot, semitones) != target {
		for d := 1; d < ScaleLength; d++ {
			if slotAt(slot-d, semitones) == target {
				acc += d
				break
			} else if slotAt(slot+d, semitones) == target {
				acc -= d
				break
			}
		}
	}

	tone := Pitch{
		Letter:     Letter(target),
		Accidental: acc,
		Degree:     degree,
	}
	// ChromaticIndex(tone) is its position in octave 0 here.
	tone.Octave = floorDiv(ChromaticIndex(root)+semis-ChromaticIndex(tone), SemitonesPerOctave)
	return tone
}

// Tones returns a copy of the seven tones, degree 1 first.
func (s *Scale) Tones() []Pitch {
	out := make([]Pitch, ScaleLength)
	copy(out, s.tones[:])
	return out
}

// Tone returns degree d (1..7) of the scale.
func (s *Scale) Tone(d int) Pitch {
	return s.tones[d-1]
}

// Len is always ScaleLength.
func (s *Scale) Len() int {
	return len(s.tones)
}

// Steps returns the step pattern the scale was built from.
func (s *Scale) Steps() [ScaleLength]int {
	return StepPattern(s.Mode)
}

// Name returns e.g. "Bb Dorian".
func (s *Scale) Name() string {
	return s.Root.Spelling() + " " + ModeName(s.Mode)
}

// Degree returns the 1-based degree whose pitch class matches p.
func (s *Scale) Degree(p Pitch) (int, bool) {
	pc := PitchClass(p)
	for i, t := range s.tones {
		if PitchClass(t) == pc {
			return i + 1, true
		}
	}
	return 0, false
}

// Contains reports whether p's pitch class is in the scale.
func (s *Scale) Contains(p Pitch) bool {
	_, ok := s.Degree(p)
	return ok
}

// String lists the spellings followed by the root in parentheses,
// e.g. "A B C D E F G (A)".
func (s *Scale) String() string {
	names := make([]string, 0, ScaleLength)
	for _, t := range s.tones {
		names = append(names, t.Spelling())
	}
	return strings.Join(names, " ") + " (" + s.tones[0].Spelling() + ")"
}
