package theory

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// DefaultOctave is used when a pitch is parsed without an octave number.
// Octaves follow scientific pitch notation: C4 is middle C, A4 is 440 Hz.
const DefaultOctave = 4

// Letter is one of the seven natural note names C D E F G A B.
type Letter byte

// Valid reports whether l is a natural letter.
func (l Letter) Valid() bool {
	return l >= 'A' && l <= 'G'
}

func (l Letter) String() string {
	return string(rune(l.orDefault()))
}

// orDefault maps anything that is not a natural letter to C.
func (l Letter) orDefault() Letter {
	if !l.Valid() {
		return 'C'
	}
	return l
}

// Pitch is a spelled note: a natural letter, an accidental offset in semitones
// (negative = flats, positive = sharps), the scale degree it was built for and
// an octave number. Pitches are plain values; compare them with ==.
type Pitch struct {
	Letter     Letter
	Accidental int
	Degree     int // informational label, 1..7 inside a scale
	Octave     int
}

// NewPitch builds a pitch from a letter, normalizing it to upper case.
// Letters outside A..G silently become C.
func NewPitch(letter rune, accidental, degree, octave int) Pitch {
	l := unicode.ToUpper(letter)
	if l < 'A' || l > 'G' {
		l = 'C'
	}
	return Pitch{
		Letter:     Letter(l),
		Accidental: accidental,
		Degree:     degree,
		Octave:     octave,
	}
}

// Spelling returns the letter followed by one "b" per flat or one "#" per sharp.
func (p Pitch) Spelling() string {
	marks := ""
	switch {
	case p.Accidental < 0:
		marks = strings.Repeat("b", -p.Accidental)
	case p.Accidental > 0:
		marks = strings.Repeat("#", p.Accidental)
	}
	return p.Letter.String() + marks
}

// String returns the spelling with the octave appended, e.g. "Bb3".
func (p Pitch) String() string {
	return p.Spelling() + strconv.Itoa(p.Octave)
}

// WithOctave returns a copy of p in octave o.
func (p Pitch) WithOctave(o int) Pitch {
	p.Octave = o
	return p
}

// Transpose returns a copy of p moved by whole octaves.
func (p Pitch) Transpose(octaves int) Pitch {
	p.Octave += octaves
	return p
}

// ParsePitch parses names such as "C", "f#", "Bb3", "Ebb-1" or "G##5".
// A missing octave defaults to DefaultOctave. Unlike NewPitch it rejects
// anything it does not understand.
func ParsePitch(s string) (Pitch, error) {
	name := strings.TrimSpace(s)
	if name == "" {
		return Pitch{}, fmt.Errorf("empty pitch name: %w", ErrInvalidArgument)
	}

	runes := []rune(name)
	l := unicode.ToUpper(runes[0])
	if l < 'A' || l > 'G' {
		return Pitch{}, fmt.Errorf("pitch %q: unknown letter %q: %w", s, runes[0], ErrInvalidArgument)
	}

	sharps, flats := 0, 0
	i := 1
accidentals:
	for ; i < len(runes); i++ {
		switch runes[i] {
		case '#', '♯':
			sharps++
		case 'b', '♭':
			flats++
		default:
			break accidentals
		}
	}
	if sharps > 0 && flats > 0 {
		return Pitch{}, fmt.Errorf("pitch %q: mixed sharps and flats: %w", s, ErrInvalidArgument)
	}

	octave := DefaultOctave
	if rest := string(runes[i:]); rest != "" {
		o, err := strconv.Atoi(rest)
		if err != nil {
			return Pitch{}, fmt.Errorf("pitch %q: bad octave %q: %w", s, rest, ErrInvalidArgument)
		}
		octave = o
	}

	return NewPitch(l, sharps-flats, 1, octave), nil
}

// MustParsePitch is like ParsePitch but panics on error. Meant for constants
// and tests.
func MustParsePitch(s string) Pitch {
	p, err := ParsePitch(s)
	if err != nil {
		panic(err)
	}
	return p
}
