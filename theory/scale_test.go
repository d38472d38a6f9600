package theory

import (
	"strings"
	"testing"
)

func spell(tones []Pitch) string {
	names := make([]string, len(tones))
	for i, t := range tones {
		names[i] = t.Spelling()
	}
	return strings.Join(names, " ")
}

func TestScaleSpellings(t *testing.T) {
	tests := []struct {
		root string
		mode int
		want string
	}{
		{"C", Ionian, "C D E F G A B"},
		{"A", Aeolian, "A B C D E F G"},
		{"D", Dorian, "D E F G A B C"},
		{"E", Phrygian, "E F G A B C D"},
		{"F", Lydian, "F G A B C D E"},
		{"G", Mixolydian, "G A B C D E F"},
		{"B", Locrian, "B C D E F G A"},
		{"Bb", Ionian, "Bb C D Eb F G A"},
		{"F#", Ionian, "F# G# A# B C# D# E#"},
		{"Gb", Ionian, "Gb Ab Bb Cb Db Eb F"},
		{"C", Aeolian, "C D Eb F G Ab Bb"},
		{"C#", Locrian, "C# D E F# G A B"},
		{"Eb", Lydian, "Eb F G A Bb C D"},
		{"D#", Ionian, "D# E# F## G# A# B# C##"},
		{"Fb", Ionian, "Fb Gb Ab Bbb Cb Db Eb"},
		{"E", Mixolydian, "E F# G# A B C# D"},
		{"C", Phrygian, "C Db Eb F G Ab Bb"},
	}
	for _, tt := range tests {
		s := NewScale(MustParsePitch(tt.root), tt.mode)
		if got := spell(s.Tones()); got != tt.want {
			t.Errorf("%s %s = %q, want %q", tt.root, ModeName(tt.mode), got, tt.want)
		}
	}
}

func TestNaturalScalesHaveNoAccidentals(t *testing.T) {
	for _, root := range []string{"C", "A"} {
		mode := Ionian
		if root == "A" {
			mode = Aeolian
		}
		for _, tone := range NewScale(MustParsePitch(root), mode).Tones() {
			if tone.Accidental != 0 {
				t.Errorf("%s %s: %s has accidental %d", root, ModeName(mode), tone.Spelling(), tone.Accidental)
			}
		}
	}
}

// Every root (naturals with up to two flats or sharps) in every mode must use
// consecutive letters and land on the cumulative step pattern.
func TestScaleInvariants(t *testing.T) {
	for _, l := range naturals {
		for acc := -2; acc <= 2; acc++ {
			for oct := 0; oct <= 8; oct += 4 {
				root := NewPitch(l, acc, 1, oct)
				for mode := 1; mode <= 7; mode++ {
					checkScale(t, root, mode)
				}
			}
		}
	}
}

func checkScale(t *testing.T, root Pitch, mode int) {
	t.Helper()
	s := NewScale(root, mode)
	tones := s.Tones()
	if len(tones) != ScaleLength {
		t.Fatalf("%s: %d tones", s.Name(), len(tones))
	}
	if tones[0] != root {
		t.Errorf("%s: first tone %v, want root %v", s.Name(), tones[0], root)
	}

	steps := StepPattern(mode)
	start := letterIndex(root.Letter)
	seen := make(map[Letter]bool)
	cum := 0
	for i, tone := range tones {
		wantLetter := Letter(naturals[(start+i)%ScaleLength])
		if tone.Letter != wantLetter {
			t.Errorf("%s degree %d: letter %s, want %s", s.Name(), i+1, tone.Letter, wantLetter)
		}
		if seen[tone.Letter] {
			t.Errorf("%s: letter %s repeated", s.Name(), tone.Letter)
		}
		seen[tone.Letter] = true

		if got := Interval(root, tone); got != cum {
			t.Errorf("%s degree %d (%s): %d semitones above root, want %d", s.Name(), i+1, tone, got, cum)
		}
		if got := SemitoneDistance(root, tone); got != cum {
			t.Errorf("%s degree %d: distance %d, want %d", s.Name(), i+1, got, cum)
		}
		if tone.Degree != i+1 {
			t.Errorf("%s degree %d labelled %d", s.Name(), i+1, tone.Degree)
		}
		cum += steps[i]
	}
	if cum != SemitonesPerOctave {
		t.Errorf("%s: steps sum to %d", s.Name(), cum)
	}
}

func TestScaleOctaves(t *testing.T) {
	tests := []struct {
		root string
		mode int
		want string
	}{
		{"C4", Ionian, "C4 D4 E4 F4 G4 A4 B4"},
		{"A4", Aeolian, "A4 B4 C5 D5 E5 F5 G5"},
		{"A0", Aeolian, "A0 B0 C1 D1 E1 F1 G1"},
		{"B#3", Ionian, "B#3 C##4 D##4 E#4 F##4 G##4 A##4"},
		{"Cb4", Ionian, "Cb4 Db4 Eb4 Fb4 Gb4 Ab4 Bb4"},
		{"G-1", Mixolydian, "G-1 A-1 B-1 C0 D0 E0 F0"},
	}
	for _, tt := range tests {
		s := NewScale(MustParsePitch(tt.root), tt.mode)
		var names []string
		for _, tone := range s.Tones() {
			names = append(names, tone.String())
		}
		if got := strings.Join(names, " "); got != tt.want {
			t.Errorf("%s %s = %q, want %q", tt.root, ModeName(tt.mode), got, tt.want)
		}
	}
}

func TestNormalizeMode(t *testing.T) {
	tests := []struct{ in, want int }{
		{1, 1}, {6, 6}, {7, 7}, {8, 1}, {13, 6}, {14, 7}, {21, 7},
		{0, 1}, {-1, 1}, {-6, 1},
	}
	for _, tt := range tests {
		if got := NormalizeMode(tt.in); got != tt.want {
			t.Errorf("NormalizeMode(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
	if got := NewScale(MustParsePitch("C"), 0).Mode; got != Ionian {
		t.Errorf("NewScale mode 0 -> %d, want 1", got)
	}
	// The step pattern follows the normalised mode, not a backward rotation.
	for _, m := range []int{0, -1, -7} {
		if got := NewScale(MustParsePitch("C"), m).Steps(); got != StepPattern(Ionian) {
			t.Errorf("NewScale mode %d steps %v, want Ionian", m, got)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1", Ionian},
		{"6", Aeolian},
		{"9", Dorian},
		{"-3", Ionian},
		{"ionian", Ionian},
		{"Dorian", Dorian},
		{"PHRYG", Phrygian},
		{"mix", Mixolydian},
		{"major", Ionian},
		{"minor", Aeolian},
		{"lo", Locrian},
		{"l", Ionian}, // lydian or locrian
		{"blues", Ionian},
		{"", Ionian},
	}
	for _, tt := range tests {
		if got := ParseMode(tt.in); got != tt.want {
			t.Errorf("ParseMode(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestStepPattern(t *testing.T) {
	tests := []struct {
		mode int
		want [ScaleLength]int
	}{
		{Ionian, [ScaleLength]int{2, 2, 1, 2, 2, 2, 1}},
		{Dorian, [ScaleLength]int{2, 1, 2, 2, 2, 1, 2}},
		{Aeolian, [ScaleLength]int{2, 1, 2, 2, 1, 2, 2}},
		{Locrian, [ScaleLength]int{1, 2, 2, 1, 2, 2, 2}},
		{15, [ScaleLength]int{2, 2, 1, 2, 2, 2, 1}},
	}
	for _, tt := range tests {
		if got := StepPattern(tt.mode); got != tt.want {
			t.Errorf("StepPattern(%d) = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestScaleString(t *testing.T) {
	s := NewScale(MustParsePitch("A"), Aeolian)
	if got, want := s.String(), "A B C D E F G (A)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := s.Name(), "A Aeolian"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
}

func TestScaleDegreeLookup(t *testing.T) {
	s := NewScale(MustParsePitch("D4"), Ionian)
	if d, ok := s.Degree(MustParsePitch("F#7")); !ok || d != 3 {
		t.Errorf("Degree(F#7) = %d, %v; want 3, true", d, ok)
	}
	if d, ok := s.Degree(MustParsePitch("Db2")); !ok || d != 7 {
		t.Errorf("Degree(Db2) = %d, %v; want 7 (C#), true", d, ok)
	}
	if s.Contains(MustParsePitch("F4")) {
		t.Error("D major should not contain F")
	}
}

func TestTonesReturnsCopy(t *testing.T) {
	s := NewScale(MustParsePitch("C4"), Ionian)
	tones := s.Tones()
	tones[0] = MustParsePitch("F#2")
	if s.Tone(1) != MustParsePitch("C4") {
		t.Errorf("scale changed through Tones(): %v", s.Tone(1))
	}
}
