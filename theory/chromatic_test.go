package theory

import "testing"

func TestFloorHelpers(t *testing.T) {
	tests := []struct {
		i, n, mod, div int
	}{
		{0, 7, 0, 0},
		{6, 7, 6, 0},
		{7, 7, 0, 1},
		{13, 7, 6, 1},
		{-1, 7, 6, -1},
		{-7, 7, 0, -1},
		{-8, 7, 6, -2},
		{-13, 12, 11, -2},
	}
	for _, tt := range tests {
		if got := floorMod(tt.i, tt.n); got != tt.mod {
			t.Errorf("floorMod(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.mod)
		}
		if got := floorDiv(tt.i, tt.n); got != tt.div {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.div)
		}
	}
}

func TestSlotAtWraps(t *testing.T) {
	if got := slotAt(-1, semitones); got != 'B' {
		t.Errorf("slotAt(-1) = %q, want B", got)
	}
	if got := slotAt(12, semitones); got != 'C' {
		t.Errorf("slotAt(12) = %q, want C", got)
	}
	if got := slotAt(-25, semitones); got != 'B' {
		t.Errorf("slotAt(-25) = %q, want B", got)
	}
	if got := slotAt(-8, naturals); got != 'B' {
		t.Errorf("slotAt(-8, naturals) = %q, want B", got)
	}
	if got := slotAt(1, semitones); got != ' ' {
		t.Errorf("slotAt(1) = %q, want blank", got)
	}
}

func TestChromaticIndex(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"C0", 0},
		{"A0", 9},
		{"C4", 48},
		{"A4", 57},
		{"B#3", 48},
		{"Cb4", 47},
		{"E#4", 53},
		{"Fb4", 52},
		{"C-1", -12},
		{"Dbb4", 48},
	}
	for _, tt := range tests {
		if got := ChromaticIndex(MustParsePitch(tt.name)); got != tt.want {
			t.Errorf("ChromaticIndex(%s) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestDistances(t *testing.T) {
	c4 := MustParsePitch("C4")
	g4 := MustParsePitch("G4")
	c5 := MustParsePitch("C5")
	e3 := MustParsePitch("E3")

	if got := SemitoneDistance(c4, g4); got != 7 {
		t.Errorf("SemitoneDistance(C4, G4) = %d, want 7", got)
	}
	if got := SemitoneDistance(g4, c4); got != 7 {
		t.Errorf("SemitoneDistance(G4, C4) = %d, want 7", got)
	}
	if got := SemitoneDistance(c4, c5); got != 12 {
		t.Errorf("SemitoneDistance(C4, C5) = %d, want 12", got)
	}
	if got := Interval(c4, e3); got != -8 {
		t.Errorf("Interval(C4, E3) = %d, want -8", got)
	}

	// Within one cycle octaves do not matter.
	if got := PitchClassDistance(c4, c5); got != 0 {
		t.Errorf("PitchClassDistance(C4, C5) = %d, want 0", got)
	}
	if got := PitchClassDistance(c4, e3); got != 4 {
		t.Errorf("PitchClassDistance(C4, E3) = %d, want 4", got)
	}
	if got := PitchClassDistance(MustParsePitch("Cb"), MustParsePitch("B#")); got != 1 {
		t.Errorf("PitchClassDistance(Cb, B#) = %d, want 1", got)
	}
}

func TestPitchClassAndEnharmonic(t *testing.T) {
	if got := PitchClass(MustParsePitch("Cb4")); got != 11 {
		t.Errorf("PitchClass(Cb4) = %d, want 11", got)
	}
	if got := PitchClass(MustParsePitch("B#-3")); got != 0 {
		t.Errorf("PitchClass(B#-3) = %d, want 0", got)
	}
	if !Enharmonic(MustParsePitch("F#4"), MustParsePitch("Gb4")) {
		t.Error("F#4 and Gb4 should be enharmonic")
	}
	if !Enharmonic(MustParsePitch("B#3"), MustParsePitch("C4")) {
		t.Error("B#3 and C4 should be enharmonic")
	}
	if Enharmonic(MustParsePitch("F#4"), MustParsePitch("Gb5")) {
		t.Error("F#4 and Gb5 are an octave apart")
	}
}

func TestSemitonesFrom(t *testing.T) {
	tests := []struct {
		from int
		want string
	}{
		{0, "C D EF G A B"},
		{2, "D EF G A BC "},
		{11, "BC D EF G A "},
		{-1, "BC D EF G A "},
		{14, "D EF G A BC "},
		{PitchClass(MustParsePitch("Gb3")), " G A BC D EF"},
	}
	for _, tt := range tests {
		if got := SemitonesFrom(tt.from); got != tt.want {
			t.Errorf("SemitonesFrom(%d) = %q, want %q", tt.from, got, tt.want)
		}
	}
}
