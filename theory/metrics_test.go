package theory

import (
	"errors"
	"math"
	"testing"
)

func TestMIDINumber(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"A0", 21},
		{"C1", 24},
		{"C4", 60},
		{"A4", 69},
		{"B#3", 60},
		{"Cb4", 59},
		{"C-1", 0},
		{"G9", 127},
		{"C8", 108},
	}
	for _, tt := range tests {
		if got := MIDINumber(MustParsePitch(tt.name)); got != tt.want {
			t.Errorf("MIDINumber(%s) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestMIDINumberMatchesDistance(t *testing.T) {
	for n := 0; n < 100; n++ {
		p := A0.Transpose(n / 12)
		p.Accidental = n % 12
		if got, want := MIDINumber(p), 21+SemitoneDistance(A0, p); got != want {
			t.Errorf("%v: MIDINumber %d, 21+distance %d", p, got, want)
		}
	}
}

func TestFrequencyHz(t *testing.T) {
	tests := []struct {
		name string
		want float64
	}{
		{"A0", 27.5},
		{"A3", 220},
		{"A4", 440},
		{"A5", 880},
		{"C4", 261.6256},
		{"E5", 659.2551},
		{"Bbb4", 391.9954}, // G4
	}
	for _, tt := range tests {
		got := FrequencyHz(MustParsePitch(tt.name))
		if math.Abs(got-tt.want) > 1e-3 {
			t.Errorf("FrequencyHz(%s) = %.4f, want %.4f", tt.name, got, tt.want)
		}
	}
}

func TestSampleScaleMetrics(t *testing.T) {
	s := NewScale(MustParsePitch("A0"), Aeolian)
	root := s.Resolve(1)
	if got := MIDINumber(root); got != 21 {
		t.Errorf("MIDINumber = %d, want 21", got)
	}
	if got := FrequencyHz(root); math.Abs(got-440/math.Pow(2, 4)) > 1e-9 {
		t.Errorf("FrequencyHz = %f, want 27.5", got)
	}
	// One semitone up the scale (B0 -> C1) is one MIDI step.
	if a, b := MIDINumber(s.Resolve(2)), MIDINumber(s.Resolve(3)); b-a != 1 {
		t.Errorf("B0 -> C1 = %d -> %d", a, b)
	}
}

func TestMIDIByte(t *testing.T) {
	if n, err := MIDIByte(MustParsePitch("C4")); err != nil || n != 60 {
		t.Errorf("MIDIByte(C4) = %d, %v", n, err)
	}
	for _, name := range []string{"G#9", "B-2", "C10"} {
		if _, err := MIDIByte(MustParsePitch(name)); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("MIDIByte(%s) error = %v, want ErrOutOfRange", name, err)
		}
	}
}
