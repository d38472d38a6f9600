package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"go-modes/theme"
	"go-modes/theory"
)

func TestKeyMarks(t *testing.T) {
	s := theory.NewScale(theory.MustParsePitch("C4"), theory.Ionian)
	marks := KeyMarks(s, 64, 60, 71)
	if len(marks) != 12 {
		t.Fatalf("%d marks", len(marks))
	}

	want := []KeyKind{
		KeyRoot, KeyOff, KeyInScale, KeyOff, KeyPlaying, KeyInScale,
		KeyOff, KeyInScale, KeyOff, KeyInScale, KeyOff, KeyInScale,
	}
	for i, m := range marks {
		if m.Note != 60+i {
			t.Errorf("mark %d note %d", i, m.Note)
		}
		if m.Kind != want[i] {
			t.Errorf("note %d kind %d, want %d", m.Note, m.Kind, want[i])
		}
	}
	if !marks[1].Black || marks[2].Black {
		t.Error("black key layout wrong")
	}
}

func TestKeyMarksSpelledScale(t *testing.T) {
	// F# major has six sharps; E# lands on the F key.
	s := theory.NewScale(theory.MustParsePitch("F#3"), theory.Ionian)
	var in []int
	for _, m := range KeyMarks(s, -1, 60, 71) {
		if m.Kind != KeyOff {
			in = append(in, m.Note%12)
		}
	}
	want := []int{1, 3, 5, 6, 8, 10, 11}
	if len(in) != len(want) {
		t.Fatalf("in scale %v, want %v", in, want)
	}
	for i := range want {
		if in[i] != want[i] {
			t.Errorf("in scale %v, want %v", in, want)
			break
		}
	}
}

func TestRenderKeyboard(t *testing.T) {
	s := theory.NewScale(theory.MustParsePitch("C4"), theory.Ionian)
	th := theme.New(nil)
	out := RenderKeyboard(th, KeyMarks(s, -1, 60, 71))

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("%d lines", len(lines))
	}
	for i, l := range lines {
		if w := lipgloss.Width(l); w != 12 {
			t.Errorf("line %d width %d", i, w)
		}
	}
	if !strings.ContainsRune(lines[1], th.Symbols.Root) {
		t.Errorf("root missing from white keys: %q", lines[1])
	}
	if !strings.ContainsRune(lines[0], th.Symbols.BlackKey) {
		t.Errorf("black keys missing: %q", lines[0])
	}
}

func TestRenderPattern(t *testing.T) {
	th := theme.New(nil)
	tones := []theory.Pitch{
		theory.MustParsePitch("C4"),
		theory.MustParsePitch("E4"),
		theory.MustParsePitch("G4"),
	}
	out := RenderPattern(th, tones, 1, 2)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines %q", lines)
	}
	if !strings.Contains(lines[0], "C4") || !strings.Contains(lines[0], "E4") || !strings.Contains(lines[1], "G4") {
		t.Errorf("pattern rendered as %q", out)
	}
	if RenderPattern(th, nil, -1, 8) != "" {
		t.Error("empty pattern should render nothing")
	}
}

func TestRenderKeyLegend(t *testing.T) {
	th := theme.New(nil)
	out := RenderKeyLegend(th)
	for _, want := range []string{"◆", "root", "●", "in scale", "▶", "playing"} {
		if !strings.Contains(out, want) {
			t.Errorf("legend %q missing %q", out, want)
		}
	}
	if strings.Contains(out, "\n") {
		t.Errorf("legend should be one line: %q", out)
	}
}

func TestKeyMarksBlackKeysFromAnyStart(t *testing.T) {
	s := theory.NewScale(theory.MustParsePitch("C4"), theory.Ionian)
	marks := KeyMarks(s, -1, 61, 72)
	want := []bool{true, false, true, false, false, true, false, true, false, true, false, false}
	for i, m := range marks {
		if m.Black != want[i] {
			t.Errorf("note %d black=%v, want %v", m.Note, m.Black, want[i])
		}
	}
}
