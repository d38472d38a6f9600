package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-modes/theme"
	"go-modes/theory"
)

// KeyKind classifies one key of the keyboard widget
type KeyKind int

const (
	KeyOff     KeyKind = iota // not in the scale
	KeyInScale                // scale tone
	KeyRoot                   // scale root's pitch class
	KeyPlaying                // sounding now, wins over the others
)

// KeyMark is one key of the keyboard widget
type KeyMark struct {
	Note  int // MIDI note number
	Black bool
	Kind  KeyKind
}

// KeyMarks classifies the MIDI notes low..high against s. playing is the
// sounding MIDI note, or -1.
func KeyMarks(s *theory.Scale, playing, low, high int) []KeyMark {
	var inScale [12]bool
	for _, t := range s.Tones() {
		inScale[theory.PitchClass(t)] = true
	}
	root := theory.PitchClass(s.Root)
	slots := theory.SemitonesFrom(low)

	marks := make([]KeyMark, 0, max(high-low+1, 0))
	for n := low; n <= high; n++ {
		pc := ((n % 12) + 12) % 12
		m := KeyMark{Note: n, Black: slots[(n-low)%len(slots)] == ' '}
		switch {
		case n == playing:
			m.Kind = KeyPlaying
		case pc == root:
			m.Kind = KeyRoot
		case inScale[pc]:
			m.Kind = KeyInScale
		}
		marks = append(marks, m)
	}
	return marks
}

// RenderKeyboard draws marks as two rows, black keys above white keys, one
// column per semitone.
func RenderKeyboard(th *theme.Theme, marks []KeyMark) string {
	var top, bottom strings.Builder
	for _, m := range marks {
		cell := renderKey(th, m)
		if m.Black {
			top.WriteString(cell)
			bottom.WriteString(" ")
		} else {
			top.WriteString(" ")
			bottom.WriteString(cell)
		}
	}
	return top.String() + "\n" + bottom.String()
}

func renderKey(th *theme.Theme, m KeyMark) string {
	sym, color := keyGlyph(th, m)
	return lipgloss.NewStyle().Foreground(color).Render(string(sym))
}

// keyGlyph is the symbol and colour a key is drawn with.
func keyGlyph(th *theme.Theme, m KeyMark) (rune, lipgloss.Color) {
	switch m.Kind {
	case KeyPlaying:
		return th.Symbols.Playing, th.Success()
	case KeyRoot:
		return th.Symbols.Root, th.Cursor()
	case KeyInScale:
		return th.Symbols.InScale, th.Accent()
	}
	if m.Black {
		return th.Symbols.BlackKey, th.Muted()
	}
	return th.Symbols.WhiteKey, th.FG()
}

// RenderPattern lists the pattern's note names, wrapping every perLine notes
// and highlighting the one at current (-1 for none).
func RenderPattern(th *theme.Theme, tones []theory.Pitch, current, perLine int) string {
	if perLine < 1 {
		perLine = len(tones)
	}
	normal := lipgloss.NewStyle().Foreground(th.FG()).Width(5)
	active := lipgloss.NewStyle().Foreground(th.Success()).Bold(true).Width(5)

	var lines []string
	var line strings.Builder
	for i, p := range tones {
		if i > 0 && i%perLine == 0 {
			lines = append(lines, strings.TrimRight(line.String(), " "))
			line.Reset()
		}
		if i == current {
			line.WriteString(active.Render(p.String()))
		} else {
			line.WriteString(normal.Render(p.String()))
		}
	}
	if line.Len() > 0 {
		lines = append(lines, strings.TrimRight(line.String(), " "))
	}
	return strings.Join(lines, "\n")
}
