package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	// Keyboard widget
	WhiteKey rune // █ natural outside the scale
	BlackKey rune // ▌ accidental outside the scale
	InScale  rune // ● scale tone
	Root     rune // ◆ scale root
	Playing  rune // ▶ sounding now

	// Pattern strip
	Step    rune // · pattern note
	Current rune // ● current pattern note
}

func New(palette *Palette) *Theme {
	if palette == nil {
		palette = Default()
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			WhiteKey: '█',
			BlackKey: '▌',
			InScale:  '●',
			Root:     '◆',
			Playing:  '▶',

			Step:    '·',
			Current: '●',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0   // near black
	RoleSurface = 0.125 // dark blue
	RoleMuted   = 0.25  // slate
	RoleFG      = 0.375 // pale blue (readable)
	RoleAccent  = 0.5   // teal
	RoleCursor  = 0.625 // pink
	RoleActive  = 0.75  // red
	RoleWarning = 0.875 // orange
	RoleSuccess = 1.0   // yellow
)

// Style helpers

func (t *Theme) BG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleBG))
}

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Active() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleActive))
}

func (t *Theme) Cursor() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleCursor))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

func (t *Theme) Success() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSuccess))
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

// Title styles a heading line
func (t *Theme) Title() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Accent())
}

// Faint styles secondary text
func (t *Theme) Faint() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted())
}

// Error styles error lines
func (t *Theme) Error() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Active())
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(Hex(c))
}

// Hex formats c as #rrggbb
func Hex(c RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
