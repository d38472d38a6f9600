package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-modes/theme"
)

// legendKinds are the highlighted key kinds, in legend order.
var legendKinds = []struct {
	kind KeyKind
	name string
}{
	{KeyRoot, "root"},
	{KeyInScale, "in scale"},
	{KeyPlaying, "playing"},
}

// RenderSwatch renders sym in color
func RenderSwatch(sym rune, color lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(color).Render(string(sym))
}

// RenderLegendItem renders a single legend item: "◆ name"
func RenderLegendItem(sym rune, color lipgloss.Color, name string) string {
	return RenderSwatch(sym, color) + " " + name
}

// RenderKeyLegend explains the keyboard's highlights on one line, using the
// same symbols and colours as RenderKeyboard.
func RenderKeyLegend(th *theme.Theme) string {
	items := make([]string, len(legendKinds))
	for i, l := range legendKinds {
		sym, color := keyGlyph(th, KeyMark{Kind: l.kind})
		items[i] = RenderLegendItem(sym, color, l.name)
	}
	return strings.Join(items, "   ")
}
