package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Key builds a binding whose help label is its first key
func Key(help string, keyboardKey ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keyboardKey...), key.WithHelp(keyboardKey[0], help))
}

type keyMap struct {
	Root   key.Binding
	Sharp  key.Binding
	Flat   key.Binding
	ModeUp key.Binding
	ModeDn key.Binding
	Octave key.Binding
	Tempo  key.Binding
	Play   key.Binding
	Save   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Root:   key.NewBinding(key.WithKeys("a", "b", "c", "d", "e", "f", "g"), key.WithHelp("a-g", "root letter")),
	Sharp:  key.NewBinding(key.WithKeys("#", "up"), key.WithHelp("#/↑", "sharpen root")),
	Flat:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "flatten root")),
	ModeUp: key.NewBinding(key.WithKeys("]", "right"), key.WithHelp("]/→", "next mode")),
	ModeDn: key.NewBinding(key.WithKeys("[", "left"), key.WithHelp("[/←", "previous mode")),
	Octave: key.NewBinding(key.WithKeys(",", "."), key.WithHelp(",/.", "octave down/up")),
	Tempo:  key.NewBinding(key.WithKeys("-", "+", "="), key.WithHelp("-/+", "tempo")),
	Play:   key.NewBinding(key.WithKeys(" ", "space", "p"), key.WithHelp("space", "play/stop")),
	Save:   Key("save config", "w"),
	Help:   Key("more keys", "?"),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Root, k.ModeUp, k.Play, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Root, k.Sharp, k.Flat, k.Octave},
		{k.ModeUp, k.ModeDn, k.Tempo},
		{k.Play, k.Save, k.Help, k.Quit},
	}
}

// edits reports whether msg is one of the session editing keys
func (k keyMap) edits(msg tea.KeyMsg) bool {
	return key.Matches(msg, k.Root, k.Sharp, k.Flat, k.ModeUp, k.ModeDn, k.Octave, k.Tempo)
}
