package sequencer

import (
	"strings"

	"go-modes/config"
	"go-modes/debug"
	"go-modes/midi"
	"go-modes/theory"
)

// Accidentals the session editor allows on a root.
const maxAccidental = 2

// Session is the editable state behind the TUI: a config and the scale and
// pattern built from it. Every edit goes through the config so the session
// can be saved as is.
type Session struct {
	Config  *config.Config
	Scale   *theory.Scale
	Pattern *theory.Pattern
}

// NewSession builds the scale and pattern described by cfg
func NewSession(cfg *config.Config) (*Session, error) {
	s := &Session{Config: cfg}
	if err := s.rebuild(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) rebuild() error {
	scale, err := s.Config.Scale()
	if err != nil {
		return err
	}
	s.Scale = scale
	s.Pattern = theory.NewPattern(scale, s.Config.Sequence, s.Config.Cadence)
	debug.Log("session", "%s, %d notes", scale.Name(), s.Pattern.Len())
	return nil
}

// Root returns the current root pitch
func (s *Session) Root() theory.Pitch {
	return s.Scale.Root
}

// SetRoot replaces the root, keeping the mode
func (s *Session) SetRoot(p theory.Pitch) error {
	prev := s.Config.Root
	s.Config.Root = p.String()
	if err := s.rebuild(); err != nil {
		s.Config.Root = prev
		return err
	}
	return nil
}

// SetLetter moves the root to a natural letter in the same octave
func (s *Session) SetLetter(letter rune) error {
	root := s.Root()
	return s.SetRoot(theory.NewPitch(letter, 0, 1, root.Octave))
}

// Alter adds delta to the root's accidental, within double flat to double sharp
func (s *Session) Alter(delta int) error {
	root := s.Root()
	acc := root.Accidental + delta
	if acc < -maxAccidental || acc > maxAccidental {
		return nil
	}
	root.Accidental = acc
	return s.SetRoot(root)
}

// Transpose moves the root by whole octaves
func (s *Session) Transpose(octaves int) error {
	return s.SetRoot(s.Root().Transpose(octaves))
}

// SetMode selects a mode by number
func (s *Session) SetMode(mode int) error {
	s.Config.Mode = strings.ToLower(theory.ModeName(mode))
	return s.rebuild()
}

// StepMode moves delta modes along, wrapping Locrian to Ionian and back
func (s *Session) StepMode(delta int) error {
	m := (s.Scale.Mode - 1 + delta) % theory.ScaleLength
	if m < 0 {
		m += theory.ScaleLength
	}
	return s.SetMode(m + 1)
}

// SetTempo sets the BPM, clamped to the config range
func (s *Session) SetTempo(bpm int) {
	s.Config.Tempo = min(max(bpm, config.MinTempo), config.MaxTempo)
}

// Clock returns the playback clock for the current settings
func (s *Session) Clock() Clock {
	return Clock{Tempo: s.Config.Tempo, NotesPerBeat: s.Config.NotesPerBeat}
}

// Schedule turns the current pattern into timed events
func (s *Session) Schedule() ([]midi.Event, int64, error) {
	return Schedule(s.Pattern.Tones(), ScheduleOptions{
		Clock:    s.Clock(),
		Gate:     s.Config.Gate,
		Velocity: uint8(s.Config.Velocity),
	})
}

// NewPlayer returns a player for the current pattern
func (s *Session) NewPlayer() (*Player, error) {
	events, length, err := s.Schedule()
	if err != nil {
		return nil, err
	}
	return NewPlayer(s.Clock(), events, length), nil
}

// HandleKey applies an editing key and reports whether it changed anything.
func (s *Session) HandleKey(key string) (bool, error) {
	switch key {
	case "a", "b", "c", "d", "e", "f", "g":
		return true, s.SetLetter(rune(key[0]))
	case "#", "up":
		return true, s.Alter(1)
	case "down":
		return true, s.Alter(-1)
	case "right", "]":
		return true, s.StepMode(1)
	case "left", "[":
		return true, s.StepMode(-1)
	case ".":
		return true, s.Transpose(1)
	case ",":
		return true, s.Transpose(-1)
	case "+", "=":
		s.SetTempo(s.Config.Tempo + 5)
		return true, nil
	case "-":
		s.SetTempo(s.Config.Tempo - 5)
		return true, nil
	}
	return false, nil
}
