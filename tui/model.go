package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-modes/config"
	"go-modes/debug"
	"go-modes/midi"
	"go-modes/sequencer"
	"go-modes/theme"
	"go-modes/theory"
	"go-modes/widgets"
)

// Output is where playback goes. *midi.Output is one.
type Output interface {
	sequencer.Sink
	Name() string
	Close() error
}

// Opener opens the configured output port
type Opener func(port string, channel int) (Output, error)

// OpenMIDI opens a hardware or virtual MIDI port
func OpenMIDI(port string, channel int) (Output, error) {
	out, err := midi.OpenOutput(port, channel)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// playback is one running Player
type playback struct {
	gen     int
	cancel  context.CancelFunc
	stopped chan struct{}
}

type Model struct {
	Session *sequencer.Session
	Ports   *midi.PortWatcher
	Theme   *theme.Theme

	open Opener
	save func(*config.Config) error
	help help.Model

	out      Output
	play     *playback
	gen      int
	notes    chan midi.Event
	done     chan PlayDoneMsg
	current  int // pattern index sounding, -1 when idle
	sounding int // MIDI note sounding, -1 when idle
	status   string
	err      error
	quitting bool
}

// NoteMsg reports a note the player just started
type NoteMsg midi.Event

// PlayDoneMsg reports that a player returned
type PlayDoneMsg struct {
	Gen int
	Err error
}

type PortEventMsg midi.PortEvent

// NewModel creates the TUI. ports may be nil to skip hot-plug reporting.
func NewModel(session *sequencer.Session, ports *midi.PortWatcher, th *theme.Theme, open Opener) Model {
	if open == nil {
		open = OpenMIDI
	}
	return Model{
		Session:  session,
		Ports:    ports,
		Theme:    th,
		open:     open,
		save:     (*config.Config).Save,
		help:     help.New(),
		notes:    make(chan midi.Event, 16),
		done:     make(chan PlayDoneMsg, 4),
		current:  -1,
		sounding: -1,
	}
}

func ListenForNotes(ch <-chan midi.Event) tea.Cmd {
	return func() tea.Msg {
		return NoteMsg(<-ch)
	}
}

func ListenForDone(ch <-chan PlayDoneMsg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

func ListenForPorts(w *midi.PortWatcher) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-w.Events()
		if !ok {
			return nil
		}
		return PortEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{ListenForNotes(m.notes), ListenForDone(m.done)}
	if m.Ports != nil {
		cmds = append(cmds, ListenForPorts(m.Ports))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			m.stop()
			if m.out != nil {
				m.out.Close()
				m.out = nil
			}
			return m, tea.Quit

		case key.Matches(msg, keys.Play):
			if m.play != nil {
				m.stop()
				m.status = "stopped"
			} else {
				m.start()
			}

		case key.Matches(msg, keys.Save):
			if err := m.save(m.Session.Config); err != nil {
				m.err = err
			} else {
				m.err = nil
				m.status = "config saved"
			}

		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll

		case keys.edits(msg):
			changed, err := m.Session.HandleKey(msg.String())
			m.err = err
			if changed && err == nil && m.play != nil {
				// Restart so the new pattern takes over
				m.stop()
				m.start()
			}
		}

	case NoteMsg:
		m.current = msg.Index
		m.sounding = int(msg.Note)
		return m, ListenForNotes(m.notes)

	case PlayDoneMsg:
		if m.play != nil && msg.Gen == m.play.gen {
			m.play = nil
			m.current, m.sounding = -1, -1
			if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
				m.err = msg.Err
			}
		}
		return m, ListenForDone(m.done)

	case PortEventMsg:
		event := midi.PortEvent(msg)
		if event.Type == midi.PortConnected {
			m.status = "port connected: " + event.Name
		} else {
			m.status = "port disconnected: " + event.Name
			if m.out != nil && m.out.Name() == event.Name {
				m.stop()
				m.out.Close()
				m.out = nil
			}
		}
		if m.Ports != nil {
			return m, ListenForPorts(m.Ports)
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}

	return m, nil
}

// start opens the output if needed and plays the pattern on a loop
func (m *Model) start() {
	if m.out == nil {
		cfg := m.Session.Config.Output
		out, err := m.open(cfg.PortName, cfg.Channel)
		if err != nil {
			m.err = err
			return
		}
		m.out = out
	}

	player, err := m.Session.NewPlayer()
	if err != nil {
		m.err = err
		return
	}
	player.Loop = true
	notes := m.notes
	player.OnNote = func(ev midi.Event) {
		select {
		case notes <- ev:
		default:
			// UI is behind, drop
		}
	}

	m.gen++
	ctx, cancel := context.WithCancel(context.Background())
	pb := &playback{gen: m.gen, cancel: cancel, stopped: make(chan struct{})}
	out, done := m.out, m.done
	go func() {
		err := player.Play(ctx, out)
		close(pb.stopped)
		done <- PlayDoneMsg{Gen: pb.gen, Err: err}
	}()

	m.play = pb
	m.err = nil
	m.status = "playing on " + m.out.Name()
	debug.Log("tui", "play gen=%d %s", pb.gen, m.Session.Scale.Name())
}

// stop cancels playback and waits for its notes to be released
func (m *Model) stop() {
	if m.play == nil {
		return
	}
	m.play.cancel()
	<-m.play.stopped
	m.play = nil
	m.current, m.sounding = -1, -1
}

// Playing reports whether a player is running
func (m Model) Playing() bool {
	return m.play != nil
}

var stepNames = map[int]string{1: "H", 2: "W"}

// keyboardRange is two octaves starting at the C at or below the root
func keyboardRange(root theory.Pitch) (low, high int) {
	low = theory.MIDINumber(root) - theory.PitchClass(root)
	low = min(max(low, 0), 127-23)
	return low, low + 23
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.Session
	cfg := s.Config
	th := m.Theme

	playState := "STOP"
	if m.play != nil {
		playState = "PLAY"
	}
	port := "no output"
	if m.out != nil {
		port = m.out.Name()
	}
	header := th.Title().Render(fmt.Sprintf("go-modes  %s  %3dbpm  %s  %s", playState, cfg.Tempo, s.Scale.Name(), port))

	var steps []string
	for _, st := range s.Scale.Steps() {
		steps = append(steps, stepNames[st])
	}
	scaleLine := lipgloss.NewStyle().Foreground(th.FG()).Render(s.Scale.String()) +
		"   " + th.Faint().Render(strings.Join(steps, " "))

	low, high := keyboardRange(s.Root())
	keyboard := widgets.RenderKeyboard(th, widgets.KeyMarks(s.Scale, m.sounding, low, high))

	pattern := widgets.RenderPattern(th, s.Pattern.Tones(), m.current, len(s.Pattern.Sequence))
	patternHeader := th.Faint().Render(fmt.Sprintf("sequence %s  cadence %s  (%d notes)",
		theory.FormatDegrees(s.Pattern.Sequence), theory.FormatDegrees(s.Pattern.Cadence), s.Pattern.Len()))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(scaleLine)
	out.WriteString("\n\n")
	out.WriteString(keyboard)
	out.WriteString("\n")
	out.WriteString(widgets.RenderKeyLegend(th))
	out.WriteString("\n\n")
	out.WriteString(patternHeader)
	out.WriteString("\n")
	out.WriteString(pattern)
	out.WriteString("\n\n")

	if m.err != nil {
		out.WriteString(th.Error().Render("error: " + m.err.Error()))
		out.WriteString("\n")
	} else if m.status != "" {
		out.WriteString(th.Faint().Render(m.status))
		out.WriteString("\n")
	}
	if m.Ports != nil {
		out.WriteString(th.Faint().Render("ports: " + strings.Join(m.Ports.Ports(), ", ")))
		out.WriteString("\n")
	}
	out.WriteString(m.help.View(keys))

	return out.String()
}
