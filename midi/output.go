package midi

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"go-modes/debug"
)

// ErrNoPort is returned when no output port matches.
var ErrNoPort = errors.New("no MIDI output port")

// Output sends note events to one channel of a MIDI port and remembers which
// notes are sounding so they can all be released.
type Output struct {
	name    string
	channel uint8 // 0-based
	send    func(gomidi.Message) error
	port    drivers.Out

	mu       sync.Mutex
	sounding map[uint8]bool
}

// NewOutput wraps a send function. channel is 1-16.
func NewOutput(name string, channel int, send func(gomidi.Message) error) *Output {
	if channel < 1 || channel > 16 {
		channel = 1
	}
	return &Output{
		name:     name,
		channel:  uint8(channel - 1),
		send:     send,
		sounding: make(map[uint8]bool),
	}
}

// OpenOutput opens the named output port. An empty name picks the first
// port; otherwise an exact match wins over a case-insensitive substring match.
func OpenOutput(portName string, channel int) (*Output, error) {
	port, err := findOutPort(portName)
	if err != nil {
		return nil, err
	}

	send, err := gomidi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", port.String(), err)
	}

	debug.Log("midi", "opened %s ch=%d", port.String(), channel)
	o := NewOutput(port.String(), channel, send)
	o.port = port
	return o, nil
}

func findOutPort(name string) (drivers.Out, error) {
	ports := gomidi.GetOutPorts()
	if len(ports) == 0 {
		return nil, ErrNoPort
	}
	if name == "" {
		return ports[0], nil
	}

	var partial drivers.Out
	want := strings.ToLower(name)
	for _, p := range ports {
		if p.String() == name {
			return p, nil
		}
		if partial == nil && strings.Contains(strings.ToLower(p.String()), want) {
			partial = p
		}
	}
	if partial != nil {
		return partial, nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrNoPort)
}

// Name returns the port name.
func (o *Output) Name() string {
	return o.name
}

// Send writes one event. A NoteOn for a note that is already sounding is
// preceded by a NoteOff so the voice retriggers.
func (o *Output) Send(ev Event) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch ev.Type {
	case NoteOn:
		if o.sounding[ev.Note] {
			if err := o.send(gomidi.NoteOff(o.channel, ev.Note)); err != nil {
				return err
			}
		}
		o.sounding[ev.Note] = true
		return o.send(gomidi.NoteOn(o.channel, ev.Note, ev.Velocity))
	case NoteOff:
		if !o.sounding[ev.Note] {
			return nil
		}
		delete(o.sounding, ev.Note)
		return o.send(gomidi.NoteOff(o.channel, ev.Note))
	}
	return fmt.Errorf("unsupported event type 0x%02x", ev.Type)
}

// Panic releases every sounding note.
func (o *Output) Panic() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	var errs []error
	for note := range o.sounding {
		if err := o.send(gomidi.NoteOff(o.channel, note)); err != nil {
			errs = append(errs, err)
		}
		delete(o.sounding, note)
	}
	return errors.Join(errs...)
}

// Close releases sounding notes and closes the port.
func (o *Output) Close() error {
	err := o.Panic()
	if o.port != nil {
		if cerr := o.port.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
