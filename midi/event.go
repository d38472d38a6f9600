package midi

import "fmt"

// MIDI message types
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
)

// Event represents a MIDI event in the sequencer
type Event struct {
	Tick     int64 // position in sequencer ticks
	Type     uint8 // NoteOn, NoteOff
	Note     uint8
	Velocity uint8
	Index    int // position of the pitch in the played pattern
}

func (e Event) String() string {
	kind := "on"
	if e.Type == NoteOff {
		kind = "off"
	}
	return fmt.Sprintf("%d:%s:%d", e.Tick, kind, e.Note)
}
