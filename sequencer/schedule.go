package sequencer

import (
	"fmt"

	"go-modes/midi"
	"go-modes/theory"
)

// ScheduleOptions controls how a pitch list becomes timed events
type ScheduleOptions struct {
	Clock    Clock
	Gate     float64 // sounding fraction of each slot, (0,1]
	Velocity uint8
}

// Schedule lays pitches out one per slot. Each pitch gets a NoteOn at the
// start of its slot and a NoteOff Gate of the way through it, so a note is
// always released before the next one starts. The second return value is the
// total length in ticks, which is where a loop restarts.
func Schedule(pitches []theory.Pitch, opts ScheduleOptions) ([]midi.Event, int64, error) {
	slot := opts.Clock.TicksPerNote()
	gate := opts.Gate
	if gate <= 0 || gate > 1 {
		gate = 1
	}
	gateTicks := max(int64(float64(slot)*gate), 1)
	vel := opts.Velocity
	if vel == 0 || vel > 127 {
		vel = 100
	}

	events := make([]midi.Event, 0, 2*len(pitches))
	for i, p := range pitches {
		note, err := theory.MIDIByte(p)
		if err != nil {
			return nil, 0, fmt.Errorf("note %d: %w", i+1, err)
		}
		start := int64(i) * slot
		events = append(events,
			midi.Event{Tick: start, Type: midi.NoteOn, Note: note, Velocity: vel, Index: i},
			midi.Event{Tick: start + gateTicks, Type: midi.NoteOff, Note: note, Index: i},
		)
	}
	return events, int64(len(pitches)) * slot, nil
}
