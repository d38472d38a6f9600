package sequencer

import (
	"context"
	"runtime"
	"slices"
	"sync/atomic"
	"time"

	"go-modes/debug"
	"go-modes/midi"
)

// Events dispatched later than this are reported to the debug log.
const lateThreshold = 5 * time.Millisecond

// Sink receives events as they fall due. *midi.Output is one.
type Sink interface {
	Send(ev midi.Event) error
}

// Player dispatches a schedule in real time
type Player struct {
	clock  Clock
	events []midi.Event
	length int64

	// Loop restarts the schedule at length ticks until the context ends.
	Loop bool
	// OnNote is called after every NoteOn is sent. Runs on the player goroutine.
	OnNote func(ev midi.Event)

	playing atomic.Bool
}

// NewPlayer creates a player for events already sorted by tick
func NewPlayer(clock Clock, events []midi.Event, length int64) *Player {
	return &Player{
		clock:  clock,
		events: slices.Clone(events),
		length: length,
	}
}

// Playing reports whether Play is running
func (p *Player) Playing() bool {
	return p.playing.Load()
}

// Play sends every event to sink at its time and blocks until the schedule
// ends, ctx is done or the sink fails. Notes still sounding on return are
// released.
func (p *Player) Play(ctx context.Context, sink Sink) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	p.playing.Store(true)
	defer p.playing.Store(false)

	// Event strings are only built when someone is reading the log.
	logEvents := debug.Enabled()
	if logEvents {
		debug.Log("player", "start: %d events over %d ticks at %dbpm, loop=%v",
			len(p.events), p.length, p.clock.bpm(), p.Loop)
	}

	sounding := make(map[uint8]bool)
	defer func() {
		for note := range sounding {
			sink.Send(midi.Event{Type: midi.NoteOff, Note: note})
		}
	}()

	t0 := time.Now()
	var offset int64
	for {
		for _, ev := range p.events {
			ev.Tick += offset
			wait := time.Until(t0.Add(p.clock.TickToDuration(ev.Tick)))
			if wait > 0 {
				timer := time.NewTimer(wait)
				select {
				case <-ctx.Done():
					timer.Stop()
					return ctx.Err()
				case <-timer.C:
					// Ready
				}
			} else if err := ctx.Err(); err != nil {
				return err
			} else if wait < -lateThreshold {
				debug.LogEvery(16, "player", "tick %d running %v late", ev.Tick, -wait)
			}

			if err := sink.Send(ev); err != nil {
				return err
			}
			if logEvents {
				debug.Log("player", "%s", ev)
			}

			switch ev.Type {
			case midi.NoteOn:
				sounding[ev.Note] = true
				if p.OnNote != nil {
					p.OnNote(ev)
				}
			case midi.NoteOff:
				delete(sounding, ev.Note)
			}
		}

		if !p.Loop || len(p.events) == 0 || p.length <= 0 {
			return nil
		}
		offset += p.length
	}
}
