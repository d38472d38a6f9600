package sequencer

import "time"

// PPQ is the tick resolution: pulses per quarter note.
const PPQ = 96

// Clock maps ticks to wall time for a tempo and note rate.
type Clock struct {
	Tempo        int // BPM
	NotesPerBeat int
}

func (c Clock) bpm() int {
	if c.Tempo <= 0 {
		return 120
	}
	return c.Tempo
}

// TicksPerNote is the length of one pattern slot in ticks.
func (c Clock) TicksPerNote() int64 {
	n := c.NotesPerBeat
	if n < 1 {
		n = 1
	}
	if n > PPQ {
		n = PPQ
	}
	return PPQ / int64(n)
}

// TickToDuration converts a tick offset to elapsed time since tick 0.
func (c Clock) TickToDuration(tick int64) time.Duration {
	return time.Duration(tick) * time.Minute / time.Duration(c.bpm()*PPQ)
}

// DurationToTick is the inverse of TickToDuration, rounded to the nearest tick.
func (c Clock) DurationToTick(d time.Duration) int64 {
	return int64((d*time.Duration(c.bpm()*PPQ) + time.Minute/2) / time.Minute)
}

// NoteDuration is the wall time of one pattern slot.
func (c Clock) NoteDuration() time.Duration {
	return c.TickToDuration(c.TicksPerNote())
}
