package midi

import (
	"fmt"
	"io"
	"os"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"go-modes/debug"
)

// SMFOptions controls Standard MIDI File export
type SMFOptions struct {
	BPM        float64
	Channel    int    // 1-16
	Resolution uint16 // ticks per quarter note of the events
	Name       string // track name, optional
}

// WriteSMF writes tick-sorted events as a format 1 file: a tempo track and a
// single note track.
func WriteSMF(w io.Writer, events []Event, opts SMFOptions) error {
	if opts.Resolution == 0 {
		return fmt.Errorf("smf: zero resolution")
	}
	ch := uint8(0)
	if opts.Channel >= 1 && opts.Channel <= 16 {
		ch = uint8(opts.Channel - 1)
	}

	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(opts.Resolution)

	// Track 0: Tempo track
	var track0 smf.Track
	track0.Add(0, smf.MetaMeter(4, 4))
	track0.Add(0, smf.MetaTempo(opts.BPM))
	track0.Close(0)
	if err := sm.Add(track0); err != nil {
		return fmt.Errorf("error adding tempo track: %w", err)
	}

	var track smf.Track
	if opts.Name != "" {
		track.Add(0, smf.MetaTrackSequenceName(opts.Name))
	}
	var last int64
	for _, ev := range events {
		if ev.Tick < last {
			return fmt.Errorf("smf: event %s before tick %d", ev, last)
		}
		delta := uint32(ev.Tick - last)
		last = ev.Tick

		switch ev.Type {
		case NoteOn:
			track.Add(delta, gomidi.NoteOn(ch, ev.Note, ev.Velocity))
		case NoteOff:
			track.Add(delta, gomidi.NoteOff(ch, ev.Note))
		default:
			return fmt.Errorf("smf: unsupported event type 0x%02x", ev.Type)
		}
	}
	track.Close(0)
	if err := sm.Add(track); err != nil {
		return fmt.Errorf("error adding note track: %w", err)
	}

	n, err := sm.WriteTo(w)
	if err != nil {
		return fmt.Errorf("error writing MIDI file: %w", err)
	}
	debug.Log("midi", "wrote SMF: %d events, %d bytes", len(events), n)
	return nil
}

// WriteSMFFile is WriteSMF to a new file at path.
func WriteSMFFile(path string, events []Event, opts SMFOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSMF(f, events, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
