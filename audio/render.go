package audio

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"

	"go-modes/debug"
	"go-modes/theory"
)

// Envelope times
const (
	attack  = 5 * time.Millisecond
	release = 20 * time.Millisecond
)

// Options controls rendering
type Options struct {
	SampleRate   beep.SampleRate
	NoteDuration time.Duration // one pattern slot
	Gate         float64       // sounding fraction of the slot, (0,1]
	Volume       float64       // peak amplitude, (0,1]
}

// Format returns the WAV format for these options: stereo, 16-bit.
func (o Options) Format() beep.Format {
	return beep.Format{
		SampleRate:  o.SampleRate,
		NumChannels: 2,
		Precision:   2,
	}
}

func (o Options) withDefaults() Options {
	if o.SampleRate <= 0 {
		o.SampleRate = 44100
	}
	if o.NoteDuration <= 0 {
		o.NoteDuration = 250 * time.Millisecond
	}
	if o.Gate <= 0 || o.Gate > 1 {
		o.Gate = 1
	}
	if o.Volume <= 0 || o.Volume > 1 {
		o.Volume = 0.3
	}
	return o
}

// Render synthesizes pitches one per slot as decaying sine tones.
func Render(pitches []theory.Pitch, opts Options) [][2]float64 {
	opts = opts.withDefaults()
	rate := opts.SampleRate
	slot := rate.N(opts.NoteDuration)
	sounding := max(int(float64(slot)*opts.Gate), 1)
	attackN := rate.N(attack)
	releaseN := min(rate.N(release), sounding)

	buffer := make([][2]float64, slot*len(pitches))
	for i, p := range pitches {
		freq := theory.FrequencyHz(p)
		start := i * slot
		for j := 0; j < sounding; j++ {
			t := float64(j) / float64(rate)

			env := math.Exp(-t * 3)
			if j < attackN {
				env *= float64(j) / float64(attackN)
			}
			if left := sounding - j; left < releaseN {
				env *= float64(left) / float64(releaseN)
			}

			sample := math.Sin(2*math.Pi*freq*t) * env * opts.Volume
			buffer[start+j][0] = sample
			buffer[start+j][1] = sample
		}
	}

	debug.Log("audio", "rendered %d notes, %d samples at %d Hz", len(pitches), len(buffer), rate)
	return buffer
}

// sliceStreamer is a beep.Streamer over a slice of stereo samples.
type sliceStreamer struct {
	buf [][2]float64
	pos int
}

// NewStreamer streams buf once
func NewStreamer(buf [][2]float64) beep.Streamer {
	return &sliceStreamer{buf: buf}
}

func (s *sliceStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	n = copy(samples, s.buf[s.pos:])
	s.pos += n
	return n, true
}

func (s *sliceStreamer) Err() error {
	return nil
}

// WriteWAV renders pitches and encodes them as WAV to w
func WriteWAV(w io.WriteSeeker, pitches []theory.Pitch, opts Options) error {
	opts = opts.withDefaults()
	samples := Render(pitches, opts)
	if err := wav.Encode(w, NewStreamer(samples), opts.Format()); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	return nil
}

// WriteWAVFile is WriteWAV to a new file at path
func WriteWAVFile(path string, pitches []theory.Pitch, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteWAV(f, pitches, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
