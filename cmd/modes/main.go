package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/faiface/beep"
	"github.com/spf13/cobra"

	"go-modes/audio"
	"go-modes/config"
	"go-modes/debug"
	"go-modes/midi"
	"go-modes/sequencer"
	"go-modes/theory"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// options holds the flags shared by every subcommand
type options struct {
	configPath   string
	preset       string
	root         string
	mode         string
	sequence     string
	cadence      string
	tempo        int
	notesPerBeat int
	debugDir     string
	verbose      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "modes",
		Short: "Diatonic modes, degree patterns and MIDI export",
		Long: `modes spells the seven diatonic modes on any root, resolves scale
degrees across octaves and expands degree patterns into notes that can be
played on a MIDI port or written out as MIDI or WAV files.

Pattern: the sequence is a motif of degrees, replayed from each degree of
the cadence. The defaults are sequence 1,3,5,3 over cadence 1..8.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case opts.verbose:
				debug.EnableWriter(cmd.ErrOrStderr())
			case opts.debugDir != "":
				return debug.Enable(opts.debugDir)
			}
			return nil
		},
	}

	f := rootCmd.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "Config file (default: ~/.config/go-modes/config.json)")
	f.StringVar(&opts.preset, "preset", "", "Start from a saved preset (name or filename) instead of the config")
	f.StringVarP(&opts.root, "root", "r", "", "Root pitch, e.g. C4, F#3, Bb")
	f.StringVarP(&opts.mode, "mode", "m", "", "Mode number (1-7) or name (ionian, dorian, ..., major, minor)")
	f.StringVarP(&opts.sequence, "sequence", "s", "", "Pattern sequence degrees, e.g. 1,3,5,3")
	f.StringVarP(&opts.cadence, "cadence", "c", "", "Pattern cadence degrees, e.g. 1,4,5,1")
	f.IntVarP(&opts.tempo, "tempo", "t", 0, "Tempo in BPM")
	f.IntVar(&opts.notesPerBeat, "notes-per-beat", 0, "Pattern notes per beat")
	f.StringVar(&opts.debugDir, "debug", "", "Write debug.log to this directory")
	f.BoolVar(&opts.verbose, "verbose", false, "Write the debug log to stderr")

	rootCmd.AddCommand(
		newScaleCmd(opts),
		newDegreeCmd(opts),
		newPatternCmd(opts),
		newExportCmd(opts),
		newRenderCmd(opts),
		newPlayCmd(opts),
		newPortsCmd(),
		newPresetCmd(opts),
	)
	return rootCmd
}

// load reads the config file and applies any flags on top of it
func (o *options) load(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case o.preset != "":
		dir, derr := config.PresetsDir()
		if derr != nil {
			return nil, derr
		}
		cfg, err = config.LoadPreset(dir, o.preset)
	case o.configPath != "":
		cfg, err = config.LoadFile(o.configPath)
	default:
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Root = o.root
	}
	if flags.Changed("mode") {
		cfg.Mode = o.mode
	}
	if flags.Changed("sequence") {
		if cfg.Sequence, err = theory.ParseDegrees(o.sequence); err != nil {
			return nil, fmt.Errorf("--sequence: %w", err)
		}
	}
	if flags.Changed("cadence") {
		if cfg.Cadence, err = theory.ParseDegrees(o.cadence); err != nil {
			return nil, fmt.Errorf("--cadence: %w", err)
		}
	}
	if flags.Changed("tempo") {
		cfg.Tempo = o.tempo
	}
	if flags.Changed("notes-per-beat") {
		cfg.NotesPerBeat = o.notesPerBeat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (o *options) session(cmd *cobra.Command) (*sequencer.Session, error) {
	cfg, err := o.load(cmd)
	if err != nil {
		return nil, err
	}
	return sequencer.NewSession(cfg)
}

func newScaleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "scale",
		Short: "Show the scale tones with MIDI numbers and frequencies",
		Long: `Show the seven tones of the scale on --root in --mode.

Examples:
  modes scale --root D --mode dorian
  modes scale -r F#3 -m 6`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, s.Scale.Name())
			fmt.Fprintln(out, s.Scale.String())
			return writePitchTable(out, s.Scale.Tones(), func(i int) string {
				return strconv.Itoa(i + 1)
			})
		},
	}
}

func newDegreeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "degree <n>...",
		Short: "Resolve scale degrees, including ones beyond the octave",
		Long: `Resolve one or more scale degrees to pitches. Degrees above 7 climb
into higher octaves (8 is the root an octave up); negative degrees count
down from the root (-2 is the 7th an octave below). 0 and -1 are the root.

Negative degrees go after "--" so they are not read as flags.

Example:
  modes degree --root A --mode minor -- 1 5 8 -2 -8`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			degrees := make([]int, len(args))
			for i, a := range args {
				d, err := strconv.Atoi(a)
				if err != nil {
					return fmt.Errorf("degree %q: %w", a, theory.ErrInvalidArgument)
				}
				degrees[i] = d
			}
			s, err := opts.session(cmd)
			if err != nil {
				return err
			}
			pitches := make([]theory.Pitch, len(degrees))
			for i, d := range degrees {
				pitches[i] = s.Scale.Resolve(d)
			}
			return writePitchTable(cmd.OutOrStdout(), pitches, func(i int) string {
				return strconv.Itoa(degrees[i])
			})
		},
	}
}

func newPatternCmd(opts *options) *cobra.Command {
	var long bool
	cmd := &cobra.Command{
		Use:   "pattern",
		Short: "Expand the degree pattern into notes",
		Long: `Expand --sequence over --cadence in the scale and print the notes,
one cadence step per line.

Example:
  modes pattern --root C --mode ionian --sequence 1,3,5 --cadence 1,4,5,1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			tones := s.Pattern.Tones()
			if long {
				return writePitchTable(out, tones, func(i int) string { return strconv.Itoa(i + 1) })
			}
			fmt.Fprintf(out, "%s  sequence %s  cadence %s\n", s.Scale.Name(),
				theory.FormatDegrees(s.Pattern.Sequence), theory.FormatDegrees(s.Pattern.Cadence))
			per := max(len(s.Pattern.Sequence), 1)
			for i, p := range tones {
				sep := " "
				if (i+1)%per == 0 || i == len(tones)-1 {
					sep = "\n"
				}
				fmt.Fprint(out, p.String(), sep)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&long, "long", "l", false, "Show MIDI numbers and frequencies")
	return cmd
}

func newExportCmd(opts *options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the pattern as a Standard MIDI File",
		Long: `Write the pattern as a Standard MIDI File at the configured tempo.

Example:
  modes export --root D --mode dorian -o dorian.mid`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd)
			if err != nil {
				return err
			}
			events, _, err := s.Schedule()
			if err != nil {
				return err
			}
			err = midi.WriteSMFFile(output, events, midi.SMFOptions{
				BPM:        float64(s.Config.Tempo),
				Channel:    s.Config.Output.Channel,
				Resolution: sequencer.PPQ,
				Name:       s.Scale.Name(),
			})
			if err != nil {
				return err
			}
			return reportFile(cmd.OutOrStdout(), output, s.Pattern.Len())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "pattern.mid", "Output MIDI file")
	return cmd
}

func newRenderCmd(opts *options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the pattern to a WAV file with a sine voice",
		Long: `Render the pattern to a 16-bit stereo WAV file.

Example:
  modes render --root A --mode aeolian -o aeolian.wav`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd)
			if err != nil {
				return err
			}
			cfg := s.Config
			err = audio.WriteWAVFile(output, s.Pattern.Tones(), audio.Options{
				SampleRate:   beep.SampleRate(cfg.Audio.SampleRate),
				NoteDuration: s.Clock().NoteDuration(),
				Gate:         cfg.Gate,
				Volume:       cfg.Audio.Volume,
			})
			if err != nil {
				return err
			}
			return reportFile(cmd.OutOrStdout(), output, s.Pattern.Len())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "pattern.wav", "Output WAV file")
	return cmd
}

func newPlayCmd(opts *options) *cobra.Command {
	var port string
	var channel int
	var loop bool
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the pattern on a MIDI output port",
		Long: `Play the pattern on a MIDI output port. Ctrl-C stops playback and
releases every sounding note.

Examples:
  modes play --port "IAC Driver"
  modes play -r E -m phrygian --loop`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				s.Config.Output.PortName = port
			}
			if cmd.Flags().Changed("channel") {
				s.Config.Output.Channel = channel
			}

			out, err := midi.OpenOutput(s.Config.Output.PortName, s.Config.Output.Channel)
			if err != nil {
				return err
			}
			defer out.Close()

			player, err := s.NewPlayer()
			if err != nil {
				return err
			}
			player.Loop = loop
			w := cmd.OutOrStdout()
			player.OnNote = func(ev midi.Event) {
				fmt.Fprintf(w, "%3d  %s\n", ev.Index+1, s.Pattern.At(ev.Index))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(w, "%s on %s at %d bpm\n", s.Scale.Name(), out.Name(), s.Config.Tempo)
			if err := player.Play(ctx, out); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "Output port name or part of it (default: first port)")
	cmd.Flags().IntVar(&channel, "channel", 1, "MIDI channel 1-16")
	cmd.Flags().BoolVar(&loop, "loop", false, "Repeat until interrupted")
	return cmd
}

func newPortsCmd() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "ports",
		Short: "List MIDI output ports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if watch {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				w := midi.NewPortWatcher()
				go w.Run(ctx)
				for ev := range w.Events() {
					fmt.Fprintln(out, formatPortEvent(ev))
				}
				return nil
			}

			names := midi.ListPorts(3 * time.Second)
			if names == nil {
				return errors.New("timed out listing ports; the MIDI server may be hung (sudo killall coreaudiod midiserver)")
			}
			if len(names) == 0 {
				fmt.Fprintln(out, "no MIDI output ports")
				return nil
			}
			for i, name := range names {
				fmt.Fprintf(out, "%2d: %s\n", i, name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Report ports as they connect and disconnect")
	return cmd
}

func newPresetCmd(opts *options) *cobra.Command {
	presetCmd := &cobra.Command{
		Use:   "preset",
		Short: "Save and list named presets",
		Long: `Presets are timestamped copies of the settings, kept in
~/.config/go-modes/presets. Load one with --preset <name>.

Subcommands:
  save      Save the current settings
  list      List saved presets, newest first`,
	}

	saveCmd := &cobra.Command{
		Use:   "save [name]",
		Short: "Save the current settings (config plus flags) as a preset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			dir, err := config.PresetsDir()
			if err != nil {
				return err
			}
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			filename, err := config.SavePreset(dir, cfg, name, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", filename)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved presets, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.PresetsDir()
			if err != nil {
				return err
			}
			presets, err := config.ListPresets(dir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(presets) == 0 {
				fmt.Fprintln(out, "no presets")
				return nil
			}
			for _, p := range presets {
				name := p.Name
				if name == "" {
					name = "(unnamed)"
				}
				fmt.Fprintf(out, "%-20s %s\n", name, humanize.Time(p.Timestamp))
			}
			return nil
		},
	}

	presetCmd.AddCommand(saveCmd, listCmd)
	return presetCmd
}

func formatPortEvent(ev midi.PortEvent) string {
	if ev.Type == midi.PortConnected {
		return "+ " + ev.Name
	}
	return "- " + ev.Name
}

// writePitchTable prints one row per pitch: label, name, MIDI number, frequency
func writePitchTable(w io.Writer, pitches []theory.Pitch, label func(i int) string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Degree", "Pitch", "MIDI", "Hz")
	for i, p := range pitches {
		midiNum := strconv.Itoa(theory.MIDINumber(p))
		t.Row(label(i), p.String(), midiNum, strconv.FormatFloat(theory.FrequencyHz(p), 'f', 2, 64))
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func reportFile(w io.Writer, path string, notes int) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "wrote %s: %d notes, %s\n", path, notes, humanize.Bytes(uint64(info.Size())))
	return err
}
