package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go-modes/debug"
	"go-modes/theory"
)

// Tempo limits, same range the sequencer accepts.
const (
	MinTempo = 20
	MaxTempo = 300
)

// OutputConfig defines the MIDI output used for live playback
type OutputConfig struct {
	PortName string `json:"portName,omitempty"`
	Channel  int    `json:"channel,omitempty"` // 1-16
}

// AudioConfig defines the WAV renderer settings
type AudioConfig struct {
	SampleRate int     `json:"sampleRate,omitempty"`
	Volume     float64 `json:"volume,omitempty"` // 0-1
}

// Config is the main configuration structure
type Config struct {
	Root         string       `json:"root"`
	Mode         string       `json:"mode"`
	Sequence     []int        `json:"sequence"`
	Cadence      []int        `json:"cadence"`
	Tempo        int          `json:"tempo"`
	NotesPerBeat int          `json:"notesPerBeat"`
	Gate         float64      `json:"gate"` // fraction of a note slot that sounds
	Velocity     int          `json:"velocity"`
	Output       OutputConfig `json:"output,omitempty"`
	Audio        AudioConfig  `json:"audio,omitempty"`
	Palette      string       `json:"palette,omitempty"` // GIMP .gpl file for the TUI
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Root:         "C4",
		Mode:         "ionian",
		Sequence:     slices.Clone(theory.DefaultSequence),
		Cadence:      slices.Clone(theory.DefaultCadence),
		Tempo:        120,
		NotesPerBeat: 2,
		Gate:         0.8,
		Velocity:     100,
		Output: OutputConfig{
			Channel: 1,
		},
		Audio: AudioConfig{
			SampleRate: 44100,
			Volume:     0.3,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-modes"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a config from path. Missing fields keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			debug.Log("config", "no config at %s, using defaults", path)
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	debug.Log("config", "loaded %s", path)
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory.
func (c *Config) SaveFile(path string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	debug.Log("config", "saving %s", path)
	return os.WriteFile(path, data, 0644)
}

// Validate clamps numeric settings into range and checks the root pitch.
func (c *Config) Validate() error {
	if _, err := theory.ParsePitch(c.Root); err != nil {
		return fmt.Errorf("root: %w", err)
	}

	c.Tempo = clamp(c.Tempo, MinTempo, MaxTempo)
	if c.NotesPerBeat < 1 {
		c.NotesPerBeat = 1
	}
	if c.Gate <= 0 || c.Gate > 1 {
		c.Gate = 1
	}
	c.Velocity = clamp(c.Velocity, 1, 127)
	c.Output.Channel = clamp(c.Output.Channel, 1, 16)
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = 44100
	}
	if c.Audio.Volume <= 0 || c.Audio.Volume > 1 {
		c.Audio.Volume = 0.3
	}
	return nil
}

// RootPitch parses Root.
func (c *Config) RootPitch() (theory.Pitch, error) {
	return theory.ParsePitch(c.Root)
}

// ModeNumber parses Mode; unknown names fall back to mode 1.
func (c *Config) ModeNumber() int {
	return theory.ParseMode(c.Mode)
}

// Scale builds the configured scale.
func (c *Config) Scale() (*theory.Scale, error) {
	root, err := c.RootPitch()
	if err != nil {
		return nil, err
	}
	return theory.NewScale(root, c.ModeNumber()), nil
}

// Pattern builds the configured pattern over the configured scale.
func (c *Config) Pattern() (*theory.Pattern, error) {
	s, err := c.Scale()
	if err != nil {
		return nil, err
	}
	return theory.NewPattern(s, c.Sequence, c.Cadence), nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
