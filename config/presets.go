package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go-modes/debug"
)

const presetTimeFormat = "2006-01-02_15-04-05"

// PresetInfo describes a saved preset file
type PresetInfo struct {
	Filename  string
	Name      string // parsed from filename (empty if unnamed)
	Timestamp time.Time
}

// PresetsDir returns the presets directory path
func PresetsDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "presets"), nil
}

// ListPresets returns the presets in dir, newest first
func ListPresets(dir string) ([]PresetInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []PresetInfo{}, nil
		}
		return nil, err
	}

	presets := []PresetInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, ok := parsePresetFilename(entry.Name())
		if ok {
			presets = append(presets, info)
		}
	}

	// Sort by timestamp, newest first
	sort.SliceStable(presets, func(i, j int) bool {
		return presets[i].Timestamp.After(presets[j].Timestamp)
	})
	return presets, nil
}

// parsePresetFilename reads 2024-01-15_14-30-00.json or 2024-01-15_14-30-00_name.json
func parsePresetFilename(filename string) (PresetInfo, bool) {
	base, ok := strings.CutSuffix(filename, ".json")
	if !ok || len(base) < len(presetTimeFormat) {
		return PresetInfo{}, false
	}
	ts, err := time.Parse(presetTimeFormat, base[:len(presetTimeFormat)])
	if err != nil {
		return PresetInfo{}, false
	}

	info := PresetInfo{Filename: filename, Timestamp: ts}
	if rest := base[len(presetTimeFormat):]; rest != "" {
		name, ok := strings.CutPrefix(rest, "_")
		if !ok {
			return PresetInfo{}, false
		}
		info.Name = name
	}
	return info, true
}

// SavePreset writes c to dir as a timestamped preset and returns its filename
func SavePreset(dir string, c *Config, name string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}

	filename := now.Format(presetTimeFormat)
	if safe := sanitizeFilename(name); safe != "" {
		filename += "_" + safe
	}
	filename += ".json"

	debug.Log("config", "saving preset %s", filename)
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// LoadPreset loads a preset by filename or by name; an empty ref loads the
// newest one. A name matches the newest preset saved under it.
func LoadPreset(dir, ref string) (*Config, error) {
	presets, err := ListPresets(dir)
	if err != nil {
		return nil, err
	}
	if len(presets) == 0 {
		return nil, fmt.Errorf("no presets in %s", dir)
	}

	filename := ""
	switch {
	case ref == "":
		filename = presets[0].Filename
	case strings.HasSuffix(ref, ".json"):
		filename = ref
	default:
		safe := sanitizeFilename(ref)
		for _, p := range presets {
			if p.Name == safe {
				filename = p.Filename
				break
			}
		}
	}
	if filename == "" {
		return nil, fmt.Errorf("no preset named %q", ref)
	}

	path := filepath.Join(dir, filepath.Base(filename))
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// DeletePreset removes a preset file
func DeletePreset(dir, filename string) error {
	return os.Remove(filepath.Join(dir, filepath.Base(filename)))
}

// sanitizeFilename removes/replaces characters that are problematic in filenames
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = strings.NewReplacer(
		" ", "-", "/", "-", "\\", "-", ":", "-",
		"*", "", "?", "", "\"", "", "<", "", ">", "", "|", "",
	).Replace(name)
	return name
}
