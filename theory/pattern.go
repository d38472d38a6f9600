package theory

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Defaults used when a pattern is built with nil inputs.
var (
	DefaultSequence = []int{1, 3, 5, 3}
	DefaultCadence  = []int{1, 2, 3, 4, 5, 6, 7, 8}
)

// Pattern is a motif (the sequence) replayed from each degree of the cadence.
// Sequence entries are degrees relative to the local tonic: 1 is the cadence
// degree itself, 2 the one above it and so on.
type Pattern struct {
	Sequence []int
	Cadence  []int
	tones    []Pitch
}

// NewPattern expands sequence over cadence in scale s. A nil sequence or
// cadence falls back to the defaults; an empty one produces no tones.
func NewPattern(s *Scale, sequence, cadence []int) *Pattern {
	if sequence == nil {
		sequence = DefaultSequence
	}
	if cadence == nil {
		cadence = DefaultCadence
	}
	p := &Pattern{
		Sequence: slices.Clone(sequence),
		Cadence:  slices.Clone(cadence),
	}

	p.tones = make([]Pitch, 0, len(sequence)*len(cadence))
	for _, c := range cadence {
		for _, d := range sequence {
			p.tones = append(p.tones, s.Resolve(d+c-1))
		}
	}

	return p
}

// GeneratePattern returns the flat pitch list of NewPattern: every sequence
// note for cadence[0], then every one for cadence[1], and so on.
func GeneratePattern(s *Scale, sequence, cadence []int) []Pitch {
	return NewPattern(s, sequence, cadence).Tones()
}

// Tones returns a copy of the generated pitches.
func (p *Pattern) Tones() []Pitch {
	return slices.Clone(p.tones)
}

// Len is len(Sequence) * len(Cadence).
func (p *Pattern) Len() int {
	return len(p.tones)
}

// At returns the i-th generated pitch.
func (p *Pattern) At(i int) Pitch {
	return p.tones[i]
}

// ParseDegrees reads a list of signed integers separated by commas and/or
// whitespace, e.g. "1,3,5,3" or "1 -2 8".
func ParseDegrees(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("degree %q: %w", f, ErrInvalidArgument)
		}
		out = append(out, n)
	}
	return out, nil
}

// FormatDegrees is the inverse of ParseDegrees.
func FormatDegrees(degrees []int) string {
	parts := make([]string, len(degrees))
	for i, d := range degrees {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}
