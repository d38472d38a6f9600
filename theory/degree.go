package theory

// Resolve maps any signed scale degree to a pitch of the scale.
//
// Degrees 1..7 are the scale itself and 0 and -1 both name the root. Past
// the ends the scale repeats in neighbouring octaves: 8 is the root an octave
// up, -2 the seventh degree an octave down, -8 the root an octave down.
func (s *Scale) Resolve(degree int) Pitch {
	n := len(s.tones)
	switch {
	case degree == 0 || degree == -1:
		return s.tones[0]
	case degree >= 1 && degree <= n:
		return s.tones[degree-1]
	}

	// Zero-based position relative to the root; -1 and 0 are skipped on the
	// way down, so -2 sits just below the root.
	z := degree - 1
	if degree < 0 {
		z = degree + 1
	}
	return s.tones[floorMod(z, n)].Transpose(floorDiv(z, n))
}

// ResolveDegree is Resolve as a function of the scale.
func ResolveDegree(s *Scale, degree int) Pitch {
	return s.Resolve(degree)
}
