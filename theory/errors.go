package theory

import "errors"

// Sentinel errors for input that cannot be turned into pitches or degrees.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrOutOfRange      = errors.New("out of range")
)
