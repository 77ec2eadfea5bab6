package spaced_repetition

import "errors"

var (
	// ErrInvalidQuality means a quality score outside 0..5 was passed to the
	// scheduler. Always a caller bug; never retried.
	ErrInvalidQuality = errors.New("invalid quality score")

	// ErrInvalidInput means an unrecognized confidence or rating value was
	// passed to the quality mapper.
	ErrInvalidInput = errors.New("invalid input")
)
