package spacedrep

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the error kind for caller contract violations.
// Use errors.Is to check for it.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrMalformedState indicates persisted state text that could not be decoded
// or that violates the card state invariants.
var ErrMalformedState = errors.New("malformed card state")

// ErrInvalidQuality is returned when a rating falls outside 0..5.
type ErrInvalidQuality struct {
	Quality int
}

func (e *ErrInvalidQuality) Error() string {
	return fmt.Sprintf("invalid argument: quality %d outside [%d, %d]", e.Quality, MinQuality, MaxQuality)
}

func (e *ErrInvalidQuality) Unwrap() error { return ErrInvalidArgument }
