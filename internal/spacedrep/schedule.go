package spacedrep

import "math"

// DefaultEaseFactor is the ease factor given to a card that has never been rated.
const DefaultEaseFactor = 2.5

// MinEaseFactor is the hard floor for the ease factor. There is no ceiling.
const MinEaseFactor = 1.3

// FirstInterval is the interval in days after the first successful recall.
const FirstInterval = 1

// SecondInterval is the interval in days after the second consecutive
// successful recall. Later intervals grow by the ease factor.
const SecondInterval = 6

// LapseInterval is the interval in days after a failed recall.
const LapseInterval = 1

// MaxInterval is the largest interval Schedule produces. Growth saturates
// here instead of overflowing int; due dates this far out still encode as
// expanded ISO-8601 years.
const MaxInterval = math.MaxInt32
