package spacedrep

import (
	"fmt"
	"strconv"
	"strings"
)

// Quality is a learner's self-assessed recall rating, 0 (blackout) to 5
// (perfect recall). The review UI only offers Again, Good and Easy, but the
// scheduler accepts the whole range.
type Quality int

const (
	MinQuality Quality = 0
	MaxQuality Quality = 5

	// PassingQuality is the lowest rating that counts as a successful recall.
	PassingQuality Quality = 3
)

// The three ratings offered by the review screen.
const (
	Again Quality = 1
	Good  Quality = 3
	Easy  Quality = 5
)

// Validate returns an error matching ErrInvalidArgument if q is outside 0..5.
func (q Quality) Validate() error {
	if q < MinQuality || q > MaxQuality {
		return &ErrInvalidQuality{Quality: int(q)}
	}
	return nil
}

// IsLapse reports whether q is a failed recall.
func (q Quality) IsLapse() bool {
	return q < PassingQuality
}

// Label groups q into the button it corresponds to: "again" for lapses,
// "easy" for 5 and "good" for everything in between.
func (q Quality) Label() string {
	switch {
	case q.IsLapse():
		return "again"
	case q >= Easy:
		return "easy"
	default:
		return "good"
	}
}

func (q Quality) String() string {
	return strconv.Itoa(int(q))
}

// ParseQuality accepts a digit 0..5 or one of the button names
// again, good and easy (case-insensitive).
func ParseQuality(s string) (Quality, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "again", "a":
		return Again, nil
	case "good", "g":
		return Good, nil
	case "easy", "e":
		return Easy, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: quality %q is not a number or rating name", ErrInvalidArgument, s)
	}
	q := Quality(n)
	if err := q.Validate(); err != nil {
		return 0, err
	}
	return q, nil
}
