package spacedrep

import (
	"math"
	"time"
)

// Clock supplies the current time.
type Clock func() time.Time

// Schedule computes the next state of a card from a recall rating.
//
// Only Repetition, Interval and EaseFactor of prior are read. The returned
// state carries a fresh NextReviewAt, now advanced by Interval calendar days,
// and a zero LastReviewed for the caller to stamp.
func Schedule(q Quality, prior CardState, now time.Time) (CardState, error) {
	if err := q.Validate(); err != nil {
		return CardState{}, err
	}

	next := CardState{
		Repetition: prior.Repetition,
		Interval:   prior.Interval,
		EaseFactor: prior.EaseFactor,
	}

	if q.IsLapse() {
		next.Repetition = 0
		next.Interval = LapseInterval
	} else {
		switch prior.Repetition {
		case 0:
			next.Interval = FirstInterval
		case 1:
			next.Interval = SecondInterval
		default:
			next.Interval = grow(prior.Interval, prior.EaseFactor)
		}
		next.Repetition = prior.Repetition + 1
		next.EaseFactor = prior.EaseFactor + easeDelta(q)
		if next.EaseFactor < MinEaseFactor {
			next.EaseFactor = MinEaseFactor
		}
	}

	next.NextReviewAt = now.AddDate(0, 0, next.Interval)
	return next, nil
}

// grow returns ceil(interval * ease), saturated at MaxInterval.
func grow(interval int, ease float64) int {
	f := math.Ceil(float64(interval) * ease)
	if f >= MaxInterval || math.IsNaN(f) {
		return MaxInterval
	}
	return int(f)
}

// easeDelta is the SM-2 ease adjustment for a successful rating.
func easeDelta(q Quality) float64 {
	d := float64(MaxQuality - q)
	return 0.1 - d*(0.08+d*0.02)
}

// Scheduler wraps Schedule with an injectable clock.
type Scheduler struct {
	clock Clock
}

// NewScheduler creates a scheduler. A nil clock uses time.Now.
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = time.Now
	}
	return &Scheduler{clock: clock}
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	return s.clock()
}

// Schedule rates a card at the scheduler's current time.
func (s *Scheduler) Schedule(q Quality, prior CardState) (CardState, error) {
	return Schedule(q, prior, s.clock())
}

// Preview returns the interval in days each of the review buttons would
// produce from prior, keyed by button label.
func (s *Scheduler) Preview(prior CardState) map[string]int {
	now := s.clock()
	out := make(map[string]int, 3)
	for _, q := range []Quality{Again, Good, Easy} {
		next, err := Schedule(q, prior, now)
		if err != nil {
			continue
		}
		out[q.Label()] = next.Interval
	}
	return out
}
