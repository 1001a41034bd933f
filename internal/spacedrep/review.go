package spacedrep

import (
	"math"
	"time"
)

// CardState holds the spaced repetition state for a single flashcard.
type CardState struct {
	Repetition   int
	Interval     int
	EaseFactor   float64
	NextReviewAt time.Time
	// LastReviewed is stamped by the caller, never by Schedule.
	LastReviewed time.Time
}

// DefaultState returns the state assumed for a card that has never been rated.
func DefaultState() CardState {
	return CardState{
		Repetition: 0,
		Interval:   FirstInterval,
		EaseFactor: DefaultEaseFactor,
	}
}

// Valid reports whether the state satisfies the scheduling invariants.
func (cs CardState) Valid() bool {
	return cs.Repetition >= 0 && cs.Interval >= 1 && cs.EaseFactor >= MinEaseFactor
}

// IsDue returns true if the card is due for review (at or past the review date).
// A card that has never been scheduled is always due.
func (cs CardState) IsDue(now time.Time) bool {
	return !now.Before(cs.NextReviewAt)
}

// OverdueDays returns how many days past due the card is. Returns 0 if not yet due.
func (cs CardState) OverdueDays(now time.Time) float64 {
	if now.Before(cs.NextReviewAt) {
		return 0
	}
	return now.Sub(cs.NextReviewAt).Hours() / 24.0
}

// DaysUntilReview returns the number of days until the next review, counting
// a partial day as a whole one. Returns 0 if already due.
func (cs CardState) DaysUntilReview(now time.Time) int {
	if cs.IsDue(now) {
		return 0
	}
	return int(math.Ceil(cs.NextReviewAt.Sub(now).Hours() / 24.0))
}

// ReviewStatus describes a card's review status for display.
type ReviewStatus string

const (
	ReviewNew    ReviewStatus = "new"
	ReviewNotDue ReviewStatus = "not_due"
	ReviewDue    ReviewStatus = "due"
)

// Status returns the review status of a card. seen is false for cards that
// have no persisted state.
func (cs CardState) Status(now time.Time, seen bool) ReviewStatus {
	if !seen {
		return ReviewNew
	}
	if cs.IsDue(now) {
		return ReviewDue
	}
	return ReviewNotDue
}
