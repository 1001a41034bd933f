package review

import (
	"context"

	"github.com/gilead/flashcards/internal/catalog"
	"github.com/gilead/flashcards/internal/spacedrep"
	"github.com/gilead/flashcards/pkg/logger"
)

// DeckStatus counts the review status of a set of cards at one moment.
type DeckStatus struct {
	Total int `json:"total"`
	New   int `json:"new"`
	Due   int `json:"due"`
	// Overdue counts due cards at least one full day past their due date.
	Overdue int `json:"overdue"`
	// NextDueIn is the number of days until the soonest card that is not
	// yet due, or 0 when there is none.
	NextDueIn int `json:"next_due_in,omitempty"`
}

// Status reports how many of cards are new, due and overdue at the session
// clock's current time. Only cards with a stored state are read.
func (s *Session) Status(ctx context.Context, cards []catalog.Card) DeckStatus {
	now := s.Now()

	rated := make(map[string]bool)
	ids, err := s.repo.RatedCards(ctx)
	if err != nil {
		s.log.Warn(ctx, "listing rated cards failed", logger.Error(err))
		s.metrics.StoreFailure("keys")
		// Fall back to reading every card.
		for _, c := range cards {
			rated[c.ID] = true
		}
	}
	for _, id := range ids {
		rated[id] = true
	}

	st := DeckStatus{Total: len(cards)}
	for _, c := range cards {
		if !rated[c.ID] {
			st.New++
			continue
		}
		cs, seen := s.repo.GetOrDefault(ctx, c.ID)
		switch cs.Status(now, seen) {
		case spacedrep.ReviewNew:
			st.New++
		case spacedrep.ReviewDue:
			st.Due++
			if cs.OverdueDays(now) >= 1 {
				st.Overdue++
			}
		case spacedrep.ReviewNotDue:
			if d := cs.DaysUntilReview(now); st.NextDueIn == 0 || d < st.NextDueIn {
				st.NextDueIn = d
			}
		}
	}
	return st
}
