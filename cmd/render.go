package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/gilead/flashcards/internal/review"
	"github.com/gilead/flashcards/internal/spacedrep"
	"github.com/gilead/flashcards/internal/ui/theme"
)

// formatDays renders an interval the way the rating buttons show it.
func formatDays(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// renderPreview renders the three rating buttons with their intervals.
func renderPreview(preview map[string]int) string {
	parts := make([]string, 0, 3)
	for _, q := range []spacedrep.Quality{spacedrep.Again, spacedrep.Good, spacedrep.Easy} {
		label := q.Label()
		parts = append(parts, theme.Rating(label).Render(fmt.Sprintf("[%d] %s", q, label))+
			theme.Hint.Render(" "+formatDays(preview[label])))
	}
	return strings.Join(parts, "   ")
}

// printState writes a card's scheduling state.
func printState(w io.Writer, cardID string, cs spacedrep.CardState, status spacedrep.ReviewStatus) {
	fmt.Fprintf(w, "%s  %s\n", theme.Title.Render(cardID), theme.Status(string(status)).Render(string(status)))
	fmt.Fprintf(w, "  repetition   %d\n", cs.Repetition)
	fmt.Fprintf(w, "  interval     %s\n", formatDays(cs.Interval))
	fmt.Fprintf(w, "  ease factor  %.2f\n", cs.EaseFactor)
	if !cs.NextReviewAt.IsZero() {
		fmt.Fprintf(w, "  next review  %s\n", spacedrep.FormatTime(cs.NextReviewAt))
	}
	if !cs.LastReviewed.IsZero() {
		fmt.Fprintf(w, "  reviewed     %s\n", spacedrep.FormatTime(cs.LastReviewed))
	}
}

// printOutcome writes the result of a rating.
func printOutcome(w io.Writer, out review.Outcome) {
	label := out.Quality.Label()
	fmt.Fprintf(w, "%s %s, next review in %s (%s)\n",
		theme.Rating(label).Render(label),
		theme.Body.Render(out.CardID),
		formatDays(out.Next.Interval),
		spacedrep.FormatTime(out.Next.NextReviewAt))
	if !out.Persisted {
		fmt.Fprintln(w, theme.Warning.Render("warning: state could not be saved; this rating will not carry over"))
	}
}

// printSummary writes the end-of-session summary.
func printSummary(w io.Writer, s review.Summary) {
	fmt.Fprintln(w, theme.Title.Render("Session complete"))
	fmt.Fprintf(w, "  %s %d   %s %d   %s %d   (%d cards)\n",
		theme.Again.Render("again"), s.Stats.Again,
		theme.Good.Render("good"), s.Stats.Good,
		theme.Easy.Render("easy"), s.Stats.Easy,
		s.Stats.Total())
	fmt.Fprintln(w, theme.Hint.Render("  session "+s.SessionID))
}
