package cmd

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gilead/flashcards/internal/catalog"
	"github.com/gilead/flashcards/internal/review"
	"github.com/gilead/flashcards/internal/ui/components"
	"github.com/gilead/flashcards/internal/ui/theme"
)

const statsBarWidth = 48

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show review progress per week",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		cards, err := a.Catalog()
		if err != nil {
			return err
		}
		renderStats(ctx, cmd.OutOrStdout(), cards, a.NewSession(ctx))
		return nil
	},
}

// renderStats prints one block per week: the rating bar, the week's theme
// and the review status of its cards. Weeks with ratings but no cards left
// in the catalog still get a bar.
func renderStats(ctx context.Context, w io.Writer, cards *catalog.Catalog, sess *review.Session) {
	progress := sess.Progress()
	overview := make(map[int]catalog.WeekOverview)
	weeks := progress.Weeks()
	for _, ov := range cards.Overview() {
		overview[ov.Number] = ov
		if _, rated := progress[ov.Number]; !rated {
			weeks = append(weeks, ov.Number)
		}
	}
	slices.Sort(weeks)

	maxRatings := 0
	for _, n := range progress {
		maxRatings = max(maxRatings, n)
	}

	fmt.Fprintln(w, theme.Title.Render("Review progress"))
	for _, week := range weeks {
		label := fmt.Sprintf("Week %2d", week)
		bar := components.NewProgressBar(label, progress[week], maxRatings, statsBarWidth)
		fmt.Fprintln(w, bar.View())

		ov, ok := overview[week]
		if !ok {
			continue
		}
		if ov.Theme != "" {
			fmt.Fprintln(w, theme.Subtitle.Render("         "+ov.Theme))
		}
		st := sess.Status(ctx, cards.ByWeek(week))
		line := fmt.Sprintf("%d cards, %d due, %d overdue, %d new", st.Total, st.Due, st.Overdue, st.New)
		if st.NextDueIn > 0 {
			line += ", next in " + formatDays(st.NextDueIn)
		}
		if d := formatDifficulty(ov.Difficulty); d != "" {
			line += " (" + d + ")"
		}
		fmt.Fprintln(w, theme.Hint.Render("         "+line))
	}
}

// formatDifficulty renders difficulty counts in easy, medium, hard order.
func formatDifficulty(counts map[string]int) string {
	var parts []string
	for _, d := range []string{"easy", "medium", "hard"} {
		if n := counts[d]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, d))
		}
	}
	return strings.Join(parts, ", ")
}
