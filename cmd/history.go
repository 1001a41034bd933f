package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gilead/flashcards/internal/spacedrep"
	"github.com/gilead/flashcards/internal/ui/theme"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent ratings",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		events, err := a.History(cmd.Context(), limit)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(w, theme.Hint.Render("No ratings yet."))
			return nil
		}
		for _, ev := range events {
			label := spacedrep.Quality(ev.Quality).Label()
			fmt.Fprintf(w, "%s  %-6s %-20s week %-3d next %s (%s)\n",
				theme.Hint.Render(spacedrep.FormatTime(ev.Timestamp)),
				theme.Rating(label).Render(label),
				ev.CardID,
				ev.Week,
				formatDays(ev.Interval),
				spacedrep.FormatTime(ev.NextReviewAt))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Number of events to show")
}
