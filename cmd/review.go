package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gilead/flashcards/internal/catalog"
	"github.com/gilead/flashcards/internal/review"
	"github.com/gilead/flashcards/internal/spacedrep"
	"github.com/gilead/flashcards/internal/ui/theme"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Start a line-based review session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		week, _ := cmd.Flags().GetInt("week")
		limit, _ := cmd.Flags().GetInt("limit")
		seed, _ := cmd.Flags().GetUint64("seed")
		if limit <= 0 {
			limit = cfg.SessionLimit
		}
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		cards, err := a.Catalog()
		if err != nil {
			return err
		}
		deck := cards.Deck(catalog.DeckOptions{
			Week:  week,
			Limit: limit,
			Rand:  rand.New(rand.NewPCG(seed, seed)),
		})
		if len(deck) == 0 {
			return fmt.Errorf("no cards to review")
		}

		sess := a.NewSession(ctx)
		return runReview(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), sess, deck)
	},
}

func init() {
	reviewCmd.Flags().Int("week", 0, "Review only the cards of this week")
	reviewCmd.Flags().Int("limit", 0, "Maximum cards in an unfiltered session (default from config)")
	reviewCmd.Flags().Uint64("seed", 0, "Shuffle seed for a reproducible deck")
}

// runReview walks the deck: show the question, wait for Enter, show the
// answer and read a rating. "q" at any prompt ends the session early.
func runReview(ctx context.Context, in io.Reader, out io.Writer, sess *review.Session, deck []catalog.Card) error {
	scanner := bufio.NewScanner(in)
	readLine := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		line := strings.TrimSpace(scanner.Text())
		return line, !strings.EqualFold(line, "q")
	}

deckLoop:
	for i, card := range deck {
		fmt.Fprintf(out, "\n%s\n", theme.Subtitle.Render(fmt.Sprintf("Card %d of %d  ·  week %d", i+1, len(deck), card.Week)))
		fmt.Fprintln(out, theme.Question.Render(card.Question))
		fmt.Fprintln(out, theme.Hint.Render("Press Enter to reveal the answer (q to quit)"))
		if _, ok := readLine(); !ok {
			break
		}

		fmt.Fprintln(out, theme.Answer.Render(card.Answer))
		fmt.Fprintln(out, renderPreview(sess.Preview(ctx, card.ID)))

		for {
			fmt.Fprint(out, "rating> ")
			line, ok := readLine()
			if !ok {
				break deckLoop
			}
			q, err := spacedrep.ParseQuality(line)
			if err != nil {
				fmt.Fprintln(out, theme.Warning.Render(err.Error()))
				continue
			}
			res, err := sess.Rate(ctx, card, q)
			if err != nil {
				return err
			}
			printOutcome(out, res)
			break
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	fmt.Fprintln(out)
	printSummary(out, sess.Summary())
	return nil
}
