package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gilead/flashcards/internal/spacedrep"
)

var rateCmd = &cobra.Command{
	Use:   "rate <card-id> <quality>",
	Short: "Rate one card (0-5, or again/good/easy)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		q, err := spacedrep.ParseQuality(args[1])
		if err != nil {
			return err
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
		card, ok := cards.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown card %q", args[0])
		}

		out, err := a.NewSession(ctx).Rate(ctx, card, q)
		if err != nil {
			return err
		}
		printOutcome(cmd.OutOrStdout(), out)
		return nil
	},
}
