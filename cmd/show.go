package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <card-id>",
	Short: "Show a card's scheduling state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		id := args[0]
		sess := a.NewSession(ctx)
		cs, seen := sess.State(ctx, id)

		w := cmd.OutOrStdout()
		printState(w, id, cs, cs.Status(sess.Now(), seen))
		fmt.Fprintln(w, renderPreview(sess.Preview(ctx, id)))
		return nil
	},
}
