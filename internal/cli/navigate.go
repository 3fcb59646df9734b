package cli

import (
	"checklist-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newMoveCmd(app *App, forward bool) *cobra.Command {
	var from string

	use, short := "next", "Move to the next actionable item"
	if !forward {
		use, short = "prev", "Move to the previous actionable item"
	}
	cmd := &cobra.Command{
		Use:   use + " <name>",
		Short: short,
		Long:  short + ", wrapping around. Without --from the stored cursor is used; the result becomes the new cursor.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, ok, err := mutate.Move(cmdContext(cmd), app.store(), args[0], from, forward)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !ok {
				return writeOut(cmd, app, map[string]any{"data": nil, "_hints": []string{"nothing in this checklist can be ticked"}})
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Identifier to move from (default: stored cursor)")
	return cmd
}
