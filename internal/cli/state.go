package cli

import (
	"io"
	"strings"
	"time"

	"checklist-cli/internal/mutate"
	"checklist-cli/internal/statusutil"

	"github.com/spf13/cobra"
)

func newCheckCmd(app *App, checked bool) *cobra.Command {
	use, short := "check", "Tick an item"
	if !checked {
		use, short = "uncheck", "Untick an item"
	}
	return &cobra.Command{
		Use:   use + " <name> <id>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := mutate.SetChecked(cmdContext(cmd), app.store(), args[0], args[1], checked)
			if err != nil {
				return writeErr(cmd, err)
			}
			hints := []string{}
			if res.BecameComplete {
				hints = append(hints, "checklist log-time "+strings.TrimSpace(args[0])+" --seconds <n>")
			}
			return writeOut(cmd, app, map[string]any{"data": res, "_hints": hints})
		},
	}
}

func newResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <name>",
		Short: "Untick everything and restart the run timer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := mutate.Reset(cmdContext(cmd), app.store(), args[0], time.Now()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"checklist": strings.TrimSpace(args[0]), "reset": true}})
		},
	}
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <name>",
		Short: "Show progress, ticked and completed identifiers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openChecklist(cmd, app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			snap := statusutil.NewSnapshot(c.Name, c.Index, c.Checked)
			if sess, err := app.store().Session(c.Name); err == nil {
				snap.Cursor = sess.Cursor
			}
			return writeOut(cmd, app, map[string]any{"data": snap})
		},
	}
}

func readAll(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, io.ErrUnexpectedEOF
	}
	return io.ReadAll(r)
}
