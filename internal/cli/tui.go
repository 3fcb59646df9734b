package cli

import (
	"strings"

	"checklist-cli/internal/tui"

	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [name]",
		Short: "Open a checklist in the interactive TUI",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := app.Checklist
			if len(args) == 1 {
				name = args[0]
			}
			return runTUI(cmd, app, name)
		},
	}
}

func runTUI(cmd *cobra.Command, app *App, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		first, err := firstChecklist(app)
		if err != nil {
			return writeErr(cmd, err)
		}
		name = first
	}
	if _, err := openChecklist(cmd, app, name); err != nil {
		return writeErr(cmd, err)
	}
	return tui.Run(tui.Options{
		Store:        app.store(),
		Checklist:    name,
		Glyphs:       app.Cfg.Glyphs,
		Slots:        app.Cfg.Slots,
		RolloverHour: app.Cfg.DayRolloverHour,
		DebugLog:     app.Cfg.DebugLog,
	})
}
