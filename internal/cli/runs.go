package cli

import (
	"errors"
	"time"

	"checklist-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newLogTimeCmd(app *App) *cobra.Command {
	var seconds int
	var rushed bool
	var fromSession bool

	cmd := &cobra.Command{
		Use:   "log-time <name>",
		Short: "Record a finished run in the run log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			switch {
			case fromSession:
				s, err := mutate.Elapsed(app.store(), args[0], now)
				if err != nil {
					return writeErr(cmd, err)
				}
				seconds = s
			case !cmd.Flags().Changed("seconds"):
				return writeErr(cmd, errors.New("log-time: missing --seconds (or pass --from-session)"))
			}
			run, err := mutate.LogRun(cmdContext(cmd), app.store(), args[0], seconds, rushed, mutate.RunOpts{
				Slots:        app.Cfg.Slots,
				RolloverHour: app.Cfg.DayRolloverHour,
				Now:          now,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": run})
		},
	}

	cmd.Flags().IntVar(&seconds, "seconds", 0, "Run time in seconds")
	cmd.Flags().BoolVar(&rushed, "rushed", false, "Mark the run as rushed")
	cmd.Flags().BoolVar(&fromSession, "from-session", false, "Use the time since the checklist was last reset")
	return cmd
}

func newRunsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs <name>",
		Short: "List recent runs, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := app.store().Runs(cmdContext(cmd), args[0], limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": runs})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs")
	return cmd
}
