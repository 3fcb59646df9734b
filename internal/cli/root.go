package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"checklist-cli/internal/config"
	"checklist-cli/internal/format"
	"checklist-cli/internal/mutate"
	"checklist-cli/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type App struct {
	ConfigFile string
	Checklist  string

	// Cfg is resolved in PersistentPreRunE from defaults, config file, env and flags.
	Cfg config.Config

	v *viper.Viper
}

func NewRootCmd() *cobra.Command {
	app := &App{v: config.New()}

	cmd := &cobra.Command{
		Use:          "checklist",
		Short:        "Nested checklists (CLI + TUI + web)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI on the first checklist
  checklist

  # Walk a checklist from a script
  checklist next night
  checklist check night "lights::kitchen"

  # See what is left
  checklist status night --pretty
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app, app.Checklist)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := config.ReadFile(app.v, app.ConfigFile); err != nil {
			return writeErr(cmd, fmt.Errorf("config: %w", err))
		}
		cfg, err := config.Load(app.v)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.Cfg = cfg
		return nil
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.ConfigFile, "config", envOr("CHECKLIST_CONFIG", ""), "Config file (default: <dir>/config.yaml)")
	pf.String("dir", "", "Path to checklist dir (default: ~/.checklist)")
	pf.Bool("pretty", false, "Pretty-print output")
	pf.String("format", "json", "Output format (json|edn)")
	pf.StringVar(&app.Checklist, "checklist", envOr("CHECKLIST_NAME", ""), "Checklist to open in the TUI")
	if err := config.BindFlags(app.v, pf); err != nil {
		panic(err)
	}

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newOrderCmd(app))
	cmd.AddCommand(newActionableCmd(app))
	cmd.AddCommand(newMoveCmd(app, true))
	cmd.AddCommand(newMoveCmd(app, false))
	cmd.AddCommand(newCheckCmd(app, true))
	cmd.AddCommand(newCheckCmd(app, false))
	cmd.AddCommand(newResetCmd(app))
	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newLogTimeCmd(app))
	cmd.AddCommand(newRunsCmd(app))
	cmd.AddCommand(newSaveCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newWebCmd(app))
	cmd.AddCommand(newTUICmd(app))
	cmd.AddCommand(newVersionCmd(app))

	return cmd
}

func (app *App) store() store.Store {
	return store.Store{Dir: app.Cfg.Dir}
}

func openChecklist(cmd *cobra.Command, app *App, name string) (mutate.Checklist, error) {
	return mutate.Open(cmdContext(cmd), app.store(), name)
}

// firstChecklist picks the checklist to open when none was named.
func firstChecklist(app *App) (string, error) {
	refs, err := app.store().ListChecklists()
	if err != nil {
		return "", err
	}
	if len(refs) == 0 {
		return "", errors.New("no checklists in " + app.store().ChecklistsDir() + "; add one with `checklist save <name> --file <path>`")
	}
	return refs[0].Name, nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Cfg.Format, app.Cfg.Pretty)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
