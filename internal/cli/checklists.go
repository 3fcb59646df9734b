package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"checklist-cli/internal/publish"
	"checklist-cli/internal/statusutil"
	"checklist-cli/internal/tree"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available checklists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			refs, err := app.store().ListChecklists()
			if err != nil {
				return writeErr(cmd, err)
			}
			hints := []string{}
			if len(refs) == 0 {
				hints = append(hints, "checklist save <name> --file <path>")
			}
			return writeOut(cmd, app, map[string]any{"data": refs, "_hints": hints})
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	var markdown bool
	var render bool
	var style string
	var skipped bool

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a checklist with its derived state",
		Example: strings.TrimSpace(`
  checklist show night
  checklist show night --markdown
  checklist show night --markdown --render
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openChecklist(cmd, app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !markdown {
				return writeOut(cmd, app, map[string]any{
					"data": map[string]any{
						"checklist": c.Name,
						"rows":      statusutil.Rows(c.Index, c.Checked),
						"progress":  tree.Progress(c.Index.Root(), c.Checked),
					},
				})
			}

			md, err := publish.RenderChecklistMarkdown(c.Name, c.Index, c.Checked, publish.RenderOptions{
				IncludeSkipped: skipped,
				Progress:       true,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			if render {
				out, err := glamour.Render(md, style)
				if err != nil {
					return writeErr(cmd, err)
				}
				md = out
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), md)
			return err
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "Print a markdown task list instead of JSON")
	cmd.Flags().BoolVar(&render, "render", false, "Render the markdown for the terminal (with --markdown)")
	cmd.Flags().StringVar(&style, "style", "dark", "Markdown style for --render (dark|light|notty|ascii)")
	cmd.Flags().BoolVar(&skipped, "include-skipped", false, "Include skipped items and notes in markdown output")
	return cmd
}

func newOrderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "order <name>",
		Short: "Print every identifier in walk order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openChecklist(cmd, app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": c.Index.Order()})
		},
	}
}

func newActionableCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "actionable <name>",
		Short: "Print the identifiers that can be ticked, in walk order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openChecklist(cmd, app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			ids := []string{}
			for _, id := range c.Index.Order() {
				if c.Index.IsActionable(id) {
					ids = append(ids, id)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": ids})
		},
	}
}

func newSaveCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Validate and store a checklist file",
		Example: strings.TrimSpace(`
  checklist save night --file ./night.json
  cat night.json | checklist save night --file -
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(file) == "" {
				return writeErr(cmd, errors.New("save: missing --file"))
			}
			var b []byte
			var err error
			if file == "-" {
				b, err = readAll(cmd.InOrStdin())
			} else {
				b, err = os.ReadFile(file)
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			root, err := tree.Parse(b)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("save: invalid json: %w", err))
			}
			if err := app.store().SaveChecklist(args[0], root); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"checklist":  strings.TrimSpace(args[0]),
					"nodes":      len(tree.Linearize(root)),
					"actionable": len(tree.Actionable(root)),
				},
			})
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Checklist JSON file (- for stdin)")
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var to string
	var overwrite bool
	var skipped bool

	cmd := &cobra.Command{
		Use:   "export <name>",
		Short: "Write a checklist as a markdown file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openChecklist(cmd, app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := publish.WriteChecklist(c.Name, c.Index, c.Checked, to, publish.WriteOptions{
				IncludeSkipped: skipped,
				Overwrite:      overwrite,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Output directory")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing file")
	cmd.Flags().BoolVar(&skipped, "include-skipped", false, "Include skipped items and notes")
	return cmd
}
