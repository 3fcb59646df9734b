package cli

import (
	"errors"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tcnksm/go-latest"
)

// Set with -ldflags "-X checklist-cli/internal/cli.Version=... -X checklist-cli/internal/cli.UpdateRepo=owner/name".
var (
	Version    = "dev"
	UpdateRepo = ""
)

// versionChecker is swapped in tests.
var versionChecker = func(owner, repo, current string) (*latest.CheckResponse, error) {
	return latest.Check(&latest.GithubTag{Owner: owner, Repository: repo}, current)
}

func newVersionCmd(app *App) *cobra.Command {
	var check bool
	var repo string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := map[string]any{
				"version": Version,
				"go":      runtime.Version(),
			}
			hints := []string{}
			if check {
				owner, name, ok := strings.Cut(strings.TrimSpace(repo), "/")
				if !ok || owner == "" || name == "" {
					return writeErr(cmd, errors.New("version: --check needs --repo owner/name"))
				}
				res, err := versionChecker(owner, name, strings.TrimPrefix(Version, "v"))
				if err != nil {
					return writeErr(cmd, err)
				}
				data["latest"] = res.Current
				data["outdated"] = res.Outdated
				if res.Outdated {
					hints = append(hints, "a new version is available: https://github.com/"+owner+"/"+name+"/releases")
				}
			}
			return writeOut(cmd, app, map[string]any{"data": data, "_hints": hints})
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Check GitHub for a newer release")
	cmd.Flags().StringVar(&repo, "repo", UpdateRepo, "GitHub repository to check (owner/name)")
	return cmd
}
