package cli

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"checklist-cli/internal/config"
	"checklist-cli/internal/web"

	"github.com/spf13/cobra"
)

func newWebCmd(app *App) *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve checklists over HTTP (JSON API + live HTML page)",
		Long: strings.TrimSpace(`
Serve the checklist dir over HTTP.

- JSON API under /api (see: checklist docs web)
- A small HTML page per checklist that updates live over SSE
`),
		Example: strings.TrimSpace(`
# Serve on the configured address (default 127.0.0.1:5001)
checklist web

# Serve on all interfaces
checklist web --addr :5001 --open
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listenAddr := strings.TrimSpace(app.Cfg.Addr)
			if listenAddr == "" {
				return writeErr(cmd, errors.New("web: missing --addr"))
			}

			srv, err := web.NewServer(web.ServerConfig{
				Dir:          app.Cfg.Dir,
				Slots:        app.Cfg.Slots,
				RolloverHour: app.Cfg.DayRolloverHour,
				Watch:        true,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			defer srv.Close()

			ln, err := net.Listen("tcp", listenAddr)
			if err != nil {
				return writeErr(cmd, err)
			}

			actualAddr := ln.Addr().String()
			url := "http://" + actualAddr + "/"

			opened := false
			openErr := ""
			if open {
				if err := openPath(url); err != nil {
					openErr = err.Error()
				} else {
					opened = true
				}
			}

			hints := []string{}
			if !opened {
				hints = append(hints, "open "+url)
			}

			_ = writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"addr":      actualAddr,
					"url":       url,
					"dir":       app.Cfg.Dir,
					"opened":    opened,
					"openError": openErr,
					"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
				},
				"_hints": hints,
			})

			fmt.Fprintf(cmd.ErrOrStderr(), "Checklist web running at %s (dir=%s)\n", url, app.Cfg.Dir)
			if openErr != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Failed to open browser: %s\n", openErr)
			}

			return http.Serve(ln, srv.Handler())
		},
	}

	cmd.Flags().String("addr", "127.0.0.1:5001", "Bind address (host:port or :port)")
	cmd.Flags().BoolVar(&open, "open", false, "Open the page in your default browser")
	if err := config.BindFlags(app.v, cmd.Flags()); err != nil {
		panic(err)
	}
	return cmd
}

func openPath(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("empty path")
	}
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path).Run()
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path).Run()
	default:
		return exec.Command("xdg-open", path).Run()
	}
}
