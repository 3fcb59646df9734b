package tui

import (
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Run opens one checklist in the full-screen TUI.
func Run(opts Options) error {
	if p := strings.TrimSpace(opts.DebugLog); p != "" {
		f, err := tea.LogToFile(p, "checklist")
		if err != nil {
			return err
		}
		defer f.Close()
	}

	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference(opts.Glyphs)

	m, err := newAppModel(opts)
	if err != nil {
		return err
	}

	w, err := opts.Store.NewWatcher()
	if err == nil {
		if err := w.Start(); err == nil {
			m.changes = w.Changes
			defer w.Stop()
		} else {
			log.Printf("watch: %v", err)
		}
	} else {
		log.Printf("watch: %v", err)
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
