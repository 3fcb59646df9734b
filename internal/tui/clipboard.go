package tui

import "github.com/atotto/clipboard"

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

// yank copies the cursor identifier, the form the CLI and web API accept.
func (m *appModel) yank() {
	if m.cursor == "" {
		return
	}
	if err := writeClipboard(m.cursor); err != nil {
		m.setFlash("copy: "+err.Error(), true)
		return
	}
	m.setFlash("copied "+m.cursor, false)
}
