package tui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type externalEditorDoneMsg struct {
	err error
}

func externalEditorName() string {
	if v := strings.TrimSpace(os.Getenv("VISUAL")); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("EDITOR")); v != "" {
		return v
	}
	return "vi"
}

// editorCommand builds the command that edits path. The editor string may
// carry arguments ("code --wait").
func editorCommand(editor, path string) *exec.Cmd {
	args := splitShellWords(editor)
	if len(args) == 0 {
		args = []string{"vi"}
	}
	return exec.Command(args[0], append(args[1:], path)...)
}

// openExternalEditor suspends the TUI and edits the checklist file in place.
func (m *appModel) openExternalEditor() tea.Cmd {
	path, err := m.store.SafePath(m.name)
	if err != nil {
		m.setFlash(err.Error(), true)
		return nil
	}
	return tea.ExecProcess(editorCommand(externalEditorName(), path), func(err error) tea.Msg {
		return externalEditorDoneMsg{err: err}
	})
}

func (m *appModel) applyExternalEditorResult(msg externalEditorDoneMsg) {
	if msg.err != nil {
		m.setFlash("editor failed: "+msg.err.Error(), true)
		return
	}
	if err := m.reload(); err != nil {
		// The file on disk is left as written; fix it and press e again.
		m.setFlash(fmt.Sprintf("%s: %v", externalEditorName(), err), true)
		return
	}
	m.fixCursor()
	m.setFlash("reloaded "+m.name, false)
}
