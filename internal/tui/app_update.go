package tui

import (
	"context"
	"fmt"
	"time"

	"checklist-cli/internal/docs"
	"checklist-cli/internal/mutate"
	"checklist-cli/internal/store"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	mm, cmd := m.update(msg)
	mm.ensureVisible()
	return mm, cmd
}

func (m appModel) update(msg tea.Msg) (appModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeHelp()
		return m, nil

	case clockTickMsg:
		m.now = time.Time(msg)
		m.reloadChecked()
		return m, tickClock()

	case checklistFileMsg:
		if msg.name == m.name {
			if err := m.reload(); err != nil {
				m.setFlash("reload: "+err.Error(), true)
			} else {
				m.fixCursor()
				m.setFlash("reloaded "+m.name, false)
			}
		}
		return m, waitForChange(m.changes)

	case watchClosedMsg:
		return m, nil

	case externalEditorDoneMsg:
		m.applyExternalEditorResult(msg)
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			return m.updateHelp(msg)
		}
		if m.confirmReset {
			return m.updateConfirmReset(msg)
		}
		return m.updateKey(msg)
	}
	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (appModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Down):
		if id, ok := m.idx.Next(m.cursor); ok {
			m.setCursor(id)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if id, ok := m.idx.Prev(m.cursor); ok {
			m.setCursor(id)
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		m.toggle()
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.confirmReset = true
		m.setFlash(fmt.Sprintf("Reset %s? (y/n)", m.name), false)
		return m, nil

	case key.Matches(msg, m.keys.Rushed):
		m.rushed = !m.rushed
		return m, nil

	case key.Matches(msg, m.keys.Yank):
		m.yank()
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		return m, m.openExternalEditor()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.resizeHelp()
		return m, nil
	}
	return m, nil
}

func (m appModel) updateConfirmReset(msg tea.KeyMsg) (appModel, tea.Cmd) {
	m.confirmReset = false
	switch msg.String() {
	case "y", "Y", "enter":
		m.reset()
	case "ctrl+c":
		return m, tea.Quit
	default:
		m.flash = ""
	}
	return m, nil
}

func (m *appModel) reset() {
	m.now = m.opts.Now()
	if err := mutate.Reset(context.Background(), m.store, m.name, m.now); err != nil {
		m.setFlash(err.Error(), true)
		return
	}
	if err := m.reload(); err != nil {
		m.setFlash(err.Error(), true)
		return
	}
	m.startedAt = m.now
	m.lastRun = nil
	m.rushed = false
	m.cursor = ""
	m.fixCursor()
	m.setFlash("reset", false)
}

func (m appModel) updateHelp(msg tea.KeyMsg) (appModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help), msg.String() == "esc", msg.String() == "q":
		m.showHelp = false
		return m, nil
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.helpView, cmd = m.helpView.Update(msg)
	return m, cmd
}

func (m *appModel) resizeHelp() {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	h := m.height - 4
	if h < 3 {
		h = 3
	}
	m.helpView.Width = w
	m.helpView.Height = h
	body, _ := docs.Get("keys")
	m.helpView.SetContent(renderMarkdown(body, w))
}

// toggle ticks or unticks the cursor item; finishing the checklist logs a run.
func (m *appModel) toggle() {
	if m.cursor == "" {
		return
	}
	res, err := mutate.Toggle(context.Background(), m.store, m.name, m.cursor)
	if err != nil {
		m.setFlash(err.Error(), true)
		return
	}
	if res.Checked {
		m.checked.Add(res.ID)
	} else {
		m.checked.Remove(res.ID)
	}
	m.stateModTime = m.store.StateModTime()
	m.flash = ""

	if res.Checked && !res.Complete {
		if id, ok := m.idx.Next(m.cursor); ok {
			m.setCursor(id)
		}
	}
	if !res.BecameComplete {
		return
	}

	m.now = m.opts.Now()
	run, err := mutate.LogRun(context.Background(), m.store, m.name, m.elapsedSeconds(), m.rushed, mutate.RunOpts{
		Slots:        m.opts.Slots,
		RolloverHour: m.opts.RolloverHour,
		Now:          m.now,
	})
	if err != nil {
		m.setFlash("log run: "+err.Error(), true)
		return
	}
	m.lastRun = &run
	m.setFlash(fmt.Sprintf("Logged %s to %s", store.FormatDuration(run.Seconds), run.Slot), false)
}
