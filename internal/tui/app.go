package tui

import (
	"context"
	"log"
	"strings"
	"time"

	"checklist-cli/internal/model"
	"checklist-cli/internal/mutate"
	"checklist-cli/internal/store"
	"checklist-cli/internal/tree"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type Options struct {
	Store        store.Store
	Checklist    string
	Glyphs       string
	Slots        map[string]string
	RolloverHour int
	DebugLog     string

	// Now defaults to time.Now.
	Now func() time.Time
}

type (
	clockTickMsg     time.Time
	checklistFileMsg struct{ name string }
	watchClosedMsg   struct{}
)

type appModel struct {
	opts  Options
	store store.Store
	name  string

	idx     *tree.Index
	checked tree.Set
	cursor  string

	startedAt    time.Time
	now          time.Time
	rushed       bool
	stateModTime time.Time

	width  int
	height int
	offset int

	keys     keyMap
	help     help.Model
	showHelp bool
	helpView viewport.Model

	flash        string
	flashIsErr   bool
	confirmReset bool
	lastRun      *model.Run

	changes <-chan string
}

func newAppModel(opts Options) (appModel, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	m := appModel{
		opts:     opts,
		store:    opts.Store,
		name:     strings.TrimSpace(opts.Checklist),
		keys:     defaultKeyMap(),
		help:     help.New(),
		helpView: viewport.New(0, 0),
		now:      opts.Now(),
	}
	if err := m.reload(); err != nil {
		return appModel{}, err
	}

	elapsed, err := mutate.Elapsed(m.store, m.name, m.now)
	if err != nil {
		return appModel{}, err
	}
	m.startedAt = m.now.Add(-time.Duration(elapsed) * time.Second)

	sess, err := m.store.Session(m.name)
	if err != nil {
		return appModel{}, err
	}
	m.cursor = sess.Cursor
	m.fixCursor()
	return m, nil
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(tickClock(), waitForChange(m.changes))
}

func tickClock() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return clockTickMsg(t) })
}

func waitForChange(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		name, ok := <-ch
		if !ok {
			return watchClosedMsg{}
		}
		return checklistFileMsg{name: name}
	}
}

// reload re-reads the tree and the checked-set.
func (m *appModel) reload() error {
	c, err := mutate.Open(context.Background(), m.store, m.name)
	if err != nil {
		return err
	}
	m.idx = c.Index
	m.checked = c.Checked
	m.stateModTime = m.store.StateModTime()
	return nil
}

// reloadChecked picks up ticks written by other processes (CLI, web).
func (m *appModel) reloadChecked() {
	mt := m.store.StateModTime()
	if !mt.After(m.stateModTime) {
		return
	}
	checked, err := m.store.Checked(context.Background(), m.name)
	if err != nil {
		log.Printf("reload checked: %v", err)
		return
	}
	m.checked = checked
	m.stateModTime = mt
}

// fixCursor keeps the cursor on an actionable identifier after a reload.
func (m *appModel) fixCursor() {
	if m.cursor != "" && m.idx.IsActionable(m.cursor) {
		return
	}
	if id, ok := m.idx.Next(m.cursor); ok {
		m.cursor = id
		return
	}
	m.cursor = ""
}

func (m *appModel) setCursor(id string) {
	if id == m.cursor {
		return
	}
	m.cursor = id
	if _, err := m.store.UpdateSession(m.name, func(s *model.Session) { s.Cursor = id }); err != nil {
		m.setFlash(err.Error(), true)
	}
}

func (m *appModel) setFlash(s string, isErr bool) {
	m.flash = s
	m.flashIsErr = isErr
	if isErr {
		log.Printf("tui: %s", s)
	}
}

func (m appModel) elapsedSeconds() int {
	d := m.now.Sub(m.startedAt)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}
