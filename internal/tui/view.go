package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"checklist-cli/internal/statusutil"
	"checklist-cli/internal/store"
	"checklist-cli/internal/tree"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	if m.showHelp {
		frame := lipgloss.NewStyle().Padding(1, 2)
		return frame.Render(m.helpView.View())
	}

	header := m.viewHeader(width)
	footer := m.viewFooter(width)
	bodyHeight := m.bodyHeight()

	lines, cur := m.rowLines(width)
	off := scrollOffset(m.offset, cur, bodyHeight, len(lines))
	end := off + bodyHeight
	if end > len(lines) {
		end = len(lines)
	}
	body := normalizePane(strings.Join(lines[off:end], "\n"), width, bodyHeight)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// Header and footer are two lines each.
const chromeLines = 4

func (m appModel) bodyHeight() int {
	h := m.height
	if h <= 0 {
		h = 24
	}
	if h-chromeLines < 1 {
		return 1
	}
	return h - chromeLines
}

func (m *appModel) ensureVisible() {
	cur := 0
	for i, n := range m.idx.Nodes() {
		if n.ID == m.cursor {
			cur = i
			break
		}
	}
	m.offset = scrollOffset(m.offset, cur, m.bodyHeight(), m.idx.Len())
}

func (m appModel) viewHeader(width int) string {
	p := tree.Progress(m.idx.Root(), m.checked)
	title := styleTitle().Render(m.name)
	timer := store.FormatDuration(m.elapsedSeconds())
	if m.rushed {
		timer += " (rushed)"
	}
	right := styleMuted().Render(fmt.Sprintf("%d/%d  %s", p.Done, p.Total, timer))
	gap := width - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	line := title + strings.Repeat(" ", gap) + right
	return fitWidth(line, width) + "\n" + progressBar(p, width)
}

func progressBar(p tree.Summary, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if p.Total > 0 {
		filled = p.Done * width / p.Total
	}
	if p.Complete {
		filled = width
	}
	fill := lipgloss.NewStyle().Background(progressFillBg).Render(strings.Repeat(" ", filled))
	empty := lipgloss.NewStyle().Background(progressEmptyBg).Render(strings.Repeat(" ", width-filled))
	return fill + empty
}

func (m appModel) viewFooter(width int) string {
	var parts []string
	if m.flash != "" {
		parts = append(parts, fitWidth(styleFlash(m.flashIsErr).Render(m.flash), width))
	} else if statusutil.Done(m.idx, m.checked) {
		parts = append(parts, fitWidth(styleDone().Render(glyphGroupDone()+" all done"), width))
	} else {
		parts = append(parts, "")
	}
	parts = append(parts, fitWidth(m.help.View(m.keys), width))
	return strings.Join(parts, "\n")
}

// rowLines renders every node; cur is the line index of the cursor.
func (m appModel) rowLines(width int) ([]string, int) {
	nodes := m.idx.Nodes()
	out := make([]string, 0, len(nodes))
	cur := 0
	for i, n := range nodes {
		selected := n.ID == m.cursor
		if selected {
			cur = i
		}
		line := m.renderRow(n, selected)
		if selected {
			line = styleSelected().Render(fitWidth(line, width))
		}
		out = append(out, line)
	}
	if len(out) == 0 {
		out = append(out, styleMuted().Render("(empty checklist)"))
	}
	return out, cur
}

func (m appModel) renderRow(n tree.Node, selected bool) string {
	indent := strings.Repeat("  ", n.Depth)
	lead := " "
	if selected {
		lead = glyphCursor()
	}
	name := n.Name()

	switch {
	case tree.IsPipeWrapped(name):
		return lead + indent + styleLabel().Render(strings.TrimSpace(strings.Trim(name, "|")))
	case n.Value.Kind() == tree.KindFalse:
		return lead + indent + glyphSkipped() + " " + styleSkipped().Render(name)
	case n.Value.Kind() == tree.KindNull:
		return lead + indent + glyphNote() + " " + styleMuted().Render(name)
	case m.idx.IsActionable(n.ID):
		box := glyphUnchecked()
		text := name + scalarText(n.Value)
		if m.idx.IsCompleted(n.ID, m.checked) {
			box = glyphChecked()
			text = styleDone().Render(text)
		}
		return lead + indent + box + " " + text
	default:
		g := glyphGroup()
		st := lipgloss.NewStyle().Bold(true)
		if m.idx.IsCompleted(n.ID, m.checked) {
			g = glyphGroupDone()
			st = st.Inherit(styleDone())
		}
		return lead + indent + g + " " + st.Render(name)
	}
}

func scalarText(v tree.Value) string {
	if v.Kind() != tree.KindScalar {
		return ""
	}
	switch s := v.ScalarValue().(type) {
	case string:
		return styleMuted().Render(": " + s)
	case json.RawMessage:
		return styleMuted().Render(": " + string(s))
	default:
		return styleMuted().Render(fmt.Sprintf(": %v", s))
	}
}
