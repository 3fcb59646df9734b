package publish

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"checklist-cli/internal/tree"
)

type RenderOptions struct {
	// IncludeSkipped keeps false/null entries (rendered struck through / as notes).
	IncludeSkipped bool
	// Progress adds a "done/total" line under the title.
	Progress bool
}

// RenderChecklistMarkdown renders a checklist as a GitHub-style task list.
func RenderChecklistMarkdown(name string, idx *tree.Index, checked tree.Checked, opt RenderOptions) (string, error) {
	if idx == nil {
		return "", fmt.Errorf("missing checklist")
	}

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + strings.TrimSpace(name))
	writeLn("")
	if opt.Progress {
		p := tree.Progress(idx.Root(), checked)
		line := fmt.Sprintf("Progress: %d/%d", p.Done, p.Total)
		if p.Complete {
			line += " (complete)"
		}
		writeLn(line)
		writeLn("")
	}

	for _, n := range idx.Nodes() {
		if n.Value.Inert() && !opt.IncludeSkipped {
			continue
		}
		renderLine(&buf, idx, n, checked)
	}
	return buf.String(), nil
}

func renderLine(buf *bytes.Buffer, idx *tree.Index, n tree.Node, checked tree.Checked) {
	prefix := strings.Repeat("  ", n.Depth)
	name := strings.TrimSpace(n.Name())

	switch {
	case tree.IsPipeWrapped(name):
		fmt.Fprintf(buf, "%s- **%s**\n", prefix, strings.TrimSpace(strings.Trim(name, "|")))
	case n.Value.Kind() == tree.KindFalse:
		fmt.Fprintf(buf, "%s- ~~%s~~\n", prefix, name)
	case n.Value.Kind() == tree.KindNull:
		fmt.Fprintf(buf, "%s- _%s_\n", prefix, name)
	case idx.IsActionable(n.ID):
		box := " "
		if idx.IsCompleted(n.ID, checked) {
			box = "x"
		}
		fmt.Fprintf(buf, "%s- [%s] %s%s\n", prefix, box, name, scalarSuffix(n.Value))
	default:
		fmt.Fprintf(buf, "%s- %s\n", prefix, name)
	}
}

func scalarSuffix(v tree.Value) string {
	if v.Kind() != tree.KindScalar {
		return ""
	}
	switch s := v.ScalarValue().(type) {
	case string:
		return ": " + s
	case json.RawMessage:
		return ": `" + string(s) + "`"
	default:
		return ": " + fmt.Sprint(s)
	}
}
