package statusutil

import (
	"checklist-cli/internal/model"
	"checklist-cli/internal/tree"
)

// Rows flattens idx into display rows, in walk order.
func Rows(idx *tree.Index, checked tree.Checked) []model.Row {
	nodes := idx.Nodes()
	out := make([]model.Row, 0, len(nodes))
	for _, n := range nodes {
		name := n.Name()
		out = append(out, model.Row{
			ID:         n.ID,
			Name:       name,
			Depth:      n.Depth,
			Kind:       n.Value.Kind().String(),
			Label:      tree.IsPipeWrapped(name),
			Actionable: idx.IsActionable(n.ID),
			Checked:    checked != nil && checked.Has(n.ID),
			Completed:  idx.IsCompleted(n.ID, checked),
		})
	}
	return out
}

// Snapshot is the full derived state of one checklist.
type Snapshot struct {
	Checklist  string       `json:"checklist"`
	Order      []string     `json:"order"`
	Actionable []string     `json:"actionable"`
	Checked    []string     `json:"checked"`
	Completed  []string     `json:"completed"`
	Progress   tree.Summary `json:"progress"`
	Cursor     string       `json:"cursor,omitempty"`
}

func NewSnapshot(name string, idx *tree.Index, checked tree.Set) Snapshot {
	s := Snapshot{
		Checklist:  name,
		Order:      idx.Order(),
		Actionable: []string{},
		Checked:    checked.IDs(idx.Root()),
		Completed:  []string{},
		Progress:   tree.Progress(idx.Root(), checked),
	}
	for _, id := range s.Order {
		if idx.IsActionable(id) {
			s.Actionable = append(s.Actionable, id)
		}
		if idx.IsCompleted(id, checked) {
			s.Completed = append(s.Completed, id)
		}
	}
	return s
}

// Done reports whether every top-level entry of the checklist is complete.
func Done(idx *tree.Index, checked tree.Checked) bool {
	return tree.Progress(idx.Root(), checked).Complete
}
