package mutate

import (
	"context"
	"errors"
	"strings"

	"checklist-cli/internal/store"
	"checklist-cli/internal/tree"
)

// Checklist is one loaded checklist plus its checked-set.
type Checklist struct {
	Name    string
	Index   *tree.Index
	Checked tree.Set
}

// Open loads a checklist tree and its checked-set.
func Open(ctx context.Context, st store.Store, name string) (Checklist, error) {
	name = strings.TrimSpace(name)
	root, err := st.LoadChecklist(name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Checklist{}, NotFoundError{Kind: "checklist", ID: name}
		}
		return Checklist{}, err
	}
	checked, err := st.Checked(ctx, name)
	if err != nil {
		return Checklist{}, err
	}
	return Checklist{Name: name, Index: tree.NewIndex(root), Checked: checked}, nil
}

func (c Checklist) Complete() bool {
	return tree.Progress(c.Index.Root(), c.Checked).Complete
}
