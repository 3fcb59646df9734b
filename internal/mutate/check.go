package mutate

import (
	"context"
	"strings"
	"time"

	"checklist-cli/internal/model"
	"checklist-cli/internal/store"
)

type CheckResult struct {
	ID      string `json:"id"`
	Checked bool   `json:"checked"`
	Changed bool   `json:"changed"`
	// ItemCompleted is the completion of the touched node after the change.
	ItemCompleted bool `json:"itemCompleted"`
	// Complete is the completion of the whole checklist after the change.
	Complete bool `json:"complete"`
	// BecameComplete is set when this change finished the checklist.
	BecameComplete bool `json:"becameComplete"`
}

// SetChecked marks or unmarks one identifier. Checking requires an actionable
// node of the current tree; an identifier already in the checked-set can
// always be unchecked, even after an edit made it stale.
func SetChecked(ctx context.Context, st store.Store, name, id string, checked bool) (CheckResult, error) {
	c, err := Open(ctx, st, name)
	if err != nil {
		return CheckResult{}, err
	}
	return c.set(ctx, st, id, checked)
}

// Toggle flips one identifier.
func Toggle(ctx context.Context, st store.Store, name, id string) (CheckResult, error) {
	c, err := Open(ctx, st, name)
	if err != nil {
		return CheckResult{}, err
	}
	return c.set(ctx, st, id, !c.Checked.Has(strings.TrimSpace(id)))
}

func (c Checklist) set(ctx context.Context, st store.Store, id string, checked bool) (CheckResult, error) {
	id = strings.TrimSpace(id)
	if checked || !c.Checked.Has(id) {
		if _, ok := c.Index.Lookup(id); !ok {
			return CheckResult{}, NotFoundError{Kind: "item", ID: id}
		}
		if !c.Index.IsActionable(id) {
			return CheckResult{}, NotActionableError{ID: id}
		}
	}

	wasComplete := c.Complete()
	res := CheckResult{ID: id, Checked: checked}
	if c.Checked.Has(id) != checked {
		if err := st.SetChecked(ctx, c.Name, id, checked); err != nil {
			return CheckResult{}, err
		}
		if checked {
			c.Checked.Add(id)
		} else {
			c.Checked.Remove(id)
		}
		res.Changed = true
	}
	res.ItemCompleted = c.Index.IsCompleted(id, c.Checked)
	res.Complete = c.Complete()
	res.BecameComplete = res.Complete && !wasComplete
	return res, nil
}

// Reset clears the checked-set and restarts the session clock.
func Reset(ctx context.Context, st store.Store, name string, now time.Time) error {
	if _, err := Open(ctx, st, name); err != nil {
		return err
	}
	if err := st.Reset(ctx, name); err != nil {
		return err
	}
	_, err := st.UpdateSession(name, func(s *model.Session) {
		s.Cursor = ""
		s.StartedAt = now.UTC()
	})
	return err
}
