package mutate

import (
	"context"
	"strings"

	"checklist-cli/internal/model"
	"checklist-cli/internal/store"
)

type MoveResult struct {
	From string `json:"from"`
	ID   string `json:"id"`
}

// Move steps from one identifier to the next (or previous) actionable one and
// stores the result as the session cursor. An empty from uses the stored
// cursor. ok is false when the checklist has nothing actionable.
func Move(ctx context.Context, st store.Store, name, from string, forward bool) (MoveResult, bool, error) {
	c, err := Open(ctx, st, name)
	if err != nil {
		return MoveResult{}, false, err
	}
	from = strings.TrimSpace(from)
	if from == "" {
		sess, err := st.Session(c.Name)
		if err != nil {
			return MoveResult{}, false, err
		}
		from = sess.Cursor
	}

	var id string
	var ok bool
	if forward {
		id, ok = c.Index.Next(from)
	} else {
		id, ok = c.Index.Prev(from)
	}
	if !ok {
		return MoveResult{From: from}, false, nil
	}
	if _, err := st.UpdateSession(c.Name, func(s *model.Session) { s.Cursor = id }); err != nil {
		return MoveResult{}, false, err
	}
	return MoveResult{From: from, ID: id}, true, nil
}
