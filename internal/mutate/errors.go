package mutate

import "fmt"

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// NotActionableError is returned when checking an identifier that resolves to
// a node the user cannot tick (skipped entries, notes, pipe-wrapped labels).
type NotActionableError struct {
	ID string
}

func (e NotActionableError) Error() string {
	return fmt.Sprintf("not actionable: %s", e.ID)
}
