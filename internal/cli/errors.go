package cli

import (
	"errors"

	"checklist-cli/internal/mutate"
	"checklist-cli/internal/store"
)

// IsNotFound reports whether err names a missing checklist or item.
func IsNotFound(err error) bool {
	var nf mutate.NotFoundError
	return errors.As(err, &nf) || errors.Is(err, store.ErrNotFound)
}
