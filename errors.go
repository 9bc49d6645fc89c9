package genasset

import (
	"fmt"
)

// InconsistentError is the hard failure of the lookup pipeline: a tuple was
// produced (from the cache or by a fresh write) but the asset store does not
// confirm the object it points at. The handler never papers over it by
// regenerating; callers decide whether to flush, rebuild, or surface it.
type InconsistentError struct {
	// Filename is the logical filename whose artifact could not be located.
	Filename string
}

func (e *InconsistentError) Error() string {
	return fmt.Sprintf("genasset: could not regenerate or locate file %q", e.Filename)
}
