package mapping

import "errors"

// ErrMapping wraps a failure from Map, scoped to the owning producer and
// the particular mapping URL/title (SPEC_FULL.md §7).
var ErrMapping = errors.New("mapping error")
