package model

import "errors"

// ErrProduction wraps a failure from Next. The scheduler drops the record,
// does not advance the emitted counter, and logs a rate-limited warning
// (SPEC_FULL.md §7).
var ErrProduction = errors.New("model production error")
