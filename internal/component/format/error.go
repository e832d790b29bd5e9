package format

import "errors"

// ErrFormat wraps a batch serialization failure. The batch is dropped, not
// retried; the emitted counter is not advanced (SPEC_FULL.md §7).
var ErrFormat = errors.New("format error")
