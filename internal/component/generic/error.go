package generic

import "fmt"

// HookFailed wraps an error raised by a generic hook, aborting startup
// (SPEC_FULL.md §4.3).
type HookFailed struct {
	Title string
	Cause error
}

func (e *HookFailed) Error() string {
	return fmt.Sprintf("generic hook %q failed: %v", e.Title, e.Cause)
}

func (e *HookFailed) Unwrap() error { return e.Cause }
