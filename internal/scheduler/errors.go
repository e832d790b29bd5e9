package scheduler

import "fmt"

// ShutdownTimeout is returned when the writer queue fails to drain within
// Config.DrainTimeout after a graceful shutdown request (SPEC_FULL.md §5
// "Cancellation").
type ShutdownTimeout struct {
	WaitedFor string
}

func (e *ShutdownTimeout) Error() string {
	return fmt.Sprintf("shutdown timed out after %s", e.WaitedFor)
}

// AllProducersRetired is returned when every producer worker has retired
// after exceeding its consecutive-error threshold (SPEC_FULL.md §7).
type AllProducersRetired struct{}

func (e *AllProducersRetired) Error() string {
	return "all producers retired after repeated errors"
}

// MediumExhausted is returned when the same medium has failed
// max_medium_failures times consecutively (SPEC_FULL.md §7).
type MediumExhausted struct {
	Failures int
}

func (e *MediumExhausted) Error() string {
	return fmt.Sprintf("medium failed %d consecutive times, aborting", e.Failures)
}
