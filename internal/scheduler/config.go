// Package scheduler implements the multi-producer fan-out scheduler
// (SPEC_FULL.md §4.4): weighted fair dispatch across producer workers, the
// global rate governor, the count guard, and batch building.
package scheduler

import (
	"time"

	"github.com/avalon-project/avalon/internal/component/format"
	"github.com/avalon-project/avalon/internal/component/mapping"
	"github.com/avalon-project/avalon/internal/component/model"
)

// ProducerGroup is one expanded producer spec: Count independent worker
// goroutines, each with its own Model instance, sharing Title/Weight and
// the composed mapping chain (inline per-instance mappings first, then
// global --map mappings, SPEC_FULL.md §4.4 step 2).
type ProducerGroup struct {
	Title    string
	Count    int
	Weight   int
	NewModel func() (model.Type, error)
	Mappings mapping.Chain
}

// Config parameterizes one Scheduler run.
type Config struct {
	// Number is the total record cap (SPEC_FULL.md §4.4 "Count guard").
	// Unlimited is true when --number was not supplied.
	Number    int64
	Unlimited bool

	// Rate is the global records-per-second cap; 0 means unlimited.
	Rate int

	BatchSize int
	Writers   int

	Groups []ProducerGroup

	// NewFormat constructs one Format instance per producer worker (a
	// Format is owned by exactly one worker, SPEC_FULL.md §5).
	NewFormat func() (format.Type, error)

	MaxConsecutiveModelErrors  int
	MaxConsecutiveFormatErrors int
	MaxMediumFailures          int
	DrainTimeout               time.Duration
}

// DefaultConfig fills in the error-threshold constants introduced by
// SPEC_FULL.md §9 "Open questions" as implementation defaults, since the
// source does not surface them.
func DefaultConfig() Config {
	return Config{
		BatchSize:                  1,
		Writers:                    1,
		MaxConsecutiveModelErrors:  100,
		MaxConsecutiveFormatErrors: 100,
		MaxMediumFailures:          10,
		DrainTimeout:               30 * time.Second,
	}
}
