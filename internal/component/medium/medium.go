// Package medium defines the Medium extension family: components that
// deliver a formatted batch to an external sink.
package medium

import (
	"context"

	"github.com/avalon-project/avalon/internal/batch"
)

// Type delivers batches to a sink. Write must be safe to call repeatedly
// from the one writer-pool worker goroutine that owns this instance; a
// Medium that needs cross-call ordering serializes internally (the writer
// pool gives none, SPEC_FULL.md §4.5).
type Type interface {
	Write(ctx context.Context, b batch.Batch) error
	Close(ctx context.Context) error
}

// Constructor builds a new Medium instance from its bound argument
// attributes.
type Constructor func(attrs map[string]any) (Type, error)
