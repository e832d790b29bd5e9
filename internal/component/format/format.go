// Package format defines the Format extension family: components that
// consume size records from a model-shaped source and return one
// serialized batch payload.
package format

import (
	"context"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/component/model"
)

// Source is the model-shaped proxy a Format pulls records from. The
// scheduler hands in a proxy whose Next already applies the mapping chain,
// so a Format that drives its own record production (rather than accepting
// pre-mapped records from the caller) still benefits from mapping without
// knowing about it (SPEC_FULL.md §4.4 step 3).
type Source = model.Type

// Type serializes size records pulled from src into one opaque batch. Must
// accept size=0 and return an Empty batch.
type Type interface {
	Batch(ctx context.Context, src Source, size int) (batch.Batch, error)
}

// Constructor builds a new Format instance from its bound argument
// attributes.
type Constructor func(attrs map[string]any) (Type, error)
