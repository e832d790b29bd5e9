// Package model defines the Model extension family: components that
// produce an unbounded lazy sequence of records.
package model

import (
	"context"

	"github.com/avalon-project/avalon/internal/message"
)

// Type produces records. Next is called once per record; it must be safe to
// call repeatedly from a single goroutine (models are never shared across
// producer workers) and must block only on its own internal state, not on
// I/O that belongs downstream.
type Type interface {
	Next(ctx context.Context) (message.Record, error)
}

// Constructor builds a new, independently-stateful Model instance for one
// producer worker from its bound argument attributes.
type Constructor func(attrs map[string]any) (Type, error)
