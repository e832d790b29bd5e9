// Package mapping defines the Mapping extension family: per-record
// transforms applied in declared order between a Model and a Format.
package mapping

import "github.com/avalon-project/avalon/internal/message"

// Type transforms a record. Returning (nil, nil) drops the record from the
// batch (SPEC_FULL.md §4.8); returning a non-nil error is a MappingError
// scoped to the owning producer and mapping instance.
type Type interface {
	Map(rec message.Record) (message.Record, error)
}

// Func adapts a plain function to Type.
type Func func(message.Record) (message.Record, error)

// Map implements Type.
func (f Func) Map(rec message.Record) (message.Record, error) { return f(rec) }

// Constructor builds a new Mapping instance from its bound argument
// attributes.
type Constructor func(attrs map[string]any) (Type, error)

// Chain applies a sequence of mappings in order, short-circuiting on drop
// (nil record, nil error) or error.
type Chain []Type

// Apply runs the full chain against rec, returning the final record (nil if
// dropped) or the first error encountered.
func (c Chain) Apply(rec message.Record) (message.Record, error) {
	for _, m := range c {
		var err error
		rec, err = m.Map(rec)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, nil
		}
	}
	return rec, nil
}
