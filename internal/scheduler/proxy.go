package scheduler

import (
	"context"
	"errors"

	"github.com/avalon-project/avalon/internal/message"
)

// errProxyExhausted signals a Format that asked for more records than the
// scheduler handed it; a well-behaved Format never sees this since it is
// always called with src containing exactly `size` records.
var errProxyExhausted = errors.New("scheduler: model proxy exhausted")

// sliceProxy implements format.Source (== model.Type) over a fixed slice of
// already-mapped records, so a Format calling src.Next() repeatedly
// receives the mapping chain's output without knowing mapping exists
// (SPEC_FULL.md §4.4 step 3).
type sliceProxy struct {
	records []message.Record
	i       int
}

func newSliceProxy(records []message.Record) *sliceProxy {
	return &sliceProxy{records: records}
}

func (p *sliceProxy) Next(ctx context.Context) (message.Record, error) {
	if p.i >= len(p.records) {
		return nil, errProxyExhausted
	}
	rec := p.records[p.i]
	p.i++
	return rec, nil
}
