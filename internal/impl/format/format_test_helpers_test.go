package format

import (
	"context"
	"errors"

	"github.com/avalon-project/avalon/internal/message"
)

// sliceSource replays a fixed list of records, then returns errSourceDrained.
type sliceSource struct {
	records []message.Record
	i       int
}

var errSourceDrained = errors.New("format test: source drained")

func (s *sliceSource) Next(ctx context.Context) (message.Record, error) {
	if s.i >= len(s.records) {
		return nil, errSourceDrained
	}
	rec := s.records[s.i]
	s.i++
	return rec, nil
}
