package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/component/format"
	"github.com/avalon-project/avalon/internal/component/mapping"
	"github.com/avalon-project/avalon/internal/component/medium"
	"github.com/avalon-project/avalon/internal/component/model"
	"github.com/avalon-project/avalon/internal/message"
	"github.com/avalon-project/avalon/internal/writerpool"
)

type counterModel struct {
	title string
	n     int64
}

func (m *counterModel) Next(ctx context.Context) (message.Record, error) {
	n := atomic.AddInt64(&m.n, 1)
	return message.Record{"model": m.title, "seq": n}, nil
}

type countingFormat struct{}

func (countingFormat) Batch(ctx context.Context, src format.Source, size int) (batch.Batch, error) {
	count := 0
	for i := 0; i < size; i++ {
		if _, err := src.Next(ctx); err != nil {
			break
		}
		count++
	}
	return batch.Batch{Payload: []byte("batch"), Count: count}, nil
}

type sinkMedium struct {
	written int64
	byModel map[string]*int64
}

func (s *sinkMedium) Write(ctx context.Context, b batch.Batch) error {
	atomic.AddInt64(&s.written, int64(b.Count))
	return nil
}
func (s *sinkMedium) Close(ctx context.Context) error { return nil }

func newTestLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(nopWriter{})
	return logrus.NewEntry(l)
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestSchedulerNumberZeroExitsImmediately(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Number = 0
	cfg.Groups = []ProducerGroup{{Title: "snort", Count: 1, Weight: 1, NewModel: func() (model.Type, error) { return &counterModel{title: "snort"}, nil }}}
	cfg.NewFormat = func() (format.Type, error) { return countingFormat{}, nil }

	sink := &sinkMedium{}
	pool := writerpool.New(1, func() (medium.Type, error) { return sink, nil }, newTestLogger())
	s := New(cfg, pool, newTestLogger())

	code, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, int64(0), s.Emitted())
}

func TestSchedulerEmitsExactlyNumber(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Number = 37
	cfg.BatchSize = 10
	cfg.Groups = []ProducerGroup{{Title: "snort", Count: 1, Weight: 1, NewModel: func() (model.Type, error) { return &counterModel{title: "snort"}, nil }}}
	cfg.NewFormat = func() (format.Type, error) { return countingFormat{}, nil }

	sink := &sinkMedium{}
	pool := writerpool.New(2, func() (medium.Type, error) { return sink, nil }, newTestLogger())
	s := New(cfg, pool, newTestLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	code, err := s.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, int64(37), s.Emitted())
	require.Equal(t, int64(37), atomic.LoadInt64(&sink.written))
}

func TestSchedulerWeightedFanOutRatio(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Number = 400
	cfg.BatchSize = 10
	emittedByModel := map[string]*int64{"snort": new(int64), "asa": new(int64)}

	newModelFor := func(title string) func() (model.Type, error) {
		return func() (model.Type, error) { return &countingModelTracked{title: title, counters: emittedByModel}, nil }
	}

	cfg.Groups = []ProducerGroup{
		{Title: "snort", Count: 1, Weight: 3, NewModel: newModelFor("snort")},
		{Title: "asa", Count: 1, Weight: 1, NewModel: newModelFor("asa")},
	}
	cfg.NewFormat = func() (format.Type, error) { return countingFormat{}, nil }

	sink := &sinkMedium{}
	pool := writerpool.New(2, func() (medium.Type, error) { return sink, nil }, newTestLogger())
	s := New(cfg, pool, newTestLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	code, err := s.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, int64(400), s.Emitted())

	snort := atomic.LoadInt64(emittedByModel["snort"])
	asa := atomic.LoadInt64(emittedByModel["asa"])
	require.InDelta(t, 300, snort, float64(cfg.BatchSize))
	require.InDelta(t, 100, asa, float64(cfg.BatchSize))
}

// countingModelTracked additionally tallies how many records each model
// title actually produced, for the weighted fan-out ratio assertion
// (SPEC_FULL.md §8).
type countingModelTracked struct {
	title    string
	counters map[string]*int64
}

func (m *countingModelTracked) Next(ctx context.Context) (message.Record, error) {
	atomic.AddInt64(m.counters[m.title], 1)
	return message.Record{"model": m.title}, nil
}

func TestMappingChainDropReturnsNilRecord(t *testing.T) {
	chain := mapping.Chain{mapping.Func(func(r message.Record) (message.Record, error) {
		return nil, nil // drop every record
	})}

	rec, err := chain.Apply(message.Record{"x": 1})
	require.NoError(t, err)
	require.Nil(t, rec)
}
