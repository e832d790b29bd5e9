// Package writerpool implements the bounded parallel writer pool
// (SPEC_FULL.md §4.5): W worker goroutines pull batches off an in-memory
// queue of capacity W and call into a Medium; a full queue blocks the
// scheduler, which in turn starves producers, keeping memory bounded
// regardless of any rate mismatch between generation and the sink.
package writerpool

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/component/medium"
)

// Result reports the outcome of one batch write: Count is the number of
// records the scheduler may credit to `emitted` on success; Err is non-nil
// on failure (the batch is considered lost, emitted is not advanced,
// SPEC_FULL.md §7).
type Result struct {
	Count int
	Err   error
}

// job pairs a batch with the result channel its submitter is waiting on,
// so a Submit call can report failure without the pool needing a separate
// per-batch correlation id.
type job struct {
	b      batch.Batch
	result chan<- Result
}

// Pool is a bounded pool of writer-pool worker slots, each owning one
// Medium instance for its lifetime (components are never shared across
// worker goroutines, SPEC_FULL.md §5).
type Pool struct {
	size      int
	queue     chan job
	newMedium func() (medium.Type, error)
	log       *logrus.Entry
	wg        conc.WaitGroup
}

// New returns a Pool with W worker slots and a queue of capacity W.
func New(size int, newMedium func() (medium.Type, error), log *logrus.Entry) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		size:      size,
		queue:     make(chan job, size),
		newMedium: newMedium,
		log:       log,
	}
}

// Start spins up the W worker goroutines. It must be called once before any
// Submit.
func (p *Pool) Start(ctx context.Context) error {
	for i := 0; i < p.size; i++ {
		slot := i
		m, err := p.newMedium()
		if err != nil {
			return err
		}
		p.wg.Go(func() {
			p.runSlot(ctx, slot, m)
		})
	}
	return nil
}

func (p *Pool) runSlot(ctx context.Context, slot int, m medium.Type) {
	defer func() {
		if err := m.Close(context.Background()); err != nil && p.log != nil {
			p.log.WithField("slot", slot).WithError(err).Warn("medium close failed")
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-p.queue:
			if !ok {
				return
			}
			if j.b.Empty() {
				j.result <- Result{Count: 0}
				continue
			}
			err := m.Write(ctx, j.b)
			if err != nil {
				j.result <- Result{Err: err}
				continue
			}
			j.result <- Result{Count: j.b.Count}
		}
	}
}

// Submit enqueues a batch for writing, blocking if the queue is full (the
// backpressure mechanism described in SPEC_FULL.md §4.5), and returns the
// write outcome once a worker slot has processed it. It returns
// ctx.Err() if ctx is cancelled before the batch could be enqueued.
func (p *Pool) Submit(ctx context.Context, b batch.Batch) (Result, error) {
	result := make(chan Result, 1)
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case p.queue <- job{b: b, result: result}:
	}
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case r := <-result:
		return r, nil
	}
}

// Close stops accepting new batches and waits for in-flight writes to
// finish, closing every Medium instance.
func (p *Pool) Close() {
	close(p.queue)
	p.wg.Wait()
}
