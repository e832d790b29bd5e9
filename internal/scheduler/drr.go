package scheduler

import (
	"runtime"
	"sync"
	"time"
)

// drrWorker is one participant in the deficit round-robin discipline: one
// goroutine per expanded producer instance (SPEC_FULL.md §4.4 "Weighted
// fair dispatch"). permit is granted whenever this worker's accumulated
// deficit reaches at least one batch's worth of records.
type drrWorker struct {
	weight  int
	deficit int
	retired bool
	permit  chan struct{}
}

// drr runs the single shared deficit round-robin loop across every
// producer worker. Over any window of at least max_weight*batch_size
// emitted records, each worker's share of granted permits approximates its
// weight ratio within one batch (SPEC_FULL.md §4.4; exercised by TestSchedulerWeightedFanOutRatio in
// scheduler_test.go).
type drr struct {
	mu        sync.Mutex
	workers   []*drrWorker
	batchSize int
	stop      chan struct{}
}

func newDRR(batchSize int) *drr {
	return &drr{batchSize: batchSize, stop: make(chan struct{})}
}

func (d *drr) addWorker(weight int) *drrWorker {
	d.mu.Lock()
	defer d.mu.Unlock()
	w := &drrWorker{weight: weight, permit: make(chan struct{}, 2)}
	d.workers = append(d.workers, w)
	return w
}

func (d *drr) retire(w *drrWorker) {
	d.mu.Lock()
	w.retired = true
	d.mu.Unlock()
}

func (d *drr) allRetired() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, w := range d.workers {
		if !w.retired {
			return false
		}
	}
	return len(d.workers) > 0
}

// run drives the round-robin credit loop until stop is closed. It is
// started once per Scheduler.Run and torn down on shutdown.
func (d *drr) run() {
	for {
		select {
		case <-d.stop:
			return
		default:
		}

		granted := false
		d.mu.Lock()
		for _, w := range d.workers {
			if w.retired {
				continue
			}
			w.deficit += w.weight
			if w.deficit >= d.batchSize {
				select {
				case w.permit <- struct{}{}:
					w.deficit -= d.batchSize
					granted = true
				default:
					// worker hasn't consumed its last permit yet; hold the
					// deficit so it is credited once it catches up.
				}
			}
		}
		d.mu.Unlock()

		if !granted {
			time.Sleep(time.Millisecond)
		} else {
			runtime.Gosched()
		}
	}
}

func (d *drr) close() {
	close(d.stop)
}
