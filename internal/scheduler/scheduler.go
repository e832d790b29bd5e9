package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/avalon-project/avalon/internal/shutdown"
	"github.com/avalon-project/avalon/internal/writerpool"
)

// Scheduler owns the pipeline's shared mutable state (emitted, claimed
// headroom, and the rate-governor token bucket, SPEC_FULL.md §5 "Shared
// resources") and drives producer fan-out, weighted dispatch, the rate and
// count governors, and dispatch into the writer pool.
type Scheduler struct {
	cfg  Config
	log  *logrus.Entry
	pool *writerpool.Pool
	drr  *drr
	gov  *rateGovernor
	sig  *shutdown.Signaller

	emitted int64
	claimed int64

	mediumFailures int32
	abortErr       atomic.Value // *errBox
}

// errBox lets abortErr store a consistent concrete type across calls even
// though the underlying error's dynamic type varies (atomic.Value requires
// the same concrete type on every Store).
type errBox struct{ err error }

// New constructs a Scheduler. pool must already be wired to the selected
// Medium's constructor (one instance per writer-pool slot); the Scheduler
// calls pool.Start/Submit/Close itself.
func New(cfg Config, pool *writerpool.Pool, log *logrus.Entry) *Scheduler {
	return &Scheduler{
		cfg:  cfg,
		log:  log,
		pool: pool,
		drr:  newDRR(cfg.BatchSize),
		gov:  newRateGovernor(cfg.Rate, cfg.BatchSize),
		sig:  shutdown.NewSignaller(),
	}
}

// Signaller exposes the shutdown coordination primitive so a caller (e.g.
// the CLI's SIGINT handler) can request graceful or forced shutdown.
func (s *Scheduler) Signaller() *shutdown.Signaller { return s.sig }

// Emitted returns the current count of records credited to the sink. Safe
// for concurrent use; intended for tests and metrics.
func (s *Scheduler) Emitted() int64 { return atomic.LoadInt64(&s.emitted) }

// Run starts the writer pool and every producer worker, blocks until the
// count guard is satisfied, the context is cancelled, or a fatal condition
// (all producers retired, medium exhausted, shutdown timeout) is reached,
// and returns a process exit code: 0 for clean completion, non-zero
// otherwise (SPEC_FULL.md §6).
func (s *Scheduler) Run(ctx context.Context) (int, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.cfg.Number == 0 && !s.cfg.Unlimited {
		// --number 0: exit immediately, no writes (SPEC_FULL.md §8).
		return 0, nil
	}

	if err := s.pool.Start(runCtx); err != nil {
		return 2, err
	}

	go s.drr.run()
	defer s.drr.close()

	var wg sync.WaitGroup
	for _, group := range s.cfg.Groups {
		for i := 0; i < group.Count; i++ {
			w := s.drr.addWorker(group.Weight)
			wg.Add(1)
			go func(group ProducerGroup, w *drrWorker) {
				defer wg.Done()
				s.runProducer(runCtx, group, w)
			}(group, w)
		}
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-s.sig.ShouldCloseAtLeisure():
		select {
		case <-done:
		case <-time.After(s.cfg.DrainTimeout):
			cancel()
			<-done
			s.pool.Close()
			return 1, &ShutdownTimeout{WaitedFor: s.cfg.DrainTimeout.String()}
		case <-s.sig.ShouldCloseNow():
			cancel()
			<-done
			s.pool.Close()
			return 1, nil
		}
	case <-ctx.Done():
		<-done
	}

	s.pool.Close()

	if v := s.abortErr.Load(); v != nil {
		return 1, v.(*errBox).err
	}
	if !s.cfg.Unlimited && s.Emitted() < s.cfg.Number {
		return 1, &AllProducersRetired{}
	}
	return 0, nil
}

func (s *Scheduler) abort(err error) {
	s.abortErr.Store(&errBox{err: err})
	s.sig.CloseNow()
}
