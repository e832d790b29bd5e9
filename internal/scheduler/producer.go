package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/avalon-project/avalon/internal/message"
)

// acquire blocks until the DRR loop grants this worker a turn, then claims
// up to one batch's worth of headroom against the count guard. It returns
// size=0, done=true when the configured --number has been fully claimed
// (by this or other workers); the caller should retire and exit.
func (s *Scheduler) acquire(ctx context.Context, w *drrWorker) (size int, done bool, err error) {
	select {
	case <-w.permit:
	case <-s.sig.ShouldCloseAtLeisure():
		return 0, true, nil
	case <-s.sig.ShouldCloseNow():
		return 0, true, nil
	case <-ctx.Done():
		return 0, true, ctx.Err()
	}

	if s.cfg.Unlimited {
		size = s.cfg.BatchSize
		atomic.AddInt64(&s.claimed, int64(size))
		return size, false, nil
	}

	for {
		claimed := atomic.LoadInt64(&s.claimed)
		emitted := atomic.LoadInt64(&s.emitted)
		remaining := s.cfg.Number - emitted - claimed
		if remaining <= 0 {
			return 0, true, nil
		}
		size = s.cfg.BatchSize
		if int64(size) > remaining {
			size = int(remaining)
		}
		if atomic.CompareAndSwapInt64(&s.claimed, claimed, claimed+int64(size)) {
			return size, false, nil
		}
	}
}

// release returns unused claimed headroom (records dropped by mapping, or
// an entire failed batch) and, separately, credits `advanced` records to
// the emitted counter on a confirmed successful write. `returned` is the
// amount of claimed headroom to give back; it always includes `advanced`.
func (s *Scheduler) release(returned, advanced int) {
	if returned > 0 {
		atomic.AddInt64(&s.claimed, -int64(returned))
	}
	if advanced > 0 {
		atomic.AddInt64(&s.emitted, int64(advanced))
	}
}

func (s *Scheduler) bumpMediumFailures() int32 {
	return atomic.AddInt32(&s.mediumFailures, 1)
}

func (s *Scheduler) resetMediumFailures() {
	atomic.StoreInt32(&s.mediumFailures, 0)
}

// runProducer is the batch-building loop for one expanded producer
// instance (SPEC_FULL.md §4.4 "Batch building"). It owns its Model and
// Format for its entire lifetime and never shares them with another
// goroutine (SPEC_FULL.md §5).
func (s *Scheduler) runProducer(ctx context.Context, group ProducerGroup, w *drrWorker) {
	m, err := group.NewModel()
	if err != nil {
		s.log.WithField("model", group.Title).WithError(err).Error("model construction failed")
		s.drr.retire(w)
		return
	}
	f, err := s.cfg.NewFormat()
	if err != nil {
		s.log.WithError(err).Error("format construction failed")
		s.drr.retire(w)
		return
	}

	consecModelErrs := 0
	consecFormatErrs := 0
	modelWarn := rate.Sometimes{First: 1, Interval: time.Second}

	for {
		select {
		case <-s.sig.ShouldCloseNow():
			return
		case <-ctx.Done():
			return
		default:
		}

		claimSize, done, err := s.acquire(ctx, w)
		if err != nil {
			return
		}
		if done {
			s.drr.retire(w)
			return
		}
		if claimSize == 0 {
			continue
		}

		if err := s.gov.wait(ctx, claimSize); err != nil {
			s.release(claimSize, 0)
			return
		}

		records := make([]message.Record, 0, claimSize)
		for i := 0; i < claimSize; i++ {
			rec, err := m.Next(ctx)
			if err != nil {
				consecModelErrs++
				modelWarn.Do(func() {
					s.log.WithField("model", group.Title).WithError(err).Warn("model production error")
				})
				if consecModelErrs >= s.cfg.MaxConsecutiveModelErrors {
					s.release(claimSize-len(records), 0)
					s.drr.retire(w)
					if s.drr.allRetired() {
						s.abort(&AllProducersRetired{})
					}
					return
				}
				continue
			}
			consecModelErrs = 0

			mapped, merr := group.Mappings.Apply(rec)
			if merr != nil {
				s.log.WithField("model", group.Title).WithError(merr).Warn("mapping error")
				continue
			}
			if mapped == nil {
				continue // dropped by mapping chain (SPEC_FULL.md §4.8)
			}
			records = append(records, mapped)
		}

		produced := len(records)
		if dropped := claimSize - produced; dropped > 0 {
			s.release(dropped, 0)
		}
		if produced == 0 {
			continue
		}

		b, ferr := f.Batch(ctx, newSliceProxy(records), produced)
		if ferr != nil {
			consecFormatErrs++
			s.release(produced, 0)
			s.log.WithError(ferr).Warn("format error")
			if consecFormatErrs >= s.cfg.MaxConsecutiveFormatErrors {
				s.drr.retire(w)
				if s.drr.allRetired() {
					s.abort(&AllProducersRetired{})
				}
				return
			}
			continue
		}
		consecFormatErrs = 0

		res, err := s.pool.Submit(ctx, b)
		if err != nil {
			s.release(produced, 0)
			return
		}
		if res.Err != nil {
			s.release(produced, 0)
			s.log.WithError(res.Err).Warn("medium write failed")
			if s.bumpMediumFailures() >= int32(s.cfg.MaxMediumFailures) {
				s.abort(&MediumExhausted{Failures: s.cfg.MaxMediumFailures})
				return
			}
			continue
		}
		s.resetMediumFailures()
		s.release(produced, produced)
	}
}
