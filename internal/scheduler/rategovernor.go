package scheduler

import (
	"context"

	"golang.org/x/time/rate"
)

// rateGovernor caps global emission at R records/sec over a sliding window
// no longer than one second (SPEC_FULL.md §4.4 "Rate governor"). A nil
// governor means unlimited.
type rateGovernor struct {
	limiter *rate.Limiter
}

// newRateGovernor returns nil when r is 0 (unlimited); otherwise a limiter
// with burst max(batchSize, r/10) (SPEC_FULL.md §4.4): large enough that
// WaitN never deadlocks against a batch bigger than the configured rate,
// small enough that it can't front-load a multi-second head start before
// throttling takes effect.
func newRateGovernor(r, batchSize int) *rateGovernor {
	if r <= 0 {
		return nil
	}
	burst := batchSize
	if tenth := r / 10; tenth > burst {
		burst = tenth
	}
	return &rateGovernor{limiter: rate.NewLimiter(rate.Limit(r), burst)}
}

// wait blocks until n tokens are available, consuming them. It never drops
// records silently (SPEC_FULL.md §4.4): a caller that gets an error here is
// only unblocked by context cancellation.
func (g *rateGovernor) wait(ctx context.Context, n int) error {
	if g == nil || n <= 0 {
		return nil
	}
	return g.limiter.WaitN(ctx, n)
}
