package lookups

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/limitless-club/booking/internal/metrics"
	"github.com/limitless-club/booking/pkg/airtable"
)

// Retry repeats a record-store read after a timeout. Other errors are
// returned at once.
type Retry struct {
	Attempts int
	Delay    time.Duration

	metrics *metrics.Metrics
	logger  *zap.Logger
	sleep   func(ctx context.Context, d time.Duration) error
}

// DefaultRetry is 3 attempts, 2s apart.
func DefaultRetry(m *metrics.Metrics, logger *zap.Logger) *Retry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retry{Attempts: 3, Delay: 2 * time.Second, metrics: m, logger: logger, sleep: sleepCtx}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Do runs fn until it succeeds, fails with a non-timeout error or the
// attempts run out.
func (r *Retry) Do(ctx context.Context, endpoint string, fn func(context.Context) error) error {
	var err error
	for attempt := 1; ; attempt++ {
		err = fn(ctx)
		if err == nil || !airtable.IsTimeout(err) || attempt >= r.Attempts {
			return err
		}
		r.logger.Warn("record store timeout, retrying",
			zap.String("endpoint", endpoint),
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", r.Attempts),
		)
		r.metrics.ObserveRetry(endpoint)
		if serr := r.sleep(ctx, r.Delay); serr != nil {
			return err
		}
	}
}
