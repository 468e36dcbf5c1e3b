package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/courtside/internal/domain/session"
	"github.com/riskibarqy/courtside/internal/platform/logging"
)

const (
	defaultDispatchWorkers = 8
	defaultDispatchTimeout = 30 * time.Second
)

// ResultDispatcher delivers finished matches to the next sink off the
// request path. Deliveries ignore the caller's cancellation and are
// bounded by timeout. When every worker is busy the record is rejected
// rather than queued.
type ResultDispatcher struct {
	next    session.ResultSink
	pool    *ants.Pool
	timeout time.Duration
	logger  *logging.Logger
}

func NewResultDispatcher(next session.ResultSink, workers int, timeout time.Duration, logger *logging.Logger) (*ResultDispatcher, error) {
	if next == nil {
		return nil, errors.New("result dispatcher needs a sink")
	}
	if workers < 1 {
		workers = defaultDispatchWorkers
	}
	if timeout <= 0 {
		timeout = defaultDispatchTimeout
	}
	if logger == nil {
		logger = logging.Default()
	}

	pool, err := ants.NewPool(workers,
		ants.WithNonblocking(true),
		ants.WithPanicHandler(func(p any) {
			logger.Error("result delivery panicked", "panic", fmt.Sprint(p))
		}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create result dispatch pool")
	}

	return &ResultDispatcher{next: next, pool: pool, timeout: timeout, logger: logger}, nil
}

// Publish schedules delivery and returns without waiting for it.
func (d *ResultDispatcher) Publish(ctx context.Context, record session.HistoryRecord) error {
	detached := context.WithoutCancel(ctx)
	err := d.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(detached, d.timeout)
		defer cancel()

		if err := d.next.Publish(ctx, record); err != nil {
			d.logger.WarnContext(ctx, "deliver match result failed",
				"record_id", record.ID,
				"court", record.Court,
				"error", err,
			)
		}
	})
	if err != nil {
		return errors.Wrapf(err, "dispatch record %s", record.ID)
	}
	return nil
}

// Close stops accepting records and waits up to wait for in-flight
// deliveries.
func (d *ResultDispatcher) Close(wait time.Duration) error {
	if err := d.pool.ReleaseTimeout(wait); err != nil {
		return errors.Wrap(err, "drain result deliveries")
	}
	return nil
}
