package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/courtside/internal/domain/session"
	"github.com/riskibarqy/courtside/internal/platform/logging"
)

const defaultRestTickInterval = 10 * time.Second

// RestTicker grows every waiting player's rest time on a fixed period.
type RestTicker struct {
	store    session.Store
	interval time.Duration
	logger   *logging.Logger
}

func NewRestTicker(store session.Store, interval time.Duration, logger *logging.Logger) *RestTicker {
	if interval <= 0 {
		interval = defaultRestTickInterval
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &RestTicker{
		store:    store,
		interval: interval,
		logger:   logger,
	}
}

func (t *RestTicker) Interval() time.Duration {
	return t.interval
}

// Tick applies one interval and reports how many players were updated.
func (t *RestTicker) Tick(ctx context.Context) (int, error) {
	var updated int
	err := t.store.Update(ctx, func(st *session.State) error {
		updated = st.TickRest(t.interval)
		return nil
	})
	return updated, err
}

// Run ticks until ctx is cancelled.
func (t *RestTicker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.logger.InfoContext(ctx, "rest ticker started", "interval", t.interval.String())
	for {
		select {
		case <-ctx.Done():
			t.logger.InfoContext(context.WithoutCancel(ctx), "rest ticker stopped")
			return
		case <-ticker.C:
			if _, err := t.Tick(ctx); err != nil && ctx.Err() == nil {
				t.logger.WarnContext(ctx, "rest tick failed", "error", err)
			}
		}
	}
}
