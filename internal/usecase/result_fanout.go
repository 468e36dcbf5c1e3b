package usecase

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/courtside/internal/domain/session"
)

// ResultFanout hands a finished match to every configured sink. Every
// sink is attempted; failures are joined.
type ResultFanout struct {
	sinks []session.ResultSink
}

func NewResultFanout(sinks ...session.ResultSink) *ResultFanout {
	out := make([]session.ResultSink, 0, len(sinks))
	for _, sink := range sinks {
		if sink != nil {
			out = append(out, sink)
		}
	}
	return &ResultFanout{sinks: out}
}

func (f *ResultFanout) Len() int {
	return len(f.sinks)
}

func (f *ResultFanout) Publish(ctx context.Context, record session.HistoryRecord) error {
	var errs []error
	for _, sink := range f.sinks {
		if err := sink.Publish(ctx, record); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
