package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/courtside/internal/domain/session"
	sessionmock "github.com/riskibarqy/courtside/internal/mocks/domain/session"
	"github.com/stretchr/testify/mock"
)

func TestResultFanout_PublishesToEverySink(t *testing.T) {
	first := sessionmock.NewResultSink(t)
	second := sessionmock.NewResultSink(t)
	record := session.HistoryRecord{ID: "r1"}
	failure := errors.New("webhook down")

	first.On("Publish", mock.Anything, record).Return(failure).Once()
	second.On("Publish", mock.Anything, record).Return(nil).Once()

	fanout := NewResultFanout(first, nil, second)
	if fanout.Len() != 2 {
		t.Fatalf("expected nil sinks dropped, got %d", fanout.Len())
	}

	err := fanout.Publish(t.Context(), record)
	if !errors.Is(err, failure) {
		t.Fatalf("expected joined failure, got %v", err)
	}
}
