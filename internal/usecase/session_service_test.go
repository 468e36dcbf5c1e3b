package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/courtside/internal/domain/session"
	"github.com/riskibarqy/courtside/internal/infrastructure/repository/memory"
	sessionmock "github.com/riskibarqy/courtside/internal/mocks/domain/session"
	"github.com/riskibarqy/courtside/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

type sequenceIDGenerator struct {
	mu   sync.Mutex
	next int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%03d", g.next), nil
}

var clubNight = SetupInput{
	Courts: []string{"Court 1"},
	Players: []session.NewPlayer{
		{Name: "Ann", Skill: session.SkillAdvanced},
		{Name: "Ben", Skill: session.SkillIntermediate},
		{Name: "Cat", Skill: session.SkillIntermediate},
		{Name: "Dan", Skill: session.SkillBeginner},
		{Name: "Eve", Skill: session.SkillAdvanced},
		{Name: "Fay", Skill: session.SkillBeginner},
		{Name: "Gus", Skill: session.SkillIntermediate},
		{Name: "Hal", Skill: session.SkillBeginner},
	},
}

func newTestSessionService(t *testing.T, sink session.ResultSink, archive session.ResultArchive, autoStart bool) (*SessionService, *memory.SessionStore) {
	t.Helper()

	store := memory.NewSessionStore(nil)
	service := NewSessionService(store, sink, archive, &sequenceIDGenerator{}, autoStart, logging.NewNop())
	service.now = func() time.Time { return time.Date(2026, 3, 7, 19, 0, 0, 0, time.UTC) }

	if _, err := service.Setup(t.Context(), clubNight); err != nil {
		t.Fatalf("setup session: %v", err)
	}
	return service, store
}

func TestSessionService_FinishAutoStartsNextAndPublishes(t *testing.T) {
	sink := sessionmock.NewResultSink(t)
	service, _ := newTestSessionService(t, sink, nil, true)
	ctx := t.Context()

	first, err := service.Enqueue(ctx, EnqueueInput{TeamA: []string{"Ann", "Ben"}, TeamB: []string{"Cat", "Dan"}})
	if err != nil {
		t.Fatalf("enqueue first: %v", err)
	}
	second, err := service.Enqueue(ctx, EnqueueInput{TeamA: []string{"Eve", "Fay"}, TeamB: []string{"Gus", "Hal"}})
	if err != nil {
		t.Fatalf("enqueue second: %v", err)
	}

	match, err := service.StartMatch(ctx, "Court 1")
	if err != nil {
		t.Fatalf("start match: %v", err)
	}
	if match.QueueEntryID != first.ID {
		t.Fatalf("expected head entry %s on court, got %s", first.ID, match.QueueEntryID)
	}

	sink.
		On("Publish", mock.Anything, mock.MatchedBy(func(r session.HistoryRecord) bool {
			return r.MatchID == match.ID && r.Outcome == session.OutcomeDraw
		})).
		Return(nil).
		Once()

	result, err := service.FinishMatch(ctx, FinishMatchInput{
		Court: "Court 1",
		Games: [2]session.Game{{TeamA: 21, TeamB: 15}, {TeamA: 18, TeamB: 21}},
	})
	if err != nil {
		t.Fatalf("finish match: %v", err)
	}
	if result.Record.Outcome != session.OutcomeDraw {
		t.Fatalf("expected draw, got %s", result.Record.Outcome)
	}
	if result.Next == nil || result.Next.QueueEntryID != second.ID {
		t.Fatalf("expected second entry to auto-start, got %+v", result.Next)
	}

	players, err := service.ListPlayers(ctx)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	for _, p := range players {
		switch p.Name {
		case "Ann", "Ben", "Cat", "Dan":
			if p.Status != session.StatusWaiting || p.MatchesPlayed != 1 {
				t.Fatalf("expected %s waiting with one match, got %s/%d", p.Name, p.Status, p.MatchesPlayed)
			}
		default:
			if p.Status != session.StatusPlaying || p.Court != "Court 1" {
				t.Fatalf("expected %s playing on Court 1, got %s/%q", p.Name, p.Status, p.Court)
			}
		}
	}

	history, err := service.History(ctx)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].ID != result.Record.ID {
		t.Fatalf("unexpected history: %+v", history)
	}
}

func TestSessionService_SinkFailureDoesNotFailFinish(t *testing.T) {
	sink := sessionmock.NewResultSink(t)
	service, _ := newTestSessionService(t, sink, nil, false)
	ctx := t.Context()

	if _, err := service.Enqueue(ctx, EnqueueInput{TeamA: []string{"Ann", "Ben"}, TeamB: []string{"Cat", "Dan"}}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if _, err := service.StartMatch(ctx, "Court 1"); err != nil {
		t.Fatalf("start match: %v", err)
	}

	sink.On("Publish", mock.Anything, mock.Anything).Return(errors.New("archive down")).Once()

	result, err := service.FinishMatch(ctx, FinishMatchInput{
		Court: "Court 1",
		Games: [2]session.Game{{TeamA: 21, TeamB: 15}, {TeamA: 21, TeamB: 18}},
	})
	if err != nil {
		t.Fatalf("expected finish to succeed despite sink failure, got %v", err)
	}
	if result.Record.Outcome != session.OutcomeTeamA {
		t.Fatalf("expected team A win, got %s", result.Record.Outcome)
	}
	if result.Next != nil {
		t.Fatalf("expected no auto-start when disabled, got %+v", result.Next)
	}
}

func TestSessionService_ClassifiesDomainErrors(t *testing.T) {
	service, _ := newTestSessionService(t, nil, nil, true)
	ctx := t.Context()

	if _, err := service.Enqueue(ctx, EnqueueInput{TeamA: []string{"Ann", "Ben"}, TeamB: []string{"Cat", "Dan"}}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{
			name: "unknown court",
			run: func() error {
				_, err := service.StartMatch(ctx, "Court 9")
				return err
			},
			want: ErrNotFound,
		},
		{
			name: "idle court finish",
			run: func() error {
				_, err := service.FinishMatch(ctx, FinishMatchInput{Court: "Court 1"})
				return err
			},
			want: ErrConflict,
		},
		{
			name: "double booked",
			run: func() error {
				_, err := service.Enqueue(ctx, EnqueueInput{TeamA: []string{"Ann", "Eve"}, TeamB: []string{"Fay", "Gus"}})
				return err
			},
			want: ErrConflict,
		},
		{
			name: "three player team",
			run: func() error {
				_, err := service.Enqueue(ctx, EnqueueInput{TeamA: []string{"Eve", "Fay", "Gus"}, TeamB: []string{"Hal"}})
				return err
			},
			want: ErrInvalidInput,
		},
		{
			name: "unknown player",
			run: func() error {
				_, err := service.Enqueue(ctx, EnqueueInput{TeamA: []string{"Eve", "Zed"}, TeamB: []string{"Fay", "Gus"}})
				return err
			},
			want: ErrNotFound,
		},
		{
			name: "court player overlap",
			run: func() error {
				_, err := service.Setup(ctx, SetupInput{
					Courts:  []string{"Ann"},
					Players: []session.NewPlayer{{Name: "Ann"}},
				})
				return err
			},
			want: ErrInvalidInput,
		},
		{
			name: "mark queued player done",
			run: func() error {
				_, err := service.MarkDone(ctx, "Ann")
				return err
			},
			want: ErrConflict,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	queue, err := service.Queue(ctx)
	if err != nil {
		t.Fatalf("queue: %v", err)
	}
	if len(queue) != 1 {
		t.Fatalf("expected rejected calls to leave one queue entry, got %d", len(queue))
	}
}

func TestSessionService_StartMatchOnEmptyQueueLeavesCourtIdle(t *testing.T) {
	service, _ := newTestSessionService(t, nil, nil, true)

	_, err := service.StartMatch(t.Context(), "Court 1")
	if !errors.Is(err, ErrConflict) || !errors.Is(err, session.ErrQueueEmpty) {
		t.Fatalf("expected empty queue conflict, got %v", err)
	}

	overview, err := service.Overview(t.Context())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.Courts[0].InProgress() {
		t.Fatalf("expected court to stay idle")
	}
}

func TestSessionService_RemoveQueueEntryUnknownIsNoop(t *testing.T) {
	service, _ := newTestSessionService(t, nil, nil, true)
	ctx := t.Context()

	entry, err := service.Enqueue(ctx, EnqueueInput{TeamA: []string{"Ann", "Ben"}, TeamB: []string{"Cat", "Dan"}})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	removed, err := service.RemoveQueueEntry(ctx, "missing")
	if err != nil || removed {
		t.Fatalf("expected silent no-op, got removed=%v err=%v", removed, err)
	}
	removed, err = service.RemoveQueueEntry(ctx, entry.ID)
	if err != nil || !removed {
		t.Fatalf("expected entry removed, got removed=%v err=%v", removed, err)
	}

	overview, err := service.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(overview.AvailablePlayers) != len(clubNight.Players) {
		t.Fatalf("expected every player available again, got %d", len(overview.AvailablePlayers))
	}
}

func TestSessionService_ArchivedHistory(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		service, _ := newTestSessionService(t, nil, nil, true)
		_, err := service.ArchivedHistory(t.Context(), "", 10)
		if !errors.Is(err, ErrDependencyUnavailable) {
			t.Fatalf("expected dependency unavailable, got %v", err)
		}
	})

	t.Run("caps limit and trims court", func(t *testing.T) {
		archive := sessionmock.NewResultArchive(t)
		service, _ := newTestSessionService(t, nil, archive, true)

		archive.
			On("ListRecent", mock.Anything, session.ArchiveFilter{Court: "Court 2", Limit: maxArchiveLimit}).
			Return([]session.HistoryRecord{{ID: "r1"}}, nil).
			Once()

		got, err := service.ArchivedHistory(t.Context(), " Court 2 ", 5000)
		if err != nil {
			t.Fatalf("archived history: %v", err)
		}
		if len(got) != 1 || got[0].ID != "r1" {
			t.Fatalf("unexpected records: %+v", got)
		}
	})
}

func TestSessionService_CancelledContext(t *testing.T) {
	service, _ := newTestSessionService(t, nil, nil, true)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	if _, err := service.Overview(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}
