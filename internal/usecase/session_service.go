package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/courtside/internal/domain/session"
	idgen "github.com/riskibarqy/courtside/internal/platform/id"
	"github.com/riskibarqy/courtside/internal/platform/logging"
)

type SetupInput struct {
	Courts  []string
	Players []session.NewPlayer
}

type EnqueueInput struct {
	TeamA []string
	TeamB []string
}

type FinishMatchInput struct {
	Court string
	Games [2]session.Game
}

// SessionOverview is the court board: courts, who is waiting, who can
// still be paired and the queue.
type SessionOverview struct {
	Configured       bool
	Revision         uint64
	Courts           []session.Court
	WaitingPlayers   []session.Player
	AvailablePlayers []session.Player
	Queue            []session.QueueEntry
}

type SessionService struct {
	store     session.Store
	sink      session.ResultSink
	archive   session.ResultArchive
	idGen     idgen.Generator
	logger    *logging.Logger
	autoStart bool
	now       func() time.Time
}

// NewSessionService wires the session use cases. sink and archive may
// be nil.
func NewSessionService(
	store session.Store,
	sink session.ResultSink,
	archive session.ResultArchive,
	idGen idgen.Generator,
	autoStartNext bool,
	logger *logging.Logger,
) *SessionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SessionService{
		store:     store,
		sink:      sink,
		archive:   archive,
		idGen:     idGen,
		logger:    logger,
		autoStart: autoStartNext,
		now:       time.Now,
	}
}

func (s *SessionService) Setup(ctx context.Context, input SetupInput) (SessionOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Setup")
	defer span.End()

	var out SessionOverview
	err := s.store.Update(ctx, func(st *session.State) error {
		if err := st.Setup(input.Courts, input.Players); err != nil {
			return err
		}
		out = overviewOf(st)
		return nil
	})
	if err != nil {
		return SessionOverview{}, classify(err)
	}

	s.logger.InfoContext(ctx, "session configured",
		"courts", len(out.Courts),
		"players", len(out.WaitingPlayers),
	)
	return out, nil
}

func (s *SessionService) Overview(ctx context.Context) (SessionOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Overview")
	defer span.End()

	var out SessionOverview
	err := s.store.View(ctx, func(st *session.State) error {
		out = overviewOf(st)
		return nil
	})
	return out, err
}

func overviewOf(st *session.State) SessionOverview {
	return SessionOverview{
		Configured:       st.Configured(),
		Revision:         st.Revision(),
		Courts:           st.Courts(),
		WaitingPlayers:   st.WaitingPlayers(),
		AvailablePlayers: st.AvailablePlayers(),
		Queue:            st.Queue(),
	}
}

func (s *SessionService) AddPlayer(ctx context.Context, input session.NewPlayer) (session.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.AddPlayer")
	defer span.End()

	var added session.Player
	err := s.store.Update(ctx, func(st *session.State) error {
		p, err := st.AddPlayer(input)
		added = p
		return err
	})
	if err != nil {
		return session.Player{}, classify(err)
	}

	s.logger.InfoContext(ctx, "player added", "player", added.Name, "skill", added.Skill)
	return added, nil
}

func (s *SessionService) ListPlayers(ctx context.Context) ([]session.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.ListPlayers")
	defer span.End()

	var out []session.Player
	err := s.store.View(ctx, func(st *session.State) error {
		out = st.Players()
		return nil
	})
	return out, err
}

func (s *SessionService) Queue(ctx context.Context) ([]session.QueueEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Queue")
	defer span.End()

	var out []session.QueueEntry
	err := s.store.View(ctx, func(st *session.State) error {
		out = st.Queue()
		return nil
	})
	return out, err
}

func (s *SessionService) Enqueue(ctx context.Context, input EnqueueInput) (session.QueueEntry, error) {
	return s.enqueue(ctx, input, session.SourceManual)
}

func (s *SessionService) enqueue(ctx context.Context, input EnqueueInput, source session.QueueSource) (session.QueueEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Enqueue")
	defer span.End()

	teamA, err := session.TeamFromNames(input.TeamA)
	if err != nil {
		return session.QueueEntry{}, classify(err)
	}
	teamB, err := session.TeamFromNames(input.TeamB)
	if err != nil {
		return session.QueueEntry{}, classify(err)
	}

	entryID, err := s.idGen.NewID()
	if err != nil {
		return session.QueueEntry{}, fmt.Errorf("generate queue entry id: %w", err)
	}

	var entry session.QueueEntry
	err = s.store.Update(ctx, func(st *session.State) error {
		e, err := st.Enqueue(entryID, teamA, teamB, source, s.now().UTC())
		entry = e
		return err
	})
	if err != nil {
		return session.QueueEntry{}, classify(err)
	}

	s.logger.InfoContext(ctx, "pairing queued",
		"entry_id", entry.ID,
		"team_a", strings.Join(entry.TeamA.Names(), ","),
		"team_b", strings.Join(entry.TeamB.Names(), ","),
		"source", entry.Source,
	)
	return entry, nil
}

func (s *SessionService) RemoveQueueEntry(ctx context.Context, entryID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.RemoveQueueEntry")
	defer span.End()

	entryID = strings.TrimSpace(entryID)
	if entryID == "" {
		return false, fmt.Errorf("%w: queue entry id is required", ErrInvalidInput)
	}

	var removed bool
	err := s.store.Update(ctx, func(st *session.State) error {
		removed = st.RemoveQueueEntry(entryID)
		return nil
	})
	return removed, err
}

func (s *SessionService) StartMatch(ctx context.Context, court string) (session.Match, error) {
	court = strings.TrimSpace(court)
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.StartMatch", attribute.String("court", court))
	defer span.End()

	if court == "" {
		return session.Match{}, fmt.Errorf("%w: court is required", ErrInvalidInput)
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return session.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	var match session.Match
	err = s.store.Update(ctx, func(st *session.State) error {
		m, err := st.StartMatch(court, matchID, s.now().UTC())
		match = m
		return err
	})
	if err != nil {
		return session.Match{}, classify(err)
	}

	s.logger.InfoContext(ctx, "match started", "court", match.Court, "match_id", match.ID)
	return match, nil
}

func (s *SessionService) FinishMatch(ctx context.Context, input FinishMatchInput) (session.FinishResult, error) {
	input.Court = strings.TrimSpace(input.Court)
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.FinishMatch", attribute.String("court", input.Court))
	defer span.End()

	if input.Court == "" {
		return session.FinishResult{}, fmt.Errorf("%w: court is required", ErrInvalidInput)
	}

	recordID, err := s.idGen.NewID()
	if err != nil {
		return session.FinishResult{}, fmt.Errorf("generate history record id: %w", err)
	}
	nextMatchID, err := s.idGen.NewID()
	if err != nil {
		return session.FinishResult{}, fmt.Errorf("generate match id: %w", err)
	}

	var result session.FinishResult
	err = s.store.Update(ctx, func(st *session.State) error {
		r, err := st.FinishMatch(session.FinishInput{
			Court:       input.Court,
			Games:       input.Games,
			RecordID:    recordID,
			NextMatchID: nextMatchID,
			FinishedAt:  s.now().UTC(),
			AutoStart:   s.autoStart,
		})
		result = r
		return err
	})
	if err != nil {
		return session.FinishResult{}, classify(err)
	}

	s.logger.InfoContext(ctx, "match finished",
		"court", result.Record.Court,
		"match_id", result.Record.MatchID,
		"outcome", result.Record.Outcome,
	)
	if result.Next != nil {
		s.logger.InfoContext(ctx, "next match auto-started", "court", result.Next.Court, "match_id", result.Next.ID)
	}

	s.publish(ctx, result.Record)
	return result, nil
}

func (s *SessionService) publish(ctx context.Context, record session.HistoryRecord) {
	if s.sink == nil {
		return
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.publish", attribute.String("record_id", record.ID))
	defer span.End()

	if err := s.sink.Publish(ctx, record); err != nil {
		recordSpanError(span, err)
		s.logger.WarnContext(ctx, "publish match result failed",
			"record_id", record.ID,
			"court", record.Court,
			"error", err,
		)
	}
}

func (s *SessionService) MarkDone(ctx context.Context, name string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.MarkDone")
	defer span.End()

	var changed bool
	err := s.store.Update(ctx, func(st *session.State) error {
		c, err := st.MarkDone(name)
		changed = c
		return err
	})
	if err != nil {
		return false, classify(err)
	}

	if changed {
		s.logger.InfoContext(ctx, "player done", "player", strings.TrimSpace(name))
	}
	return changed, nil
}

func (s *SessionService) History(ctx context.Context) ([]session.HistoryRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.History")
	defer span.End()

	var out []session.HistoryRecord
	err := s.store.View(ctx, func(st *session.State) error {
		out = st.History()
		return nil
	})
	return out, err
}

// ArchivedHistory reads finished matches from the result archive,
// newest first, optionally for one court.
func (s *SessionService) ArchivedHistory(ctx context.Context, court string, limit int) ([]session.HistoryRecord, error) {
	court = strings.TrimSpace(court)
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.ArchivedHistory", attribute.String("court", court))
	defer span.End()

	if s.archive == nil {
		return nil, fmt.Errorf("%w: history archive is disabled", ErrDependencyUnavailable)
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must be >= 0", ErrInvalidInput)
	}
	if limit == 0 || limit > maxArchiveLimit {
		limit = maxArchiveLimit
	}

	records, err := s.archive.ListRecent(ctx, session.ArchiveFilter{Court: court, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list archived results: %w", err)
	}
	return records, nil
}

const maxArchiveLimit = 200
