package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/courtside/internal/domain/pairing"
	"github.com/riskibarqy/courtside/internal/domain/session"
	"github.com/riskibarqy/courtside/internal/platform/cache"
	"github.com/riskibarqy/courtside/internal/platform/logging"
)

type SuggestInput struct {
	Mode    string
	Players []string
}

type ConfirmInput struct {
	TeamA []string
	TeamB []string
}

type PairingService struct {
	store    session.Store
	sessions *SessionService
	searcher *pairing.Searcher
	weights  session.SkillWeights
	cache    *cache.Store[pairing.Suggestion]
	logger   *logging.Logger
}

// NewPairingService builds the suggester. suggestionCache may be nil to
// compute every request.
func NewPairingService(
	store session.Store,
	sessions *SessionService,
	searcher *pairing.Searcher,
	weights session.SkillWeights,
	suggestionCache *cache.Store[pairing.Suggestion],
	logger *logging.Logger,
) *PairingService {
	if logger == nil {
		logger = logging.Default()
	}
	if weights == nil {
		weights = session.DefaultSkillWeights()
	}

	return &PairingService{
		store:    store,
		sessions: sessions,
		searcher: searcher,
		weights:  weights,
		cache:    suggestionCache,
		logger:   logger,
	}
}

// Suggest proposes a pairing from the available pool. Without a mode it
// searches the whole pool, or the given selection when exactly four
// players are named. Constrained and ranked require four named players.
func (s *PairingService) Suggest(ctx context.Context, input SuggestInput) (pairing.Suggestion, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PairingService.Suggest", attribute.String("mode", input.Mode))
	defer span.End()

	selection := cleanNames(input.Players)
	mode, err := resolveMode(input.Mode, selection)
	if err != nil {
		return pairing.Suggestion{}, classify(err)
	}

	var (
		revision uint64
		pool     []pairing.Candidate
	)
	err = s.store.View(ctx, func(st *session.State) error {
		if !st.Configured() {
			return session.ErrNotConfigured
		}
		revision = st.Revision()
		candidates, err := s.candidates(st, selection)
		pool = candidates
		return err
	})
	if err != nil {
		return pairing.Suggestion{}, classify(err)
	}

	load := func(ctx context.Context) (pairing.Suggestion, error) {
		return s.compute(ctx, mode, pool)
	}

	var suggestion pairing.Suggestion
	if s.cache != nil {
		suggestion, err = s.cache.GetOrLoad(ctx, suggestionCacheKey(revision, mode, selection), load)
	} else {
		suggestion, err = load(ctx)
	}
	if err != nil {
		recordSpanError(span, err)
		return pairing.Suggestion{}, classify(err)
	}

	s.logger.DebugContext(ctx, "pairing suggested",
		"mode", suggestion.Mode,
		"pool", len(pool),
		"difference", suggestion.Difference,
	)
	return suggestion, nil
}

func resolveMode(raw string, selection []string) (pairing.Mode, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw != "" {
		mode, err := pairing.ParseMode(raw)
		if err != nil {
			return "", err
		}
		// Constrained and ranked never fall back to the whole pool.
		if mode != pairing.ModeExhaustive && len(selection) != 4 {
			return "", fmt.Errorf("%w: %s mode got %d selected players", pairing.ErrInvalidGroupSize, mode, len(selection))
		}
		return mode, nil
	}
	if len(selection) == 4 {
		return pairing.ModeConstrained, nil
	}
	return pairing.ModeExhaustive, nil
}

// candidates returns the pool in registration order. A selection
// restricts it and every selected name must be available.
func (s *PairingService) candidates(st *session.State, selection []string) ([]pairing.Candidate, error) {
	available := st.AvailablePlayers()
	if len(selection) == 0 {
		out := make([]pairing.Candidate, 0, len(available))
		for _, p := range available {
			out = append(out, pairing.Candidate{Name: p.Name, Weight: s.weights.Weight(p.Skill)})
		}
		return out, nil
	}

	byName := make(map[string]session.Player, len(available))
	for _, p := range available {
		byName[p.Name] = p
	}

	seen := make(map[string]struct{}, len(selection))
	out := make([]pairing.Candidate, 0, len(selection))
	for _, name := range selection {
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %q selected twice", session.ErrInvalidSelection, name)
		}
		seen[name] = struct{}{}

		p, ok := byName[name]
		if !ok {
			if _, exists := st.Player(name); !exists {
				return nil, fmt.Errorf("%w: %q", session.ErrPlayerNotFound, name)
			}
			return nil, fmt.Errorf("%w: %q is playing, done or already queued", session.ErrPlayerUnavailable, name)
		}
		out = append(out, pairing.Candidate{Name: p.Name, Weight: s.weights.Weight(p.Skill)})
	}
	return out, nil
}

func (s *PairingService) compute(ctx context.Context, mode pairing.Mode, pool []pairing.Candidate) (pairing.Suggestion, error) {
	switch mode {
	case pairing.ModeConstrained:
		return pairing.Constrained(pool)
	case pairing.ModeRanked:
		return pairing.Ranked(pool)
	default:
		return s.searcher.Exhaustive(ctx, pool)
	}
}

func suggestionCacheKey(revision uint64, mode pairing.Mode, selection []string) string {
	var b strings.Builder
	b.WriteString("pairing:")
	b.WriteString(strconv.FormatUint(revision, 10))
	b.WriteByte(':')
	b.WriteString(string(mode))
	b.WriteByte(':')
	b.WriteString(strings.Join(selection, ","))
	return b.String()
}

// Confirm queues a proposed pairing. It goes through the same checks as
// a manual entry.
func (s *PairingService) Confirm(ctx context.Context, input ConfirmInput) (session.QueueEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PairingService.Confirm")
	defer span.End()

	return s.sessions.enqueue(ctx, EnqueueInput{TeamA: input.TeamA, TeamB: input.TeamB}, session.SourceSuggested)
}

func cleanNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, name)
	}
	return out
}
