package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/courtside/internal/domain/pairing"
	"github.com/riskibarqy/courtside/internal/domain/session"
	"github.com/riskibarqy/courtside/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/courtside/internal/platform/cache"
	"github.com/riskibarqy/courtside/internal/platform/logging"
)

func newTestPairingService(t *testing.T, withCache bool) (*PairingService, *SessionService) {
	t.Helper()

	store := memory.NewSessionStore(nil)
	sessions := NewSessionService(store, nil, nil, &sequenceIDGenerator{}, true, logging.NewNop())
	if _, err := sessions.Setup(t.Context(), SetupInput{
		Courts: []string{"Court 1", "Court 2"},
		Players: []session.NewPlayer{
			{Name: "Ann", Skill: session.SkillAdvanced},
			{Name: "Ben", Skill: session.SkillIntermediate},
			{Name: "Cat", Skill: session.SkillIntermediate},
			{Name: "Dan", Skill: session.SkillBeginner},
			{Name: "Eve", Skill: session.SkillBeginner},
		},
	}); err != nil {
		t.Fatalf("setup: %v", err)
	}

	var suggestionCache *cache.Store[pairing.Suggestion]
	if withCache {
		suggestionCache = cache.NewStore[pairing.Suggestion](time.Minute, 0)
	}
	service := NewPairingService(store, sessions, pairing.NewSearcher(2, 4), session.DefaultSkillWeights(), suggestionCache, logging.NewNop())
	return service, sessions
}

func TestPairingService_SuggestExhaustive(t *testing.T) {
	service, _ := newTestPairingService(t, false)

	got, err := service.Suggest(t.Context(), SuggestInput{})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if got.Mode != pairing.ModeExhaustive {
		t.Fatalf("expected exhaustive mode, got %s", got.Mode)
	}
	if got.Difference != 0 {
		t.Fatalf("expected balanced pairing, got difference %d", got.Difference)
	}
	if names := got.TeamANames(); names[0] != "Ann" || names[1] != "Dan" {
		t.Fatalf("expected Ann+Dan on team A, got %v", names)
	}
}

func TestPairingService_SuggestSelectionDefaultsToConstrained(t *testing.T) {
	service, _ := newTestPairingService(t, false)

	got, err := service.Suggest(t.Context(), SuggestInput{Players: []string{"Ben", "Cat", "Dan", "Eve"}})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if got.Mode != pairing.ModeConstrained {
		t.Fatalf("expected constrained mode, got %s", got.Mode)
	}
	if names := got.TeamANames(); got.Difference != 0 || names[0] != "Ben" || names[1] != "Dan" {
		t.Fatalf("expected Ben+Dan balanced against Cat+Eve, got %+v", got)
	}

	ranked, err := service.Suggest(t.Context(), SuggestInput{Mode: "Ranked", Players: []string{"Ben", "Cat", "Dan", "Ann"}})
	if err != nil {
		t.Fatalf("ranked suggest: %v", err)
	}
	if names := ranked.TeamANames(); names[0] != "Ann" || names[1] != "Dan" {
		t.Fatalf("expected strongest with weakest, got %v", names)
	}
}

func TestPairingService_SuggestRejectsUnavailableSelection(t *testing.T) {
	service, sessions := newTestPairingService(t, false)
	ctx := t.Context()

	if _, err := sessions.Enqueue(ctx, EnqueueInput{TeamA: []string{"Ann", "Ben"}, TeamB: []string{"Cat", "Dan"}}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	_, err := service.Suggest(ctx, SuggestInput{Players: []string{"Ann", "Eve", "Ben", "Cat"}})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for queued player, got %v", err)
	}
	_, err = service.Suggest(ctx, SuggestInput{Players: []string{"Zed", "Eve", "Ben", "Cat"}})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	_, err = service.Suggest(ctx, SuggestInput{})
	if !errors.Is(err, ErrConflict) || !errors.Is(err, pairing.ErrPoolTooSmall) {
		t.Fatalf("expected pool too small conflict, got %v", err)
	}
	_, err = service.Suggest(ctx, SuggestInput{Mode: "random"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid mode, got %v", err)
	}
}

func TestPairingService_SelectionModesNeedFourNames(t *testing.T) {
	service, sessions := newTestPairingService(t, false)
	ctx := t.Context()

	// Leaves exactly four available so the whole pool would fit a group.
	if _, err := sessions.MarkDone(ctx, "Eve"); err != nil {
		t.Fatalf("mark done: %v", err)
	}

	tests := []struct {
		name    string
		mode    string
		players []string
	}{
		{"constrained without selection", "constrained", nil},
		{"ranked without selection", "ranked", nil},
		{"ranked with three", "ranked", []string{"Ann", "Ben", "Cat"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Suggest(ctx, SuggestInput{Mode: tc.mode, Players: tc.players})
			if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, pairing.ErrInvalidGroupSize) {
				t.Fatalf("expected invalid group size, got %v", err)
			}
		})
	}

	got, err := service.Suggest(ctx, SuggestInput{Mode: "exhaustive"})
	if err != nil {
		t.Fatalf("exhaustive over the same pool: %v", err)
	}
	if got.Mode != pairing.ModeExhaustive {
		t.Fatalf("expected exhaustive mode, got %s", got.Mode)
	}
}

func TestPairingService_CacheKeyFollowsRevision(t *testing.T) {
	service, sessions := newTestPairingService(t, true)
	ctx := t.Context()

	first, err := service.Suggest(ctx, SuggestInput{})
	if err != nil {
		t.Fatalf("first suggest: %v", err)
	}
	again, err := service.Suggest(ctx, SuggestInput{})
	if err != nil {
		t.Fatalf("cached suggest: %v", err)
	}
	if first != again {
		t.Fatalf("expected cached suggestion to match, got %+v vs %+v", first, again)
	}

	if _, err := sessions.MarkDone(ctx, "Ann"); err != nil {
		t.Fatalf("mark done: %v", err)
	}
	after, err := service.Suggest(ctx, SuggestInput{})
	if err != nil {
		t.Fatalf("suggest after mark done: %v", err)
	}
	for _, name := range append(after.TeamANames(), after.TeamBNames()...) {
		if name == "Ann" {
			t.Fatalf("expected done player excluded from fresh suggestion, got %+v", after)
		}
	}
}

func TestPairingService_ConfirmQueuesSuggestedEntry(t *testing.T) {
	service, _ := newTestPairingService(t, false)
	ctx := t.Context()

	suggestion, err := service.Suggest(ctx, SuggestInput{})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}

	entry, err := service.Confirm(ctx, ConfirmInput{TeamA: suggestion.TeamANames(), TeamB: suggestion.TeamBNames()})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if entry.Source != session.SourceSuggested {
		t.Fatalf("expected suggested source, got %s", entry.Source)
	}

	_, err = service.Confirm(ctx, ConfirmInput{TeamA: suggestion.TeamANames(), TeamB: suggestion.TeamBNames()})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected second confirm to conflict, got %v", err)
	}
}
