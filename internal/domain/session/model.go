package session

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// SkillTier is the ordered skill category a player registers with.
type SkillTier string

const (
	SkillBeginner     SkillTier = "Beginner"
	SkillIntermediate SkillTier = "Intermediate"
	SkillAdvanced     SkillTier = "Advanced"
)

// AllSkillTiers lists tiers from lowest to highest.
var AllSkillTiers = []SkillTier{SkillBeginner, SkillIntermediate, SkillAdvanced}

// ParseSkillTier accepts tier names case-insensitively. Empty input
// falls back to Intermediate.
func ParseSkillTier(raw string) (SkillTier, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return SkillIntermediate, nil
	}
	for _, tier := range AllSkillTiers {
		if strings.EqualFold(value, string(tier)) {
			return tier, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownSkillTier, "%q", raw)
}

// SkillWeights maps a tier to the weight used for fairness scoring.
type SkillWeights map[SkillTier]int

func DefaultSkillWeights() SkillWeights {
	return SkillWeights{
		SkillBeginner:     1,
		SkillIntermediate: 2,
		SkillAdvanced:     3,
	}
}

func (w SkillWeights) Weight(tier SkillTier) int {
	if value, ok := w[tier]; ok {
		return value
	}
	return DefaultSkillWeights()[tier]
}

type PlayerStatus string

const (
	StatusWaiting PlayerStatus = "waiting"
	StatusPlaying PlayerStatus = "playing"
	StatusDone    PlayerStatus = "done"
)

// Player is one registered club member for the current session.
type Player struct {
	Name          string
	Skill         SkillTier
	Status        PlayerStatus
	RestTime      time.Duration
	MatchesPlayed int
	Court         string
}

// NewPlayer is the registration payload for setup and add-player.
type NewPlayer struct {
	Name  string
	Skill SkillTier
}

// Team is a doubles side: exactly two player names.
type Team [2]string

func (t Team) Names() []string {
	return []string{t[0], t[1]}
}

func (t Team) Has(name string) bool {
	return t[0] == name || t[1] == name
}

// TeamFromNames converts a free-form list into a Team.
func TeamFromNames(names []string) (Team, error) {
	if len(names) != 2 {
		return Team{}, errors.Wrapf(ErrInvalidTeamSize, "got %d", len(names))
	}
	return Team{strings.TrimSpace(names[0]), strings.TrimSpace(names[1])}, nil
}

type QueueSource string

const (
	SourceManual    QueueSource = "manual"
	SourceSuggested QueueSource = "suggested"
)

// QueueEntry is a formed pairing waiting for a free court.
type QueueEntry struct {
	ID        string
	TeamA     Team
	TeamB     Team
	Source    QueueSource
	CreatedAt time.Time
}

func (e QueueEntry) Has(name string) bool {
	return e.TeamA.Has(name) || e.TeamB.Has(name)
}

func (e QueueEntry) Names() []string {
	return []string{e.TeamA[0], e.TeamA[1], e.TeamB[0], e.TeamB[1]}
}

// Match is a pairing currently being played on a court.
type Match struct {
	ID           string
	Court        string
	TeamA        Team
	TeamB        Team
	QueueEntryID string
	StartedAt    time.Time
}

func (m Match) Names() []string {
	return []string{m.TeamA[0], m.TeamA[1], m.TeamB[0], m.TeamB[1]}
}

// Court is a playing surface. CurrentMatch is nil while idle.
type Court struct {
	Name         string
	CurrentMatch *Match
}

func (c Court) InProgress() bool {
	return c.CurrentMatch != nil
}

// Game is the score of one game, team A first.
type Game struct {
	TeamA int
	TeamB int
}

type Outcome string

const (
	OutcomeTeamA Outcome = "team_a"
	OutcomeTeamB Outcome = "team_b"
	OutcomeDraw  Outcome = "draw"
)

// HistoryRecord is the immutable result of a finished match.
type HistoryRecord struct {
	ID         string
	MatchID    string
	Court      string
	TeamA      Team
	TeamB      Team
	Games      [2]Game
	TeamAWins  int
	TeamBWins  int
	Outcome    Outcome
	StartedAt  time.Time
	FinishedAt time.Time
	// ArchivedAt is set by archives when the record is stored.
	ArchivedAt time.Time
}

// Winners returns the winning team's names, or nil for a draw.
func (r HistoryRecord) Winners() []string {
	switch r.Outcome {
	case OutcomeTeamA:
		return r.TeamA.Names()
	case OutcomeTeamB:
		return r.TeamB.Names()
	default:
		return nil
	}
}
