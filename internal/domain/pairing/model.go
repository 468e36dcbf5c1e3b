package pairing

import "github.com/cockroachdb/errors"

var (
	ErrPoolTooSmall     = errors.New("at least four available players are required")
	ErrInvalidGroupSize = errors.New("exactly four players must be selected")
	ErrUnknownMode      = errors.New("unknown pairing mode")
)

// Mode selects how a suggestion is produced.
type Mode string

const (
	// ModeExhaustive searches every 4-subset of the pool.
	ModeExhaustive Mode = "exhaustive"
	// ModeConstrained searches only the splits of a fixed group of four.
	ModeConstrained Mode = "constrained"
	// ModeRanked pairs strongest+weakest against the middle two.
	ModeRanked Mode = "ranked"
)

func ParseMode(raw string) (Mode, error) {
	switch Mode(raw) {
	case ModeExhaustive, ModeConstrained, ModeRanked:
		return Mode(raw), nil
	default:
		return "", errors.Wrapf(ErrUnknownMode, "%q", raw)
	}
}

// Candidate is a player eligible for pairing with its skill weight.
type Candidate struct {
	Name   string
	Weight int
}

// Suggestion is a proposed doubles pairing.
type Suggestion struct {
	Mode        Mode
	TeamA       [2]Candidate
	TeamB       [2]Candidate
	TeamAWeight int
	TeamBWeight int
	Difference  int
}

func (s Suggestion) TeamANames() []string {
	return []string{s.TeamA[0].Name, s.TeamA[1].Name}
}

func (s Suggestion) TeamBNames() []string {
	return []string{s.TeamB[0].Name, s.TeamB[1].Name}
}
