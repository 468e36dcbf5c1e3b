package session

import "github.com/cockroachdb/errors"

// DecideOutcome counts game-wins per side. A game with equal scores
// awards neither side; equal game-wins is a draw.
func DecideOutcome(games [2]Game) (teamAWins, teamBWins int, outcome Outcome, err error) {
	for i, g := range games {
		if g.TeamA < 0 || g.TeamB < 0 {
			return 0, 0, "", errors.Wrapf(ErrInvalidScore, "game %d: %d-%d", i+1, g.TeamA, g.TeamB)
		}
		switch {
		case g.TeamA > g.TeamB:
			teamAWins++
		case g.TeamB > g.TeamA:
			teamBWins++
		}
	}

	switch {
	case teamAWins > teamBWins:
		outcome = OutcomeTeamA
	case teamBWins > teamAWins:
		outcome = OutcomeTeamB
	default:
		outcome = OutcomeDraw
	}
	return teamAWins, teamBWins, outcome, nil
}
