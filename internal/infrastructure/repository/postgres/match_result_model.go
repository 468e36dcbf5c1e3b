package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/riskibarqy/courtside/internal/domain/session"
	qb "github.com/riskibarqy/courtside/internal/platform/querybuilder"
)

const matchResultsTable = "match_results"

var matchResultColumns = qb.MustColumns(matchResultTableModel{})

type matchResultTableModel struct {
	ID         string         `db:"id"`
	MatchID    string         `db:"match_id"`
	Court      string         `db:"court"`
	TeamA      pq.StringArray `db:"team_a"`
	TeamB      pq.StringArray `db:"team_b"`
	Game1TeamA int            `db:"game1_team_a"`
	Game1TeamB int            `db:"game1_team_b"`
	Game2TeamA int            `db:"game2_team_a"`
	Game2TeamB int            `db:"game2_team_b"`
	TeamAWins  int            `db:"team_a_wins"`
	TeamBWins  int            `db:"team_b_wins"`
	Outcome    string         `db:"outcome"`
	StartedAt  time.Time      `db:"started_at"`
	FinishedAt time.Time      `db:"finished_at"`
	CreatedAt  time.Time      `db:"created_at,readonly"`
}

func matchResultToRow(r session.HistoryRecord) matchResultTableModel {
	return matchResultTableModel{
		ID:         r.ID,
		MatchID:    r.MatchID,
		Court:      r.Court,
		TeamA:      pq.StringArray(r.TeamA.Names()),
		TeamB:      pq.StringArray(r.TeamB.Names()),
		Game1TeamA: r.Games[0].TeamA,
		Game1TeamB: r.Games[0].TeamB,
		Game2TeamA: r.Games[1].TeamA,
		Game2TeamB: r.Games[1].TeamB,
		TeamAWins:  r.TeamAWins,
		TeamBWins:  r.TeamBWins,
		Outcome:    string(r.Outcome),
		StartedAt:  r.StartedAt.UTC(),
		FinishedAt: r.FinishedAt.UTC(),
	}
}

func matchResultFromRow(row matchResultTableModel) session.HistoryRecord {
	return session.HistoryRecord{
		ID:      row.ID,
		MatchID: row.MatchID,
		Court:   row.Court,
		TeamA:   teamFromArray(row.TeamA),
		TeamB:   teamFromArray(row.TeamB),
		Games: [2]session.Game{
			{TeamA: row.Game1TeamA, TeamB: row.Game1TeamB},
			{TeamA: row.Game2TeamA, TeamB: row.Game2TeamB},
		},
		TeamAWins:  row.TeamAWins,
		TeamBWins:  row.TeamBWins,
		Outcome:    session.Outcome(row.Outcome),
		StartedAt:  row.StartedAt,
		FinishedAt: row.FinishedAt,
		ArchivedAt: row.CreatedAt,
	}
}

func teamFromArray(names pq.StringArray) session.Team {
	var team session.Team
	copy(team[:], names)
	return team
}
