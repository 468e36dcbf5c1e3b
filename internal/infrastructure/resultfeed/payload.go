package resultfeed

import (
	"time"

	"github.com/riskibarqy/courtside/internal/domain/session"
)

const eventMatchFinished = "match.finished"

type gamePayload struct {
	TeamA int `json:"team_a"`
	TeamB int `json:"team_b"`
}

type matchFinishedPayload struct {
	Event      string        `json:"event"`
	RecordID   string        `json:"record_id"`
	MatchID    string        `json:"match_id"`
	Court      string        `json:"court"`
	TeamA      []string      `json:"team_a"`
	TeamB      []string      `json:"team_b"`
	Games      []gamePayload `json:"games"`
	TeamAWins  int           `json:"team_a_wins"`
	TeamBWins  int           `json:"team_b_wins"`
	Outcome    string        `json:"outcome"`
	Winners    []string      `json:"winners"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
}

func payloadFromRecord(r session.HistoryRecord) matchFinishedPayload {
	winners := r.Winners()
	if winners == nil {
		winners = []string{}
	}
	return matchFinishedPayload{
		Event:    eventMatchFinished,
		RecordID: r.ID,
		MatchID:  r.MatchID,
		Court:    r.Court,
		TeamA:    r.TeamA.Names(),
		TeamB:    r.TeamB.Names(),
		Games: []gamePayload{
			{TeamA: r.Games[0].TeamA, TeamB: r.Games[0].TeamB},
			{TeamA: r.Games[1].TeamA, TeamB: r.Games[1].TeamB},
		},
		TeamAWins:  r.TeamAWins,
		TeamBWins:  r.TeamBWins,
		Outcome:    string(r.Outcome),
		Winners:    winners,
		StartedAt:  r.StartedAt.UTC(),
		FinishedAt: r.FinishedAt.UTC(),
	}
}
