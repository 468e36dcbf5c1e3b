package httpapi

import (
	"time"

	"github.com/riskibarqy/courtside/internal/domain/pairing"
	"github.com/riskibarqy/courtside/internal/domain/session"
	"github.com/riskibarqy/courtside/internal/usecase"
)

type playerRequest struct {
	Name  string `json:"name" validate:"required,max=64"`
	Skill string `json:"skill" validate:"omitempty,max=32"`
}

type setupSessionRequest struct {
	Courts  []string        `json:"courts" validate:"required,min=1,max=64"`
	Players []playerRequest `json:"players" validate:"required,min=1,max=256,dive"`
}

type teamsRequest struct {
	TeamA []string `json:"team_a" validate:"required,len=2,dive,required"`
	TeamB []string `json:"team_b" validate:"required,len=2,dive,required"`
}

type gameRequest struct {
	TeamA *int `json:"team_a" validate:"required,min=0"`
	TeamB *int `json:"team_b" validate:"required,min=0"`
}

type finishMatchRequest struct {
	Games []gameRequest `json:"games" validate:"required,len=2,dive"`
}

type suggestPairingRequest struct {
	Mode    string   `json:"mode" validate:"omitempty,oneof=exhaustive constrained ranked"`
	Players []string `json:"players" validate:"omitempty,max=256,dive,required"`
}

type playerDTO struct {
	Name          string `json:"name"`
	Skill         string `json:"skill"`
	Status        string `json:"status"`
	RestSeconds   int64  `json:"rest_seconds"`
	RestTime      string `json:"rest_time"`
	MatchesPlayed int    `json:"matches_played"`
	Court         string `json:"court,omitempty"`
}

type matchDTO struct {
	ID           string    `json:"id"`
	Court        string    `json:"court"`
	TeamA        []string  `json:"team_a"`
	TeamB        []string  `json:"team_b"`
	QueueEntryID string    `json:"queue_entry_id"`
	StartedAt    time.Time `json:"started_at"`
}

type courtDTO struct {
	Name   string    `json:"name"`
	Status string    `json:"status"`
	Match  *matchDTO `json:"match,omitempty"`
}

type queueEntryDTO struct {
	ID        string    `json:"id"`
	TeamA     []string  `json:"team_a"`
	TeamB     []string  `json:"team_b"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

type gameDTO struct {
	TeamA int `json:"team_a"`
	TeamB int `json:"team_b"`
}

type historyRecordDTO struct {
	ID         string     `json:"id"`
	MatchID    string     `json:"match_id"`
	Court      string     `json:"court"`
	TeamA      []string   `json:"team_a"`
	TeamB      []string   `json:"team_b"`
	Games      []gameDTO  `json:"games"`
	TeamAWins  int        `json:"team_a_wins"`
	TeamBWins  int        `json:"team_b_wins"`
	Outcome    string     `json:"outcome"`
	Winners    []string   `json:"winners"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt time.Time  `json:"finished_at"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
}

type overviewDTO struct {
	Configured       bool            `json:"configured"`
	Revision         uint64          `json:"revision"`
	Courts           []courtDTO      `json:"courts"`
	WaitingPlayers   []playerDTO     `json:"waiting_players"`
	AvailablePlayers []playerDTO     `json:"available_players"`
	Queue            []queueEntryDTO `json:"queue"`
}

type finishMatchDTO struct {
	Record    historyRecordDTO `json:"record"`
	NextMatch *matchDTO        `json:"next_match"`
}

type candidateDTO struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

type suggestionDTO struct {
	Mode        string         `json:"mode"`
	TeamA       []candidateDTO `json:"team_a"`
	TeamB       []candidateDTO `json:"team_b"`
	TeamAWeight int            `json:"team_a_weight"`
	TeamBWeight int            `json:"team_b_weight"`
	Difference  int            `json:"difference"`
}

func playerToDTO(p session.Player) playerDTO {
	return playerDTO{
		Name:          p.Name,
		Skill:         string(p.Skill),
		Status:        string(p.Status),
		RestSeconds:   int64(p.RestTime / time.Second),
		RestTime:      p.RestTime.String(),
		MatchesPlayed: p.MatchesPlayed,
		Court:         p.Court,
	}
}

func playersToDTO(players []session.Player) []playerDTO {
	out := make([]playerDTO, 0, len(players))
	for _, p := range players {
		out = append(out, playerToDTO(p))
	}
	return out
}

func matchToDTO(m session.Match) matchDTO {
	return matchDTO{
		ID:           m.ID,
		Court:        m.Court,
		TeamA:        m.TeamA.Names(),
		TeamB:        m.TeamB.Names(),
		QueueEntryID: m.QueueEntryID,
		StartedAt:    m.StartedAt,
	}
}

func courtToDTO(c session.Court) courtDTO {
	out := courtDTO{Name: c.Name, Status: "idle"}
	if c.CurrentMatch != nil {
		m := matchToDTO(*c.CurrentMatch)
		out.Status = "in_progress"
		out.Match = &m
	}
	return out
}

func queueEntryToDTO(e session.QueueEntry) queueEntryDTO {
	return queueEntryDTO{
		ID:        e.ID,
		TeamA:     e.TeamA.Names(),
		TeamB:     e.TeamB.Names(),
		Source:    string(e.Source),
		CreatedAt: e.CreatedAt,
	}
}

func queueToDTO(queue []session.QueueEntry) []queueEntryDTO {
	out := make([]queueEntryDTO, 0, len(queue))
	for _, e := range queue {
		out = append(out, queueEntryToDTO(e))
	}
	return out
}

func historyRecordToDTO(r session.HistoryRecord) historyRecordDTO {
	winners := r.Winners()
	if winners == nil {
		winners = []string{}
	}
	out := historyRecordDTO{
		ID:      r.ID,
		MatchID: r.MatchID,
		Court:   r.Court,
		TeamA:   r.TeamA.Names(),
		TeamB:   r.TeamB.Names(),
		Games: []gameDTO{
			{TeamA: r.Games[0].TeamA, TeamB: r.Games[0].TeamB},
			{TeamA: r.Games[1].TeamA, TeamB: r.Games[1].TeamB},
		},
		TeamAWins:  r.TeamAWins,
		TeamBWins:  r.TeamBWins,
		Outcome:    string(r.Outcome),
		Winners:    winners,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}
	if !r.ArchivedAt.IsZero() {
		archivedAt := r.ArchivedAt
		out.ArchivedAt = &archivedAt
	}
	return out
}

func historyToDTO(records []session.HistoryRecord) []historyRecordDTO {
	out := make([]historyRecordDTO, 0, len(records))
	for _, r := range records {
		out = append(out, historyRecordToDTO(r))
	}
	return out
}

func overviewToDTO(o usecase.SessionOverview) overviewDTO {
	courts := make([]courtDTO, 0, len(o.Courts))
	for _, c := range o.Courts {
		courts = append(courts, courtToDTO(c))
	}
	return overviewDTO{
		Configured:       o.Configured,
		Revision:         o.Revision,
		Courts:           courts,
		WaitingPlayers:   playersToDTO(o.WaitingPlayers),
		AvailablePlayers: playersToDTO(o.AvailablePlayers),
		Queue:            queueToDTO(o.Queue),
	}
}

func finishResultToDTO(r session.FinishResult) finishMatchDTO {
	out := finishMatchDTO{Record: historyRecordToDTO(r.Record)}
	if r.Next != nil {
		next := matchToDTO(*r.Next)
		out.NextMatch = &next
	}
	return out
}

func suggestionToDTO(s pairing.Suggestion) suggestionDTO {
	return suggestionDTO{
		Mode: string(s.Mode),
		TeamA: []candidateDTO{
			{Name: s.TeamA[0].Name, Weight: s.TeamA[0].Weight},
			{Name: s.TeamA[1].Name, Weight: s.TeamA[1].Weight},
		},
		TeamB: []candidateDTO{
			{Name: s.TeamB[0].Name, Weight: s.TeamB[0].Weight},
			{Name: s.TeamB[1].Name, Weight: s.TeamB[1].Weight},
		},
		TeamAWeight: s.TeamAWeight,
		TeamBWeight: s.TeamBWeight,
		Difference:  s.Difference,
	}
}
