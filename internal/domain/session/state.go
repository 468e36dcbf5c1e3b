package session

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// State owns every mutable record of one club session. It performs no
// locking; callers serialize access through a Store.
type State struct {
	configured bool
	revision   uint64

	courts    []Court
	courtIdx  map[string]int
	players   []Player
	playerIdx map[string]int
	queue     []QueueEntry
	history   []HistoryRecord
}

func NewState() *State {
	return &State{
		courtIdx:  make(map[string]int),
		playerIdx: make(map[string]int),
	}
}

func (s *State) Configured() bool {
	return s.configured
}

// Revision changes whenever courts, players, statuses or the queue
// change. Rest ticks leave it untouched.
func (s *State) Revision() uint64 {
	return s.revision
}

// Setup replaces the whole session with a fresh roster.
func (s *State) Setup(courtNames []string, newPlayers []NewPlayer) error {
	courts := make([]Court, 0, len(courtNames))
	courtIdx := make(map[string]int, len(courtNames))
	for _, raw := range courtNames {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, exists := courtIdx[name]; exists {
			return errors.Wrapf(ErrDuplicateName, "court %q", name)
		}
		courtIdx[name] = len(courts)
		courts = append(courts, Court{Name: name})
	}

	players := make([]Player, 0, len(newPlayers))
	playerIdx := make(map[string]int, len(newPlayers))
	var overlap []string
	for _, np := range newPlayers {
		name := strings.TrimSpace(np.Name)
		if name == "" {
			continue
		}
		if _, exists := playerIdx[name]; exists {
			return errors.Wrapf(ErrDuplicateName, "player %q", name)
		}
		if _, exists := courtIdx[name]; exists {
			overlap = append(overlap, name)
		}
		skill, err := ParseSkillTier(string(np.Skill))
		if err != nil {
			return errors.Wrapf(err, "player %q", name)
		}
		playerIdx[name] = len(players)
		players = append(players, Player{Name: name, Skill: skill, Status: StatusWaiting})
	}

	if len(courts) == 0 || len(players) == 0 {
		return errors.Wrapf(ErrEmptyRoster, "courts=%d players=%d", len(courts), len(players))
	}
	if len(overlap) > 0 {
		return errors.Wrapf(ErrNameConflict, "%s", strings.Join(overlap, ", "))
	}

	s.configured = true
	s.courts = courts
	s.courtIdx = courtIdx
	s.players = players
	s.playerIdx = playerIdx
	s.queue = nil
	s.history = nil
	s.revision++
	return nil
}

// AddPlayer registers a late arrival as waiting.
func (s *State) AddPlayer(np NewPlayer) (Player, error) {
	if !s.configured {
		return Player{}, ErrNotConfigured
	}
	name := strings.TrimSpace(np.Name)
	if name == "" {
		return Player{}, ErrInvalidName
	}
	if _, exists := s.playerIdx[name]; exists {
		return Player{}, errors.Wrapf(ErrDuplicateName, "player %q", name)
	}
	if _, exists := s.courtIdx[name]; exists {
		return Player{}, errors.Wrapf(ErrNameConflict, "%s", name)
	}
	skill, err := ParseSkillTier(string(np.Skill))
	if err != nil {
		return Player{}, err
	}

	p := Player{Name: name, Skill: skill, Status: StatusWaiting}
	s.playerIdx[name] = len(s.players)
	s.players = append(s.players, p)
	s.revision++
	return p, nil
}

// Enqueue appends a pairing to the tail of the waiting queue.
func (s *State) Enqueue(id string, teamA, teamB Team, source QueueSource, now time.Time) (QueueEntry, error) {
	if !s.configured {
		return QueueEntry{}, ErrNotConfigured
	}
	entry := QueueEntry{ID: id, TeamA: teamA, TeamB: teamB, Source: source, CreatedAt: now}
	if err := s.checkBookable(entry.Names()); err != nil {
		return QueueEntry{}, err
	}

	s.queue = append(s.queue, entry)
	s.revision++
	return entry, nil
}

func (s *State) checkBookable(names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			return errors.Wrap(ErrInvalidSelection, "empty player name")
		}
		if _, dup := seen[name]; dup {
			return errors.Wrapf(ErrInvalidSelection, "%q selected twice", name)
		}
		seen[name] = struct{}{}
	}
	if len(seen) != 4 {
		return errors.Wrapf(ErrInvalidSelection, "got %d players", len(seen))
	}

	for _, name := range names {
		idx, ok := s.playerIdx[name]
		if !ok {
			return errors.Wrapf(ErrPlayerNotFound, "%q", name)
		}
		if st := s.players[idx].Status; st != StatusWaiting {
			return errors.Wrapf(ErrPlayerUnavailable, "%q is %s", name, st)
		}
		if s.queuedIndex(name) >= 0 {
			return errors.Wrapf(ErrPlayerDoubleBooked, "%q", name)
		}
	}
	return nil
}

func (s *State) queuedIndex(name string) int {
	for i, entry := range s.queue {
		if entry.Has(name) {
			return i
		}
	}
	return -1
}

// RemoveQueueEntry drops a queued pairing. Unknown ids are ignored.
func (s *State) RemoveQueueEntry(id string) bool {
	for i, entry := range s.queue {
		if entry.ID != id {
			continue
		}
		s.queue = append(s.queue[:i], s.queue[i+1:]...)
		s.revision++
		return true
	}
	return false
}

// StartMatch moves the head of the queue onto an idle court.
func (s *State) StartMatch(courtName, matchID string, now time.Time) (Match, error) {
	if !s.configured {
		return Match{}, ErrNotConfigured
	}
	idx, ok := s.courtIdx[courtName]
	if !ok {
		return Match{}, errors.Wrapf(ErrCourtNotFound, "%q", courtName)
	}
	if s.courts[idx].InProgress() {
		return Match{}, errors.Wrapf(ErrCourtBusy, "%q", courtName)
	}
	if len(s.queue) == 0 {
		return Match{}, ErrQueueEmpty
	}

	return s.startHead(idx, matchID, now), nil
}

func (s *State) startHead(courtIdx int, matchID string, now time.Time) Match {
	head := s.queue[0]
	s.queue = s.queue[1:]

	court := &s.courts[courtIdx]
	match := Match{
		ID:           matchID,
		Court:        court.Name,
		TeamA:        head.TeamA,
		TeamB:        head.TeamB,
		QueueEntryID: head.ID,
		StartedAt:    now,
	}
	court.CurrentMatch = &match

	for _, name := range match.Names() {
		if pi, ok := s.playerIdx[name]; ok {
			p := &s.players[pi]
			p.Status = StatusPlaying
			p.Court = court.Name
			p.RestTime = 0
		}
	}
	s.revision++
	return match
}

// FinishInput carries the result of a court's active match.
type FinishInput struct {
	Court       string
	Games       [2]Game
	RecordID    string
	NextMatchID string
	FinishedAt  time.Time
	AutoStart   bool
}

// FinishResult is the archived record plus the match auto-started on
// the freed court, if any.
type FinishResult struct {
	Record HistoryRecord
	Next   *Match
}

func (s *State) FinishMatch(in FinishInput) (FinishResult, error) {
	if !s.configured {
		return FinishResult{}, ErrNotConfigured
	}
	idx, ok := s.courtIdx[in.Court]
	if !ok {
		return FinishResult{}, errors.Wrapf(ErrCourtNotFound, "%q", in.Court)
	}
	court := &s.courts[idx]
	if !court.InProgress() {
		return FinishResult{}, errors.Wrapf(ErrCourtIdle, "%q", in.Court)
	}

	teamAWins, teamBWins, outcome, err := DecideOutcome(in.Games)
	if err != nil {
		return FinishResult{}, err
	}

	match := *court.CurrentMatch
	record := HistoryRecord{
		ID:         in.RecordID,
		MatchID:    match.ID,
		Court:      court.Name,
		TeamA:      match.TeamA,
		TeamB:      match.TeamB,
		Games:      in.Games,
		TeamAWins:  teamAWins,
		TeamBWins:  teamBWins,
		Outcome:    outcome,
		StartedAt:  match.StartedAt,
		FinishedAt: in.FinishedAt,
	}
	s.history = append(s.history, record)

	for _, name := range match.Names() {
		if pi, ok := s.playerIdx[name]; ok {
			p := &s.players[pi]
			p.Status = StatusWaiting
			p.Court = ""
			p.MatchesPlayed++
		}
	}
	court.CurrentMatch = nil
	s.revision++

	result := FinishResult{Record: record}
	if in.AutoStart && len(s.queue) > 0 {
		next := s.startHead(idx, in.NextMatchID, in.FinishedAt)
		result.Next = &next
	}
	return result, nil
}

// MarkDone retires a waiting player. Unknown names are ignored.
func (s *State) MarkDone(name string) (bool, error) {
	idx, ok := s.playerIdx[strings.TrimSpace(name)]
	if !ok {
		return false, nil
	}
	p := &s.players[idx]
	switch p.Status {
	case StatusDone:
		return false, nil
	case StatusPlaying:
		return false, errors.Wrapf(ErrPlayerUnavailable, "%q is playing on %s", p.Name, p.Court)
	}
	if s.queuedIndex(p.Name) >= 0 {
		return false, errors.Wrapf(ErrPlayerDoubleBooked, "%q is in the waiting queue", p.Name)
	}

	p.Status = StatusDone
	s.revision++
	return true, nil
}

// TickRest adds interval to every waiting player's rest time.
func (s *State) TickRest(interval time.Duration) int {
	updated := 0
	for i := range s.players {
		if s.players[i].Status != StatusWaiting {
			continue
		}
		s.players[i].RestTime += interval
		updated++
	}
	return updated
}

func (s *State) Players() []Player {
	return append([]Player(nil), s.players...)
}

func (s *State) Player(name string) (Player, bool) {
	idx, ok := s.playerIdx[name]
	if !ok {
		return Player{}, false
	}
	return s.players[idx], true
}

// WaitingPlayers lists players in waiting status, including queued ones.
func (s *State) WaitingPlayers() []Player {
	out := make([]Player, 0, len(s.players))
	for _, p := range s.players {
		if p.Status == StatusWaiting {
			out = append(out, p)
		}
	}
	return out
}

// AvailablePlayers lists waiting players not referenced by any queue
// entry, in registration order. This is the pairing pool.
func (s *State) AvailablePlayers() []Player {
	queued := make(map[string]struct{}, len(s.queue)*4)
	for _, entry := range s.queue {
		for _, name := range entry.Names() {
			queued[name] = struct{}{}
		}
	}

	out := make([]Player, 0, len(s.players))
	for _, p := range s.players {
		if p.Status != StatusWaiting {
			continue
		}
		if _, ok := queued[p.Name]; ok {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *State) Courts() []Court {
	out := make([]Court, 0, len(s.courts))
	for _, c := range s.courts {
		copied := Court{Name: c.Name}
		if c.CurrentMatch != nil {
			m := *c.CurrentMatch
			copied.CurrentMatch = &m
		}
		out = append(out, copied)
	}
	return out
}

func (s *State) Queue() []QueueEntry {
	return append([]QueueEntry(nil), s.queue...)
}

func (s *State) History() []HistoryRecord {
	return append([]HistoryRecord(nil), s.history...)
}
