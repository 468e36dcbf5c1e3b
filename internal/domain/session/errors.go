package session

import "github.com/cockroachdb/errors"

var (
	ErrNotConfigured      = errors.New("session is not configured")
	ErrEmptyRoster        = errors.New("courts and players are required")
	ErrDuplicateName      = errors.New("duplicate name")
	ErrNameConflict       = errors.New("name used by both a court and a player")
	ErrUnknownSkillTier   = errors.New("unknown skill tier")
	ErrInvalidTeamSize    = errors.New("each team needs exactly two players")
	ErrInvalidSelection   = errors.New("a match needs four distinct players")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPlayerUnavailable  = errors.New("player is not waiting")
	ErrPlayerDoubleBooked = errors.New("player already queued")
	ErrCourtNotFound      = errors.New("court not found")
	ErrCourtBusy          = errors.New("court already has a match in progress")
	ErrCourtIdle          = errors.New("court has no match in progress")
	ErrQueueEmpty         = errors.New("waiting queue is empty")
	ErrInvalidScore       = errors.New("invalid game score")
	ErrInvalidName        = errors.New("name is required")
)
