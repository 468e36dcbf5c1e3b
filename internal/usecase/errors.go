package usecase

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/courtside/internal/domain/pairing"
	"github.com/riskibarqy/courtside/internal/domain/session"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("state conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// classify wraps a domain error with the use-case sentinel the HTTP
// layer maps to a status. Unknown errors pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.IsAny(err,
		session.ErrPlayerNotFound,
		session.ErrCourtNotFound,
	):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.IsAny(err,
		session.ErrNotConfigured,
		session.ErrPlayerUnavailable,
		session.ErrPlayerDoubleBooked,
		session.ErrCourtBusy,
		session.ErrCourtIdle,
		session.ErrQueueEmpty,
		pairing.ErrPoolTooSmall,
	):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.IsAny(err,
		session.ErrEmptyRoster,
		session.ErrDuplicateName,
		session.ErrNameConflict,
		session.ErrUnknownSkillTier,
		session.ErrInvalidTeamSize,
		session.ErrInvalidSelection,
		session.ErrInvalidScore,
		session.ErrInvalidName,
		pairing.ErrInvalidGroupSize,
		pairing.ErrUnknownMode,
	):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}
