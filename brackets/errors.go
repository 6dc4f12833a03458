package brackets

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every input error of the engine so callers can map them together.
var ErrValidation = errors.New("validation failed")

var (
	ErrTournamentNameRequired = fmt.Errorf("%w: tournament name is required", ErrValidation)
	ErrGroupSizesMismatch     = fmt.Errorf("%w: group sizes must add up to the number of players", ErrValidation)
	ErrNotEnoughPlayers       = fmt.Errorf("%w: not enough players", ErrValidation)
	ErrFrameScoresMismatch    = fmt.Errorf("%w: frame scores must be numbers and have the same length", ErrValidation)
	ErrInvalidScore           = fmt.Errorf("%w: score must be a non-negative integer", ErrValidation)
	ErrMatchOutOfRange        = fmt.Errorf("%w: match does not exist", ErrValidation)
	ErrInvalidScheduleConfig  = fmt.Errorf("%w: matches per date and per player must be positive", ErrValidation)
	ErrUnknownGenerator       = fmt.Errorf("%w: unknown bracket type", ErrValidation)

	// ErrScheduleNotConverged is a configuration failure: the limits leave matches without a date.
	ErrScheduleNotConverged = errors.New("could not assign a date to every match")
)
