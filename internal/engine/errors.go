package engine

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by the engine wraps exactly one of
// these, so callers can map them without knowing individual codes.
var (
	ErrValidation        = errors.New("validation error")
	ErrIllegalAction     = errors.New("illegal action")
	ErrInternalInvariant = errors.New("internal invariant violated")
)

// Validation errors: the input is malformed.
var (
	ErrInvalidLevel          = fmt.Errorf("%w: invalid level", ErrValidation)
	ErrInvalidMoveAssignment = fmt.Errorf("%w: invalid move assignment", ErrValidation)
	ErrUnknownCreature       = fmt.Errorf("%w: unknown creature", ErrValidation)
	ErrEmptyRoster           = fmt.Errorf("%w: roster has no usable combatant", ErrValidation)
	ErrMissingAction         = fmt.Errorf("%w: missing action", ErrValidation)
)

// Illegal-action errors: the input is well formed but not allowed now.
var (
	ErrIllegalSwitch     = fmt.Errorf("%w: illegal switch", ErrIllegalAction)
	ErrSwitchRequired    = fmt.Errorf("%w: switch required", ErrIllegalAction)
	ErrBattleAlreadyOver = fmt.Errorf("%w: battle already over", ErrIllegalAction)
)

func invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInternalInvariant, fmt.Sprintf(format, args...))
}
