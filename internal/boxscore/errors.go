// Package boxscore is the mutation and derivation engine for a match box score.
// Every operation works on model values in place and keeps the derived fields consistent:
// points are recomputed after each adjustment and totals are never stored.
package boxscore

import "errors"

// Rule rejections. None of them leaves a partial mutation behind.
var (
	ErrUnknownSide        = errors.New("unknown team side")
	ErrUnknownStat        = errors.New("unknown stat")
	ErrPlayerIndex        = errors.New("player index out of range")
	ErrAttemptsBelowMakes = errors.New("attempts cannot drop below makes")
	ErrCourtFull          = errors.New("team already has 5 players on court")
	ErrInvalidIdentity    = errors.New("invalid identity field")
)

// IdentityError describes a rejected roster edit on one field. It unwraps to ErrInvalidIdentity.
type IdentityError struct {
	Field   string
	Message string
}

func (e *IdentityError) Error() string { return e.Field + ": " + e.Message }
func (e *IdentityError) Unwrap() error { return ErrInvalidIdentity }
