package patternlock

import "errors"

var (
	// ErrNoPassword is returned when a gesture completes in validate mode but no
	// password has ever been stored or configured.
	ErrNoPassword = errors.New("patternlock: no password set")

	// ErrNoSurface is returned by New when no drawing surface is supplied.
	ErrNoSurface = errors.New("patternlock: no drawing surface")

	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("patternlock: invalid config")
)
