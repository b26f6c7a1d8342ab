package callz

import "errors"

// Configuration errors returned by New, NewTally and Config.Options.
var (
	ErrConflictingOptions = errors.New("conflicting options")
	ErrInvalidTruncate    = errors.New("truncate length must be > 0")
	ErrInvalidThreshold   = errors.New("slower-than threshold must be >= 0")
	ErrInvalidLevel       = errors.New("invalid log level")
)
