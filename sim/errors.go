package sim

import "errors"

// ErrInvalidConfig is returned by New when the configuration cannot produce
// a meaningful simulation. Errors returned by New wrap it.
var ErrInvalidConfig = errors.New("sim: invalid config")
