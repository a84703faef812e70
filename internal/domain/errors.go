package domain

import "fmt"

// ConfigError reports an invalid parameter (window ordering, capital,
// commission range). It is never retried: callers surface it immediately
// and abandon the computation.
type ConfigError struct {
	Param  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}

// InsufficientDataError reports a price series too short to produce any
// return. It is non-fatal to a batch run: callers skip the symbol or report
// a flat result rather than aborting.
type InsufficientDataError struct {
	Have int
	Need int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: have %d bars, need at least %d", e.Have, e.Need)
}
