package behavioral

import "errors"

// Sentinel errors for behavioral session aggregation.
var (
	// ErrSessionDiscarded is returned when an abandoned session is
	// submitted; abandoned sessions never touch the profile.
	ErrSessionDiscarded = errors.New("behavioral: abandoned session discarded")
	// ErrNoChoices is returned when a completed session carries no
	// recorded choices.
	ErrNoChoices = errors.New("behavioral: session has no choices")
	// ErrDuplicateSession is returned when a session ID was already
	// aggregated into the profile.
	ErrDuplicateSession = errors.New("behavioral: session already aggregated")
)
