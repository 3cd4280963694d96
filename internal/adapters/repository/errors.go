package repository

import "errors"

// Sentinel kinds for profile store errors.
var (
	// ErrNotFound is returned when no record exists for the key.
	ErrNotFound = errors.New("repository: not found")
	// ErrVersionConflict is returned when an optimistic write loses the
	// race: the stored version no longer matches the one the caller read.
	ErrVersionConflict = errors.New("repository: version conflict")
	// ErrDuplicateSession is returned when a behavioral session ID was
	// already persisted.
	ErrDuplicateSession = errors.New("repository: session already recorded")
)
