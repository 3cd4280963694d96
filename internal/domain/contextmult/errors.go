package contextmult

import "errors"

// Sentinel errors for context multiplier calculation.
var (
	// ErrConsentRequired is returned when the caller asks for a
	// context-adjusted calculation without the required consent grants.
	ErrConsentRequired = errors.New("contextmult: consent not granted")
	// ErrNoContext is returned when no family context exists for the child.
	ErrNoContext = errors.New("contextmult: no family context")
)
