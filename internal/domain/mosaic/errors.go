package mosaic

import "errors"

// Sentinel errors for composite generation.
var (
	// ErrInsufficientProfileData is returned when neither a cognitive
	// nor an emotional profile exists for the child.
	ErrInsufficientProfileData = errors.New("mosaic: insufficient profile data")
	// ErrNoArchetypes is returned when the archetype reference content
	// is empty.
	ErrNoArchetypes = errors.New("mosaic: no archetypes defined")
)
