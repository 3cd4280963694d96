package content

import "errors"

// Sentinel errors for content lookups.
var (
	ErrItemNotFound     = errors.New("content: item not found")
	ErrScenarioNotFound = errors.New("content: scenario not found")
	ErrNoCutoffData     = errors.New("content: no cutoff data for domain")
	ErrInvalidPack      = errors.New("content: invalid pack")
)
