package adaptive

import "errors"

// Sentinel kinds for adaptive testing errors.
var (
	ErrItemPoolExhausted = errors.New("item pool exhausted")
	ErrItemNotInSession  = errors.New("item was not offered in this session")
	ErrDuplicateItem     = errors.New("item already administered in this session")
	ErrNotInProgress     = errors.New("assessment is not in progress")
	ErrUnknownDomain     = errors.New("unknown cognitive domain")
)
