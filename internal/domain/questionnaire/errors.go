package questionnaire

import "errors"

// Sentinel kinds for questionnaire scoring errors.
var (
	ErrIncompleteResponseSet = errors.New("incomplete response set")
	ErrInvalidResponse       = errors.New("invalid response value")
	ErrInvalidAge            = errors.New("age out of range")
	ErrNoCutoffData          = errors.New("no cutoff data for domain")
)
