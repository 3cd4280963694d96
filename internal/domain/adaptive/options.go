// Package adaptive runs item-by-item adaptive cognitive tests.
package adaptive

import "github.com/carlosrios100/developmental-assessment-sub000/pkg/logger"

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithMinItems sets the minimum number of items before the SE stopping
// rule may fire.
func WithMinItems(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.minItems = n
		}
	}
}

// WithMaxItems sets the hard ceiling on administered items.
func WithMaxItems(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxItems = n
		}
	}
}

// WithTargetSE sets the standard-error threshold for early stopping.
func WithTargetSE(se float64) Option {
	return func(e *Engine) {
		if se > 0 {
			e.targetSE = se
		}
	}
}

// WithAgeWindowSlack sets how far (in months) the item age window widens
// when the strict window is exhausted.
func WithAgeWindowSlack(months int) Option {
	return func(e *Engine) {
		if months >= 0 {
			e.ageWindowSlack = months
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
