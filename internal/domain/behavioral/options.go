package behavioral

import "github.com/carlosrios100/developmental-assessment-sub000/pkg/logger"

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithFastReactionMS sets the reaction time at or below which a choice
// carries full weight.
func WithFastReactionMS(ms int) Option {
	return func(a *Aggregator) {
		if ms > 0 {
			a.fastMS = ms
		}
	}
}

// WithSlowReactionMS sets the reaction time at or above which a choice
// carries its minimum weight.
func WithSlowReactionMS(ms int) Option {
	return func(a *Aggregator) {
		if ms > 0 {
			a.slowMS = ms
		}
	}
}

// WithSlowWeight sets the weight applied to the slowest reactions.
func WithSlowWeight(w float64) Option {
	return func(a *Aggregator) {
		if w > 0 && w <= 1 {
			a.slowWeight = w
		}
	}
}

// WithLogger sets the logger used by the aggregator.
func WithLogger(l logger.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.logger = l
		}
	}
}
