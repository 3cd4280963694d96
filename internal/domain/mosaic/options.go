package mosaic

import "github.com/carlosrios100/developmental-assessment-sub000/pkg/logger"

// Option configures an Engine.
type Option func(*Engine)

// WithWeights sets the cognitive and emotional weights used when both
// profiles are present. Weights must be positive and sum to 1, within
// the same tolerance the config loader accepts.
func WithWeights(cognitive, emotional float64) Option {
	return func(e *Engine) {
		sum := cognitive + emotional
		if cognitive > 0 && emotional > 0 && sum >= 0.999 && sum <= 1.001 {
			e.cognitiveWeight = cognitive
			e.emotionalWeight = emotional
		}
	}
}

// WithPopulation sets the reference population used to convert true
// potential scores into percentiles.
func WithPopulation(mean, sd float64) Option {
	return func(e *Engine) {
		if sd > 0 {
			e.populationMean = mean
			e.populationSD = sd
		}
	}
}

// WithMaxGaps caps the number of gap analysis entries.
func WithMaxGaps(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxGaps = n
		}
	}
}

// WithLogger sets the logger used by the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
