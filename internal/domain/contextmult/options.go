package contextmult

import "github.com/carlosrios100/developmental-assessment-sub000/pkg/logger"

// Option configures a Calculator.
type Option func(*Calculator)

// WithMaxAdversityBonus caps how much a positive opportunity gap can
// raise the multiplier above 1.0.
func WithMaxAdversityBonus(bonus float64) Option {
	return func(c *Calculator) {
		if bonus >= 0 {
			c.maxAdversityBonus = bonus
		}
	}
}

// WithCompletenessFloor sets the minimum data completeness below which
// the multiplier is neutralized.
func WithCompletenessFloor(floor float64) Option {
	return func(c *Calculator) {
		if floor >= 0 && floor <= 1 {
			c.completenessFloor = floor
		}
	}
}

// WithLogger sets the logger used by the calculator.
func WithLogger(l logger.Logger) Option {
	return func(c *Calculator) {
		if l != nil {
			c.logger = l
		}
	}
}
