// Package irt implements the scoring primitives for the three-parameter
// logistic (3PL) item response model: response probability, Fisher
// information, ability estimation, and percentile conversion.
package irt

import "math"

// Ability estimation constants.
const (
	// ThetaMin and ThetaMax bound the ability scale.
	ThetaMin = -3.0
	ThetaMax = 3.0

	// InitialSE is the standard error before any item is administered;
	// it equals the SD of the standard-normal prior.
	InitialSE = 1.0

	maxIterations  = 20
	deltaTolerance = 0.001
	minDenominator = 1e-4
)

// Params holds the calibrated 3PL parameters of one item.
type Params struct {
	Discrimination float64 // a, [0.5,2.5]
	Difficulty     float64 // b, [-3,3]
	Guessing       float64 // c, [0,0.5]
}

// Observation pairs an item's parameters with the observed correctness.
type Observation struct {
	Params
	Correct bool
}

// ProbabilityCorrect returns P(correct | theta) under the 3PL model:
// p = c + (1-c) / (1 + exp(-a*(theta-b))). Monotonically increasing in
// theta, saturating at c and 1.
func ProbabilityCorrect(theta float64, p Params) float64 {
	z := p.Discrimination * (theta - p.Difficulty)
	return p.Guessing + (1-p.Guessing)/(1+math.Exp(-z))
}

// ItemInformation returns the Fisher information of an item at theta.
// Returns 0 rather than NaN when the probability sits at an asymptote.
func ItemInformation(theta float64, p Params) float64 {
	pr := ProbabilityCorrect(theta, p)
	q := 1 - pr
	if pr <= 0 || q <= 0 || p.Guessing >= 1 {
		return 0
	}
	dp := p.Discrimination * (pr - p.Guessing) * (1 - pr) / (1 - p.Guessing)
	return dp * dp / (pr * q)
}

// EstimateAbility runs Newton-Raphson maximum likelihood estimation over
// the full response history with a standard-normal Bayesian prior.
// Returns the updated theta, clamped to [ThetaMin, ThetaMax], and the
// standard error 1/sqrt(total information + prior information).
func EstimateAbility(obs []Observation, priorTheta float64) (theta, se float64) {
	if len(obs) == 0 {
		return priorTheta, InitialSE
	}

	theta = priorTheta
	for range maxIterations {
		var num, den float64
		for _, o := range obs {
			pr := ProbabilityCorrect(theta, o.Params)
			q := 1 - pr

			w := o.Discrimination
			if o.Guessing < 1 {
				w = o.Discrimination * (pr - o.Guessing) / (pr * (1 - o.Guessing))
			}

			u := 0.0
			if o.Correct {
				u = 1.0
			}
			num += w * (u - pr)
			den += w * w * pr * q
		}

		// Standard-normal prior pulls the estimate toward 0.
		num -= theta
		den++

		if math.Abs(den) < minDenominator {
			break
		}
		delta := num / den
		theta += delta
		if math.Abs(delta) < deltaTolerance {
			break
		}
	}

	theta = math.Max(ThetaMin, math.Min(ThetaMax, theta))

	info := 1.0 // prior information
	for _, o := range obs {
		info += ItemInformation(theta, o.Params)
	}
	if info <= 0 {
		return theta, InitialSE
	}
	return theta, 1 / math.Sqrt(info)
}

// PercentileFromZ maps a z-score to a percentile in [0,100] through the
// standard normal CDF. PercentileFromZ(0) == 50.
func PercentileFromZ(z float64) float64 {
	return 50 * (1 + math.Erf(z/math.Sqrt2))
}

// PercentileFromScore converts a score drawn from a normal reference
// population into a percentile.
func PercentileFromScore(score, mean, sd float64) float64 {
	if sd <= 0 {
		return 50
	}
	return PercentileFromZ((score - mean) / sd)
}

// RawScore maps a theta on [-3,3] to the 0-100 reporting scale.
func RawScore(theta float64) float64 {
	return (theta - ThetaMin) / (ThetaMax - ThetaMin) * 100
}
