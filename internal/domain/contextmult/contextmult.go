// Package contextmult derives the socio-economic adversity multiplier
// applied to composite scores. The multiplier rewards children whose
// measured performance was achieved with fewer household resources than
// their surroundings assume, and it never drops below neutral.
package contextmult

import (
	"context"
	"time"

	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/model"
	"github.com/carlosrios100/developmental-assessment-sub000/pkg/logger"
)

// Calculation defaults.
const (
	defaultMaxAdversityBonus = 0.5
	defaultCompletenessFloor = 0.3

	// neutralSES stands in when no income or education signal exists.
	neutralSES = 0.5

	// optionalFields is the number of family context fields counted
	// toward data completeness.
	optionalFields = 10
)

// incomeSES maps household income brackets onto [0,1].
var incomeSES = map[string]float64{
	"under_25k":      0.1,
	"25k_50k":        0.25,
	"50k_75k":        0.4,
	"75k_100k":       0.55,
	"100k_150k":      0.7,
	"150k_200k":      0.85,
	"over_200k":      0.95,
	"prefer_not_say": 0.5,
}

// educationSES maps parent education levels onto [0,1].
var educationSES = map[string]float64{
	"less_than_high_school": 0.1,
	"high_school":           0.25,
	"some_college":          0.4,
	"associates":            0.5,
	"bachelors":             0.7,
	"masters":               0.85,
	"doctorate":             0.95,
}

// OpportunityProvider resolves the opportunity index for a zip code.
// The second return reports whether real data backed the value; callers
// receive a national-average estimate otherwise.
type OpportunityProvider interface {
	OpportunityIndex(ctx context.Context, zipCode string) (float64, bool, error)
}

// Calculator computes adversity multipliers from family context.
type Calculator struct {
	provider          OpportunityProvider
	maxAdversityBonus float64
	completenessFloor float64
	logger            logger.Logger
}

// New constructs a Calculator over the given opportunity provider.
func New(provider OpportunityProvider, opts ...Option) *Calculator {
	c := &Calculator{
		provider:          provider,
		maxAdversityBonus: defaultMaxAdversityBonus,
		completenessFloor: defaultCompletenessFloor,
		logger:            logger.Get().Named("contextmult"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Neutral returns the multiplier used when no context may be read:
// exactly 1.0 with zero completeness.
func Neutral(childID string) model.ContextMultiplier {
	return model.ContextMultiplier{
		ChildID:             childID,
		AdversityMultiplier: 1.0,
		CalculatedAt:        time.Now().UTC(),
	}
}

// Calculate derives the multiplier for one child. Consent gates the
// inputs: without socio-economic consent nothing is read and the
// neutral multiplier is returned with ErrConsentRequired; without
// location consent the zip code is ignored and the multiplier stays
// neutral because no opportunity gap can be measured.
func (c *Calculator) Calculate(ctx context.Context, fc model.FamilyContext, consent model.ConsentFlags) (model.ContextMultiplier, error) {
	if !consent.SocioEconomic {
		return Neutral(fc.ChildID), ErrConsentRequired
	}

	ses := c.socioEconStatus(fc)
	completeness := dataCompleteness(fc)

	m := model.ContextMultiplier{
		ChildID:             fc.ChildID,
		SocioEconStatus:     ses,
		DataCompleteness:    completeness,
		AdversityMultiplier: 1.0,
		CalculatedAt:        time.Now().UTC(),
	}

	if consent.Location && fc.ZipCode != "" {
		opportunity, known, err := c.provider.OpportunityIndex(ctx, fc.ZipCode)
		if err != nil {
			return model.ContextMultiplier{}, err
		}
		m.OpportunityIndex = opportunity
		// Only a positive gap (low SES in a high-opportunity area)
		// raises the multiplier.
		m.GapScore = opportunity - ses
		m.AdversityMultiplier = 1.0 + clamp(m.GapScore, 0, c.maxAdversityBonus)
		if !known {
			c.logger.Debug(ctx, "opportunity index estimated",
				logger.String("child_id", fc.ChildID),
				logger.String("zip_code", fc.ZipCode),
			)
		}
	}

	// Sparse context is too weak a signal to adjust scores on.
	if completeness < c.completenessFloor {
		m.AdversityMultiplier = 1.0
	}

	c.logger.Debug(ctx, "multiplier calculated",
		logger.String("child_id", fc.ChildID),
		logger.Float64("ses", ses),
		logger.Float64("gap", m.GapScore),
		logger.Float64("multiplier", m.AdversityMultiplier),
		logger.Float64("completeness", completeness),
	)
	return m, nil
}

// socioEconStatus folds the income and education maps with the smaller
// household adjustments into a single [0,1] status.
func (c *Calculator) socioEconStatus(fc model.FamilyContext) float64 {
	var components []float64
	if fc.HouseholdIncomeBracket != "" {
		v, ok := incomeSES[fc.HouseholdIncomeBracket]
		if !ok {
			v = neutralSES
		}
		components = append(components, v)
	}
	if fc.ParentEducationLevel != "" {
		v, ok := educationSES[fc.ParentEducationLevel]
		if !ok {
			v = neutralSES
		}
		components = append(components, v)
	}

	var adjustment float64
	if fc.ReceivesAssistance != nil && *fc.ReceivesAssistance {
		adjustment -= 0.1
	}
	if fc.SingleParent != nil && *fc.SingleParent {
		adjustment -= 0.05
	}
	if fc.BooksInHome != nil {
		adjustment += min(0.1, float64(*fc.BooksInHome)/500)
	}

	ses := neutralSES
	if len(components) > 0 {
		var sum float64
		for _, v := range components {
			sum += v
		}
		ses = sum / float64(len(components))
	}
	return clamp(ses+adjustment, 0, 1)
}

// dataCompleteness counts the filled optional fields.
func dataCompleteness(fc model.FamilyContext) float64 {
	filled := 0
	if fc.ZipCode != "" {
		filled++
	}
	if fc.HouseholdSize > 0 {
		filled++
	}
	if fc.ParentEducationLevel != "" {
		filled++
	}
	if fc.HouseholdIncomeBracket != "" {
		filled++
	}
	if fc.SingleParent != nil {
		filled++
	}
	if fc.LanguagesSpoken > 0 {
		filled++
	}
	if fc.ReceivesAssistance != nil {
		filled++
	}
	if fc.ChildcareType != "" {
		filled++
	}
	if fc.ScreenTimeHoursDaily != nil {
		filled++
	}
	if fc.BooksInHome != nil {
		filled++
	}
	return float64(filled) / optionalFields
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
