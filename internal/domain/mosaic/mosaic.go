// Package mosaic combines cognitive, emotional and context signals into
// the versioned composite assessment: the weighted raw score, the
// adversity-adjusted true potential, ranked archetype matches and a gap
// analysis against the strongest archetype.
package mosaic

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/irt"
	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/model"
	"github.com/carlosrios100/developmental-assessment-sub000/pkg/logger"
	"github.com/carlosrios100/developmental-assessment-sub000/pkg/metrics"
)

// Composite defaults.
const (
	DefaultCognitiveWeight = 0.4
	DefaultEmotionalWeight = 0.6

	defaultPopulationMean = 50.0
	defaultPopulationSD   = 15.0
	defaultMaxGaps        = 5

	// defaultMatchScore applies when an archetype shares no traits with
	// the measured profiles.
	defaultMatchScore = 50.0

	minConfidence = 0.1

	cognitiveGapTarget = 70.0
	emotionalGapTarget = 60.0
	emotionalGapFloor  = 50.0
	maxCognitiveGaps   = 2
)

// ArchetypeSource supplies the archetype reference content in its
// canonical definition order; ties in match score preserve that order.
type ArchetypeSource interface {
	Archetypes(ctx context.Context) ([]model.Archetype, error)
}

// Inputs collects whatever profile data exists for a child. Any of the
// three may be nil; at least one profile is required.
type Inputs struct {
	Cognitive *model.CognitiveProfile
	Emotional *model.EmotionalProfile
	Context   *model.ContextMultiplier
}

// Engine produces versioned composite assessments.
type Engine struct {
	archetypes      ArchetypeSource
	cognitiveWeight float64
	emotionalWeight float64
	populationMean  float64
	populationSD    float64
	maxGaps         int
	logger          logger.Logger
}

// New constructs an Engine over the given archetype source.
func New(archetypes ArchetypeSource, opts ...Option) *Engine {
	e := &Engine{
		archetypes:      archetypes,
		cognitiveWeight: DefaultCognitiveWeight,
		emotionalWeight: DefaultEmotionalWeight,
		populationMean:  defaultPopulationMean,
		populationSD:    defaultPopulationSD,
		maxGaps:         defaultMaxGaps,
		logger:          logger.Get().Named("mosaic"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Generate builds one composite assessment at the given version. The
// caller owns version allocation and persistence; the result is
// immutable once returned.
func (e *Engine) Generate(ctx context.Context, childID string, in Inputs, version int) (model.MosaicAssessment, error) {
	start := time.Now()

	rawCognitive, hasCognitive := rawCognitiveScore(in.Cognitive)
	rawEmotional, hasEmotional := rawEmotionalScore(in.Emotional)
	if !hasCognitive && !hasEmotional {
		return model.MosaicAssessment{}, fmt.Errorf("%w: child %s", ErrInsufficientProfileData, childID)
	}

	// Degraded single-profile mode carries the available profile at
	// full weight.
	var combined float64
	switch {
	case hasCognitive && hasEmotional:
		combined = rawCognitive*e.cognitiveWeight + rawEmotional*e.emotionalWeight
	case hasCognitive:
		combined = rawCognitive
	default:
		combined = rawEmotional
	}

	multiplier := 1.0
	if in.Context != nil {
		multiplier = in.Context.AdversityMultiplier
	}
	truePotential := combined * multiplier

	matches, err := e.matchArchetypes(ctx, in)
	if err != nil {
		return model.MosaicAssessment{}, err
	}

	a := model.MosaicAssessment{
		ID:                      uuid.NewString(),
		ChildID:                 childID,
		RawCognitiveScore:       rawCognitive,
		RawEmotionalScore:       rawEmotional,
		RawCombinedScore:        combined,
		AdversityMultiplier:     multiplier,
		TruePotentialScore:      truePotential,
		TruePotentialPercentile: irt.PercentileFromScore(truePotential, e.populationMean, e.populationSD),
		ConfidenceLevel:         confidence(in),
		Matches:                 matches,
		Version:                 version,
		CalculatedAt:            time.Now().UTC(),
	}
	if len(matches) > 0 {
		a.PrimaryArchetype = matches[0].Type
	}
	if len(matches) > 1 {
		a.SecondaryArchetype = matches[1].Type
	}
	a.Gaps = e.gapAnalysis(in, a.PrimaryArchetype)

	metrics.RecordMosaicGenerated()
	metrics.RecordMosaicLatency(float64(time.Since(start).Milliseconds()))
	e.logger.Info(ctx, "mosaic generated",
		logger.String("child_id", childID),
		logger.Int("version", version),
		logger.Float64("true_potential", truePotential),
		logger.String("primary_archetype", string(a.PrimaryArchetype)),
		logger.Float64("confidence", a.ConfidenceLevel),
	)
	return a, nil
}

// rawCognitiveScore reduces a cognitive profile to its 0-100 composite
// percentile.
func rawCognitiveScore(p *model.CognitiveProfile) (float64, bool) {
	if p == nil || len(p.Domains) == 0 {
		return 0, false
	}
	return p.CompositePercentile, true
}

// rawEmotionalScore reduces an emotional profile to its composite EQ.
func rawEmotionalScore(p *model.EmotionalProfile) (float64, bool) {
	if p == nil || len(p.Dimensions) == 0 {
		return 0, false
	}
	return p.CompositeEQ, true
}

// confidence is the mean of the available completeness fractions with a
// fixed floor.
func confidence(in Inputs) float64 {
	var components []float64
	if in.Cognitive != nil && len(in.Cognitive.Domains) > 0 {
		components = append(components, float64(len(in.Cognitive.Domains))/float64(len(model.CognitiveDomains())))
	}
	if in.Emotional != nil && len(in.Emotional.Dimensions) > 0 {
		components = append(components, float64(len(in.Emotional.Dimensions))/float64(len(model.EmotionalDimensions())))
	}
	if in.Context != nil {
		components = append(components, in.Context.DataCompleteness)
	}
	if len(components) == 0 {
		return minConfidence
	}
	var sum float64
	for _, c := range components {
		sum += c
	}
	return math.Max(minConfidence, sum/float64(len(components)))
}

// matchArchetypes scores every archetype against the normalized trait
// vector and returns them ranked best first.
func (e *Engine) matchArchetypes(ctx context.Context, in Inputs) ([]model.ArchetypeMatch, error) {
	archetypes, err := e.archetypes.Archetypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load archetypes: %w", err)
	}
	if len(archetypes) == 0 {
		return nil, ErrNoArchetypes
	}

	traits := normalizedTraits(in)

	matches := make([]model.ArchetypeMatch, 0, len(archetypes))
	for _, arch := range archetypes {
		score := defaultMatchScore
		var breakdown map[string]float64
		var weighted, totalWeight float64
		for trait, weight := range arch.TraitWeights {
			value, ok := traits[trait]
			if !ok {
				continue
			}
			if breakdown == nil {
				breakdown = make(map[string]float64)
			}
			contribution := value * weight
			weighted += contribution
			totalWeight += weight
			breakdown[trait] = contribution * 100
		}
		if totalWeight > 0 {
			score = weighted / totalWeight * 100
		}
		matches = append(matches, model.ArchetypeMatch{
			Type:           arch.Type,
			MatchScore:     score,
			TraitBreakdown: breakdown,
		})
	}

	// Stable sort keeps definition order for equal scores.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
	for i := range matches {
		matches[i].MatchRank = i + 1
	}
	metrics.RecordArchetypeRanking()
	return matches, nil
}

// normalizedTraits maps every measured trait onto [0,1]: theta-scale
// cognitive domains via (x+3)/6 and 0-100 emotional dimensions via
// x/100.
func normalizedTraits(in Inputs) map[string]float64 {
	traits := make(map[string]float64)
	if in.Cognitive != nil {
		for domain, result := range in.Cognitive.Domains {
			traits[string(domain)] = (result.Score + 3) / 6
		}
	}
	if in.Emotional != nil {
		for dim, score := range in.Emotional.Dimensions {
			traits[string(dim)] = score / 100
		}
	}
	return traits
}

// gapAnalysis lists the largest trait shortfalls: up to two cognitive
// growth areas measured against a fixed benchmark, then emotional
// dimensions sitting below the midline, capped at maxGaps entries.
func (e *Engine) gapAnalysis(in Inputs, primary model.ArchetypeType) []model.GapEntry {
	var gaps []model.GapEntry

	if in.Cognitive != nil {
		areas := in.Cognitive.GrowthAreas
		if len(areas) > maxCognitiveGaps {
			areas = areas[:maxCognitiveGaps]
		}
		for _, area := range areas {
			current := 30.0
			if r, ok := in.Cognitive.Domains[area]; ok {
				current = r.Percentile
			}
			gaps = append(gaps, gapEntry(
				string(area),
				fmt.Sprintf("Opportunities for growth in %s reasoning and problem-solving", area),
				current, cognitiveGapTarget, primary,
			))
		}
	}

	if in.Emotional != nil {
		for _, dim := range model.EmotionalDimensions() {
			score, ok := in.Emotional.Dimensions[dim]
			if !ok || score >= emotionalGapFloor {
				continue
			}
			name := strings.ReplaceAll(string(dim), "_", " ")
			gaps = append(gaps, gapEntry(
				string(dim),
				fmt.Sprintf("Developing %s through practice and guidance", name),
				score, emotionalGapTarget, primary,
			))
		}
	}

	if len(gaps) > e.maxGaps {
		gaps = gaps[:e.maxGaps]
	}
	return gaps
}

// gapEntry derives priority and effort from the shortfall magnitude.
func gapEntry(trait, description string, current, target float64, primary model.ArchetypeType) model.GapEntry {
	shortfall := target - current
	var priority model.GapPriority
	var effort string
	switch {
	case shortfall >= 40:
		priority, effort = model.PriorityCritical, "years"
	case shortfall >= 25:
		priority, effort = model.PriorityHigh, "months"
	case shortfall >= 10:
		priority, effort = model.PriorityMedium, "months"
	default:
		priority, effort = model.PriorityLow, "weeks"
	}
	return model.GapEntry{
		Trait:            trait,
		Description:      description,
		CurrentLevel:     current,
		TargetLevel:      target,
		Priority:         priority,
		EstimatedEffort:  effort,
		RelatedArchetype: primary,
	}
}
