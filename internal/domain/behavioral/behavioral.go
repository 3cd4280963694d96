// Package behavioral turns recorded scenario sessions into running
// emotional-profile updates. Choices are weighted by reaction time so
// that deliberate, fast decisions count more than drawn-out ones, and
// per-scenario-type running statistics feed a consistency index.
package behavioral

import (
	"context"
	"math"
	"time"

	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/model"
	"github.com/carlosrios100/developmental-assessment-sub000/pkg/logger"
)

// Default reaction-time weighting. A choice made at or below fastMS
// carries weight 1.0; at or above slowMS it carries slowWeight, with a
// linear ramp between the two.
const (
	defaultFastReactionMS = 2000
	defaultSlowReactionMS = 8000
	defaultSlowWeight     = 0.7

	// maxLearningRate caps how strongly a single session can move an
	// established dimension score.
	maxLearningRate = 0.5

	// dimensionScale maps a session's summed deltas onto the profile
	// score range before blending.
	dimensionScale  = 10.0
	dimensionOffset = 50.0
	scoreFloor      = -100.0
	scoreCeil       = 100.0
)

// Aggregator folds scenario sessions into emotional profiles.
type Aggregator struct {
	fastMS     int
	slowMS     int
	slowWeight float64
	logger     logger.Logger
}

// New builds an Aggregator with the default reaction weighting.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		fastMS:     defaultFastReactionMS,
		slowMS:     defaultSlowReactionMS,
		slowWeight: defaultSlowWeight,
		logger:     logger.Get().Named("behavioral"),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.slowMS <= a.fastMS {
		a.slowMS = a.fastMS + 1
	}
	return a
}

// Summarize reduces a single session to its weighted dimension totals,
// engagement score and instinct sample. Abandoned sessions yield
// ErrSessionDiscarded and must not be applied to a profile.
func (a *Aggregator) Summarize(ctx context.Context, session model.ScenarioSession) (model.SessionOutcome, error) {
	out := model.SessionOutcome{SessionID: session.SessionID}
	if !session.Completed {
		return out, ErrSessionDiscarded
	}
	if len(session.Choices) == 0 {
		return out, ErrNoChoices
	}

	totals := make(map[model.EmotionalDimension]float64)
	var (
		reactionSum   float64
		weightSum     float64
		hesitationSum int
		expectedRT    float64
		expectedN     int
	)
	options := make(map[string]struct{}, len(session.Choices))
	for _, choice := range session.Choices {
		w := a.reactionWeight(choice.ReactionTimeMS)
		for dim, delta := range choice.DimensionDeltas {
			totals[dim] += delta * w
		}
		reactionSum += float64(choice.ReactionTimeMS)
		weightSum += w
		hesitationSum += choice.HesitationCount
		options[choice.SelectedOption] = struct{}{}
		if choice.Expected {
			expectedRT += float64(choice.ReactionTimeMS)
			expectedN++
		}
	}

	n := float64(len(session.Choices))
	avgReaction := reactionSum / n

	// Instinct tracks how quickly expected choices are made; when no
	// choice is flagged expected the overall pace stands in.
	instinctRT := avgReaction
	if expectedN > 0 {
		instinctRT = expectedRT / float64(expectedN)
	}

	out.DimensionTotals = totals
	out.EngagementScore = a.engagement(len(options), len(session.Choices), avgReaction, hesitationSum)
	out.InstinctSample = clamp01(1 - (instinctRT-float64(a.fastMS))/6000)
	out.Counted = true
	return out, nil
}

// Apply folds a summarized session into the profile using a learning
// rate that decays as more sessions accumulate. Dimensions never seen
// before are seeded directly from the session.
func (a *Aggregator) Apply(ctx context.Context, profile *model.EmotionalProfile, session model.ScenarioSession, out model.SessionOutcome) error {
	if !out.Counted {
		return ErrSessionDiscarded
	}
	if profile.Dimensions == nil {
		profile.Dimensions = make(map[model.EmotionalDimension]float64)
	}
	if profile.TypeStats == nil {
		profile.TypeStats = make(map[model.ScenarioType]model.RunningStat)
	}

	profile.SessionsCompleted++
	n := profile.SessionsCompleted
	rate := math.Min(maxLearningRate, 1/float64(n))

	var sessionMean float64
	for dim, total := range out.DimensionTotals {
		scaled := clampScore(total*dimensionScale + dimensionOffset)
		sessionMean += scaled
		old, seen := profile.Dimensions[dim]
		if !seen {
			profile.Dimensions[dim] = scaled
			continue
		}
		profile.Dimensions[dim] = clampScore(old + rate*(scaled-old))
	}
	if len(out.DimensionTotals) > 0 {
		sessionMean /= float64(len(out.DimensionTotals))
	}

	stat := profile.TypeStats[session.ScenarioType]
	stat.Push(sessionMean)
	profile.TypeStats[session.ScenarioType] = stat

	profile.InstinctIndex += (out.InstinctSample - profile.InstinctIndex) / float64(n)
	profile.EngagementAvg += (out.EngagementScore - profile.EngagementAvg) / float64(n)
	profile.ConsistencyIndex = a.consistency(profile.TypeStats)
	profile.CompositeEQ = compositeEQ(profile.Dimensions)
	profile.UpdatedAt = time.Now().UTC()

	a.logger.Debug(ctx, "session aggregated",
		logger.String("child_id", profile.ChildID),
		logger.String("session_id", session.SessionID),
		logger.Int("sessions_completed", n),
		logger.Float64("composite_eq", profile.CompositeEQ),
	)
	return nil
}

// reactionWeight maps a reaction time onto [slowWeight,1].
func (a *Aggregator) reactionWeight(ms int) float64 {
	switch {
	case ms <= a.fastMS:
		return 1.0
	case ms >= a.slowMS:
		return a.slowWeight
	default:
		frac := float64(ms-a.fastMS) / float64(a.slowMS-a.fastMS)
		return 1.0 - frac*(1.0-a.slowWeight)
	}
}

// engagement blends option variety, reaction pace and hesitation into
// a single [0,1] score.
func (a *Aggregator) engagement(variety, choices int, avgReaction float64, hesitations int) float64 {
	varietyScore := clamp01(float64(variety) / float64(choices))
	reactionScore := clamp01(1 - (avgReaction-float64(a.fastMS))/float64(a.slowMS-a.fastMS))
	hesitationScore := clamp01(1 - float64(hesitations)/float64(choices*3))
	return 0.3*varietyScore + 0.4*reactionScore + 0.3*hesitationScore
}

// consistency turns the pooled per-type variance into a [0,1] index.
// Low variance across sessions of the same scenario type reads as a
// stable behavioral signal.
func (a *Aggregator) consistency(stats map[model.ScenarioType]model.RunningStat) float64 {
	var (
		varianceSum float64
		types       int
	)
	for _, stat := range stats {
		if stat.Count < 2 {
			continue
		}
		varianceSum += stat.Variance()
		types++
	}
	if types == 0 {
		// A single observation per type carries no disagreement signal.
		return 1.0
	}
	pooledSD := math.Sqrt(varianceSum / float64(types))
	return clamp01(1 - pooledSD/dimensionOffset)
}

// compositeEQ is the plain mean of the tracked dimension scores,
// shifted onto [0,100] for downstream composite math.
func compositeEQ(dims map[model.EmotionalDimension]float64) float64 {
	if len(dims) == 0 {
		return 0
	}
	var sum float64
	for _, v := range dims {
		sum += v
	}
	mean := sum / float64(len(dims))
	return clamp(mean, 0, 100)
}

func clamp01(v float64) float64 { return clamp(v, 0, 1) }

func clampScore(v float64) float64 { return clamp(v, scoreFloor, scoreCeil) }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
