// Package adaptive runs item-by-item adaptive cognitive tests: it keeps
// the ability estimate and its standard error current after every
// response, selects the next item by maximum information, and applies
// the stopping rule.
package adaptive

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/irt"
	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/model"
	"github.com/carlosrios100/developmental-assessment-sub000/pkg/logger"
	"github.com/carlosrios100/developmental-assessment-sub000/pkg/metrics"
)

// Default stopping rule constants.
const (
	DefaultMinItems       = 10
	DefaultMaxItems       = 30
	DefaultTargetSE       = 0.3
	defaultAgeWindowSlack = 6 // months
)

// ItemBank supplies calibrated items. Implementations live in the
// content store adapter.
type ItemBank interface {
	// Item returns a single item by ID.
	Item(ctx context.Context, id string) (model.TestItem, error)

	// ItemsForDomain returns every active item for a domain.
	ItemsForDomain(ctx context.Context, domain model.CognitiveDomain) ([]model.TestItem, error)
}

// Outcome reports the result of one submitted response.
type Outcome struct {
	Correct        bool
	Theta          float64
	StandardError  float64
	Complete       bool
	StoppingReason model.StoppingReason
	NextItem       *model.TestItem
}

// Engine drives adaptive test sessions. It is stateless across calls;
// all session state lives in the CognitiveAssessment record.
type Engine struct {
	bank           ItemBank
	minItems       int
	maxItems       int
	targetSE       float64
	ageWindowSlack int
	logger         logger.Logger
}

// New constructs an Engine over the given item bank.
func New(bank ItemBank, opts ...Option) *Engine {
	e := &Engine{
		bank:           bank,
		minItems:       DefaultMinItems,
		maxItems:       DefaultMaxItems,
		targetSE:       DefaultTargetSE,
		ageWindowSlack: defaultAgeWindowSlack,
		logger:         logger.Get().Named("adaptive"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start begins a new session for (child, domain) and selects the first
// item by maximum information at theta=0. Returns ErrItemPoolExhausted
// when no age-appropriate item exists.
func (e *Engine) Start(ctx context.Context, childID string, domain model.CognitiveDomain, ageMonths int) (model.CognitiveAssessment, model.TestItem, error) {
	if !model.ValidCognitiveDomain(domain) {
		return model.CognitiveAssessment{}, model.TestItem{}, fmt.Errorf("%w: %s", ErrUnknownDomain, domain)
	}

	a := model.CognitiveAssessment{
		ID:            uuid.NewString(),
		ChildID:       childID,
		Domain:        domain,
		AgeMonths:     ageMonths,
		Theta:         0,
		StandardError: irt.InitialSE,
		Status:        model.StatusInProgress,
		StartedAt:     time.Now().UTC(),
	}

	first, err := e.selectNext(ctx, domain, ageMonths, nil, 0)
	if err != nil {
		return model.CognitiveAssessment{}, model.TestItem{}, err
	}

	metrics.RecordAssessmentStarted(string(domain))
	e.logger.Info(ctx, "started adaptive assessment",
		logger.String("assessmentID", a.ID),
		logger.String("childID", childID),
		logger.String("domain", string(domain)),
		logger.Int("ageMonths", ageMonths),
	)
	return a, first, nil
}

// Respond records one answer, re-estimates ability over the full history,
// checks the stopping rule, and selects the next item at the updated
// theta. The assessment is mutated in place.
func (e *Engine) Respond(ctx context.Context, a *model.CognitiveAssessment, itemID string, response []string, reactionTimeMS int) (Outcome, error) {
	if a.Status != model.StatusInProgress {
		return Outcome{}, fmt.Errorf("%w: %s", ErrNotInProgress, a.Status)
	}
	if a.AdministeredIDs()[itemID] {
		return Outcome{}, fmt.Errorf("%w: %s", ErrDuplicateItem, itemID)
	}

	item, err := e.bank.Item(ctx, itemID)
	if err != nil {
		return Outcome{}, fmt.Errorf("load item %s: %w", itemID, err)
	}

	correct := isCorrect(response, item.Content.CorrectAnswer)

	start := time.Now()
	obs := observations(a.History)
	obs = append(obs, irt.Observation{Params: itemParams(item), Correct: correct})
	theta, se := irt.EstimateAbility(obs, a.Theta)
	metrics.RecordThetaUpdateLatency(float64(time.Since(start).Microseconds()) / 1000)

	a.History = append(a.History, model.AdministeredItem{
		Item:           item,
		Response:       response,
		Correct:        correct,
		ReactionTimeMS: reactionTimeMS,
		ThetaAfter:     theta,
		SEAfter:        se,
	})
	a.Theta = theta
	a.StandardError = se
	a.ItemsAdministered++
	metrics.RecordItemAdministered(string(a.Domain), correct)

	out := Outcome{Correct: correct, Theta: theta, StandardError: se}

	switch {
	case a.ItemsAdministered >= e.maxItems:
		out.Complete = true
		out.StoppingReason = model.StopMaxItems
	case a.ItemsAdministered >= e.minItems && se <= e.targetSE:
		out.Complete = true
		out.StoppingReason = model.StopTargetSE
	default:
		next, selErr := e.selectNext(ctx, a.Domain, a.AgeMonths, a.AdministeredIDs(), theta)
		if selErr != nil {
			// Content exhausted mid-session: complete with what we have.
			out.Complete = true
			out.StoppingReason = model.StopItemPoolExhausted
		} else {
			out.NextItem = &next
		}
	}

	if out.Complete {
		e.finalize(ctx, a, out.StoppingReason)
	}

	e.logger.Debug(ctx, "response recorded",
		logger.String("assessmentID", a.ID),
		logger.Int("item", a.ItemsAdministered),
		logger.Any("correct", correct),
		logger.Float64("theta", theta),
		logger.Float64("se", se),
	)
	return out, nil
}

// Abandon cancels an in-progress session. The history is kept but no
// profile delta is produced.
func (e *Engine) Abandon(ctx context.Context, a *model.CognitiveAssessment) error {
	if a.Status != model.StatusInProgress {
		return fmt.Errorf("%w: %s", ErrNotInProgress, a.Status)
	}
	a.Status = model.StatusAbandoned
	a.StoppingReason = model.StopCancelled
	a.CompletedAt = time.Now().UTC()
	metrics.RecordAssessmentCompleted(string(a.Domain), string(model.StopCancelled))
	e.logger.Info(ctx, "assessment abandoned", logger.String("assessmentID", a.ID))
	return nil
}

// finalize converts the last (theta, SE) into the reported score.
func (e *Engine) finalize(ctx context.Context, a *model.CognitiveAssessment, reason model.StoppingReason) {
	a.Status = model.StatusCompleted
	a.StoppingReason = reason
	a.RawScore = irt.RawScore(a.Theta)
	a.Percentile = irt.PercentileFromZ(a.Theta)
	a.CompletedAt = time.Now().UTC()
	metrics.RecordAssessmentCompleted(string(a.Domain), string(reason))
	e.logger.Info(ctx, "assessment completed",
		logger.String("assessmentID", a.ID),
		logger.Float64("theta", a.Theta),
		logger.Float64("percentile", a.Percentile),
		logger.String("reason", string(reason)),
	)
}

// selectNext picks the unused, age-eligible item with maximum Fisher
// information at theta. The age window widens by ageWindowSlack months
// before the pool is declared exhausted.
func (e *Engine) selectNext(ctx context.Context, domain model.CognitiveDomain, ageMonths int, exclude map[string]bool, theta float64) (model.TestItem, error) {
	all, err := e.bank.ItemsForDomain(ctx, domain)
	if err != nil {
		return model.TestItem{}, fmt.Errorf("list items for %s: %w", domain, err)
	}

	pick := func(minAge, maxAge int) (model.TestItem, bool) {
		best := model.TestItem{}
		bestInfo := -1.0
		for _, it := range all {
			if exclude[it.ID] || it.MinAgeMonths > maxAge || it.MaxAgeMonths < minAge {
				continue
			}
			info := irt.ItemInformation(theta, itemParams(it))
			if info > bestInfo {
				bestInfo = info
				best = it
			}
		}
		return best, bestInfo >= 0
	}

	if it, ok := pick(ageMonths, ageMonths); ok {
		return it, nil
	}
	if it, ok := pick(ageMonths-e.ageWindowSlack, ageMonths+e.ageWindowSlack); ok {
		return it, nil
	}
	return model.TestItem{}, fmt.Errorf("%w: domain %s age %d", ErrItemPoolExhausted, domain, ageMonths)
}

// ApplyResult folds a completed assessment into the child's cognitive
// profile and recomputes the composite plus strengths and growth areas
// (top and bottom tertile across attempted domains).
func ApplyResult(p *model.CognitiveProfile, domain model.CognitiveDomain, theta, percentile float64) {
	if p.Domains == nil {
		p.Domains = make(map[model.CognitiveDomain]model.DomainResult)
	}
	p.Domains[domain] = model.DomainResult{Score: theta, Percentile: percentile}

	var sum float64
	for _, r := range p.Domains {
		sum += r.Score
	}
	p.CompositeScore = sum / float64(len(p.Domains))
	p.CompositePercentile = irt.PercentileFromZ(p.CompositeScore)
	p.Strengths, p.GrowthAreas = tertiles(p.Domains)
	p.UpdatedAt = time.Now().UTC()
}

// tertiles splits attempted domains by percentile into the top and
// bottom thirds. Fewer than two attempted domains yields neither.
func tertiles(domains map[model.CognitiveDomain]model.DomainResult) (strengths, growth []model.CognitiveDomain) {
	if len(domains) < 2 {
		return nil, nil
	}

	ordered := make([]model.CognitiveDomain, 0, len(domains))
	for _, d := range model.CognitiveDomains() {
		if _, ok := domains[d]; ok {
			ordered = append(ordered, d)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return domains[ordered[i]].Percentile > domains[ordered[j]].Percentile
	})

	k := len(ordered) / 3
	if k < 1 {
		k = 1
	}
	strengths = append(strengths, ordered[:k]...)
	growth = append(growth, ordered[len(ordered)-k:]...)
	return strengths, growth
}

func itemParams(it model.TestItem) irt.Params {
	return irt.Params{
		Discrimination: it.Discrimination,
		Difficulty:     it.Difficulty,
		Guessing:       it.Guessing,
	}
}

func observations(history []model.AdministeredItem) []irt.Observation {
	obs := make([]irt.Observation, 0, len(history)+1)
	for _, h := range history {
		obs = append(obs, irt.Observation{Params: itemParams(h.Item), Correct: h.Correct})
	}
	return obs
}

// isCorrect compares a submitted response against the authored answer,
// order-insensitively for multi-select items.
func isCorrect(response, answer []string) bool {
	if len(response) != len(answer) || len(answer) == 0 {
		return false
	}
	want := make(map[string]int, len(answer))
	for _, a := range answer {
		want[a]++
	}
	for _, r := range response {
		if want[r] == 0 {
			return false
		}
		want[r]--
	}
	return true
}
