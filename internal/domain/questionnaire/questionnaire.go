// Package questionnaire scores completed fixed-form developmental
// questionnaires (30 items, six per domain) against age-specific cutoff
// tables. Scoring is a pure function of the responses and the table:
// identical inputs always classify identically.
package questionnaire

import (
	"context"
	"fmt"
	"time"

	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/irt"
	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/model"
	"github.com/carlosrios100/developmental-assessment-sub000/pkg/metrics"
)

// Questionnaire shape constants.
const (
	ItemsPerDomain = 6
	TotalItems     = 30
	MaxDomainScore = 60
	MaxAgeMonths   = 72
)

// CutoffTable resolves the cutoff row for an (age, domain) pair. When no
// exact age interval exists, implementations round to the nearest defined
// interval, breaking ties toward the younger one, and report the interval
// actually used.
type CutoffTable interface {
	Cutoff(ctx context.Context, ageMonths int, domain model.QuestionnaireDomain) (model.Cutoff, int, error)
}

// Score sums each domain, classifies it against the age-specific cutoffs,
// and derives the overall risk as the most severe domain classification,
// with two or more monitoring-zone domains escalating to at_risk.
func Score(ctx context.Context, table CutoffTable, childID string, ageMonths int, responses []model.QuestionnaireResponse) (model.QuestionnaireResult, error) {
	if err := validate(ageMonths, responses); err != nil {
		return model.QuestionnaireResult{}, err
	}

	totals := make(map[model.QuestionnaireDomain]int, len(model.QuestionnaireDomains()))
	for _, r := range responses {
		points, _ := r.Response.Points()
		totals[r.Domain] += points
	}

	result := model.QuestionnaireResult{
		ChildID:   childID,
		AgeMonths: ageMonths,
		ScoredAt:  time.Now().UTC(),
	}

	concernCount, monitoringCount := 0, 0
	for _, domain := range model.QuestionnaireDomains() {
		cutoff, interval, err := table.Cutoff(ctx, ageMonths, domain)
		if err != nil {
			return model.QuestionnaireResult{}, fmt.Errorf("cutoff lookup for %s: %w", domain, err)
		}
		result.AgeIntervalUsed = interval

		raw := totals[domain]
		risk := classify(float64(raw), cutoff)
		switch risk {
		case model.RiskConcern:
			concernCount++
		case model.RiskMonitoring:
			monitoringCount++
		}

		z := 0.0
		if cutoff.SD > 0 {
			z = (float64(raw) - cutoff.Mean) / cutoff.SD
		}
		result.DomainScores = append(result.DomainScores, model.DomainScore{
			Domain:           domain,
			RawScore:         raw,
			MaxScore:         MaxDomainScore,
			Percentile:       irt.PercentileFromZ(z),
			ZScore:           z,
			RiskLevel:        risk,
			CutoffScore:      cutoff.AtRisk,
			MonitoringCutoff: cutoff.Monitoring,
		})
	}

	switch {
	case concernCount > 0:
		result.OverallRisk = model.RiskConcern
	case monitoringCount >= 2:
		result.OverallRisk = model.RiskAtRisk
	case monitoringCount == 1:
		result.OverallRisk = model.RiskMonitoring
	default:
		result.OverallRisk = model.RiskTypical
	}

	result.Recommendations = recommendations(result.DomainScores)
	metrics.RecordQuestionnaireScored(string(result.OverallRisk))
	return result, nil
}

// classify places one domain score relative to the age cutoffs.
func classify(score float64, c model.Cutoff) model.RiskLevel {
	switch {
	case score < c.AtRisk:
		return model.RiskConcern
	case score < c.Monitoring:
		return model.RiskMonitoring
	default:
		return model.RiskTypical
	}
}

func validate(ageMonths int, responses []model.QuestionnaireResponse) error {
	if ageMonths < 0 || ageMonths > MaxAgeMonths {
		return fmt.Errorf("%w: %d months", ErrInvalidAge, ageMonths)
	}
	if len(responses) != TotalItems {
		return fmt.Errorf("%w: got %d responses, want %d", ErrIncompleteResponseSet, len(responses), TotalItems)
	}

	perDomain := make(map[model.QuestionnaireDomain]int)
	for _, r := range responses {
		if _, ok := r.Response.Points(); !ok {
			return fmt.Errorf("%w: item %s response %q", ErrInvalidResponse, r.ItemID, r.Response)
		}
		perDomain[r.Domain]++
	}
	for _, domain := range model.QuestionnaireDomains() {
		if perDomain[domain] != ItemsPerDomain {
			return fmt.Errorf("%w: domain %s has %d responses, want %d",
				ErrIncompleteResponseSet, domain, perDomain[domain], ItemsPerDomain)
		}
	}
	return nil
}

// recommendations emits a follow-up per flagged domain.
func recommendations(scores []model.DomainScore) []model.Recommendation {
	var recs []model.Recommendation
	for _, s := range scores {
		switch s.RiskLevel {
		case model.RiskConcern:
			recs = append(recs, model.Recommendation{
				Domain:   s.Domain,
				Priority: "high",
				Kind:     "referral",
				Title:    fmt.Sprintf("Further evaluation recommended for %s", s.Domain),
				Description: fmt.Sprintf("Score of %d is below the cutoff of %.2f. Professional evaluation is recommended.",
					s.RawScore, s.CutoffScore),
			})
		case model.RiskMonitoring:
			recs = append(recs, model.Recommendation{
				Domain:   s.Domain,
				Priority: "medium",
				Kind:     "monitoring",
				Title:    fmt.Sprintf("Monitor %s development", s.Domain),
				Description: fmt.Sprintf("Score of %d is in the monitoring zone. Continue suggested activities and reassess in 2-3 months.",
					s.RawScore),
			})
		}
	}
	return recs
}
