package model

import "time"

// ScenarioType groups behavioral scenarios for consistency scoring.
type ScenarioType string

// Scenario types shipped with the default content pack.
const (
	ScenarioSharing     ScenarioType = "sharing"
	ScenarioWaiting     ScenarioType = "waiting"
	ScenarioChallenge   ScenarioType = "challenge"
	ScenarioCooperation ScenarioType = "cooperation"
	ScenarioNovelty     ScenarioType = "novelty"
)

// ScenarioOption is one selectable branch of an authored scenario.
type ScenarioOption struct {
	ID              string                         `json:"id" yaml:"id"`
	Label           string                         `json:"label" yaml:"label"`
	Expected        bool                           `json:"expected,omitempty" yaml:"expected,omitempty"`
	DimensionDeltas map[EmotionalDimension]float64 `json:"dimension_deltas" yaml:"dimension_deltas"`
}

// Scenario is an authored behavioral scenario owned by the content
// store. Immutable reference data.
type Scenario struct {
	ID           string           `json:"id" yaml:"id"`
	Type         ScenarioType     `json:"type" yaml:"type"`
	Title        string           `json:"title" yaml:"title"`
	Description  string           `json:"description,omitempty" yaml:"description,omitempty"`
	MinAgeMonths int              `json:"min_age_months" yaml:"min_age_months"`
	MaxAgeMonths int              `json:"max_age_months" yaml:"max_age_months"`
	Options      []ScenarioOption `json:"options" yaml:"options"`
}

// ScenarioChoice is one recorded choice inside a behavioral session.
// DimensionDeltas are the authored per-dimension contributions of the
// selected option, each roughly in [-10,10].
type ScenarioChoice struct {
	ChoiceID        string                         `json:"choice_id"`
	SelectedOption  string                         `json:"selected_option"`
	ReactionTimeMS  int                            `json:"reaction_time_ms"`
	HesitationCount int                            `json:"hesitation_count"`
	Expected        bool                           `json:"expected"`
	DimensionDeltas map[EmotionalDimension]float64 `json:"dimension_deltas"`
}

// ScenarioSession is one completed (or abandoned) behavioral session.
// Only sessions that reached their terminal segment count toward the
// emotional profile.
type ScenarioSession struct {
	SessionID    string           `json:"session_id"`
	ChildID      string           `json:"child_id"`
	ScenarioID   string           `json:"scenario_id"`
	ScenarioType ScenarioType     `json:"scenario_type"`
	Choices      []ScenarioChoice `json:"choices"`
	Completed    bool             `json:"completed"`
	StartedAt    time.Time        `json:"started_at,omitzero"`
	CompletedAt  time.Time        `json:"completed_at,omitzero"`
}

// RunningStat accumulates Welford-style statistics for sessions sharing
// a scenario type; it backs the consistency index.
type RunningStat struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	M2    float64 `json:"m2"`
}

// Push folds one sample into the running statistic.
func (s *RunningStat) Push(x float64) {
	s.Count++
	delta := x - s.Mean
	s.Mean += delta / float64(s.Count)
	s.M2 += delta * (x - s.Mean)
}

// Variance returns the sample variance, or 0 with fewer than two samples.
func (s RunningStat) Variance() float64 {
	if s.Count < 2 {
		return 0
	}
	return s.M2 / float64(s.Count-1)
}

// SessionOutcome summarizes the aggregation of one session.
type SessionOutcome struct {
	SessionID       string                         `json:"session_id"`
	DimensionTotals map[EmotionalDimension]float64 `json:"dimension_totals"`
	EngagementScore float64                        `json:"engagement_score"`
	InstinctSample  float64                        `json:"instinct_sample"`
	Counted         bool                           `json:"counted"`
}
