package model

import "time"

// ResponseValue is one of the three discrete questionnaire answers.
type ResponseValue string

// Questionnaire answer values and their score contributions.
const (
	ResponseYes       ResponseValue = "yes"       // 10 points
	ResponseSometimes ResponseValue = "sometimes" // 5 points
	ResponseNotYet    ResponseValue = "not_yet"   // 0 points
)

// Points maps the discrete answer onto its score contribution.
func (v ResponseValue) Points() (int, bool) {
	switch v {
	case ResponseYes:
		return 10, true
	case ResponseSometimes:
		return 5, true
	case ResponseNotYet:
		return 0, true
	}
	return 0, false
}

// QuestionnaireResponse is one answered fixed-form item.
type QuestionnaireResponse struct {
	ItemID   string              `json:"item_id"`
	Domain   QuestionnaireDomain `json:"domain"`
	Response ResponseValue       `json:"response"`
}

// RiskLevel classifies developmental risk, least severe first.
type RiskLevel string

// Risk levels in increasing severity.
const (
	RiskTypical    RiskLevel = "typical"
	RiskMonitoring RiskLevel = "monitoring"
	RiskAtRisk     RiskLevel = "at_risk"
	RiskConcern    RiskLevel = "concern"
)

// Severity returns an ordinal for comparing risk levels.
func (r RiskLevel) Severity() int {
	switch r {
	case RiskMonitoring:
		return 1
	case RiskAtRisk:
		return 2
	case RiskConcern:
		return 3
	default:
		return 0
	}
}

// Cutoff holds the age- and domain-specific thresholds and the reference
// population parameters for percentile conversion.
// Invariant: AtRisk < Monitoring <= 60.
type Cutoff struct {
	AtRisk     float64 `json:"at_risk" yaml:"at_risk"`
	Monitoring float64 `json:"monitoring" yaml:"monitoring"`
	Mean       float64 `json:"mean" yaml:"mean"`
	SD         float64 `json:"sd" yaml:"sd"`
}

// DomainScore is one questionnaire domain's scored result.
type DomainScore struct {
	Domain           QuestionnaireDomain `json:"domain"`
	RawScore         int                 `json:"raw_score"` // [0,60]
	MaxScore         int                 `json:"max_score"`
	Percentile       float64             `json:"percentile"`
	ZScore           float64             `json:"z_score"`
	RiskLevel        RiskLevel           `json:"risk_level"`
	CutoffScore      float64             `json:"cutoff_score"`
	MonitoringCutoff float64             `json:"monitoring_cutoff"`
}

// Recommendation is a follow-up suggestion attached to a scored domain.
type Recommendation struct {
	Domain      QuestionnaireDomain `json:"domain"`
	Priority    string              `json:"priority"`
	Kind        string              `json:"kind"` // referral | monitoring
	Title       string              `json:"title"`
	Description string              `json:"description"`
}

// QuestionnaireResult is the full outcome of scoring one assessment.
type QuestionnaireResult struct {
	ChildID         string           `json:"child_id"`
	AgeMonths       int              `json:"age_months"`
	AgeIntervalUsed int              `json:"age_interval_used"`
	DomainScores    []DomainScore    `json:"domain_scores"`
	OverallRisk     RiskLevel        `json:"overall_risk"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	ScoredAt        time.Time        `json:"scored_at"`
}
