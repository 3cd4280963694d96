// Package model contains domain models passed between layers.
package model

import "time"

// CognitiveDomain identifies one adaptively tested cognitive area.
type CognitiveDomain string

// Cognitive domains covered by the adaptive tester.
const (
	DomainMath    CognitiveDomain = "math"
	DomainLogic   CognitiveDomain = "logic"
	DomainVerbal  CognitiveDomain = "verbal"
	DomainSpatial CognitiveDomain = "spatial"
	DomainMemory  CognitiveDomain = "memory"
)

// CognitiveDomains lists all domains in canonical order.
func CognitiveDomains() []CognitiveDomain {
	return []CognitiveDomain{DomainMath, DomainLogic, DomainVerbal, DomainSpatial, DomainMemory}
}

// ValidCognitiveDomain reports whether d names a known domain.
func ValidCognitiveDomain(d CognitiveDomain) bool {
	switch d {
	case DomainMath, DomainLogic, DomainVerbal, DomainSpatial, DomainMemory:
		return true
	}
	return false
}

// QuestionnaireDomain identifies one fixed-form questionnaire area.
type QuestionnaireDomain string

// Questionnaire domains, six items each.
const (
	QDomainCommunication  QuestionnaireDomain = "communication"
	QDomainGrossMotor     QuestionnaireDomain = "gross_motor"
	QDomainFineMotor      QuestionnaireDomain = "fine_motor"
	QDomainProblemSolving QuestionnaireDomain = "problem_solving"
	QDomainPersonalSocial QuestionnaireDomain = "personal_social"
)

// QuestionnaireDomains lists all questionnaire domains in canonical order.
func QuestionnaireDomains() []QuestionnaireDomain {
	return []QuestionnaireDomain{
		QDomainCommunication, QDomainGrossMotor, QDomainFineMotor,
		QDomainProblemSolving, QDomainPersonalSocial,
	}
}

// EmotionalDimension identifies one behavioral scoring dimension.
type EmotionalDimension string

// Emotional dimensions tracked by the behavioral aggregator.
const (
	DimEmpathy              EmotionalDimension = "empathy"
	DimRiskTolerance        EmotionalDimension = "risk_tolerance"
	DimDelayedGratification EmotionalDimension = "delayed_gratification"
	DimCooperation          EmotionalDimension = "cooperation"
	DimFailureResilience    EmotionalDimension = "failure_resilience"
	DimEmotionalRegulation  EmotionalDimension = "emotional_regulation"
)

// EmotionalDimensions lists all dimensions in canonical order.
func EmotionalDimensions() []EmotionalDimension {
	return []EmotionalDimension{
		DimEmpathy, DimRiskTolerance, DimDelayedGratification,
		DimCooperation, DimFailureResilience, DimEmotionalRegulation,
	}
}

// ItemContent is the presentation payload of a test item. The engine only
// inspects CorrectAnswer; everything else passes through to the caller.
type ItemContent struct {
	Type          string   `json:"type" yaml:"type"`
	Prompt        string   `json:"prompt" yaml:"prompt"`
	Options       []string `json:"options,omitempty" yaml:"options,omitempty"`
	CorrectAnswer []string `json:"correct_answer" yaml:"correct_answer"`
	Images        []string `json:"images,omitempty" yaml:"images,omitempty"`
}

// TestItem is a calibrated adaptive test item with 3PL parameters.
// Items are immutable reference data owned by the content store.
type TestItem struct {
	ID             string          `json:"id" yaml:"id"`
	Domain         CognitiveDomain `json:"domain" yaml:"domain"`
	Difficulty     float64         `json:"difficulty" yaml:"difficulty"`         // b, [-3,3]
	Discrimination float64         `json:"discrimination" yaml:"discrimination"` // a, [0.5,2.5]
	Guessing       float64         `json:"guessing" yaml:"guessing"`             // c, [0,0.5]
	MinAgeMonths   int             `json:"min_age_months" yaml:"min_age_months"`
	MaxAgeMonths   int             `json:"max_age_months" yaml:"max_age_months"`
	Content        ItemContent     `json:"content" yaml:"content"`
}

// AgeEligible reports whether the item applies at the given age.
func (it TestItem) AgeEligible(ageMonths int) bool {
	return it.MinAgeMonths <= ageMonths && ageMonths <= it.MaxAgeMonths
}

// AssessmentStatus tracks the adaptive test state machine.
type AssessmentStatus string

// Adaptive test states.
const (
	StatusNotStarted AssessmentStatus = "not_started"
	StatusInProgress AssessmentStatus = "in_progress"
	StatusCompleted  AssessmentStatus = "completed"
	StatusAbandoned  AssessmentStatus = "abandoned"
)

// StoppingReason records why an adaptive test ended.
type StoppingReason string

// Stopping reasons for a completed or abandoned adaptive test.
const (
	StopTargetSE          StoppingReason = "target_se"
	StopMaxItems          StoppingReason = "max_items"
	StopItemPoolExhausted StoppingReason = "item_pool_exhausted"
	StopCancelled         StoppingReason = "cancelled"
)

// AdministeredItem is one (item, response, correctness) tuple in an
// adaptive test's ordered history.
type AdministeredItem struct {
	Item           TestItem `json:"item"`
	Response       []string `json:"response"`
	Correct        bool     `json:"correct"`
	ReactionTimeMS int      `json:"reaction_time_ms"`
	ThetaAfter     float64  `json:"theta_after"`
	SEAfter        float64  `json:"se_after"`
}

// CognitiveAssessment is one adaptive test session for a (child, domain).
type CognitiveAssessment struct {
	ID                string             `json:"id"`
	ChildID           string             `json:"child_id"`
	Domain            CognitiveDomain    `json:"domain"`
	AgeMonths         int                `json:"age_months"`
	Theta             float64            `json:"theta"`
	StandardError     float64            `json:"standard_error"`
	ItemsAdministered int                `json:"items_administered"`
	History           []AdministeredItem `json:"history,omitempty"`
	Status            AssessmentStatus   `json:"status"`
	StoppingReason    StoppingReason     `json:"stopping_reason,omitempty"`
	RawScore          float64            `json:"raw_score,omitempty"`
	Percentile        float64            `json:"percentile,omitempty"`
	StartedAt         time.Time          `json:"started_at"`
	CompletedAt       time.Time          `json:"completed_at,omitzero"`
}

// AdministeredIDs returns the set of item IDs already used in this session.
func (a CognitiveAssessment) AdministeredIDs() map[string]bool {
	ids := make(map[string]bool, len(a.History))
	for _, h := range a.History {
		ids[h.Item.ID] = true
	}
	return ids
}

// DomainResult is one domain's entry in a cognitive profile.
type DomainResult struct {
	Score      float64 `json:"score"` // theta scale, [-3,3]
	Percentile float64 `json:"percentile"`
}

// CognitiveProfile aggregates per-domain adaptive test outcomes for a child.
type CognitiveProfile struct {
	ChildID             string                           `json:"child_id"`
	Domains             map[CognitiveDomain]DomainResult `json:"domains"`
	CompositeScore      float64                          `json:"composite_score"`
	CompositePercentile float64                          `json:"composite_percentile"`
	Strengths           []CognitiveDomain                `json:"strengths"`
	GrowthAreas         []CognitiveDomain                `json:"growth_areas"`
	Version             int64                            `json:"version"`
	UpdatedAt           time.Time                        `json:"updated_at"`
}

// EmotionalProfile aggregates behavioral scenario outcomes for a child.
type EmotionalProfile struct {
	ChildID           string                         `json:"child_id"`
	Dimensions        map[EmotionalDimension]float64 `json:"dimensions"`
	CompositeEQ       float64                        `json:"composite_eq"`
	InstinctIndex     float64                        `json:"instinct_index"`
	ConsistencyIndex  float64                        `json:"consistency_index"`
	EngagementAvg     float64                        `json:"engagement_avg"`
	SessionsCompleted int                            `json:"sessions_completed"`
	TypeStats         map[ScenarioType]RunningStat   `json:"type_stats,omitempty"`
	Version           int64                          `json:"version"`
	UpdatedAt         time.Time                      `json:"updated_at"`
}

// ContextMultiplier holds the socio-economic adversity adjustment for a child.
type ContextMultiplier struct {
	ChildID             string    `json:"child_id"`
	OpportunityIndex    float64   `json:"opportunity_index"` // [0,1]
	SocioEconStatus     float64   `json:"socio_econ_status"` // [0,1]
	GapScore            float64   `json:"gap_score"`
	AdversityMultiplier float64   `json:"adversity_multiplier"` // [1.0,1.5]
	DataCompleteness    float64   `json:"data_completeness"`    // [0,1]
	CalculatedAt        time.Time `json:"calculated_at"`
}

// ConsentFlags carries the caller-supplied per-category consent state.
// The engine never reads context data without the matching flag set.
type ConsentFlags struct {
	SocioEconomic bool `json:"socio_economic"`
	Location      bool `json:"location"`
}

// RecalcJob asks the background workers to regenerate a child's
// composite assessment from the current profiles.
type RecalcJob struct {
	JobID          string       `json:"job_id"`
	ChildID        string       `json:"child_id"`
	IncludeContext bool         `json:"include_context"`
	Consent        ConsentFlags `json:"consent"`
	EnqueuedAt     time.Time    `json:"enqueued_at,omitzero"`
}

// FamilyContext is the optional caller-consented household context used
// to derive socio-economic status.
type FamilyContext struct {
	ChildID                string   `json:"child_id"`
	ZipCode                string   `json:"zip_code,omitempty"`
	HouseholdSize          int      `json:"household_size,omitempty"`
	ParentEducationLevel   string   `json:"parent_education_level,omitempty"`
	HouseholdIncomeBracket string   `json:"household_income_bracket,omitempty"`
	SingleParent           *bool    `json:"single_parent,omitempty"`
	LanguagesSpoken        int      `json:"languages_spoken,omitempty"`
	ReceivesAssistance     *bool    `json:"receives_assistance,omitempty"`
	ChildcareType          string   `json:"childcare_type,omitempty"`
	ScreenTimeHoursDaily   *float64 `json:"screen_time_hours_daily,omitempty"`
	BooksInHome            *int     `json:"books_in_home,omitempty"`
}

// ArchetypeType identifies one predefined trait-vector profile.
type ArchetypeType string

// Archetypes shipped as reference content.
const (
	ArchetypeDiplomat         ArchetypeType = "diplomat"
	ArchetypeSystemsArchitect ArchetypeType = "systems_architect"
	ArchetypeOperator         ArchetypeType = "operator"
	ArchetypeCaregiver        ArchetypeType = "caregiver"
	ArchetypeCreator          ArchetypeType = "creator"
	ArchetypeAnalyst          ArchetypeType = "analyst"
	ArchetypeBuilder          ArchetypeType = "builder"
	ArchetypeExplorer         ArchetypeType = "explorer"
	ArchetypeConnector        ArchetypeType = "connector"
	ArchetypeGuardian         ArchetypeType = "guardian"
)

// Archetype is a static reference entity with trait weights over the
// union of cognitive domains and emotional dimensions, each in [-1,1].
type Archetype struct {
	Type         ArchetypeType      `json:"type" yaml:"type"`
	Name         string             `json:"name" yaml:"name"`
	Description  string             `json:"description" yaml:"description"`
	TraitWeights map[string]float64 `json:"trait_weights" yaml:"trait_weights"`
	Strengths    []string           `json:"strengths,omitempty" yaml:"strengths,omitempty"`
	GrowthAreas  []string           `json:"growth_areas,omitempty" yaml:"growth_areas,omitempty"`
}

// ArchetypeMatch is one ranked archetype similarity result.
type ArchetypeMatch struct {
	Type           ArchetypeType      `json:"archetype_type"`
	MatchScore     float64            `json:"match_score"` // [0,100]
	MatchRank      int                `json:"match_rank"`  // 1..N
	TraitBreakdown map[string]float64 `json:"trait_breakdown,omitempty"`
}

// GapPriority orders gap analysis entries by urgency.
type GapPriority string

// Gap priorities, most urgent first.
const (
	PriorityCritical GapPriority = "critical"
	PriorityHigh     GapPriority = "high"
	PriorityMedium   GapPriority = "medium"
	PriorityLow      GapPriority = "low"
)

// GapEntry is one trait shortfall relative to the top archetype or a
// developmental benchmark.
type GapEntry struct {
	Trait            string        `json:"trait"`
	Description      string        `json:"description,omitempty"`
	CurrentLevel     float64       `json:"current_level"`
	TargetLevel      float64       `json:"target_level"`
	Priority         GapPriority   `json:"priority"`
	EstimatedEffort  string        `json:"estimated_effort"`
	RelatedArchetype ArchetypeType `json:"related_archetype,omitempty"`
}

// MosaicAssessment is the versioned composite output. Immutable once
// calculated; a recalculation produces a new version.
type MosaicAssessment struct {
	ID                      string           `json:"id"`
	ChildID                 string           `json:"child_id"`
	RawCognitiveScore       float64          `json:"raw_cognitive_score"`
	RawEmotionalScore       float64          `json:"raw_emotional_score"`
	RawCombinedScore        float64          `json:"raw_combined_score"`
	AdversityMultiplier     float64          `json:"adversity_multiplier"`
	TruePotentialScore      float64          `json:"true_potential_score"`
	TruePotentialPercentile float64          `json:"true_potential_percentile"`
	ConfidenceLevel         float64          `json:"confidence_level"`
	PrimaryArchetype        ArchetypeType    `json:"primary_archetype,omitempty"`
	SecondaryArchetype      ArchetypeType    `json:"secondary_archetype,omitempty"`
	Matches                 []ArchetypeMatch `json:"matches,omitempty"`
	Gaps                    []GapEntry       `json:"gaps,omitempty"`
	Version                 int              `json:"version"`
	CalculatedAt            time.Time        `json:"calculated_at"`
}
