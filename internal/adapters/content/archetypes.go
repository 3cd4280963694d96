package content

import "github.com/carlosrios100/developmental-assessment-sub000/internal/domain/model"

// defaultArchetypes is the shipped archetype reference set. Trait
// weights span the cognitive domains (math, logic, verbal, spatial,
// memory) and emotional dimensions; matching normalizes by the total
// weight, so only relative magnitudes matter. Order here is the
// canonical tie-break order for equal match scores.
var defaultArchetypes = []model.Archetype{
	{
		Type:        model.ArchetypeDiplomat,
		Name:        "The Diplomat",
		Description: "Reads people and situations, bridges differences with language and empathy.",
		TraitWeights: map[string]float64{
			"verbal":               0.9,
			"empathy":              0.9,
			"cooperation":          0.8,
			"emotional_regulation": 0.7,
		},
		Strengths:   []string{"communication", "perspective taking", "conflict resolution"},
		GrowthAreas: []string{"decisiveness", "comfort with disagreement"},
	},
	{
		Type:        model.ArchetypeSystemsArchitect,
		Name:        "The Systems Architect",
		Description: "Sees structures and dependencies, plans several steps ahead.",
		TraitWeights: map[string]float64{
			"logic":                 0.9,
			"spatial":               0.8,
			"math":                  0.7,
			"delayed_gratification": 0.7,
		},
		Strengths:   []string{"planning", "abstraction", "pattern recognition"},
		GrowthAreas: []string{"flexibility", "collaborative play"},
	},
	{
		Type:        model.ArchetypeOperator,
		Name:        "The Operator",
		Description: "Executes reliably under pressure and keeps a team moving.",
		TraitWeights: map[string]float64{
			"logic":                 0.6,
			"cooperation":           0.8,
			"delayed_gratification": 0.8,
			"failure_resilience":    0.7,
		},
		Strengths:   []string{"follow-through", "teamwork", "persistence"},
		GrowthAreas: []string{"initiating new ideas"},
	},
	{
		Type:        model.ArchetypeCaregiver,
		Name:        "The Caregiver",
		Description: "Notices needs early and responds with patience and warmth.",
		TraitWeights: map[string]float64{
			"empathy":               0.9,
			"cooperation":           0.7,
			"emotional_regulation":  0.8,
			"delayed_gratification": 0.6,
		},
		Strengths:   []string{"nurturing", "patience", "emotional attunement"},
		GrowthAreas: []string{"self-advocacy", "boundary setting"},
	},
	{
		Type:        model.ArchetypeCreator,
		Name:        "The Creator",
		Description: "Generates original ideas and expresses them across media.",
		TraitWeights: map[string]float64{
			"spatial":        0.8,
			"verbal":         0.7,
			"risk_tolerance": 0.7,
			"empathy":        0.5,
		},
		Strengths:   []string{"imagination", "expression", "aesthetic sense"},
		GrowthAreas: []string{"finishing projects", "working within constraints"},
	},
	{
		Type:        model.ArchetypeAnalyst,
		Name:        "The Analyst",
		Description: "Breaks problems into parts and reasons carefully from evidence.",
		TraitWeights: map[string]float64{
			"math":                  0.9,
			"logic":                 0.9,
			"memory":                0.7,
			"delayed_gratification": 0.6,
		},
		Strengths:   []string{"quantitative reasoning", "attention to detail", "skepticism"},
		GrowthAreas: []string{"tolerating ambiguity", "social spontaneity"},
	},
	{
		Type:        model.ArchetypeBuilder,
		Name:        "The Builder",
		Description: "Turns plans into tangible results, learning from every failed attempt.",
		TraitWeights: map[string]float64{
			"spatial":               0.9,
			"logic":                 0.6,
			"delayed_gratification": 0.7,
			"failure_resilience":    0.8,
		},
		Strengths:   []string{"hands-on skill", "iteration", "grit"},
		GrowthAreas: []string{"verbal expression", "asking for help"},
	},
	{
		Type:        model.ArchetypeExplorer,
		Name:        "The Explorer",
		Description: "Seeks out the unfamiliar and thrives on new challenges.",
		TraitWeights: map[string]float64{
			"spatial":            0.7,
			"risk_tolerance":     0.9,
			"failure_resilience": 0.7,
			"memory":             0.5,
		},
		Strengths:   []string{"curiosity", "adaptability", "courage"},
		GrowthAreas: []string{"sustained focus", "routine tolerance"},
	},
	{
		Type:        model.ArchetypeConnector,
		Name:        "The Connector",
		Description: "Builds networks of friends and brings people together.",
		TraitWeights: map[string]float64{
			"verbal":         0.8,
			"empathy":        0.8,
			"cooperation":    0.9,
			"risk_tolerance": 0.5,
		},
		Strengths:   []string{"social fluency", "inclusion", "enthusiasm"},
		GrowthAreas: []string{"independent work", "depth over breadth"},
	},
	{
		Type:        model.ArchetypeGuardian,
		Name:        "The Guardian",
		Description: "Protects others and upholds fairness and rules.",
		TraitWeights: map[string]float64{
			"logic":                0.6,
			"memory":               0.6,
			"empathy":              0.7,
			"emotional_regulation": 0.8,
			"failure_resilience":   0.7,
		},
		Strengths:   []string{"reliability", "fairness", "composure"},
		GrowthAreas: []string{"risk taking", "improvisation"},
	},
}
