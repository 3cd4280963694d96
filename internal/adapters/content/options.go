package content

import "github.com/carlosrios100/developmental-assessment-sub000/internal/domain/model"

// StoreOption applies a configuration option to the MemoryStore.
type StoreOption func(*MemoryStore)

// WithItems preloads calibrated test items.
func WithItems(items ...model.TestItem) StoreOption {
	return func(s *MemoryStore) {
		for _, it := range items {
			s.items[it.ID] = it
		}
		s.rebuildDomainIndex()
	}
}

// WithScenarios preloads authored behavioral scenarios.
func WithScenarios(scenarios ...model.Scenario) StoreOption {
	return func(s *MemoryStore) {
		for _, sc := range scenarios {
			if _, seen := s.scenarios[sc.ID]; !seen {
				s.scenarioIDs = append(s.scenarioIDs, sc.ID)
			}
			s.scenarios[sc.ID] = sc
		}
	}
}

// WithArchetypes replaces the embedded archetype set.
func WithArchetypes(archetypes []model.Archetype) StoreOption {
	return func(s *MemoryStore) {
		if len(archetypes) > 0 {
			s.archetypes = archetypes
		}
	}
}

// WithCutoffs replaces the embedded cutoff table. Ages must be sorted
// ascending.
func WithCutoffs(ages []int, cutoffs map[int]map[model.QuestionnaireDomain]model.Cutoff) StoreOption {
	return func(s *MemoryStore) {
		if len(ages) > 0 && len(cutoffs) > 0 {
			s.ages = ages
			s.cutoffs = cutoffs
		}
	}
}

// WithOpportunityIndices preloads zip-level opportunity indices.
func WithOpportunityIndices(indices map[string]float64) StoreOption {
	return func(s *MemoryStore) {
		for zip, v := range indices {
			s.opportunity[zip] = v
		}
	}
}
