// Package content serves the immutable reference data the engine runs
// on: calibrated test items, authored behavioral scenarios, archetype
// definitions, questionnaire cutoff tables and zip-level opportunity
// indices. The in-memory store ships with the embedded cutoff and
// archetype sets; items, scenarios and indices arrive via options or a
// YAML pack.
package content

import (
	"context"
	"fmt"
	"sync"

	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/model"
)

// nationalOpportunityIndex stands in for zip codes without real data.
const nationalOpportunityIndex = 0.5

// Store provides read access to all reference content.
type Store interface {
	// Item returns a single calibrated item by ID.
	Item(ctx context.Context, id string) (model.TestItem, error)

	// ItemsForDomain returns every item for a cognitive domain.
	ItemsForDomain(ctx context.Context, domain model.CognitiveDomain) ([]model.TestItem, error)

	// Cutoff resolves the cutoff row for an age and domain, rounding to
	// the nearest normed interval and breaking ties toward the younger
	// one. The second return is the interval actually used.
	Cutoff(ctx context.Context, ageMonths int, domain model.QuestionnaireDomain) (model.Cutoff, int, error)

	// Archetypes returns the archetype set in canonical order.
	Archetypes(ctx context.Context) ([]model.Archetype, error)

	// Scenario returns one authored behavioral scenario by ID.
	Scenario(ctx context.Context, id string) (model.Scenario, error)

	// Scenarios returns every authored scenario.
	Scenarios(ctx context.Context) ([]model.Scenario, error)

	// OpportunityIndex returns the opportunity index for a zip code and
	// whether real data backed it; unknown zips get a national estimate.
	OpportunityIndex(ctx context.Context, zipCode string) (float64, bool, error)
}

// MemoryStore is the in-memory Store implementation.
type MemoryStore struct {
	mu          sync.RWMutex
	items       map[string]model.TestItem
	byDomain    map[model.CognitiveDomain][]model.TestItem
	scenarios   map[string]model.Scenario
	scenarioIDs []string
	cutoffs     map[int]map[model.QuestionnaireDomain]model.Cutoff
	ages        []int
	archetypes  []model.Archetype
	opportunity map[string]float64
}

// NewMemoryStore builds a store preloaded with the embedded cutoff
// table and archetype set.
func NewMemoryStore(opts ...StoreOption) *MemoryStore {
	s := &MemoryStore{
		items:       make(map[string]model.TestItem),
		byDomain:    make(map[model.CognitiveDomain][]model.TestItem),
		scenarios:   make(map[string]model.Scenario),
		cutoffs:     defaultCutoffs,
		ages:        cutoffAges,
		archetypes:  defaultArchetypes,
		opportunity: make(map[string]float64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddItems registers calibrated items, replacing any with the same ID.
func (s *MemoryStore) AddItems(items ...model.TestItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range items {
		s.items[it.ID] = it
	}
	s.rebuildDomainIndex()
}

// AddScenarios registers authored scenarios.
func (s *MemoryStore) AddScenarios(scenarios ...model.Scenario) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sc := range scenarios {
		if _, seen := s.scenarios[sc.ID]; !seen {
			s.scenarioIDs = append(s.scenarioIDs, sc.ID)
		}
		s.scenarios[sc.ID] = sc
	}
}

// SetOpportunityIndex registers the opportunity index for a zip code.
func (s *MemoryStore) SetOpportunityIndex(zipCode string, index float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opportunity[zipCode] = index
}

func (s *MemoryStore) rebuildDomainIndex() {
	byDomain := make(map[model.CognitiveDomain][]model.TestItem)
	for _, it := range s.items {
		byDomain[it.Domain] = append(byDomain[it.Domain], it)
	}
	s.byDomain = byDomain
}

// Item implements Store.
func (s *MemoryStore) Item(_ context.Context, id string) (model.TestItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[id]
	if !ok {
		return model.TestItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return it, nil
}

// ItemsForDomain implements Store.
func (s *MemoryStore) ItemsForDomain(_ context.Context, domain model.CognitiveDomain) ([]model.TestItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := s.byDomain[domain]
	out := make([]model.TestItem, len(items))
	copy(out, items)
	return out, nil
}

// Cutoff implements Store.
func (s *MemoryStore) Cutoff(_ context.Context, ageMonths int, domain model.QuestionnaireDomain) (model.Cutoff, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	interval := nearestAge(s.ages, ageMonths)
	row, ok := s.cutoffs[interval]
	if !ok {
		return model.Cutoff{}, 0, fmt.Errorf("%w: age %d", ErrNoCutoffData, ageMonths)
	}
	cutoff, ok := row[domain]
	if !ok {
		return model.Cutoff{}, 0, fmt.Errorf("%w: %s at %d months", ErrNoCutoffData, domain, interval)
	}
	return cutoff, interval, nil
}

// Archetypes implements Store.
func (s *MemoryStore) Archetypes(_ context.Context) ([]model.Archetype, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Archetype, len(s.archetypes))
	copy(out, s.archetypes)
	return out, nil
}

// Scenario implements Store.
func (s *MemoryStore) Scenario(_ context.Context, id string) (model.Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, ok := s.scenarios[id]
	if !ok {
		return model.Scenario{}, fmt.Errorf("%w: %s", ErrScenarioNotFound, id)
	}
	return sc, nil
}

// Scenarios implements Store.
func (s *MemoryStore) Scenarios(_ context.Context) ([]model.Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Scenario, 0, len(s.scenarioIDs))
	for _, id := range s.scenarioIDs {
		out = append(out, s.scenarios[id])
	}
	return out, nil
}

// OpportunityIndex implements Store.
func (s *MemoryStore) OpportunityIndex(_ context.Context, zipCode string) (float64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.opportunity[zipCode]; ok {
		return v, true, nil
	}
	return nationalOpportunityIndex, false, nil
}

// nearestAge picks the closest normed interval, preferring the younger
// one when equidistant. Ages must be sorted ascending.
func nearestAge(ages []int, ageMonths int) int {
	best := ages[0]
	bestDist := abs(ageMonths - best)
	for _, a := range ages[1:] {
		if d := abs(ageMonths - a); d < bestDist {
			best = a
			bestDist = d
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
