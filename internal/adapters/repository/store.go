// Package repository persists the engine's mutable state: adaptive
// assessment sessions, the versioned cognitive and emotional profiles,
// behavioral sessions, family context, context multipliers and the
// mosaic assessment history. Profile writes use optimistic versioning;
// a stale write returns ErrVersionConflict and the caller re-reads.
package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/model"
	"github.com/carlosrios100/developmental-assessment-sub000/pkg/metrics"
)

// Stats summarizes store contents for the stats endpoint.
type Stats struct {
	Children    int `json:"children"`
	Assessments int `json:"assessments"`
	Sessions    int `json:"sessions"`
	Mosaics     int `json:"mosaics"`
}

// Store provides read/write access to assessment state.
type Store interface {
	// SaveAssessment upserts an adaptive test session by ID.
	SaveAssessment(ctx context.Context, a model.CognitiveAssessment) error

	// Assessment returns one adaptive test session.
	// Returns ErrNotFound when the ID is unknown.
	Assessment(ctx context.Context, id string) (model.CognitiveAssessment, error)

	// CognitiveProfile returns the child's cognitive profile.
	CognitiveProfile(ctx context.Context, childID string) (model.CognitiveProfile, error)

	// SaveCognitiveProfile writes the profile if its Version still
	// matches the stored one, then bumps the version. Returns the
	// stored profile or ErrVersionConflict.
	SaveCognitiveProfile(ctx context.Context, p model.CognitiveProfile) (model.CognitiveProfile, error)

	// EmotionalProfile returns the child's emotional profile.
	EmotionalProfile(ctx context.Context, childID string) (model.EmotionalProfile, error)

	// SaveEmotionalProfile is the emotional counterpart of
	// SaveCognitiveProfile.
	SaveEmotionalProfile(ctx context.Context, p model.EmotionalProfile) (model.EmotionalProfile, error)

	// SaveSession records one behavioral session exactly once.
	// Returns ErrDuplicateSession on a replayed session ID.
	SaveSession(ctx context.Context, s model.ScenarioSession) error

	// SaveFamilyContext upserts the child's family context.
	SaveFamilyContext(ctx context.Context, fc model.FamilyContext) error

	// FamilyContext returns the child's family context.
	FamilyContext(ctx context.Context, childID string) (model.FamilyContext, error)

	// DeleteFamilyContext removes the family context and any derived
	// multiplier.
	DeleteFamilyContext(ctx context.Context, childID string) error

	// SaveContextMultiplier upserts the derived multiplier.
	SaveContextMultiplier(ctx context.Context, m model.ContextMultiplier) error

	// ContextMultiplier returns the child's derived multiplier.
	ContextMultiplier(ctx context.Context, childID string) (model.ContextMultiplier, error)

	// SaveMosaic appends one immutable composite assessment.
	SaveMosaic(ctx context.Context, a model.MosaicAssessment) error

	// LatestMosaic returns the newest composite for a child.
	LatestMosaic(ctx context.Context, childID string) (model.MosaicAssessment, error)

	// MosaicHistory returns every composite for a child, newest first.
	MosaicHistory(ctx context.Context, childID string) ([]model.MosaicAssessment, error)

	// NextMosaicVersion allocates the next version number for a child.
	NextMosaicVersion(ctx context.Context, childID string) (int, error)

	// Counts reports aggregate store statistics.
	Counts(ctx context.Context) (Stats, error)

	// Close releases underlying resources.
	Close() error
}

// MemoryStore is the in-memory Store implementation used in tests and
// single-node deployments without persistence.
type MemoryStore struct {
	mu          sync.RWMutex
	assessments map[string]model.CognitiveAssessment
	cognitive   map[string]model.CognitiveProfile
	emotional   map[string]model.EmotionalProfile
	sessions    map[string]model.ScenarioSession
	contexts    map[string]model.FamilyContext
	multipliers map[string]model.ContextMultiplier
	mosaics     map[string][]model.MosaicAssessment
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		assessments: make(map[string]model.CognitiveAssessment),
		cognitive:   make(map[string]model.CognitiveProfile),
		emotional:   make(map[string]model.EmotionalProfile),
		sessions:    make(map[string]model.ScenarioSession),
		contexts:    make(map[string]model.FamilyContext),
		multipliers: make(map[string]model.ContextMultiplier),
		mosaics:     make(map[string][]model.MosaicAssessment),
	}
}

// SaveAssessment implements Store.
func (s *MemoryStore) SaveAssessment(_ context.Context, a model.CognitiveAssessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assessments[a.ID] = a
	return nil
}

// Assessment implements Store.
func (s *MemoryStore) Assessment(_ context.Context, id string) (model.CognitiveAssessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assessments[id]
	if !ok {
		return model.CognitiveAssessment{}, ErrNotFound
	}
	return a, nil
}

// CognitiveProfile implements Store.
func (s *MemoryStore) CognitiveProfile(_ context.Context, childID string) (model.CognitiveProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.cognitive[childID]
	if !ok {
		return model.CognitiveProfile{}, ErrNotFound
	}
	return p, nil
}

// SaveCognitiveProfile implements Store.
func (s *MemoryStore) SaveCognitiveProfile(_ context.Context, p model.CognitiveProfile) (model.CognitiveProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, exists := s.cognitive[p.ChildID]
	if (exists && stored.Version != p.Version) || (!exists && p.Version != 0) {
		metrics.RecordStoreConflict("cognitive_profile")
		return model.CognitiveProfile{}, ErrVersionConflict
	}
	p.Version++
	s.cognitive[p.ChildID] = p
	return p, nil
}

// EmotionalProfile implements Store.
func (s *MemoryStore) EmotionalProfile(_ context.Context, childID string) (model.EmotionalProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.emotional[childID]
	if !ok {
		return model.EmotionalProfile{}, ErrNotFound
	}
	return p, nil
}

// SaveEmotionalProfile implements Store.
func (s *MemoryStore) SaveEmotionalProfile(_ context.Context, p model.EmotionalProfile) (model.EmotionalProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, exists := s.emotional[p.ChildID]
	if (exists && stored.Version != p.Version) || (!exists && p.Version != 0) {
		metrics.RecordStoreConflict("emotional_profile")
		return model.EmotionalProfile{}, ErrVersionConflict
	}
	p.Version++
	s.emotional[p.ChildID] = p
	return p, nil
}

// SaveSession implements Store.
func (s *MemoryStore) SaveSession(_ context.Context, session model.ScenarioSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.sessions[session.SessionID]; seen {
		return ErrDuplicateSession
	}
	s.sessions[session.SessionID] = session
	return nil
}

// SaveFamilyContext implements Store.
func (s *MemoryStore) SaveFamilyContext(_ context.Context, fc model.FamilyContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contexts[fc.ChildID] = fc
	return nil
}

// FamilyContext implements Store.
func (s *MemoryStore) FamilyContext(_ context.Context, childID string) (model.FamilyContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fc, ok := s.contexts[childID]
	if !ok {
		return model.FamilyContext{}, ErrNotFound
	}
	return fc, nil
}

// DeleteFamilyContext implements Store.
func (s *MemoryStore) DeleteFamilyContext(_ context.Context, childID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.contexts, childID)
	delete(s.multipliers, childID)
	return nil
}

// SaveContextMultiplier implements Store.
func (s *MemoryStore) SaveContextMultiplier(_ context.Context, m model.ContextMultiplier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.multipliers[m.ChildID] = m
	return nil
}

// ContextMultiplier implements Store.
func (s *MemoryStore) ContextMultiplier(_ context.Context, childID string) (model.ContextMultiplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.multipliers[childID]
	if !ok {
		return model.ContextMultiplier{}, ErrNotFound
	}
	return m, nil
}

// SaveMosaic implements Store. A version already present in the
// child's history means a concurrent generation won the race.
func (s *MemoryStore) SaveMosaic(_ context.Context, a model.MosaicAssessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, prior := range s.mosaics[a.ChildID] {
		if prior.Version == a.Version {
			metrics.RecordStoreConflict("mosaic")
			return ErrVersionConflict
		}
	}
	s.mosaics[a.ChildID] = append(s.mosaics[a.ChildID], a)
	return nil
}

// LatestMosaic implements Store.
func (s *MemoryStore) LatestMosaic(_ context.Context, childID string) (model.MosaicAssessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := s.mosaics[childID]
	if len(history) == 0 {
		return model.MosaicAssessment{}, ErrNotFound
	}
	best := history[0]
	for _, a := range history[1:] {
		if a.Version > best.Version {
			best = a
		}
	}
	return best, nil
}

// MosaicHistory implements Store.
func (s *MemoryStore) MosaicHistory(_ context.Context, childID string) ([]model.MosaicAssessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := s.mosaics[childID]
	out := make([]model.MosaicAssessment, len(history))
	copy(out, history)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Version > out[j].Version })
	return out, nil
}

// NextMosaicVersion implements Store.
func (s *MemoryStore) NextMosaicVersion(_ context.Context, childID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	maxVersion := 0
	for _, a := range s.mosaics[childID] {
		if a.Version > maxVersion {
			maxVersion = a.Version
		}
	}
	return maxVersion + 1, nil
}

// Counts implements Store.
func (s *MemoryStore) Counts(_ context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	children := make(map[string]struct{})
	for id := range s.cognitive {
		children[id] = struct{}{}
	}
	for id := range s.emotional {
		children[id] = struct{}{}
	}

	mosaics := 0
	for _, h := range s.mosaics {
		mosaics += len(h)
	}
	return Stats{
		Children:    len(children),
		Assessments: len(s.assessments),
		Sessions:    len(s.sessions),
		Mosaics:     mosaics,
	}, nil
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }
