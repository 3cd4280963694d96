// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"

	"github.com/carlosrios100/developmental-assessment-sub000/internal/adapters/content"
	jobqueue "github.com/carlosrios100/developmental-assessment-sub000/internal/adapters/mq/queue"
	workerpool "github.com/carlosrios100/developmental-assessment-sub000/internal/adapters/mq/worker"
	repository "github.com/carlosrios100/developmental-assessment-sub000/internal/adapters/repository"
	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/adaptive"
	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/behavioral"
	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/contextmult"
	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/dedupe"
	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/model"
	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/mosaic"
	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/questionnaire"
	"github.com/carlosrios100/developmental-assessment-sub000/pkg/logger"
	"github.com/carlosrios100/developmental-assessment-sub000/pkg/metrics"
)

// ResponseOutcome is what the API reports back after one submitted
// answer. Duplicate marks an idempotent replay of an already-counted
// submission.
type ResponseOutcome struct {
	adaptive.Outcome
	Duplicate bool
}

// SessionReport is returned after a behavioral session is recorded.
type SessionReport struct {
	Outcome model.SessionOutcome
	Profile model.EmotionalProfile
}

// ChildProfiles bundles whatever profile data exists for a child.
// Absent profiles are nil.
type ChildProfiles struct {
	Cognitive  *model.CognitiveProfile  `json:"cognitive,omitempty"`
	Emotional  *model.EmotionalProfile  `json:"emotional,omitempty"`
	Multiplier *model.ContextMultiplier `json:"context,omitempty"`
}

// Service wires the scoring engines to storage, content, and the
// background recalculation pipeline.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	contentSrc content.Store
	deduper    dedupe.Deduper
	queue      jobqueue.Queue
	pool       *workerpool.Pool

	adaptiveEngine *adaptive.Engine
	aggregator     *behavioral.Aggregator
	calculator     *contextmult.Calculator
	mosaicEngine   *mosaic.Engine

	// Configuration
	workerCount     int
	queueSize       int
	dedupeSize      int
	storePath       string
	contentPackPath string
	adaptiveOpts    []adaptive.Option
	behavioralOpts  []behavioral.Option
	contextOpts     []contextmult.Option
	mosaicOpts      []mosaic.Option

	// Per-assessment serialization of response handling
	sessionLocks sync.Map // assessmentID -> *sync.Mutex

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU() * 2,
		queueSize:   10000,
		dedupeSize:  50000,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting assessment service...")

	if s.contentSrc == nil {
		storeOpts := []content.StoreOption{}
		if s.contentPackPath != "" {
			pack, err := content.LoadPack(s.contentPackPath)
			if err != nil {
				return fmt.Errorf("load content pack: %w", err)
			}
			storeOpts = pack.StoreOptions()
			s.logger.Info(ctx, "loaded content pack",
				logger.String("path", s.contentPackPath),
				logger.Int("items", len(pack.Items)),
				logger.Int("scenarios", len(pack.Scenarios)),
			)
		}
		s.contentSrc = content.NewMemoryStore(storeOpts...)
	}

	if s.store == nil {
		if s.storePath != "" {
			sq, err := repository.OpenSQLite(s.storePath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			s.store = sq
			s.logger.Info(ctx, "using sqlite store", logger.String("path", s.storePath))
		} else {
			s.store = repository.NewMemoryStore()
			s.logger.Info(ctx, "using in-memory store")
		}
	}

	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.queue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
		jobqueue.WithBufferSize(s.queueSize),
	)

	s.adaptiveEngine = adaptive.New(s.contentSrc, s.adaptiveOpts...)
	s.aggregator = behavioral.New(s.behavioralOpts...)
	s.calculator = contextmult.New(s.contentSrc, s.contextOpts...)
	s.mosaicEngine = mosaic.New(s.contentSrc, s.mosaicOpts...)

	s.pool = workerpool.NewPool(s.workerCount, s.queue, s)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "assessment service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping assessment service...")

	if s.pool != nil {
		_ = s.pool.Shutdown(ctx)
	}
	if s.store != nil {
		_ = s.store.Close()
	}

	s.started = false
	s.logger.Info(ctx, "assessment service stopped")
}

// assessmentLock serializes response submission per assessment so a
// burst of answers cannot interleave theta updates.
func (s *Service) assessmentLock(assessmentID string) *sync.Mutex {
	lock, _ := s.sessionLocks.LoadOrStore(assessmentID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// StartAdaptiveTest begins a new adaptive session and persists it.
func (s *Service) StartAdaptiveTest(ctx context.Context, childID string, domain model.CognitiveDomain, ageMonths int) (model.CognitiveAssessment, model.TestItem, error) {
	a, first, err := s.adaptiveEngine.Start(ctx, childID, domain, ageMonths)
	if err != nil {
		return model.CognitiveAssessment{}, model.TestItem{}, err
	}
	if err := s.store.SaveAssessment(ctx, a); err != nil {
		return model.CognitiveAssessment{}, model.TestItem{}, fmt.Errorf("save assessment: %w", err)
	}
	return a, first, nil
}

// SubmitAdaptiveResponse records one answer. A replayed
// (assessment, item) pair is acknowledged without being scored twice.
// When the session completes, the result folds into the child's
// cognitive profile.
func (s *Service) SubmitAdaptiveResponse(ctx context.Context, assessmentID, itemID string, response []string, reactionTimeMS int) (ResponseOutcome, error) {
	lock := s.assessmentLock(assessmentID)
	lock.Lock()
	defer lock.Unlock()

	key := dedupe.Key(assessmentID, itemID)
	if s.deduper.SeenAndRecord(ctx, key) {
		s.logger.Debug(ctx, "duplicate response ignored",
			logger.String("assessmentID", assessmentID),
			logger.String("itemID", itemID),
		)
		return s.recordedOutcome(ctx, assessmentID, itemID)
	}

	a, err := s.store.Assessment(ctx, assessmentID)
	if err != nil {
		s.deduper.Unrecord(ctx, key)
		return ResponseOutcome{}, err
	}

	out, err := s.adaptiveEngine.Respond(ctx, &a, itemID, response, reactionTimeMS)
	if err != nil {
		s.deduper.Unrecord(ctx, key)
		return ResponseOutcome{}, err
	}

	if err := s.store.SaveAssessment(ctx, a); err != nil {
		s.deduper.Unrecord(ctx, key)
		return ResponseOutcome{}, fmt.Errorf("save assessment: %w", err)
	}

	if out.Complete {
		if err := s.applyCognitiveResult(ctx, a); err != nil {
			return ResponseOutcome{}, err
		}
		s.sessionLocks.Delete(assessmentID)
	}

	return ResponseOutcome{Outcome: out}, nil
}

// recordedOutcome rebuilds the outcome a duplicate submission already
// produced from the assessment's current state, so retried requests
// see the real theta and completion status instead of zero values.
func (s *Service) recordedOutcome(ctx context.Context, assessmentID, itemID string) (ResponseOutcome, error) {
	a, err := s.store.Assessment(ctx, assessmentID)
	if err != nil {
		return ResponseOutcome{}, err
	}

	out := adaptive.Outcome{
		Theta:          a.Theta,
		StandardError:  a.StandardError,
		Complete:       a.Status != model.StatusInProgress,
		StoppingReason: a.StoppingReason,
	}
	for _, h := range a.History {
		if h.Item.ID == itemID {
			out.Correct = h.Correct
			break
		}
	}
	return ResponseOutcome{Outcome: out, Duplicate: true}, nil
}

// applyCognitiveResult folds a completed assessment into the profile,
// retrying once on a concurrent write.
func (s *Service) applyCognitiveResult(ctx context.Context, a model.CognitiveAssessment) error {
	for attempt := 0; attempt < 2; attempt++ {
		p, err := s.store.CognitiveProfile(ctx, a.ChildID)
		if errors.Is(err, repository.ErrNotFound) {
			p = model.CognitiveProfile{ChildID: a.ChildID}
		} else if err != nil {
			return err
		}

		adaptive.ApplyResult(&p, a.Domain, a.Theta, a.Percentile)

		_, err = s.store.SaveCognitiveProfile(ctx, p)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return err
		}
	}
	return fmt.Errorf("apply result for child %s: %w", a.ChildID, repository.ErrVersionConflict)
}

// AbandonTest cancels an in-progress session.
func (s *Service) AbandonTest(ctx context.Context, assessmentID string) (model.CognitiveAssessment, error) {
	lock := s.assessmentLock(assessmentID)
	lock.Lock()
	defer lock.Unlock()

	a, err := s.store.Assessment(ctx, assessmentID)
	if err != nil {
		return model.CognitiveAssessment{}, err
	}
	if err := s.adaptiveEngine.Abandon(ctx, &a); err != nil {
		return model.CognitiveAssessment{}, err
	}
	if err := s.store.SaveAssessment(ctx, a); err != nil {
		return model.CognitiveAssessment{}, fmt.Errorf("save assessment: %w", err)
	}
	s.sessionLocks.Delete(assessmentID)
	return a, nil
}

// Assessment returns one adaptive session by ID.
func (s *Service) Assessment(ctx context.Context, assessmentID string) (model.CognitiveAssessment, error) {
	return s.store.Assessment(ctx, assessmentID)
}

// ScoreQuestionnaire scores a fixed-form questionnaire. Scoring is
// pure; nothing is persisted.
func (s *Service) ScoreQuestionnaire(ctx context.Context, childID string, ageMonths int, responses []model.QuestionnaireResponse) (model.QuestionnaireResult, error) {
	return questionnaire.Score(ctx, s.contentSrc, childID, ageMonths, responses)
}

// RecordBehavioralSession ingests one completed scenario session: it
// is summarized, stored exactly once, and folded into the emotional
// profile.
func (s *Service) RecordBehavioralSession(ctx context.Context, session model.ScenarioSession) (SessionReport, error) {
	out, err := s.aggregator.Summarize(ctx, session)
	if err != nil {
		return SessionReport{}, err
	}

	if err := s.store.SaveSession(ctx, session); err != nil {
		return SessionReport{}, err
	}

	var profile model.EmotionalProfile
	for attempt := 0; attempt < 2; attempt++ {
		p, err := s.store.EmotionalProfile(ctx, session.ChildID)
		if errors.Is(err, repository.ErrNotFound) {
			p = model.EmotionalProfile{ChildID: session.ChildID}
		} else if err != nil {
			return SessionReport{}, err
		}

		if err := s.aggregator.Apply(ctx, &p, session, out); err != nil {
			return SessionReport{}, err
		}

		profile, err = s.store.SaveEmotionalProfile(ctx, p)
		if err == nil {
			return SessionReport{Outcome: out, Profile: profile}, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return SessionReport{}, err
		}
	}
	return SessionReport{}, fmt.Errorf("apply session for child %s: %w", session.ChildID, repository.ErrVersionConflict)
}

// SaveFamilyContext stores the context and recalculates the adversity
// multiplier under the given consent. A missing socio-economic consent
// stores a neutral multiplier and reports ErrConsentRequired.
func (s *Service) SaveFamilyContext(ctx context.Context, fc model.FamilyContext, consent model.ConsentFlags) (model.ContextMultiplier, error) {
	if err := s.store.SaveFamilyContext(ctx, fc); err != nil {
		return model.ContextMultiplier{}, fmt.Errorf("save family context: %w", err)
	}

	m, calcErr := s.calculator.Calculate(ctx, fc, consent)
	if calcErr != nil && !errors.Is(calcErr, contextmult.ErrConsentRequired) {
		return model.ContextMultiplier{}, calcErr
	}
	if err := s.store.SaveContextMultiplier(ctx, m); err != nil {
		return model.ContextMultiplier{}, fmt.Errorf("save multiplier: %w", err)
	}
	return m, calcErr
}

// DeleteFamilyContext removes the stored context and derived multiplier.
func (s *Service) DeleteFamilyContext(ctx context.Context, childID string) error {
	return s.store.DeleteFamilyContext(ctx, childID)
}

// FamilyContext returns the stored context for a child.
func (s *Service) FamilyContext(ctx context.Context, childID string) (model.FamilyContext, error) {
	return s.store.FamilyContext(ctx, childID)
}

// GenerateMosaic produces and stores a new composite assessment from
// whatever profile data currently exists.
func (s *Service) GenerateMosaic(ctx context.Context, childID string, includeContext bool) (model.MosaicAssessment, error) {
	in := mosaic.Inputs{}

	if cp, err := s.store.CognitiveProfile(ctx, childID); err == nil {
		in.Cognitive = &cp
	} else if !errors.Is(err, repository.ErrNotFound) {
		return model.MosaicAssessment{}, err
	}

	if ep, err := s.store.EmotionalProfile(ctx, childID); err == nil {
		in.Emotional = &ep
	} else if !errors.Is(err, repository.ErrNotFound) {
		return model.MosaicAssessment{}, err
	}

	if includeContext {
		if m, err := s.store.ContextMultiplier(ctx, childID); err == nil {
			in.Context = &m
		} else if !errors.Is(err, repository.ErrNotFound) {
			return model.MosaicAssessment{}, err
		}
	}

	// Version allocation races with concurrent generations for the
	// same child; the store rejects a duplicate version and we retry
	// once with a fresh read.
	for attempt := 0; attempt < 2; attempt++ {
		version, err := s.store.NextMosaicVersion(ctx, childID)
		if err != nil {
			return model.MosaicAssessment{}, err
		}

		assessment, err := s.mosaicEngine.Generate(ctx, childID, in, version)
		if err != nil {
			return model.MosaicAssessment{}, err
		}

		err = s.store.SaveMosaic(ctx, assessment)
		if err == nil {
			return assessment, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return model.MosaicAssessment{}, fmt.Errorf("save mosaic: %w", err)
		}
	}
	return model.MosaicAssessment{}, fmt.Errorf("generate mosaic for child %s: %w", childID, repository.ErrVersionConflict)
}

// EnqueueRecalc schedules a background regeneration of the child's
// composite. Returns false when the queue is full.
func (s *Service) EnqueueRecalc(ctx context.Context, childID string, includeContext bool) (string, bool) {
	job := model.RecalcJob{
		JobID:          uuid.NewString(),
		ChildID:        childID,
		IncludeContext: includeContext,
	}
	ok := s.queue.Enqueue(ctx, job)
	if !ok {
		s.logger.Warn(ctx, "recalc queue full",
			logger.String("childID", childID),
		)
		return "", false
	}
	return job.JobID, true
}

// Recalculate implements worker.Generator.
func (s *Service) Recalculate(ctx context.Context, job model.RecalcJob) error {
	_, err := s.GenerateMosaic(ctx, job.ChildID, job.IncludeContext)
	return err
}

// LatestMosaic returns the newest composite for a child.
func (s *Service) LatestMosaic(ctx context.Context, childID string) (model.MosaicAssessment, error) {
	return s.store.LatestMosaic(ctx, childID)
}

// MosaicHistory returns every composite for a child, newest first.
func (s *Service) MosaicHistory(ctx context.Context, childID string) ([]model.MosaicAssessment, error) {
	return s.store.MosaicHistory(ctx, childID)
}

// Profiles returns whatever profile data exists for a child. Both
// profiles absent is reported as repository.ErrNotFound.
func (s *Service) Profiles(ctx context.Context, childID string) (ChildProfiles, error) {
	out := ChildProfiles{}

	if cp, err := s.store.CognitiveProfile(ctx, childID); err == nil {
		out.Cognitive = &cp
	} else if !errors.Is(err, repository.ErrNotFound) {
		return ChildProfiles{}, err
	}

	if ep, err := s.store.EmotionalProfile(ctx, childID); err == nil {
		out.Emotional = &ep
	} else if !errors.Is(err, repository.ErrNotFound) {
		return ChildProfiles{}, err
	}

	if m, err := s.store.ContextMultiplier(ctx, childID); err == nil {
		out.Multiplier = &m
	} else if !errors.Is(err, repository.ErrNotFound) {
		return ChildProfiles{}, err
	}

	if out.Cognitive == nil && out.Emotional == nil {
		return ChildProfiles{}, fmt.Errorf("profiles for child %s: %w", childID, repository.ErrNotFound)
	}
	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		stats["queueLength"] = queueLen
		stats["dedupeEntries"] = s.deduper.Size()

		if counts, err := s.store.Counts(ctx); err == nil {
			stats["children"] = counts.Children
			stats["assessments"] = counts.Assessments
			stats["sessions"] = counts.Sessions
			stats["mosaics"] = counts.Mosaics
		}

		metrics.UpdateQueueSize(queueLen)
	}

	return stats
}
