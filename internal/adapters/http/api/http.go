// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carlosrios100/developmental-assessment-sub000/internal/adapters/content"
	repository "github.com/carlosrios100/developmental-assessment-sub000/internal/adapters/repository"
	service "github.com/carlosrios100/developmental-assessment-sub000/internal/app"
	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/adaptive"
	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/behavioral"
	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/contextmult"
	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/model"
	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/mosaic"
	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/questionnaire"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StartAdaptiveTest(ctx context.Context, childID string, domain model.CognitiveDomain, ageMonths int) (model.CognitiveAssessment, model.TestItem, error)
	SubmitAdaptiveResponse(ctx context.Context, assessmentID, itemID string, response []string, reactionTimeMS int) (service.ResponseOutcome, error)
	AbandonTest(ctx context.Context, assessmentID string) (model.CognitiveAssessment, error)

	ScoreQuestionnaire(ctx context.Context, childID string, ageMonths int, responses []model.QuestionnaireResponse) (model.QuestionnaireResult, error)

	RecordBehavioralSession(ctx context.Context, session model.ScenarioSession) (service.SessionReport, error)

	SaveFamilyContext(ctx context.Context, fc model.FamilyContext, consent model.ConsentFlags) (model.ContextMultiplier, error)
	DeleteFamilyContext(ctx context.Context, childID string) error

	GenerateMosaic(ctx context.Context, childID string, includeContext bool) (model.MosaicAssessment, error)
	EnqueueRecalc(ctx context.Context, childID string, includeContext bool) (string, bool)
	LatestMosaic(ctx context.Context, childID string) (model.MosaicAssessment, error)
	MosaicHistory(ctx context.Context, childID string) ([]model.MosaicAssessment, error)

	Profiles(ctx context.Context, childID string) (service.ChildProfiles, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler        *HealthHandler
	statsHandler         *StatsHandler
	cognitiveHandler     *CognitiveHandler
	questionnaireHandler *QuestionnaireHandler
	behavioralHandler    *BehavioralHandler
	contextHandler       *ContextHandler
	mosaicHandler        *MosaicHandler
	profilesHandler      *ProfilesHandler
	dashboardHandler     *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:        NewHealthHandler(),
		statsHandler:         NewStatsHandler(statsProvider),
		cognitiveHandler:     NewCognitiveHandler(deps),
		questionnaireHandler: NewQuestionnaireHandler(deps),
		behavioralHandler:    NewBehavioralHandler(deps),
		contextHandler:       NewContextHandler(deps),
		mosaicHandler:        NewMosaicHandler(deps),
		profilesHandler:      NewProfilesHandler(deps),
		dashboardHandler:     newdashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("/v1/cognitive/start", MetricsMiddleware(s.cognitiveHandler.HandleStart, "cognitive_start"))
	mux.HandleFunc("/v1/cognitive/respond", MetricsMiddleware(s.cognitiveHandler.HandleRespond, "cognitive_respond"))
	mux.HandleFunc("/v1/cognitive/abandon", MetricsMiddleware(s.cognitiveHandler.HandleAbandon, "cognitive_abandon"))

	mux.HandleFunc("/v1/questionnaire/score", MetricsMiddleware(s.questionnaireHandler.HandleScore, "questionnaire_score"))

	mux.HandleFunc("/v1/behavioral/session", MetricsMiddleware(s.behavioralHandler.HandleSession, "behavioral_session"))

	mux.HandleFunc("/v1/context", MetricsMiddleware(s.contextHandler.HandleSave, "context_save"))
	mux.HandleFunc("/v1/context/", MetricsMiddleware(s.contextHandler.HandleDelete, "context_delete"))

	mux.HandleFunc("/v1/mosaic/generate", MetricsMiddleware(s.mosaicHandler.HandleGenerate, "mosaic_generate"))
	mux.HandleFunc("/v1/mosaic/recalculate", MetricsMiddleware(s.mosaicHandler.HandleRecalculate, "mosaic_recalculate"))
	mux.HandleFunc("/v1/mosaic/", MetricsMiddleware(s.mosaicHandler.HandleGet, "mosaic_get"))

	mux.HandleFunc("/v1/profiles/", MetricsMiddleware(s.profilesHandler.HandleGet, "profiles_get"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates upstream sentinels to status codes so
// each handler does not repeat the mapping.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, content.ErrItemNotFound),
		errors.Is(err, content.ErrScenarioNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)

	case errors.Is(err, repository.ErrVersionConflict),
		errors.Is(err, repository.ErrDuplicateSession),
		errors.Is(err, adaptive.ErrDuplicateItem),
		errors.Is(err, adaptive.ErrNotInProgress):
		writeError(w, http.StatusConflict, "conflict", err)

	case errors.Is(err, adaptive.ErrUnknownDomain),
		errors.Is(err, adaptive.ErrItemPoolExhausted),
		errors.Is(err, questionnaire.ErrIncompleteResponseSet),
		errors.Is(err, questionnaire.ErrInvalidResponse),
		errors.Is(err, questionnaire.ErrInvalidAge),
		errors.Is(err, questionnaire.ErrNoCutoffData),
		errors.Is(err, behavioral.ErrSessionDiscarded),
		errors.Is(err, behavioral.ErrNoChoices),
		errors.Is(err, mosaic.ErrInsufficientProfileData),
		errors.Is(err, contextmult.ErrConsentRequired):
		writeError(w, http.StatusUnprocessableEntity, "unprocessable", err)

	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
