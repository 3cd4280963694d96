package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/model"
)

// QuestionnaireHandler handles fixed-form questionnaire scoring.
type QuestionnaireHandler struct {
	deps Dependencies
}

// NewQuestionnaireHandler creates a new questionnaire handler.
func NewQuestionnaireHandler(deps Dependencies) *QuestionnaireHandler {
	return &QuestionnaireHandler{deps: deps}
}

type scoreRequest struct {
	ChildID   string                        `json:"child_id"`
	AgeMonths int                           `json:"age_months"`
	Responses []model.QuestionnaireResponse `json:"responses"`
}

func (req scoreRequest) validate() error {
	switch {
	case strings.TrimSpace(req.ChildID) == "":
		return errors.New("missing child_id")
	case len(req.Responses) == 0:
		return errors.New("missing responses")
	}
	return nil
}

// HandleScore handles POST /v1/questionnaire/score requests.
func (h *QuestionnaireHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.questionnaire_score"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	result, err := h.deps.ScoreQuestionnaire(r.Context(), req.ChildID, req.AgeMonths, req.Responses)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
