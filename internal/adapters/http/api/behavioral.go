package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/model"
)

// BehavioralHandler handles scenario session submissions.
type BehavioralHandler struct {
	deps Dependencies
}

// NewBehavioralHandler creates a new behavioral handler.
func NewBehavioralHandler(deps Dependencies) *BehavioralHandler {
	return &BehavioralHandler{deps: deps}
}

func validateSession(s model.ScenarioSession) error {
	switch {
	case strings.TrimSpace(s.SessionID) == "":
		return errors.New("missing session_id")
	case strings.TrimSpace(s.ChildID) == "":
		return errors.New("missing child_id")
	case strings.TrimSpace(s.ScenarioID) == "":
		return errors.New("missing scenario_id")
	}
	return nil
}

// HandleSession handles POST /v1/behavioral/session requests.
func (h *BehavioralHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.behavioral_session"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var session model.ScenarioSession
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validateSession(session); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	report, err := h.deps.RecordBehavioralSession(r.Context(), session)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
