package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/contextmult"
	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/model"
)

// ContextHandler handles family context submissions and deletions.
type ContextHandler struct {
	deps Dependencies
}

// NewContextHandler creates a new context handler.
func NewContextHandler(deps Dependencies) *ContextHandler {
	return &ContextHandler{deps: deps}
}

type contextRequest struct {
	Context model.FamilyContext `json:"context"`
	Consent model.ConsentFlags  `json:"consent"`
}

type contextResponse struct {
	Multiplier      model.ContextMultiplier `json:"multiplier"`
	ConsentRequired bool                    `json:"consent_required,omitempty"`
}

// HandleSave handles POST and PUT /v1/context requests. Submitting a
// context for a child that already has one replaces it.
func (h *ContextHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	const op = "api.context_save"
	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}
	var req contextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.Context.ChildID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	mult, err := h.deps.SaveFamilyContext(r.Context(), req.Context, req.Consent)
	if errors.Is(err, contextmult.ErrConsentRequired) {
		// The context is stored and a neutral multiplier applies until
		// consent is granted.
		writeJSON(w, http.StatusOK, contextResponse{Multiplier: mult, ConsentRequired: true})
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contextResponse{Multiplier: mult})
}

// HandleDelete handles DELETE /v1/context/{childID} requests. All
// stored context data and the derived multiplier are removed.
func (h *ContextHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}
	childID := strings.TrimPrefix(r.URL.Path, "/v1/context/")
	if childID == "" || strings.Contains(childID, "/") {
		http.NotFound(w, r)
		return
	}

	if err := h.deps.DeleteFamilyContext(r.Context(), childID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
