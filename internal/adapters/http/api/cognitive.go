// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/model"
)

// CognitiveHandler handles adaptive test requests.
type CognitiveHandler struct {
	deps Dependencies
}

// NewCognitiveHandler creates a new cognitive handler.
func NewCognitiveHandler(deps Dependencies) *CognitiveHandler {
	return &CognitiveHandler{deps: deps}
}

type startRequest struct {
	ChildID   string `json:"child_id"`
	Domain    string `json:"domain"`
	AgeMonths int    `json:"age_months"`
}

func (req startRequest) validate() error {
	switch {
	case strings.TrimSpace(req.ChildID) == "":
		return errors.New("missing child_id")
	case strings.TrimSpace(req.Domain) == "":
		return errors.New("missing domain")
	case req.AgeMonths < 0 || req.AgeMonths > 72:
		return errors.New("age_months must be in [0,72]")
	}
	return nil
}

type startResponse struct {
	AssessmentID string         `json:"assessment_id"`
	FirstItem    model.TestItem `json:"first_item"`
}

// HandleStart handles POST /v1/cognitive/start requests.
func (h *CognitiveHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	const op = "api.cognitive_start"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	a, first, err := h.deps.StartAdaptiveTest(r.Context(), req.ChildID, model.CognitiveDomain(req.Domain), req.AgeMonths)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	// The correct answer never leaves the server.
	first.Content.CorrectAnswer = nil
	writeJSON(w, http.StatusCreated, startResponse{AssessmentID: a.ID, FirstItem: first})
}

type respondRequest struct {
	AssessmentID   string   `json:"assessment_id"`
	ItemID         string   `json:"item_id"`
	Response       []string `json:"response"`
	ReactionTimeMS int      `json:"reaction_time_ms"`
}

func (req respondRequest) validate() error {
	switch {
	case strings.TrimSpace(req.AssessmentID) == "":
		return errors.New("missing assessment_id")
	case strings.TrimSpace(req.ItemID) == "":
		return errors.New("missing item_id")
	case len(req.Response) == 0:
		return errors.New("missing response")
	case req.ReactionTimeMS < 0:
		return errors.New("reaction_time_ms must not be negative")
	}
	return nil
}

type respondResponse struct {
	Correct        bool            `json:"correct"`
	Theta          float64         `json:"theta"`
	StandardError  float64         `json:"standard_error"`
	Complete       bool            `json:"complete"`
	StoppingReason string          `json:"stopping_reason,omitempty"`
	NextItem       *model.TestItem `json:"next_item,omitempty"`
	Duplicate      bool            `json:"duplicate,omitempty"`
}

// HandleRespond handles POST /v1/cognitive/respond requests.
func (h *CognitiveHandler) HandleRespond(w http.ResponseWriter, r *http.Request) {
	const op = "api.cognitive_respond"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req respondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	out, err := h.deps.SubmitAdaptiveResponse(r.Context(), req.AssessmentID, req.ItemID, req.Response, req.ReactionTimeMS)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := respondResponse{
		Correct:        out.Correct,
		Theta:          out.Theta,
		StandardError:  out.StandardError,
		Complete:       out.Complete,
		StoppingReason: string(out.StoppingReason),
		NextItem:       out.NextItem,
		Duplicate:      out.Duplicate,
	}
	if resp.NextItem != nil {
		item := *resp.NextItem
		item.Content.CorrectAnswer = nil
		resp.NextItem = &item
	}
	writeJSON(w, http.StatusOK, resp)
}

type abandonRequest struct {
	AssessmentID string `json:"assessment_id"`
}

// HandleAbandon handles POST /v1/cognitive/abandon requests.
func (h *CognitiveHandler) HandleAbandon(w http.ResponseWriter, r *http.Request) {
	const op = "api.cognitive_abandon"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req abandonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.AssessmentID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	a, err := h.deps.AbandonTest(r.Context(), req.AssessmentID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"assessment_id": a.ID,
		"status":        a.Status,
	})
}
