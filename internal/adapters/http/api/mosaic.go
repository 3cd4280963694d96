package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/carlosrios100/developmental-assessment-sub000/pkg/logger"
)

// MosaicHandler handles composite assessment generation and retrieval.
type MosaicHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewMosaicHandler creates a new mosaic handler.
func NewMosaicHandler(deps Dependencies) *MosaicHandler {
	return &MosaicHandler{deps: deps, logger: logger.Get().Named("api")}
}

type mosaicRequest struct {
	ChildID        string `json:"child_id"`
	IncludeContext bool   `json:"include_context"`
}

func (req mosaicRequest) validate() error {
	if strings.TrimSpace(req.ChildID) == "" {
		return errors.New("missing child_id")
	}
	return nil
}

// HandleGenerate handles POST /v1/mosaic/generate requests. The
// composite is computed synchronously and persisted as a new version.
func (h *MosaicHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	const op = "api.mosaic_generate"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req mosaicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	m, err := h.deps.GenerateMosaic(r.Context(), req.ChildID, req.IncludeContext)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// HandleRecalculate handles POST /v1/mosaic/recalculate requests. The
// job runs on the background worker pool; a full queue yields 429.
func (h *MosaicHandler) HandleRecalculate(w http.ResponseWriter, r *http.Request) {
	const op = "api.mosaic_recalculate"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req mosaicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	jobID, ok := h.deps.EnqueueRecalc(r.Context(), req.ChildID, req.IncludeContext)
	if !ok {
		h.logger.Warn(r.Context(), "recalc queue full", logger.String("childID", req.ChildID))
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{
		"job_id":   jobID,
		"child_id": req.ChildID,
		"status":   "queued",
	})
}

// HandleGet handles GET /v1/mosaic/{childID} and
// GET /v1/mosaic/{childID}/history requests.
func (h *MosaicHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/v1/mosaic/")
	childID, tail, _ := strings.Cut(rest, "/")
	if childID == "" {
		http.NotFound(w, r)
		return
	}

	switch tail {
	case "":
		m, err := h.deps.LatestMosaic(r.Context(), childID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	case "history":
		history, err := h.deps.MosaicHistory(r.Context(), childID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"child_id": childID,
			"versions": history,
		})
	default:
		http.NotFound(w, r)
	}
}
