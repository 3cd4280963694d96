package api

import (
	"net/http"
	"strings"
)

// ProfilesHandler serves the per-child profile snapshot.
type ProfilesHandler struct {
	deps Dependencies
}

// NewProfilesHandler creates a new profiles handler.
func NewProfilesHandler(deps Dependencies) *ProfilesHandler {
	return &ProfilesHandler{deps: deps}
}

// HandleGet handles GET /v1/profiles/{childID} requests.
func (h *ProfilesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	childID := strings.TrimPrefix(r.URL.Path, "/v1/profiles/")
	if childID == "" || strings.Contains(childID, "/") {
		http.NotFound(w, r)
		return
	}

	profiles, err := h.deps.Profiles(r.Context(), childID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}
