package handler

import (
	"net/http"

	"github.com/dribeiro/datahub/internal/store"
)

// ReferenceHandler serves the read-only reference data lookups
type ReferenceHandler struct {
	reference store.ReferenceRepository
}

// NewReferenceHandler creates a new reference handler
func NewReferenceHandler(reference store.ReferenceRepository) *ReferenceHandler {
	return &ReferenceHandler{
		reference: reference,
	}
}

// Sources handles GET /api/v1/sources
func (h *ReferenceHandler) Sources(w http.ResponseWriter, r *http.Request) {
	sources, err := h.reference.ListSources(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sources)
}

// Templates handles GET /api/v1/templates?source=<id>. Without a source the
// list defaults to empty.
func (h *ReferenceHandler) Templates(w http.ResponseWriter, r *http.Request) {
	sourceID := r.URL.Query().Get("source")

	templates, err := h.reference.ListTemplates(r.Context(), sourceID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

// Destinations handles GET /api/v1/destinations
func (h *ReferenceHandler) Destinations(w http.ResponseWriter, r *http.Request) {
	destinations, err := h.reference.ListDestinations(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, destinations)
}
