package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dribeiro/datahub/internal/model"
	"github.com/dribeiro/datahub/internal/service"
	"github.com/dribeiro/datahub/internal/store"
)

// ExtractionHandler handles extraction creation, listing and status polling
type ExtractionHandler struct {
	service *service.ExtractionService
}

// NewExtractionHandler creates a new extraction handler
func NewExtractionHandler(service *service.ExtractionService) *ExtractionHandler {
	return &ExtractionHandler{
		service: service,
	}
}

// Create handles POST /api/v1/extractions. The response returns immediately
// with the running record; the simulation proceeds in the background.
func (h *ExtractionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateExtractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	extraction, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, extraction)
}

// List handles GET /api/v1/extractions
func (h *ExtractionHandler) List(w http.ResponseWriter, r *http.Request) {
	extractions, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, extractions)
}

// Status handles PUT /api/v1/extractions, the polling status check. The body
// carries the extraction id; the response is the persisted record plus the
// transient stepStatus, null once terminal.
func (h *ExtractionHandler) Status(w http.ResponseWriter, r *http.Request) {
	var req model.StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Status(r.Context(), req.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "extraction not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
