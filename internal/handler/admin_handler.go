package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dribeiro/datahub/internal/model"
	"github.com/dribeiro/datahub/internal/service"
	"github.com/dribeiro/datahub/internal/store"
	"github.com/google/uuid"
)

// AdminHandler handles source/template administration and the connectivity
// probe
type AdminHandler struct {
	reference store.ReferenceRepository
	probe     *service.ProbeService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(reference store.ReferenceRepository, probe *service.ProbeService) *AdminHandler {
	return &AdminHandler{
		reference: reference,
		probe:     probe,
	}
}

// CreateSource handles POST /api/v1/admin/sources
func (h *AdminHandler) CreateSource(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	source := &model.Source{
		ID:     uuid.New().String(),
		Name:   req.Name,
		APIURL: req.APIURL,
	}
	if err := h.reference.CreateSource(r.Context(), source); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, source)
}

// DeleteSource handles DELETE /api/v1/admin/sources/{id}
func (h *AdminHandler) DeleteSource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/admin/sources/")
	if err := h.reference.DeleteSource(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Source deleted"})
}

// CreateTemplate handles POST /api/v1/admin/templates
func (h *AdminHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req model.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	template := &model.Template{
		ID:       uuid.New().String(),
		Name:     req.Name,
		SourceID: req.SourceID,
	}
	if err := h.reference.CreateTemplate(r.Context(), template); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "unknown source: "+req.SourceID)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, template)
}

// DeleteTemplate handles DELETE /api/v1/admin/templates/{id}
func (h *AdminHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/admin/templates/")
	if err := h.reference.DeleteTemplate(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Template deleted"})
}

// TestSource handles POST /api/v1/admin/test-source, the synchronous
// connectivity probe.
func (h *AdminHandler) TestSource(w http.ResponseWriter, r *http.Request) {
	var req model.ProbeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.probe.Test(r.Context(), &req)
	if err != nil {
		var upstream *service.UpstreamError
		switch {
		case errors.As(err, &upstream):
			writeError(w, http.StatusBadGateway, err.Error())
		case errors.Is(err, service.ErrValidation):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusBadGateway, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}
