package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dribeiro/datahub/internal/model"
	"github.com/dribeiro/datahub/internal/service"
)

// ScheduleHandler handles schedule listing and preference updates
type ScheduleHandler struct {
	service *service.ScheduleService
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(service *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
	}
}

// List handles GET /api/v1/schedules
func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, schedules)
}

// Update handles PUT /api/v1/schedules: wholesale replacement of one
// schedule's weekly preference array, returning the full updated set.
func (h *ScheduleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateSchedulePreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	schedules, err := h.service.UpdatePreferences(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, schedules)
}
