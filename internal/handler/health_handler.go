package handler

import (
	"context"
	"net/http"
	"time"
)

// Pinger checks whether the storage backend is reachable. The in-memory
// backend passes a nil Pinger and is always considered connected.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles service health and readiness checks
type HealthHandler struct {
	pinger    Pinger
	backend   string
	startTime time.Time
	version   string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(pinger Pinger, backend, version string) *HealthHandler {
	return &HealthHandler{
		pinger:    pinger,
		backend:   backend,
		startTime: time.Now(),
		version:   version,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	Timestamp     string `json:"timestamp"`
	Storage       string `json:"storage"`
	StorageStatus string `json:"storage_status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// ReadyResponse represents the readiness check response
type ReadyResponse struct {
	Ready         bool   `json:"ready"`
	Storage       string `json:"storage"`
	StorageStatus string `json:"storage_status"`
}

func (h *HealthHandler) storageStatus(ctx context.Context) (string, bool) {
	if h.pinger == nil {
		return "connected", true
	}
	if err := h.pinger.Ping(ctx); err != nil {
		return "disconnected", false
	}
	return "connected", true
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	storageStatus, _ := h.storageStatus(r.Context())

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:        "healthy",
		Version:       h.version,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Storage:       h.backend,
		StorageStatus: storageStatus,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	storageStatus, ready := h.storageStatus(r.Context())

	statusCode := http.StatusOK
	if !ready {
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, ReadyResponse{
		Ready:         ready,
		Storage:       h.backend,
		StorageStatus: storageStatus,
	})
}
