package handler

import (
	"net/http"
	"strings"

	"github.com/dribeiro/datahub/pkg/middleware"
)

// Router handles HTTP routing
type Router struct {
	extractionHandler   *ExtractionHandler
	scheduleHandler     *ScheduleHandler
	notificationHandler *NotificationHandler
	referenceHandler    *ReferenceHandler
	adminHandler        *AdminHandler
	healthHandler       *HealthHandler
	corsConfig          middleware.CORSConfig
}

// NewRouter creates a new router
func NewRouter(
	extractionHandler *ExtractionHandler,
	scheduleHandler *ScheduleHandler,
	notificationHandler *NotificationHandler,
	referenceHandler *ReferenceHandler,
	adminHandler *AdminHandler,
	healthHandler *HealthHandler,
	corsConfig middleware.CORSConfig,
) *Router {
	return &Router{
		extractionHandler:   extractionHandler,
		scheduleHandler:     scheduleHandler,
		notificationHandler: notificationHandler,
		referenceHandler:    referenceHandler,
		adminHandler:        adminHandler,
		healthHandler:       healthHandler,
		corsConfig:          corsConfig,
	}
}

// Handler returns the configured HTTP handler with middleware
func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health endpoints (no middleware)
	mux.HandleFunc("/health", rt.healthHandler.Health)
	mux.HandleFunc("/ready", rt.healthHandler.Ready)

	// API endpoints
	mux.HandleFunc("/api/v1/extractions", rt.handleExtractions)
	mux.HandleFunc("/api/v1/sources", rt.methodGet(rt.referenceHandler.Sources))
	mux.HandleFunc("/api/v1/templates", rt.methodGet(rt.referenceHandler.Templates))
	mux.HandleFunc("/api/v1/destinations", rt.methodGet(rt.referenceHandler.Destinations))
	mux.HandleFunc("/api/v1/schedules", rt.handleSchedules)
	mux.HandleFunc("/api/v1/notifications", rt.handleNotifications)
	mux.HandleFunc("/api/v1/notifications/", rt.handleNotificationsWithID)

	// Admin endpoints
	mux.HandleFunc("/api/v1/admin/sources", rt.handleAdminSources)
	mux.HandleFunc("/api/v1/admin/sources/", rt.methodDelete(rt.adminHandler.DeleteSource))
	mux.HandleFunc("/api/v1/admin/templates", rt.handleAdminTemplates)
	mux.HandleFunc("/api/v1/admin/templates/", rt.methodDelete(rt.adminHandler.DeleteTemplate))
	mux.HandleFunc("/api/v1/admin/test-source", rt.methodPost(rt.adminHandler.TestSource))

	// Apply middleware (CORS first to handle preflight requests)
	handler := middleware.CORS(rt.corsConfig)(mux)
	handler = middleware.Recovery(handler)
	handler = middleware.Logging(handler)
	handler = middleware.CorrelationID(handler)

	return handler
}

// handleExtractions routes the extraction collection endpoints. PUT is the
// polling status check; its body carries the extraction id.
func (rt *Router) handleExtractions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		rt.extractionHandler.List(w, r)
	case http.MethodPost:
		rt.extractionHandler.Create(w, r)
	case http.MethodPut:
		rt.extractionHandler.Status(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleSchedules routes the schedule endpoints
func (rt *Router) handleSchedules(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		rt.scheduleHandler.List(w, r)
	case http.MethodPut:
		rt.scheduleHandler.Update(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleNotifications routes the notification collection endpoints
func (rt *Router) handleNotifications(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		rt.notificationHandler.List(w, r)
	case http.MethodPost:
		rt.notificationHandler.Create(w, r)
	case http.MethodDelete:
		rt.notificationHandler.ClearAll(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleNotificationsWithID routes read-all and per-notification read flips
func (rt *Router) handleNotificationsWithID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/v1/notifications/")
	switch {
	case path == "read-all":
		rt.notificationHandler.MarkAllRead(w, r)
	case strings.HasSuffix(path, "/read"):
		rt.notificationHandler.MarkRead(w, r)
	default:
		writeError(w, http.StatusNotFound, "Endpoint not found")
	}
}

// handleAdminSources routes the admin source collection endpoints
func (rt *Router) handleAdminSources(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		rt.referenceHandler.Sources(w, r)
	case http.MethodPost:
		rt.adminHandler.CreateSource(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleAdminTemplates routes the admin template collection endpoints
func (rt *Router) handleAdminTemplates(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		rt.referenceHandler.Templates(w, r)
	case http.MethodPost:
		rt.adminHandler.CreateTemplate(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (rt *Router) methodGet(h http.HandlerFunc) http.HandlerFunc {
	return rt.method(http.MethodGet, h)
}

func (rt *Router) methodPost(h http.HandlerFunc) http.HandlerFunc {
	return rt.method(http.MethodPost, h)
}

func (rt *Router) methodDelete(h http.HandlerFunc) http.HandlerFunc {
	return rt.method(http.MethodDelete, h)
}

func (rt *Router) method(allowed string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != allowed {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h(w, r)
	}
}
