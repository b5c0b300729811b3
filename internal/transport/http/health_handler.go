package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// Build metadata, set via -ldflags at release time.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// HealthHandler serves liveness and version endpoints.
type HealthHandler struct {
	startedAt time.Time
}

// NewHealthHandler creates a health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now()}
}

// Routes returns the health routes.
func (h *HealthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/health", h.Health)
	r.Get("/version", h.VersionInfo)
	return r
}

// Health handles GET /api/health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status": "healthy",
		"uptime": time.Since(h.startedAt).String(),
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// VersionInfo handles GET /api/version.
func (h *HealthHandler) VersionInfo(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{
		"version":    Version,
		"build_time": BuildTime,
	})
}
