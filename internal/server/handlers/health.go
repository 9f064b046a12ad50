package handlers

import (
	"log/slog"
	"net/http"
)

// HealthHandler serves the monitoring endpoint.
type HealthHandler struct {
	logger  *slog.Logger
	version string
}

// NewHealthHandler creates a health handler reporting the given build version.
func NewHealthHandler(logger *slog.Logger, version string) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		version: version,
	}
}

// HealthResponse is the health check body.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// Health handles GET /api/v1/health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "ok",
		Version: h.version,
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}
