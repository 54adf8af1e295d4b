package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Checker reports whether a dependency is reachable.
type Checker func(ctx context.Context) error

type HealthHandler struct {
	checks  map[string]Checker
	version string
	logger  *slog.Logger
}

func NewHealthHandler(checks map[string]Checker, version string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{checks: checks, version: version, logger: logger}
}

func (h *HealthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
}

// HealthCheck returns the health status of the service
// @Summary Health check
// @Description Ping the database and cache. Any failing dependency makes the service unhealthy.
// @Tags health
// @Produce json
// @Success 200 {object} APIResponse{data=object} "Service health status with timestamp and version"
// @Failure 503 {object} APIResponse{data=object} "A dependency is unreachable"
// @Router /health [get]
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	dependencies := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warn("Health check failed", "dependency", name, "error", err)
			dependencies[name] = "unreachable"
			status = http.StatusServiceUnavailable
			continue
		}
		dependencies[name] = "ok"
	}

	health := map[string]interface{}{
		"status":       "healthy",
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"service":      "hotel-api",
		"version":      h.version,
		"dependencies": dependencies,
	}
	if status != http.StatusOK {
		health["status"] = "unhealthy"
	}

	writeJSON(w, status, APIResponse{Success: status == http.StatusOK, Data: health})
}
