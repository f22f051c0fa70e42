// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"surveyflow/internal/core/version"
	"surveyflow/internal/modkit/httpkit"
	sdom "surveyflow/internal/services/surveys/domain"
)

// Deps are the handler dependencies
type Deps struct {
	StartedAt time.Time
	Health    sdom.HealthReporter
	Timeout   time.Duration
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.Timeout <= 0 {
		d.Timeout = 5 * time.Second
	}
	h := &handlers{deps: d}

	httpkit.GetResponse(r, "/health", h.health)
	httpkit.GetJSON(r, "/version", h.version)
	httpkit.GetJSON(r, "/service", h.service)
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"surveyflow-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// @Summary Health report over the database and queue checks
// @Tags Meta
// @Produce json
// @Success 200 {object} sdom.HealthReport "healthy or degraded"
// @Failure 503 {object} sdom.HealthReport "unhealthy"
// @Router /health [get]
func (h *handlers) health(r *http.Request) httpkit.Response {
	ctx, cancel := stdctx.WithTimeout(r.Context(), h.deps.Timeout)
	defer cancel()

	rep := h.deps.Health.Report(ctx)
	status := http.StatusOK
	if rep.Status == sdom.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	return httpkit.Status(status, rep)
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo ok
// @Router /version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse ok
// @Router /service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    version.Service,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
	}, nil
}
