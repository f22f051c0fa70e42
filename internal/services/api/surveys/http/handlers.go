// Package http provides http transport for survey submission and metrics
package http

import (
	stdhttp "net/http"

	"surveyflow/internal/modkit/httpkit"
	"surveyflow/internal/platform/net/http/bind"
	"surveyflow/internal/services/api/surveys/domain"
	svc "surveyflow/internal/services/api/surveys/service"
)

// Register mounts the survey endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostResponse(r, "/surveys/responses", h.submit)
	httpkit.GetJSON(r, "/metrics/nps", h.nps)
	httpkit.GetJSON(r, "/metrics/insights", h.insights)
}

type handlers struct{ svc svc.Service }

// @Summary Submit a survey response
// @Tags Surveys
// @Accept json
// @Produce json
// @Param payload body domain.SurveyResponseRequest true "Survey response"
// @Success 202 {object} domain.SubmitResult "queued"
// @Failure 400 {object} httpkit.Envelope "validation failed"
// @Failure 503 {object} httpkit.Envelope "shutting down"
// @Router /surveys/responses [post]
func (h *handlers) submit(r *stdhttp.Request) httpkit.Response {
	// decode only; the service sanitizes before it validates
	in, err := bind.DecodeJSON[domain.SurveyResponseRequest](r)
	if err != nil {
		return httpkit.Error(err)
	}
	out, err := h.svc.Submit(r.Context(), in)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.Accepted(out)
}

// @Summary Per-client NPS averages
// @Tags Metrics
// @Produce json
// @Success 200 {array} sdom.ClientNps "ok"
// @Router /metrics/nps [get]
func (h *handlers) nps(r *stdhttp.Request) (any, error) {
	return h.svc.Nps(r.Context()), nil
}

// @Summary Latest per-client satisfaction insights
// @Tags Metrics
// @Produce json
// @Success 200 {array} sdom.ClientInsights "ok"
// @Router /metrics/insights [get]
func (h *handlers) insights(r *stdhttp.Request) (any, error) {
	return h.svc.Insights(r.Context()), nil
}
