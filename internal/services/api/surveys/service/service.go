// Package service implements survey submission and metric reads
package service

import (
	"context"

	"surveyflow/internal/core/normalize"
	"surveyflow/internal/platform/logger"
	"surveyflow/internal/platform/net/http/bind"
	"surveyflow/internal/services/api/surveys/domain"
	sdom "surveyflow/internal/services/surveys/domain"
)

// Service defines the service contract for surveys
type Service interface{ domain.ServicePort }

// Svc implements Service over the pipeline ports
type Svc struct {
	enq      sdom.Enqueuer
	metrics  sdom.MetricsReader
	insights sdom.InsightsReader
}

// New creates a surveys service; every port is required
func New(enq sdom.Enqueuer, metrics sdom.MetricsReader, insights sdom.InsightsReader) *Svc {
	if enq == nil {
		panic("surveys.Service requires a non nil Enqueuer")
	}
	if metrics == nil || insights == nil {
		panic("surveys.Service requires metrics and insights readers")
	}
	return &Svc{enq: enq, metrics: metrics, insights: insights}
}

// Submit sanitizes and validates in, then queues it for processing
func (s *Svc) Submit(ctx context.Context, in domain.SurveyResponseRequest) (domain.SubmitResult, error) {
	in = Sanitize(in)
	if err := bind.Validate(in); err != nil {
		return domain.SubmitResult{}, err
	}

	e := toEvent(in)
	if err := s.enq.Enqueue(ctx, e); err != nil {
		return domain.SubmitResult{}, err
	}

	logger.C(ctx).Info().
		Str("response_id", e.ResponseID).
		Str("client_id", e.ClientID).
		Msg("survey response queued")

	return domain.SubmitResult{
		Message:    domain.QueuedMessage,
		ResponseID: e.ResponseID,
		ClientID:   e.ClientID,
	}, nil
}

// Nps returns the per-client NPS snapshot
func (s *Svc) Nps(context.Context) []sdom.ClientNps { return s.metrics.Snapshot() }

// Insights returns the latest satisfaction insights
func (s *Svc) Insights(context.Context) []sdom.ClientInsights { return s.insights.Latest() }

// Sanitize trims and strips control characters from every text field.
// Custom field keys and string values are trimmed; other values pass through
func Sanitize(in domain.SurveyResponseRequest) domain.SurveyResponseRequest {
	in.SurveyID = normalize.Text(in.SurveyID)
	in.ClientID = normalize.Text(in.ClientID)
	in.ResponseID = normalize.Text(in.ResponseID)

	if in.Responses != nil {
		r := *in.Responses
		r.Satisfaction = normalize.Text(r.Satisfaction)
		r.CustomFields = sanitizeFields(r.CustomFields)
		in.Responses = &r
	}
	if in.Metadata != nil {
		m := *in.Metadata
		m.UserAgent = normalize.Text(m.UserAgent)
		m.IPAddress = normalize.Text(m.IPAddress)
		in.Metadata = &m
	}
	return in
}

func sanitizeFields(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		if s, ok := v.(string); ok {
			v = normalize.Text(s)
		}
		out[normalize.Text(k)] = v
	}
	return out
}

// toEvent maps a validated request; Responses and Metadata are non-nil here
func toEvent(in domain.SurveyResponseRequest) sdom.Event {
	return sdom.Event{
		SurveyID:     in.SurveyID,
		ClientID:     in.ClientID,
		ResponseID:   in.ResponseID,
		NpsScore:     *in.Responses.NpsScore,
		Satisfaction: in.Responses.Satisfaction,
		CustomFields: in.Responses.CustomFields,
		SubmittedAt:  in.Metadata.Timestamp.UTC(),
		UserAgent:    in.Metadata.UserAgent,
		IPAddress:    in.Metadata.IPAddress,
	}
}
