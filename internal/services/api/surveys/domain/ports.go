package domain

import (
	"context"

	sdom "surveyflow/internal/services/surveys/domain"
)

// ServicePort defines the service contract for survey endpoints
type ServicePort interface {
	Submit(ctx context.Context, in SurveyResponseRequest) (SubmitResult, error)
	Nps(ctx context.Context) []sdom.ClientNps
	Insights(ctx context.Context) []sdom.ClientInsights
}
