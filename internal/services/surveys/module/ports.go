package module

import "surveyflow/internal/services/surveys/domain"

// Ports holds the ports exposed by the surveys module
type Ports struct {
	Enqueuer domain.Enqueuer
	Metrics  domain.MetricsReader
	Insights domain.InsightsReader
	Health   domain.HealthReporter
}
