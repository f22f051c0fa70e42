package domain

import "time"

// HealthStatus is the outcome of one check or of the whole report
type HealthStatus string

// Health statuses ordered from best to worst
const (
	Healthy   HealthStatus = "Healthy"
	Degraded  HealthStatus = "Degraded"
	Unhealthy HealthStatus = "Unhealthy"
)

// Worse returns the more severe of a and b
func (s HealthStatus) Worse(o HealthStatus) HealthStatus {
	if rank(o) > rank(s) {
		return o
	}
	return s
}

func rank(s HealthStatus) int {
	switch s {
	case Healthy:
		return 0
	case Degraded:
		return 1
	default:
		return 2
	}
}

// HealthEntry is the result of one named check
type HealthEntry struct {
	Name        string        `json:"name"`
	Status      HealthStatus  `json:"status"`
	Description string        `json:"description,omitempty"`
	Error       string        `json:"error,omitempty"`
	Duration    time.Duration `json:"duration_ns"`
}

// HealthReport aggregates all checks; Status is the worst entry
type HealthReport struct {
	Status    HealthStatus  `json:"status"`
	CheckedAt time.Time     `json:"checkedAt"`
	Entries   []HealthEntry `json:"entries"`
}
