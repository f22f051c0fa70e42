// Package domain holds the survey pipeline types, ports and errors
package domain

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// Event is one validated survey response moving through the pipeline.
// Pass it by value and treat CustomFields as read only
type Event struct {
	SurveyID     string
	ClientID     string
	ResponseID   string
	NpsScore     int
	Satisfaction string
	CustomFields map[string]any
	SubmittedAt  time.Time
	UserAgent    string
	IPAddress    string
}

// QueueItem is an Event plus its retry counter; it is never persisted
type QueueItem struct {
	Event   Event
	Attempt int
}

// FastRecord is the read model kept in the fast store
type FastRecord struct {
	ClientID     string         `json:"clientId"`
	ResponseID   string         `json:"responseId"`
	NpsScore     int            `json:"npsScore"`
	Satisfaction string         `json:"satisfaction"`
	SubmittedAt  time.Time      `json:"submittedAt"`
	CustomFields map[string]any `json:"customFields,omitempty"`
	UserAgent    string         `json:"userAgent,omitempty"`
}

// ClientNps is the running NPS average for one client
type ClientNps struct {
	ClientID string  `json:"clientId"`
	Average  float64 `json:"average"`
	Count    int64   `json:"count"`
}

// ClientInsights is the satisfaction distribution for one client at GeneratedAt
type ClientInsights struct {
	ClientID           string         `json:"clientId"`
	SatisfactionCounts map[string]int `json:"satisfactionCounts"`
	GeneratedAt        time.Time      `json:"generatedAt"`
}

// Record is the durable row
type Record struct {
	ID           uuid.UUID
	SurveyID     string
	ClientID     string
	ResponseID   string
	NpsScore     int
	Satisfaction string
	CustomFields map[string]any
	SubmittedAt  time.Time
	UserAgent    string
	EncryptedIP  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Average returns sum/count, 0 when count is 0
func Average(sum, count int64) float64 {
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

// FastRecordOf builds the read model for e with a private copy of its custom fields
func FastRecordOf(e Event) FastRecord {
	return FastRecord{
		ClientID:     e.ClientID,
		ResponseID:   e.ResponseID,
		NpsScore:     e.NpsScore,
		Satisfaction: e.Satisfaction,
		SubmittedAt:  e.SubmittedAt,
		CustomFields: cloneFields(e.CustomFields),
		UserAgent:    e.UserAgent,
	}
}

// FastRecord rebuilds the read model from a durable row
func (r Record) FastRecord() FastRecord {
	return FastRecord{
		ClientID:     r.ClientID,
		ResponseID:   r.ResponseID,
		NpsScore:     r.NpsScore,
		Satisfaction: r.Satisfaction,
		SubmittedAt:  r.SubmittedAt,
		CustomFields: cloneFields(r.CustomFields),
		UserAgent:    r.UserAgent,
	}
}

func cloneFields(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	return maps.Clone(in)
}
