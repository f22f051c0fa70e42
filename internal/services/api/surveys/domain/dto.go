// Package domain holds DTOs for the survey submission and metrics endpoints
package domain

import "time"

// SurveyResponseRequest is the submission payload
type SurveyResponseRequest struct {
	SurveyID   string     `json:"surveyId" validate:"required,max=100" example:"survey-2025-q1"`
	ClientID   string     `json:"clientId" validate:"required,max=100" example:"acme"`
	ResponseID string     `json:"responseId" validate:"required,max=100" example:"resp-0001"`
	Responses  *Responses `json:"responses" validate:"required"`
	Metadata   *Metadata  `json:"metadata" validate:"required"`
}

// Responses carries the answers
type Responses struct {
	NpsScore     *int           `json:"nps_score" validate:"required,min=0,max=10" example:"9"`
	Satisfaction string         `json:"satisfaction" validate:"required,max=50" example:"happy"`
	CustomFields map[string]any `json:"custom_fields,omitempty"`
}

// Metadata describes the submission context
type Metadata struct {
	Timestamp time.Time `json:"timestamp" validate:"required,not_future" example:"2025-03-01T12:00:00Z"`
	UserAgent string    `json:"user_agent" validate:"required,max=512" example:"Mozilla/5.0"`
	IPAddress string    `json:"ip_address" validate:"required,ipv4" example:"203.0.113.7"`
}

// SubmitResult is returned once a response is queued
type SubmitResult struct {
	Message    string `json:"message" example:"Survey response queued for processing"`
	ResponseID string `json:"responseId" example:"resp-0001"`
	ClientID   string `json:"clientId" example:"acme"`
}

// QueuedMessage is the SubmitResult message
const QueuedMessage = "Survey response queued for processing"
