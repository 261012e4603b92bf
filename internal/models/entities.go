// internal/models/entities.go
package models

import "time"

// ProposalStatus is the lifecycle state of a sales proposal.
type ProposalStatus string

const (
	ProposalStatusDraft     ProposalStatus = "draft"
	ProposalStatusSent      ProposalStatus = "sent"
	ProposalStatusViewed    ProposalStatus = "viewed"
	ProposalStatusAccepted  ProposalStatus = "accepted"
	ProposalStatusRejected  ProposalStatus = "rejected"
	ProposalStatusExpired   ProposalStatus = "expired"
	ProposalStatusApproved  ProposalStatus = "approved"
	ProposalStatusCompleted ProposalStatus = "completed"
)

// Proposal is a sales proposal owned by the CRM layer; read-only here.
type Proposal struct {
	ID              string         `json:"id"`
	CustomerID      string         `json:"customerId"`
	Status          ProposalStatus `json:"status"`
	TotalAmount     float64        `json:"totalAmount"`
	CustomerPersona *string        `json:"customerPersona,omitempty"`
	VoiceTranscript *string        `json:"voiceTranscript,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
}

// ProposalMetrics is per-proposal generation telemetry.
type ProposalMetrics struct {
	ID               string     `json:"id"`
	ProposalID       string     `json:"proposalId"`
	Status           string     `json:"status"`
	GenerationTime   float64    `json:"generationTime"`   // seconds
	AIProcessingTime float64    `json:"aiProcessingTime"` // seconds
	SentAt           *time.Time `json:"sentAt,omitempty"`
	ViewDuration     *float64   `json:"viewDuration,omitempty"` // seconds
	CreatedAt        time.Time  `json:"createdAt"`
}

// VoiceRecording is a captured voice input. Only recordings with
// TranscriptionStatus "completed" count toward processing stats.
type VoiceRecording struct {
	ID                   string    `json:"id"`
	TranscriptionStatus  string    `json:"transcriptionStatus"`
	ProcessingDurationMs *float64  `json:"processingDurationMs,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
}

const TranscriptionCompleted = "completed"

// CustomerInteraction is a logged customer touchpoint.
type CustomerInteraction struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customerId"`
	Satisfaction *float64  `json:"satisfaction,omitempty"` // 0-10 scale
	Outcome      string    `json:"outcome"`
	Timestamp    time.Time `json:"timestamp"`
}

const OutcomePositive = "positive"

// AnalyticsEvent is a generic instrumented event. Created by the event
// tracker, read back by the AI performance calculator.
type AnalyticsEvent struct {
	ID             string                 `json:"id"`
	EventType      string                 `json:"eventType"`
	EventCategory  string                 `json:"eventCategory,omitempty"`
	UserID         string                 `json:"userId,omitempty"`
	CustomerID     string                 `json:"customerId,omitempty"`
	ProposalID     string                 `json:"proposalId,omitempty"`
	Data           map[string]interface{} `json:"data,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	ProcessingTime *float64               `json:"processingTime,omitempty"`
	Accuracy       *float64               `json:"accuracy,omitempty"` // 0-1
	Confidence     *float64               `json:"confidence,omitempty"`
	Success        bool                   `json:"success"`
	ErrorMessage   string                 `json:"errorMessage,omitempty"`
	RevenueImpact  *float64               `json:"revenueImpact,omitempty"`
	CostSavings    *float64               `json:"costSavings,omitempty"`
	Timestamp      time.Time              `json:"timestamp"`
}

const (
	EventTypePersonaDetection      = "persona_detection"
	EventTypeProductRecommendation = "product_recommendation"
)
