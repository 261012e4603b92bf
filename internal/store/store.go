// internal/store/store.go
package store

import (
	"context"
	"time"

	"smarthome-crm-analytics/internal/models"
)

// ==========================
// 1. Aggregate Result Shapes
// ==========================

// ProposalRevenueStats aggregates proposals for the revenue calculator.
// Accepted means status in (approved, completed); AI-attributed is the accepted
// subset that has both a customer persona and a voice transcript.
type ProposalRevenueStats struct {
	AcceptedTotal     float64
	AcceptedCount     int
	AIAttributedTotal float64
	AIAttributedCount int
	TotalCount        int
}

// GenerationStats aggregates proposal generation telemetry.
type GenerationStats struct {
	Count                int
	AvgGenerationSeconds float64
	AvgAISeconds         float64
}

// VoiceStats aggregates completed voice recordings.
type VoiceStats struct {
	Count           int
	AvgProcessingMs float64
}

// InteractionStats aggregates customer interactions. AvgSatisfaction only
// considers rows with a non-null satisfaction score.
type InteractionStats struct {
	Total           int
	Positive        int
	RatedCount      int
	AvgSatisfaction float64
}

// ResponseStats aggregates proposal response behavior. Responses are metrics
// rows with status in (viewed, responded, accepted); SentCount counts rows with
// a non-null sent_at.
type ResponseStats struct {
	Responses      int
	AvgViewSeconds float64
	SentCount      int
}

// PersonaStats aggregates persona detection events with a non-null accuracy.
// AvgAccuracy is on the 0-1 scale.
type PersonaStats struct {
	Count       int
	AvgAccuracy float64
}

// RecommendationStats aggregates product recommendation events; Accepted counts
// events whose payload carries accepted=true.
type RecommendationStats struct {
	Total    int
	Accepted int
}

// EventTotals aggregates all analytics events in range.
type EventTotals struct {
	Total  int
	Failed int
}

// ==========================
// 2. Store Contract
// ==========================

// Store is the persistence access layer consumed by the calculators and the
// event tracker. All aggregate methods are bounded by [start, end].
type Store interface {
	ProposalRevenueStats(ctx context.Context, start, end time.Time) (ProposalRevenueStats, error)
	ProposalGenerationStats(ctx context.Context, start, end time.Time) (GenerationStats, error)
	VoiceProcessingStats(ctx context.Context, start, end time.Time) (VoiceStats, error)
	InteractionStats(ctx context.Context, start, end time.Time) (InteractionStats, error)
	ProposalResponseStats(ctx context.Context, start, end time.Time) (ResponseStats, error)
	PersonaDetectionStats(ctx context.Context, start, end time.Time) (PersonaStats, error)
	RecommendationStats(ctx context.Context, start, end time.Time) (RecommendationStats, error)
	EventTotals(ctx context.Context, start, end time.Time) (EventTotals, error)
	InsertEvent(ctx context.Context, event *models.AnalyticsEvent) error
}
