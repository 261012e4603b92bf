// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"smarthome-crm-analytics/internal/common/errors"
	"smarthome-crm-analytics/internal/models"
)

// Postgres implements Store over database/sql.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// ==========================
// 1. Proposal Aggregates
// ==========================

func (p *Postgres) ProposalRevenueStats(ctx context.Context, start, end time.Time) (ProposalRevenueStats, error) {
	query := `
		SELECT
			COALESCE(SUM(total_amount) FILTER (WHERE status IN ('approved', 'completed')), 0),
			COUNT(*) FILTER (WHERE status IN ('approved', 'completed')),
			COALESCE(SUM(total_amount) FILTER (WHERE status IN ('approved', 'completed')
				AND customer_persona IS NOT NULL AND voice_transcript IS NOT NULL), 0),
			COUNT(*) FILTER (WHERE status IN ('approved', 'completed')
				AND customer_persona IS NOT NULL AND voice_transcript IS NOT NULL),
			COUNT(*)
		FROM proposals
		WHERE created_at >= $1 AND created_at <= $2`

	var stats ProposalRevenueStats
	err := p.db.QueryRowContext(ctx, query, start, end).Scan(
		&stats.AcceptedTotal,
		&stats.AcceptedCount,
		&stats.AIAttributedTotal,
		&stats.AIAttributedCount,
		&stats.TotalCount,
	)
	if err != nil {
		return ProposalRevenueStats{}, errors.NewQueryExecutionFailedError("proposals", err)
	}
	return stats, nil
}

func (p *Postgres) ProposalGenerationStats(ctx context.Context, start, end time.Time) (GenerationStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(AVG(generation_time), 0),
			COALESCE(AVG(ai_processing_time), 0)
		FROM proposal_metrics
		WHERE created_at >= $1 AND created_at <= $2`

	var stats GenerationStats
	err := p.db.QueryRowContext(ctx, query, start, end).Scan(
		&stats.Count,
		&stats.AvgGenerationSeconds,
		&stats.AvgAISeconds,
	)
	if err != nil {
		return GenerationStats{}, errors.NewQueryExecutionFailedError("proposal_metrics", err)
	}
	return stats, nil
}

func (p *Postgres) ProposalResponseStats(ctx context.Context, start, end time.Time) (ResponseStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status IN ('viewed', 'responded', 'accepted')),
			COALESCE(AVG(view_duration) FILTER (WHERE status IN ('viewed', 'responded', 'accepted')), 0),
			COUNT(*) FILTER (WHERE sent_at IS NOT NULL)
		FROM proposal_metrics
		WHERE created_at >= $1 AND created_at <= $2`

	var stats ResponseStats
	err := p.db.QueryRowContext(ctx, query, start, end).Scan(
		&stats.Responses,
		&stats.AvgViewSeconds,
		&stats.SentCount,
	)
	if err != nil {
		return ResponseStats{}, errors.NewQueryExecutionFailedError("proposal_metrics", err)
	}
	return stats, nil
}

// ==========================
// 2. Voice / Interaction Aggregates
// ==========================

func (p *Postgres) VoiceProcessingStats(ctx context.Context, start, end time.Time) (VoiceStats, error) {
	query := `
		SELECT COUNT(*), COALESCE(AVG(processing_duration_ms), 0)
		FROM voice_recordings
		WHERE transcription_status = 'completed'
		  AND created_at >= $1 AND created_at <= $2`

	var stats VoiceStats
	err := p.db.QueryRowContext(ctx, query, start, end).Scan(&stats.Count, &stats.AvgProcessingMs)
	if err != nil {
		return VoiceStats{}, errors.NewQueryExecutionFailedError("voice_recordings", err)
	}
	return stats, nil
}

func (p *Postgres) InteractionStats(ctx context.Context, start, end time.Time) (InteractionStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE outcome = 'positive'),
			COUNT(satisfaction),
			COALESCE(AVG(satisfaction), 0)
		FROM customer_interactions
		WHERE timestamp >= $1 AND timestamp <= $2`

	var stats InteractionStats
	err := p.db.QueryRowContext(ctx, query, start, end).Scan(
		&stats.Total,
		&stats.Positive,
		&stats.RatedCount,
		&stats.AvgSatisfaction,
	)
	if err != nil {
		return InteractionStats{}, errors.NewQueryExecutionFailedError("customer_interactions", err)
	}
	return stats, nil
}

// ==========================
// 3. Analytics Event Aggregates
// ==========================

func (p *Postgres) PersonaDetectionStats(ctx context.Context, start, end time.Time) (PersonaStats, error) {
	query := `
		SELECT COUNT(accuracy), COALESCE(AVG(accuracy), 0)
		FROM analytics_events
		WHERE event_type = 'persona_detection'
		  AND timestamp >= $1 AND timestamp <= $2`

	var stats PersonaStats
	err := p.db.QueryRowContext(ctx, query, start, end).Scan(&stats.Count, &stats.AvgAccuracy)
	if err != nil {
		return PersonaStats{}, errors.NewQueryExecutionFailedError("analytics_events", err)
	}
	return stats, nil
}

func (p *Postgres) RecommendationStats(ctx context.Context, start, end time.Time) (RecommendationStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE (data ->> 'accepted')::boolean IS TRUE)
		FROM analytics_events
		WHERE event_type = 'product_recommendation'
		  AND timestamp >= $1 AND timestamp <= $2`

	var stats RecommendationStats
	err := p.db.QueryRowContext(ctx, query, start, end).Scan(&stats.Total, &stats.Accepted)
	if err != nil {
		return RecommendationStats{}, errors.NewQueryExecutionFailedError("analytics_events", err)
	}
	return stats, nil
}

func (p *Postgres) EventTotals(ctx context.Context, start, end time.Time) (EventTotals, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE success = false)
		FROM analytics_events
		WHERE timestamp >= $1 AND timestamp <= $2`

	var totals EventTotals
	err := p.db.QueryRowContext(ctx, query, start, end).Scan(&totals.Total, &totals.Failed)
	if err != nil {
		return EventTotals{}, errors.NewQueryExecutionFailedError("analytics_events", err)
	}
	return totals, nil
}

// ==========================
// 4. Event Write Path
// ==========================

func (p *Postgres) InsertEvent(ctx context.Context, event *models.AnalyticsEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	dataJSON, err := marshalJSONB(event.Data)
	if err != nil {
		return errors.NewEventPersistFailedError(err)
	}
	metadataJSON, err := marshalJSONB(event.Metadata)
	if err != nil {
		return errors.NewEventPersistFailedError(err)
	}

	query := `
		INSERT INTO analytics_events (
			id, event_type, event_category, user_id, customer_id, proposal_id,
			data, metadata, processing_time, accuracy, confidence,
			success, error_message, revenue_impact, cost_savings, timestamp
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err = p.db.ExecContext(ctx, query,
		event.ID,
		event.EventType,
		nullString(event.EventCategory),
		nullString(event.UserID),
		nullString(event.CustomerID),
		nullString(event.ProposalID),
		dataJSON,
		metadataJSON,
		event.ProcessingTime,
		event.Accuracy,
		event.Confidence,
		event.Success,
		nullString(event.ErrorMessage),
		event.RevenueImpact,
		event.CostSavings,
		event.Timestamp,
	)
	if err != nil {
		return errors.NewEventPersistFailedError(err)
	}
	return nil
}

func marshalJSONB(m map[string]interface{}) ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
