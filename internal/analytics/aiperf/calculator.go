// internal/analytics/aiperf/calculator.go
package aiperf

import (
	"context"
	"time"

	"smarthome-crm-analytics/internal/analytics/kpimath"
	"smarthome-crm-analytics/internal/analytics/timeframe"
	"smarthome-crm-analytics/internal/common/config"
	"smarthome-crm-analytics/internal/common/logger"
	"smarthome-crm-analytics/internal/common/metrics"
	"smarthome-crm-analytics/internal/models"
	"smarthome-crm-analytics/internal/store"
)

const metricName = "ai_performance"

type Calculator struct {
	store  store.Store
	cfg    config.AnalyticsConfig
	logger logger.Logger
}

func New(st store.Store, cfg config.AnalyticsConfig, log logger.Logger) *Calculator {
	return &Calculator{
		store:  st,
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"metric": metricName}),
	}
}

// Default is the all-zero record substituted when the calculation fails.
func Default() *models.AIPerformance {
	return &models.AIPerformance{Status: models.StatusUnknown}
}

func (c *Calculator) Calculate(ctx context.Context, rng timeframe.Range) *models.AIPerformance {
	started := time.Now()
	record, err := c.calculate(ctx, rng)
	metrics.CalculatorDuration.WithLabelValues(metricName).Observe(time.Since(started).Seconds())
	if err != nil {
		c.logger.Error("ai performance calculation failed", map[string]interface{}{
			"error": err.Error(),
		})
		metrics.CalculatorFailures.WithLabelValues(metricName).Inc()
		return Default()
	}
	return record
}

func (c *Calculator) calculate(ctx context.Context, rng timeframe.Range) (*models.AIPerformance, error) {
	persona, err := c.store.PersonaDetectionStats(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	voice, err := c.store.VoiceProcessingStats(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	totals, err := c.store.EventTotals(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	personaAccuracy := kpimath.Round1(persona.AvgAccuracy * 100)

	uptime := 100.0
	errorRate := 0.0
	if totals.Total > 0 {
		uptime = kpimath.Round1(kpimath.Percent(float64(totals.Total-totals.Failed), float64(totals.Total)))
		errorRate = kpimath.Round1(kpimath.Percent(float64(totals.Failed), float64(totals.Total)))
	}

	return &models.AIPerformance{
		PersonaAccuracy:          personaAccuracy,
		RecommendationAcceptance: c.recommendationAcceptance(ctx, rng),
		VoiceProcessingTime:      kpimath.Round1(voice.AvgProcessingMs / 1000),
		SystemUptime:             uptime,
		ErrorRate:                errorRate,
		Status:                   c.classify(personaAccuracy),
	}, nil
}

// recommendationAcceptance isolates its own errors: a failed query degrades
// this single figure to 0 without failing the whole record.
func (c *Calculator) recommendationAcceptance(ctx context.Context, rng timeframe.Range) float64 {
	stats, err := c.store.RecommendationStats(ctx, rng.Start, rng.End)
	if err != nil {
		c.logger.Warn("recommendation acceptance query failed", map[string]interface{}{
			"error": err.Error(),
		})
		return 0
	}
	return kpimath.Round1(kpimath.Percent(float64(stats.Accepted), float64(stats.Total)))
}

func (c *Calculator) classify(personaAccuracy float64) models.MetricStatus {
	switch {
	case personaAccuracy >= c.cfg.Thresholds.AccuracyExceeding:
		return models.StatusExceedingTarget
	case personaAccuracy >= c.cfg.Thresholds.AccuracyOnTarget:
		return models.StatusOnTarget
	default:
		return models.StatusBelowTarget
	}
}
