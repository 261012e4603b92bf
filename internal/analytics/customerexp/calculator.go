// internal/analytics/customerexp/calculator.go
package customerexp

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

const metricName = "customer_experience"

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
func Default() *models.CustomerExperience {
	return &models.CustomerExperience{Status: models.StatusUnknown}
}

func (c *Calculator) Calculate(ctx context.Context, rng timeframe.Range) *models.CustomerExperience {
	started := time.Now()
	record, err := c.calculate(ctx, rng)
	metrics.CalculatorDuration.WithLabelValues(metricName).Observe(time.Since(started).Seconds())
	if err != nil {
		c.logger.Error("customer experience calculation failed", map[string]interface{}{
			"error": err.Error(),
		})
		metrics.CalculatorFailures.WithLabelValues(metricName).Inc()
		return Default()
	}
	return record
}

func (c *Calculator) calculate(ctx context.Context, rng timeframe.Range) (*models.CustomerExperience, error) {
	interactions, err := c.store.InteractionStats(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	responses, err := c.store.ProposalResponseStats(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	satisfaction := kpimath.Round1(interactions.AvgSatisfaction)
	responseRate := kpimath.Round1(kpimath.Percent(float64(responses.Responses), float64(responses.SentCount)))

	return &models.CustomerExperience{
		CustomerSatisfaction: satisfaction,
		ResponseRate:         responseRate,
		// Baseline is already a percentage, so improvement is a point difference.
		ResponseRateImprovement: kpimath.Round1(responseRate - c.cfg.Baselines.ResponseRate),
		AvgViewDuration:         kpimath.Round1(responses.AvgViewSeconds),
		TotalInteractions:       interactions.Total,
		PositiveInteractions:    interactions.Positive,
		EngagementScore:         kpimath.Round1((responseRate + satisfaction*10) / 2),
		Status:                  c.classify(satisfaction),
	}, nil
}

func (c *Calculator) classify(satisfaction float64) models.MetricStatus {
	switch {
	case satisfaction >= c.cfg.Thresholds.SatisfactionExceeding:
		return models.StatusExceedingTarget
	case satisfaction >= c.cfg.Thresholds.SatisfactionOnTarget:
		return models.StatusOnTarget
	default:
		return models.StatusBelowTarget
	}
}
