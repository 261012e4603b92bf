// internal/analytics/revenue/calculator.go
package revenue

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

const metricName = "revenue_impact"

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
func Default() *models.RevenueImpact {
	return &models.RevenueImpact{Status: models.StatusUnknown}
}

// Calculate never fails: on error it logs, counts the failure, and returns
// the default record.
func (c *Calculator) Calculate(ctx context.Context, rng timeframe.Range) *models.RevenueImpact {
	started := time.Now()
	record, err := c.calculate(ctx, rng)
	metrics.CalculatorDuration.WithLabelValues(metricName).Observe(time.Since(started).Seconds())
	if err != nil {
		c.logger.Error("revenue impact calculation failed", map[string]interface{}{
			"error": err.Error(),
		})
		metrics.CalculatorFailures.WithLabelValues(metricName).Inc()
		return Default()
	}
	return record
}

func (c *Calculator) calculate(ctx context.Context, rng timeframe.Range) (*models.RevenueImpact, error) {
	stats, err := c.store.ProposalRevenueStats(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	improvement := kpimath.Round1(kpimath.Improvement(stats.AcceptedTotal, c.cfg.Baselines.Revenue))
	avgDealSize := kpimath.SafeDiv(stats.AcceptedTotal, float64(stats.AcceptedCount))

	return &models.RevenueImpact{
		TotalRevenue:        kpimath.RoundWhole(stats.AcceptedTotal),
		AIAttributedRevenue: kpimath.RoundWhole(stats.AIAttributedTotal),
		RevenueImprovement:  improvement,
		ConversionRate:      kpimath.Round1(kpimath.Percent(float64(stats.AcceptedCount), float64(stats.TotalCount))),
		AverageDealSize:     kpimath.RoundWhole(avgDealSize),
		DealSizeImprovement: kpimath.Round1(kpimath.Improvement(avgDealSize, c.cfg.Baselines.DealSize)),
		AcceptedProposals:   stats.AcceptedCount,
		TotalProposals:      stats.TotalCount,
		Status:              c.classify(improvement),
	}, nil
}

func (c *Calculator) classify(improvement float64) models.MetricStatus {
	switch {
	case improvement >= c.cfg.Thresholds.RevenueExceeding:
		return models.StatusExceedingTarget
	case improvement >= c.cfg.Thresholds.RevenueOnTarget:
		return models.StatusOnTarget
	default:
		return models.StatusBelowTarget
	}
}
