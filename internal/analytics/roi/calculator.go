// internal/analytics/roi/calculator.go
package roi

import (
	"context"
	"math"
	"time"

	"smarthome-crm-analytics/internal/analytics/efficiency"
	"smarthome-crm-analytics/internal/analytics/kpimath"
	"smarthome-crm-analytics/internal/analytics/revenue"
	"smarthome-crm-analytics/internal/analytics/timeframe"
	"smarthome-crm-analytics/internal/common/config"
	"smarthome-crm-analytics/internal/common/logger"
	"smarthome-crm-analytics/internal/common/metrics"
	"smarthome-crm-analytics/internal/models"
)

const metricName = "roi"

// Calculator composes the revenue and efficiency calculators rather than
// duplicating their queries.
type Calculator struct {
	revenue    *revenue.Calculator
	efficiency *efficiency.Calculator
	cfg        config.AnalyticsConfig
	logger     logger.Logger
}

func New(rev *revenue.Calculator, eff *efficiency.Calculator, cfg config.AnalyticsConfig, log logger.Logger) *Calculator {
	return &Calculator{
		revenue:    rev,
		efficiency: eff,
		cfg:        cfg,
		logger:     log.WithFields(map[string]interface{}{"metric": metricName}),
	}
}

// Default is the all-zero record substituted when the calculation fails.
func Default() *models.ROICalculation {
	return &models.ROICalculation{Status: models.StatusUnknown}
}

func (c *Calculator) Calculate(ctx context.Context, rng timeframe.Range) *models.ROICalculation {
	started := time.Now()
	record := c.calculate(ctx, rng)
	metrics.CalculatorDuration.WithLabelValues(metricName).Observe(time.Since(started).Seconds())
	return record
}

// calculate has no direct failure source: the composed calculators already
// substitute their defaults, which zero out the benefit terms here.
func (c *Calculator) calculate(ctx context.Context, rng timeframe.Range) *models.ROICalculation {
	rev := c.revenue.Calculate(ctx, rng)
	eff := c.efficiency.Calculate(ctx, rng)

	months := monthsInRange(rng)
	totalCosts := c.cfg.Baselines.MonthlyAICost * float64(months)
	totalBenefits := rev.AIAttributedRevenue + eff.CostSavings
	netBenefit := totalBenefits - totalCosts
	roiPercentage := kpimath.Round1(kpimath.Percent(netBenefit, totalCosts))

	return &models.ROICalculation{
		TotalCosts:        kpimath.RoundWhole(totalCosts),
		TotalBenefits:     kpimath.RoundWhole(totalBenefits),
		NetBenefit:        kpimath.RoundWhole(netBenefit),
		ROIPercentage:     roiPercentage,
		PaybackPeriodDays: paybackPeriod(totalCosts, rev.AIAttributedRevenue),
		MonthsInRange:     months,
		Status:            c.classify(roiPercentage),
	}
}

// monthsInRange approximates months as 30-day blocks, never below 1.
func monthsInRange(rng timeframe.Range) int {
	months := int(math.Round(rng.Days() / 30))
	if months < 1 {
		return 1
	}
	return months
}

// paybackPeriod is nil when there is no revenue benefit to divide by.
func paybackPeriod(totalCosts, revenueBenefit float64) *float64 {
	if revenueBenefit == 0 {
		return nil
	}
	days := kpimath.Round1(totalCosts / (revenueBenefit / 30))
	return &days
}

func (c *Calculator) classify(roiPercentage float64) models.MetricStatus {
	switch {
	case roiPercentage >= c.cfg.Thresholds.ROIExceeding:
		return models.StatusExceedingTarget
	case roiPercentage >= c.cfg.Thresholds.ROIOnTarget:
		return models.StatusOnTarget
	default:
		return models.StatusBelowTarget
	}
}
