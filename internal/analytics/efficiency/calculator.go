// internal/analytics/efficiency/calculator.go
package efficiency

import (
	"context"
	"math"
	"time"

	"smarthome-crm-analytics/internal/analytics/kpimath"
	"smarthome-crm-analytics/internal/analytics/timeframe"
	"smarthome-crm-analytics/internal/common/config"
	"smarthome-crm-analytics/internal/common/logger"
	"smarthome-crm-analytics/internal/common/metrics"
	"smarthome-crm-analytics/internal/models"
	"smarthome-crm-analytics/internal/store"
)

const metricName = "efficiency_gains"

// workingDayFraction approximates the 5/7 weekday share of calendar days.
const workingDayFraction = 0.71

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
func Default() *models.EfficiencyGains {
	return &models.EfficiencyGains{Status: models.StatusUnknown}
}

func (c *Calculator) Calculate(ctx context.Context, rng timeframe.Range) *models.EfficiencyGains {
	started := time.Now()
	record, err := c.calculate(ctx, rng)
	metrics.CalculatorDuration.WithLabelValues(metricName).Observe(time.Since(started).Seconds())
	if err != nil {
		c.logger.Error("efficiency gains calculation failed", map[string]interface{}{
			"error": err.Error(),
		})
		metrics.CalculatorFailures.WithLabelValues(metricName).Inc()
		return Default()
	}
	return record
}

func (c *Calculator) calculate(ctx context.Context, rng timeframe.Range) (*models.EfficiencyGains, error) {
	gen, err := c.store.ProposalGenerationStats(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	voice, err := c.store.VoiceProcessingStats(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	baseline := c.cfg.Baselines.TraditionalProposalHours
	currentHours := gen.AvgGenerationSeconds / 3600
	timeSaving := kpimath.Round1(kpimath.Percent(baseline-currentHours, baseline))
	totalSaved := float64(gen.Count) * (baseline - currentHours)

	return &models.EfficiencyGains{
		TimeSavingPercentage:   timeSaving,
		TotalTimeSavedHours:    kpimath.Round1(totalSaved),
		TechnicianProductivity: kpimath.Round1(float64(gen.Count) / workingDays(rng)),
		VoiceProcessingSpeed:   kpimath.Round1(voice.AvgProcessingMs / 1000),
		CostSavings:            kpimath.RoundWhole(totalSaved * c.cfg.Baselines.HourlyLaborCost),
		ProposalCount:          gen.Count,
		Status:                 c.classify(timeSaving),
	}, nil
}

// workingDays scales the calendar range to working days, never below 1.
func workingDays(rng timeframe.Range) float64 {
	days := math.Ceil(rng.Days()) * workingDayFraction
	if days < 1 {
		return 1
	}
	return days
}

func (c *Calculator) classify(timeSaving float64) models.MetricStatus {
	switch {
	case timeSaving >= c.cfg.Thresholds.EfficiencyExceeding:
		return models.StatusExceedingTarget
	case timeSaving >= c.cfg.Thresholds.EfficiencyOnTarget:
		return models.StatusOnTarget
	default:
		return models.StatusBelowTarget
	}
}
