// internal/analytics/alerts/evaluator.go
package alerts

import (
	"fmt"

	"smarthome-crm-analytics/internal/common/config"
	"smarthome-crm-analytics/internal/models"
)

// Evaluate inspects the primary metric records against their thresholds and
// returns alerts in a fixed order: revenue, efficiency, AI performance.
// Customer experience is received but not evaluated today; its below_target
// status intentionally produces no alert.
func Evaluate(
	rev *models.RevenueImpact,
	eff *models.EfficiencyGains,
	cust *models.CustomerExperience,
	ai *models.AIPerformance,
	thresholds config.ThresholdConfig,
) []models.Alert {
	_ = cust

	alerts := []models.Alert{}

	if rev != nil && rev.Status == models.StatusBelowTarget {
		alerts = append(alerts, models.Alert{
			Type:     models.AlertWarning,
			Category: "revenue",
			Message:  fmt.Sprintf("Revenue improvement %.1f%% is below target", rev.RevenueImprovement),
			Value:    rev.RevenueImprovement,
		})
	}

	if eff != nil && eff.Status == models.StatusBelowTarget {
		alerts = append(alerts, models.Alert{
			Type:     models.AlertWarning,
			Category: "efficiency",
			Message:  fmt.Sprintf("Time saving %.1f%% is below target", eff.TimeSavingPercentage),
			Value:    eff.TimeSavingPercentage,
		})
	}

	if ai != nil && ai.ErrorRate > thresholds.CriticalErrorRate {
		alerts = append(alerts, models.Alert{
			Type:     models.AlertCritical,
			Category: "ai_performance",
			Message:  fmt.Sprintf("AI error rate %.1f%% exceeds the critical threshold", ai.ErrorRate),
			Value:    ai.ErrorRate,
		})
	}

	return alerts
}
