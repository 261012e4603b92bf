// internal/models/metrics.go
package models

import "time"

// MetricStatus classifies a KPI record against its target thresholds.
type MetricStatus string

const (
	StatusExceedingTarget MetricStatus = "exceeding_target"
	StatusOnTarget        MetricStatus = "on_target"
	StatusBelowTarget     MetricStatus = "below_target"
	// StatusUnknown marks a record that could not be computed; all numeric
	// fields are zero in that case.
	StatusUnknown MetricStatus = "unknown"
)

// RevenueImpact is the revenue KPI record. Currency fields are whole units,
// percentages carry one decimal place.
type RevenueImpact struct {
	TotalRevenue        float64      `json:"totalRevenue"`
	AIAttributedRevenue float64      `json:"aiAttributedRevenue"`
	RevenueImprovement  float64      `json:"revenueImprovement"` // % vs baseline
	ConversionRate      float64      `json:"conversionRate"`     // %
	AverageDealSize     float64      `json:"averageDealSize"`
	DealSizeImprovement float64      `json:"dealSizeImprovement"` // % vs baseline
	AcceptedProposals   int          `json:"acceptedProposals"`
	TotalProposals      int          `json:"totalProposals"`
	Status              MetricStatus `json:"status"`
}

// EfficiencyGains is the time-savings KPI record.
type EfficiencyGains struct {
	TimeSavingPercentage   float64      `json:"timeSavingPercentage"`
	TotalTimeSavedHours    float64      `json:"totalTimeSavedHours"`
	TechnicianProductivity float64      `json:"technicianProductivity"` // proposals per working day
	VoiceProcessingSpeed   float64      `json:"voiceProcessingSpeed"`   // seconds
	CostSavings            float64      `json:"costSavings"`
	ProposalCount          int          `json:"proposalCount"`
	Status                 MetricStatus `json:"status"`
}

// CustomerExperience is the satisfaction/engagement KPI record.
type CustomerExperience struct {
	CustomerSatisfaction    float64      `json:"customerSatisfaction"` // 0-10
	ResponseRate            float64      `json:"responseRate"`         // %
	ResponseRateImprovement float64      `json:"responseRateImprovement"`
	AvgViewDuration         float64      `json:"avgViewDuration"` // seconds
	TotalInteractions       int          `json:"totalInteractions"`
	PositiveInteractions    int          `json:"positiveInteractions"`
	EngagementScore         float64      `json:"engagementScore"`
	Status                  MetricStatus `json:"status"`
}

// AIPerformance is the model-quality KPI record.
type AIPerformance struct {
	PersonaAccuracy          float64      `json:"personaAccuracy"` // %
	RecommendationAcceptance float64      `json:"recommendationAcceptance"`
	VoiceProcessingTime      float64      `json:"voiceProcessingTime"` // seconds
	SystemUptime             float64      `json:"systemUptime"`        // %
	ErrorRate                float64      `json:"errorRate"`           // %
	Status                   MetricStatus `json:"status"`
}

// ROICalculation is the return-on-investment KPI record. PaybackPeriodDays is
// nil when there is no revenue benefit to divide by.
type ROICalculation struct {
	TotalCosts        float64      `json:"totalCosts"`
	TotalBenefits     float64      `json:"totalBenefits"`
	NetBenefit        float64      `json:"netBenefit"`
	ROIPercentage     float64      `json:"roiPercentage"`
	PaybackPeriodDays *float64     `json:"paybackPeriodDays"`
	MonthsInRange     int          `json:"monthsInRange"`
	Status            MetricStatus `json:"status"`
}

// AlertType is the severity of a threshold alert.
type AlertType string

const (
	AlertWarning  AlertType = "warning"
	AlertCritical AlertType = "critical"
)

// Alert is one threshold violation surfaced on the executive summary.
type Alert struct {
	Type     AlertType `json:"type"`
	Category string    `json:"category"`
	Message  string    `json:"message"`
	Value    float64   `json:"value"`
}

// ExecutiveSummary bundles all five KPI records for one timeframe.
type ExecutiveSummary struct {
	Timeframe          string              `json:"timeframe"`
	LastUpdated        time.Time           `json:"lastUpdated"`
	RevenueImpact      *RevenueImpact      `json:"revenueImpact"`
	EfficiencyGains    *EfficiencyGains    `json:"efficiencyGains"`
	CustomerExperience *CustomerExperience `json:"customerExperience"`
	AIPerformance      *AIPerformance      `json:"aiPerformance"`
	ROICalculation     *ROICalculation     `json:"roiCalculation"`
	Status             string              `json:"status"`
	Alerts             []Alert             `json:"alerts"`
}

// SummaryResponse is the envelope returned by the orchestrator. The summary
// either succeeds as a whole or fails as a whole; degraded individual metrics
// still count as success.
type SummaryResponse struct {
	Success bool              `json:"success"`
	Data    *ExecutiveSummary `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Details string            `json:"details,omitempty"`
}
