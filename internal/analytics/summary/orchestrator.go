// internal/analytics/summary/orchestrator.go
package summary

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"smarthome-crm-analytics/internal/analytics/aiperf"
	"smarthome-crm-analytics/internal/analytics/alerts"
	"smarthome-crm-analytics/internal/analytics/customerexp"
	"smarthome-crm-analytics/internal/analytics/efficiency"
	"smarthome-crm-analytics/internal/analytics/revenue"
	"smarthome-crm-analytics/internal/analytics/roi"
	"smarthome-crm-analytics/internal/analytics/timeframe"
	"smarthome-crm-analytics/internal/common/config"
	"smarthome-crm-analytics/internal/common/logger"
	"smarthome-crm-analytics/internal/common/metrics"
	"smarthome-crm-analytics/internal/models"
	"smarthome-crm-analytics/internal/store"
)

const cacheKeyPrefix = "analytics:summary:"

// Orchestrator assembles the executive summary: it resolves the date range,
// runs the five calculators concurrently, evaluates alerts, and caches the
// result. Individual calculator failures degrade to default records; only a
// top-level failure produces an unsuccessful envelope.
type Orchestrator struct {
	revenue    *revenue.Calculator
	efficiency *efficiency.Calculator
	customer   *customerexp.Calculator
	ai         *aiperf.Calculator
	roi        *roi.Calculator
	thresholds config.ThresholdConfig
	cache      *redis.Client
	cacheTTL   time.Duration
	notifier   *alerts.Notifier
	logger     logger.Logger
	now        func() time.Time
}

// New wires the orchestrator. cache and notifier may be nil, disabling the
// summary cache and alert fan-out respectively.
func New(st store.Store, cfg config.AnalyticsConfig, cache *redis.Client, notifier *alerts.Notifier, log logger.Logger) *Orchestrator {
	rev := revenue.New(st, cfg, log)
	eff := efficiency.New(st, cfg, log)
	return &Orchestrator{
		revenue:    rev,
		efficiency: eff,
		customer:   customerexp.New(st, cfg, log),
		ai:         aiperf.New(st, cfg, log),
		roi:        roi.New(rev, eff, cfg, log),
		thresholds: cfg.Thresholds,
		cache:      cache,
		cacheTTL:   time.Duration(cfg.CacheTTL) * time.Second,
		notifier:   notifier,
		logger:     log.WithFields(map[string]interface{}{"component": "summary-orchestrator"}),
		now:        time.Now,
	}
}

// Generate produces the summary envelope for a timeframe token. Unrecognized
// tokens behave like last_30_days.
func (o *Orchestrator) Generate(ctx context.Context, token string) *models.SummaryResponse {
	tf := timeframe.Normalize(token)

	if cached := o.fromCache(ctx, tf); cached != nil {
		metrics.SummaryRequests.WithLabelValues(tf, "cache_hit").Inc()
		return &models.SummaryResponse{Success: true, Data: cached}
	}

	if err := ctx.Err(); err != nil {
		metrics.SummaryRequests.WithLabelValues(tf, "failure").Inc()
		o.logger.Error("executive summary generation failed", map[string]interface{}{
			"timeframe": tf,
			"error":     err.Error(),
		})
		return &models.SummaryResponse{
			Success: false,
			Error:   "Executive summary generation failed",
			Details: err.Error(),
		}
	}

	rng := timeframe.ResolveAt(tf, o.now().UTC())

	summary := &models.ExecutiveSummary{
		Timeframe:   tf,
		LastUpdated: rng.End,
		Status:      "operational",
	}

	// Calculators are independent and each writes a distinct slot.
	var wg sync.WaitGroup
	wg.Add(5)
	go func() {
		defer wg.Done()
		summary.RevenueImpact = o.revenue.Calculate(ctx, rng)
	}()
	go func() {
		defer wg.Done()
		summary.EfficiencyGains = o.efficiency.Calculate(ctx, rng)
	}()
	go func() {
		defer wg.Done()
		summary.CustomerExperience = o.customer.Calculate(ctx, rng)
	}()
	go func() {
		defer wg.Done()
		summary.AIPerformance = o.ai.Calculate(ctx, rng)
	}()
	go func() {
		defer wg.Done()
		summary.ROICalculation = o.roi.Calculate(ctx, rng)
	}()
	wg.Wait()

	summary.Alerts = alerts.Evaluate(
		summary.RevenueImpact,
		summary.EfficiencyGains,
		summary.CustomerExperience,
		summary.AIPerformance,
		o.thresholds,
	)

	o.toCache(ctx, tf, summary)
	if o.notifier != nil {
		o.notifier.Notify(ctx, tf, summary.Alerts)
	}

	metrics.SummaryRequests.WithLabelValues(tf, "success").Inc()
	return &models.SummaryResponse{Success: true, Data: summary}
}

// fromCache returns the cached summary or nil. Cache trouble never fails the
// request; it just forces recomputation.
func (o *Orchestrator) fromCache(ctx context.Context, tf string) *models.ExecutiveSummary {
	if o.cache == nil || o.cacheTTL <= 0 {
		return nil
	}

	raw, err := o.cache.Get(ctx, cacheKeyPrefix+tf).Bytes()
	if err != nil {
		if err != redis.Nil {
			o.logger.Warn("summary cache read failed", map[string]interface{}{
				"timeframe": tf,
				"error":     err.Error(),
			})
		}
		return nil
	}

	var summary models.ExecutiveSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		o.logger.Warn("summary cache entry is corrupt", map[string]interface{}{
			"timeframe": tf,
			"error":     err.Error(),
		})
		return nil
	}

	metrics.SummaryCacheHits.WithLabelValues(tf).Inc()
	return &summary
}

func (o *Orchestrator) toCache(ctx context.Context, tf string, summary *models.ExecutiveSummary) {
	if o.cache == nil || o.cacheTTL <= 0 {
		return
	}

	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := o.cache.Set(ctx, cacheKeyPrefix+tf, raw, o.cacheTTL).Err(); err != nil {
		o.logger.Warn("summary cache write failed", map[string]interface{}{
			"timeframe": tf,
			"error":     err.Error(),
		})
	}
}
