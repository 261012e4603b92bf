// internal/analytics/aiperf/calculator_test.go
package aiperf

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"smarthome-crm-analytics/internal/analytics/timeframe"
	"smarthome-crm-analytics/internal/common/config"
	"smarthome-crm-analytics/internal/common/logger"
	"smarthome-crm-analytics/internal/store"
	"smarthome-crm-analytics/internal/store/storetest"
)

func testCalculator(fake *storetest.Fake) *Calculator {
	return New(fake, config.DefaultAnalytics(), logger.NewNoOpLogger())
}

func thirtyDayRange() timeframe.Range {
	return timeframe.ResolveAt(timeframe.Last30Days, time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC))
}

func TestCalculate(t *testing.T) {
	t.Run("computes accuracy, uptime and error rate", func(t *testing.T) {
		fake := &storetest.Fake{
			PersonaDetectionStatsFn: func(_ context.Context, _, _ time.Time) (store.PersonaStats, error) {
				return store.PersonaStats{Count: 30, AvgAccuracy: 0.96}, nil
			},
			VoiceProcessingStatsFn: func(_ context.Context, _, _ time.Time) (store.VoiceStats, error) {
				return store.VoiceStats{Count: 5, AvgProcessingMs: 3200}, nil
			},
			EventTotalsFn: func(_ context.Context, _, _ time.Time) (store.EventTotals, error) {
				return store.EventTotals{Total: 200, Failed: 12}, nil
			},
			RecommendationStatsFn: func(_ context.Context, _, _ time.Time) (store.RecommendationStats, error) {
				return store.RecommendationStats{Total: 50, Accepted: 20}, nil
			},
		}

		record := testCalculator(fake).Calculate(context.Background(), thirtyDayRange())

		assert.Equal(t, 96.0, record.PersonaAccuracy)
		assert.Equal(t, 40.0, record.RecommendationAcceptance)
		assert.Equal(t, 3.2, record.VoiceProcessingTime)
		assert.Equal(t, 94.0, record.SystemUptime)
		assert.Equal(t, 6.0, record.ErrorRate)
		assert.Equal(t, "on_target", string(record.Status))
	})

	t.Run("no events mean full uptime and zero error rate", func(t *testing.T) {
		record := testCalculator(&storetest.Fake{}).Calculate(context.Background(), thirtyDayRange())

		assert.Equal(t, 100.0, record.SystemUptime)
		assert.Equal(t, 0.0, record.ErrorRate)
		assert.Equal(t, 0.0, record.PersonaAccuracy)
		assert.Equal(t, "below_target", string(record.Status))
	})

	t.Run("recommendation query failure only zeroes acceptance", func(t *testing.T) {
		fake := &storetest.Fake{
			PersonaDetectionStatsFn: func(_ context.Context, _, _ time.Time) (store.PersonaStats, error) {
				return store.PersonaStats{Count: 10, AvgAccuracy: 0.98}, nil
			},
			RecommendationStatsFn: func(_ context.Context, _, _ time.Time) (store.RecommendationStats, error) {
				return store.RecommendationStats{}, errors.New("relation missing")
			},
		}

		record := testCalculator(fake).Calculate(context.Background(), thirtyDayRange())

		assert.Equal(t, 0.0, record.RecommendationAcceptance)
		assert.Equal(t, 98.0, record.PersonaAccuracy)
		assert.Equal(t, "exceeding_target", string(record.Status))
	})

	t.Run("store failure falls back to default record", func(t *testing.T) {
		fake := &storetest.Fake{
			PersonaDetectionStatsFn: func(_ context.Context, _, _ time.Time) (store.PersonaStats, error) {
				return store.PersonaStats{}, errors.New("connection refused")
			},
		}

		record := testCalculator(fake).Calculate(context.Background(), thirtyDayRange())

		assert.Equal(t, Default(), record)
		assert.Equal(t, "unknown", string(record.Status))
	})
}
