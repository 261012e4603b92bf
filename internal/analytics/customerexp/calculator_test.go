// internal/analytics/customerexp/calculator_test.go
package customerexp

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
	t.Run("computes satisfaction and engagement", func(t *testing.T) {
		fake := &storetest.Fake{
			InteractionStatsFn: func(_ context.Context, _, _ time.Time) (store.InteractionStats, error) {
				return store.InteractionStats{Total: 40, Positive: 28, RatedCount: 35, AvgSatisfaction: 8.2}, nil
			},
			ProposalResponseStatsFn: func(_ context.Context, _, _ time.Time) (store.ResponseStats, error) {
				return store.ResponseStats{Responses: 8, AvgViewSeconds: 42.5, SentCount: 20}, nil
			},
		}

		record := testCalculator(fake).Calculate(context.Background(), thirtyDayRange())

		assert.Equal(t, 8.2, record.CustomerSatisfaction)
		assert.Equal(t, 40.0, record.ResponseRate)
		assert.Equal(t, 5.0, record.ResponseRateImprovement)
		assert.Equal(t, 42.5, record.AvgViewDuration)
		assert.Equal(t, 40, record.TotalInteractions)
		assert.Equal(t, 28, record.PositiveInteractions)
		assert.Equal(t, 61.0, record.EngagementScore)
		assert.Equal(t, "on_target", string(record.Status))
	})

	t.Run("high satisfaction exceeds target", func(t *testing.T) {
		fake := &storetest.Fake{
			InteractionStatsFn: func(_ context.Context, _, _ time.Time) (store.InteractionStats, error) {
				return store.InteractionStats{Total: 10, Positive: 9, RatedCount: 10, AvgSatisfaction: 8.7}, nil
			},
		}

		record := testCalculator(fake).Calculate(context.Background(), thirtyDayRange())

		assert.Equal(t, "exceeding_target", string(record.Status))
	})

	t.Run("zero rows yield computed zeros, not unknown", func(t *testing.T) {
		record := testCalculator(&storetest.Fake{}).Calculate(context.Background(), thirtyDayRange())

		assert.Equal(t, 0.0, record.CustomerSatisfaction)
		assert.Equal(t, 0.0, record.ResponseRate)
		assert.Equal(t, -35.0, record.ResponseRateImprovement)
		assert.Equal(t, 0.0, record.EngagementScore)
		assert.Equal(t, "below_target", string(record.Status))
	})

	t.Run("store failure falls back to default record", func(t *testing.T) {
		fake := &storetest.Fake{
			InteractionStatsFn: func(_ context.Context, _, _ time.Time) (store.InteractionStats, error) {
				return store.InteractionStats{}, errors.New("deadlock detected")
			},
		}

		record := testCalculator(fake).Calculate(context.Background(), thirtyDayRange())

		assert.Equal(t, Default(), record)
		assert.Equal(t, "unknown", string(record.Status))
	})
}
