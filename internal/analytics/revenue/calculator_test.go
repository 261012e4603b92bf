// internal/analytics/revenue/calculator_test.go
package revenue

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
	t.Run("improvement exactly at on-target threshold", func(t *testing.T) {
		fake := &storetest.Fake{
			ProposalRevenueStatsFn: func(_ context.Context, _, _ time.Time) (store.ProposalRevenueStats, error) {
				return store.ProposalRevenueStats{
					AcceptedTotal:     150000,
					AcceptedCount:     10,
					AIAttributedTotal: 90000,
					AIAttributedCount: 6,
					TotalCount:        25,
				}, nil
			},
		}

		record := testCalculator(fake).Calculate(context.Background(), thirtyDayRange())

		assert.Equal(t, 20.0, record.RevenueImprovement)
		assert.Equal(t, "on_target", string(record.Status))
		assert.Equal(t, 150000.0, record.TotalRevenue)
		assert.Equal(t, 90000.0, record.AIAttributedRevenue)
		assert.Equal(t, 40.0, record.ConversionRate)
		assert.Equal(t, 15000.0, record.AverageDealSize)
		assert.Equal(t, 10, record.AcceptedProposals)
		assert.Equal(t, 25, record.TotalProposals)
	})

	t.Run("improvement above exceeding threshold", func(t *testing.T) {
		fake := &storetest.Fake{
			ProposalRevenueStatsFn: func(_ context.Context, _, _ time.Time) (store.ProposalRevenueStats, error) {
				return store.ProposalRevenueStats{AcceptedTotal: 160000, AcceptedCount: 8, TotalCount: 8}, nil
			},
		}

		record := testCalculator(fake).Calculate(context.Background(), thirtyDayRange())

		assert.Equal(t, 28.0, record.RevenueImprovement)
		assert.Equal(t, "exceeding_target", string(record.Status))
	})

	t.Run("zero rows yield computed zeros, not unknown", func(t *testing.T) {
		record := testCalculator(&storetest.Fake{}).Calculate(context.Background(), thirtyDayRange())

		assert.Equal(t, 0.0, record.TotalRevenue)
		assert.Equal(t, 0.0, record.ConversionRate)
		assert.Equal(t, 0.0, record.AverageDealSize)
		assert.Equal(t, -100.0, record.RevenueImprovement)
		assert.Equal(t, "below_target", string(record.Status))
	})

	t.Run("store failure falls back to default record", func(t *testing.T) {
		fake := &storetest.Fake{
			ProposalRevenueStatsFn: func(_ context.Context, _, _ time.Time) (store.ProposalRevenueStats, error) {
				return store.ProposalRevenueStats{}, errors.New("connection refused")
			},
		}

		record := testCalculator(fake).Calculate(context.Background(), thirtyDayRange())

		assert.Equal(t, Default(), record)
		assert.Equal(t, "unknown", string(record.Status))
	})
}
