// internal/analytics/efficiency/calculator_test.go
package efficiency

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
	t.Run("time saving exactly at exceeding threshold", func(t *testing.T) {
		fake := &storetest.Fake{
			ProposalGenerationStatsFn: func(_ context.Context, _, _ time.Time) (store.GenerationStats, error) {
				// 900 seconds is 0.25 hours against the 2.5 hour baseline.
				return store.GenerationStats{Count: 12, AvgGenerationSeconds: 900, AvgAISeconds: 45}, nil
			},
			VoiceProcessingStatsFn: func(_ context.Context, _, _ time.Time) (store.VoiceStats, error) {
				return store.VoiceStats{Count: 5, AvgProcessingMs: 3200}, nil
			},
		}

		record := testCalculator(fake).Calculate(context.Background(), thirtyDayRange())

		assert.Equal(t, 90.0, record.TimeSavingPercentage)
		assert.Equal(t, "exceeding_target", string(record.Status))
		assert.Equal(t, 27.0, record.TotalTimeSavedHours)
		assert.Equal(t, 1350.0, record.CostSavings)
		assert.Equal(t, 3.2, record.VoiceProcessingSpeed)
		assert.Equal(t, 12, record.ProposalCount)
	})

	t.Run("productivity scales proposals by working days", func(t *testing.T) {
		fake := &storetest.Fake{
			ProposalGenerationStatsFn: func(_ context.Context, _, _ time.Time) (store.GenerationStats, error) {
				return store.GenerationStats{Count: 21, AvgGenerationSeconds: 1800}, nil
			},
		}

		record := testCalculator(fake).Calculate(context.Background(), thirtyDayRange())

		// 30 calendar days scale to 21.3 working days.
		assert.Equal(t, 1.0, record.TechnicianProductivity)
	})

	t.Run("zero rows yield zero savings", func(t *testing.T) {
		record := testCalculator(&storetest.Fake{}).Calculate(context.Background(), thirtyDayRange())

		assert.Equal(t, 0.0, record.TotalTimeSavedHours)
		assert.Equal(t, 0.0, record.CostSavings)
		assert.Equal(t, 0.0, record.TechnicianProductivity)
		assert.Equal(t, 0, record.ProposalCount)
	})

	t.Run("store failure falls back to default record", func(t *testing.T) {
		fake := &storetest.Fake{
			ProposalGenerationStatsFn: func(_ context.Context, _, _ time.Time) (store.GenerationStats, error) {
				return store.GenerationStats{}, errors.New("timeout")
			},
		}

		record := testCalculator(fake).Calculate(context.Background(), thirtyDayRange())

		assert.Equal(t, Default(), record)
		assert.Equal(t, "unknown", string(record.Status))
	})
}

func TestWorkingDaysMinimum(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	rng := timeframe.Range{Start: now.Add(-6 * time.Hour), End: now}

	assert.Equal(t, 1.0, workingDays(rng))
}
