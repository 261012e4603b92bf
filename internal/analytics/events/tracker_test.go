// internal/analytics/events/tracker_test.go
package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthome-crm-analytics/internal/common/logger"
	"smarthome-crm-analytics/internal/models"
	"smarthome-crm-analytics/internal/store/storetest"
)

type fakeIndexer struct {
	indexed int
	lastID  string
	err     error
}

func (f *fakeIndexer) Index(_ context.Context, _ string, id string, _ []byte) error {
	f.indexed++
	f.lastID = id
	return f.err
}

func testTracker(fake *storetest.Fake, indexer Indexer) *Tracker {
	tr := NewTracker(fake, indexer, "analytics-events", logger.NewNoOpLogger())
	tr.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }
	return tr
}

func TestTrack(t *testing.T) {
	t.Run("missing success defaults to true", func(t *testing.T) {
		fake := &storetest.Fake{}

		record := testTracker(fake, nil).Track(context.Background(), &Request{EventType: "persona_detection"})

		require.NotNil(t, record)
		assert.True(t, record.Success)
		assert.NotEmpty(t, record.ID)
		assert.False(t, record.Timestamp.IsZero())
		require.Len(t, fake.InsertedEvents, 1)
	})

	t.Run("explicit false success is preserved", func(t *testing.T) {
		success := false

		record := testTracker(&storetest.Fake{}, nil).Track(context.Background(), &Request{
			EventType: "persona_detection",
			Success:   &success,
		})

		require.NotNil(t, record)
		assert.False(t, record.Success)
	})

	t.Run("persistence failure returns nil", func(t *testing.T) {
		fake := &storetest.Fake{
			InsertEventFn: func(_ context.Context, _ *models.AnalyticsEvent) error {
				return errors.New("disk full")
			},
		}

		record := testTracker(fake, nil).Track(context.Background(), &Request{EventType: "page_view"})

		assert.Nil(t, record)
	})

	t.Run("persisted events are mirrored into the index", func(t *testing.T) {
		indexer := &fakeIndexer{}

		record := testTracker(&storetest.Fake{}, indexer).Track(context.Background(), &Request{EventType: "page_view"})

		require.NotNil(t, record)
		assert.Equal(t, 1, indexer.indexed)
		assert.Equal(t, record.ID, indexer.lastID)
	})

	t.Run("indexing failure does not affect the returned record", func(t *testing.T) {
		indexer := &fakeIndexer{err: errors.New("cluster red")}

		record := testTracker(&storetest.Fake{}, indexer).Track(context.Background(), &Request{EventType: "page_view"})

		require.NotNil(t, record)
		assert.True(t, record.Success)
	})
}

func TestValidatePayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr string
	}{
		{name: "minimal valid payload", payload: `{"eventType": "page_view"}`},
		{
			name:    "full valid payload",
			payload: `{"eventType": "persona_detection", "accuracy": 0.96, "success": false, "data": {"persona": "eco_conscious"}}`,
		},
		{name: "missing eventType", payload: `{"success": true}`, wantErr: "eventType"},
		{name: "empty eventType", payload: `{"eventType": ""}`, wantErr: "eventType"},
		{name: "accuracy out of range", payload: `{"eventType": "persona_detection", "accuracy": 1.5}`, wantErr: "accuracy"},
		{name: "wrong success type", payload: `{"eventType": "page_view", "success": "yes"}`, wantErr: "success"},
		{name: "not json", payload: `{"eventType":`, wantErr: "JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayload([]byte(tt.payload))
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "EVENT_INVALID")
			}
		})
	}
}
