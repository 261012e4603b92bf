// internal/api/server_test.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthome-crm-analytics/internal/analytics/events"
	"smarthome-crm-analytics/internal/common/logger"
	"smarthome-crm-analytics/internal/models"
)

type fakeSummaries struct {
	lastTimeframe string
	resp          *models.SummaryResponse
}

func (f *fakeSummaries) Generate(_ context.Context, timeframe string) *models.SummaryResponse {
	f.lastTimeframe = timeframe
	return f.resp
}

type fakeTracker struct {
	lastRequest *events.Request
	record      *models.AnalyticsEvent
}

func (f *fakeTracker) Track(_ context.Context, req *events.Request) *models.AnalyticsEvent {
	f.lastRequest = req
	return f.record
}

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(_ context.Context) error {
	return f.err
}

func testServer(summaries SummaryGenerator, tracker EventTracker, health map[string]Pinger) *Server {
	return New(summaries, tracker, health, nil, logger.NewNoOpLogger())
}

func TestHandleSummary(t *testing.T) {
	t.Run("passes the timeframe through and returns 200", func(t *testing.T) {
		summaries := &fakeSummaries{resp: &models.SummaryResponse{
			Success: true,
			Data:    &models.ExecutiveSummary{Timeframe: "last_7_days", Status: "operational"},
		}}
		srv := testServer(summaries, &fakeTracker{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/summary?timeframe=last_7_days", nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "last_7_days", summaries.lastTimeframe)

		var resp models.SummaryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "last_7_days", resp.Data.Timeframe)
	})

	t.Run("failed envelope maps to 500", func(t *testing.T) {
		summaries := &fakeSummaries{resp: &models.SummaryResponse{
			Success: false,
			Error:   "Executive summary generation failed",
			Details: "context canceled",
		}}
		srv := testServer(summaries, &fakeTracker{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/summary", nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHandleTrackEvent(t *testing.T) {
	t.Run("valid payload returns 201 with the record", func(t *testing.T) {
		tracker := &fakeTracker{record: &models.AnalyticsEvent{
			ID:        "e-1",
			EventType: "persona_detection",
			Success:   true,
		}}
		srv := testServer(&fakeSummaries{}, tracker, nil)

		body := strings.NewReader(`{"eventType": "persona_detection", "accuracy": 0.96}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/analytics/events", body)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, tracker.lastRequest)
		assert.Equal(t, "persona_detection", tracker.lastRequest.EventType)
	})

	t.Run("swallowed tracking failure returns 202", func(t *testing.T) {
		srv := testServer(&fakeSummaries{}, &fakeTracker{record: nil}, nil)

		body := strings.NewReader(`{"eventType": "page_view"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/analytics/events", body)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("missing eventType returns 400", func(t *testing.T) {
		tracker := &fakeTracker{}
		srv := testServer(&fakeSummaries{}, tracker, nil)

		body := strings.NewReader(`{"success": true}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/analytics/events", body)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, tracker.lastRequest)
	})

	t.Run("malformed json returns 400", func(t *testing.T) {
		srv := testServer(&fakeSummaries{}, &fakeTracker{}, nil)

		body := strings.NewReader(`{"eventType":`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/analytics/events", body)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleHealth(t *testing.T) {
	t.Run("all components healthy", func(t *testing.T) {
		srv := testServer(&fakeSummaries{}, &fakeTracker{}, map[string]Pinger{
			"postgres": &fakePinger{},
			"redis":    &fakePinger{},
		})

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	})

	t.Run("failing component degrades health", func(t *testing.T) {
		srv := testServer(&fakeSummaries{}, &fakeTracker{}, map[string]Pinger{
			"postgres": &fakePinger{},
			"redis":    &fakePinger{err: errors.New("connection refused")},
		})

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"redis":"unhealthy"`)
	})
}
