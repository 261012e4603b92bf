// internal/api/server.go
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"smarthome-crm-analytics/internal/analytics/events"
	"smarthome-crm-analytics/internal/common/logger"
	"smarthome-crm-analytics/internal/common/observability"
	"smarthome-crm-analytics/internal/models"
)

// SummaryGenerator produces the executive summary envelope.
type SummaryGenerator interface {
	Generate(ctx context.Context, timeframe string) *models.SummaryResponse
}

// EventTracker persists analytics events, best-effort.
type EventTracker interface {
	Track(ctx context.Context, req *events.Request) *models.AnalyticsEvent
}

// Pinger reports the liveness of a backing client.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the HTTP surface of the analytics service.
type Server struct {
	router    *mux.Router
	summaries SummaryGenerator
	tracker   EventTracker
	health    map[string]Pinger
	obs       *observability.Observability
	logger    logger.Logger
}

// New builds the server and its routes. obs may be nil; health pingers are
// keyed by component name and may be empty.
func New(summaries SummaryGenerator, tracker EventTracker, health map[string]Pinger, obs *observability.Observability, log logger.Logger) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		summaries: summaries,
		tracker:   tracker,
		health:    health,
		obs:       obs,
		logger:    log.WithFields(map[string]interface{}{"component": "api"}),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api/v1/analytics").Subrouter()
	api.HandleFunc("/summary", s.instrument("summary", s.handleSummary)).Methods(http.MethodGet)
	api.HandleFunc("/events", s.instrument("events", s.handleTrackEvent)).Methods(http.MethodPost)

	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// instrument records request count and duration per route.
func (s *Server) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		if s.obs != nil {
			s.obs.RecordRequest(r.Context(), route, http.StatusText(rec.status))
			s.obs.RecordRequestDuration(r.Context(), route, time.Since(started))
		}
		s.logger.Debug("request handled", map[string]interface{}{
			"route":    route,
			"method":   r.Method,
			"status":   rec.status,
			"duration": time.Since(started).String(),
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
