// internal/api/handlers.go
package api

import (
	"encoding/json"
	"io"
	"net/http"

	"smarthome-crm-analytics/internal/analytics/events"
)

// maxEventPayloadBytes bounds incoming tracking payloads.
const maxEventPayloadBytes = 1 << 20

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	timeframe := r.URL.Query().Get("timeframe")

	resp := s.summaries.Generate(r.Context(), timeframe)

	status := http.StatusOK
	if !resp.Success {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleTrackEvent(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxEventPayloadBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "unreadable request body",
		})
		return
	}

	if err := events.ValidatePayload(raw); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "invalid event payload",
			"details": err.Error(),
		})
		return
	}

	var req events.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "invalid event payload",
			"details": err.Error(),
		})
		return
	}

	record := s.tracker.Track(r.Context(), &req)
	if record == nil {
		// Tracking is best-effort: acknowledge without a record.
		w.WriteHeader(http.StatusAccepted)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    record,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	components := make(map[string]string, len(s.health))
	healthy := true
	for name, pinger := range s.health {
		if err := pinger.Ping(r.Context()); err != nil {
			components[name] = "unhealthy"
			healthy = false
			continue
		}
		components[name] = "healthy"
	}

	status := http.StatusOK
	overall := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}
	writeJSON(w, status, map[string]interface{}{
		"status":     overall,
		"components": components,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
