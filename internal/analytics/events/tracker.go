// internal/analytics/events/tracker.go
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"smarthome-crm-analytics/internal/common/errors"
	"smarthome-crm-analytics/internal/common/logger"
	"smarthome-crm-analytics/internal/common/metrics"
	"smarthome-crm-analytics/internal/models"
	"smarthome-crm-analytics/internal/store"
)

// payloadSchema is the contract for incoming event payloads. eventType is the
// only required field.
const payloadSchema = `{
	"type": "object",
	"required": ["eventType"],
	"properties": {
		"eventType":      {"type": "string", "minLength": 1},
		"eventCategory":  {"type": "string"},
		"userId":         {"type": "string"},
		"customerId":     {"type": "string"},
		"proposalId":     {"type": "string"},
		"data":           {"type": "object"},
		"metadata":       {"type": "object"},
		"processingTime": {"type": "number", "minimum": 0},
		"accuracy":       {"type": "number", "minimum": 0, "maximum": 1},
		"confidence":     {"type": "number", "minimum": 0, "maximum": 1},
		"success":        {"type": "boolean"},
		"errorMessage":   {"type": "string"},
		"revenueImpact":  {"type": "number"},
		"costSavings":    {"type": "number"}
	}
}`

var schemaLoader = gojsonschema.NewStringLoader(payloadSchema)

// Request is the inbound tracking payload. Success is a pointer so a missing
// field can default to true.
type Request struct {
	EventType      string                 `json:"eventType"`
	EventCategory  string                 `json:"eventCategory,omitempty"`
	UserID         string                 `json:"userId,omitempty"`
	CustomerID     string                 `json:"customerId,omitempty"`
	ProposalID     string                 `json:"proposalId,omitempty"`
	Data           map[string]interface{} `json:"data,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	ProcessingTime *float64               `json:"processingTime,omitempty"`
	Accuracy       *float64               `json:"accuracy,omitempty"`
	Confidence     *float64               `json:"confidence,omitempty"`
	Success        *bool                  `json:"success,omitempty"`
	ErrorMessage   string                 `json:"errorMessage,omitempty"`
	RevenueImpact  *float64               `json:"revenueImpact,omitempty"`
	CostSavings    *float64               `json:"costSavings,omitempty"`
}

// ValidatePayload checks a raw JSON payload against the event schema.
func ValidatePayload(raw []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return errors.NewEventInvalidError(fmt.Sprintf("payload is not valid JSON: %s", err.Error()))
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return errors.NewEventInvalidError(strings.Join(details, "; "))
	}
	return nil
}

// Indexer pushes an event document into the search index.
type Indexer interface {
	Index(ctx context.Context, index, id string, body []byte) error
}

// Tracker is the analytics event write path. Persistence is best-effort from
// the caller's perspective: Track returns nil on failure instead of an error.
type Tracker struct {
	store   store.Store
	indexer Indexer
	index   string
	logger  logger.Logger
	now     func() time.Time
}

// NewTracker wires the tracker. indexer may be nil to disable search indexing.
func NewTracker(st store.Store, indexer Indexer, index string, log logger.Logger) *Tracker {
	return &Tracker{
		store:   st,
		indexer: indexer,
		index:   index,
		logger:  log.WithFields(map[string]interface{}{"component": "event-tracker"}),
		now:     time.Now,
	}
}

// Track persists one analytics event and returns the created record, or nil
// when persistence failed. Missing success defaults to true.
func (t *Tracker) Track(ctx context.Context, req *Request) *models.AnalyticsEvent {
	event := t.buildEvent(req)

	if err := t.store.InsertEvent(ctx, event); err != nil {
		t.logger.Error("event tracking failed", map[string]interface{}{
			"eventType": req.EventType,
			"error":     err.Error(),
		})
		metrics.EventsTracked.WithLabelValues(req.EventType, "failure").Inc()
		return nil
	}

	t.indexEvent(ctx, event)

	metrics.EventsTracked.WithLabelValues(req.EventType, "success").Inc()
	return event
}

func (t *Tracker) buildEvent(req *Request) *models.AnalyticsEvent {
	success := true
	if req.Success != nil {
		success = *req.Success
	}

	return &models.AnalyticsEvent{
		ID:             uuid.New().String(),
		EventType:      req.EventType,
		EventCategory:  req.EventCategory,
		UserID:         req.UserID,
		CustomerID:     req.CustomerID,
		ProposalID:     req.ProposalID,
		Data:           req.Data,
		Metadata:       req.Metadata,
		ProcessingTime: req.ProcessingTime,
		Accuracy:       req.Accuracy,
		Confidence:     req.Confidence,
		Success:        success,
		ErrorMessage:   req.ErrorMessage,
		RevenueImpact:  req.RevenueImpact,
		CostSavings:    req.CostSavings,
		Timestamp:      t.now().UTC(),
	}
}

// indexEvent mirrors the event into the search index; failures are logged
// and ignored.
func (t *Tracker) indexEvent(ctx context.Context, event *models.AnalyticsEvent) {
	if t.indexer == nil {
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := t.indexer.Index(ctx, t.index, event.ID, body); err != nil {
		t.logger.Warn("event indexing failed", map[string]interface{}{
			"eventId": event.ID,
			"error":   err.Error(),
		})
	}
}
