// internal/common/errors/errors.go
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"

	ErrCodeCalculatorFailed   ErrorCode = "CALCULATOR_FAILED"
	ErrCodeInvalidTimeframe   ErrorCode = "INVALID_TIMEFRAME"
	ErrCodeSummaryFailed      ErrorCode = "SUMMARY_FAILED"
	ErrCodeEventPersistFailed ErrorCode = "EVENT_PERSIST_FAILED"
	ErrCodeEventInvalid       ErrorCode = "EVENT_INVALID"

	ErrCodeCacheUnavailable       ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeIndexingFailed         ErrorCode = "INDEXING_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Normalize ensures any error is represented as a StandardError.
func Normalize(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 2. Error Constructors
// ==========================

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(entity string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("entity: %s, error: %s", entity, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCalculatorFailedError marks a single KPI calculation as degraded. Not
// retryable: the calculator already substituted its default record.
func NewCalculatorFailedError(metric string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCalculatorFailed,
		Message:   "Metric calculation failed",
		Details:   fmt.Sprintf("metric: %s, error: %s", metric, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSummaryFailedError creates the top-level executive summary failure.
func NewSummaryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSummaryFailed,
		Message:   "Executive summary generation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEventPersistFailedError wraps an analytics event insert failure.
func NewEventPersistFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEventPersistFailed,
		Message:   "Analytics event could not be persisted",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEventInvalidError creates a non-retryable payload validation error.
func NewEventInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEventInvalid,
		Message:   "Analytics event payload is invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError wraps a best-effort alert delivery failure.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Alert notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
