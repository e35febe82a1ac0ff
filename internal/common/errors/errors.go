// Package errors provides standardized error handling for the fax
// generation pipeline and its BPMN workflow integration.
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
	// Input rejected before any rendering starts.
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Fatal drawing failure; the whole document is aborted.
	ErrCodeRenderFailed ErrorCode = "RENDER_FAILED"

	// Recovered per-image with a text fallback; logged, never fatal.
	ErrCodeImageFetchFailed ErrorCode = "IMAGE_FETCH_FAILED"

	// Defensive guard; block splitting should make this unreachable.
	ErrCodePaginationOverflow ErrorCode = "PAGINATION_OVERFLOW"

	// Reference ID could not be reserved against the uniqueness store.
	ErrCodeReferenceConflict ErrorCode = "REFERENCE_ID_CONFLICT"

	// Outbound delivery to the fax gateway failed.
	ErrCodeTransmissionFailed ErrorCode = "TRANSMISSION_FAILED"

	// Fire-and-forget audit write failed; logged by the caller.
	ErrCodeAuditWriteFailed ErrorCode = "AUDIT_WRITE_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeUnknownFaxType           ErrorCode = "UNKNOWN_FAX_TYPE"
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

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationFailedError creates a non-retryable input validation error.
// Field names the offending DTO field when known.
func NewValidationFailedError(field, details string) *StandardError {
	md := map[string]interface{}{}
	if field != "" {
		md["field"] = field
	}
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Fax input data failed validation",
		Details:   details,
		Retryable: false,
		Metadata:  md,
		Timestamp: time.Now().UTC(),
	}
}

// NewRenderFailedError creates a non-retryable render error carrying cause.
func NewRenderFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRenderFailed,
		Message:   "PDF render aborted",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewImageFetchFailedError records a recovered per-image failure. It is
// logged, never returned to the caller of a render.
func NewImageFetchFailedError(url string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeImageFetchFailed,
		Message:   "Image fetch failed, falling back to text",
		Details:   fmt.Sprintf("url: %s, error: %s", url, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPaginationOverflowError guards the should-not-happen case of a block
// the planner could neither place nor split.
func NewPaginationOverflowError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodePaginationOverflow,
		Message:   "Block exceeded page budget after splitting",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewReferenceConflictError creates a retryable reservation conflict error.
func NewReferenceConflictError(referenceID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeReferenceConflict,
		Message:   "Reference ID already reserved",
		Details:   fmt.Sprintf("referenceId: %s", referenceID),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTransmissionFailedError creates a retryable gateway delivery error.
func NewTransmissionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTransmissionFailed,
		Message:   "Fax transmission failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuditWriteFailedError creates a retryable audit sink error.
func NewAuditWriteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuditWriteFailed,
		Message:   "Audit record write failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownFaxTypeError creates a non-retryable dispatch error.
func NewUnknownFaxTypeError(faxType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownFaxType,
		Message:   "Unsupported fax document type",
		Details:   fmt.Sprintf("faxType: %s", faxType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Helpers
// ==========================

// IsValidation reports whether err is a validation rejection.
func IsValidation(err error) bool {
	return hasCode(err, ErrCodeValidationFailed)
}

// IsRetryable reports whether err is worth retrying at the job level.
func IsRetryable(err error) bool {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr.Retryable
	}
	return false
}

func hasCode(err error, code ErrorCode) bool {
	stdErr, ok := err.(*StandardError)
	return ok && stdErr.Code == code
}

// GetRetryCount returns how many job retries a code deserves.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeTransmissionFailed, ErrCodeAuditWriteFailed,
		ErrCodeDatabaseConnectionFailed, ErrCodeReferenceConflict:
		return 3
	default:
		return 0
	}
}
