// Package errors provides standardized error handling for the discovery service.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeGigNotFound        ErrorCode = "GIG_NOT_FOUND"
	ErrCodeInvalidGigID       ErrorCode = "INVALID_GIG_ID"
	ErrCodeRecordMalformed    ErrorCode = "RECORD_MALFORMED"
	ErrCodeCatalogUnavailable ErrorCode = "CATALOG_UNAVAILABLE"
	ErrCodeSnapshotInvalid    ErrorCode = "SNAPSHOT_VALIDATION_FAILED"
	ErrCodeVocabularyLoad     ErrorCode = "VOCABULARY_LOAD_FAILED"
	ErrCodeCacheUnavailable   ErrorCode = "CACHE_UNAVAILABLE"
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

// NewGigNotFoundError reports a gig identifier absent from the catalog.
// Increment paths rely on this being distinct from a zero-row filter mismatch.
func NewGigNotFoundError(gigID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeGigNotFound,
		Message:   "Gig not found in catalog",
		Details:   fmt.Sprintf("gigId: %s", gigID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidGigIDError rejects a malformed identifier before any store access.
func NewInvalidGigIDError(gigID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidGigID,
		Message:   "Malformed gig identifier",
		Details:   fmt.Sprintf("gigId: %s", gigID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecordMalformedError marks a single candidate that lacks expected fields.
func NewRecordMalformedError(gigID, reason string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecordMalformed,
		Message:   "Gig record is missing expected fields",
		Details:   fmt.Sprintf("gigId: %s, reason: %s", gigID, reason),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogUnavailableError wraps a database failure that prevents any answer.
func NewCatalogUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogUnavailable,
		Message:   "Catalog store unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSnapshotInvalidError reports a catalog snapshot that failed schema validation.
func NewSnapshotInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSnapshotInvalid,
		Message:   "Catalog snapshot failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewVocabularyLoadError reports an unreadable stop-word/synonym asset.
func NewVocabularyLoadError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeVocabularyLoad,
		Message:   "Vocabulary asset could not be loaded",
		Details:   fmt.Sprintf("path: %s, error: %v", path, err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError wraps a result-cache failure. Callers treat the
// cache as degraded and recompute rather than fail the request.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Result cache unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Classification Helpers
// ==========================

// IsNotFound reports whether err is a GIG_NOT_FOUND error.
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeGigNotFound)
}

// IsInvalidID reports whether err is an INVALID_GIG_ID error.
func IsInvalidID(err error) bool {
	return hasCode(err, ErrCodeInvalidGigID)
}

// IsRetryable reports whether err carries a retryable code.
func IsRetryable(err error) bool {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Retryable
	}
	return false
}

func hasCode(err error, code ErrorCode) bool {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// HTTPStatus maps an error to the status code the API layer serves for it.
func HTTPStatus(err error) int {
	var se *StandardError
	if !errors.As(err, &se) {
		return http.StatusInternalServerError
	}
	switch se.Code {
	case ErrCodeGigNotFound:
		return http.StatusNotFound
	case ErrCodeInvalidGigID, ErrCodeRecordMalformed, ErrCodeSnapshotInvalid:
		return http.StatusBadRequest
	case ErrCodeCatalogUnavailable, ErrCodeCacheUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
