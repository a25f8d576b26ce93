package upload

import (
	"fmt"
	"strings"
)

// ErrorType categorizes upload failures into the closed taxonomy surfaced
// to the user. Every failure path of a submission maps to exactly one type.
type ErrorType string

const (
	// ErrTypeFileRead indicates the local file could not be read before
	// any network activity took place.
	ErrTypeFileRead ErrorType = "file_read"

	// ErrTypeConnection indicates a transport failure before any HTTP
	// response was received (unreachable host, refused connection, DNS).
	ErrTypeConnection ErrorType = "connection"

	// ErrTypeTimeout indicates the request timed out.
	ErrTypeTimeout ErrorType = "timeout"

	// ErrTypeInvalidFile indicates the server rejected the file (HTTP 400).
	ErrTypeInvalidFile ErrorType = "invalid_file"

	// ErrTypeServerProcessing indicates the server failed while processing
	// the file (HTTP 500).
	ErrTypeServerProcessing ErrorType = "server_processing"

	// ErrTypeUnknownStatus indicates an unclassified non-2xx status.
	ErrTypeUnknownStatus ErrorType = "unknown_status"

	// ErrTypeDecoding indicates a 2xx response whose body failed to parse.
	ErrTypeDecoding ErrorType = "decoding"

	// ErrTypeEmptyBody indicates a 2xx response with an empty body.
	ErrTypeEmptyBody ErrorType = "empty_body"

	// ErrTypeUnknown is the fall-through for transport errors that match
	// no more specific category.
	ErrTypeUnknown ErrorType = "unknown"
)

// UploadError represents a classified submission failure. Message is the
// human-readable text shown to the user verbatim; the remaining fields keep
// the structured cause for logs and tests.
type UploadError struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Cause      error
}

// Error implements the error interface.
func (e *UploadError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("type=%s", e.Type))

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error.
func (e *UploadError) Unwrap() error {
	return e.Cause
}

// Is matches errors by taxonomy type.
func (e *UploadError) Is(target error) bool {
	if ue, ok := target.(*UploadError); ok {
		return e.Type == ue.Type
	}
	return false
}

// NewUploadError creates an upload error of the given type.
func NewUploadError(errType ErrorType, message string) *UploadError {
	return &UploadError{
		Type:    errType,
		Message: message,
	}
}

// NewUploadErrorWithCause creates an upload error wrapping an underlying cause.
func NewUploadErrorWithCause(errType ErrorType, message string, cause error) *UploadError {
	return &UploadError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}
