package upload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
)

// User-facing messages for the fixed taxonomy cases.
const (
	msgConnection       = "cannot connect to server"
	msgTimeout          = "request timed out, server did not respond"
	msgInvalidFile      = "file invalid or unsupported format"
	msgServerProcessing = "server failed to process file"
	msgEmptyBody        = "server returned an empty response"
)

// ClassifyTransport maps a transport-level failure (no HTTP response was
// received) to a taxonomy member. It is total: every input, including nil
// and errors with garbled messages, yields a classified error.
func ClassifyTransport(err error) *UploadError {
	if err == nil {
		return NewUploadError(ErrTypeUnknown, "request failed with no error detail")
	}

	if isTimeout(err) {
		return NewUploadErrorWithCause(ErrTypeTimeout, msgTimeout, err)
	}

	if isConnectionFailure(err) {
		return NewUploadErrorWithCause(ErrTypeConnection, msgConnection, err)
	}

	return NewUploadErrorWithCause(ErrTypeUnknown, fmt.Sprintf("error: %v", err), err)
}

// ClassifyStatus maps a non-2xx HTTP status to a taxonomy member. The body
// is only consulted for the unclassified case, where a server-provided
// detail message is appended when one decodes cleanly.
func ClassifyStatus(statusCode int, body []byte) *UploadError {
	var ue *UploadError

	switch statusCode {
	case 400:
		ue = NewUploadError(ErrTypeInvalidFile, msgInvalidFile)
	case 500:
		ue = NewUploadError(ErrTypeServerProcessing, msgServerProcessing)
	default:
		msg := fmt.Sprintf("unknown server error (%d)", statusCode)
		if detail := extractDetailMessage(body); detail != "" {
			msg += ": " + detail
		}
		ue = NewUploadError(ErrTypeUnknownStatus, msg)
	}

	ue.StatusCode = statusCode
	return ue
}

// ClassifyDecode wraps a body-parse failure on a 2xx response.
func ClassifyDecode(err error) *UploadError {
	return NewUploadErrorWithCause(ErrTypeDecoding, fmt.Sprintf("failed to decode response: %v", err), err)
}

// EmptyBodyError reports a 2xx response that carried no body.
func EmptyBodyError() *UploadError {
	return NewUploadError(ErrTypeEmptyBody, msgEmptyBody)
}

// isTimeout reports whether err represents a timeout, checking structured
// error types before falling back to message matching. This function and
// isConnectionFailure are the only places transport-library messages are
// string-matched.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "timeout")
}

// isConnectionFailure reports whether err represents a failure to reach the
// server at all.
func isConnectionFailure(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, needle := range []string{
		"connection refused",
		"no such host",
		"network is unreachable",
		"connection reset",
	} {
		if strings.Contains(msg, needle) {
			return true
		}
	}

	return false
}

// extractDetailMessage pulls detail.message out of an error body when the
// server included one. Malformed bodies yield "".
func extractDetailMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var payload struct {
		Detail struct {
			Message string `json:"message"`
		} `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	return payload.Detail.Message
}
