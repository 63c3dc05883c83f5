// ABOUTME: Structured error type for EAM gateway requests
// ABOUTME: Carries a machine-readable kind so retry eligibility is not guessed from text

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed request. Retry eligibility is a total
// function over this enum; nothing inspects error message text.
type ErrorKind int

const (
	// KindNetwork means no HTTP response was received: connection refused,
	// DNS failure, reset mid-body.
	KindNetwork ErrorKind = iota
	// KindTimeout means the request was aborted by its deadline or by
	// caller cancellation.
	KindTimeout
	// KindHTTP means the gateway answered with a non-2xx status.
	KindHTTP
)

// String returns the kind name for logs and error text.
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindHTTP:
		return "http"
	default:
		return "unknown"
	}
}

// APIError is the typed failure for a single request attempt. It records the
// attempted method and path, the status code when one was received, and the
// raw response body text for diagnostics. It never carries partial data.
type APIError struct {
	Kind   ErrorKind
	Method string
	Path   string
	Status int    // set only for KindHTTP
	Body   string // raw response body text, best effort
	cause  error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindTimeout:
		return fmt.Sprintf("%s %s timed out", e.Method, e.Path)
	case KindNetwork:
		return fmt.Sprintf("%s %s: no response from server: %v", e.Method, e.Path, e.cause)
	default:
		if e.Body != "" {
			return fmt.Sprintf("%s %s failed: status %d: %s", e.Method, e.Path, e.Status, e.Body)
		}
		return fmt.Sprintf("%s %s failed: status %d", e.Method, e.Path, e.Status)
	}
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// Retryable reports whether another attempt could plausibly succeed.
// Network failures and 5xx responses are transient; timeouts, cancellation,
// and 4xx responses are not.
func (e *APIError) Retryable() bool {
	switch e.Kind {
	case KindNetwork:
		return true
	case KindTimeout:
		return false
	default:
		return e.Status >= 500
	}
}

// ServerMessage extracts the human-readable message the gateway put in the
// response body ({"error": ...} or {"message": ...}). Falls back to the raw
// body text, then to a generic status line.
func (e *APIError) ServerMessage() string {
	if e.Body != "" {
		var payload struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal([]byte(e.Body), &payload); err == nil {
			if payload.Error != "" {
				return payload.Error
			}
			if payload.Message != "" {
				return payload.Message
			}
		}
		return e.Body
	}
	if e.Status != 0 {
		return http.StatusText(e.Status)
	}
	return e.Error()
}

// AsAPIError unwraps err to an *APIError when one is in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsStatus reports whether err is an HTTP failure with the given status.
func IsStatus(err error, status int) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Kind == KindHTTP && apiErr.Status == status
}
