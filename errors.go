package loops

import (
	"errors"
	"fmt"

	"github.com/telos-labs/loops-go/internal/sender"
)

// Sentinel errors for errors.Is() checks.
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrUnauthorized matches API errors with status 401.
	ErrUnauthorized = errors.New("invalid or expired API key")

	// ErrRateLimited matches API errors with status 429.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrValidation matches client-side validation failures.
	ErrValidation = errors.New("validation failed")
)

// APIError represents an HTTP error response from the Loops API
// (any non-2xx status other than 429), or a success response whose body
// could not be decoded into the expected shape.
type APIError struct {
	// StatusCode is the HTTP status of the error response, or 0 when no
	// HTTP response was involved.
	StatusCode int
	// RawBody is the verbatim response body, preserved for inspection.
	RawBody string
	// Message is the display message: the body's "message" field, else
	// its "error" field, else "HTTP <status>".
	Message string
	// ErrorText is the body's "error" field, if present.
	ErrorText string

	err error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// Unwrap returns the underlying cause, if any (decode failures).
func (e *APIError) Unwrap() error {
	return e.err
}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 401:
		return target == ErrUnauthorized
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// RateLimitError is raised for HTTP 429 responses. It carries the number
// of seconds from the Retry-After header; 0 when the header was absent or
// unparsable. The SDK never retries on its own; honoring the delay is
// the caller's responsibility.
type RateLimitError struct {
	APIError
	RetryAfterSeconds int64
}

// Unwrap exposes the embedded APIError so errors.As matches both types.
func (e *RateLimitError) Unwrap() error {
	return &e.APIError
}

// NetworkError represents a failure below the HTTP layer: connection
// refused, timeout, DNS, TLS. No status code was received.
type NetworkError struct {
	Err error
	URL string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ValidationError is raised for client-side validation failures, before
// any request leaves the process. In the async path it resolves the
// returned Future immediately; no network call is attempted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is for sentinel error matching.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// wrapError converts internal sender errors to public errors so that
// errors.Is and errors.As work against the exported types.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var rateLimitErr *sender.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			APIError:          publicAPIError(&rateLimitErr.APIError),
			RetryAfterSeconds: rateLimitErr.RetryAfterSeconds,
		}
	}

	var apiErr *sender.APIError
	if errors.As(err, &apiErr) {
		wrapped := publicAPIError(apiErr)
		return &wrapped
	}

	var netErr *sender.NetworkError
	if errors.As(err, &netErr) {
		return &NetworkError{Err: netErr.Err, URL: netErr.URL}
	}

	return err
}

func publicAPIError(e *sender.APIError) APIError {
	return APIError{
		StatusCode: e.StatusCode,
		RawBody:    e.RawBody,
		Message:    e.Message,
		ErrorText:  e.ErrorText,
		err:        e.Err,
	}
}
