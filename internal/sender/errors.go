package sender

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// APIError represents an HTTP error response from the Loops API, or a
// response body that could not be decoded into the expected shape.
type APIError struct {
	StatusCode int    // 0 when no HTTP response was involved
	RawBody    string // verbatim response body
	Message    string // display message extracted from the body
	ErrorText  string // the body's "error" field, if present
	Err        error  // underlying cause for decode failures
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// Unwrap returns the underlying error, if any.
func (e *APIError) Unwrap() error {
	return e.Err
}

// RateLimitError is the HTTP 429 specialization of APIError carrying the
// Retry-After value. The SDK never waits or retries on its own.
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

// errorBody is the error shape the API returns. Both fields are optional
// and the body may not be JSON at all.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// newAPIError builds an APIError from a non-2xx response, extracting a
// display message from the body on a best-effort basis. Malformed JSON
// falls back to "HTTP <status>" silently.
func newAPIError(statusCode int, rawBody string) *APIError {
	e := &APIError{
		StatusCode: statusCode,
		RawBody:    rawBody,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
	}
	if rawBody == "" {
		return e
	}

	var body errorBody
	if err := json.Unmarshal([]byte(rawBody), &body); err != nil {
		return e
	}
	if body.Message != "" {
		e.Message = fmt.Sprintf("HTTP %d: %s", statusCode, body.Message)
	} else if body.Error != "" {
		e.Message = fmt.Sprintf("HTTP %d: %s", statusCode, body.Error)
	}
	e.ErrorText = body.Error
	return e
}

// classify maps a transport response to nil (proceed to decode) or to
// exactly one error taxonomy value.
//
//	<400       success
//	429        RateLimitError, retry-after from the Retry-After header
//	other 4xx/5xx  APIError with status and verbatim body
func classify(resp *Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	rawBody := string(resp.Body)

	if resp.StatusCode == 429 {
		var retryAfter int64
		if header := resp.Header.Get("Retry-After"); header != "" {
			if parsed, err := strconv.ParseInt(header, 10, 64); err == nil {
				retryAfter = parsed
			}
			// Unparsable values fall back to 0, same as an absent header.
		}
		return &RateLimitError{
			APIError:          *newAPIError(resp.StatusCode, rawBody),
			RetryAfterSeconds: retryAfter,
		}
	}

	return newAPIError(resp.StatusCode, rawBody)
}

// newDecodeError wraps a JSON decode failure on a success response.
func newDecodeError(resp *Response, err error) *APIError {
	return &APIError{
		StatusCode: resp.StatusCode,
		RawBody:    string(resp.Body),
		Message:    fmt.Sprintf("decode response: %v", err),
		Err:        err,
	}
}
