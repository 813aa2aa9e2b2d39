package loops

import (
	"errors"
	"testing"

	"github.com/telos-labs/loops-go/internal/sender"
)

func TestWrapError_Nil(t *testing.T) {
	if err := wrapError(nil); err != nil {
		t.Errorf("wrapError(nil) = %v, want nil", err)
	}
}

func TestWrapError_APIError(t *testing.T) {
	internal := &sender.APIError{
		StatusCode: 400,
		RawBody:    `{"error":"Invalid email format"}`,
		Message:    "HTTP 400: Invalid email format",
		ErrorText:  "Invalid email format",
	}

	err := wrapError(internal)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("wrapError() = %T, want *APIError", err)
	}
	if apiErr.StatusCode != 400 {
		t.Errorf("StatusCode = %d, want 400", apiErr.StatusCode)
	}
	if apiErr.RawBody != internal.RawBody {
		t.Errorf("RawBody = %q, want %q", apiErr.RawBody, internal.RawBody)
	}
	if apiErr.Message != internal.Message {
		t.Errorf("Message = %q, want %q", apiErr.Message, internal.Message)
	}
	if apiErr.ErrorText != "Invalid email format" {
		t.Errorf("ErrorText = %q", apiErr.ErrorText)
	}
}

func TestWrapError_RateLimitError(t *testing.T) {
	internal := &sender.RateLimitError{
		APIError: sender.APIError{
			StatusCode: 429,
			RawBody:    `{"error":"Rate limit exceeded"}`,
			Message:    "HTTP 429: Rate limit exceeded",
		},
		RetryAfterSeconds: 60,
	}

	err := wrapError(internal)
	var rateLimitErr *RateLimitError
	if !errors.As(err, &rateLimitErr) {
		t.Fatalf("wrapError() = %T, want *RateLimitError", err)
	}
	if rateLimitErr.RetryAfterSeconds != 60 {
		t.Errorf("RetryAfterSeconds = %d, want 60", rateLimitErr.RetryAfterSeconds)
	}

	// A rate limit error is also an API error.
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Error("rate limit error does not match *APIError")
	}
	if !errors.Is(err, ErrRateLimited) {
		t.Error("errors.Is(err, ErrRateLimited) = false")
	}
}

func TestWrapError_NetworkError(t *testing.T) {
	cause := errors.New("connection refused")
	internal := &sender.NetworkError{Err: cause, URL: "https://api.example.com/test"}

	err := wrapError(internal)
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("wrapError() = %T, want *NetworkError", err)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false")
	}
	if netErr.URL != internal.URL {
		t.Errorf("URL = %q, want %q", netErr.URL, internal.URL)
	}
}

func TestWrapError_PassthroughUnknown(t *testing.T) {
	plain := errors.New("something else")
	if got := wrapError(plain); got != plain {
		t.Errorf("wrapError() = %v, want passthrough", got)
	}
}

func TestAPIError_Sentinels(t *testing.T) {
	unauthorized := &APIError{StatusCode: 401, Message: "HTTP 401"}
	if !errors.Is(unauthorized, ErrUnauthorized) {
		t.Error("401 does not match ErrUnauthorized")
	}
	if errors.Is(unauthorized, ErrRateLimited) {
		t.Error("401 matches ErrRateLimited")
	}

	notFound := &APIError{StatusCode: 404, Message: "HTTP 404"}
	if errors.Is(notFound, ErrUnauthorized) {
		t.Error("404 matches ErrUnauthorized")
	}
}

func TestValidationError_Sentinel(t *testing.T) {
	err := newValidationError("perPage must be between %d and %d, got %d", 10, 50, 9)
	if !errors.Is(err, ErrValidation) {
		t.Error("validation error does not match ErrValidation")
	}
	want := "validation failed: perPage must be between 10 and 50, got 9"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
