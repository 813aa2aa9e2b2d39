package loops

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEvents_Send(t *testing.T) {
	var gotPath string
	var gotBody []byte
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"success":true}`))
	})

	resp, err := client.Events().Send(context.Background(), &EventSendRequest{
		Email:           "jane@example.com",
		EventName:       "signup",
		EventProperties: map[string]any{"plan": "pro"},
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if !resp.Success {
		t.Error("Success = false, want true")
	}
	if gotPath != "/events/send" {
		t.Errorf("path = %q, want /events/send", gotPath)
	}

	var body map[string]any
	if err := json.Unmarshal(gotBody, &body); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	want := map[string]any{
		"email":           "jane@example.com",
		"eventName":       "signup",
		"eventProperties": map[string]any{"plan": "pro"},
	}
	if diff := cmp.Diff(want, body); diff != "" {
		t.Errorf("request body mismatch (-want +got):\n%s", diff)
	}
}

func TestEvents_Send_Validation(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("server should not be hit on validation failure")
	})

	tests := []struct {
		name string
		req  *EventSendRequest
	}{
		{name: "missing event name", req: &EventSendRequest{Email: "jane@example.com"}},
		{name: "missing identifier", req: &EventSendRequest{EventName: "signup"}},
		{name: "nil request", req: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Events().Send(context.Background(), tt.req)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Send() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestEvents_Send_RateLimited(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "60")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"Rate limit exceeded"}`))
	})

	_, err := client.Events().Send(context.Background(), &EventSendRequest{
		Email:     "jane@example.com",
		EventName: "signup",
	})
	var rateLimitErr *RateLimitError
	if !errors.As(err, &rateLimitErr) {
		t.Fatalf("Send() error = %T (%v), want *RateLimitError", err, err)
	}
	if rateLimitErr.RetryAfterSeconds != 60 {
		t.Errorf("RetryAfterSeconds = %d, want 60", rateLimitErr.RetryAfterSeconds)
	}
	if rateLimitErr.StatusCode != 429 {
		t.Errorf("StatusCode = %d, want 429", rateLimitErr.StatusCode)
	}
	if !errors.Is(err, ErrRateLimited) {
		t.Error("errors.Is(err, ErrRateLimited) = false")
	}
}

func TestEvents_Send_IdempotencyHeader(t *testing.T) {
	var gotKey string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		w.Write([]byte(`{"success":true}`))
	})

	key := NewIdempotencyKey()
	_, err := client.Events().Send(context.Background(), &EventSendRequest{
		Email:     "jane@example.com",
		EventName: "signup",
	}, WithIdempotencyKey(key))
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if gotKey != key {
		t.Errorf("Idempotency-Key = %q, want %q", gotKey, key)
	}
}

func TestEvents_Send_IdempotencyKeyTooLong(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("server should not be hit on validation failure")
	})

	long := strings.Repeat("k", 101)
	_, err := client.Events().Send(context.Background(), &EventSendRequest{
		Email:     "jane@example.com",
		EventName: "signup",
	}, WithIdempotencyKey(long))
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Send() error = %v, want ErrValidation", err)
	}
}

func TestNewIdempotencyKey_Valid(t *testing.T) {
	key := NewIdempotencyKey()
	if key == "" {
		t.Fatal("NewIdempotencyKey() returned empty string")
	}
	if len(key) > maxIdempotencyKeyLength {
		t.Errorf("len(key) = %d, exceeds %d", len(key), maxIdempotencyKeyLength)
	}
	if key == NewIdempotencyKey() {
		t.Error("two keys are identical")
	}
}

func TestEventSendRequest_FlattensAdditionalProperties(t *testing.T) {
	req := &EventSendRequest{
		UserID:    "u-1",
		EventName: "purchase",
		AdditionalProperties: map[string]any{
			"tier":      "gold",
			"eventName": "spoofed", // named field must win
		},
	}

	raw, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	want := map[string]any{
		"userId":    "u-1",
		"eventName": "purchase",
		"tier":      "gold",
	}
	if diff := cmp.Diff(want, body); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestEvents_SendAsync_MatchesSync(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true}`))
	})

	req := &EventSendRequest{Email: "jane@example.com", EventName: "signup"}
	syncResp, syncErr := client.Events().Send(context.Background(), req)
	asyncResp, asyncErr := client.Events().SendAsync(context.Background(), req).Wait(context.Background())

	if syncErr != nil || asyncErr != nil {
		t.Fatalf("errors: sync=%v async=%v", syncErr, asyncErr)
	}
	if syncResp.Success != asyncResp.Success {
		t.Errorf("responses differ: sync=%+v async=%+v", syncResp, asyncResp)
	}
}

func TestEvents_SendAsync_ValidationResolvesImmediately(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("server should not be hit on validation failure")
	})

	future := client.Events().SendAsync(context.Background(), &EventSendRequest{EventName: "signup"})
	select {
	case <-future.Done():
	default:
		t.Fatal("future not resolved before Wait")
	}
	_, err := future.Wait(context.Background())
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Wait() error = %v, want ErrValidation", err)
	}
}
