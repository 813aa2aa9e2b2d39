package loops

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/telos-labs/loops-go/internal/sender"
)

const (
	eventsSendPath = "/events/send"

	maxIdempotencyKeyLength = 100
)

// EventsClient triggers email sending by firing events against contacts.
type EventsClient struct {
	sender *sender.Sender
}

// EventSendRequest fires an event for the contact identified by email or
// user ID. EventName is required. AdditionalProperties are contact
// properties updated alongside the event; they are flattened into the top
// level of the JSON body.
type EventSendRequest struct {
	Email                string
	UserID               string
	EventName            string
	EventProperties      map[string]any
	MailingLists         map[string]bool
	AdditionalProperties map[string]any
}

// MarshalJSON flattens AdditionalProperties into the top-level object.
func (r *EventSendRequest) MarshalJSON() ([]byte, error) {
	body := make(map[string]any, len(r.AdditionalProperties)+5)
	for key, value := range r.AdditionalProperties {
		body[key] = value
	}
	body["eventName"] = r.EventName
	if r.Email != "" {
		body["email"] = r.Email
	}
	if r.UserID != "" {
		body["userId"] = r.UserID
	}
	if len(r.EventProperties) > 0 {
		body["eventProperties"] = r.EventProperties
	}
	if len(r.MailingLists) > 0 {
		body["mailingLists"] = r.MailingLists
	}
	return json.Marshal(body)
}

func (r *EventSendRequest) validate() error {
	if r == nil || r.EventName == "" {
		return newValidationError("eventName is required")
	}
	if r.Email == "" && r.UserID == "" {
		return newValidationError("email or userId is required")
	}
	return nil
}

// EventResponse is returned by Send.
type EventResponse struct {
	Success bool `json:"success"`
}

// NewIdempotencyKey returns a fresh random key suitable for
// WithIdempotencyKey.
func NewIdempotencyKey() string {
	return uuid.NewString()
}

// validateIdempotencyKey enforces the API's length limit before any
// request is built.
func validateIdempotencyKey(key string) error {
	if len(key) > maxIdempotencyKeyLength {
		return newValidationError("idempotency key must not exceed %d characters, got %d",
			maxIdempotencyKeyLength, len(key))
	}
	return nil
}

// Send fires an event. Use WithIdempotencyKey to make the send safe to
// repeat.
func (c *EventsClient) Send(ctx context.Context, req *EventSendRequest, opts ...RequestOption) (*EventResponse, error) {
	if err := validateEventSend(req, opts); err != nil {
		return nil, err
	}
	return c.send(ctx, req, opts)
}

// SendAsync is the asynchronous form of Send. Validation failures resolve
// the future immediately, before any network call.
func (c *EventsClient) SendAsync(ctx context.Context, req *EventSendRequest, opts ...RequestOption) *Future[*EventResponse] {
	if err := validateEventSend(req, opts); err != nil {
		return resolvedFuture[*EventResponse](nil, err)
	}
	return newFuture(func() (*EventResponse, error) {
		return c.send(ctx, req, opts)
	})
}

func validateEventSend(req *EventSendRequest, opts []RequestOption) error {
	if err := req.validate(); err != nil {
		return err
	}
	return validateIdempotencyKey(buildRequestConfig(opts).header.Get("Idempotency-Key"))
}

func (c *EventsClient) send(ctx context.Context, req *EventSendRequest, opts []RequestOption) (*EventResponse, error) {
	var resp EventResponse
	if err := c.sender.PostJSON(ctx, eventsSendPath, req, &resp, senderOptions(opts)); err != nil {
		return nil, wrapError(err)
	}
	return &resp, nil
}
