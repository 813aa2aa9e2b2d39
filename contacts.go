package loops

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/telos-labs/loops-go/internal/sender"
)

const (
	contactsCreatePath = "/contacts/create"
	contactsUpdatePath = "/contacts/update"
	contactsFindPath   = "/contacts/find"
	contactsDeletePath = "/contacts/delete"
)

// ContactsClient manages contacts in your Loops audience.
type ContactsClient struct {
	sender *sender.Sender
}

// Contact is a contact as returned by the API.
type Contact struct {
	ID           string          `json:"id,omitempty"`
	Email        string          `json:"email,omitempty"`
	FirstName    string          `json:"firstName,omitempty"`
	LastName     string          `json:"lastName,omitempty"`
	Source       string          `json:"source,omitempty"`
	Subscribed   bool            `json:"subscribed"`
	UserGroup    string          `json:"userGroup,omitempty"`
	UserID       string          `json:"userId,omitempty"`
	MailingLists map[string]bool `json:"mailingLists,omitempty"`
	OptInStatus  string          `json:"optInStatus,omitempty"`
}

// ContactCreateRequest creates a new contact. Email is required.
// AdditionalProperties are custom contact properties; they are flattened
// into the top level of the JSON body, with named fields taking
// precedence on key collisions.
type ContactCreateRequest struct {
	Email                string
	FirstName            string
	LastName             string
	Subscribed           bool
	UserGroup            string
	UserID               string
	MailingLists         map[string]bool
	AdditionalProperties map[string]any
}

// NewContactCreateRequest returns a create request with the API default
// of Subscribed = true.
func NewContactCreateRequest(email string) *ContactCreateRequest {
	return &ContactCreateRequest{Email: email, Subscribed: true}
}

// MarshalJSON flattens AdditionalProperties into the top-level object.
func (r *ContactCreateRequest) MarshalJSON() ([]byte, error) {
	body := make(map[string]any, len(r.AdditionalProperties)+8)
	for key, value := range r.AdditionalProperties {
		body[key] = value
	}
	body["email"] = r.Email
	body["subscribed"] = r.Subscribed
	if r.FirstName != "" {
		body["firstName"] = r.FirstName
	}
	if r.LastName != "" {
		body["lastName"] = r.LastName
	}
	if r.UserGroup != "" {
		body["userGroup"] = r.UserGroup
	}
	if r.UserID != "" {
		body["userId"] = r.UserID
	}
	if len(r.MailingLists) > 0 {
		body["mailingLists"] = r.MailingLists
	}
	return json.Marshal(body)
}

func (r *ContactCreateRequest) validate() error {
	if r == nil || r.Email == "" {
		return newValidationError("email is required")
	}
	return nil
}

// ContactUpdateRequest updates an existing contact, identified by email
// or user ID. Nil optional fields mean "no change".
type ContactUpdateRequest struct {
	Email                string
	FirstName            string
	LastName             string
	Subscribed           *bool
	UserGroup            string
	UserID               string
	MailingLists         map[string]bool
	AdditionalProperties map[string]any
}

// MarshalJSON flattens AdditionalProperties into the top-level object.
func (r *ContactUpdateRequest) MarshalJSON() ([]byte, error) {
	body := make(map[string]any, len(r.AdditionalProperties)+8)
	for key, value := range r.AdditionalProperties {
		body[key] = value
	}
	if r.Email != "" {
		body["email"] = r.Email
	}
	if r.FirstName != "" {
		body["firstName"] = r.FirstName
	}
	if r.LastName != "" {
		body["lastName"] = r.LastName
	}
	if r.Subscribed != nil {
		body["subscribed"] = *r.Subscribed
	}
	if r.UserGroup != "" {
		body["userGroup"] = r.UserGroup
	}
	if r.UserID != "" {
		body["userId"] = r.UserID
	}
	if len(r.MailingLists) > 0 {
		body["mailingLists"] = r.MailingLists
	}
	return json.Marshal(body)
}

func (r *ContactUpdateRequest) validate() error {
	if r == nil || (r.Email == "" && r.UserID == "") {
		return newValidationError("email or userId is required")
	}
	return nil
}

// ContactFindRequest looks up contacts by email or user ID.
type ContactFindRequest struct {
	Email  string
	UserID string
}

func (r *ContactFindRequest) queryParams() url.Values {
	params := url.Values{}
	if r.Email != "" {
		params.Set("email", r.Email)
	}
	if r.UserID != "" {
		params.Set("userId", r.UserID)
	}
	return params
}

func (r *ContactFindRequest) validate() error {
	if r == nil || (r.Email == "" && r.UserID == "") {
		return newValidationError("email or userId is required")
	}
	return nil
}

// ContactDeleteRequest deletes a contact by email or user ID.
type ContactDeleteRequest struct {
	Email  string `json:"email,omitempty"`
	UserID string `json:"userId,omitempty"`
}

func (r *ContactDeleteRequest) validate() error {
	if r == nil || (r.Email == "" && r.UserID == "") {
		return newValidationError("email or userId is required")
	}
	return nil
}

// ContactResponse is returned by create, update, and delete.
type ContactResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Create creates a new contact.
func (c *ContactsClient) Create(ctx context.Context, req *ContactCreateRequest, opts ...RequestOption) (*ContactResponse, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	return c.create(ctx, req, opts)
}

// CreateAsync is the asynchronous form of Create. Validation failures
// resolve the future immediately, before any network call.
func (c *ContactsClient) CreateAsync(ctx context.Context, req *ContactCreateRequest, opts ...RequestOption) *Future[*ContactResponse] {
	if err := req.validate(); err != nil {
		return resolvedFuture[*ContactResponse](nil, err)
	}
	return newFuture(func() (*ContactResponse, error) {
		return c.create(ctx, req, opts)
	})
}

func (c *ContactsClient) create(ctx context.Context, req *ContactCreateRequest, opts []RequestOption) (*ContactResponse, error) {
	var resp ContactResponse
	if err := c.sender.PostJSON(ctx, contactsCreatePath, req, &resp, senderOptions(opts)); err != nil {
		return nil, wrapError(err)
	}
	return &resp, nil
}

// Update updates an existing contact, or creates it if no match exists.
func (c *ContactsClient) Update(ctx context.Context, req *ContactUpdateRequest, opts ...RequestOption) (*ContactResponse, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	return c.update(ctx, req, opts)
}

// UpdateAsync is the asynchronous form of Update.
func (c *ContactsClient) UpdateAsync(ctx context.Context, req *ContactUpdateRequest, opts ...RequestOption) *Future[*ContactResponse] {
	if err := req.validate(); err != nil {
		return resolvedFuture[*ContactResponse](nil, err)
	}
	return newFuture(func() (*ContactResponse, error) {
		return c.update(ctx, req, opts)
	})
}

func (c *ContactsClient) update(ctx context.Context, req *ContactUpdateRequest, opts []RequestOption) (*ContactResponse, error) {
	var resp ContactResponse
	if err := c.sender.PutJSON(ctx, contactsUpdatePath, req, &resp, senderOptions(opts)); err != nil {
		return nil, wrapError(err)
	}
	return &resp, nil
}

// Find returns the contacts matching the given email or user ID. An
// empty result is not an error.
func (c *ContactsClient) Find(ctx context.Context, req *ContactFindRequest, opts ...RequestOption) ([]Contact, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	return c.find(ctx, req, opts)
}

// FindAsync is the asynchronous form of Find.
func (c *ContactsClient) FindAsync(ctx context.Context, req *ContactFindRequest, opts ...RequestOption) *Future[[]Contact] {
	if err := req.validate(); err != nil {
		return resolvedFuture[[]Contact](nil, err)
	}
	return newFuture(func() ([]Contact, error) {
		return c.find(ctx, req, opts)
	})
}

func (c *ContactsClient) find(ctx context.Context, req *ContactFindRequest, opts []RequestOption) ([]Contact, error) {
	var contacts []Contact
	if err := c.sender.Get(ctx, contactsFindPath, req.queryParams(), &contacts, senderOptions(opts)); err != nil {
		return nil, wrapError(err)
	}
	return contacts, nil
}

// Delete deletes a contact.
func (c *ContactsClient) Delete(ctx context.Context, req *ContactDeleteRequest, opts ...RequestOption) (*ContactResponse, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	return c.delete(ctx, req, opts)
}

// DeleteAsync is the asynchronous form of Delete.
func (c *ContactsClient) DeleteAsync(ctx context.Context, req *ContactDeleteRequest, opts ...RequestOption) *Future[*ContactResponse] {
	if err := req.validate(); err != nil {
		return resolvedFuture[*ContactResponse](nil, err)
	}
	return newFuture(func() (*ContactResponse, error) {
		return c.delete(ctx, req, opts)
	})
}

func (c *ContactsClient) delete(ctx context.Context, req *ContactDeleteRequest, opts []RequestOption) (*ContactResponse, error) {
	var resp ContactResponse
	if err := c.sender.DeleteJSON(ctx, contactsDeletePath, req, &resp, senderOptions(opts)); err != nil {
		return nil, wrapError(err)
	}
	return &resp, nil
}
