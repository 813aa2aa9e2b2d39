package loops

import (
	"context"
	"net/url"
	"regexp"

	"github.com/telos-labs/loops-go/internal/sender"
)

const contactPropertiesPath = "/contacts/properties"

// camelCaseName matches valid contact property names, e.g. "planName".
var camelCaseName = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)

// validPropertyTypes are the property types the API accepts.
var validPropertyTypes = map[string]bool{
	"string":  true,
	"number":  true,
	"boolean": true,
	"date":    true,
}

// ContactPropertiesClient manages custom contact properties.
type ContactPropertiesClient struct {
	sender *sender.Sender
}

// ContactProperty is a contact property definition.
type ContactProperty struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// ContactPropertyCreateRequest creates a custom contact property. Name
// must be camelCase; Type must be one of string, number, boolean, date.
type ContactPropertyCreateRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (r *ContactPropertyCreateRequest) validate() error {
	if r == nil || r.Name == "" {
		return newValidationError("name is required")
	}
	if !camelCaseName.MatchString(r.Name) {
		return newValidationError("name must be in camelCase format (e.g. 'planName'), got %q", r.Name)
	}
	if r.Type == "" {
		return newValidationError("type is required")
	}
	if !validPropertyTypes[r.Type] {
		return newValidationError("type must be one of: string, number, boolean, date; got %q", r.Type)
	}
	return nil
}

// ContactPropertyResponse is returned by Create.
type ContactPropertyResponse struct {
	Success bool `json:"success"`
}

// Create defines a new contact property.
func (c *ContactPropertiesClient) Create(ctx context.Context, req *ContactPropertyCreateRequest, opts ...RequestOption) (*ContactPropertyResponse, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	return c.create(ctx, req, opts)
}

// CreateAsync is the asynchronous form of Create. Validation failures
// resolve the future immediately, before any network call.
func (c *ContactPropertiesClient) CreateAsync(ctx context.Context, req *ContactPropertyCreateRequest, opts ...RequestOption) *Future[*ContactPropertyResponse] {
	if err := req.validate(); err != nil {
		return resolvedFuture[*ContactPropertyResponse](nil, err)
	}
	return newFuture(func() (*ContactPropertyResponse, error) {
		return c.create(ctx, req, opts)
	})
}

func (c *ContactPropertiesClient) create(ctx context.Context, req *ContactPropertyCreateRequest, opts []RequestOption) (*ContactPropertyResponse, error) {
	var resp ContactPropertyResponse
	if err := c.sender.PostJSON(ctx, contactPropertiesPath, req, &resp, senderOptions(opts)); err != nil {
		return nil, wrapError(err)
	}
	return &resp, nil
}

// List returns contact property definitions. listType may be "all" or
// "custom"; empty requests the server default.
func (c *ContactPropertiesClient) List(ctx context.Context, listType string, opts ...RequestOption) ([]ContactProperty, error) {
	params := url.Values{}
	if listType != "" {
		params.Set("list", listType)
	}
	var properties []ContactProperty
	if err := c.sender.Get(ctx, contactPropertiesPath, params, &properties, senderOptions(opts)); err != nil {
		return nil, wrapError(err)
	}
	return properties, nil
}

// ListAsync is the asynchronous form of List.
func (c *ContactPropertiesClient) ListAsync(ctx context.Context, listType string, opts ...RequestOption) *Future[[]ContactProperty] {
	return newFuture(func() ([]ContactProperty, error) {
		return c.List(ctx, listType, opts...)
	})
}
