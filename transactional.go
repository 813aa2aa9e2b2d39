package loops

import (
	"context"
	"net/url"
	"strconv"

	"github.com/telos-labs/loops-go/internal/sender"
)

const (
	transactionalPath = "/transactional"

	minPerPage = 10
	maxPerPage = 50
)

// TransactionalClient sends transactional emails and lists the
// transactional email templates published in Loops.
type TransactionalClient struct {
	sender *sender.Sender
}

// Attachment is a file attached to a transactional email. Data is the
// base64-encoded file content.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Data        string `json:"data"`
}

// TransactionalSendRequest sends a transactional email to a recipient.
// TransactionalID and Email are required.
type TransactionalSendRequest struct {
	TransactionalID string         `json:"transactionalId"`
	Email           string         `json:"email"`
	AddToAudience   *bool          `json:"addToAudience,omitempty"`
	DataVariables   map[string]any `json:"dataVariables,omitempty"`
	Attachments     []Attachment   `json:"attachments,omitempty"`
}

func (r *TransactionalSendRequest) validate() error {
	if r == nil || r.TransactionalID == "" {
		return newValidationError("transactionalId is required")
	}
	if r.Email == "" {
		return newValidationError("email is required")
	}
	return nil
}

// TransactionalResponse is returned by Send.
type TransactionalResponse struct {
	Success bool `json:"success"`
}

// TransactionalEmail describes a published transactional email template.
type TransactionalEmail struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	LastUpdated   string   `json:"lastUpdated"`
	DataVariables []string `json:"dataVariables"`
}

// Pagination carries cursor-based pagination state.
type Pagination struct {
	Count      int    `json:"count"`
	NextCursor string `json:"nextCursor"`
}

// TransactionalListResponse is returned by List.
type TransactionalListResponse struct {
	TransactionalEmails []TransactionalEmail `json:"transactionalEmails"`
	Pagination          *Pagination          `json:"pagination"`
}

// TransactionalListParams filters List. PerPage must be between 10 and
// 50 when set; zero means the server default. Cursor continues a
// previous page.
type TransactionalListParams struct {
	PerPage int
	Cursor  string
}

func (p *TransactionalListParams) validate() error {
	if p == nil {
		return nil
	}
	if p.PerPage != 0 && (p.PerPage < minPerPage || p.PerPage > maxPerPage) {
		return newValidationError("perPage must be between %d and %d, got %d",
			minPerPage, maxPerPage, p.PerPage)
	}
	return nil
}

func (p *TransactionalListParams) queryParams() url.Values {
	params := url.Values{}
	if p == nil {
		return params
	}
	if p.PerPage != 0 {
		params.Set("perPage", strconv.Itoa(p.PerPage))
	}
	if p.Cursor != "" {
		params.Set("cursor", p.Cursor)
	}
	return params
}

// Send sends a transactional email. Use WithIdempotencyKey to make the
// send safe to repeat.
func (c *TransactionalClient) Send(ctx context.Context, req *TransactionalSendRequest, opts ...RequestOption) (*TransactionalResponse, error) {
	if err := validateTransactionalSend(req, opts); err != nil {
		return nil, err
	}
	return c.send(ctx, req, opts)
}

// SendAsync is the asynchronous form of Send. Validation failures resolve
// the future immediately, before any network call.
func (c *TransactionalClient) SendAsync(ctx context.Context, req *TransactionalSendRequest, opts ...RequestOption) *Future[*TransactionalResponse] {
	if err := validateTransactionalSend(req, opts); err != nil {
		return resolvedFuture[*TransactionalResponse](nil, err)
	}
	return newFuture(func() (*TransactionalResponse, error) {
		return c.send(ctx, req, opts)
	})
}

func validateTransactionalSend(req *TransactionalSendRequest, opts []RequestOption) error {
	if err := req.validate(); err != nil {
		return err
	}
	return validateIdempotencyKey(buildRequestConfig(opts).header.Get("Idempotency-Key"))
}

func (c *TransactionalClient) send(ctx context.Context, req *TransactionalSendRequest, opts []RequestOption) (*TransactionalResponse, error) {
	var resp TransactionalResponse
	if err := c.sender.PostJSON(ctx, transactionalPath, req, &resp, senderOptions(opts)); err != nil {
		return nil, wrapError(err)
	}
	return &resp, nil
}

// List returns a page of published transactional email templates. A nil
// params requests the server defaults.
func (c *TransactionalClient) List(ctx context.Context, params *TransactionalListParams, opts ...RequestOption) (*TransactionalListResponse, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	return c.list(ctx, params, opts)
}

// ListAsync is the asynchronous form of List.
func (c *TransactionalClient) ListAsync(ctx context.Context, params *TransactionalListParams, opts ...RequestOption) *Future[*TransactionalListResponse] {
	if err := params.validate(); err != nil {
		return resolvedFuture[*TransactionalListResponse](nil, err)
	}
	return newFuture(func() (*TransactionalListResponse, error) {
		return c.list(ctx, params, opts)
	})
}

func (c *TransactionalClient) list(ctx context.Context, params *TransactionalListParams, opts []RequestOption) (*TransactionalListResponse, error) {
	var resp TransactionalListResponse
	if err := c.sender.Get(ctx, transactionalPath, params.queryParams(), &resp, senderOptions(opts)); err != nil {
		return nil, wrapError(err)
	}
	return &resp, nil
}
