package loops

import (
	"context"

	"github.com/telos-labs/loops-go/internal/sender"
)

const apiKeyTestPath = "/api-key"

// APIKeyClient tests API key validity.
type APIKeyClient struct {
	sender *sender.Sender
}

// APIKeyTestResponse is returned by Test. TeamName is the Loops team the
// key belongs to.
type APIKeyTestResponse struct {
	Success  bool   `json:"success"`
	TeamName string `json:"teamName"`
}

// Test verifies the configured API key. An invalid key surfaces as an
// *APIError with status 401.
func (c *APIKeyClient) Test(ctx context.Context, opts ...RequestOption) (*APIKeyTestResponse, error) {
	var resp APIKeyTestResponse
	if err := c.sender.Get(ctx, apiKeyTestPath, nil, &resp, senderOptions(opts)); err != nil {
		return nil, wrapError(err)
	}
	return &resp, nil
}

// TestAsync is the asynchronous form of Test.
func (c *APIKeyClient) TestAsync(ctx context.Context, opts ...RequestOption) *Future[*APIKeyTestResponse] {
	return newFuture(func() (*APIKeyTestResponse, error) {
		return c.Test(ctx, opts...)
	})
}
