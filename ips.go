package loops

import (
	"context"

	"github.com/telos-labs/loops-go/internal/sender"
)

const dedicatedIPsPath = "/dedicated-sending-ips"

// DedicatedIPsClient views the dedicated sending IP addresses assigned
// to your Loops account.
type DedicatedIPsClient struct {
	sender *sender.Sender
}

// List returns the dedicated sending IP addresses.
func (c *DedicatedIPsClient) List(ctx context.Context, opts ...RequestOption) ([]string, error) {
	var ips []string
	if err := c.sender.Get(ctx, dedicatedIPsPath, nil, &ips, senderOptions(opts)); err != nil {
		return nil, wrapError(err)
	}
	return ips, nil
}

// ListAsync is the asynchronous form of List.
func (c *DedicatedIPsClient) ListAsync(ctx context.Context, opts ...RequestOption) *Future[[]string] {
	return newFuture(func() ([]string, error) {
		return c.List(ctx, opts...)
	})
}
