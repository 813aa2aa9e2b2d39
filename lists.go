package loops

import (
	"context"

	"github.com/telos-labs/loops-go/internal/sender"
)

const mailingListsPath = "/lists"

// MailingListsClient views the mailing lists in your Loops account.
type MailingListsClient struct {
	sender *sender.Sender
}

// MailingList is a mailing list as returned by the API.
type MailingList struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    bool   `json:"isPublic"`
}

// List returns all mailing lists.
func (c *MailingListsClient) List(ctx context.Context, opts ...RequestOption) ([]MailingList, error) {
	var lists []MailingList
	if err := c.sender.Get(ctx, mailingListsPath, nil, &lists, senderOptions(opts)); err != nil {
		return nil, wrapError(err)
	}
	return lists, nil
}

// ListAsync is the asynchronous form of List.
func (c *MailingListsClient) ListAsync(ctx context.Context, opts ...RequestOption) *Future[[]MailingList] {
	return newFuture(func() ([]MailingList, error) {
		return c.List(ctx, opts...)
	})
}
