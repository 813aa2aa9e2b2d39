package loops

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/telos-labs/loops-go/internal/sender"
)

// Client is the main entry point for the Loops API. It holds only
// immutable configuration and is safe for concurrent use.
type Client struct {
	sender *sender.Sender

	contacts      *ContactsClient
	events        *EventsClient
	transactional *TransactionalClient
	mailingLists  *MailingListsClient
	properties    *ContactPropertiesClient
	dedicatedIPs  *DedicatedIPsClient
	apiKey        *APIKeyClient
}

// New creates a new Loops client with the given API key.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := &clientConfig{
		baseURL: defaultBaseURL,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		timeout := cfg.timeout
		if timeout <= 0 {
			timeout = sender.DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	s, err := sender.New(sender.Config{
		Transport: sender.NewHTTPTransport(httpClient),
		BaseURL:   strings.TrimSuffix(cfg.baseURL, "/"),
		APIKey:    apiKey,
		Logger:    cfg.logger,
	})
	if err != nil {
		return nil, err
	}

	c := &Client{sender: s}
	c.contacts = &ContactsClient{sender: s}
	c.events = &EventsClient{sender: s}
	c.transactional = &TransactionalClient{sender: s}
	c.mailingLists = &MailingListsClient{sender: s}
	c.properties = &ContactPropertiesClient{sender: s}
	c.dedicatedIPs = &DedicatedIPsClient{sender: s}
	c.apiKey = &APIKeyClient{sender: s}
	return c, nil
}

// Contacts returns the client for managing contacts in your audience.
func (c *Client) Contacts() *ContactsClient {
	return c.contacts
}

// Events returns the client for triggering email sending with events.
func (c *Client) Events() *EventsClient {
	return c.events
}

// Transactional returns the client for sending and listing transactional
// emails.
func (c *Client) Transactional() *TransactionalClient {
	return c.transactional
}

// MailingLists returns the client for viewing mailing lists.
func (c *Client) MailingLists() *MailingListsClient {
	return c.mailingLists
}

// ContactProperties returns the client for managing contact properties.
func (c *Client) ContactProperties() *ContactPropertiesClient {
	return c.properties
}

// DedicatedIPs returns the client for viewing dedicated sending IPs.
func (c *Client) DedicatedIPs() *DedicatedIPsClient {
	return c.dedicatedIPs
}

// APIKey returns the client for testing API key validity.
func (c *Client) APIKey() *APIKeyClient {
	return c.apiKey
}

// senderOptions converts per-call options to the internal representation.
func senderOptions(opts []RequestOption) sender.RequestOptions {
	cfg := buildRequestConfig(opts)
	return sender.RequestOptions{Header: cfg.header}
}
