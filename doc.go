// Package loops provides a Go client SDK for the Loops API,
// an email and marketing automation platform.
//
// The client exposes one sub-client per API resource: contacts, events,
// transactional email, mailing lists, contact properties, dedicated IPs,
// and API-key testing.
//
// Basic usage:
//
//	client, err := loops.New("your-api-key")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Create a contact
//	resp, err := client.Contacts().Create(ctx, &loops.ContactCreateRequest{
//	    Email:      "user@example.com",
//	    Subscribed: true,
//	})
//
//	// Trigger an event
//	_, err = client.Events().Send(ctx, &loops.EventSendRequest{
//	    Email:     "user@example.com",
//	    EventName: "signup",
//	})
//
// Every operation has an ...Async counterpart returning a *Future that
// runs the same call off the calling goroutine.
package loops
