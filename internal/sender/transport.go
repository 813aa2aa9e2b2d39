package sender

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout is the timeout applied to the default HTTP client.
const DefaultTimeout = 30 * time.Second

// Request is a fully built wire-level request: method, absolute URL with
// encoded query string, final headers, and serialized body bytes.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Response is the wire-level result of executing a Request. The body is
// fully read before the response is returned; there is no streaming.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport executes a single HTTP exchange. Implementations own all
// connection management, TLS, and timeout policy; the sender never
// imposes a deadline of its own beyond the caller's context.
type Transport interface {
	Execute(ctx context.Context, req *Request) (*Response, error)
}

// HTTPTransport is the default Transport backed by net/http.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport wraps the given client. A nil client gets a default
// with DefaultTimeout.
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPTransport{client: client}
}

// Execute performs the exchange and reads the full response body.
func (t *HTTPTransport) Execute(ctx context.Context, req *Request) (*Response, error) {
	var bodyReader io.Reader
	if len(req.Body) > 0 {
		bodyReader = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return nil, err
	}
	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
