package sender

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// RequestOptions carries per-call customization. Headers set here are
// merged into every request; Authorization and Content-Type are always
// overwritten by the sender.
type RequestOptions struct {
	Header http.Header
}

// buildRequest deterministically turns a logical call into a wire-level
// Request. No network I/O happens here.
func (s *Sender) buildRequest(method, path string, query url.Values, body any, opts RequestOptions) (*Request, error) {
	target := s.baseURL + path
	if len(query) > 0 {
		// Encode sorts keys, so the query string is stable across calls.
		target += "?" + query.Encode()
	}

	header := make(http.Header, len(opts.Header)+2)
	for key, values := range opts.Header {
		for _, value := range values {
			header.Add(key, value)
		}
	}
	header.Set("Authorization", "Bearer "+s.apiKey)

	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		header.Set("Content-Type", "application/json")
	}

	return &Request{
		Method: method,
		URL:    target,
		Header: header,
		Body:   raw,
	}, nil
}
