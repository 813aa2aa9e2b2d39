package sender

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
)

// Sender is the single choke point through which every resource client
// issues API calls. All fields are set at construction and never mutated,
// so a Sender is safe for concurrent use.
type Sender struct {
	transport Transport
	baseURL   string
	apiKey    string
	log       zerolog.Logger
}

// Config configures a Sender.
type Config struct {
	Transport Transport // defaults to an HTTPTransport with DefaultTimeout
	BaseURL   string
	APIKey    string
	Logger    zerolog.Logger
}

// New creates a Sender.
func New(cfg Config) (*Sender, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("API key is required")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}

	transport := cfg.Transport
	if transport == nil {
		transport = NewHTTPTransport(nil)
	}

	return &Sender{
		transport: transport,
		baseURL:   cfg.BaseURL,
		apiKey:    cfg.APIKey,
		log:       cfg.Logger,
	}, nil
}

// Do builds the request, executes it, classifies the response, and
// decodes the body into result. Each call is stateless and yields exactly
// one outcome: a populated result or a single error.
//
// A nil result skips decoding. For list endpoints pass a pointer to a
// slice; a bare JSON array decodes directly into it.
func (s *Sender) Do(ctx context.Context, method, path string, query url.Values, body any, result any, opts RequestOptions) error {
	req, err := s.buildRequest(method, path, query, body, opts)
	if err != nil {
		return err
	}
	s.logRequest(req)

	resp, err := s.transport.Execute(ctx, req)
	if err != nil {
		s.log.Warn().Str("url", req.URL).Err(err).Msg("api request failed")
		return &NetworkError{Err: err, URL: req.URL}
	}
	s.logResponse(resp)

	if err := classify(resp); err != nil {
		return err
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body, result); err != nil {
		return newDecodeError(resp, err)
	}
	return nil
}

// Get issues a GET with optional query parameters.
func (s *Sender) Get(ctx context.Context, path string, query url.Values, result any, opts RequestOptions) error {
	return s.Do(ctx, http.MethodGet, path, query, nil, result, opts)
}

// PostJSON issues a POST with a JSON body.
func (s *Sender) PostJSON(ctx context.Context, path string, body, result any, opts RequestOptions) error {
	return s.Do(ctx, http.MethodPost, path, nil, body, result, opts)
}

// PutJSON issues a PUT with a JSON body.
func (s *Sender) PutJSON(ctx context.Context, path string, body, result any, opts RequestOptions) error {
	return s.Do(ctx, http.MethodPut, path, nil, body, result, opts)
}

// DeleteJSON issues a DELETE with a JSON body.
func (s *Sender) DeleteJSON(ctx context.Context, path string, body, result any, opts RequestOptions) error {
	return s.Do(ctx, http.MethodDelete, path, nil, body, result, opts)
}

// logRequest emits the request-started record. Body size is logged only
// at debug level. Best-effort diagnostics; never load-bearing.
func (s *Sender) logRequest(req *Request) {
	event := s.log.Info().Str("method", req.Method).Str("url", req.URL)
	if s.log.GetLevel() <= zerolog.DebugLevel && len(req.Body) > 0 {
		event.Int("body_bytes", len(req.Body))
	}
	event.Msg("api request")
}

// logResponse emits the request-completed record.
func (s *Sender) logResponse(resp *Response) {
	success := resp.StatusCode < 400
	event := s.log.Info()
	if !success {
		event = s.log.Warn()
	}
	event.Int("status", resp.StatusCode).Bool("success", success).Msg("api response")
}
