// Package http carries FindFolder envelopes to the server, or to the offline
// fixture when the client runs without a network.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fivetwenty-io/ews-client/internal/constants"
	"github.com/fivetwenty-io/ews-client/internal/fixtures"
	"github.com/fivetwenty-io/ews-client/pkg/ews"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
)

// Logger is the logging interface used by the transport.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Transport sends one serialized envelope and returns the raw answer.
type Transport interface {
	Send(ctx context.Context, endpoint string, body []byte) (*Response, error)
}

// Response is the raw answer of an exchange.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

type settings struct {
	logger    Logger
	debug     bool
	userAgent string
	timeout   time.Duration
}

// Option configures a transport.
type Option func(*settings)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(s *settings) {
		s.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(s *settings) {
		s.userAgent = userAgent
	}
}

// WithTimeout bounds a whole exchange. Zero keeps the platform default.
func WithTimeout(timeout time.Duration) Option {
	return func(s *settings) {
		s.timeout = timeout
	}
}

func newSettings(opts []Option) settings {
	s := settings{userAgent: constants.DefaultUserAgent}
	for _, opt := range opts {
		opt(&s)
	}

	return s
}

func (s settings) logDebug(msg string, fields map[string]interface{}) {
	if s.debug && s.logger != nil {
		s.logger.Debug(msg, fields)
	}
}

// Client POSTs envelopes over HTTP.
type Client struct {
	httpClient *retryablehttp.Client
	settings   settings
}

// NewClient creates a live transport. Every exchange is attempted exactly
// once and uses its own connection.
func NewClient(opts ...Option) *Client {
	s := newSettings(opts)

	// Non-pooled transport: keep-alives are off, nothing outlives a call.
	httpClient := cleanhttp.DefaultClient()
	httpClient.Timeout = s.timeout

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = httpClient
	retryClient.Logger = nil
	retryClient.RetryMax = 0
	retryClient.CheckRetry = neverRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		httpClient: retryClient,
		settings:   s,
	}
}

func neverRetry(_ context.Context, _ *http.Response, _ error) (bool, error) {
	return false, nil
}

// Send POSTs body to endpoint with the FindFolder SOAP headers. Any status
// other than 200 is returned as a *ews.TransportError together with the
// response.
func (c *Client) Send(ctx context.Context, endpoint string, body []byte) (*Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, &ews.TransportError{Endpoint: endpoint, Err: fmt.Errorf("creating request: %w", err)}
	}

	req.Header.Set("Content-Type", constants.ContentTypeXML)
	req.Header.Set("SOAPAction", constants.SOAPActionFindFolder)
	req.Header.Set("User-Agent", c.settings.userAgent)

	c.settings.logDebug("HTTP Request", map[string]interface{}{
		"method":   http.MethodPost,
		"endpoint": endpoint,
		"size":     humanize.Bytes(uint64(len(body))),
	})

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ews.TransportError{Endpoint: endpoint, Err: err}
	}

	defer func() {
		err := resp.Body.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close response body: %v\n", err)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ews.TransportError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Err:        fmt.Errorf("reading response body: %w", err),
		}
	}

	c.settings.logDebug("HTTP Response", map[string]interface{}{
		"endpoint":    endpoint,
		"status_code": resp.StatusCode,
		"duration":    time.Since(start).String(),
		"size":        humanize.Bytes(uint64(len(respBody))),
	})

	response := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	}

	if resp.StatusCode != http.StatusOK {
		return response, &ews.TransportError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       truncate(respBody, constants.MaxErrorBodySize),
		}
	}

	return response, nil
}

func truncate(body []byte, limit int) []byte {
	if len(body) <= limit {
		return bytes.Clone(body)
	}

	return bytes.Clone(body[:limit])
}

// OfflineClient answers every exchange with a fixture document and never
// opens a connection.
type OfflineClient struct {
	source   *fixtures.Source
	settings settings
}

// NewOfflineClient creates a transport backed by source.
func NewOfflineClient(source *fixtures.Source, opts ...Option) *OfflineClient {
	return &OfflineClient{
		source:   source,
		settings: newSettings(opts),
	}
}

// Send ignores endpoint and body and returns the fixture.
func (c *OfflineClient) Send(ctx context.Context, endpoint string, body []byte) (*Response, error) {
	err := ctx.Err()
	if err != nil {
		return nil, &ews.TransportError{Endpoint: c.source.Name(), Err: err}
	}

	data, err := c.source.Load()
	if err != nil {
		return nil, &ews.TransportError{Endpoint: c.source.Name(), Err: fmt.Errorf("loading offline response: %w", err)}
	}

	c.settings.logDebug("Offline Response", map[string]interface{}{
		"fixture": c.source.Name(),
		"size":    humanize.Bytes(uint64(len(data))),
	})

	return &Response{
		StatusCode: http.StatusOK,
		Headers:    http.Header{"Content-Type": []string{constants.ContentTypeXML}},
		Body:       data,
	}, nil
}
