package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fivetwenty-io/ews-client/internal/constants"
	"github.com/fivetwenty-io/ews-client/internal/envelope"
	"github.com/fivetwenty-io/ews-client/internal/fixtures"
	"github.com/fivetwenty-io/ews-client/internal/http"
	"github.com/fivetwenty-io/ews-client/internal/soap"
	"github.com/fivetwenty-io/ews-client/pkg/ews"
	"github.com/rs/xid"
)

// Client implements the ews.Client interface.
type Client struct {
	transport http.Transport
	endpoint  string
	offline   bool
	logger    ews.Logger
	reporter  ews.Reporter
}

// createHTTPClientOptions builds transport options from config.
func createHTTPClientOptions(config *ews.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	return httpOpts
}

// createTransport picks the live or the offline transport. The choice is
// final for the lifetime of the client.
func createTransport(config *ews.Config) (http.Transport, error) {
	httpOpts := createHTTPClientOptions(config)

	if !config.Offline {
		return http.NewClient(httpOpts...), nil
	}

	source := fixtures.Embedded()
	if config.FixturePath != "" {
		source = fixtures.File(config.FixturePath)
	}

	err := source.Check()
	if err != nil {
		return nil, fmt.Errorf("loading offline fixture: %w", err)
	}

	return http.NewOfflineClient(source, httpOpts...), nil
}

// New creates a FindFolder client from config.
func New(ctx context.Context, config *ews.Config) (*Client, error) {
	if config == nil {
		return nil, ews.ErrConfigRequired
	}

	transport, err := createTransport(config)
	if err != nil {
		return nil, err
	}

	return NewWithTransport(config, transport)
}

// NewWithTransport creates a client that sends through a custom transport.
// config.Offline is recorded for reporting only.
func NewWithTransport(config *ews.Config, transport http.Transport) (*Client, error) {
	if config == nil {
		return nil, ews.ErrConfigRequired
	}

	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = constants.DefaultEndpoint
	}

	logger := config.Logger
	if logger == nil {
		logger = noopLogger{}
	}

	return &Client{
		transport: transport,
		endpoint:  endpoint,
		offline:   config.Offline,
		logger:    logger,
		reporter:  config.Reporter,
	}, nil
}

// Endpoint returns the configured service URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Offline reports whether the client answers from the offline fixture.
func (c *Client) Offline() bool {
	return c.offline
}

// FindFolders implements ews.Client.FindFolders.
func (c *Client) FindFolders(ctx context.Context, parentFolderID, folderShape string) (*ews.FindFolderResult, error) {
	requestID := xid.New().String()
	start := time.Now()

	result, err := c.findFolders(ctx, requestID, parentFolderID, folderShape)

	c.report(ctx, &ews.FindFolderOutcome{
		RequestID:      requestID,
		ParentFolderID: parentFolderID,
		FolderShape:    folderShape,
		Endpoint:       c.endpoint,
		Offline:        c.offline,
		Duration:       time.Since(start),
		Result:         result,
		Error:          errorString(err),
	})

	return result, err
}

func (c *Client) findFolders(ctx context.Context, requestID, parentFolderID, folderShape string) (*ews.FindFolderResult, error) {
	err := validate(parentFolderID, folderShape)
	if err != nil {
		c.logger.Warn("Rejected FindFolder request", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})

		return nil, err
	}

	env := envelope.Build(parentFolderID, folderShape)

	c.logger.Debug("FindFolder request", map[string]interface{}{
		"request_id":       requestID,
		"parent_folder_id": env.ParentFolderID(),
		"folder_shape":     env.FolderShape(),
		"endpoint":         c.endpoint,
		"offline":          c.offline,
	})

	resp, err := c.transport.Send(ctx, c.endpoint, env.Bytes())
	if err != nil {
		c.logger.Error("FindFolder exchange failed", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})

		return nil, fmt.Errorf("sending FindFolder request: %w", err)
	}

	doc, err := soap.Parse(resp.Body)
	if err != nil {
		c.logger.Error("FindFolder response is not a SOAP document", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})

		return nil, fmt.Errorf("parsing FindFolder response: %w", err)
	}

	result := soap.Interpret(doc)

	switch {
	case result.IsFault():
		c.logger.Warn("SOAP fault encountered", map[string]interface{}{
			"request_id":   requestID,
			"fault_code":   result.Fault.Code,
			"fault_string": result.Fault.String,
		})
	case !result.HasPayload:
		c.logger.Warn(constants.NoPayload, map[string]interface{}{
			"request_id": requestID,
		})
	default:
		c.logger.Info("FindFolder completed", map[string]interface{}{
			"request_id":    requestID,
			"response_code": result.ResponseCode,
			"folders":       len(result.Folders),
		})
	}

	return result, nil
}

// validate rejects empty parameters before any I/O. Callers that want the
// protocol defaults pass ews.DefaultParentFolderID and ews.DefaultFolderShape.
func validate(parentFolderID, folderShape string) error {
	if strings.TrimSpace(parentFolderID) == "" {
		return ews.ErrParentFolderRequired
	}

	if strings.TrimSpace(folderShape) == "" {
		return ews.ErrFolderShapeRequired
	}

	return nil
}

// report hands the outcome to the reporter. Reporter failures are logged and
// never change the result.
func (c *Client) report(ctx context.Context, outcome *ews.FindFolderOutcome) {
	if c.reporter == nil {
		return
	}

	err := c.reporter.Report(ctx, outcome)
	if err != nil {
		c.logger.Warn("Reporting FindFolder outcome failed", map[string]interface{}{
			"request_id": outcome.RequestID,
			"error":      err.Error(),
		})
	}
}

func errorString(err error) string {
	if err == nil {
		return ""
	}

	return err.Error()
}

type noopLogger struct{}

func (noopLogger) Debug(string, map[string]interface{}) {}
func (noopLogger) Info(string, map[string]interface{})  {}
func (noopLogger) Warn(string, map[string]interface{})  {}
func (noopLogger) Error(string, map[string]interface{}) {}
