package ews

import (
	"context"
	"time"

	"github.com/fivetwenty-io/ews-client/internal/constants"
)

// Defaults for the FindFolder request parameters.
const (
	DefaultParentFolderID = constants.DefaultParentFolderID
	DefaultFolderShape    = constants.DefaultFolderShape
	DefaultEndpoint       = constants.DefaultEndpoint
)

// Client performs the FindFolder operation.
type Client interface {
	// FindFolders lists the folders directly under parentFolderID using the
	// given base shape. A SOAP fault is returned inside the result, not as
	// an error.
	FindFolders(ctx context.Context, parentFolderID, folderShape string) (*FindFolderResult, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Reporter receives the outcome of every FindFolders call. Presentation and
// forwarding of results live here rather than in the client.
type Reporter interface {
	Report(ctx context.Context, outcome *FindFolderOutcome) error
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(ctx context.Context, outcome *FindFolderOutcome) error

// Report calls f.
func (f ReporterFunc) Report(ctx context.Context, outcome *FindFolderOutcome) error {
	return f(ctx, outcome)
}

// Config represents client configuration for building a Client.
//
// # Modes
//
// With Offline unset the client POSTs every request to Endpoint. With Offline
// set it never touches the network: each call is answered with the offline
// fixture, which is the embedded simulated response unless FixturePath names
// a file. The mode is fixed when the client is built; a live client never
// falls back to the fixture when the network fails.
type Config struct {
	// Endpoint: URL of the FindFolder service. Defaults to DefaultEndpoint.
	// A missing scheme is completed with "http://".
	Endpoint string

	// Offline selects the fixture-backed transport.
	Offline bool
	// FixturePath: optional XML file used instead of the embedded fixture
	// in offline mode.
	FixturePath string

	// HTTPTimeout: optional overall timeout of a single exchange. Zero keeps
	// the platform default; prefer context deadlines.
	HTTPTimeout time.Duration
	// Debug: enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger.
	Logger Logger
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// Reporter: optional sink invoked with each call's outcome.
	Reporter Reporter
}
