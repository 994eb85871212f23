package ewsclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/ews-client/internal/client"
	"github.com/fivetwenty-io/ews-client/internal/constants"
	"github.com/fivetwenty-io/ews-client/pkg/ews"
)

// New creates a FindFolder client. The config is copied; later changes to it
// do not affect the client.
func New(ctx context.Context, config *ews.Config) (ews.Client, error) {
	if config == nil {
		return nil, ews.ErrConfigRequired
	}

	normalized := *config

	endpoint, err := NormalizeEndpoint(config.Endpoint)
	if err != nil {
		return nil, err
	}

	normalized.Endpoint = endpoint

	ewsClient, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return ewsClient, nil
}

// NewWithEndpoint creates a live client for endpoint.
func NewWithEndpoint(ctx context.Context, endpoint string) (ews.Client, error) {
	return New(ctx, &ews.Config{Endpoint: endpoint})
}

// NewOffline creates a client answering from the embedded simulated response.
func NewOffline(ctx context.Context) (ews.Client, error) {
	return New(ctx, &ews.Config{Offline: true})
}

// NormalizeEndpoint trims the endpoint, applies the default when it is empty
// and adds "http://" when no scheme is present.
func NormalizeEndpoint(endpoint string) (string, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return constants.DefaultEndpoint, nil
	}

	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "http://" + endpoint
	}

	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ews.ErrInvalidEndpoint, err)
	}

	if parsed.Host == "" {
		return "", fmt.Errorf("%w: no host in %q", ews.ErrInvalidEndpoint, endpoint)
	}

	return endpoint, nil
}
