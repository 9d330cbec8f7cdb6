// Package phclient provides the entry point for creating Planhat API
// clients.
package phclient

import (
	"fmt"
	"strings"

	"github.com/robocorp/robocorp-planhat/internal/client"
	"github.com/robocorp/robocorp-planhat/pkg/planhat"
)

// New creates a new Planhat API client from configuration.
func New(config *planhat.Config) (planhat.Client, error) {
	if config == nil {
		return nil, planhat.ErrConfigRequired
	}

	if config.APIKey == "" {
		return nil, planhat.ErrAPIKeyRequired
	}

	// Normalize into a copy so the caller's config is left untouched.
	normalized := *config
	normalized.APIEndpoint = normalizeEndpoint(config.APIEndpoint)
	normalized.AnalyticsEndpoint = normalizeEndpoint(config.AnalyticsEndpoint)

	planhatClient, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return planhatClient, nil
}

// NewWithAPIKey creates a client using just an API key and defaults for
// everything else.
func NewWithAPIKey(apiKey string) (planhat.Client, error) {
	return New(&planhat.Config{APIKey: apiKey})
}

// NewWithAPIKeyAndTenant creates a client able to post analytics
// activities as well.
func NewWithAPIKeyAndTenant(apiKey, tenantUUID string) (planhat.Client, error) {
	return New(&planhat.Config{APIKey: apiKey, TenantUUID: tenantUUID})
}

func normalizeEndpoint(endpoint string) string {
	if endpoint == "" {
		return ""
	}

	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}
