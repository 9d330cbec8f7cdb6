//go:build integration
// +build integration

package integration

import (
	"os"
	"testing"

	"github.com/robocorp/robocorp-planhat/pkg/phclient"
	"github.com/robocorp/robocorp-planhat/pkg/planhat"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	APIEndpoint string
	APIKey      string
	TenantUUID  string
	Debug       bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIEndpoint: os.Getenv("PLANHAT_API_ENDPOINT"),
		APIKey:      os.Getenv("PLANHAT_API_KEY"),
		TenantUUID:  os.Getenv("PLANHAT_TENANT_UUID"),
		Debug:       os.Getenv("PLANHAT_DEBUG") == "true",
	}
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.APIKey == "" {
		t.Skip("PLANHAT_API_KEY not set, skipping integration test")
	}
}

// SkipIfMissingTenant skips test if no tenant UUID is configured
func (config *TestConfig) SkipIfMissingTenant(t *testing.T) {
	t.Helper()

	if config.TenantUUID == "" {
		t.Skip("PLANHAT_TENANT_UUID not set, skipping integration test")
	}
}

// NewClient creates a client from the test configuration
func (config *TestConfig) NewClient(t *testing.T) planhat.Client {
	t.Helper()

	client, err := phclient.New(&planhat.Config{
		APIEndpoint: config.APIEndpoint,
		APIKey:      config.APIKey,
		TenantUUID:  config.TenantUUID,
		Debug:       config.Debug,
	})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	return client
}
