package phclient_test

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robocorp/robocorp-planhat/pkg/phclient"
	"github.com/robocorp/robocorp-planhat/pkg/planhat"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("nil config is rejected", func(t *testing.T) {
		t.Parallel()

		planhatClient, err := phclient.New(nil)
		require.ErrorIs(t, err, planhat.ErrConfigRequired)
		assert.Nil(t, planhatClient)
	})

	t.Run("missing API key is rejected", func(t *testing.T) {
		t.Parallel()

		planhatClient, err := phclient.New(&planhat.Config{})
		require.ErrorIs(t, err, planhat.ErrAPIKeyRequired)
		assert.Nil(t, planhatClient)
	})

	t.Run("trailing slash on the endpoint is trimmed", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(nethttp.HandlerFunc(
			func(writer nethttp.ResponseWriter, request *nethttp.Request) {
				assert.Equal(t, "/leancompanies", request.URL.Path)

				writer.Header().Set("Content-Type", "application/json")
				require.NoError(t, json.NewEncoder(writer).Encode([]map[string]any{}))
			}))
		t.Cleanup(server.Close)

		config := &planhat.Config{
			APIEndpoint:  server.URL + "/",
			APIKey:       "test-key",
			DisableCache: true,
		}

		planhatClient, err := phclient.New(config)
		require.NoError(t, err)

		_, err = planhatClient.Companies().ListLean(context.Background())
		require.NoError(t, err)
	})

	t.Run("caller's config is not mutated", func(t *testing.T) {
		t.Parallel()

		config := &planhat.Config{
			APIEndpoint:       "api.example.com/",
			AnalyticsEndpoint: "analytics.example.com",
			APIKey:            "test-key",
			DisableCache:      true,
		}

		_, err := phclient.New(config)
		require.NoError(t, err)

		assert.Equal(t, "api.example.com/", config.APIEndpoint)
		assert.Equal(t, "analytics.example.com", config.AnalyticsEndpoint)
	})
}

func TestNewWithAPIKey(t *testing.T) {
	t.Parallel()

	planhatClient, err := phclient.NewWithAPIKey("test-key")
	require.NoError(t, err)
	assert.NotNil(t, planhatClient.Objects())
	assert.NotNil(t, planhatClient.Companies())
	assert.NotNil(t, planhatClient.Metrics())

	_, err = phclient.NewWithAPIKey("")
	require.ErrorIs(t, err, planhat.ErrAPIKeyRequired)
}

func TestNewWithAPIKeyAndTenant(t *testing.T) {
	t.Parallel()

	planhatClient, err := phclient.NewWithAPIKeyAndTenant("test-key", "tenant-123")
	require.NoError(t, err)
	assert.NotNil(t, planhatClient.Analytics())
}
