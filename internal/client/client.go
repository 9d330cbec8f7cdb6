// Package client implements the planhat.Client interface on top of the
// internal HTTP transport.
package client

import (
	"fmt"

	"github.com/robocorp/robocorp-planhat/internal/constants"
	"github.com/robocorp/robocorp-planhat/internal/http"
	"github.com/robocorp/robocorp-planhat/pkg/planhat"
)

// Client implements planhat.Client.
type Client struct {
	httpClient      *http.Client
	analyticsClient *http.Client
	logger          planhat.Logger

	objects   *ObjectsClient
	companies *CompaniesClient
	metrics   *MetricsClient
	analytics *AnalyticsClient
}

// New creates a client from configuration. The API key is required;
// everything else has defaults.
func New(config *planhat.Config) (*Client, error) {
	if config == nil {
		return nil, planhat.ErrConfigRequired
	}

	if config.APIKey == "" {
		return nil, planhat.ErrAPIKeyRequired
	}

	apiEndpoint := config.APIEndpoint
	if apiEndpoint == "" {
		apiEndpoint = constants.DefaultAPIEndpoint
	}

	analyticsEndpoint := config.AnalyticsEndpoint
	if analyticsEndpoint == "" {
		analyticsEndpoint = constants.DefaultAnalyticsEndpoint
	}

	opts := []http.Option{}

	if config.UserAgent != "" {
		opts = append(opts, http.WithUserAgent(config.UserAgent))
	}

	if config.Logger != nil {
		opts = append(opts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, http.WithDebug(true))
	}

	if config.RetryMax > 0 || config.RetryWaitMin > 0 || config.RetryWaitMax > 0 {
		retryMax := config.RetryMax
		if retryMax == 0 {
			retryMax = constants.DefaultRetryMax
		}

		waitMin := config.RetryWaitMin
		if waitMin == 0 {
			waitMin = constants.DefaultRetryWaitMin
		}

		waitMax := config.RetryWaitMax
		if waitMax == 0 {
			waitMax = constants.DefaultRetryWaitMax
		}

		opts = append(opts, http.WithRetryConfig(retryMax, waitMin, waitMax))
	}

	if config.HTTPClient != nil {
		opts = append(opts, http.WithHTTPClient(config.HTTPClient))
	}

	cacheManager, err := buildCacheManager(config)
	if err != nil {
		return nil, err
	}

	client := &Client{
		httpClient:      http.NewClient(apiEndpoint, config.APIKey, opts...),
		analyticsClient: http.NewClient(analyticsEndpoint, config.APIKey, opts...),
		logger:          config.Logger,
	}

	client.objects = NewObjectsClient(client.httpClient, cacheManager)
	client.companies = NewCompaniesClient(client.httpClient)
	client.metrics = NewMetricsClient(client.objects)
	client.analytics = NewAnalyticsClient(client.analyticsClient, config.TenantUUID)

	return client, nil
}

func buildCacheManager(config *planhat.Config) (*planhat.CacheManager, error) {
	if config.DisableCache {
		return planhat.NewCacheManager(planhat.NewNoOpCache(), nil), nil
	}

	var options *planhat.CacheOptions
	if config.Cache != nil {
		options = config.Cache.Options
	}

	cache, err := planhat.NewCacheFromConfig(config.Cache)
	if err != nil {
		return nil, fmt.Errorf("building cache: %w", err)
	}

	return planhat.NewCacheManager(cache, options), nil
}

// Objects implements planhat.Client.Objects.
func (c *Client) Objects() planhat.ObjectsClient {
	return c.objects
}

// Companies implements planhat.Client.Companies.
func (c *Client) Companies() planhat.CompaniesClient {
	return c.companies
}

// Metrics implements planhat.Client.Metrics.
func (c *Client) Metrics() planhat.MetricsClient {
	return c.metrics
}

// Analytics implements planhat.Client.Analytics.
func (c *Client) Analytics() planhat.AnalyticsClient {
	return c.analytics
}
