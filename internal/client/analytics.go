package client

import (
	"context"
	"fmt"

	"github.com/robocorp/robocorp-planhat/internal/http"
	"github.com/robocorp/robocorp-planhat/pkg/planhat"
)

// AnalyticsClient implements planhat.AnalyticsClient. Activities go to
// the separate analytics host and are authorized by the tenant UUID in
// the path rather than the API key.
type AnalyticsClient struct {
	httpClient *http.Client
	tenantUUID string
}

// NewAnalyticsClient creates a new analytics client.
func NewAnalyticsClient(httpClient *http.Client, tenantUUID string) *AnalyticsClient {
	return &AnalyticsClient{
		httpClient: httpClient,
		tenantUUID: tenantUUID,
	}
}

// Track implements planhat.AnalyticsClient.Track.
func (c *AnalyticsClient) Track(ctx context.Context, activity map[string]any) error {
	if c.tenantUUID == "" {
		return planhat.ErrTenantUUIDRequired
	}

	_, err := c.httpClient.Post(ctx, "/analytics/"+c.tenantUUID, activity)
	if err != nil {
		return fmt.Errorf("tracking activity: %w", err)
	}

	return nil
}

// BulkTrack implements planhat.AnalyticsClient.BulkTrack.
func (c *AnalyticsClient) BulkTrack(ctx context.Context, activities []map[string]any) error {
	if c.tenantUUID == "" {
		return planhat.ErrTenantUUIDRequired
	}

	_, err := c.httpClient.Post(ctx, "/analytics/bulk/"+c.tenantUUID, activities)
	if err != nil {
		return fmt.Errorf("tracking activities: %w", err)
	}

	return nil
}
