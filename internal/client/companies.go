package client

import (
	"context"
	"fmt"

	"github.com/robocorp/robocorp-planhat/internal/http"
	"github.com/robocorp/robocorp-planhat/pkg/planhat"
)

// CompaniesClient implements planhat.CompaniesClient.
type CompaniesClient struct {
	httpClient *http.Client
}

// NewCompaniesClient creates a new companies client.
func NewCompaniesClient(httpClient *http.Client) *CompaniesClient {
	return &CompaniesClient{httpClient: httpClient}
}

// ListLean implements planhat.CompaniesClient.ListLean. The lean endpoint
// returns name and ID for every company in one response, free of the
// usual page limit, so it never pages and never touches the cache.
func (c *CompaniesClient) ListLean(ctx context.Context) (*planhat.ObjectList, error) {
	resp, err := c.httpClient.Get(ctx, "/leancompanies", nil)
	if err != nil {
		return nil, fmt.Errorf("listing lean companies: %w", err)
	}

	list, err := planhat.ListFromResponse(planhat.KindCompany, resp)
	if err != nil {
		return nil, fmt.Errorf("listing lean companies: %w", err)
	}

	return list, nil
}
